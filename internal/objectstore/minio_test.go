package objectstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"immobiliare-gpt-backend/internal/objectstore"
)

func TestMinioStore_PublicURL(t *testing.T) {
	tests := []struct {
		name string
		opts objectstore.MinioOptions
		want string
	}{
		{
			name: "endpoint with tls",
			opts: objectstore.MinioOptions{Endpoint: "minio.local:9000", Bucket: "ad-images", UseSSL: true},
			want: "https://minio.local:9000/ad-images/u/r/a.jpg",
		},
		{
			name: "endpoint without tls",
			opts: objectstore.MinioOptions{Endpoint: "localhost:9000", Bucket: "ad-images"},
			want: "http://localhost:9000/ad-images/u/r/a.jpg",
		},
		{
			name: "explicit public url",
			opts: objectstore.MinioOptions{Endpoint: "minio:9000", Bucket: "ad-images", PublicURL: "https://cdn.example.com/"},
			want: "https://cdn.example.com/ad-images/u/r/a.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.AccessKey = "key"
			tt.opts.SecretKey = "secret"
			store, err := objectstore.NewMinioStore(tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, store.PublicURL("u/r/a.jpg"))
		})
	}
}
