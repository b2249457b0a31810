package ads

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"immobiliare-gpt-backend/internal/models"
)

const (
	MaxFiles    = 30
	MaxFileSize = 2 * 1024 * 1024

	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
)

var ErrTooManyFiles = fmt.Errorf("no more than %d images can be uploaded", MaxFiles)

// File is one photo attached to a submission.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

func (f File) size() int64 {
	if f.Size > 0 {
		return f.Size
	}
	return int64(len(f.Data))
}

// DetectContentType sniffs the MIME type from the file content; the name
// and the client supplied header are not trusted.
func DetectContentType(data []byte) string {
	return mimetype.Detect(data).String()
}

func Accepted(contentType string) bool {
	return contentType == ContentTypeJPEG || contentType == ContentTypePNG
}

// Intake filters incoming files. Oversized files and files of a type other
// than JPEG or PNG are dropped with one notice each. When the accepted files
// would push the form past MaxFiles the whole batch is rejected with
// ErrTooManyFiles.
func Intake(existing int, incoming []File) ([]File, []models.Notice, error) {
	accepted := make([]File, 0, len(incoming))
	notices := make([]models.Notice, 0)

	for _, f := range incoming {
		if f.size() > MaxFileSize {
			notices = append(notices, tooLargeNotice(f.Name, f.size()))
			continue
		}
		if !Accepted(f.ContentType) {
			notices = append(notices, unsupportedNotice(f.Name))
			continue
		}
		accepted = append(accepted, f)
	}

	if existing+len(accepted) > MaxFiles {
		notices = append(notices, limitNotice())
		return nil, notices, ErrTooManyFiles
	}

	if len(accepted) > 0 {
		notices = append(notices, models.Notice{
			Level:   models.NoticeSuccess,
			Title:   fmt.Sprintf("%d images added", len(accepted)),
			Message: fmt.Sprintf("%d images in total.", existing+len(accepted)),
		})
	}

	return accepted, notices, nil
}

// Upload is a received file that has not been read yet.
type Upload interface {
	Name() string
	Size() int64
	Open() (io.ReadCloser, error)
}

// sniffLen is the prefix mimetype inspects by default.
const sniffLen = 3072

// IntakeUploads applies the Intake rules to unread uploads. Sizes come from
// the upload headers and types are sniffed from the first bytes only; a file
// is read in full only once the whole batch is within MaxFiles.
func IntakeUploads(existing int, uploads []Upload) ([]File, []models.Notice, error) {
	notices := make([]models.Notice, 0)
	kept := make([]Upload, 0, len(uploads))
	types := make([]string, 0, len(uploads))

	for _, u := range uploads {
		if u.Size() > MaxFileSize {
			notices = append(notices, tooLargeNotice(u.Name(), u.Size()))
			continue
		}
		contentType, err := sniff(u)
		if err != nil {
			return nil, notices, err
		}
		if !Accepted(contentType) {
			notices = append(notices, unsupportedNotice(u.Name()))
			continue
		}
		kept = append(kept, u)
		types = append(types, contentType)
		if existing+len(kept) > MaxFiles {
			notices = append(notices, limitNotice())
			return nil, notices, ErrTooManyFiles
		}
	}

	files := make([]File, 0, len(kept))
	for i, u := range kept {
		data, err := load(u)
		if err != nil {
			return nil, notices, err
		}
		files = append(files, File{
			Name:        u.Name(),
			ContentType: types[i],
			Size:        int64(len(data)),
			Data:        data,
		})
	}

	accepted, more, err := Intake(existing, files)
	return accepted, append(notices, more...), err
}

func sniff(u Upload) (string, error) {
	r, err := u.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", u.Name(), err)
	}
	defer r.Close()

	mime, err := mimetype.DetectReader(io.LimitReader(r, sniffLen))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", u.Name(), err)
	}
	return mime.String(), nil
}

// load reads at most one byte past MaxFileSize so a file whose header
// understated its size is still caught by Intake.
func load(u Upload) ([]byte, error) {
	r, err := u.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", u.Name(), err)
	}
	defer r.Close()

	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", u.Name(), err)
	}
	return data, nil
}

func tooLargeNotice(name string, size int64) models.Notice {
	return models.Notice{
		Level: models.NoticeError,
		Title: fmt.Sprintf("File too large: %s", name),
		Message: fmt.Sprintf("The maximum size per file is %s (%s bytes), this file has %s bytes.",
			humanize.IBytes(MaxFileSize), humanize.Comma(MaxFileSize), humanize.Comma(size)),
	}
}

func unsupportedNotice(name string) models.Notice {
	return models.Notice{
		Level:   models.NoticeError,
		Title:   fmt.Sprintf("Unsupported file type: %s", name),
		Message: "Only JPEG and PNG images are accepted.",
	}
}

func limitNotice() models.Notice {
	return models.Notice{
		Level:   models.NoticeError,
		Title:   "File limit exceeded",
		Message: fmt.Sprintf("You can upload a maximum of %d images.", MaxFiles),
	}
}
