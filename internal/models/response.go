package models

import "time"

const (
	NoticeSuccess = "success"
	NoticeError   = "error"
	NoticeInfo    = "info"
)

// Notice is a transient, user facing message. Clients render it as a toast.
type Notice struct {
	Level   string `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message,omitempty"`
}

type AdRequestResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Email          string    `json:"email"`
	Status         string    `json:"status"`
	StatusCategory string    `json:"status_category"`
	Downloadable   bool      `json:"downloadable"`
	CreatedAt      time.Time `json:"created_at"`
}

type AdImageResponse struct {
	ID               string    `json:"id"`
	FileName         string    `json:"file_name"`
	OriginalImageURL string    `json:"original_image_url"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

type AdListResponse struct {
	Ads []AdRequestResponse `json:"ads"`
}

type AdDetailResponse struct {
	Ad     AdRequestResponse `json:"ad"`
	Images []AdImageResponse `json:"images"`
}

type FormPrefill struct {
	Email string `json:"email"`
}

type SubmitAdResponse struct {
	Ad      AdRequestResponse `json:"ad"`
	Images  []AdImageResponse `json:"images"`
	Notices []Notice          `json:"notices"`
	Prefill FormPrefill       `json:"prefill"`
}

type DownloadResponse struct {
	AdRequestID string            `json:"ad_request_id"`
	Files       []AdImageResponse `json:"files"`
}

type CompletionResponse struct {
	Content string     `json:"content"`
	Model   string     `json:"model"`
	Usage   UsageStats `json:"usage"`
}

type UsageStats struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type ContactResponse struct {
	Notices []Notice `json:"notices"`
}

type MeResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type AuthSessionResponse struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	TokenType    string     `json:"token_type"`
	ExpiresIn    int        `json:"expires_in"`
	User         MeResponse `json:"user"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
