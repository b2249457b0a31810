package models

type ChatRequest struct {
	Prompt       string `json:"prompt" binding:"required"`
	SystemPrompt string `json:"system_prompt,omitempty"`
	Model        string `json:"model,omitempty" example:"gpt-4"`
	MaxTokens    int    `json:"max_tokens,omitempty" example:"500"`
}

type OptimizeDescriptionRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type ContactRequest struct {
	Name    string `json:"name" form:"name" binding:"required"`
	Email   string `json:"email" form:"email" binding:"required,email"`
	Message string `json:"message" form:"message" binding:"required"`
}

type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Reason  string   `json:"reason,omitempty"`
	Notices []Notice `json:"notices,omitempty"`
}
