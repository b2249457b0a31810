package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyPrompt = errors.New("prompt is required")
	ErrNoContent   = errors.New("model returned no content")
	ErrNoImage     = errors.New("model returned no image")
)

const optimizeDescriptionMaxTokens = 300

// Request is a single completion request. There is no retry, streaming or
// batching.
type Request struct {
	Prompt       string
	SystemPrompt string
	Model        string
	MaxTokens    int
}

type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

type Completion struct {
	Content string
	Model   string
	Usage   Usage
}

type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

// Provider is a hosted model API.
type Provider interface {
	Complete(ctx context.Context, req Request) (*Completion, error)
	EditImage(ctx context.Context, img Image, prompt string) (*Image, error)
}

// Service fills in defaults and carries the prompts of the product.
type Service struct {
	provider  Provider
	model     string
	maxTokens int
	language  string
}

func NewService(provider Provider, model string, maxTokens int, language string) *Service {
	return &Service{provider: provider, model: model, maxTokens: maxTokens, language: language}
}

func (s *Service) Chat(ctx context.Context, req Request) (*Completion, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, ErrEmptyPrompt
	}
	if req.Model == "" {
		req.Model = s.model
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = s.maxTokens
	}

	c, err := s.provider.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}
	if strings.TrimSpace(c.Content) == "" {
		return nil, ErrNoContent
	}
	return c, nil
}

// OptimizeDescription rewrites a listing description in the voice of a real
// estate copywriter.
func (s *Service) OptimizeDescription(ctx context.Context, title, description string) (*Completion, error) {
	return s.Chat(ctx, Request{
		Prompt:       DescriptionPrompt(title, description),
		SystemPrompt: CopywriterPrompt(s.language),
		MaxTokens:    optimizeDescriptionMaxTokens,
	})
}

// EnhanceImage returns a brighter and sharper version of a listing photo.
// propertyType and roomType are optional hints.
func (s *Service) EnhanceImage(ctx context.Context, img Image, propertyType, roomType string) (*Image, error) {
	prompt := EnhancePrompt
	if propertyType != "" || roomType != "" {
		prompt = RoomPrompt(propertyType, roomType)
	}

	out, err := s.provider.EditImage(ctx, img, prompt)
	if err != nil {
		return nil, fmt.Errorf("image enhancement failed: %w", err)
	}
	if len(out.Data) == 0 {
		return nil, ErrNoImage
	}
	return out, nil
}
