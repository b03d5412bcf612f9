package ai

import (
	"context"

	"github.com/mkkalpana/text-morph/internal/domain/ai"
)

// Service wraps the AI client port. A nil client means summarization was not
// configured at startup.
type Service struct {
	client ai.Client
}

func NewService(client ai.Client) *Service {
	return &Service{client: client}
}

func (s *Service) Summarize(ctx context.Context, text string) (string, error) {
	if s == nil || s.client == nil {
		return "", ai.ErrNotConfigured
	}
	return s.client.Summarize(ctx, text)
}
