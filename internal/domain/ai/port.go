package ai

import "context"

type Client interface {
	Summarize(ctx context.Context, text string) (string, error)
}
