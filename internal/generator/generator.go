package generator

import "context"

// Generator produces a kind message for a recipient in a given mood.
// The template implementation below is the current backend; a model-backed
// client can replace it without touching the conversation controller.
type Generator interface {
	Generate(ctx context.Context, recipient, mood string) (string, error)
}
