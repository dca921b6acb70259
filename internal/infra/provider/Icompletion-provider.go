package provider

import "context"

// ICompletionProvider sends a rendered prompt to a language model and returns
// the generated text.
type ICompletionProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
