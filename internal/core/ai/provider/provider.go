package provider

import "context"

// Request is a single model invocation. ImageURL is empty for
// text-only calls; it may be an https URL or a data URI.
type Request struct {
	Model     string
	Prompt    string
	ImageURL  string
	MaxTokens int
}

// Provider generates a free-text completion for a request. The returned
// string is raw model output; callers own all parsing.
type Provider interface {
	Generate(ctx context.Context, req *Request) (string, error)
}
