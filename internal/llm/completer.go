// Package llm provides the narrow completion capability consumed by the
// planner, combiner, and history summarizer. Callers hold a Completer and
// fall back to their deterministic path when it is nil or returns an error;
// no stage ever propagates a provider failure upward.
package llm

import (
	"context"
	"errors"
)

// ErrNoCompletion indicates the provider returned an empty result.
var ErrNoCompletion = errors.New("llm: no completion returned")

// Completer is a single prompt-in, text-out operation. Implementations fail
// closed: any credential or transport problem surfaces as an error so the
// caller can use its deterministic fallback.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, systemPrompt, userPrompt string) (string, error)

// Complete calls f.
func (f CompleterFunc) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return f(ctx, systemPrompt, userPrompt)
}
