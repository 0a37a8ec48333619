// Package history handles conversation history: sqlite-backed turn storage
// and lightweight summarization so full transcripts never travel downstream.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ShayCichocki/maestro/internal/llm"
	"github.com/ShayCichocki/maestro/internal/logging"
	"github.com/ShayCichocki/maestro/pkg/models"
)

// fallbackPrefix marks a summary produced without the language model.
const fallbackPrefix = "Conversation summary (fallback): "

// summaryTurns is how many trailing turns feed the summary.
const summaryTurns = 6

// fallbackLimit caps the stitched fallback text, excluding the prefix.
const fallbackLimit = 500

// summarySystemPrompt is the fixed instruction for the summarization call.
const summarySystemPrompt = "Summarize the conversation so far in 2-3 concise sentences. " +
	"Capture user goals, key details, and any decisions or constraints. " +
	"Do not invent new facts."

// Summarizer compresses prior turns into a short context string.
type Summarizer struct {
	completer llm.Completer
	log       *logging.Logger
}

// NewSummarizer creates a Summarizer. completer may be nil; summaries then
// always use the deterministic fallback.
func NewSummarizer(completer llm.Completer, log *logging.Logger) *Summarizer {
	return &Summarizer{
		completer: completer,
		log:       log,
	}
}

// Summarize reduces the history to a short text. Empty history yields an
// empty string.
func (s *Summarizer) Summarize(ctx context.Context, history []models.Turn) string {
	if len(history) == 0 {
		return ""
	}

	recent := history
	if len(recent) > summaryTurns {
		recent = recent[len(recent)-summaryTurns:]
	}

	if s.completer == nil {
		return fallbackSummary(recent)
	}

	payload, err := json.MarshalIndent(map[string]any{"history": recent}, "", "  ")
	if err != nil {
		s.log.Log("[history] encode history failed: %v", err)
		return fallbackSummary(recent)
	}

	summary, err := s.completer.Complete(ctx, summarySystemPrompt, string(payload))
	if err != nil {
		s.log.Log("[history] summarization failed: %v", err)
		return fallbackSummary(recent)
	}
	if summary == "" {
		return fallbackSummary(recent)
	}
	return strings.TrimSpace(summary)
}

// fallbackSummary stitches the recent turns as "role: content" joined by
// " | ", truncated to the limit and prefixed as a fallback.
func fallbackSummary(recent []models.Turn) string {
	parts := make([]string, 0, len(recent))
	for _, turn := range recent {
		parts = append(parts, fmt.Sprintf("%s: %s", turn.Role, turn.Content))
	}

	joined := strings.Join(parts, " | ")
	if len(joined) > fallbackLimit {
		joined = joined[:fallbackLimit]
	}
	return fallbackPrefix + joined
}
