package history

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ShayCichocki/maestro/internal/llm"
	"github.com/ShayCichocki/maestro/internal/logging"
	"github.com/ShayCichocki/maestro/pkg/models"
)

func TestSummarizeEmptyHistory(t *testing.T) {
	s := NewSummarizer(nil, logging.Nop())
	if got := s.Summarize(context.Background(), nil); got != "" {
		t.Errorf("summary = %q, want empty", got)
	}
}

func TestSummarizeFallback(t *testing.T) {
	s := NewSummarizer(nil, logging.Nop())
	summary := s.Summarize(context.Background(), []models.Turn{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
	})

	if !strings.HasPrefix(summary, fallbackPrefix) {
		t.Errorf("summary missing prefix: %q", summary)
	}
	if !strings.Contains(summary, "user: hi | assistant: hello") {
		t.Errorf("summary = %q", summary)
	}
}

func TestSummarizeFallbackTruncation(t *testing.T) {
	s := NewSummarizer(nil, logging.Nop())
	long := strings.Repeat("x", 2000)
	summary := s.Summarize(context.Background(), []models.Turn{
		{Role: "user", Content: long},
	})

	if len(summary) > len(fallbackPrefix)+fallbackLimit {
		t.Errorf("summary length = %d, want <= %d", len(summary), len(fallbackPrefix)+fallbackLimit)
	}
}

func TestSummarizeUsesLastTurnsOnly(t *testing.T) {
	var turns []models.Turn
	for i := 0; i < 10; i++ {
		turns = append(turns, models.Turn{Role: "user", Content: "t" + string(rune('a'+i))})
	}

	s := NewSummarizer(nil, logging.Nop())
	summary := s.Summarize(context.Background(), turns)

	if strings.Contains(summary, "ta") || strings.Contains(summary, "td") {
		t.Errorf("summary includes turns older than the window: %q", summary)
	}
	if !strings.Contains(summary, "tj") {
		t.Errorf("summary missing latest turn: %q", summary)
	}
}

func TestSummarizeWithCompleter(t *testing.T) {
	completer := llm.CompleterFunc(func(ctx context.Context, system, user string) (string, error) {
		if !strings.Contains(user, "buy milk") {
			t.Errorf("prompt missing history content: %q", user)
		}
		return " the user wants milk ", nil
	})

	s := NewSummarizer(completer, logging.Nop())
	summary := s.Summarize(context.Background(), []models.Turn{
		{Role: "user", Content: "buy milk"},
	})

	if summary != "the user wants milk" {
		t.Errorf("summary = %q", summary)
	}
}

func TestSummarizeCompleterFailureFallsBack(t *testing.T) {
	completer := llm.CompleterFunc(func(ctx context.Context, system, user string) (string, error) {
		return "", errors.New("provider down")
	})

	s := NewSummarizer(completer, logging.Nop())
	summary := s.Summarize(context.Background(), []models.Turn{
		{Role: "user", Content: "hi"},
	})

	if !strings.HasPrefix(summary, fallbackPrefix) {
		t.Errorf("summary = %q, want fallback", summary)
	}
}
