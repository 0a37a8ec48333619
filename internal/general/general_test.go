package general

import (
	"strings"
	"testing"
)

func TestHandleQueryGreeting(t *testing.T) {
	result := HandleQuery("Hello there")

	if result.Kind != KindGeneral {
		t.Errorf("kind = %s, want %s", result.Kind, KindGeneral)
	}
	if !strings.Contains(result.Answer, "Hello") {
		t.Errorf("answer = %q", result.Answer)
	}
}

func TestHandleQueryAbusive(t *testing.T) {
	result := HandleQuery("you are stupid")

	if result.Kind != KindBlocked {
		t.Errorf("kind = %s, want %s", result.Kind, KindBlocked)
	}
	if !strings.Contains(result.Answer, "can't help") {
		t.Errorf("answer = %q", result.Answer)
	}
}

func TestHandleQueryEmpty(t *testing.T) {
	result := HandleQuery("   ")

	if result.Kind != KindGeneral {
		t.Errorf("kind = %s, want %s", result.Kind, KindGeneral)
	}
}

func TestHandleQueryPassthrough(t *testing.T) {
	tests := []string{
		"summarize this document",
		"how much budget is left",
		"what are my task dependencies",
	}
	for _, q := range tests {
		if result := HandleQuery(q); result.Kind != KindNone {
			t.Errorf("query %q: kind = %s, want passthrough", q, result.Kind)
		}
	}
}

func TestOutOfScope(t *testing.T) {
	result := OutOfScope()

	if result.Kind != KindOutOfScope {
		t.Errorf("kind = %s", result.Kind)
	}
	if result.Answer != OutOfScopeAnswer {
		t.Errorf("answer = %q", result.Answer)
	}
}
