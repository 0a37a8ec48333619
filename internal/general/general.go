// Package general handles queries that never reach the agent pipeline:
// greetings, abusive input, and anything the planner finds out of scope.
package general

import "strings"

// Kind classifies how a query was handled outside the agent pipeline.
type Kind string

const (
	// KindGeneral indicates a conversational query answered directly.
	KindGeneral Kind = "general"
	// KindBlocked indicates abusive input that was refused.
	KindBlocked Kind = "blocked"
	// KindOutOfScope indicates no agent applies to the query.
	KindOutOfScope Kind = "out_of_scope"
	// KindNone indicates the query should proceed to the agent pipeline.
	KindNone Kind = ""
)

// Result is the outcome of general-query handling.
type Result struct {
	// Kind classifies the outcome.
	Kind Kind
	// Answer is the user-facing text, when Kind is not KindNone.
	Answer string
}

// greetings are phrases that mark a query as conversational.
var greetings = []string{
	"hello", "hi ", "hi!", "hey", "good morning", "good afternoon", "good evening",
	"how are you", "what's up", "whats up",
}

// abusive are phrases that mark a query as hostile.
var abusive = []string{
	"stupid", "idiot", "dumb", "useless", "shut up", "hate you",
}

// OutOfScopeAnswer is returned when the planner produces an empty plan.
const OutOfScopeAnswer = "I couldn't find an agent that can help with that. " +
	"Try asking about documents, deadlines, budgets, goals, or task dependencies."

// HandleQuery routes greetings and abusive input before any planning
// happens. Returns KindNone when the query should proceed to the pipeline.
func HandleQuery(query string) Result {
	lowered := strings.ToLower(strings.TrimSpace(query))
	if lowered == "" {
		return Result{
			Kind:   KindGeneral,
			Answer: "Hello! Ask me something and I'll route it to the right agent.",
		}
	}

	for _, phrase := range abusive {
		if strings.Contains(lowered, phrase) {
			return Result{
				Kind:   KindBlocked,
				Answer: "I can't help with that. Let's keep things constructive.",
			}
		}
	}

	for _, phrase := range greetings {
		if lowered == strings.TrimSpace(phrase) || strings.HasPrefix(lowered, phrase) {
			return Result{
				Kind:   KindGeneral,
				Answer: "Hello! I can summarize documents, check deadline risk, track budgets and goals, and resolve task dependencies. What do you need?",
			}
		}
	}

	return Result{Kind: KindNone}
}

// OutOfScope builds the empty-plan outcome.
func OutOfScope() Result {
	return Result{
		Kind:   KindOutOfScope,
		Answer: OutOfScopeAnswer,
	}
}
