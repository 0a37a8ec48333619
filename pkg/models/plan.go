package models

import (
	"fmt"
	"strconv"
	"strings"
)

// InputSourceQuery marks a step whose input is the original user query.
const InputSourceQuery = "user_query"

// stepSourcePrefix prefixes an input source referencing a prior step.
const stepSourcePrefix = "step:"

// PlanStep names one agent invocation within a plan.
type PlanStep struct {
	// StepID is the step's stable position in the plan (0-based). It keys
	// the executor's output mapping.
	StepID int `json:"step_id"`
	// Agent is a name reference into the registry.
	Agent string `json:"agent"`
	// Intent is the string tag passed to the agent.
	Intent string `json:"intent"`
	// InputSource is either "user_query" or "step:<id>" referencing a prior
	// step's output text.
	InputSource string `json:"input_source"`
}

// DependsOn returns the step id this step's input references, if any.
func (s PlanStep) DependsOn() (int, bool) {
	if !strings.HasPrefix(s.InputSource, stepSourcePrefix) {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimPrefix(s.InputSource, stepSourcePrefix))
	if err != nil {
		return 0, false
	}
	return id, true
}

// StepSource builds an input source referencing a prior step's output.
func StepSource(stepID int) string {
	return fmt.Sprintf("%s%d", stepSourcePrefix, stepID)
}

// Plan is an ordered sequence of steps produced by the planner for a single
// query and discarded once the combiner has run.
type Plan struct {
	// Steps are ordered as planned. Empty steps is a valid outcome meaning
	// the query is out of scope for the registered agents.
	Steps []PlanStep `json:"steps"`
}

// Empty returns true if the plan has no steps.
func (p *Plan) Empty() bool {
	return p == nil || len(p.Steps) == 0
}

// Turn is one prior conversation exchange passed to the history summarizer.
type Turn struct {
	// Role is the speaker (user, assistant).
	Role string `json:"role"`
	// Content is the turn's text.
	Content string `json:"content"`
}

// ToolOutput is one per-agent result record handed to the combiner.
type ToolOutput struct {
	// Agent is the agent's registry name.
	Agent string `json:"agent"`
	// Status is success or error.
	Status ResponseStatus `json:"status"`
	// Result is the display text for a successful call.
	Result string `json:"result,omitempty"`
	// Error describes a failed call.
	Error string `json:"error,omitempty"`
}

// CombinedAnswerRequest is the combiner's input for one query.
type CombinedAnswerRequest struct {
	// UserQuery is the original query text.
	UserQuery string `json:"user_query"`
	// ToolOutputs are the per-agent result records, in step order.
	ToolOutputs []ToolOutput `json:"tool_outputs"`
	// HistorySummary is optional summarized conversation context.
	HistorySummary string `json:"history_summary,omitempty"`
}

// CombinedAnswerResponse is the combiner's output.
type CombinedAnswerResponse struct {
	// CombinedAnswer is the single consolidated answer text.
	CombinedAnswer string `json:"combined_answer"`
}
