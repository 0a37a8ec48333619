package adapter

import (
	"encoding/json"
	"fmt"

	"github.com/ShayCichocki/maestro/pkg/models"
)

// Well-known agent names with bespoke wire contracts.
const (
	// BudgetAgent expects {"query": ...} and replies with a success flag.
	BudgetAgent = "budget_tracker_agent"
	// ProgressAgent expects {user_id, task, params} and replies with a
	// status vocabulary of its own.
	ProgressAgent = "progress_accountability_agent"
	// TaskDependencyAgent returns a structured dependencies payload that
	// the combiner renders as ordered sections.
	TaskDependencyAgent = "task_dependency_agent"
)

// strategy is one agent family's request/response translation pair.
// Adding an integration means adding a strategy, not growing a branch chain.
type strategy interface {
	// buildPayload converts the canonical request into the agent's native
	// request body.
	buildPayload(req *models.AgentRequest) any
	// parseResponse converts the agent's 200 reply body into a canonical
	// response. Parse failures yield parse_error, never a Go error.
	parseResponse(requestID, agentName string, body []byte) *models.AgentResponse
}

// strategies maps agent name to its translation strategy. Agents not listed
// here speak the canonical envelope natively.
var strategies = map[string]strategy{
	BudgetAgent:   budgetStrategy{},
	ProgressAgent: progressStrategy{},
}

// strategyFor selects the translation strategy for an agent.
func strategyFor(agentName string) strategy {
	if s, ok := strategies[agentName]; ok {
		return s
	}
	return genericStrategy{}
}

// genericStrategy passes the canonical envelope through verbatim and expects
// a canonical envelope back.
type genericStrategy struct{}

func (genericStrategy) buildPayload(req *models.AgentRequest) any {
	return req
}

func (genericStrategy) parseResponse(requestID, agentName string, body []byte) *models.AgentResponse {
	var resp models.AgentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.ErrorResponse(requestID, agentName, models.ErrorTypeParse,
			fmt.Sprintf("Failed to parse agent response: %v", err))
	}
	return &resp
}

// indentJSON renders a decoded value as indented JSON for the details field.
func indentJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}

// compactJSON renders a decoded value as compact JSON.
func compactJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
