package adapter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ShayCichocki/maestro/pkg/models"
)

// budgetStrategy speaks the budget tracker's contract: {"query": ...} out,
// a success-flagged body back instead of a status string.
type budgetStrategy struct{}

func (budgetStrategy) buildPayload(req *models.AgentRequest) any {
	return map[string]any{
		"query": req.Input.Text,
	}
}

func (budgetStrategy) parseResponse(requestID, agentName string, body []byte) *models.AgentResponse {
	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return models.ErrorResponse(requestID, agentName, models.ErrorTypeParse,
			fmt.Sprintf("Failed to parse agent response: %v", err))
	}

	success, _ := data["success"].(bool)
	if !success {
		message := stringOr(data["error"], stringOr(data["message"], "Unknown error from budget tracker agent"))
		return models.ErrorResponse(requestID, agentName, models.ErrorTypeAgent, message)
	}

	result := stringOr(data["response"], "")
	if result == "" {
		result = synthesizeBudgetText(data)
	}

	return models.SuccessResponse(requestID, agentName, result, indentJSON(data))
}

// synthesizeBudgetText builds display text from whichever budget fields are
// present when the agent sends no response text.
func synthesizeBudgetText(data map[string]any) string {
	var parts []string

	if remaining, ok := data["remaining"].(float64); ok {
		parts = append(parts, fmt.Sprintf("Remaining: $%.2f", remaining))
	}
	if project, ok := data["project_name"].(string); ok {
		parts = append(parts, fmt.Sprintf("Project: %s", project))
	}
	if risk, ok := data["overshoot_risk"]; ok {
		parts = append(parts, fmt.Sprintf("Overshoot Risk: %v", risk))
	}
	if recs := stringSlice(data["recommendations"]); len(recs) > 0 {
		parts = append(parts, fmt.Sprintf("Recommendations: %s", strings.Join(recs, ", ")))
	}

	if len(parts) == 0 {
		return compactJSON(data)
	}
	return strings.Join(parts, ". ")
}
