package adapter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ShayCichocki/maestro/pkg/models"
)

// progressIntentTasks maps planner intents to the progress agent's task
// vocabulary. The mapping is fixed; intents not listed here default to the
// accountability task. Do not infer additional entries.
var progressIntentTasks = map[string]string{
	"progress.track":          "accountability",
	"progress.accountability": "accountability",
	"goal.create":             "freeform_message", // freeform handles natural language goal creation
	"goal.update":             "goal",
	"reflection.add":          "freeform_message",
	"reflection.analyze":      "analyze_reflections",
	"productivity.report":     "generate_report",
	"productivity.insights":   "get_insights",
	"productivity.freeform":   "freeform_message",
}

// progressStrategy speaks the progress/accountability agent's contract:
// {user_id, task, params} out, a status-keyed vocabulary back.
type progressStrategy struct{}

func (progressStrategy) buildPayload(req *models.AgentRequest) any {
	userID := stringOr(req.Context["user_id"], "anonymous")

	task, ok := progressIntentTasks[req.Intent]
	if !ok {
		task = "accountability"
	}

	params := map[string]any{}
	switch {
	case task == "freeform_message":
		params["message"] = req.Input.Text
	case task == "goal":
		// The agent's freeform handler parses goals from natural language.
		params["message"] = req.Input.Text
		task = "freeform_message"
	case req.Intent == "goal.update" && req.Context["goal_id"] != nil && req.Context["progress"] != nil:
		params["goal_id"] = req.Context["goal_id"]
		params["progress"] = req.Context["progress"]
	}

	return map[string]any{
		"user_id": userID,
		"task":    task,
		"params":  params,
	}
}

func (progressStrategy) parseResponse(requestID, agentName string, body []byte) *models.AgentResponse {
	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return models.ErrorResponse(requestID, agentName, models.ErrorTypeParse,
			fmt.Sprintf("Failed to parse agent response: %v", err))
	}

	status, _ := data["status"].(string)
	details := indentJSON(data)

	switch status {
	case "ok":
		payload := firstPresent(data, "payload", "analysis", "report", "insights")
		var result string
		if m, ok := payload.(map[string]any); ok {
			if _, hasGenerated := m["generated_at"]; hasGenerated {
				result = formatAccountability(m)
			} else {
				result = indentJSON(m)
			}
		} else if payload != nil {
			result = fmt.Sprintf("%v", payload)
		} else {
			result = indentJSON(map[string]any{})
		}
		return models.SuccessResponse(requestID, agentName, result, details)

	case "created":
		return models.SuccessResponse(requestID, agentName, formatGoalCreated(data), details)

	case "saved":
		return models.SuccessResponse(requestID, agentName, formatReflectionSaved(data), details)

	case "incomplete":
		message := stringOr(data["message"], "Some information is missing.")
		missing := stringSlice(firstPresent(data, "missing_fields", "missing_parts"))
		missingText := "unknown"
		if len(missing) > 0 {
			missingText = strings.Join(missing, ", ")
		}
		result := fmt.Sprintf("%s\nMissing: %s", message, missingText)
		return models.SuccessResponse(requestID, agentName, result, details)

	case "error":
		message := stringOr(data["message"], "Unknown error from "+agentName)
		return models.ErrorResponse(requestID, agentName, models.ErrorTypeAgent, message)

	default:
		// Unrecognized status: still accept and render heuristically from
		// whichever known keys are present.
		var result string
		switch {
		case hasAny(data, "generated_at", "goal_risks", "performance_metrics"):
			result = formatAccountability(data)
		case data["reply"] != nil:
			result = stringOr(data["reply"], "")
		case data["message"] != nil:
			result = stringOr(data["message"], "")
		default:
			result = indentJSON(data)
		}
		return models.SuccessResponse(requestID, agentName, result, details)
	}
}

// firstPresent returns the first value present under the given keys.
func firstPresent(data map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := data[k]; ok {
			return v
		}
	}
	return nil
}

// hasAny returns true if any of the keys is present.
func hasAny(data map[string]any, keys ...string) bool {
	for _, k := range keys {
		if _, ok := data[k]; ok {
			return true
		}
	}
	return false
}

// stringSlice coerces a decoded JSON list into strings.
func stringSlice(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
