package adapter

import (
	"fmt"
	"strings"
)

// formatAccountability renders an accountability payload into readable text:
// header, performance metrics, goal risk table, reflection availability.
func formatAccountability(data map[string]any) string {
	var lines []string

	if generatedAt := stringOr(data["generated_at"], ""); generatedAt != "" {
		lines = append(lines, fmt.Sprintf("Accountability Report (Generated: %s)", generatedAt))
		lines = append(lines, strings.Repeat("-", 50))
	}

	lines = append(lines, fmt.Sprintf("User: %s", stringOr(data["user_id"], "anonymous")))
	lines = append(lines, "")

	if metrics, ok := data["performance_metrics"].(map[string]any); ok {
		if msg := stringOr(metrics["message"], ""); msg != "" {
			lines = append(lines, fmt.Sprintf("Performance: %s", msg))
		} else {
			lines = append(lines, "Performance Metrics:")
			lines = append(lines, fmt.Sprintf("  - Total Goals: %d", intOr(metrics["total_goals"], 0)))
			lines = append(lines, fmt.Sprintf("  - Completed: %d", intOr(metrics["completed_goals"], 0)))
			lines = append(lines, fmt.Sprintf("  - In Progress: %d", intOr(metrics["in_progress_goals"], 0)))
			lines = append(lines, fmt.Sprintf("  - Missed: %d", intOr(metrics["missed_goals"], 0)))
			lines = append(lines, fmt.Sprintf("  - Completion Rate: %.1f%%", floatOr(metrics["completion_rate"], 0)*100))
			lines = append(lines, fmt.Sprintf("  - Productivity Trend: %s", stringOr(metrics["productivity_trend"], "N/A")))
		}
	}
	lines = append(lines, "")

	if risks, ok := data["goal_risks"].(map[string]any); ok && len(risks) > 0 {
		lines = append(lines, "Goal Risks:")
		for goalID, raw := range risks {
			info, _ := raw.(map[string]any)
			riskLevel := stringOr(info["risk"], "unknown")
			days := valueOr(info["days_to_deadline"], "?")
			eta := stringOr(info["eta"], "N/A")
			lines = append(lines, fmt.Sprintf("  - Goal %s...: %s risk (%v days to deadline, ETA: %s)",
				truncateID(goalID, 8), strings.ToUpper(riskLevel), days, eta))
		}
	} else {
		lines = append(lines, "Goal Risks: None")
	}
	lines = append(lines, "")

	if reflection, ok := data["reflection_summary"].(map[string]any); ok {
		if msg := stringOr(reflection["message"], ""); msg != "" {
			lines = append(lines, fmt.Sprintf("Reflections: %s", msg))
		} else {
			lines = append(lines, "Reflection Summary: Available")
		}
	}

	return strings.Join(lines, "\n")
}

// formatGoalCreated renders a goal-creation confirmation.
func formatGoalCreated(data map[string]any) string {
	var lines []string
	lines = append(lines, "Goal Created Successfully!")
	lines = append(lines, strings.Repeat("-", 30))
	lines = append(lines, fmt.Sprintf("Goal ID: %s", stringOr(data["goal_id"], "unknown")))

	if used, ok := data["used_data"].(map[string]any); ok && len(used) > 0 {
		lines = append(lines, fmt.Sprintf("Title: %s", stringOr(used["title"], "N/A")))
		lines = append(lines, fmt.Sprintf("Category: %s", stringOr(used["category"], "N/A")))
		lines = append(lines, fmt.Sprintf("Type: %s", stringOr(used["goal_type"], "N/A")))
		lines = append(lines, fmt.Sprintf("Deadline: %s", stringOr(used["deadline"], "N/A")))
		lines = append(lines, fmt.Sprintf("Priority: %v", valueOr(used["priority"], "N/A")))
	}

	return strings.Join(lines, "\n")
}

// formatReflectionSaved renders a reflection-saved confirmation.
func formatReflectionSaved(data map[string]any) string {
	var lines []string
	lines = append(lines, "Reflection Saved Successfully!")
	lines = append(lines, strings.Repeat("-", 30))

	if reflectionID := stringOr(data["reflection_id"], ""); reflectionID != "" {
		lines = append(lines, fmt.Sprintf("Reflection ID: %s", reflectionID))
	}

	return strings.Join(lines, "\n")
}

// truncateID shortens an identifier for display.
func truncateID(id string, n int) string {
	if len(id) <= n {
		return id
	}
	return id[:n]
}

// intOr coerces a decoded JSON number into an int.
func intOr(v any, fallback int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return fallback
	}
}

// floatOr coerces a decoded JSON number into a float64.
func floatOr(v any, fallback float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return fallback
	}
}

// valueOr returns v unless it is nil.
func valueOr(v any, fallback any) any {
	if v == nil {
		return fallback
	}
	return v
}
