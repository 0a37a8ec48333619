package combine

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/ShayCichocki/maestro/pkg/models"
)

// DependencyPayload is the structured result the task dependency agent
// returns: which tasks block which, and a precomputed execution order.
type DependencyPayload struct {
	// Dependencies maps task id to the ids of its prerequisite tasks.
	Dependencies map[string][]string `json:"dependencies"`
	// ExecutionOrder lists task ids in topologically sorted order.
	ExecutionOrder []string `json:"execution_order"`
}

// DecodeDependencyPayload extracts a dependency payload from a step output.
// Returns false when the output does not carry one.
func DecodeDependencyPayload(out *models.OutputModel) (*DependencyPayload, bool) {
	if out == nil || out.Result == nil {
		return nil, false
	}

	raw, err := json.Marshal(out.Result)
	if err != nil {
		return nil, false
	}

	var payload DependencyPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, false
	}
	if len(payload.Dependencies) == 0 && len(payload.ExecutionOrder) == 0 {
		return nil, false
	}
	return &payload, true
}

// RenderDependencyAnswer formats a dependency payload as two sections: the
// tasks in execution order (ids resolved to names where the lookup provides
// one) and the tasks that declare dependencies.
func RenderDependencyAnswer(payload *DependencyPayload, taskNames map[string]string) string {
	var sb strings.Builder

	sb.WriteString("Execution order tasks:\n")
	for i, taskID := range payload.ExecutionOrder {
		name := taskNames[taskID]
		if name == "" {
			name = fmt.Sprintf("Task %s", taskID)
		}
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, name))
	}

	sb.WriteString("\nTasks with dependencies:\n")
	ids := make([]string, 0, len(payload.Dependencies))
	for taskID := range payload.Dependencies {
		ids = append(ids, taskID)
	}
	sort.Strings(ids)
	for _, taskID := range ids {
		name := taskNames[taskID]
		if name == "" {
			name = fmt.Sprintf("Task %s", taskID)
		}
		deps := payload.Dependencies[taskID]
		sb.WriteString(fmt.Sprintf("- %s (depends on %s)\n", name, strings.Join(deps, ", ")))
	}

	return strings.TrimRight(sb.String(), "\n")
}
