package combine

import (
	"strings"
	"testing"

	"github.com/ShayCichocki/maestro/pkg/models"
)

func TestDecodeDependencyPayload(t *testing.T) {
	out := &models.OutputModel{
		Result: map[string]any{
			"dependencies": map[string]any{
				"t2": []any{"t1"},
			},
			"execution_order": []any{"t1", "t2"},
		},
	}

	payload, ok := DecodeDependencyPayload(out)
	if !ok {
		t.Fatal("expected payload to decode")
	}
	if len(payload.ExecutionOrder) != 2 || payload.ExecutionOrder[0] != "t1" {
		t.Errorf("execution order = %v", payload.ExecutionOrder)
	}
	if deps := payload.Dependencies["t2"]; len(deps) != 1 || deps[0] != "t1" {
		t.Errorf("dependencies = %v", payload.Dependencies)
	}
}

func TestDecodeDependencyPayloadRejectsNonDependencyResults(t *testing.T) {
	tests := []struct {
		name string
		out  *models.OutputModel
	}{
		{"nil output", nil},
		{"string result", &models.OutputModel{Result: "just text"}},
		{"empty payload", &models.OutputModel{Result: map[string]any{}}},
		{"unrelated map", &models.OutputModel{Result: map[string]any{"foo": "bar"}}},
	}

	for _, tt := range tests {
		if _, ok := DecodeDependencyPayload(tt.out); ok {
			t.Errorf("%s: expected decode to fail", tt.name)
		}
	}
}

func TestRenderDependencyAnswer(t *testing.T) {
	payload := &DependencyPayload{
		Dependencies: map[string][]string{
			"t2": {"t1"},
			"t3": {"t1", "t2"},
		},
		ExecutionOrder: []string{"t1", "t2", "t3"},
	}
	names := map[string]string{
		"t1": "Implement Auth",
		"t2": "Build Dashboard",
	}

	answer := RenderDependencyAnswer(payload, names)

	wantOrder := "Execution order tasks:\n1. Implement Auth\n2. Build Dashboard\n3. Task t3"
	if !strings.Contains(answer, wantOrder) {
		t.Errorf("answer missing execution order section:\n%s", answer)
	}

	wantDeps := "Tasks with dependencies:\n- Build Dashboard (depends on t1)\n- Task t3 (depends on t1, t2)"
	if !strings.Contains(answer, wantDeps) {
		t.Errorf("answer missing dependencies section:\n%s", answer)
	}
}

func TestRenderDependencyAnswerNoNames(t *testing.T) {
	payload := &DependencyPayload{
		ExecutionOrder: []string{"a"},
	}

	answer := RenderDependencyAnswer(payload, map[string]string{})
	if !strings.Contains(answer, "1. Task a") {
		t.Errorf("answer = %q", answer)
	}
}
