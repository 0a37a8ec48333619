package adapter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ShayCichocki/maestro/pkg/models"
)

func progressRequest(intent, text string, callCtx map[string]any) *models.AgentRequest {
	if callCtx == nil {
		callCtx = map[string]any{}
	}
	return &models.AgentRequest{
		RequestID: "req-1",
		AgentName: ProgressAgent,
		Intent:    intent,
		Input:     models.AgentInput{Text: text},
		Context:   callCtx,
	}
}

func TestProgressIntentTaskMapping(t *testing.T) {
	tests := []struct {
		intent string
		task   string
	}{
		{"progress.track", "accountability"},
		{"progress.accountability", "accountability"},
		{"goal.create", "freeform_message"},
		{"goal.update", "freeform_message"}, // goal task rewrites to freeform
		{"reflection.add", "freeform_message"},
		{"reflection.analyze", "analyze_reflections"},
		{"productivity.report", "generate_report"},
		{"productivity.insights", "get_insights"},
		{"productivity.freeform", "freeform_message"},
		{"something.unknown", "accountability"},
	}

	for _, tt := range tests {
		payload := progressStrategy{}.buildPayload(progressRequest(tt.intent, "hi", nil)).(map[string]any)
		if payload["task"] != tt.task {
			t.Errorf("intent %s: task = %v, want %s", tt.intent, payload["task"], tt.task)
		}
	}
}

func TestProgressBuildPayloadDefaults(t *testing.T) {
	payload := progressStrategy{}.buildPayload(progressRequest("progress.track", "how am I doing", nil)).(map[string]any)

	if payload["user_id"] != "anonymous" {
		t.Errorf("user_id = %v, want anonymous", payload["user_id"])
	}
	params, _ := payload["params"].(map[string]any)
	if len(params) != 0 {
		t.Errorf("params = %v, want empty", params)
	}
}

func TestProgressBuildPayloadFreeform(t *testing.T) {
	payload := progressStrategy{}.buildPayload(progressRequest("goal.create", "run 5k by june", map[string]any{
		"user_id": "u1",
	})).(map[string]any)

	if payload["user_id"] != "u1" {
		t.Errorf("user_id = %v", payload["user_id"])
	}
	if payload["task"] != "freeform_message" {
		t.Errorf("task = %v", payload["task"])
	}
	params, _ := payload["params"].(map[string]any)
	if params["message"] != "run 5k by june" {
		t.Errorf("params.message = %v", params["message"])
	}
}

func TestProgressBuildPayloadGoalUpdateWithIDs(t *testing.T) {
	// goal.update maps to the goal task, which rewrites to freeform_message
	// with the text as the message. The structured goal_id/progress branch
	// only fires for intents outside the task map.
	payload := progressStrategy{}.buildPayload(progressRequest("goal.update", "bump my goal", map[string]any{
		"goal_id":  "g-1",
		"progress": 0.5,
	})).(map[string]any)

	params, _ := payload["params"].(map[string]any)
	if params["message"] != "bump my goal" {
		t.Errorf("params.message = %v", params["message"])
	}
}

func TestProgressParseOKAccountability(t *testing.T) {
	body, _ := json.Marshal(map[string]any{
		"status": "ok",
		"payload": map[string]any{
			"generated_at": "2026-08-28T10:00:00Z",
			"user_id":      "u1",
			"performance_metrics": map[string]any{
				"total_goals":        4,
				"completed_goals":    2,
				"in_progress_goals":  1,
				"missed_goals":       1,
				"completion_rate":    0.5,
				"productivity_trend": "steady",
			},
			"goal_risks": map[string]any{
				"goal-abcdef123": map[string]any{
					"risk":             "high",
					"days_to_deadline": 3,
					"eta":              "2026-09-01",
				},
			},
		},
	})

	resp := progressStrategy{}.parseResponse("req-1", ProgressAgent, body)
	if !resp.Succeeded() {
		t.Fatalf("expected success, got %+v", resp)
	}

	text := resp.Output.Text()
	for _, want := range []string{
		"Accountability Report (Generated: 2026-08-28T10:00:00Z)",
		"User: u1",
		"Completion Rate: 50.0%",
		"Goal goal-abc...: HIGH risk (3 days to deadline, ETA: 2026-09-01)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("result missing %q in:\n%s", want, text)
		}
	}
}

func TestProgressParseCreated(t *testing.T) {
	body, _ := json.Marshal(map[string]any{
		"status":  "created",
		"goal_id": "g-99",
		"used_data": map[string]any{
			"title":     "Run a marathon",
			"category":  "health",
			"goal_type": "habit",
			"deadline":  "2026-12-01",
			"priority":  2,
		},
	})

	resp := progressStrategy{}.parseResponse("req-1", ProgressAgent, body)
	if !resp.Succeeded() {
		t.Fatalf("expected success, got %+v", resp)
	}

	text := resp.Output.Text()
	for _, want := range []string{
		"Goal Created Successfully!",
		"Goal ID: g-99",
		"Title: Run a marathon",
		"Priority: 2",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("result missing %q in:\n%s", want, text)
		}
	}
}

func TestProgressParseSaved(t *testing.T) {
	body, _ := json.Marshal(map[string]any{
		"status":        "saved",
		"reflection_id": "r-7",
	})

	resp := progressStrategy{}.parseResponse("req-1", ProgressAgent, body)
	if !resp.Succeeded() {
		t.Fatalf("expected success, got %+v", resp)
	}
	if !strings.Contains(resp.Output.Text(), "Reflection Saved Successfully!") {
		t.Errorf("result = %q", resp.Output.Text())
	}
	if !strings.Contains(resp.Output.Text(), "Reflection ID: r-7") {
		t.Errorf("result = %q", resp.Output.Text())
	}
}

func TestProgressParseIncomplete(t *testing.T) {
	body, _ := json.Marshal(map[string]any{
		"status":         "incomplete",
		"message":        "Need more details.",
		"missing_fields": []string{"deadline", "title"},
	})

	resp := progressStrategy{}.parseResponse("req-1", ProgressAgent, body)
	if !resp.Succeeded() {
		t.Fatalf("expected success, got %+v", resp)
	}
	want := "Need more details.\nMissing: deadline, title"
	if resp.Output.Text() != want {
		t.Errorf("result = %q, want %q", resp.Output.Text(), want)
	}
}

func TestProgressParseIncompleteNoFields(t *testing.T) {
	body := []byte(`{"status": "incomplete"}`)

	resp := progressStrategy{}.parseResponse("req-1", ProgressAgent, body)
	want := "Some information is missing.\nMissing: unknown"
	if resp.Output.Text() != want {
		t.Errorf("result = %q, want %q", resp.Output.Text(), want)
	}
}

func TestProgressParseErrorStatus(t *testing.T) {
	body := []byte(`{"status": "error", "message": "db unavailable"}`)

	resp := progressStrategy{}.parseResponse("req-1", ProgressAgent, body)
	if resp.Succeeded() {
		t.Fatal("expected error response")
	}
	if resp.Error.Type != models.ErrorTypeAgent {
		t.Errorf("error type = %s", resp.Error.Type)
	}
	if resp.Error.Message != "db unavailable" {
		t.Errorf("message = %q", resp.Error.Message)
	}
}

func TestProgressParseUnknownStatusReply(t *testing.T) {
	body := []byte(`{"status": "chatty", "reply": "sure thing"}`)

	resp := progressStrategy{}.parseResponse("req-1", ProgressAgent, body)
	if !resp.Succeeded() {
		t.Fatalf("expected success, got %+v", resp)
	}
	if resp.Output.Text() != "sure thing" {
		t.Errorf("result = %q", resp.Output.Text())
	}
}

func TestProgressParseMalformed(t *testing.T) {
	resp := progressStrategy{}.parseResponse("req-1", ProgressAgent, []byte("nope"))
	if resp.Succeeded() {
		t.Fatal("expected error response")
	}
	if resp.Error.Type != models.ErrorTypeParse {
		t.Errorf("error type = %s", resp.Error.Type)
	}
}
