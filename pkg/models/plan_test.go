package models

import "testing"

func TestDependsOn(t *testing.T) {
	tests := []struct {
		source string
		id     int
		ok     bool
	}{
		{InputSourceQuery, 0, false},
		{"step:0", 0, true},
		{"step:12", 12, true},
		{"step:abc", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		id, ok := (PlanStep{InputSource: tt.source}).DependsOn()
		if id != tt.id || ok != tt.ok {
			t.Errorf("DependsOn(%q) = (%d, %v), want (%d, %v)", tt.source, id, ok, tt.id, tt.ok)
		}
	}
}

func TestStepSource(t *testing.T) {
	if got := StepSource(3); got != "step:3" {
		t.Errorf("StepSource(3) = %q", got)
	}
}

func TestPlanEmpty(t *testing.T) {
	var nilPlan *Plan
	if !nilPlan.Empty() {
		t.Error("nil plan should be empty")
	}
	if !(&Plan{}).Empty() {
		t.Error("plan with no steps should be empty")
	}
	if (&Plan{Steps: []PlanStep{{}}}).Empty() {
		t.Error("plan with steps should not be empty")
	}
}
