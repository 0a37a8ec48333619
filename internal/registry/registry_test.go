package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ShayCichocki/maestro/pkg/models"
)

func writeRegistryFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agents.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write registry file: %v", err)
	}
	return path
}

const validRegistry = `
agents:
  - name: budget_tracker_agent
    type: http
    endpoint: http://localhost:8103/run
    timeout_ms: 5000
    intent: budget.query
    keywords: [budget, spend]
  - name: local_tool
    type: cli
`

func TestLoadRegistry(t *testing.T) {
	reg, err := Load(writeRegistryFile(t, validRegistry))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if reg.Len() != 2 {
		t.Fatalf("Len = %d, want 2", reg.Len())
	}

	meta, ok := reg.Get("budget_tracker_agent")
	if !ok {
		t.Fatal("budget_tracker_agent not found")
	}
	if meta.Type != models.AgentTypeHTTP {
		t.Errorf("type = %s", meta.Type)
	}
	if meta.Endpoint != "http://localhost:8103/run" {
		t.Errorf("endpoint = %s", meta.Endpoint)
	}
	if meta.TimeoutMS != 5000 {
		t.Errorf("timeout_ms = %d", meta.TimeoutMS)
	}
	if len(meta.Keywords) != 2 {
		t.Errorf("keywords = %v", meta.Keywords)
	}
}

func TestLoadRegistryListSorted(t *testing.T) {
	reg, err := Load(writeRegistryFile(t, validRegistry))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	list := reg.List()
	if list[0].Name != "budget_tracker_agent" || list[1].Name != "local_tool" {
		t.Errorf("list order = %v", []string{list[0].Name, list[1].Name})
	}
}

func TestLoadRegistryMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadRegistryRejectsEmptyName(t *testing.T) {
	path := writeRegistryFile(t, "agents:\n  - type: http\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for empty agent name")
	}
}

func TestLoadRegistryRejectsUnknownType(t *testing.T) {
	path := writeRegistryFile(t, "agents:\n  - name: a\n    type: grpc\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown agent type")
	}
}

func TestLoadRegistryRejectsDuplicates(t *testing.T) {
	path := writeRegistryFile(t, "agents:\n  - name: a\n    type: http\n  - name: a\n    type: http\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for duplicate agent")
	}
}

func TestReloadKeepsPreviousOnError(t *testing.T) {
	path := writeRegistryFile(t, validRegistry)
	reg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := os.WriteFile(path, []byte("agents: ["), 0644); err != nil {
		t.Fatalf("corrupt file: %v", err)
	}

	if err := reg.Reload(); err == nil {
		t.Error("expected reload error")
	}
	if reg.Len() != 2 {
		t.Errorf("Len = %d after failed reload, want previous contents", reg.Len())
	}
}

func TestFromAgents(t *testing.T) {
	reg := FromAgents(models.AgentMetadata{Name: "a", Type: models.AgentTypeHTTP})

	if _, ok := reg.Get("a"); !ok {
		t.Error("agent a not found")
	}
	if err := reg.Reload(); err == nil {
		t.Error("expected error reloading a registry with no backing file")
	}
}
