package registry

import (
	"os"
	"testing"
	"time"
)

func TestWatchReloadsOnWrite(t *testing.T) {
	path := writeRegistryFile(t, "agents:\n  - name: a\n    type: http\n")

	reg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := reg.Watch(nil); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer reg.Close()

	updated := "agents:\n  - name: a\n    type: http\n  - name: b\n    type: http\n"
	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		t.Fatalf("rewrite file: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if reg.Len() == 2 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Errorf("registry did not reload, Len = %d", reg.Len())
}

func TestWatchNoBackingFile(t *testing.T) {
	reg := FromAgents()
	if err := reg.Watch(nil); err != nil {
		t.Errorf("Watch on fileless registry should be a no-op, got %v", err)
	}
	reg.Close()
}
