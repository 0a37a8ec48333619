package history

import (
	"path/filepath"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreAppendAndRecent(t *testing.T) {
	store := testStore(t)

	if err := store.Append("c1", "user", "hello"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Append("c1", "assistant", "hi there"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	turns, err := store.Recent("c1", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("turns = %d, want 2", len(turns))
	}
	if turns[0].Role != "user" || turns[0].Content != "hello" {
		t.Errorf("turn 0 = %+v", turns[0])
	}
	if turns[1].Role != "assistant" || turns[1].Content != "hi there" {
		t.Errorf("turn 1 = %+v", turns[1])
	}
}

func TestStoreRecentLimitKeepsLatest(t *testing.T) {
	store := testStore(t)

	for _, content := range []string{"one", "two", "three", "four"} {
		if err := store.Append("c1", "user", content); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	turns, err := store.Recent("c1", 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("turns = %d, want 2", len(turns))
	}
	if turns[0].Content != "three" || turns[1].Content != "four" {
		t.Errorf("turns = %+v, want latest two in order", turns)
	}
}

func TestStoreConversationsIsolated(t *testing.T) {
	store := testStore(t)

	store.Append("c1", "user", "about budgets")
	store.Append("c2", "user", "about deadlines")

	turns, err := store.Recent("c1", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(turns) != 1 || turns[0].Content != "about budgets" {
		t.Errorf("turns = %+v", turns)
	}
}

func TestStoreRecentUnknownConversation(t *testing.T) {
	store := testStore(t)

	turns, err := store.Recent("missing", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(turns) != 0 {
		t.Errorf("turns = %+v, want none", turns)
	}
}
