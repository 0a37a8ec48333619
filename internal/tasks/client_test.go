package tasks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNamesFromListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tasks": [
			{"task_id": "t1", "task_name": "Implement Auth"},
			{"task_id": "t2", "task_name": "Build Dashboard"}
		]}`))
	}))
	defer srv.Close()

	names, err := NewClient(srv.URL, srv.Client()).Names(context.Background())
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	if names["t1"] != "Implement Auth" || names["t2"] != "Build Dashboard" {
		t.Errorf("names = %v", names)
	}
}

func TestNamesEmptyEndpoint(t *testing.T) {
	names, err := NewClient("", nil).Names(context.Background())
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("names = %v, want empty", names)
	}
}

func TestNamesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL, srv.Client()).Names(context.Background()); err == nil {
		t.Error("expected error on non-200")
	}
}

func TestNamesBadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL, srv.Client()).Names(context.Background()); err == nil {
		t.Error("expected error on bad body")
	}
}
