// Package tasks provides the task-lookup collaborator used when rendering
// dependency answers: it resolves task ids to human-readable names.
package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Task is one entry from the task listing endpoint.
type Task struct {
	// TaskID is the task's identifier.
	TaskID string `json:"task_id"`
	// TaskName is the task's display name.
	TaskName string `json:"task_name"`
}

// listResponse is the endpoint's reply shape.
type listResponse struct {
	Tasks []Task `json:"tasks"`
}

// Client fetches the task id -> name listing from a companion service.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a task-lookup client for the given endpoint.
// An empty endpoint yields a client whose lookups return no names; ids then
// render unresolved.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint: endpoint,
		http:     httpClient,
	}
}

// Names fetches the listing and returns a task id -> name map.
func (c *Client) Names(ctx context.Context) (map[string]string, error) {
	if c.endpoint == "" {
		return map[string]string{}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build task listing request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch task listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("task listing returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read task listing: %w", err)
	}

	var parsed listResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse task listing: %w", err)
	}

	names := make(map[string]string, len(parsed.Tasks))
	for _, t := range parsed.Tasks {
		names[t.TaskID] = t.TaskName
	}
	return names, nil
}
