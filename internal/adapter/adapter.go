// Package adapter normalizes each agent's bespoke request/response contract
// into the canonical envelope. It is the single seam that absorbs protocol
// heterogeneity: every failure path returns a typed ErrorModel inside a
// normal AgentResponse, and nothing throws past it.
package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/ShayCichocki/maestro/internal/logging"
	"github.com/ShayCichocki/maestro/pkg/models"
)

// HTTPDoer is the slice of http.Client the adapter needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Caller dispatches canonical requests to agents over their native
// transports and contracts.
type Caller struct {
	http HTTPDoer
	log  *logging.Logger
}

// NewCaller creates a Caller using the given HTTP client.
// A nil client is allowed; HTTP agents then fail with config_error instead
// of panicking, mirroring a missing client library.
func NewCaller(client HTTPDoer, log *logging.Logger) *Caller {
	return &Caller{
		http: client,
		log:  log,
	}
}

// CallAgent builds the canonical request envelope, dispatches it over the
// agent's transport, and translates the reply into a canonical response.
// customInput, when non-nil, replaces the default input payload for generic
// agents. CallAgent never returns a Go error: every failure is a typed
// error inside the response.
func (c *Caller) CallAgent(ctx context.Context, meta models.AgentMetadata, intent, text string, callCtx map[string]any, customInput map[string]any) *models.AgentResponse {
	requestID := uuid.New().String()

	req := &models.AgentRequest{
		RequestID: requestID,
		AgentName: meta.Name,
		Intent:    intent,
		Input: models.AgentInput{
			Text:     text,
			Metadata: c.buildMetadata(meta.Name, callCtx),
		},
		Context: callCtx,
	}

	switch {
	case meta.Type == models.AgentTypeHTTP && meta.Endpoint != "" && c.http != nil:
		return c.dispatchHTTP(ctx, meta, req, customInput)
	case meta.Type == models.AgentTypeHTTP && c.http == nil:
		return models.ErrorResponse(requestID, meta.Name, models.ErrorTypeConfig,
			"HTTP client not installed for agent calls")
	case meta.Type == models.AgentTypeCLI:
		return models.ErrorResponse(requestID, meta.Name, models.ErrorTypeNotImplemented,
			"CLI agent execution is not implemented")
	default:
		return models.ErrorResponse(requestID, meta.Name, models.ErrorTypeConfig,
			"Agent endpoint/command not configured")
	}
}

// buildMetadata assembles the request metadata block: a fixed language tag,
// an extra map, and the first file upload from the context, if any.
// Only a single file is forwarded even when several are present; this is a
// documented limitation of the agent contract.
func (c *Caller) buildMetadata(agentName string, callCtx map[string]any) map[string]any {
	metadata := map[string]any{
		"language": "en",
		"extra":    map[string]any{},
	}

	uploads := fileUploads(callCtx)
	if len(uploads) == 0 {
		c.log.Log("[adapter] no file uploads in context for %s", agentName)
		return metadata
	}

	first := uploads[0]
	base64Data, _ := first["base64_data"].(string)
	if base64Data == "" {
		c.log.Log("[adapter] file upload found but base64_data is empty for %s", agentName)
		return metadata
	}

	metadata["file_base64"] = base64Data
	metadata["mime_type"] = stringOr(first["mime_type"], "application/octet-stream")
	metadata["filename"] = stringOr(first["filename"], "uploaded_file")
	c.log.Log("[adapter] sending file to %s: %s (%d chars base64)",
		agentName, metadata["filename"], len(base64Data))

	return metadata
}

// dispatchHTTP POSTs the agent's native payload and normalizes the reply.
func (c *Caller) dispatchHTTP(ctx context.Context, meta models.AgentMetadata, req *models.AgentRequest, customInput map[string]any) *models.AgentResponse {
	strat := strategyFor(meta.Name)

	var payload any
	if customInput != nil {
		// Caller-supplied input replaces the whole input block.
		payload = map[string]any{
			"request_id": req.RequestID,
			"agent_name": req.AgentName,
			"intent":     req.Intent,
			"input":      customInput,
			"context":    req.Context,
		}
	} else {
		payload = strat.buildPayload(req)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return models.ErrorResponse(req.RequestID, meta.Name, models.ErrorTypeParse,
			fmt.Sprintf("encode request payload: %v", err))
	}

	callCtx, cancel := context.WithTimeout(ctx, meta.Timeout())
	defer cancel()

	httpReq, err := http.NewRequestWithContext(callCtx, http.MethodPost, meta.Endpoint, bytes.NewReader(body))
	if err != nil {
		return models.ErrorResponse(req.RequestID, meta.Name, models.ErrorTypeConfig,
			fmt.Sprintf("build request for %s: %v", meta.Endpoint, err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.log.Log("[adapter] calling %s intent=%s endpoint=%s", meta.Name, req.Intent, meta.Endpoint)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return models.ErrorResponse(req.RequestID, meta.Name, models.ErrorTypeNetwork, err.Error())
	}
	defer resp.Body.Close()

	c.log.Log("[adapter] %s response status: %d", meta.Name, resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		return models.ErrorResponse(req.RequestID, meta.Name, models.ErrorTypeHTTP,
			fmt.Sprintf("HTTP %d calling %s", resp.StatusCode, meta.Endpoint))
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.ErrorResponse(req.RequestID, meta.Name, models.ErrorTypeNetwork,
			fmt.Sprintf("read response body: %v", err))
	}

	return strat.parseResponse(req.RequestID, meta.Name, respBody)
}

// fileUploads extracts the file_uploads list from the shared context,
// tolerating both typed and decoded-JSON shapes.
func fileUploads(callCtx map[string]any) []map[string]any {
	raw, ok := callCtx["file_uploads"]
	if !ok {
		return nil
	}

	switch v := raw.(type) {
	case []map[string]any:
		return v
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	default:
		return nil
	}
}

// stringOr returns v as a string, or fallback when absent or not a string.
func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}
