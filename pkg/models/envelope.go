// Package models defines the canonical request/response envelopes shared by
// the planner, executor, adapter, and combiner. Every agent's bespoke wire
// contract is translated into these shapes at the adapter boundary; nothing
// downstream sees a native agent payload.
package models

import (
	"encoding/json"
	"time"
)

// AgentType is the transport kind used to reach an agent.
type AgentType string

const (
	// AgentTypeHTTP indicates the agent is reached via HTTP POST.
	AgentTypeHTTP AgentType = "http"
	// AgentTypeCLI indicates the agent is invoked as a local command.
	// Declared but not implemented; calls always return not_implemented.
	AgentTypeCLI AgentType = "cli"
)

// Valid returns true if the type is a known value.
func (t AgentType) Valid() bool {
	switch t {
	case AgentTypeHTTP, AgentTypeCLI:
		return true
	default:
		return false
	}
}

// AgentMetadata describes a registered agent. It is owned by the registry
// and read-only during query execution.
type AgentMetadata struct {
	// Name is the unique identifier for this agent.
	Name string `yaml:"name" json:"name"`
	// Type is the transport kind (http, cli).
	Type AgentType `yaml:"type" json:"type"`
	// Endpoint is the URL to POST requests to. Required when Type is http.
	Endpoint string `yaml:"endpoint" json:"endpoint,omitempty"`
	// TimeoutMS bounds a single call to this agent, in milliseconds.
	TimeoutMS int `yaml:"timeout_ms" json:"timeout_ms"`
	// Intent is the default intent tag the planner assigns to this agent.
	Intent string `yaml:"intent" json:"intent,omitempty"`
	// Keywords are the capability keywords the planner's heuristics match
	// against the user query.
	Keywords []string `yaml:"keywords" json:"keywords,omitempty"`
}

// Timeout returns the per-call deadline as a duration.
// Falls back to 30s when TimeoutMS is unset.
func (m AgentMetadata) Timeout() time.Duration {
	if m.TimeoutMS <= 0 {
		return 30 * time.Second
	}
	return time.Duration(m.TimeoutMS) * time.Millisecond
}

// ResponseStatus is the outcome of an agent call.
type ResponseStatus string

const (
	// StatusSuccess indicates the agent produced usable output.
	StatusSuccess ResponseStatus = "success"
	// StatusError indicates the call failed; Error carries the reason.
	StatusError ResponseStatus = "error"
)

// Valid returns true if the status is a known value.
func (s ResponseStatus) Valid() bool {
	return s == StatusSuccess || s == StatusError
}

// ErrorType classifies an agent call failure. The taxonomy is closed; the
// executor and combiner branch on these values, never on message text.
type ErrorType string

const (
	// ErrorTypeHTTP indicates a non-2xx status from the agent endpoint.
	ErrorTypeHTTP ErrorType = "http_error"
	// ErrorTypeNetwork indicates a transport-level failure or timeout.
	ErrorTypeNetwork ErrorType = "network_error"
	// ErrorTypeConfig indicates the agent is misconfigured or the HTTP
	// client is absent.
	ErrorTypeConfig ErrorType = "config_error"
	// ErrorTypeNotImplemented indicates a declared-but-unbuilt transport.
	ErrorTypeNotImplemented ErrorType = "not_implemented"
	// ErrorTypeParse indicates the agent replied but the body did not match
	// the expected shape.
	ErrorTypeParse ErrorType = "parse_error"
	// ErrorTypeAgent indicates the agent reported its own business-logic
	// failure.
	ErrorTypeAgent ErrorType = "agent_error"
)

// Valid returns true if the error type is a known value.
func (e ErrorType) Valid() bool {
	switch e {
	case ErrorTypeHTTP, ErrorTypeNetwork, ErrorTypeConfig,
		ErrorTypeNotImplemented, ErrorTypeParse, ErrorTypeAgent:
		return true
	default:
		return false
	}
}

// AgentInput is the input block of the canonical request envelope.
type AgentInput struct {
	// Text is the free-text input for this step.
	Text string `json:"text"`
	// Metadata carries the fixed language field, an extra map, and an
	// optional embedded file payload (file_base64, mime_type, filename).
	Metadata map[string]any `json:"metadata"`
}

// AgentRequest is the canonical outbound envelope. Created once per call and
// never mutated after construction.
type AgentRequest struct {
	// RequestID is a freshly generated UUID, unique per call.
	RequestID string `json:"request_id"`
	// AgentName is the target agent's registry name.
	AgentName string `json:"agent_name"`
	// Intent is the string tag describing what the step wants done.
	Intent string `json:"intent"`
	// Input holds the text and metadata for this call.
	Input AgentInput `json:"input"`
	// Context is the free-form mapping shared across steps
	// (user_id, goal_id, progress, file_uploads, ...).
	Context map[string]any `json:"context"`
}

// OutputModel carries an agent's successful output.
type OutputModel struct {
	// Result is the display payload. Usually a string; the task dependency
	// agent returns a structured object here.
	Result any `json:"result"`
	// Details is the raw/verbose JSON text behind Result, when available.
	Details string `json:"details,omitempty"`
}

// Text renders Result for display. Strings pass through; structured results
// are compacted to JSON.
func (o *OutputModel) Text() string {
	if o == nil {
		return ""
	}
	switch v := o.Result.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// ErrorModel carries a typed agent call failure.
type ErrorModel struct {
	// Type is the failure class from the closed taxonomy.
	Type ErrorType `json:"type"`
	// Message is free text describing the failure.
	Message string `json:"message"`
}

// AgentResponse is the canonical inbound envelope. Exactly one of Output and
// Error is populated, keyed by Status.
type AgentResponse struct {
	// RequestID echoes the request's id.
	RequestID string `json:"request_id"`
	// AgentName names the agent that was called.
	AgentName string `json:"agent_name"`
	// Status is success or error.
	Status ResponseStatus `json:"status"`
	// Output is present iff Status is success.
	Output *OutputModel `json:"output,omitempty"`
	// Error is present iff Status is error.
	Error *ErrorModel `json:"error,omitempty"`
}

// Succeeded returns true if the call produced usable output.
func (r *AgentResponse) Succeeded() bool {
	return r != nil && r.Status == StatusSuccess
}

// ErrorResponse builds an error-status envelope for the given request id and
// agent name. Used by the adapter for every failure path.
func ErrorResponse(requestID, agentName string, errType ErrorType, message string) *AgentResponse {
	return &AgentResponse{
		RequestID: requestID,
		AgentName: agentName,
		Status:    StatusError,
		Error: &ErrorModel{
			Type:    errType,
			Message: message,
		},
	}
}

// SuccessResponse builds a success-status envelope for the given request id
// and agent name.
func SuccessResponse(requestID, agentName string, result any, details string) *AgentResponse {
	return &AgentResponse{
		RequestID: requestID,
		AgentName: agentName,
		Status:    StatusSuccess,
		Output: &OutputModel{
			Result:  result,
			Details: details,
		},
	}
}
