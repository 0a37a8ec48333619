// Package supervisor wires the orchestration pipeline: general-query
// routing, history summarization, planning, execution, and combination.
// Each query runs the stages strictly in order; no state is shared across
// concurrent queries beyond the read-only registry.
package supervisor

import (
	"context"

	"github.com/ShayCichocki/maestro/internal/adapter"
	"github.com/ShayCichocki/maestro/internal/combine"
	"github.com/ShayCichocki/maestro/internal/executor"
	"github.com/ShayCichocki/maestro/internal/general"
	"github.com/ShayCichocki/maestro/internal/history"
	"github.com/ShayCichocki/maestro/internal/logging"
	"github.com/ShayCichocki/maestro/internal/planner"
	"github.com/ShayCichocki/maestro/internal/registry"
	"github.com/ShayCichocki/maestro/internal/tasks"
	"github.com/ShayCichocki/maestro/pkg/models"
)

// recentTurns is how many stored turns feed the history summarizer.
const recentTurns = 12

// Request is one query for the supervisor.
type Request struct {
	// Query is the user's natural-language query.
	Query string
	// UserID identifies the user to agents that track per-user state.
	UserID string
	// ConversationID keys stored conversation history. Empty disables it.
	ConversationID string
	// Context is extra shared context for agent calls
	// (goal_id, progress, file_uploads, ...).
	Context map[string]any
	// Debug includes per-step results in the response.
	Debug bool
}

// StepResult is one step's outcome, included in debug responses.
type StepResult struct {
	// StepID is the step's id in the plan.
	StepID int `json:"step_id"`
	// Agent is the agent that was called.
	Agent string `json:"agent"`
	// Status is success or error.
	Status models.ResponseStatus `json:"status"`
	// Result is the display text for a successful call.
	Result string `json:"result,omitempty"`
	// Error describes a failed call.
	Error string `json:"error,omitempty"`
}

// Response is the supervisor's answer to one query.
type Response struct {
	// Answer is the consolidated user-facing text. A query always yields
	// one, even when every agent call failed.
	Answer string `json:"answer"`
	// Kind classifies how the query was handled: general, blocked,
	// out_of_scope, or agents.
	Kind string `json:"kind"`
	// Errors lists execution-level problems (unknown agents, unresolvable
	// step inputs).
	Errors []string `json:"errors,omitempty"`
	// Steps carries per-step results when debug is requested.
	Steps []StepResult `json:"steps,omitempty"`
}

// KindAgents marks a response produced by the agent pipeline.
const KindAgents = "agents"

// Supervisor runs the orchestration pipeline for queries.
type Supervisor struct {
	registry   *registry.Registry
	planner    *planner.Planner
	executor   *executor.Executor
	combiner   *combine.Combiner
	summarizer *history.Summarizer
	store      *history.Store
	tasks      *tasks.Client
	log        *logging.Logger
}

// Config contains the collaborators a Supervisor needs.
type Config struct {
	// Registry is the read-only agent directory. Required.
	Registry *registry.Registry
	// Planner maps queries to plans. Required.
	Planner *planner.Planner
	// Executor runs plans. Required.
	Executor *executor.Executor
	// Combiner merges step outputs. Required.
	Combiner *combine.Combiner
	// Summarizer compresses conversation history. Required.
	Summarizer *history.Summarizer
	// Store persists conversation turns. Optional.
	Store *history.Store
	// Tasks resolves task ids to names for dependency answers. Optional.
	Tasks *tasks.Client
	// Log is the debug logger. Optional.
	Log *logging.Logger
}

// New creates a Supervisor from its collaborators.
func New(cfg Config) *Supervisor {
	log := cfg.Log
	if log == nil {
		log = logging.Nop()
	}
	t := cfg.Tasks
	if t == nil {
		t = tasks.NewClient("", nil)
	}
	return &Supervisor{
		registry:   cfg.Registry,
		planner:    cfg.Planner,
		executor:   cfg.Executor,
		combiner:   cfg.Combiner,
		summarizer: cfg.Summarizer,
		store:      cfg.Store,
		tasks:      t,
		log:        log,
	}
}

// HandleQuery runs the full pipeline for one query. It always produces an
// answer; agent failures degrade the answer instead of aborting it.
func (s *Supervisor) HandleQuery(ctx context.Context, req Request) Response {
	if result := general.HandleQuery(req.Query); result.Kind != general.KindNone {
		s.persistTurns(req, result.Answer)
		return Response{Answer: result.Answer, Kind: string(result.Kind)}
	}

	summary := s.summarizeHistory(ctx, req)

	plan := s.planner.Plan(ctx, req.Query, s.registry, summary)
	if plan.Empty() {
		result := general.OutOfScope()
		s.persistTurns(req, result.Answer)
		return Response{Answer: result.Answer, Kind: string(result.Kind)}
	}

	callCtx := s.buildCallContext(req)
	outputs, stepErrs := s.executor.Execute(ctx, req.Query, plan, s.registry, callCtx)

	answer := s.renderAnswer(ctx, req, plan, outputs, summary)

	resp := Response{
		Answer: answer,
		Kind:   KindAgents,
	}
	for _, e := range stepErrs {
		resp.Errors = append(resp.Errors, e.Error())
	}
	if req.Debug {
		resp.Steps = stepResults(plan, outputs)
	}

	s.persistTurns(req, answer)
	return resp
}

// renderAnswer picks between the dependency rendering path and the general
// combiner. A successful task dependency step short-circuits to the
// structured two-section answer.
func (s *Supervisor) renderAnswer(ctx context.Context, req Request, plan *models.Plan, outputs map[int]*models.AgentResponse, summary string) string {
	for _, step := range plan.Steps {
		resp := outputs[step.StepID]
		if resp == nil || resp.AgentName != adapter.TaskDependencyAgent || !resp.Succeeded() {
			continue
		}
		payload, ok := combine.DecodeDependencyPayload(resp.Output)
		if !ok {
			continue
		}

		names, err := s.tasks.Names(ctx)
		if err != nil {
			s.log.Log("[supervisor] task lookup failed: %v", err)
			names = map[string]string{}
		}
		return combine.RenderDependencyAnswer(payload, names)
	}

	combined := s.combiner.Combine(ctx, models.CombinedAnswerRequest{
		UserQuery:      req.Query,
		ToolOutputs:    toolOutputs(plan, outputs),
		HistorySummary: summary,
	})
	return combined.CombinedAnswer
}

// summarizeHistory loads recent turns for the conversation and compresses
// them. Returns "" when there is no store, no conversation, or no history.
func (s *Supervisor) summarizeHistory(ctx context.Context, req Request) string {
	if s.store == nil || req.ConversationID == "" {
		return ""
	}

	turns, err := s.store.Recent(req.ConversationID, recentTurns)
	if err != nil {
		s.log.Log("[supervisor] load history failed: %v", err)
		return ""
	}
	return s.summarizer.Summarize(ctx, turns)
}

// buildCallContext assembles the shared context passed to every agent call.
func (s *Supervisor) buildCallContext(req Request) map[string]any {
	callCtx := make(map[string]any, len(req.Context)+1)
	for k, v := range req.Context {
		callCtx[k] = v
	}
	if req.UserID != "" {
		callCtx["user_id"] = req.UserID
	}
	return callCtx
}

// persistTurns records the exchange when a conversation store is attached.
func (s *Supervisor) persistTurns(req Request, answer string) {
	if s.store == nil || req.ConversationID == "" {
		return
	}
	if err := s.store.Append(req.ConversationID, "user", req.Query); err != nil {
		s.log.Log("[supervisor] persist user turn failed: %v", err)
	}
	if err := s.store.Append(req.ConversationID, "assistant", answer); err != nil {
		s.log.Log("[supervisor] persist assistant turn failed: %v", err)
	}
}

// toolOutputs converts step responses into combiner records in plan order.
func toolOutputs(plan *models.Plan, outputs map[int]*models.AgentResponse) []models.ToolOutput {
	var entries []models.ToolOutput
	for _, step := range plan.Steps {
		resp := outputs[step.StepID]
		if resp == nil {
			continue
		}

		entry := models.ToolOutput{
			Agent:  resp.AgentName,
			Status: resp.Status,
		}
		if resp.Succeeded() {
			entry.Result = resp.Output.Text()
		} else if resp.Error != nil {
			entry.Error = resp.Error.Message
		}
		entries = append(entries, entry)
	}
	return entries
}

// stepResults converts step responses into debug records in plan order.
func stepResults(plan *models.Plan, outputs map[int]*models.AgentResponse) []StepResult {
	var results []StepResult
	for _, step := range plan.Steps {
		resp := outputs[step.StepID]
		if resp == nil {
			continue
		}

		result := StepResult{
			StepID: step.StepID,
			Agent:  resp.AgentName,
			Status: resp.Status,
		}
		if resp.Succeeded() {
			result.Result = resp.Output.Text()
		} else if resp.Error != nil {
			result.Error = resp.Error.Message
		}
		results = append(results, result)
	}
	return results
}
