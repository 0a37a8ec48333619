// Package executor runs a plan step by step: it resolves each step's agent
// and input source, invokes the protocol adapter, and collects every
// response alongside execution-level errors. A failing step never aborts the
// plan; callers distinguish success from failure via response status, not
// absence.
package executor

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ShayCichocki/maestro/internal/adapter"
	"github.com/ShayCichocki/maestro/internal/logging"
	"github.com/ShayCichocki/maestro/internal/registry"
	"github.com/ShayCichocki/maestro/pkg/models"
)

// StepError records an execution-level failure for one step (as opposed to
// an agent-level failure, which lives in the step's response envelope).
type StepError struct {
	// StepID is the failing step's id.
	StepID int
	// Agent is the step's agent name.
	Agent string
	// Message describes what went wrong.
	Message string
}

// Error implements the error interface.
func (e StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %s", e.StepID, e.Agent, e.Message)
}

// Executor drives plan execution against the registry.
type Executor struct {
	caller *adapter.Caller
	log    *logging.Logger
}

// New creates an Executor using the given adapter.
func New(caller *adapter.Caller, log *logging.Logger) *Executor {
	return &Executor{
		caller: caller,
		log:    log,
	}
}

// Execute runs every step of the plan and returns the response mapping keyed
// by step id plus any execution-level errors. Steps with no input dependency
// are dispatched concurrently; dependent steps run afterward in plan order
// so their referenced outputs exist. The mapping's content is independent of
// dispatch order.
func (e *Executor) Execute(ctx context.Context, query string, plan *models.Plan, reg *registry.Registry, callCtx map[string]any) (map[int]*models.AgentResponse, []StepError) {
	outputs := make(map[int]*models.AgentResponse)
	var errs []StepError

	if plan.Empty() {
		return outputs, errs
	}
	if callCtx == nil {
		callCtx = map[string]any{}
	}

	var independent, dependent []models.PlanStep
	for _, step := range plan.Steps {
		if _, ok := step.DependsOn(); ok {
			dependent = append(dependent, step)
		} else {
			independent = append(independent, step)
		}
	}

	// Fan out independent steps; join before any dependent step runs.
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, step := range independent {
		g.Go(func() error {
			resp, stepErr := e.runStep(gctx, query, step, reg, callCtx, nil)
			mu.Lock()
			defer mu.Unlock()
			if stepErr != nil {
				errs = append(errs, *stepErr)
			}
			if resp != nil {
				outputs[step.StepID] = resp
			}
			return nil
		})
	}
	// Step failures are recorded, never returned, so Wait cannot fail.
	_ = g.Wait()

	for _, step := range dependent {
		resp, stepErr := e.runStep(ctx, query, step, reg, callCtx, outputs)
		if stepErr != nil {
			errs = append(errs, *stepErr)
		}
		if resp != nil {
			outputs[step.StepID] = resp
		}
	}

	return outputs, errs
}

// runStep resolves one step's metadata and input, then invokes the adapter.
// A missing agent skips the step with an error; an unresolvable input
// reference records an error and falls back to the original query so the
// step still runs.
func (e *Executor) runStep(ctx context.Context, query string, step models.PlanStep, reg *registry.Registry, callCtx map[string]any, prior map[int]*models.AgentResponse) (*models.AgentResponse, *StepError) {
	meta, ok := reg.Get(step.Agent)
	if !ok {
		e.log.Log("[executor] step %d: unknown agent %q, skipping", step.StepID, step.Agent)
		return nil, &StepError{
			StepID:  step.StepID,
			Agent:   step.Agent,
			Message: "agent not found in registry",
		}
	}

	text := query
	var inputErr *StepError
	if depID, isDep := step.DependsOn(); isDep {
		if out, ok := prior[depID]; ok && out.Succeeded() {
			text = out.Output.Text()
		} else {
			inputErr = &StepError{
				StepID:  step.StepID,
				Agent:   step.Agent,
				Message: fmt.Sprintf("input references step %d, which produced no output", depID),
			}
		}
	}

	resp := e.caller.CallAgent(ctx, meta, step.Intent, text, callCtx, nil)
	return resp, inputErr
}
