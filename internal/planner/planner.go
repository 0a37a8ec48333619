// Package planner maps a user query to an ordered plan of agent invocations.
// Cheap keyword heuristics against registered capabilities run first; an LLM
// proposal is the fallback. An empty plan is a valid outcome, not an error:
// out-of-scope queries simply plan nothing.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ShayCichocki/maestro/internal/llm"
	"github.com/ShayCichocki/maestro/internal/logging"
	"github.com/ShayCichocki/maestro/internal/registry"
	"github.com/ShayCichocki/maestro/pkg/models"
)

// Planner produces plans from queries and the agent registry.
type Planner struct {
	completer llm.Completer
	log       *logging.Logger
}

// New creates a Planner. completer may be nil; planning then relies on
// heuristics alone.
func New(completer llm.Completer, log *logging.Logger) *Planner {
	return &Planner{
		completer: completer,
		log:       log,
	}
}

// Plan maps the query to an ordered sequence of steps. historySummary is
// optional summarized conversation context for the LLM path.
func (p *Planner) Plan(ctx context.Context, query string, reg *registry.Registry, historySummary string) *models.Plan {
	if steps := p.heuristicSteps(query, reg); len(steps) > 0 {
		p.log.Log("[planner] heuristics matched %d step(s) for query", len(steps))
		return &models.Plan{Steps: steps}
	}

	if p.completer == nil {
		p.log.Log("[planner] no completer configured, returning empty plan")
		return &models.Plan{}
	}

	steps, err := p.llmSteps(ctx, query, reg, historySummary)
	if err != nil {
		p.log.Log("[planner] llm planning failed: %v, returning empty plan", err)
		return &models.Plan{}
	}
	return &models.Plan{Steps: steps}
}

// heuristicSteps matches query keywords against each agent's declared
// capabilities. Matching is deterministic and cheap: an agent is planned
// when any of its keywords appears in the lowercased query. Step ids are
// assigned by position and every heuristic step reads the user query.
func (p *Planner) heuristicSteps(query string, reg *registry.Registry) []models.PlanStep {
	lowered := strings.ToLower(query)

	var steps []models.PlanStep
	for _, agent := range reg.List() {
		for _, keyword := range agent.Keywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(lowered, strings.ToLower(keyword)) {
				steps = append(steps, models.PlanStep{
					StepID:      len(steps),
					Agent:       agent.Name,
					Intent:      agent.Intent,
					InputSource: models.InputSourceQuery,
				})
				break
			}
		}
	}
	return steps
}

// llmPlanResponse is the structured response expected from the planning
// prompt.
type llmPlanResponse struct {
	Steps []struct {
		Agent       string `json:"agent"`
		Intent      string `json:"intent"`
		InputSource string `json:"input_source"`
	} `json:"steps"`
}

// llmSteps asks the language model to propose steps as JSON. Unknown agents
// are dropped; anything unusable yields an error so the caller falls back to
// an empty plan.
func (p *Planner) llmSteps(ctx context.Context, query string, reg *registry.Registry, historySummary string) ([]models.PlanStep, error) {
	var agentList strings.Builder
	for _, agent := range reg.List() {
		agentList.WriteString(fmt.Sprintf("- %s (intent: %s", agent.Name, agent.Intent))
		if len(agent.Keywords) > 0 {
			agentList.WriteString(fmt.Sprintf(", capabilities: %s", strings.Join(agent.Keywords, ", ")))
		}
		agentList.WriteString(")\n")
	}

	systemPrompt := "You are a task planner for a multi-agent supervisor. " +
		"Given a user query and the available agents, respond with ONLY a JSON object " +
		"(no markdown, no explanation) of the form " +
		`{"steps": [{"agent": "...", "intent": "...", "input_source": "user_query"}]}. ` +
		`An input_source of "step:<n>" feeds a step the output of a prior step n. ` +
		"Use only the listed agents. Respond with an empty steps list when no agent applies."

	userPrompt := fmt.Sprintf("Available agents:\n%s\nQuery: %s", agentList.String(), query)
	if historySummary != "" {
		userPrompt += fmt.Sprintf("\n\nConversation context: %s", historySummary)
	}

	output, err := p.completer.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	// Strip markdown code fences if present.
	output = strings.TrimSpace(output)
	output = strings.TrimPrefix(output, "```json")
	output = strings.TrimPrefix(output, "```")
	output = strings.TrimSuffix(output, "```")
	output = strings.TrimSpace(output)

	var parsed llmPlanResponse
	if err := json.Unmarshal([]byte(output), &parsed); err != nil {
		return nil, fmt.Errorf("parse planner response: %w", err)
	}

	var steps []models.PlanStep
	for _, s := range parsed.Steps {
		agent, ok := reg.Get(s.Agent)
		if !ok {
			p.log.Log("[planner] dropping step naming unknown agent %q", s.Agent)
			continue
		}

		intent := s.Intent
		if intent == "" {
			intent = agent.Intent
		}
		inputSource := s.InputSource
		if inputSource == "" {
			inputSource = models.InputSourceQuery
		}

		steps = append(steps, models.PlanStep{
			StepID:      len(steps),
			Agent:       agent.Name,
			Intent:      intent,
			InputSource: inputSource,
		})
	}
	return steps, nil
}
