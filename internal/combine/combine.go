// Package combine reduces multiple per-agent outputs into one user-facing
// answer. The LLM path degrades in place to deterministic stitching; callers
// never choose between the two.
package combine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ShayCichocki/maestro/internal/llm"
	"github.com/ShayCichocki/maestro/internal/logging"
	"github.com/ShayCichocki/maestro/pkg/models"
)

// NoOutputsMessage is returned when there is nothing to combine.
const NoOutputsMessage = "No tool outputs available."

// combineSystemPrompt is the fixed instruction for the combination call.
const combineSystemPrompt = "You are a response combiner. Given the user's query and multiple tool outputs, " +
	"produce a single concise answer that integrates the results. " +
	"If some tools failed, still use the successful outputs and briefly note the failure. " +
	"Be direct and avoid repetition."

// Combiner merges tool outputs into a single answer.
type Combiner struct {
	completer llm.Completer
	log       *logging.Logger
}

// New creates a Combiner. completer may be nil; combining then always uses
// the deterministic fallback.
func New(completer llm.Completer, log *logging.Logger) *Combiner {
	return &Combiner{
		completer: completer,
		log:       log,
	}
}

// Combine produces one consolidated answer for the query's tool outputs.
func (c *Combiner) Combine(ctx context.Context, req models.CombinedAnswerRequest) models.CombinedAnswerResponse {
	if c.completer == nil {
		return c.fallback(req)
	}

	payload := map[string]any{
		"user_query":   req.UserQuery,
		"tool_outputs": req.ToolOutputs,
	}
	if req.HistorySummary != "" {
		payload["history_summary"] = req.HistorySummary
	}

	userPrompt, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		c.log.Log("[combine] encode payload failed: %v", err)
		return c.fallback(req)
	}

	answer, err := c.completer.Complete(ctx, combineSystemPrompt, string(userPrompt))
	if err != nil {
		c.log.Log("[combine] llm combine failed: %v", err)
		return c.fallback(req)
	}
	if answer == "" {
		return c.fallback(req)
	}

	return models.CombinedAnswerResponse{CombinedAnswer: strings.TrimSpace(answer)}
}

// fallback stitches each agent result with its status, preserving input
// order: "<agent>: <result>" on success, "<agent>: failed (<error>)"
// otherwise, joined by " | ".
func (c *Combiner) fallback(req models.CombinedAnswerRequest) models.CombinedAnswerResponse {
	var lines []string
	for _, entry := range req.ToolOutputs {
		if entry.Status == models.StatusSuccess {
			lines = append(lines, fmt.Sprintf("%s: %s", entry.Agent, entry.Result))
		} else {
			lines = append(lines, fmt.Sprintf("%s: failed (%s)", entry.Agent, entry.Error))
		}
	}

	stitched := NoOutputsMessage
	if len(lines) > 0 {
		stitched = strings.Join(lines, " | ")
	}
	return models.CombinedAnswerResponse{CombinedAnswer: stitched}
}
