// Package pipeline wires the stages together: validate the question, build a
// plan, execute it, and hand back a bundle the answer formatter can work
// from. The pipeline owns nothing itself; every stage is injected.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lucide-ai/lucide/pkg/models"
	"github.com/lucide-ai/lucide/pkg/orchestrator"
	"github.com/lucide-ai/lucide/pkg/planner"
	"github.com/lucide-ai/lucide/pkg/validator"
)

// Pipeline runs one question end to end. Safe for concurrent use.
type Pipeline struct {
	validator    *validator.Validator
	planner      *planner.Planner
	orchestrator *orchestrator.Orchestrator
	logger       *slog.Logger
}

// New creates a pipeline from its three stages, all required.
func New(v *validator.Validator, p *planner.Planner, o *orchestrator.Orchestrator) (*Pipeline, error) {
	if v == nil {
		return nil, fmt.Errorf("validator cannot be nil")
	}
	if p == nil {
		return nil, fmt.Errorf("planner cannot be nil")
	}
	if o == nil {
		return nil, fmt.Errorf("orchestrator cannot be nil")
	}
	return &Pipeline{
		validator:    v,
		planner:      p,
		orchestrator: o,
		logger:       slog.With("component", "pipeline"),
	}, nil
}

// Process answers one question. Incomplete questions short-circuit into a
// clarification bundle; planning failures are surfaced in the bundle's
// execution errors with no calls issued; execution always returns whatever
// partial data was collected.
func (p *Pipeline) Process(
	ctx context.Context,
	question string,
	sctx *models.StructuredContext,
	langOverride models.Language,
) *models.Bundle {
	invocationID := uuid.NewString()
	logger := p.logger.With("invocation_id", invocationID)

	vr := p.validator.Validate(question, sctx, langOverride)
	bundle := &models.Bundle{
		InvocationID: invocationID,
		QuestionType: vr.QuestionType,
		Language:     vr.Language,
		Confidence:   vr.Confidence,
		Entities:     vr.Entities,
	}

	if !vr.IsComplete {
		bundle.MissingInfo = vr.MissingInfo
		bundle.Clarifications = vr.Clarifications
		logger.Info("Question needs clarification",
			"question_type", vr.QuestionType, "missing", vr.MissingInfo)
		return bundle
	}

	plan, err := p.planner.BuildPlan(ctx, vr, sctx)
	if err != nil {
		logger.Error("Planning failed", "error", err)
		bundle.Execution = &models.ExecutionResult{
			Errors:  []string{err.Error()},
			Success: false,
		}
		return bundle
	}
	bundle.Plan = plan

	execution, err := p.orchestrator.Execute(ctx, plan)
	if err != nil {
		logger.Error("Execution failed before any call ran", "error", err)
		bundle.Execution = &models.ExecutionResult{
			Errors:  []string{err.Error()},
			Success: false,
		}
		return bundle
	}
	bundle.Execution = execution

	logger.Info("Question processed",
		"question_type", vr.QuestionType,
		"api_calls", execution.TotalAPICalls,
		"cache_hits", execution.TotalCacheHits,
		"success", execution.Success)
	return bundle
}
