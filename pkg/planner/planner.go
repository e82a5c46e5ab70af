// Package planner turns a validated question into a dependency-ordered
// execution plan over the endpoint catalog. Planning never calls the
// upstream API: resolver calls are emitted for unknown IDs, redundant
// candidates collapse into enriched composites, and cached literal-parameter
// calls are pruned into prefetched results.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lucide-ai/lucide/pkg/cache"
	"github.com/lucide-ai/lucide/pkg/knowledge"
	"github.com/lucide-ai/lucide/pkg/metrics"
	"github.com/lucide-ai/lucide/pkg/models"
)

// Planner is stateless apart from its clock and is safe for concurrent use.
type Planner struct {
	kb      *knowledge.Base
	cache   *cache.Cache
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// Option customizes a Planner.
type Option func(*Planner)

// WithClock overrides the time source used for season and date defaults.
func WithClock(now func() time.Time) Option {
	return func(p *Planner) { p.now = now }
}

// New creates a planner. The knowledge base, cache and metrics are required.
func New(kb *knowledge.Base, c *cache.Cache, m *metrics.Metrics, opts ...Option) (*Planner, error) {
	if kb == nil {
		return nil, fmt.Errorf("knowledge base cannot be nil")
	}
	if c == nil {
		return nil, fmt.Errorf("cache cannot be nil")
	}
	if m == nil {
		return nil, fmt.Errorf("metrics cannot be nil - observability is required")
	}
	p := &Planner{
		kb:      kb,
		cache:   c,
		metrics: m,
		logger:  slog.With("component", "planner"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// BuildPlan produces the execution plan for a complete validation result.
//
// The pipeline is: gather naive candidates for the question class, collapse
// redundant candidates into enriched composites, then materialize each
// survivor into calls (injecting ID resolvers as needed). Candidates whose
// parameters are fully literal are probed against the cache and, on a hit,
// moved to the prefetched list instead of the call list.
func (p *Planner) BuildPlan(
	ctx context.Context,
	vr *models.ValidationResult,
	sctx *models.StructuredContext,
) (*models.ExecutionPlan, error) {
	if vr == nil || !vr.IsComplete || vr.QuestionType == models.QuestionUnknown {
		return nil, newPlanningError("input", ErrNotPlannable)
	}

	b := &builder{
		ctx:         ctx,
		kb:          p.kb,
		cache:       p.cache,
		sctx:        sctx,
		vr:          vr,
		now:         p.now(),
		resolverIDs: make(map[string]string),
	}

	cands, fixtureAvailable, err := p.gather(b)
	if err != nil {
		return nil, newPlanningError("candidate selection", err)
	}
	if len(cands) == 0 {
		return nil, newPlanningError("candidate selection", ErrNoCandidates)
	}

	naive := len(cands)
	cands = substituteEnriched(b, cands, fixtureAvailable)

	for _, c := range cands {
		params, deps := c.materialize(b)
		if err := checkMaterialized(c.desc.Name, params); err != nil {
			return nil, newPlanningError("materialization", err)
		}
		if len(deps) == 0 {
			if lp := literalParams(params); lp != nil {
				if data, ok := p.cache.Get(ctx, c.desc.Name, lp); ok {
					b.prefetched = append(b.prefetched, models.PrefetchedResult{
						EndpointName: c.desc.Name,
						Params:       lp,
						Data:         data,
					})
					continue
				}
			}
		}
		b.addCall(c.desc.Name, params, deps)
	}

	plan := &models.ExecutionPlan{Calls: b.calls, Prefetched: b.prefetched}
	if _, err := plan.Levels(); err != nil {
		return nil, newPlanningError("level assignment", err)
	}

	p.metrics.PlansTotal.Inc()
	p.metrics.PlanCalls.Observe(float64(plan.TotalCalls()))
	p.logger.Info("Plan built",
		"question_type", vr.QuestionType,
		"naive_candidates", naive,
		"final_candidates", len(cands),
		"calls", plan.TotalCalls(),
		"prefetched", len(plan.Prefetched))
	return plan, nil
}
