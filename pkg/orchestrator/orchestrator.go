// Package orchestrator executes a plan against the upstream API: calls at
// the same dependency level run in parallel, references are substituted at
// level boundaries, and every call goes through the shared cache, a retry
// loop and a circuit breaker. Per-call failures never abort the plan.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"

	"github.com/lucide-ai/lucide/pkg/cache"
	"github.com/lucide-ai/lucide/pkg/metrics"
	"github.com/lucide-ai/lucide/pkg/models"
)

// errBreakerOpen is surfaced verbatim in call results when the breaker
// rejects a call without contacting the upstream.
var errBreakerOpen = errors.New("circuit breaker open")

// Client issues one upstream API call. Implementations must be safe for
// concurrent use.
type Client interface {
	Call(ctx context.Context, endpoint string, params map[string]any) (any, error)
}

// Config tunes execution. Zero values fall back to defaults.
type Config struct {
	// MaxRetries is the number of attempts per call (not extra retries).
	MaxRetries int
	// RetryDelay is the base backoff; attempt n waits (n-1)*RetryDelay.
	RetryDelay time.Duration
	// PlanTimeout bounds one whole plan execution.
	PlanTimeout time.Duration
	// BreakerFailures is the consecutive-failure count that opens the breaker.
	BreakerFailures uint32
	// BreakerCooldown is how long the breaker stays open before a probe.
	BreakerCooldown time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = time.Second
	}
	if c.PlanTimeout <= 0 {
		c.PlanTimeout = 30 * time.Second
	}
	if c.BreakerFailures == 0 {
		c.BreakerFailures = 5
	}
	if c.BreakerCooldown <= 0 {
		c.BreakerCooldown = 60 * time.Second
	}
	return c
}

// Orchestrator executes plans. Safe for concurrent use; the breaker state is
// shared across plans on purpose, since it guards one upstream.
type Orchestrator struct {
	client  Client
	cache   *cache.Cache
	metrics *metrics.Metrics
	logger  *slog.Logger
	cfg     Config
	breaker *gobreaker.CircuitBreaker
	// sleep is swapped out in tests to avoid real backoff waits.
	sleep func(ctx context.Context, d time.Duration) error
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithSleep overrides the backoff sleeper.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(o *Orchestrator) { o.sleep = sleep }
}

// New creates an orchestrator. Client, cache and metrics are required.
func New(client Client, c *cache.Cache, m *metrics.Metrics, cfg Config, opts ...Option) (*Orchestrator, error) {
	if client == nil {
		return nil, fmt.Errorf("client cannot be nil")
	}
	if c == nil {
		return nil, fmt.Errorf("cache cannot be nil")
	}
	if m == nil {
		return nil, fmt.Errorf("metrics cannot be nil - observability is required")
	}
	cfg = cfg.withDefaults()
	o := &Orchestrator{
		client:  client,
		cache:   c,
		metrics: m,
		logger:  slog.With("component", "orchestrator"),
		cfg:     cfg,
		sleep:   sleepCtx,
	}
	o.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "upstream",
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			m.BreakerTransitions.WithLabelValues(from.String(), to.String()).Inc()
			o.logger.Warn("Circuit breaker state change",
				"breaker", name, "from", from.String(), "to", to.String())
		},
	})
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Execute runs the plan level by level. The returned result is never nil:
// failed calls are recorded with their error and execution continues, so
// partial data always reaches the caller.
func (o *Orchestrator) Execute(ctx context.Context, plan *models.ExecutionPlan) (*models.ExecutionResult, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, o.cfg.PlanTimeout)
	defer cancel()

	result := models.NewExecutionResult()

	for i, pf := range plan.Prefetched {
		result.AddResult(models.CallResult{
			CallID:       fmt.Sprintf("prefetched_%d", i),
			EndpointName: pf.EndpointName,
			Success:      true,
			Data:         pf.Data,
			FromCache:    true,
		})
	}

	levels, err := plan.Levels()
	if err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}

	for _, level := range levels {
		results := make([]callOutcome, len(level))
		g, gctx := errgroup.WithContext(ctx)
		for i, call := range level {
			i, call := i, call
			g.Go(func() error {
				results[i] = o.executeCall(gctx, call, result.CollectedData)
				return nil
			})
		}
		// Workers never return errors; the group is a completion barrier.
		_ = g.Wait()

		for _, out := range results {
			result.AddResult(out.result)
			if out.apiContacted {
				result.TotalAPICalls++
			}
		}
	}

	result.TotalExecutionTimeMS = time.Since(start).Milliseconds()
	o.logger.Info("Plan executed",
		"calls", len(plan.Calls),
		"prefetched", len(plan.Prefetched),
		"api_calls", result.TotalAPICalls,
		"cache_hits", result.TotalCacheHits,
		"errors", len(result.Errors),
		"duration_ms", result.TotalExecutionTimeMS)
	return result, nil
}

type callOutcome struct {
	result       models.CallResult
	apiContacted bool
}

// executeCall runs one planned call: query the breaker, substitute
// references, then go through the cache's fetch path, which calls the
// upstream with retries on a miss. An open breaker fails the call before the
// cache is consulted.
func (o *Orchestrator) executeCall(ctx context.Context, call models.EndpointCall, collected map[string]any) callOutcome {
	start := time.Now()
	fail := func(err error) callOutcome {
		return callOutcome{result: models.CallResult{
			CallID:          call.CallID,
			EndpointName:    call.EndpointName,
			Error:           err.Error(),
			ExecutionTimeMS: time.Since(start).Milliseconds(),
		}}
	}

	if o.breaker.State() == gobreaker.StateOpen {
		return fail(errBreakerOpen)
	}

	params := substituteParams(call.Params, collected)

	contacted := false
	data, fromCache, err := o.cache.GetOrFetch(ctx, call.EndpointName, params, extractMatchStatus,
		func(fctx context.Context) (any, error) {
			fetched, c, err := o.callWithRetry(fctx, call.EndpointName, params)
			contacted = c
			return fetched, err
		})
	if err != nil {
		out := fail(err)
		out.apiContacted = contacted
		return out
	}

	return callOutcome{
		apiContacted: contacted,
		result: models.CallResult{
			CallID:          call.CallID,
			EndpointName:    call.EndpointName,
			Success:         true,
			Data:            data,
			FromCache:       fromCache,
			ExecutionTimeMS: time.Since(start).Milliseconds(),
		},
	}
}

// callWithRetry attempts the upstream call up to MaxRetries times with linear
// backoff. The second return reports whether the upstream was contacted at
// all (false when the breaker rejected every attempt).
func (o *Orchestrator) callWithRetry(ctx context.Context, endpoint string, params map[string]any) (any, bool, error) {
	var lastErr error
	contacted := false

	for attempt := 1; attempt <= o.cfg.MaxRetries; attempt++ {
		if attempt > 1 {
			o.metrics.APIRetriesTotal.Inc()
			if err := o.sleep(ctx, time.Duration(attempt-1)*o.cfg.RetryDelay); err != nil {
				lastErr = err
				break
			}
		}

		callStart := time.Now()
		data, err := o.breaker.Execute(func() (any, error) {
			return o.client.Call(ctx, endpoint, params)
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, contacted, errBreakerOpen
		}

		contacted = true
		o.metrics.APICallsTotal.Inc()
		o.metrics.APICallDuration.Observe(time.Since(callStart).Seconds())
		if err == nil {
			return data, true, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}

	o.metrics.APICallFailures.Inc()
	return nil, contacted, fmt.Errorf("failed after %d retries: %v", o.cfg.MaxRetries, lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
