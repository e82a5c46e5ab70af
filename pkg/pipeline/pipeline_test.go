package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucide-ai/lucide/pkg/cache"
	"github.com/lucide-ai/lucide/pkg/knowledge"
	"github.com/lucide-ai/lucide/pkg/metrics"
	"github.com/lucide-ai/lucide/pkg/models"
	"github.com/lucide-ai/lucide/pkg/orchestrator"
	"github.com/lucide-ai/lucide/pkg/planner"
	"github.com/lucide-ai/lucide/pkg/validator"
)

var testNow = time.Date(2026, 8, 26, 18, 0, 0, 0, time.UTC)

// scriptedClient serves canned envelopes per endpoint.
type scriptedClient struct {
	responses map[string]any
	err       error
}

func (s *scriptedClient) Call(_ context.Context, endpoint string, _ map[string]any) (any, error) {
	if s.err != nil {
		return nil, s.err
	}
	if resp, ok := s.responses[endpoint]; ok {
		return resp, nil
	}
	return nil, errors.New("unscripted endpoint " + endpoint)
}

func newTestPipeline(t *testing.T, client orchestrator.Client) *Pipeline {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	m := metrics.NewForTesting()
	kb := knowledge.NewDefaultBase()
	c, err := cache.New(rdb, kb, m)
	require.NoError(t, err)

	clock := func() time.Time { return testNow }
	v, err := validator.New(m, validator.WithClock(clock))
	require.NoError(t, err)
	p, err := planner.New(kb, c, m, planner.WithClock(clock))
	require.NoError(t, err)
	o, err := orchestrator.New(client, c, m, orchestrator.Config{},
		orchestrator.WithSleep(func(context.Context, time.Duration) error { return nil }))
	require.NoError(t, err)

	pipe, err := New(v, p, o)
	require.NoError(t, err)
	return pipe
}

func TestNew_RequiresAllStages(t *testing.T) {
	_, err := New(nil, nil, nil)
	assert.Error(t, err)
}

func TestProcess_ClarificationShortCircuits(t *testing.T) {
	pipe := newTestPipeline(t, &scriptedClient{})

	bundle := pipe.Process(context.Background(), "Quel est le classement ?", nil, "")

	assert.True(t, bundle.NeedsClarification())
	assert.NotEmpty(t, bundle.InvocationID)
	assert.Equal(t, models.QuestionStandings, bundle.QuestionType)
	assert.Equal(t, []string{validator.SlotLeagues}, bundle.MissingInfo)
	// No plan is built and nothing is executed.
	assert.Nil(t, bundle.Plan)
	assert.Nil(t, bundle.Execution)
}

func TestProcess_StandingsEndToEnd(t *testing.T) {
	client := &scriptedClient{responses: map[string]any{
		knowledge.EndpointStandings: map[string]any{
			"response": []any{map[string]any{"league": map[string]any{"id": float64(61)}}},
		},
	}}
	pipe := newTestPipeline(t, client)

	bundle := pipe.Process(context.Background(), "Quel est le classement de la Ligue 1 ?", nil, "")

	assert.False(t, bundle.NeedsClarification())
	require.NotNil(t, bundle.Plan)
	require.NotNil(t, bundle.Execution)
	assert.True(t, bundle.Execution.Success)
	assert.Equal(t, 1, bundle.Execution.TotalAPICalls)
	assert.NotNil(t, bundle.Execution.CollectedData[knowledge.EndpointStandings])
}

func TestProcess_SecondAskServedFromCache(t *testing.T) {
	client := &scriptedClient{responses: map[string]any{
		knowledge.EndpointStandings: map[string]any{
			"response": []any{map[string]any{"league": map[string]any{"id": float64(61)}}},
		},
	}}
	pipe := newTestPipeline(t, client)
	ctx := context.Background()
	question := "Quel est le classement de la Ligue 1 ?"

	first := pipe.Process(ctx, question, nil, "")
	require.True(t, first.Execution.Success)

	// The planner finds the cached entry and emits a prefetched plan.
	second := pipe.Process(ctx, question, nil, "")
	require.NotNil(t, second.Execution)
	assert.True(t, second.Execution.Success)
	assert.Zero(t, second.Execution.TotalAPICalls)
	assert.Empty(t, second.Plan.Calls)
	assert.Len(t, second.Plan.Prefetched, 1)
}

func TestProcess_UpstreamFailureSurfacesInBundle(t *testing.T) {
	client := &scriptedClient{err: errors.New("api down")}
	pipe := newTestPipeline(t, client)

	bundle := pipe.Process(context.Background(), "Quel est le classement de la Ligue 1 ?", nil, "")

	assert.False(t, bundle.NeedsClarification())
	require.NotNil(t, bundle.Execution)
	assert.False(t, bundle.Execution.Success)
	assert.NotEmpty(t, bundle.Execution.Errors)
}

func TestProcess_UnknownQuestionAsksForClarification(t *testing.T) {
	pipe := newTestPipeline(t, &scriptedClient{})

	bundle := pipe.Process(context.Background(), "Bonjour !", nil, "")

	assert.True(t, bundle.NeedsClarification())
	assert.Equal(t, models.QuestionUnknown, bundle.QuestionType)
}

func TestProcess_LanguageOverridePropagates(t *testing.T) {
	pipe := newTestPipeline(t, &scriptedClient{})

	bundle := pipe.Process(context.Background(), "Quel est le classement ?", nil, models.LanguageEnglish)

	assert.Equal(t, models.LanguageEnglish, bundle.Language)
	// Clarifications follow the overridden language.
	require.NotEmpty(t, bundle.Clarifications)
	assert.Equal(t, "Which league or competition are you interested in?", bundle.Clarifications[0])
}
