package apifootball

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucide-ai/lucide/pkg/knowledge"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(knowledge.NewDefaultBase(), Config{
		BaseURL: srv.URL,
		APIKey:  "test-key",
	})
	require.NoError(t, err)
	return c
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, Config{APIKey: "k"})
	assert.Error(t, err)

	_, err = New(knowledge.NewDefaultBase(), Config{})
	assert.ErrorContains(t, err, "API key")
}

func TestCall_SendsKeyAndParams(t *testing.T) {
	var gotPath, gotKey, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-apisports-key")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"errors": [], "results": 1, "response": [{"team": {"id": 85}}]}`))
	})

	data, err := c.Call(context.Background(), knowledge.EndpointTeamsSearch,
		map[string]any{"search": "PSG"})
	require.NoError(t, err)

	assert.Equal(t, "/teams", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "search=PSG", gotQuery)

	envelope, ok := data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), envelope["results"])
}

func TestCall_UnknownEndpoint(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := c.Call(context.Background(), "no_such_endpoint", nil)
	assert.ErrorIs(t, err, knowledge.ErrEndpointNotFound)
}

func TestCall_Non2xxStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Call(context.Background(), knowledge.EndpointTeamsSearch,
		map[string]any{"search": "PSG"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "429")
}

func TestCall_EnvelopeErrorsObject(t *testing.T) {
	// The upstream reports request problems inside a 200 envelope.
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"errors": {"token": "invalid api key"}, "response": []}`))
	})

	_, err := c.Call(context.Background(), knowledge.EndpointTeamsSearch,
		map[string]any{"search": "PSG"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestCall_EnvelopeErrorsArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"errors": ["rate limit reached"], "response": []}`))
	})

	_, err := c.Call(context.Background(), knowledge.EndpointTeamsSearch,
		map[string]any{"search": "PSG"})
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestCall_MalformedJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := c.Call(context.Background(), knowledge.EndpointTeamsSearch,
		map[string]any{"search": "PSG"})
	assert.ErrorContains(t, err, "failed to decode")
}
