package models

// CallResult is the outcome of one planned call, whether it hit the upstream
// API, was served from cache, or failed.
type CallResult struct {
	CallID          string `json:"call_id"`
	EndpointName    string `json:"endpoint_name"`
	Success         bool   `json:"success"`
	Data            any    `json:"data,omitempty"`
	Error           string `json:"error,omitempty"`
	FromCache       bool   `json:"from_cache"`
	ExecutionTimeMS int64  `json:"execution_time_ms"`
}

// ExecutionResult aggregates a whole plan execution. Per-call failures never
// abort the plan; they are collected in Errors and the corresponding keys are
// simply absent from CollectedData.
type ExecutionResult struct {
	CallResults []CallResult `json:"call_results"`
	// CollectedData maps both call_id and endpoint_name to the call's data.
	// The endpoint_name alias is last-writer-wins when an endpoint appears
	// twice in one plan; prefer the call_id alias when ambiguity matters.
	CollectedData        map[string]any `json:"collected_data,omitempty"`
	TotalAPICalls        int            `json:"total_api_calls"`
	TotalCacheHits       int            `json:"total_cache_hits"`
	TotalExecutionTimeMS int64          `json:"total_execution_time_ms"`
	Errors               []string       `json:"errors,omitempty"`
	Success              bool           `json:"success"`
}

// NewExecutionResult returns an empty result ready for accumulation.
func NewExecutionResult() *ExecutionResult {
	return &ExecutionResult{
		CollectedData: make(map[string]any),
		Success:       true,
	}
}

// AddResult appends a call result and maintains the cache-hit counter, the
// error list, and the collected-data aliases. TotalAPICalls is owned by the
// orchestrator, which knows whether the upstream was actually contacted
// (cache hits and breaker short-circuits never reach it).
func (r *ExecutionResult) AddResult(res CallResult) {
	r.CallResults = append(r.CallResults, res)
	if res.FromCache {
		r.TotalCacheHits++
	}
	if res.Success {
		r.CollectedData[res.CallID] = res.Data
		r.CollectedData[res.EndpointName] = res.Data
	} else {
		r.Errors = append(r.Errors, res.Error)
		r.Success = false
	}
}
