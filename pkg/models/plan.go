package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrPlanCycle is returned by Levels when the dependency graph is not a DAG.
// A cyclic plan is a planner bug, never a recoverable runtime condition.
var ErrPlanCycle = errors.New("execution plan contains a dependency cycle")

// ParamValue is a tagged union: either a literal parameter value or a
// reference to the output of another call, resolved by the orchestrator at
// the level boundary. References serialize as "<from_{source}>" where source
// is a call ID or an endpoint name.
type ParamValue struct {
	literal any
	ref     string
}

// Literal wraps a concrete parameter value.
func Literal(v any) ParamValue {
	return ParamValue{literal: v}
}

// Reference creates a placeholder resolved from a prior call's output.
// source is a call ID (preferred) or an endpoint name.
func Reference(source string) ParamValue {
	return ParamValue{ref: source}
}

// IsReference reports whether the value must be resolved at execution time.
func (p ParamValue) IsReference() bool { return p.ref != "" }

// Value returns the literal value (nil for references).
func (p ParamValue) Value() any { return p.literal }

// Source returns the referenced call ID or endpoint name ("" for literals).
func (p ParamValue) Source() string { return p.ref }

// Placeholder renders the wire form of the value: literals via fmt, references
// as "<from_{source}>".
func (p ParamValue) Placeholder() string {
	if p.ref != "" {
		return fmt.Sprintf("<from_%s>", p.ref)
	}
	return fmt.Sprintf("%v", p.literal)
}

// MarshalJSON renders references in their placeholder form so serialized
// plans read the same way the orchestrator sees them.
func (p ParamValue) MarshalJSON() ([]byte, error) {
	if p.ref != "" {
		return json.Marshal(p.Placeholder())
	}
	return json.Marshal(p.literal)
}

// ParseReference extracts the source from a "<from_X>" placeholder string.
// Returns ("", false) if s is not a placeholder.
func ParseReference(s string) (string, bool) {
	if strings.HasPrefix(s, "<from_") && strings.HasSuffix(s, ">") && len(s) > len("<from_>") {
		return s[len("<from_") : len(s)-1], true
	}
	return "", false
}

// EndpointCall is one planned upstream call.
type EndpointCall struct {
	CallID       string                `json:"call_id"`
	EndpointName string                `json:"endpoint_name"`
	Params       map[string]ParamValue `json:"params"`
	DependsOn    []string              `json:"depends_on,omitempty"`
}

// PrefetchedResult is a candidate the planner dropped because an equivalent
// cache entry already exists. The orchestrator surfaces these as from_cache
// call results without reissuing the call.
type PrefetchedResult struct {
	EndpointName string         `json:"endpoint_name"`
	Params       map[string]any `json:"params"`
	Data         any            `json:"-"`
}

// ExecutionPlan is a dependency-ordered sequence of endpoint calls. Call IDs
// are assigned in topological order (call_0, call_1, ...).
type ExecutionPlan struct {
	Calls      []EndpointCall     `json:"calls"`
	Prefetched []PrefetchedResult `json:"prefetched,omitempty"`
}

// Levels partitions the plan into groups of calls at the same depth in the
// dependency DAG: every dependency of a call in group k is satisfied by
// groups 0..k-1. Calls within a level may execute concurrently. Returns
// ErrPlanCycle if the graph is not a DAG or a dependency is unknown.
func (p *ExecutionPlan) Levels() ([][]EndpointCall, error) {
	index := make(map[string]int, len(p.Calls))
	for i, call := range p.Calls {
		index[call.CallID] = i
	}

	// depth = longest path from a root, computed via memoized DFS with
	// on-stack cycle detection.
	const (
		unvisited = 0
		onStack   = 1
		done      = 2
	)
	state := make([]int, len(p.Calls))
	depth := make([]int, len(p.Calls))

	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case done:
			return nil
		case onStack:
			return fmt.Errorf("%w: at %s", ErrPlanCycle, p.Calls[i].CallID)
		}
		state[i] = onStack
		maxDep := -1
		for _, dep := range p.Calls[i].DependsOn {
			j, ok := index[dep]
			if !ok {
				return fmt.Errorf("%w: %s depends on unknown call %s",
					ErrPlanCycle, p.Calls[i].CallID, dep)
			}
			if err := visit(j); err != nil {
				return err
			}
			if depth[j] > maxDep {
				maxDep = depth[j]
			}
		}
		depth[i] = maxDep + 1
		state[i] = done
		return nil
	}

	maxDepth := 0
	for i := range p.Calls {
		if err := visit(i); err != nil {
			return nil, err
		}
		if depth[i] > maxDepth {
			maxDepth = depth[i]
		}
	}

	if len(p.Calls) == 0 {
		return nil, nil
	}

	levels := make([][]EndpointCall, maxDepth+1)
	for i, call := range p.Calls {
		levels[depth[i]] = append(levels[depth[i]], call)
	}
	return levels, nil
}

// TotalCalls returns the number of planned upstream calls, excluding
// prefetched cache entries.
func (p *ExecutionPlan) TotalCalls() int { return len(p.Calls) }
