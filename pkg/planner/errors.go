package planner

import (
	"errors"
	"fmt"

	"github.com/lucide-ai/lucide/pkg/models"
)

var (
	// ErrNoCandidates indicates no endpoint in the catalog can serve the
	// validated question. Usually a catalog gap, not a user error.
	ErrNoCandidates = errors.New("no candidate endpoints for question")

	// ErrNotPlannable indicates the validation result cannot be planned
	// (incomplete or unknown question type reached the planner).
	ErrNotPlannable = errors.New("question is not plannable")
)

// PlanningError wraps catalog or graph inconsistencies detected while
// building a plan (dependency cycle, unknown endpoint reference). The
// pipeline surfaces it in the bundle as "planning: ..." with no calls
// executed.
type PlanningError struct {
	Stage string
	Err   error
}

// Error returns the formatted message.
func (e *PlanningError) Error() string {
	return fmt.Sprintf("planning: %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *PlanningError) Unwrap() error { return e.Err }

func newPlanningError(stage string, err error) *PlanningError {
	return &PlanningError{Stage: stage, Err: err}
}

// checkMaterialized rejects a candidate whose materialization produced an
// empty parameter: neither a reference nor a literal value. Planning such a
// call would send a nil parameter upstream and burn retries on a guaranteed
// rejection.
func checkMaterialized(endpoint string, params map[string]models.ParamValue) error {
	for name, v := range params {
		if !v.IsReference() && v.Value() == nil {
			return fmt.Errorf("%w: no value for parameter %q of %s",
				ErrNotPlannable, name, endpoint)
		}
	}
	return nil
}
