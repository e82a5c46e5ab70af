package models

// Bundle is the structured evidence a pipeline invocation returns. When the
// validator judged the question incomplete, Clarifications is set and no plan
// was generated or executed; otherwise Plan and Execution describe what ran.
// The downstream formatter turns a bundle into prose.
type Bundle struct {
	InvocationID string       `json:"invocation_id"`
	QuestionType QuestionType `json:"question_type"`
	Language     Language     `json:"language"`
	Confidence   float64      `json:"confidence"`
	Entities     Entities     `json:"entities"`

	// Clarification path.
	MissingInfo    []string `json:"missing_info,omitempty"`
	Clarifications []string `json:"clarifications,omitempty"`

	// Execution path. Plan is included for introspection and debugging.
	Plan      *ExecutionPlan   `json:"plan,omitempty"`
	Execution *ExecutionResult `json:"execution_result,omitempty"`
}

// NeedsClarification reports whether the bundle is a clarification request
// rather than an evidence bundle.
func (b *Bundle) NeedsClarification() bool {
	return len(b.Clarifications) > 0
}
