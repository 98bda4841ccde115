package types

// OutcomeKind classifies the result of executing a translated query.
type OutcomeKind string

const (
	// OutcomeFound means rows came back with usable content.
	OutcomeFound OutcomeKind = "found"
	// OutcomeEmpty means the query was valid but matched nothing.
	OutcomeEmpty OutcomeKind = "empty"
	// OutcomeNoContent means rows matched but carried no content projection.
	OutcomeNoContent OutcomeKind = "no_content"
	// OutcomeMalformed means rows had an unexpected shape.
	OutcomeMalformed OutcomeKind = "malformed"
)

// QueryOutcome is the tagged result of a question's query execution.
// Empty results are a normal outcome here, never an error.
type QueryOutcome struct {
	Kind    OutcomeKind
	Content string // first row's content when Kind == OutcomeFound
	Detail  string // shape description when Kind == OutcomeMalformed
}

// Found reports whether the outcome carries usable content.
func (o QueryOutcome) Found() bool {
	return o.Kind == OutcomeFound
}
