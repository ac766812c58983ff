// Package errors defines the prover core's error-code catalogue and its
// one fatal-error type. See spec.md §7: fatal errors abort the process,
// refused operations return booleans, statistical failures are counted —
// never raised as errors.
package errors

// Error codes, grouped by subsystem. Unlike a compiler's diagnostic
// catalogue (source position, suggestions, terminal color), the core's
// codes exist only to label the handful of FatalError conditions it can
// raise; everything else is a plain (ok bool) return.
const (
	// E1xxx: term bank
	CodeOutOfMemory = "E1001"

	// E2xxx: formula / CNF pipeline
	CodeMalformedFormula = "E2001"

	// E3xxx: ordering control block
	CodeOrderingInvariant = "E3001"

	// E4xxx: PDT / rewriter
	CodePDTInvariant = "E4001"
)

// FatalError is the only error type the core ever panics with. Fatal
// conditions (out-of-memory, an invariant violation surviving NNF) abort
// the process; the core never attempts to recover from one itself.
type FatalError struct {
	Code    string
	Message string
}

func (e *FatalError) Error() string {
	return e.Code + ": " + e.Message
}

// NewFatal constructs a FatalError. Callers typically pass this straight
// to obs.Fatal, which logs then panics with it.
func NewFatal(code, message string) *FatalError {
	return &FatalError{Code: code, Message: message}
}
