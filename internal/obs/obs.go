// Package obs wraps structured logging and the core's single fatal-error
// escape hatch. Every long-lived core object (term bank, OCB, rewriter)
// takes a *zap.Logger at construction time rather than reaching for a
// package-level global, so that an embedding application can run several
// independent provers with independently-configured logging (spec.md §5's
// per-prover scoping note).
package obs

import (
	"go.uber.org/zap"

	coreerrors "github.com/eprover-go/eqcore/internal/errors"
)

// Nop returns a logger that discards everything, the default for
// constructors that receive no explicit logger.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// Fatal logs msg at the fatal-class level with the given code and fields,
// then panics with a *errors.FatalError. This is the only panic path in
// the core; it is reserved for out-of-memory-class conditions and
// invariant violations that a well-formed input can never trigger.
func Fatal(log *zap.Logger, code, msg string, fields ...zap.Field) {
	if log == nil {
		log = Nop()
	}
	log.DPanic(msg, append(fields, zap.String("code", code))...)
	panic(coreerrors.NewFatal(code, msg))
}
