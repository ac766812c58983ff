package obs

import (
	"testing"

	"github.com/stretchr/testify/require"

	coreerrors "github.com/eprover-go/eqcore/internal/errors"
)

func TestNopDiscardsWithoutPanicking(t *testing.T) {
	log := Nop()
	require.NotPanics(t, func() {
		log.Info("should be discarded")
	})
}

func TestFatalPanicsWithFatalError(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r, "Fatal must panic")
		fe, ok := r.(*coreerrors.FatalError)
		require.True(t, ok, "panic value must be *errors.FatalError")
		require.Equal(t, coreerrors.CodeOutOfMemory, fe.Code)
	}()
	Fatal(Nop(), coreerrors.CodeOutOfMemory, "term bank exhausted")
}

func TestFatalToleratesNilLogger(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r, "Fatal must panic even with a nil logger")
	}()
	Fatal(nil, coreerrors.CodePDTInvariant, "dangling entry")
}
