package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxonomyMatchesSentinels(t *testing.T) {
	cases := []struct {
		err  error
		want error
	}{
		{InvalidHandle("LLVMBuildAdd", "Value"), ErrInvalidHandle},
		{StalePlaceholder("ReplaceAllUses"), ErrStalePlaceholder},
		{StalePlaceholder("ReplaceAllUses"), ErrInvalidHandle},
		{&UnknownEnumValueError{Enum: "TypeKind", Raw: 21}, ErrUnknownEnumValue},
		{&NotPositionedError{Op: "BuildRet"}, ErrBuilderNotPositioned},
		{&NativeCallError{Op: "LLVMRunPasses", Message: "unknown pass name 'foo'"}, ErrNativeCallFailed},
		{&VerificationError{Module: "m", Diagnostic: "broken"}, ErrVerificationFailed},
		{&VersionMismatchError{Want: "18", Got: "17.0.6"}, ErrLibraryVersionMismatch},
	}

	for _, c := range cases {
		assert.ErrorIs(t, c.err, c.want, c.err.Error())
		assert.ErrorIs(t, fmt.Errorf("wrapped: %w", c.err), c.want)
	}

	assert.NotErrorIs(t, InvalidHandle("x", ""), ErrStalePlaceholder)
}

func TestDiagnosticTextIsKept(t *testing.T) {
	err := &VerificationError{Module: "demo", Diagnostic: "Terminator found in the middle of a basic block!"}
	assert.Contains(t, err.Error(), "Terminator found in the middle of a basic block!")
	assert.Contains(t, err.Error(), "demo")

	ncerr := &NativeCallError{Op: "LLVMGetTargetFromTriple", Message: "No available targets"}
	assert.Equal(t, "LLVMGetTargetFromTriple: No available targets", ncerr.Error())
}

func TestCatchRecoversProgrammingErrors(t *testing.T) {
	err := Catch(func() {
		Fail(&NotPositionedError{Op: "BuildAdd"})
	})
	require.Error(t, err)

	var npe *NotPositionedError
	require.True(t, errors.As(err, &npe))
	assert.Equal(t, "BuildAdd", npe.Op)

	assert.NoError(t, Catch(func() {}))
}

func TestCatchPropagatesOtherPanics(t *testing.T) {
	assert.PanicsWithValue(t, "boom", func() {
		_ = Catch(func() { panic("boom") })
	})

	verr := &VerificationError{Module: "m"}
	assert.PanicsWithError(t, verr.Error(), func() {
		_ = Catch(func() { panic(verr) })
	})
}
