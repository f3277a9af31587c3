package llvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emerge-lang/compiler/errs"
)

func TestLoadedVersionIsPinned(t *testing.T) {
	assert.Equal(t, uint64(PinnedMajor), Version().Major())
	assert.Equal(t, uint64(PinnedMajor), HeaderVersion().Major())
	assert.NoError(t, checkPinned())
}

func TestCheckVersion(t *testing.T) {
	require.NoError(t, CheckVersion(">= 18, < 19"))

	err := CheckVersion("~17.0")
	assert.ErrorIs(t, err, errs.ErrLibraryVersionMismatch)

	err = CheckVersion("not a constraint")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errs.ErrLibraryVersionMismatch)
}

func TestTablesMatchHeaders(t *testing.T) {
	assert.NoError(t, CheckABI())
}
