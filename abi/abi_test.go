package abi

import (
	"math/rand"
	"testing"

	"github.com/llir/llvm/ir/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emerge-lang/compiler/errs"
)

func checkRoundTrip[T comparable](t *testing.T, tab *Table[T]) {
	t.Helper()

	for _, e := range tab.Members() {
		code := tab.Encode(e.Value)
		assert.Equal(t, e.Code, code, "%s %s", tab.Enum(), e.Name)

		v, err := tab.Decode(code)
		require.NoError(t, err)
		assert.Equal(t, e.Value, v, "%s %s", tab.Enum(), e.Name)

		parsed, err := tab.Parse(e.Name)
		require.NoError(t, err)
		assert.Equal(t, e.Value, parsed)
	}

	// One past the last member must never alias the last member.
	_, err := tab.Decode(tab.MaxCode() + 1)
	var uerr *errs.UnknownEnumValueError
	require.ErrorAs(t, err, &uerr, tab.Enum())
	assert.Equal(t, tab.Enum(), uerr.Enum)
	assert.Equal(t, tab.MaxCode()+1, uerr.Raw)

	_, err = tab.Decode(-1)
	assert.ErrorIs(t, err, errs.ErrUnknownEnumValue)
}

func TestTablesRoundTrip(t *testing.T) {
	checkRoundTrip(t, TypeKinds)
	checkRoundTrip(t, ValueKinds)
	checkRoundTrip(t, Opcodes)
	checkRoundTrip(t, MetadataKinds)
	checkRoundTrip(t, IntPredicates)
	checkRoundTrip(t, RealPredicates)
	checkRoundTrip(t, Linkages)
	checkRoundTrip(t, CallConvs)
	checkRoundTrip(t, CodeModels)
	checkRoundTrip(t, RelocModes)
	checkRoundTrip(t, OptLevels)
	checkRoundTrip(t, FileTypes)
	checkRoundTrip(t, VerifierFailureActions)
	checkRoundTrip(t, ThreadLocalModes)
	checkRoundTrip(t, UnnamedAddrs)
	checkRoundTrip(t, ModuleFlagBehaviors)
	checkRoundTrip(t, SourceLanguages)
	checkRoundTrip(t, EmissionKinds)
	checkRoundTrip(t, TypeEncodings)
	checkRoundTrip(t, CompositeTags)
}

func TestCodesAreNotOrdinals(t *testing.T) {
	// The Go numbering of code models differs from the native one.
	assert.Equal(t, int32(0), CodeModels.Encode(CodeModelDefault))
	assert.Equal(t, int32(2), CodeModels.Encode(CodeModelTiny))
	assert.Equal(t, int32(6), CodeModels.Encode(CodeModelLarge))

	assert.Equal(t, int32(32), IntPredicates.Encode(enum.IPredEQ))
	assert.Equal(t, int32(79), CallConvs.Encode(enum.CallingConvWin64))
	assert.Equal(t, int32(66), Opcodes.Encode(OpFNeg))
}

func TestDecodeHoles(t *testing.T) {
	// Obsolete linkage codes and opcode gaps are not members.
	for _, raw := range []int32{4, 10, 11, 13} {
		_, err := Linkages.Decode(raw)
		assert.ErrorIs(t, err, errs.ErrUnknownEnumValue, "linkage %d", raw)
	}

	_, err := Opcodes.Decode(6)
	assert.ErrorIs(t, err, errs.ErrUnknownEnumValue)

	_, err = SourceLanguages.Decode(2)
	assert.ErrorIs(t, err, errs.ErrUnknownEnumValue)
}

func TestEncodeNonMemberPanics(t *testing.T) {
	err := errs.Catch(func() { Linkages.Encode(enum.LinkageNone) })
	assert.ErrorIs(t, err, errs.ErrInvalidHandle)
}

func TestParseUnknownName(t *testing.T) {
	_, err := CodeModels.Parse("huge")
	assert.Error(t, err)

	name, ok := RelocModes.NameOf(RelocPIC)
	assert.True(t, ok)
	assert.Equal(t, "pic", name)

	assert.Equal(t, []string{"none", "full", "line-tables-only"}, EmissionKinds.Names())
}

func TestDuplicateEntriesPanic(t *testing.T) {
	assert.Panics(t, func() {
		NewTable("Dup", Entry[int]{1, 1, "a"}, Entry[int]{2, 1, "b"})
	})
	assert.Panics(t, func() {
		NewTable("Dup", Entry[int]{1, 1, "a"}, Entry[int]{1, 2, "b"})
	})
	assert.Panics(t, func() {
		NewTable("Dup", Entry[int]{1, 1, "a"}, Entry[int]{2, 2, "a"})
	})
}

// -----------------------------------------------------------------------------

func allFlags() []DIFlags {
	flags := make([]DIFlags, 0, len(DIFlagNames))
	for f := range DIFlagNames {
		flags = append(flags, f)
	}

	return flags
}

func TestFlagsRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	flags := allFlags()

	for i := 0; i < 500; i++ {
		var fs DIFlags
		for _, f := range flags {
			if rng.Intn(2) == 0 {
				fs = fs.Set(f)
			}
		}

		decoded, err := DecodeFlags(EncodeFlags(fs))
		require.NoError(t, err)
		assert.Equal(t, fs, decoded)
	}
}

func TestFlagOpsTouchOnlyTheirMask(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for _, f := range allFlags() {
		for i := 0; i < 50; i++ {
			fs := DIFlags(rng.Uint32())

			set := fs.Set(f)
			assert.Equal(t, fs&^f, set&^f, "set %s", DIFlagNames[f])
			assert.True(t, set.Test(f))

			unset := fs.Unset(f)
			assert.Equal(t, fs&^f, unset&^f, "unset %s", DIFlagNames[f])
			assert.Equal(t, DIFlags(0), unset&f)
		}
	}
}

func TestCompositeFlags(t *testing.T) {
	fs := DIFlagZero.Set(DIFlagPublic)
	assert.Equal(t, DIFlagPrivate|DIFlagProtected, fs)
	assert.True(t, fs.Test(DIFlagPrivate))
	assert.True(t, fs.Test(DIFlagProtected))

	fs = fs.Unset(DIFlagProtected)
	assert.False(t, fs.Test(DIFlagPublic))
	assert.Equal(t, DIFlagPrivate, fs)

	fs = DIFlagIndirectVirtualBase
	assert.True(t, fs.Test(DIFlagFwdDecl))
	assert.True(t, fs.Test(DIFlagVirtual))
	assert.Equal(t, DIFlagZero, fs.Clear())
	assert.Equal(t, uint32(0x24), fs.Bits())
}

func TestDecodeFlagsRejectsUnknownBits(t *testing.T) {
	_, err := DecodeFlags(1 << 21)
	assert.ErrorIs(t, err, errs.ErrUnknownEnumValue)

	_, err = DecodeFlags(int32(DIFlagPrototyped) | 1<<30)
	assert.ErrorIs(t, err, errs.ErrUnknownEnumValue)
}

func TestNarrow(t *testing.T) {
	assert.Equal(t, uint32(12), Uint32(12))
	assert.Equal(t, uint64(1<<40), Uint64(1<<40))
	assert.Equal(t, 7, Int(7))

	err := errs.Catch(func() { Uint32(-1) })
	assert.ErrorIs(t, err, errs.ErrInvalidHandle)
}

func TestNarrowRejectsOverflow(t *testing.T) {
	assert.Equal(t, int32(-3), Int32(-3))
	assert.Equal(t, 4096, Length(4096))

	for name, fn := range map[string]func(){
		"uint32": func() { Uint32(1 << 33) },
		"int32":  func() { Int32(1 << 31) },
		"length": func() { Length(1 << 63) },
	} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, errs.Catch(fn), errs.ErrInvalidHandle)
		})
	}
}
