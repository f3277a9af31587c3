package abi

import (
	"fortio.org/safecast"

	"github.com/emerge-lang/compiler/errs"
)

// Uint32 narrows n for a native `unsigned` parameter.  A negative or too large
// count is a programming error.
func Uint32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		errs.Fail(errs.InvalidHandle("narrow: "+err.Error(), "uint32"))
	}

	return v
}

// Uint64 narrows n for a native `uint64_t` parameter.
func Uint64(n int) uint64 {
	v, err := safecast.Conv[uint64](n)
	if err != nil {
		errs.Fail(errs.InvalidHandle("narrow: "+err.Error(), "uint64"))
	}

	return v
}

// Int converts a native `unsigned` result to an int.
func Int(n uint32) int {
	v, err := safecast.Conv[int](n)
	if err != nil {
		errs.Fail(errs.InvalidHandle("narrow: "+err.Error(), "int"))
	}

	return v
}

// Int32 narrows n for a native `int` parameter.
func Int32(n int) int32 {
	v, err := safecast.Conv[int32](n)
	if err != nil {
		errs.Fail(errs.InvalidHandle("narrow: "+err.Error(), "int32"))
	}

	return v
}

// Length converts a native `size_t` length to an int.
func Length(n uint64) int {
	v, err := safecast.Conv[int](n)
	if err != nil {
		errs.Fail(errs.InvalidHandle("narrow: "+err.Error(), "int"))
	}

	return v
}
