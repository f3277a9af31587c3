package llvm

/*
#include "llvm-c/Core.h"
#include "llvm-c/Target.h"
#include "llvm/Config/llvm-config.h"
*/
import "C"

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/emerge-lang/compiler/errs"
)

// PinnedMajor is the LLVM major version whose C API this package is written
// against.  Enum codes and function signatures are only valid for it.
const PinnedMajor = 18

// Version returns the version of the loaded LLVM library.
func Version() *semver.Version {
	var major, minor, patch C.uint
	C.LLVMGetVersion(byref(&major), byref(&minor), byref(&patch))
	return semver.New(uint64(major), uint64(minor), uint64(patch), "", "")
}

// HeaderVersion returns the version of the LLVM headers the package was
// compiled against.
func HeaderVersion() *semver.Version {
	return semver.New(uint64(C.LLVM_VERSION_MAJOR), uint64(C.LLVM_VERSION_MINOR), uint64(C.LLVM_VERSION_PATCH), "", "")
}

// CheckVersion returns an error if the loaded library does not satisfy the
// semantic version constraint.
func CheckVersion(constraint string) error {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid LLVM version constraint %q: %w", constraint, err)
	}

	if v := Version(); !c.Check(v) {
		return &errs.VersionMismatchError{Want: constraint, Got: v.String()}
	}

	return nil
}

// checkPinned verifies that both the headers and the loaded library belong to
// the pinned major version.
func checkPinned() error {
	want := fmt.Sprintf("%d.x", PinnedMajor)

	if hv := HeaderVersion(); hv.Major() != PinnedMajor {
		return &errs.VersionMismatchError{Want: want, Got: "headers " + hv.String()}
	}

	if v := Version(); v.Major() != PinnedMajor {
		return &errs.VersionMismatchError{Want: want, Got: v.String()}
	}

	return nil
}

// -----------------------------------------------------------------------------

func init() {
	if err := checkPinned(); err != nil {
		panic(err)
	}

	if err := CheckABI(); err != nil {
		panic(err)
	}

	C.LLVMInitializeCore(C.LLVMGetGlobalPassRegistry())

	// Initialize all output targets.
	initializeAllTargets()
}

// initializeAllTargets initializes all of the LLVM target backends, their
// machine code layers and their assembly printers and parsers.
func initializeAllTargets() {
	C.LLVMInitializeAllTargetInfos()
	C.LLVMInitializeAllTargets()
	C.LLVMInitializeAllTargetMCs()
	C.LLVMInitializeAllAsmPrinters()
	C.LLVMInitializeAllAsmParsers()
}
