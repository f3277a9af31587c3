package abi

import "github.com/emerge-lang/compiler/errs"

// DIFlags is a set of debug info flags (LLVMDIFlags).  Some named flags are
// composites of several bits; testing a composite requires all of its bits.
type DIFlags uint32

// Enumeration of debug info flags as of LLVM 18.
const (
	DIFlagZero                DIFlags = 0
	DIFlagPrivate             DIFlags = 1
	DIFlagProtected           DIFlags = 2
	DIFlagPublic              DIFlags = 3
	DIFlagFwdDecl             DIFlags = 1 << 2
	DIFlagAppleBlock          DIFlags = 1 << 3
	DIFlagReservedBit4        DIFlags = 1 << 4
	DIFlagVirtual             DIFlags = 1 << 5
	DIFlagArtificial          DIFlags = 1 << 6
	DIFlagExplicit            DIFlags = 1 << 7
	DIFlagPrototyped          DIFlags = 1 << 8
	DIFlagObjcClassComplete   DIFlags = 1 << 9
	DIFlagObjectPointer       DIFlags = 1 << 10
	DIFlagVector              DIFlags = 1 << 11
	DIFlagStaticMember        DIFlags = 1 << 12
	DIFlagLValueReference     DIFlags = 1 << 13
	DIFlagRValueReference     DIFlags = 1 << 14
	DIFlagReserved            DIFlags = 1 << 15
	DIFlagSingleInheritance   DIFlags = 1 << 16
	DIFlagMultipleInheritance DIFlags = 2 << 16
	DIFlagVirtualInheritance  DIFlags = 3 << 16
	DIFlagIntroducedVirtual   DIFlags = 1 << 18
	DIFlagBitField            DIFlags = 1 << 19
	DIFlagNoReturn            DIFlags = 1 << 20
	DIFlagTypePassByValue     DIFlags = 1 << 22
	DIFlagTypePassByReference DIFlags = 1 << 23
	DIFlagEnumClass           DIFlags = 1 << 24
	DIFlagThunk               DIFlags = 1 << 25
	DIFlagNonTrivial          DIFlags = 1 << 26
	DIFlagBigEndian           DIFlags = 1 << 27
	DIFlagLittleEndian        DIFlags = 1 << 28

	DIFlagIndirectVirtualBase = DIFlagFwdDecl | DIFlagVirtual
	DIFlagAccessibility       = DIFlagPrivate | DIFlagProtected | DIFlagPublic
	DIFlagPtrToMemberRep      = DIFlagSingleInheritance | DIFlagMultipleInheritance | DIFlagVirtualInheritance
)

// DIFlagNames lists every named flag, composites included.
var DIFlagNames = map[DIFlags]string{
	DIFlagPrivate:             "private",
	DIFlagProtected:           "protected",
	DIFlagPublic:              "public",
	DIFlagFwdDecl:             "fwd_decl",
	DIFlagAppleBlock:          "apple_block",
	DIFlagReservedBit4:        "reserved_bit4",
	DIFlagVirtual:             "virtual",
	DIFlagArtificial:          "artificial",
	DIFlagExplicit:            "explicit",
	DIFlagPrototyped:          "prototyped",
	DIFlagObjcClassComplete:   "objc_class_complete",
	DIFlagObjectPointer:       "object_pointer",
	DIFlagVector:              "vector",
	DIFlagStaticMember:        "static_member",
	DIFlagLValueReference:     "lvalue_reference",
	DIFlagRValueReference:     "rvalue_reference",
	DIFlagReserved:            "reserved",
	DIFlagSingleInheritance:   "single_inheritance",
	DIFlagMultipleInheritance: "multiple_inheritance",
	DIFlagVirtualInheritance:  "virtual_inheritance",
	DIFlagIntroducedVirtual:   "introduced_virtual",
	DIFlagBitField:            "bit_field",
	DIFlagNoReturn:            "no_return",
	DIFlagTypePassByValue:     "type_pass_by_value",
	DIFlagTypePassByReference: "type_pass_by_reference",
	DIFlagEnumClass:           "enum_class",
	DIFlagThunk:               "thunk",
	DIFlagNonTrivial:          "non_trivial",
	DIFlagBigEndian:           "big_endian",
	DIFlagLittleEndian:        "little_endian",
	DIFlagIndirectVirtualBase: "indirect_virtual_base",
}

// diFlagsKnown is the union of all bits which belong to some named flag.
var diFlagsKnown = func() (known DIFlags) {
	for f := range DIFlagNames {
		known |= f
	}

	return
}()

// Set returns fs with all the bits of f set.
func (fs DIFlags) Set(f DIFlags) DIFlags {
	return fs | f
}

// Unset returns fs with all the bits of f cleared.
func (fs DIFlags) Unset(f DIFlags) DIFlags {
	return fs &^ f
}

// Test returns whether all the bits of f are set in fs.  The zero flag is
// trivially contained in every set.
func (fs DIFlags) Test(f DIFlags) bool {
	return fs&f == f
}

// Clear returns the empty flag set.
func (fs DIFlags) Clear() DIFlags {
	return DIFlagZero
}

// Bits returns the raw bit pattern of fs.
func (fs DIFlags) Bits() uint32 {
	return uint32(fs)
}

// EncodeFlags converts fs to the native 32-bit representation.
func EncodeFlags(fs DIFlags) int32 {
	return int32(fs)
}

// DecodeFlags converts a native 32-bit flag word into a flag set.  It fails if
// raw contains a bit which belongs to no known flag.
func DecodeFlags(raw int32) (DIFlags, error) {
	fs := DIFlags(uint32(raw))
	if fs&^diFlagsKnown != 0 {
		return DIFlagZero, &errs.UnknownEnumValueError{Enum: "DIFlags", Raw: raw}
	}

	return fs, nil
}
