package abi

import "github.com/llir/llvm/ir/enum"

// SourceLanguage is the DWARF source language of a compile unit.
type SourceLanguage uint8

// Enumeration of source languages.
const (
	LangC89 SourceLanguage = iota
	LangC
	LangC99
	LangC11
	LangCPlusPlus
	LangCPlusPlus11
	LangCPlusPlus14
	LangJava
	LangD
	LangGo
	LangRust
	LangSwift
	LangJulia
)

// SourceLanguages maps source languages to LLVMDWARFSourceLanguage, whose
// codes are the DW_LANG codes minus one.
var SourceLanguages = NewTable("DWARFSourceLanguage",
	Entry[SourceLanguage]{LangC89, 0x0000, "c89"},
	Entry[SourceLanguage]{LangC, 0x0001, "c"},
	Entry[SourceLanguage]{LangCPlusPlus, 0x0003, "c++"},
	Entry[SourceLanguage]{LangJava, 0x000a, "java"},
	Entry[SourceLanguage]{LangC99, 0x000b, "c99"},
	Entry[SourceLanguage]{LangD, 0x0012, "d"},
	Entry[SourceLanguage]{LangGo, 0x0015, "go"},
	Entry[SourceLanguage]{LangCPlusPlus11, 0x0019, "c++11"},
	Entry[SourceLanguage]{LangRust, 0x001b, "rust"},
	Entry[SourceLanguage]{LangC11, 0x001c, "c11"},
	Entry[SourceLanguage]{LangSwift, 0x001d, "swift"},
	Entry[SourceLanguage]{LangJulia, 0x001e, "julia"},
	Entry[SourceLanguage]{LangCPlusPlus14, 0x0020, "c++14"},
)

// EmissionKind is the amount of debug information emitted for a compile unit.
type EmissionKind uint8

// Enumeration of emission kinds.
const (
	EmitNoDebug EmissionKind = iota
	EmitFullDebug
	EmitLineTablesOnly
)

// EmissionKinds maps emission kinds to LLVMDWARFEmissionKind.
var EmissionKinds = NewTable("DWARFEmissionKind",
	Entry[EmissionKind]{EmitNoDebug, 0, "none"},
	Entry[EmissionKind]{EmitFullDebug, 1, "full"},
	Entry[EmissionKind]{EmitLineTablesOnly, 2, "line-tables-only"},
)

// TypeEncodings maps DWARF base type encodings to LLVMDWARFTypeEncoding.
var TypeEncodings = NewTable("DWARFTypeEncoding",
	Entry[enum.DwarfAttEncoding]{enum.DwarfAttEncodingAddress, 0x01, "address"},
	Entry[enum.DwarfAttEncoding]{enum.DwarfAttEncodingBoolean, 0x02, "boolean"},
	Entry[enum.DwarfAttEncoding]{enum.DwarfAttEncodingComplexFloat, 0x03, "complex_float"},
	Entry[enum.DwarfAttEncoding]{enum.DwarfAttEncodingFloat, 0x04, "float"},
	Entry[enum.DwarfAttEncoding]{enum.DwarfAttEncodingSigned, 0x05, "signed"},
	Entry[enum.DwarfAttEncoding]{enum.DwarfAttEncodingSignedChar, 0x06, "signed_char"},
	Entry[enum.DwarfAttEncoding]{enum.DwarfAttEncodingUnsigned, 0x07, "unsigned"},
	Entry[enum.DwarfAttEncoding]{enum.DwarfAttEncodingUnsignedChar, 0x08, "unsigned_char"},
	Entry[enum.DwarfAttEncoding]{enum.DwarfAttEncodingUTF, 0x10, "UTF"},
)

// CompositeTags maps the DWARF tags accepted for replaceable composite types
// to their DW_TAG codes.
var CompositeTags = NewTable("DWARFCompositeTag",
	Entry[enum.DwarfTag]{enum.DwarfTagArrayType, 0x01, "array_type"},
	Entry[enum.DwarfTag]{enum.DwarfTagClassType, 0x02, "class_type"},
	Entry[enum.DwarfTag]{enum.DwarfTagEnumerationType, 0x04, "enumeration_type"},
	Entry[enum.DwarfTag]{enum.DwarfTagStructureType, 0x13, "structure_type"},
	Entry[enum.DwarfTag]{enum.DwarfTagUnionType, 0x17, "union_type"},
)
