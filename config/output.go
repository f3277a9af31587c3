package config

import "github.com/emerge-lang/compiler/abi"

// OutputKind is a kind of artifact the backend can write.
type OutputKind uint8

// Enumeration of output kinds.
const (
	OutputIR OutputKind = iota
	OutputBitcode
	OutputAssembly
	OutputObject
)

// OutputKinds maps output kinds to their names in the config file.  The codes
// are only used for ordering.
var OutputKinds = abi.NewTable("OutputKind",
	abi.Entry[OutputKind]{OutputIR, 0, "ir"},
	abi.Entry[OutputKind]{OutputBitcode, 1, "bc"},
	abi.Entry[OutputKind]{OutputAssembly, 2, "asm"},
	abi.Entry[OutputKind]{OutputObject, 3, "obj"},
)

var outputExts = map[OutputKind]string{
	OutputIR:       ".ll",
	OutputBitcode:  ".bc",
	OutputAssembly: ".s",
	OutputObject:   ".o",
}

// Ext returns the file extension of the output kind, dot included.
func (k OutputKind) Ext() string {
	return outputExts[k]
}

func (k OutputKind) String() string {
	name, _ := OutputKinds.NameOf(k)
	return name
}
