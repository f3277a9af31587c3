package abi

import "github.com/llir/llvm/ir/enum"

// Attribute kind IDs are not stable across LLVM releases, so attributes are
// named here and resolved to kind IDs by the loaded library at runtime.

// FuncAttrNames maps function attributes to their LLVM attribute names.
var FuncAttrNames = map[enum.FuncAttr]string{
	enum.FuncAttrAlwaysInline: "alwaysinline",
	enum.FuncAttrCold:         "cold",
	enum.FuncAttrInlineHint:   "inlinehint",
	enum.FuncAttrMinSize:      "minsize",
	enum.FuncAttrNaked:        "naked",
	enum.FuncAttrNoInline:     "noinline",
	enum.FuncAttrNoReturn:     "noreturn",
	enum.FuncAttrNoUnwind:     "nounwind",
	enum.FuncAttrOptNone:      "optnone",
	enum.FuncAttrOptSize:      "optsize",
}

// ParamAttrNames maps parameter and return attributes to their LLVM attribute
// names.
var ParamAttrNames = map[enum.ParamAttr]string{
	enum.ParamAttrInReg:     "inreg",
	enum.ParamAttrNoAlias:   "noalias",
	enum.ParamAttrNoCapture: "nocapture",
	enum.ParamAttrNonNull:   "nonnull",
	enum.ParamAttrReturned:  "returned",
	enum.ParamAttrSExt:      "signext",
	enum.ParamAttrZExt:      "zeroext",
}
