package abi

import "github.com/llir/llvm/ir/enum"

// TypeKind identifies a kind of LLVM type.
type TypeKind uint8

// Enumeration of type kinds.
const (
	VoidTypeKind TypeKind = iota
	HalfTypeKind
	BFloatTypeKind
	FloatTypeKind
	DoubleTypeKind
	X86FP80TypeKind
	FP128TypeKind
	PPCFP128TypeKind
	LabelTypeKind
	IntegerTypeKind
	FunctionTypeKind
	StructTypeKind
	ArrayTypeKind
	PointerTypeKind
	VectorTypeKind
	ScalableVectorTypeKind
	MetadataTypeKind
	X86MMXTypeKind
	X86AMXTypeKind
	TokenTypeKind
	TargetExtTypeKind
)

// TypeKinds maps type kinds to LLVMTypeKind.
var TypeKinds = NewTable("TypeKind",
	Entry[TypeKind]{VoidTypeKind, 0, "void"},
	Entry[TypeKind]{HalfTypeKind, 1, "half"},
	Entry[TypeKind]{FloatTypeKind, 2, "float"},
	Entry[TypeKind]{DoubleTypeKind, 3, "double"},
	Entry[TypeKind]{X86FP80TypeKind, 4, "x86_fp80"},
	Entry[TypeKind]{FP128TypeKind, 5, "fp128"},
	Entry[TypeKind]{PPCFP128TypeKind, 6, "ppc_fp128"},
	Entry[TypeKind]{LabelTypeKind, 7, "label"},
	Entry[TypeKind]{IntegerTypeKind, 8, "integer"},
	Entry[TypeKind]{FunctionTypeKind, 9, "function"},
	Entry[TypeKind]{StructTypeKind, 10, "struct"},
	Entry[TypeKind]{ArrayTypeKind, 11, "array"},
	Entry[TypeKind]{PointerTypeKind, 12, "pointer"},
	Entry[TypeKind]{VectorTypeKind, 13, "vector"},
	Entry[TypeKind]{MetadataTypeKind, 14, "metadata"},
	Entry[TypeKind]{X86MMXTypeKind, 15, "x86_mmx"},
	Entry[TypeKind]{TokenTypeKind, 16, "token"},
	Entry[TypeKind]{ScalableVectorTypeKind, 17, "scalable_vector"},
	Entry[TypeKind]{BFloatTypeKind, 18, "bfloat"},
	Entry[TypeKind]{X86AMXTypeKind, 19, "x86_amx"},
	Entry[TypeKind]{TargetExtTypeKind, 20, "target_ext"},
)

// ValueKind identifies a kind of LLVM value.
type ValueKind uint8

// Enumeration of value kinds.
const (
	ArgumentValueKind ValueKind = iota
	BasicBlockValueKind
	MemoryUseValueKind
	MemoryDefValueKind
	MemoryPhiValueKind
	FunctionValueKind
	GlobalAliasValueKind
	GlobalIFuncValueKind
	GlobalVariableValueKind
	BlockAddressValueKind
	ConstantExprValueKind
	ConstantArrayValueKind
	ConstantStructValueKind
	ConstantVectorValueKind
	UndefValueValueKind
	ConstantAggregateZeroValueKind
	ConstantDataArrayValueKind
	ConstantDataVectorValueKind
	ConstantIntValueKind
	ConstantFPValueKind
	ConstantPointerNullValueKind
	ConstantTokenNoneValueKind
	MetadataAsValueValueKind
	InlineAsmValueKind
	InstructionValueKind
	PoisonValueValueKind
	ConstantTargetNoneValueKind
)

// ValueKinds maps value kinds to LLVMValueKind.  The codes happen to follow
// declaration order in LLVM 18 but are still listed explicitly.
var ValueKinds = NewTable("ValueKind",
	Entry[ValueKind]{ArgumentValueKind, 0, "argument"},
	Entry[ValueKind]{BasicBlockValueKind, 1, "basic_block"},
	Entry[ValueKind]{MemoryUseValueKind, 2, "memory_use"},
	Entry[ValueKind]{MemoryDefValueKind, 3, "memory_def"},
	Entry[ValueKind]{MemoryPhiValueKind, 4, "memory_phi"},
	Entry[ValueKind]{FunctionValueKind, 5, "function"},
	Entry[ValueKind]{GlobalAliasValueKind, 6, "global_alias"},
	Entry[ValueKind]{GlobalIFuncValueKind, 7, "global_ifunc"},
	Entry[ValueKind]{GlobalVariableValueKind, 8, "global_variable"},
	Entry[ValueKind]{BlockAddressValueKind, 9, "block_address"},
	Entry[ValueKind]{ConstantExprValueKind, 10, "constant_expr"},
	Entry[ValueKind]{ConstantArrayValueKind, 11, "constant_array"},
	Entry[ValueKind]{ConstantStructValueKind, 12, "constant_struct"},
	Entry[ValueKind]{ConstantVectorValueKind, 13, "constant_vector"},
	Entry[ValueKind]{UndefValueValueKind, 14, "undef"},
	Entry[ValueKind]{ConstantAggregateZeroValueKind, 15, "zeroinitializer"},
	Entry[ValueKind]{ConstantDataArrayValueKind, 16, "constant_data_array"},
	Entry[ValueKind]{ConstantDataVectorValueKind, 17, "constant_data_vector"},
	Entry[ValueKind]{ConstantIntValueKind, 18, "constant_int"},
	Entry[ValueKind]{ConstantFPValueKind, 19, "constant_fp"},
	Entry[ValueKind]{ConstantPointerNullValueKind, 20, "null"},
	Entry[ValueKind]{ConstantTokenNoneValueKind, 21, "none"},
	Entry[ValueKind]{MetadataAsValueValueKind, 22, "metadata_as_value"},
	Entry[ValueKind]{InlineAsmValueKind, 23, "inline_asm"},
	Entry[ValueKind]{InstructionValueKind, 24, "instruction"},
	Entry[ValueKind]{PoisonValueValueKind, 25, "poison"},
	Entry[ValueKind]{ConstantTargetNoneValueKind, 26, "target_none"},
)

// Opcode identifies an LLVM instruction opcode.
type Opcode uint8

// Enumeration of opcodes.
const (
	OpRet Opcode = iota + 1
	OpBr
	OpSwitch
	OpUnreachable
	OpFNeg
	OpAdd
	OpFAdd
	OpSub
	OpFSub
	OpMul
	OpFMul
	OpUDiv
	OpSDiv
	OpFDiv
	OpURem
	OpSRem
	OpFRem
	OpShl
	OpLShr
	OpAShr
	OpAnd
	OpOr
	OpXor
	OpAlloca
	OpLoad
	OpStore
	OpGetElementPtr
	OpTrunc
	OpZExt
	OpSExt
	OpFPToUI
	OpFPToSI
	OpUIToFP
	OpSIToFP
	OpFPTrunc
	OpFPExt
	OpPtrToInt
	OpIntToPtr
	OpBitCast
	OpAddrSpaceCast
	OpICmp
	OpFCmp
	OpPHI
	OpCall
	OpSelect
	OpExtractValue
	OpInsertValue
	OpFreeze
)

// Opcodes maps opcodes to LLVMOpcode.  The native numbering has holes and
// late additions out of order.
var Opcodes = NewTable("Opcode",
	Entry[Opcode]{OpRet, 1, "ret"},
	Entry[Opcode]{OpBr, 2, "br"},
	Entry[Opcode]{OpSwitch, 3, "switch"},
	Entry[Opcode]{OpUnreachable, 7, "unreachable"},
	Entry[Opcode]{OpFNeg, 66, "fneg"},
	Entry[Opcode]{OpAdd, 8, "add"},
	Entry[Opcode]{OpFAdd, 9, "fadd"},
	Entry[Opcode]{OpSub, 10, "sub"},
	Entry[Opcode]{OpFSub, 11, "fsub"},
	Entry[Opcode]{OpMul, 12, "mul"},
	Entry[Opcode]{OpFMul, 13, "fmul"},
	Entry[Opcode]{OpUDiv, 14, "udiv"},
	Entry[Opcode]{OpSDiv, 15, "sdiv"},
	Entry[Opcode]{OpFDiv, 16, "fdiv"},
	Entry[Opcode]{OpURem, 17, "urem"},
	Entry[Opcode]{OpSRem, 18, "srem"},
	Entry[Opcode]{OpFRem, 19, "frem"},
	Entry[Opcode]{OpShl, 20, "shl"},
	Entry[Opcode]{OpLShr, 21, "lshr"},
	Entry[Opcode]{OpAShr, 22, "ashr"},
	Entry[Opcode]{OpAnd, 23, "and"},
	Entry[Opcode]{OpOr, 24, "or"},
	Entry[Opcode]{OpXor, 25, "xor"},
	Entry[Opcode]{OpAlloca, 26, "alloca"},
	Entry[Opcode]{OpLoad, 27, "load"},
	Entry[Opcode]{OpStore, 28, "store"},
	Entry[Opcode]{OpGetElementPtr, 29, "getelementptr"},
	Entry[Opcode]{OpTrunc, 30, "trunc"},
	Entry[Opcode]{OpZExt, 31, "zext"},
	Entry[Opcode]{OpSExt, 32, "sext"},
	Entry[Opcode]{OpFPToUI, 33, "fptoui"},
	Entry[Opcode]{OpFPToSI, 34, "fptosi"},
	Entry[Opcode]{OpUIToFP, 35, "uitofp"},
	Entry[Opcode]{OpSIToFP, 36, "sitofp"},
	Entry[Opcode]{OpFPTrunc, 37, "fptrunc"},
	Entry[Opcode]{OpFPExt, 38, "fpext"},
	Entry[Opcode]{OpPtrToInt, 39, "ptrtoint"},
	Entry[Opcode]{OpIntToPtr, 40, "inttoptr"},
	Entry[Opcode]{OpBitCast, 41, "bitcast"},
	Entry[Opcode]{OpAddrSpaceCast, 60, "addrspacecast"},
	Entry[Opcode]{OpICmp, 42, "icmp"},
	Entry[Opcode]{OpFCmp, 43, "fcmp"},
	Entry[Opcode]{OpPHI, 44, "phi"},
	Entry[Opcode]{OpCall, 45, "call"},
	Entry[Opcode]{OpSelect, 46, "select"},
	Entry[Opcode]{OpExtractValue, 53, "extractvalue"},
	Entry[Opcode]{OpInsertValue, 54, "insertvalue"},
	Entry[Opcode]{OpFreeze, 68, "freeze"},
)

// MetadataKind identifies a kind of LLVM metadata node.
type MetadataKind uint8

// Enumeration of metadata kinds.
const (
	MDStringMetadataKind MetadataKind = iota
	ConstantAsMetadataKind
	LocalAsMetadataKind
	DistinctMDOperandPlaceholderKind
	MDTupleMetadataKind
	DILocationMetadataKind
	DIExpressionMetadataKind
	DIGlobalVariableExpressionMetadataKind
	GenericDINodeMetadataKind
	DISubrangeMetadataKind
	DIEnumeratorMetadataKind
	DIBasicTypeMetadataKind
	DIDerivedTypeMetadataKind
	DICompositeTypeMetadataKind
	DISubroutineTypeMetadataKind
	DIFileMetadataKind
	DICompileUnitMetadataKind
	DISubprogramMetadataKind
	DILexicalBlockMetadataKind
	DILexicalBlockFileMetadataKind
	DINamespaceMetadataKind
	DIModuleMetadataKind
	DITemplateTypeParameterMetadataKind
	DITemplateValueParameterMetadataKind
	DIGlobalVariableMetadataKind
	DILocalVariableMetadataKind
	DILabelMetadataKind
	DIObjCPropertyMetadataKind
	DIImportedEntityMetadataKind
	DIMacroMetadataKind
	DIMacroFileMetadataKind
	DICommonBlockMetadataKind
	DIStringTypeMetadataKind
	DIGenericSubrangeMetadataKind
	DIArgListMetadataKind
	DIAssignIDMetadataKind
)

// MetadataKinds maps metadata kinds to LLVMMetadataKind.
var MetadataKinds = NewTable("MetadataKind",
	Entry[MetadataKind]{MDStringMetadataKind, 0, "md_string"},
	Entry[MetadataKind]{ConstantAsMetadataKind, 1, "constant_as_metadata"},
	Entry[MetadataKind]{LocalAsMetadataKind, 2, "local_as_metadata"},
	Entry[MetadataKind]{DistinctMDOperandPlaceholderKind, 3, "distinct_md_operand_placeholder"},
	Entry[MetadataKind]{MDTupleMetadataKind, 4, "md_tuple"},
	Entry[MetadataKind]{DILocationMetadataKind, 5, "di_location"},
	Entry[MetadataKind]{DIExpressionMetadataKind, 6, "di_expression"},
	Entry[MetadataKind]{DIGlobalVariableExpressionMetadataKind, 7, "di_global_variable_expression"},
	Entry[MetadataKind]{GenericDINodeMetadataKind, 8, "generic_di_node"},
	Entry[MetadataKind]{DISubrangeMetadataKind, 9, "di_subrange"},
	Entry[MetadataKind]{DIEnumeratorMetadataKind, 10, "di_enumerator"},
	Entry[MetadataKind]{DIBasicTypeMetadataKind, 11, "di_basic_type"},
	Entry[MetadataKind]{DIDerivedTypeMetadataKind, 12, "di_derived_type"},
	Entry[MetadataKind]{DICompositeTypeMetadataKind, 13, "di_composite_type"},
	Entry[MetadataKind]{DISubroutineTypeMetadataKind, 14, "di_subroutine_type"},
	Entry[MetadataKind]{DIFileMetadataKind, 15, "di_file"},
	Entry[MetadataKind]{DICompileUnitMetadataKind, 16, "di_compile_unit"},
	Entry[MetadataKind]{DISubprogramMetadataKind, 17, "di_subprogram"},
	Entry[MetadataKind]{DILexicalBlockMetadataKind, 18, "di_lexical_block"},
	Entry[MetadataKind]{DILexicalBlockFileMetadataKind, 19, "di_lexical_block_file"},
	Entry[MetadataKind]{DINamespaceMetadataKind, 20, "di_namespace"},
	Entry[MetadataKind]{DIModuleMetadataKind, 21, "di_module"},
	Entry[MetadataKind]{DITemplateTypeParameterMetadataKind, 22, "di_template_type_parameter"},
	Entry[MetadataKind]{DITemplateValueParameterMetadataKind, 23, "di_template_value_parameter"},
	Entry[MetadataKind]{DIGlobalVariableMetadataKind, 24, "di_global_variable"},
	Entry[MetadataKind]{DILocalVariableMetadataKind, 25, "di_local_variable"},
	Entry[MetadataKind]{DILabelMetadataKind, 26, "di_label"},
	Entry[MetadataKind]{DIObjCPropertyMetadataKind, 27, "di_objc_property"},
	Entry[MetadataKind]{DIImportedEntityMetadataKind, 28, "di_imported_entity"},
	Entry[MetadataKind]{DIMacroMetadataKind, 29, "di_macro"},
	Entry[MetadataKind]{DIMacroFileMetadataKind, 30, "di_macro_file"},
	Entry[MetadataKind]{DICommonBlockMetadataKind, 31, "di_common_block"},
	Entry[MetadataKind]{DIStringTypeMetadataKind, 32, "di_string_type"},
	Entry[MetadataKind]{DIGenericSubrangeMetadataKind, 33, "di_generic_subrange"},
	Entry[MetadataKind]{DIArgListMetadataKind, 34, "di_arg_list"},
	Entry[MetadataKind]{DIAssignIDMetadataKind, 35, "di_assign_id"},
)

// -----------------------------------------------------------------------------

// IntPredicates maps integer comparison predicates to LLVMIntPredicate.
var IntPredicates = NewTable("IntPredicate",
	Entry[enum.IPred]{enum.IPredEQ, 32, "eq"},
	Entry[enum.IPred]{enum.IPredNE, 33, "ne"},
	Entry[enum.IPred]{enum.IPredUGT, 34, "ugt"},
	Entry[enum.IPred]{enum.IPredUGE, 35, "uge"},
	Entry[enum.IPred]{enum.IPredULT, 36, "ult"},
	Entry[enum.IPred]{enum.IPredULE, 37, "ule"},
	Entry[enum.IPred]{enum.IPredSGT, 38, "sgt"},
	Entry[enum.IPred]{enum.IPredSGE, 39, "sge"},
	Entry[enum.IPred]{enum.IPredSLT, 40, "slt"},
	Entry[enum.IPred]{enum.IPredSLE, 41, "sle"},
)

// RealPredicates maps floating point comparison predicates to
// LLVMRealPredicate.
var RealPredicates = NewTable("RealPredicate",
	Entry[enum.FPred]{enum.FPredFalse, 0, "false"},
	Entry[enum.FPred]{enum.FPredOEQ, 1, "oeq"},
	Entry[enum.FPred]{enum.FPredOGT, 2, "ogt"},
	Entry[enum.FPred]{enum.FPredOGE, 3, "oge"},
	Entry[enum.FPred]{enum.FPredOLT, 4, "olt"},
	Entry[enum.FPred]{enum.FPredOLE, 5, "ole"},
	Entry[enum.FPred]{enum.FPredONE, 6, "one"},
	Entry[enum.FPred]{enum.FPredORD, 7, "ord"},
	Entry[enum.FPred]{enum.FPredUNO, 8, "uno"},
	Entry[enum.FPred]{enum.FPredUEQ, 9, "ueq"},
	Entry[enum.FPred]{enum.FPredUGT, 10, "ugt"},
	Entry[enum.FPred]{enum.FPredUGE, 11, "uge"},
	Entry[enum.FPred]{enum.FPredULT, 12, "ult"},
	Entry[enum.FPred]{enum.FPredULE, 13, "ule"},
	Entry[enum.FPred]{enum.FPredUNE, 14, "une"},
	Entry[enum.FPred]{enum.FPredTrue, 15, "true"},
)

// Linkages maps linkage kinds to LLVMLinkage.  Codes 4, 10, 11, 13, 15 and 16
// are obsolete in LLVM 18 and deliberately absent.
var Linkages = NewTable("Linkage",
	Entry[enum.Linkage]{enum.LinkageExternal, 0, "external"},
	Entry[enum.Linkage]{enum.LinkageAvailableExternally, 1, "available_externally"},
	Entry[enum.Linkage]{enum.LinkageLinkOnce, 2, "linkonce"},
	Entry[enum.Linkage]{enum.LinkageLinkOnceODR, 3, "linkonce_odr"},
	Entry[enum.Linkage]{enum.LinkageWeak, 5, "weak"},
	Entry[enum.Linkage]{enum.LinkageWeakODR, 6, "weak_odr"},
	Entry[enum.Linkage]{enum.LinkageAppending, 7, "appending"},
	Entry[enum.Linkage]{enum.LinkageInternal, 8, "internal"},
	Entry[enum.Linkage]{enum.LinkagePrivate, 9, "private"},
	Entry[enum.Linkage]{enum.LinkageExternWeak, 12, "extern_weak"},
	Entry[enum.Linkage]{enum.LinkageCommon, 14, "common"},
)

// CallConvs maps calling conventions to LLVMCallConv.
var CallConvs = NewTable("CallConv",
	Entry[enum.CallingConv]{enum.CallingConvC, 0, "ccc"},
	Entry[enum.CallingConv]{enum.CallingConvFast, 8, "fastcc"},
	Entry[enum.CallingConv]{enum.CallingConvCold, 9, "coldcc"},
	Entry[enum.CallingConv]{enum.CallingConvX86StdCall, 64, "x86_stdcallcc"},
	Entry[enum.CallingConv]{enum.CallingConvX86ThisCall, 70, "x86_thiscallcc"},
	Entry[enum.CallingConv]{enum.CallingConvWin64, 79, "win64cc"},
)

// -----------------------------------------------------------------------------

// CodeModel is a target code model.
type CodeModel uint8

// Enumeration of code models.  The native numbering puts the two defaults
// first, the Go numbering does not.
const (
	CodeModelTiny CodeModel = iota
	CodeModelSmall
	CodeModelKernel
	CodeModelMedium
	CodeModelLarge
	CodeModelDefault
	CodeModelJITDefault
)

// CodeModels maps code models to LLVMCodeModel.
var CodeModels = NewTable("CodeModel",
	Entry[CodeModel]{CodeModelDefault, 0, "default"},
	Entry[CodeModel]{CodeModelJITDefault, 1, "jit-default"},
	Entry[CodeModel]{CodeModelTiny, 2, "tiny"},
	Entry[CodeModel]{CodeModelSmall, 3, "small"},
	Entry[CodeModel]{CodeModelKernel, 4, "kernel"},
	Entry[CodeModel]{CodeModelMedium, 5, "medium"},
	Entry[CodeModel]{CodeModelLarge, 6, "large"},
)

// RelocMode is a relocation model.
type RelocMode uint8

// Enumeration of relocation models.
const (
	RelocDefault RelocMode = iota
	RelocStatic
	RelocPIC
	RelocDynamicNoPIC
	RelocROPI
	RelocRWPI
	RelocROPIRWPI
)

// RelocModes maps relocation models to LLVMRelocMode.
var RelocModes = NewTable("RelocMode",
	Entry[RelocMode]{RelocDefault, 0, "default"},
	Entry[RelocMode]{RelocStatic, 1, "static"},
	Entry[RelocMode]{RelocPIC, 2, "pic"},
	Entry[RelocMode]{RelocDynamicNoPIC, 3, "dynamic-no-pic"},
	Entry[RelocMode]{RelocROPI, 4, "ropi"},
	Entry[RelocMode]{RelocRWPI, 5, "rwpi"},
	Entry[RelocMode]{RelocROPIRWPI, 6, "ropi-rwpi"},
)

// OptLevel is a code generation optimization level.
type OptLevel uint8

// Enumeration of optimization levels.
const (
	OptNone OptLevel = iota
	OptLess
	OptDefault
	OptAggressive
)

// OptLevels maps optimization levels to LLVMCodeGenOptLevel.
var OptLevels = NewTable("CodeGenOptLevel",
	Entry[OptLevel]{OptNone, 0, "none"},
	Entry[OptLevel]{OptLess, 1, "less"},
	Entry[OptLevel]{OptDefault, 2, "default"},
	Entry[OptLevel]{OptAggressive, 3, "aggressive"},
)

// FileType is the kind of file produced by the code generator.
type FileType uint8

// Enumeration of output file types.
const (
	ObjectFile FileType = iota
	AssemblyFile
)

// FileTypes maps output file types to LLVMCodeGenFileType.
var FileTypes = NewTable("CodeGenFileType",
	Entry[FileType]{AssemblyFile, 0, "asm"},
	Entry[FileType]{ObjectFile, 1, "obj"},
)

// VerifierFailureAction is what the module verifier does on failure.
type VerifierFailureAction uint8

// Enumeration of verifier failure actions.
const (
	ReturnStatusAction VerifierFailureAction = iota
	PrintMessageAction
	AbortProcessAction
)

// VerifierFailureActions maps verifier actions to LLVMVerifierFailureAction.
var VerifierFailureActions = NewTable("VerifierFailureAction",
	Entry[VerifierFailureAction]{AbortProcessAction, 0, "abort"},
	Entry[VerifierFailureAction]{PrintMessageAction, 1, "print"},
	Entry[VerifierFailureAction]{ReturnStatusAction, 2, "return"},
)

// ThreadLocalMode is the thread local storage model of a global.
type ThreadLocalMode uint8

// Enumeration of thread local modes.
const (
	NotThreadLocal ThreadLocalMode = iota
	GeneralDynamicTLS
	LocalDynamicTLS
	InitialExecTLS
	LocalExecTLS
)

// ThreadLocalModes maps thread local modes to LLVMThreadLocalMode.
var ThreadLocalModes = NewTable("ThreadLocalMode",
	Entry[ThreadLocalMode]{NotThreadLocal, 0, "none"},
	Entry[ThreadLocalMode]{GeneralDynamicTLS, 1, "generaldynamic"},
	Entry[ThreadLocalMode]{LocalDynamicTLS, 2, "localdynamic"},
	Entry[ThreadLocalMode]{InitialExecTLS, 3, "initialexec"},
	Entry[ThreadLocalMode]{LocalExecTLS, 4, "localexec"},
)

// UnnamedAddr states whether the address of a global is significant.
type UnnamedAddr uint8

// Enumeration of unnamed address kinds.
const (
	NoUnnamedAddr UnnamedAddr = iota
	LocalUnnamedAddr
	GlobalUnnamedAddr
)

// UnnamedAddrs maps unnamed address kinds to LLVMUnnamedAddr.
var UnnamedAddrs = NewTable("UnnamedAddr",
	Entry[UnnamedAddr]{NoUnnamedAddr, 0, "none"},
	Entry[UnnamedAddr]{LocalUnnamedAddr, 1, "local_unnamed_addr"},
	Entry[UnnamedAddr]{GlobalUnnamedAddr, 2, "unnamed_addr"},
)

// ModuleFlagBehavior is the merge behavior of a module flag.
type ModuleFlagBehavior uint8

// Enumeration of module flag behaviors.
const (
	FlagError ModuleFlagBehavior = iota
	FlagWarning
	FlagRequire
	FlagOverride
	FlagAppend
	FlagAppendUnique
)

// ModuleFlagBehaviors maps module flag behaviors to LLVMModuleFlagBehavior.
var ModuleFlagBehaviors = NewTable("ModuleFlagBehavior",
	Entry[ModuleFlagBehavior]{FlagError, 0, "error"},
	Entry[ModuleFlagBehavior]{FlagWarning, 1, "warning"},
	Entry[ModuleFlagBehavior]{FlagRequire, 2, "require"},
	Entry[ModuleFlagBehavior]{FlagOverride, 3, "override"},
	Entry[ModuleFlagBehavior]{FlagAppend, 4, "append"},
	Entry[ModuleFlagBehavior]{FlagAppendUnique, 5, "append-unique"},
)
