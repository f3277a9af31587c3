package llvm

/*
#include "llvm-c/Core.h"
#include "llvm-c/Analysis.h"
#include "llvm-c/DebugInfo.h"
#include "llvm-c/TargetMachine.h"
*/
import "C"

import (
	"errors"
	"fmt"
	"sort"

	"github.com/llir/llvm/ir/enum"

	"github.com/emerge-lang/compiler/abi"
	"github.com/emerge-lang/compiler/errs"
)

// CheckABI compares every enum table of package abi with the constants of the
// LLVM-C headers the package was compiled against.  The DWARF type encodings
// and composite tags have no C constants and are not checked.
func CheckABI() error {
	return errors.Join(
		checkTable(abi.TypeKinds, map[abi.TypeKind]int32{
			abi.VoidTypeKind:           C.LLVMVoidTypeKind,
			abi.HalfTypeKind:           C.LLVMHalfTypeKind,
			abi.BFloatTypeKind:         C.LLVMBFloatTypeKind,
			abi.FloatTypeKind:          C.LLVMFloatTypeKind,
			abi.DoubleTypeKind:         C.LLVMDoubleTypeKind,
			abi.X86FP80TypeKind:        C.LLVMX86_FP80TypeKind,
			abi.FP128TypeKind:          C.LLVMFP128TypeKind,
			abi.PPCFP128TypeKind:       C.LLVMPPC_FP128TypeKind,
			abi.LabelTypeKind:          C.LLVMLabelTypeKind,
			abi.IntegerTypeKind:        C.LLVMIntegerTypeKind,
			abi.FunctionTypeKind:       C.LLVMFunctionTypeKind,
			abi.StructTypeKind:         C.LLVMStructTypeKind,
			abi.ArrayTypeKind:          C.LLVMArrayTypeKind,
			abi.PointerTypeKind:        C.LLVMPointerTypeKind,
			abi.VectorTypeKind:         C.LLVMVectorTypeKind,
			abi.ScalableVectorTypeKind: C.LLVMScalableVectorTypeKind,
			abi.MetadataTypeKind:       C.LLVMMetadataTypeKind,
			abi.X86MMXTypeKind:         C.LLVMX86_MMXTypeKind,
			abi.X86AMXTypeKind:         C.LLVMX86_AMXTypeKind,
			abi.TokenTypeKind:          C.LLVMTokenTypeKind,
			abi.TargetExtTypeKind:      C.LLVMTargetExtTypeKind,
		}),
		checkTable(abi.ValueKinds, map[abi.ValueKind]int32{
			abi.ArgumentValueKind:              C.LLVMArgumentValueKind,
			abi.BasicBlockValueKind:            C.LLVMBasicBlockValueKind,
			abi.MemoryUseValueKind:             C.LLVMMemoryUseValueKind,
			abi.MemoryDefValueKind:             C.LLVMMemoryDefValueKind,
			abi.MemoryPhiValueKind:             C.LLVMMemoryPhiValueKind,
			abi.FunctionValueKind:              C.LLVMFunctionValueKind,
			abi.GlobalAliasValueKind:           C.LLVMGlobalAliasValueKind,
			abi.GlobalIFuncValueKind:           C.LLVMGlobalIFuncValueKind,
			abi.GlobalVariableValueKind:        C.LLVMGlobalVariableValueKind,
			abi.BlockAddressValueKind:          C.LLVMBlockAddressValueKind,
			abi.ConstantExprValueKind:          C.LLVMConstantExprValueKind,
			abi.ConstantArrayValueKind:         C.LLVMConstantArrayValueKind,
			abi.ConstantStructValueKind:        C.LLVMConstantStructValueKind,
			abi.ConstantVectorValueKind:        C.LLVMConstantVectorValueKind,
			abi.UndefValueValueKind:            C.LLVMUndefValueValueKind,
			abi.ConstantAggregateZeroValueKind: C.LLVMConstantAggregateZeroValueKind,
			abi.ConstantDataArrayValueKind:     C.LLVMConstantDataArrayValueKind,
			abi.ConstantDataVectorValueKind:    C.LLVMConstantDataVectorValueKind,
			abi.ConstantIntValueKind:           C.LLVMConstantIntValueKind,
			abi.ConstantFPValueKind:            C.LLVMConstantFPValueKind,
			abi.ConstantPointerNullValueKind:   C.LLVMConstantPointerNullValueKind,
			abi.ConstantTokenNoneValueKind:     C.LLVMConstantTokenNoneValueKind,
			abi.MetadataAsValueValueKind:       C.LLVMMetadataAsValueValueKind,
			abi.InlineAsmValueKind:             C.LLVMInlineAsmValueKind,
			abi.InstructionValueKind:           C.LLVMInstructionValueKind,
			abi.PoisonValueValueKind:           C.LLVMPoisonValueValueKind,
			abi.ConstantTargetNoneValueKind:    C.LLVMConstantTargetNoneValueKind,
		}),
		checkTable(abi.Opcodes, map[abi.Opcode]int32{
			abi.OpRet:           C.LLVMRet,
			abi.OpBr:            C.LLVMBr,
			abi.OpSwitch:        C.LLVMSwitch,
			abi.OpUnreachable:   C.LLVMUnreachable,
			abi.OpFNeg:          C.LLVMFNeg,
			abi.OpAdd:           C.LLVMAdd,
			abi.OpFAdd:          C.LLVMFAdd,
			abi.OpSub:           C.LLVMSub,
			abi.OpFSub:          C.LLVMFSub,
			abi.OpMul:           C.LLVMMul,
			abi.OpFMul:          C.LLVMFMul,
			abi.OpUDiv:          C.LLVMUDiv,
			abi.OpSDiv:          C.LLVMSDiv,
			abi.OpFDiv:          C.LLVMFDiv,
			abi.OpURem:          C.LLVMURem,
			abi.OpSRem:          C.LLVMSRem,
			abi.OpFRem:          C.LLVMFRem,
			abi.OpShl:           C.LLVMShl,
			abi.OpLShr:          C.LLVMLShr,
			abi.OpAShr:          C.LLVMAShr,
			abi.OpAnd:           C.LLVMAnd,
			abi.OpOr:            C.LLVMOr,
			abi.OpXor:           C.LLVMXor,
			abi.OpAlloca:        C.LLVMAlloca,
			abi.OpLoad:          C.LLVMLoad,
			abi.OpStore:         C.LLVMStore,
			abi.OpGetElementPtr: C.LLVMGetElementPtr,
			abi.OpTrunc:         C.LLVMTrunc,
			abi.OpZExt:          C.LLVMZExt,
			abi.OpSExt:          C.LLVMSExt,
			abi.OpFPToUI:        C.LLVMFPToUI,
			abi.OpFPToSI:        C.LLVMFPToSI,
			abi.OpUIToFP:        C.LLVMUIToFP,
			abi.OpSIToFP:        C.LLVMSIToFP,
			abi.OpFPTrunc:       C.LLVMFPTrunc,
			abi.OpFPExt:         C.LLVMFPExt,
			abi.OpPtrToInt:      C.LLVMPtrToInt,
			abi.OpIntToPtr:      C.LLVMIntToPtr,
			abi.OpBitCast:       C.LLVMBitCast,
			abi.OpAddrSpaceCast: C.LLVMAddrSpaceCast,
			abi.OpICmp:          C.LLVMICmp,
			abi.OpFCmp:          C.LLVMFCmp,
			abi.OpPHI:           C.LLVMPHI,
			abi.OpCall:          C.LLVMCall,
			abi.OpSelect:        C.LLVMSelect,
			abi.OpExtractValue:  C.LLVMExtractValue,
			abi.OpInsertValue:   C.LLVMInsertValue,
			abi.OpFreeze:        C.LLVMFreeze,
		}),
		checkTable(abi.MetadataKinds, map[abi.MetadataKind]int32{
			abi.MDStringMetadataKind:                   C.LLVMMDStringMetadataKind,
			abi.ConstantAsMetadataKind:                 C.LLVMConstantAsMetadataMetadataKind,
			abi.LocalAsMetadataKind:                    C.LLVMLocalAsMetadataMetadataKind,
			abi.DistinctMDOperandPlaceholderKind:       C.LLVMDistinctMDOperandPlaceholderMetadataKind,
			abi.MDTupleMetadataKind:                    C.LLVMMDTupleMetadataKind,
			abi.DILocationMetadataKind:                 C.LLVMDILocationMetadataKind,
			abi.DIExpressionMetadataKind:               C.LLVMDIExpressionMetadataKind,
			abi.DIGlobalVariableExpressionMetadataKind: C.LLVMDIGlobalVariableExpressionMetadataKind,
			abi.GenericDINodeMetadataKind:              C.LLVMGenericDINodeMetadataKind,
			abi.DISubrangeMetadataKind:                 C.LLVMDISubrangeMetadataKind,
			abi.DIEnumeratorMetadataKind:               C.LLVMDIEnumeratorMetadataKind,
			abi.DIBasicTypeMetadataKind:                C.LLVMDIBasicTypeMetadataKind,
			abi.DIDerivedTypeMetadataKind:              C.LLVMDIDerivedTypeMetadataKind,
			abi.DICompositeTypeMetadataKind:            C.LLVMDICompositeTypeMetadataKind,
			abi.DISubroutineTypeMetadataKind:           C.LLVMDISubroutineTypeMetadataKind,
			abi.DIFileMetadataKind:                     C.LLVMDIFileMetadataKind,
			abi.DICompileUnitMetadataKind:              C.LLVMDICompileUnitMetadataKind,
			abi.DISubprogramMetadataKind:               C.LLVMDISubprogramMetadataKind,
			abi.DILexicalBlockMetadataKind:             C.LLVMDILexicalBlockMetadataKind,
			abi.DILexicalBlockFileMetadataKind:         C.LLVMDILexicalBlockFileMetadataKind,
			abi.DINamespaceMetadataKind:                C.LLVMDINamespaceMetadataKind,
			abi.DIModuleMetadataKind:                   C.LLVMDIModuleMetadataKind,
			abi.DITemplateTypeParameterMetadataKind:    C.LLVMDITemplateTypeParameterMetadataKind,
			abi.DITemplateValueParameterMetadataKind:   C.LLVMDITemplateValueParameterMetadataKind,
			abi.DIGlobalVariableMetadataKind:           C.LLVMDIGlobalVariableMetadataKind,
			abi.DILocalVariableMetadataKind:            C.LLVMDILocalVariableMetadataKind,
			abi.DILabelMetadataKind:                    C.LLVMDILabelMetadataKind,
			abi.DIObjCPropertyMetadataKind:             C.LLVMDIObjCPropertyMetadataKind,
			abi.DIImportedEntityMetadataKind:           C.LLVMDIImportedEntityMetadataKind,
			abi.DIMacroMetadataKind:                    C.LLVMDIMacroMetadataKind,
			abi.DIMacroFileMetadataKind:                C.LLVMDIMacroFileMetadataKind,
			abi.DICommonBlockMetadataKind:              C.LLVMDICommonBlockMetadataKind,
			abi.DIStringTypeMetadataKind:               C.LLVMDIStringTypeMetadataKind,
			abi.DIGenericSubrangeMetadataKind:          C.LLVMDIGenericSubrangeMetadataKind,
			abi.DIArgListMetadataKind:                  C.LLVMDIArgListMetadataKind,
			abi.DIAssignIDMetadataKind:                 C.LLVMDIAssignIDMetadataKind,
		}),
		checkTable(abi.IntPredicates, map[enum.IPred]int32{
			enum.IPredEQ:  C.LLVMIntEQ,
			enum.IPredNE:  C.LLVMIntNE,
			enum.IPredUGT: C.LLVMIntUGT,
			enum.IPredUGE: C.LLVMIntUGE,
			enum.IPredULT: C.LLVMIntULT,
			enum.IPredULE: C.LLVMIntULE,
			enum.IPredSGT: C.LLVMIntSGT,
			enum.IPredSGE: C.LLVMIntSGE,
			enum.IPredSLT: C.LLVMIntSLT,
			enum.IPredSLE: C.LLVMIntSLE,
		}),
		checkTable(abi.RealPredicates, map[enum.FPred]int32{
			enum.FPredFalse: C.LLVMRealPredicateFalse,
			enum.FPredOEQ:   C.LLVMRealOEQ,
			enum.FPredOGT:   C.LLVMRealOGT,
			enum.FPredOGE:   C.LLVMRealOGE,
			enum.FPredOLT:   C.LLVMRealOLT,
			enum.FPredOLE:   C.LLVMRealOLE,
			enum.FPredONE:   C.LLVMRealONE,
			enum.FPredORD:   C.LLVMRealORD,
			enum.FPredUNO:   C.LLVMRealUNO,
			enum.FPredUEQ:   C.LLVMRealUEQ,
			enum.FPredUGT:   C.LLVMRealUGT,
			enum.FPredUGE:   C.LLVMRealUGE,
			enum.FPredULT:   C.LLVMRealULT,
			enum.FPredULE:   C.LLVMRealULE,
			enum.FPredUNE:   C.LLVMRealUNE,
			enum.FPredTrue:  C.LLVMRealPredicateTrue,
		}),
		checkTable(abi.Linkages, map[enum.Linkage]int32{
			enum.LinkageExternal:            C.LLVMExternalLinkage,
			enum.LinkageAvailableExternally: C.LLVMAvailableExternallyLinkage,
			enum.LinkageLinkOnce:            C.LLVMLinkOnceAnyLinkage,
			enum.LinkageLinkOnceODR:         C.LLVMLinkOnceODRLinkage,
			enum.LinkageWeak:                C.LLVMWeakAnyLinkage,
			enum.LinkageWeakODR:             C.LLVMWeakODRLinkage,
			enum.LinkageAppending:           C.LLVMAppendingLinkage,
			enum.LinkageInternal:            C.LLVMInternalLinkage,
			enum.LinkagePrivate:             C.LLVMPrivateLinkage,
			enum.LinkageExternWeak:          C.LLVMExternalWeakLinkage,
			enum.LinkageCommon:              C.LLVMCommonLinkage,
		}),
		checkTable(abi.CallConvs, map[enum.CallingConv]int32{
			enum.CallingConvC:           C.LLVMCCallConv,
			enum.CallingConvFast:        C.LLVMFastCallConv,
			enum.CallingConvCold:        C.LLVMColdCallConv,
			enum.CallingConvX86StdCall:  C.LLVMX86StdcallCallConv,
			enum.CallingConvX86ThisCall: C.LLVMX86ThisCallCallConv,
			enum.CallingConvWin64:       C.LLVMWin64CallConv,
		}),
		checkTable(abi.CodeModels, map[abi.CodeModel]int32{
			abi.CodeModelDefault:    C.LLVMCodeModelDefault,
			abi.CodeModelJITDefault: C.LLVMCodeModelJITDefault,
			abi.CodeModelTiny:       C.LLVMCodeModelTiny,
			abi.CodeModelSmall:      C.LLVMCodeModelSmall,
			abi.CodeModelKernel:     C.LLVMCodeModelKernel,
			abi.CodeModelMedium:     C.LLVMCodeModelMedium,
			abi.CodeModelLarge:      C.LLVMCodeModelLarge,
		}),
		checkTable(abi.RelocModes, map[abi.RelocMode]int32{
			abi.RelocDefault:      C.LLVMRelocDefault,
			abi.RelocStatic:       C.LLVMRelocStatic,
			abi.RelocPIC:          C.LLVMRelocPIC,
			abi.RelocDynamicNoPIC: C.LLVMRelocDynamicNoPic,
			abi.RelocROPI:         C.LLVMRelocROPI,
			abi.RelocRWPI:         C.LLVMRelocRWPI,
			abi.RelocROPIRWPI:     C.LLVMRelocROPI_RWPI,
		}),
		checkTable(abi.OptLevels, map[abi.OptLevel]int32{
			abi.OptNone:       C.LLVMCodeGenLevelNone,
			abi.OptLess:       C.LLVMCodeGenLevelLess,
			abi.OptDefault:    C.LLVMCodeGenLevelDefault,
			abi.OptAggressive: C.LLVMCodeGenLevelAggressive,
		}),
		checkTable(abi.FileTypes, map[abi.FileType]int32{
			abi.AssemblyFile: C.LLVMAssemblyFile,
			abi.ObjectFile:   C.LLVMObjectFile,
		}),
		checkTable(abi.VerifierFailureActions, map[abi.VerifierFailureAction]int32{
			abi.AbortProcessAction: C.LLVMAbortProcessAction,
			abi.PrintMessageAction: C.LLVMPrintMessageAction,
			abi.ReturnStatusAction: C.LLVMReturnStatusAction,
		}),
		checkTable(abi.ThreadLocalModes, map[abi.ThreadLocalMode]int32{
			abi.NotThreadLocal:    C.LLVMNotThreadLocal,
			abi.GeneralDynamicTLS: C.LLVMGeneralDynamicTLSModel,
			abi.LocalDynamicTLS:   C.LLVMLocalDynamicTLSModel,
			abi.InitialExecTLS:    C.LLVMInitialExecTLSModel,
			abi.LocalExecTLS:      C.LLVMLocalExecTLSModel,
		}),
		checkTable(abi.UnnamedAddrs, map[abi.UnnamedAddr]int32{
			abi.NoUnnamedAddr:     C.LLVMNoUnnamedAddr,
			abi.LocalUnnamedAddr:  C.LLVMLocalUnnamedAddr,
			abi.GlobalUnnamedAddr: C.LLVMGlobalUnnamedAddr,
		}),
		checkTable(abi.ModuleFlagBehaviors, map[abi.ModuleFlagBehavior]int32{
			abi.FlagError:        C.LLVMModuleFlagBehaviorError,
			abi.FlagWarning:      C.LLVMModuleFlagBehaviorWarning,
			abi.FlagRequire:      C.LLVMModuleFlagBehaviorRequire,
			abi.FlagOverride:     C.LLVMModuleFlagBehaviorOverride,
			abi.FlagAppend:       C.LLVMModuleFlagBehaviorAppend,
			abi.FlagAppendUnique: C.LLVMModuleFlagBehaviorAppendUnique,
		}),
		checkTable(abi.SourceLanguages, map[abi.SourceLanguage]int32{
			abi.LangC89:         C.LLVMDWARFSourceLanguageC89,
			abi.LangC:           C.LLVMDWARFSourceLanguageC,
			abi.LangC99:         C.LLVMDWARFSourceLanguageC99,
			abi.LangC11:         C.LLVMDWARFSourceLanguageC11,
			abi.LangCPlusPlus:   C.LLVMDWARFSourceLanguageC_plus_plus,
			abi.LangCPlusPlus11: C.LLVMDWARFSourceLanguageC_plus_plus_11,
			abi.LangCPlusPlus14: C.LLVMDWARFSourceLanguageC_plus_plus_14,
			abi.LangJava:        C.LLVMDWARFSourceLanguageJava,
			abi.LangD:           C.LLVMDWARFSourceLanguageD,
			abi.LangGo:          C.LLVMDWARFSourceLanguageGo,
			abi.LangRust:        C.LLVMDWARFSourceLanguageRust,
			abi.LangSwift:       C.LLVMDWARFSourceLanguageSwift,
			abi.LangJulia:       C.LLVMDWARFSourceLanguageJulia,
		}),
		checkTable(abi.EmissionKinds, map[abi.EmissionKind]int32{
			abi.EmitNoDebug:        C.LLVMDWARFEmissionNone,
			abi.EmitFullDebug:      C.LLVMDWARFEmissionFull,
			abi.EmitLineTablesOnly: C.LLVMDWARFEmissionLineTablesOnly,
		}),
		checkDIFlags(),
	)
}

// checkTable reports every member of tab whose code differs from the native
// constant, and every member with no native constant at all.
func checkTable[T comparable](tab *abi.Table[T], native map[T]int32) error {
	var problems []error
	for _, e := range tab.Members() {
		code, ok := native[e.Value]
		if !ok {
			problems = append(problems, fmt.Errorf("%s `%s` has no native constant", tab.Enum(), e.Name))
		} else if code != e.Code {
			problems = append(problems, &errs.VersionMismatchError{
				Want: fmt.Sprintf("%s `%s` = %d", tab.Enum(), e.Name, e.Code),
				Got:  fmt.Sprint(code),
			})
		}
	}

	return errors.Join(problems...)
}

func checkDIFlags() error {
	native := map[abi.DIFlags]int32{
		abi.DIFlagPrivate:             C.LLVMDIFlagPrivate,
		abi.DIFlagProtected:           C.LLVMDIFlagProtected,
		abi.DIFlagPublic:              C.LLVMDIFlagPublic,
		abi.DIFlagFwdDecl:             C.LLVMDIFlagFwdDecl,
		abi.DIFlagAppleBlock:          C.LLVMDIFlagAppleBlock,
		abi.DIFlagReservedBit4:        C.LLVMDIFlagReservedBit4,
		abi.DIFlagVirtual:             C.LLVMDIFlagVirtual,
		abi.DIFlagArtificial:          C.LLVMDIFlagArtificial,
		abi.DIFlagExplicit:            C.LLVMDIFlagExplicit,
		abi.DIFlagPrototyped:          C.LLVMDIFlagPrototyped,
		abi.DIFlagObjcClassComplete:   C.LLVMDIFlagObjcClassComplete,
		abi.DIFlagObjectPointer:       C.LLVMDIFlagObjectPointer,
		abi.DIFlagVector:              C.LLVMDIFlagVector,
		abi.DIFlagStaticMember:        C.LLVMDIFlagStaticMember,
		abi.DIFlagLValueReference:     C.LLVMDIFlagLValueReference,
		abi.DIFlagRValueReference:     C.LLVMDIFlagRValueReference,
		abi.DIFlagReserved:            C.LLVMDIFlagReserved,
		abi.DIFlagSingleInheritance:   C.LLVMDIFlagSingleInheritance,
		abi.DIFlagMultipleInheritance: C.LLVMDIFlagMultipleInheritance,
		abi.DIFlagVirtualInheritance:  C.LLVMDIFlagVirtualInheritance,
		abi.DIFlagIntroducedVirtual:   C.LLVMDIFlagIntroducedVirtual,
		abi.DIFlagBitField:            C.LLVMDIFlagBitField,
		abi.DIFlagNoReturn:            C.LLVMDIFlagNoReturn,
		abi.DIFlagTypePassByValue:     C.LLVMDIFlagTypePassByValue,
		abi.DIFlagTypePassByReference: C.LLVMDIFlagTypePassByReference,
		abi.DIFlagEnumClass:           C.LLVMDIFlagEnumClass,
		abi.DIFlagThunk:               C.LLVMDIFlagThunk,
		abi.DIFlagNonTrivial:          C.LLVMDIFlagNonTrivial,
		abi.DIFlagBigEndian:           C.LLVMDIFlagBigEndian,
		abi.DIFlagLittleEndian:        C.LLVMDIFlagLittleEndian,
		abi.DIFlagIndirectVirtualBase: C.LLVMDIFlagIndirectVirtualBase,
	}

	flags := make([]abi.DIFlags, 0, len(abi.DIFlagNames))
	for f := range abi.DIFlagNames {
		flags = append(flags, f)
	}
	sort.Slice(flags, func(i, j int) bool { return flags[i] < flags[j] })

	var problems []error
	for _, f := range flags {
		name := abi.DIFlagNames[f]

		code, ok := native[f]
		if !ok {
			problems = append(problems, fmt.Errorf("DIFlag `%s` has no native constant", name))
		} else if code != abi.EncodeFlags(f) {
			problems = append(problems, &errs.VersionMismatchError{
				Want: fmt.Sprintf("DIFlag `%s` = %d", name, abi.EncodeFlags(f)),
				Got:  fmt.Sprint(code),
			})
		}
	}

	return errors.Join(problems...)
}
