package main

import (
	"fmt"

	"github.com/llir/llvm/ir/enum"

	"github.com/emerge-lang/compiler/abi"
	"github.com/emerge-lang/compiler/config"
	"github.com/emerge-lang/compiler/llvm"
	"github.com/emerge-lang/compiler/pipeline"
)

// demoUnits returns the sample units compiled by the `demo` subcommand.
func demoUnits(cfg *config.Config) []pipeline.Unit {
	return []pipeline.Unit{
		{Name: "node", Build: func(c *llvm.Context) (*llvm.Module, error) { return buildNode(c, cfg) }},
		{Name: "parity", Build: buildParity},
		{Name: "greeting", Build: buildGreeting},
	}
}

// buildNode builds a linked list node type and a function summing a list:
//
//	struct Node { next *Node; value i32 }
//	func node_sum(n *Node) i32
//
// The debug type of Node refers to itself through a placeholder.
func buildNode(c *llvm.Context, cfg *config.Config) (*llvm.Module, error) {
	m := c.NewModule("node")
	m.SetSourceFileName("node.em")

	ptr, i32 := c.PointerType(0), c.Int32Type()
	node := c.NamedStruct("Node")
	node.SetBody([]llvm.Type{ptr, i32}, false)

	fnType := llvm.NewFunctionType(i32, []llvm.Type{ptr}, false)
	fn := m.AddFunction("node_sum", fnType)
	n := fn.Param(0)
	n.SetName("n")

	b := c.NewBuilder()
	defer b.Dispose()

	entry := fn.AppendBlock("entry")
	empty := fn.AppendBlock("empty")
	full := fn.AppendBlock("full")
	b.PositionAtEnd(entry)

	if cfg.Debug.Emission != abi.EmitNoDebug {
		dib := m.NewDIBuilder(cfg.Debug.DwarfVersion)
		defer dib.Finalize()

		file := dib.File("node.em", ".")
		cu := dib.CompileUnit(abi.LangC, file, llvm.CompileUnitOptions{
			Producer:  cfg.Debug.Producer,
			Optimized: cfg.Passes.Pipeline != "",
			Emission:  cfg.Debug.Emission,
		})

		p := dib.ReplaceableComposite(enum.DwarfTagStructureType, "Node", file, file, 1, llvm.CompositeOptions{
			SizeInBits:  128,
			AlignInBits: 64,
		})
		nodePtr := dib.PointerType(p.Type(), 64, 64, "")
		intTy := dib.BasicType("i32", 32, enum.DwarfAttEncodingSigned, abi.DIFlagZero)

		dib.ReplaceAllUses(p, dib.StructType(file, "Node", file, 1, 128, 64, abi.DIFlagZero, []llvm.DIType{
			dib.MemberType(file, "next", file, 2, 64, 64, 0, abi.DIFlagZero, nodePtr),
			dib.MemberType(file, "value", file, 3, 32, 32, 64, abi.DIFlagZero, intTy),
		}))

		subTy := dib.SubroutineType(file, []llvm.DIType{intTy, nodePtr}, abi.DIFlagZero)
		sp := dib.Function(cu, "node_sum", "node_sum", file, 5, subTy, llvm.FunctionOptions{
			Definition: true,
			ScopeLine:  5,
			Optimized:  cfg.Passes.Pipeline != "",
		})
		fn.SetSubprogram(sp)

		loc := dib.Location(5, 1, sp, nil)
		b.SetDebugLocation(loc)

		param := dib.ParameterVariable(sp, "n", 1, file, 5, nodePtr, true, abi.DIFlagZero)
		dib.InsertValueRecord(b, n, param, llvm.DIExpression{}, loc, entry)
	}

	b.BuildCondBr(b.BuildIsNull(n, "is.null"), empty, full)

	b.PositionAtEnd(empty)
	b.BuildRet(llvm.ConstInt(i32, 0, false))

	b.PositionAtEnd(full)
	next := b.BuildLoad(ptr, b.BuildStructGEP(node, n, 0, "next.ptr"), "next")
	value := b.BuildLoad(i32, b.BuildStructGEP(node, n, 1, "value.ptr"), "value")
	rest := b.BuildCall(fnType, fn, []llvm.Value{next}, "rest")
	b.BuildRet(b.BuildAdd(value, rest, "sum"))

	return m, nil
}

// buildParity builds two mutually recursive functions.  `is_even` calls
// `is_odd` before it is defined.
func buildParity(c *llvm.Context) (*llvm.Module, error) {
	m := c.NewModule("parity")

	i32 := c.Int32Type()
	fnType := llvm.NewFunctionType(i32, []llvm.Type{i32}, false)

	b := c.NewBuilder()
	defer b.Dispose()

	even := m.AddFunction("is_even", fnType)
	buildParityStep(b, even, m.Callee("is_odd", fnType), 1)

	if unresolved := m.Unresolved(); len(unresolved) != 1 {
		return nil, fmt.Errorf("expected one forward reference, got %v", unresolved)
	}

	// defining is_odd fills in the forward declaration
	odd := m.AddFunction("is_odd", fnType)
	buildParityStep(b, odd, even, 0)

	if unresolved := m.Unresolved(); len(unresolved) != 0 {
		return nil, fmt.Errorf("unresolved functions: %v", unresolved)
	}

	return m, nil
}

// buildParityStep builds `fn(n) = n == 0 ? base : other(n - 1)`.
func buildParityStep(b *llvm.Builder, fn, other llvm.Function, base uint64) {
	i32 := fn.FuncType().ReturnType().(llvm.IntegerType)
	n := fn.Param(0)

	entry := fn.AppendBlock("entry")
	done := fn.AppendBlock("done")
	step := fn.AppendBlock("step")

	b.PositionAtEnd(entry)
	isZero := b.BuildICmp(enum.IPredEQ, n, llvm.ConstInt(i32, 0, false), "is.zero")
	b.BuildCondBr(isZero, done, step)

	b.PositionAtEnd(done)
	b.BuildRet(llvm.ConstInt(i32, base, false))

	b.PositionAtEnd(step)
	dec := b.BuildSub(n, llvm.ConstInt(i32, 1, false), "dec")
	b.BuildRet(b.BuildCall(fn.FuncType(), other, []llvm.Value{dec}, "r"))
}

// buildGreeting builds a `main` printing a string constant through `puts`.
func buildGreeting(c *llvm.Context) (*llvm.Module, error) {
	m := c.NewModule("greeting")

	i32, ptr := c.Int32Type(), c.PointerType(0)
	greeting := m.AddConstantGlobal("greeting", c.ConstString("hello, world", true))
	puts := m.DeclareExternal("puts", llvm.NewFunctionType(i32, []llvm.Type{ptr}, false))

	mainFn := m.AddFunction("main", llvm.NewFunctionType(i32, nil, false))

	b := c.NewBuilder()
	defer b.Dispose()

	b.PositionAtEnd(mainFn.AppendBlock("entry"))
	b.BuildCall(puts.FuncType(), puts, []llvm.Value{greeting}, "")
	b.BuildRet(llvm.ConstInt(i32, 0, false))

	return m, nil
}
