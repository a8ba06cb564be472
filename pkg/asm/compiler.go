// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package asm compiles the verification DSL down to a flat program for the
// recursion register machine.  Compilation is a single depth-first pass over
// the operation sequence: straight-line operations append instructions to the
// current basic block, whilst structured control flow (if/else, loops)
// spawns child blocks linked by explicit branches.  A final assembly step
// resolves block labels into absolute instruction addresses.
//
// Compilation has no recoverable failure mode.  An unsupported operation or
// malformed operand aborts immediately, since a silently mistranslated
// verification circuit would be a soundness hole; a label that cannot be
// resolved at assembly time likewise aborts, indicating a defect in the
// compiler itself.
package asm

import (
	"fmt"

	"github.com/ClementWalter/sp1/pkg/ir"
	"github.com/ClementWalter/sp1/pkg/util/field/babybear"
)

// Compiler holds the block arena and label state of one compilation.  A
// program begins as a single empty block; exactly one block (the most
// recently appended) is current at any point.
type Compiler struct {
	blocks []BasicBlock
	// breakLabel is the break label of the innermost active loop, or -1
	// outside any loop.
	breakLabel int
	// breakCounter allocates fresh break labels.
	breakCounter uint
	// containsBreak records the blocks holding a break instruction which has
	// yet to be rewritten into a jump.
	containsBreak map[uint]struct{}
	// functionLabels maps entry point names to block labels.
	functionLabels map[string]uint
}

// NewCompiler constructs a compiler holding a single empty block.
func NewCompiler() *Compiler {
	return &Compiler{
		blocks:         []BasicBlock{{}},
		breakLabel:     -1,
		containsBreak:  make(map[uint]struct{}),
		functionLabels: make(map[string]uint),
	}
}

// Build compiles a sequence of operations into the block arena.  When
// starting from the entry block, the heap pointer is first initialised to
// the cell just past the stack frame.
func (p *Compiler) Build(ops []ir.Op) {
	if p.blockLabel() == 0 {
		p.push(Instruction{Opcode: ImmF, A: HeapPtr, Imm: babybear.NewElement(StackSize + 4)})
	}
	//
	for _, op := range ops {
		p.compile(op)
	}
}

// Function opens a fresh block and records it as a named entry point.
func (p *Compiler) Function(name string) {
	if _, ok := p.functionLabels[name]; ok {
		panic(fmt.Sprintf("duplicate function %s", name))
	}
	//
	p.basicBlock()
	p.functionLabels[name] = p.blockLabel()
}

// Code freezes the block arena and label table into an assembly artifact.
func (p *Compiler) Code() AssemblyCode {
	labels := make(map[uint]string, len(p.functionLabels))
	//
	for name, label := range p.functionLabels {
		labels[label] = name
	}
	//
	return NewAssemblyCode(p.blocks, labels)
}

// Compile assembles the compiled blocks into the final program artifact.
func (p *Compiler) Compile() *Program {
	code := p.Code()
	return code.Machine()
}

//nolint:gocyclo
func (p *Compiler) compile(op ir.Op) {
	switch op := op.(type) {
	// Immediates
	case ir.ImmVar:
		p.push(Instruction{Opcode: ImmF, A: FpVar(op.Dst), Imm: op.Value})
	case ir.ImmFelt:
		p.push(Instruction{Opcode: ImmF, A: FpFelt(op.Dst), Imm: op.Value})
	case ir.ImmExt:
		p.push(Instruction{Opcode: ImmE, A: FpExt(op.Dst), EImm: op.Value})
	// Var arithmetic
	case ir.AddV:
		p.push(Instruction{Opcode: AddF, A: FpVar(op.Dst), B: FpVar(op.Lhs), C: FpVar(op.Rhs)})
	case ir.AddVI:
		p.push(Instruction{Opcode: AddFI, A: FpVar(op.Dst), B: FpVar(op.Lhs), Imm: op.Rhs})
	case ir.SubV:
		p.push(Instruction{Opcode: SubF, A: FpVar(op.Dst), B: FpVar(op.Lhs), C: FpVar(op.Rhs)})
	case ir.SubVI:
		p.push(Instruction{Opcode: SubFI, A: FpVar(op.Dst), B: FpVar(op.Lhs), Imm: op.Rhs})
	case ir.SubVIN:
		p.push(Instruction{Opcode: SubFIN, A: FpVar(op.Dst), B: FpVar(op.Rhs), Imm: op.Lhs})
	case ir.MulV:
		p.push(Instruction{Opcode: MulF, A: FpVar(op.Dst), B: FpVar(op.Lhs), C: FpVar(op.Rhs)})
	case ir.MulVI:
		p.push(Instruction{Opcode: MulFI, A: FpVar(op.Dst), B: FpVar(op.Lhs), Imm: op.Rhs})
	case ir.NegV:
		p.push(Instruction{Opcode: SubFIN, A: FpVar(op.Dst), B: FpVar(op.Src), Imm: babybear.Zero()})
	case ir.InvV:
		p.push(Instruction{Opcode: DivFIN, A: FpVar(op.Dst), B: FpVar(op.Src), Imm: babybear.One()})
	// Felt arithmetic
	case ir.AddF:
		p.push(Instruction{Opcode: AddF, A: FpFelt(op.Dst), B: FpFelt(op.Lhs), C: FpFelt(op.Rhs)})
	case ir.AddFI:
		p.push(Instruction{Opcode: AddFI, A: FpFelt(op.Dst), B: FpFelt(op.Lhs), Imm: op.Rhs})
	case ir.SubF:
		p.push(Instruction{Opcode: SubF, A: FpFelt(op.Dst), B: FpFelt(op.Lhs), C: FpFelt(op.Rhs)})
	case ir.SubFI:
		p.push(Instruction{Opcode: SubFI, A: FpFelt(op.Dst), B: FpFelt(op.Lhs), Imm: op.Rhs})
	case ir.SubFIN:
		p.push(Instruction{Opcode: SubFIN, A: FpFelt(op.Dst), B: FpFelt(op.Rhs), Imm: op.Lhs})
	case ir.MulF:
		p.push(Instruction{Opcode: MulF, A: FpFelt(op.Dst), B: FpFelt(op.Lhs), C: FpFelt(op.Rhs)})
	case ir.MulFI:
		p.push(Instruction{Opcode: MulFI, A: FpFelt(op.Dst), B: FpFelt(op.Lhs), Imm: op.Rhs})
	case ir.DivF:
		p.push(Instruction{Opcode: DivF, A: FpFelt(op.Dst), B: FpFelt(op.Lhs), C: FpFelt(op.Rhs)})
	case ir.DivFI:
		p.push(Instruction{Opcode: DivFI, A: FpFelt(op.Dst), B: FpFelt(op.Lhs), Imm: op.Rhs})
	case ir.DivFIN:
		p.push(Instruction{Opcode: DivFIN, A: FpFelt(op.Dst), B: FpFelt(op.Rhs), Imm: op.Lhs})
	case ir.NegF:
		p.push(Instruction{Opcode: SubFIN, A: FpFelt(op.Dst), B: FpFelt(op.Src), Imm: babybear.Zero()})
	case ir.InvF:
		p.push(Instruction{Opcode: DivFIN, A: FpFelt(op.Dst), B: FpFelt(op.Src), Imm: babybear.One()})
	// Ext arithmetic
	case ir.AddE:
		p.push(Instruction{Opcode: AddE, A: FpExt(op.Dst), B: FpExt(op.Lhs), C: FpExt(op.Rhs)})
	case ir.AddEI:
		p.push(Instruction{Opcode: AddEI, A: FpExt(op.Dst), B: FpExt(op.Lhs), EImm: op.Rhs})
	case ir.SubE:
		p.push(Instruction{Opcode: SubE, A: FpExt(op.Dst), B: FpExt(op.Lhs), C: FpExt(op.Rhs)})
	case ir.SubEI:
		p.push(Instruction{Opcode: SubEI, A: FpExt(op.Dst), B: FpExt(op.Lhs), EImm: op.Rhs})
	case ir.SubEIN:
		p.push(Instruction{Opcode: SubEIN, A: FpExt(op.Dst), B: FpExt(op.Rhs), EImm: op.Lhs})
	case ir.MulE:
		p.push(Instruction{Opcode: MulE, A: FpExt(op.Dst), B: FpExt(op.Lhs), C: FpExt(op.Rhs)})
	case ir.MulEI:
		p.push(Instruction{Opcode: MulEI, A: FpExt(op.Dst), B: FpExt(op.Lhs), EImm: op.Rhs})
	case ir.DivE:
		p.push(Instruction{Opcode: DivE, A: FpExt(op.Dst), B: FpExt(op.Lhs), C: FpExt(op.Rhs)})
	case ir.DivEI:
		p.push(Instruction{Opcode: DivEI, A: FpExt(op.Dst), B: FpExt(op.Lhs), EImm: op.Rhs})
	case ir.DivEIN:
		p.push(Instruction{Opcode: DivEIN, A: FpExt(op.Dst), B: FpExt(op.Rhs), EImm: op.Lhs})
	case ir.NegE:
		p.push(Instruction{Opcode: SubEIN, A: FpExt(op.Dst), B: FpExt(op.Src), EImm: babybear.ZeroExt()})
	case ir.InvE:
		p.push(Instruction{Opcode: DivEIN, A: FpExt(op.Dst), B: FpExt(op.Src), EImm: babybear.OneExt()})
	// Mixed Ext / Felt arithmetic
	case ir.AddEF:
		p.push(Instruction{Opcode: AddEF, A: FpExt(op.Dst), B: FpExt(op.Lhs), C: FpFelt(op.Rhs)})
	case ir.AddEFI:
		p.push(Instruction{Opcode: AddEI, A: FpExt(op.Dst), B: FpExt(op.Lhs), EImm: babybear.FromBase(op.Rhs)})
	case ir.AddEFFI:
		p.push(Instruction{Opcode: AddEIF, A: FpExt(op.Dst), B: FpFelt(op.Lhs), EImm: op.Rhs})
	case ir.SubEF:
		p.push(Instruction{Opcode: SubFE, A: FpExt(op.Dst), B: FpExt(op.Lhs), C: FpFelt(op.Rhs)})
	case ir.SubEFI:
		p.push(Instruction{Opcode: SubEI, A: FpExt(op.Dst), B: FpExt(op.Lhs), EImm: babybear.FromBase(op.Rhs)})
	case ir.MulEF:
		p.push(Instruction{Opcode: MulFE, A: FpExt(op.Dst), B: FpExt(op.Lhs), C: FpFelt(op.Rhs)})
	case ir.MulEFI:
		p.push(Instruction{Opcode: MulEI, A: FpExt(op.Dst), B: FpExt(op.Lhs), EImm: babybear.FromBase(op.Rhs)})
	case ir.DivEF:
		p.push(Instruction{Opcode: DivFE, A: FpExt(op.Dst), B: FpExt(op.Lhs), C: FpFelt(op.Rhs)})
	case ir.DivEFI:
		p.push(Instruction{Opcode: DivEI, A: FpExt(op.Dst), B: FpExt(op.Lhs), EImm: babybear.FromBase(op.Rhs)})
	case ir.DivEFIN:
		p.push(Instruction{Opcode: DivEIN, A: FpExt(op.Dst), B: FpExt(op.Rhs), EImm: babybear.FromBase(op.Lhs)})
	// Control flow
	case ir.IfEq:
		p.compileIf(FpVar(op.Lhs), value(FpVar(op.Rhs)), true, op.Then, op.Else)
	case ir.IfNe:
		p.compileIf(FpVar(op.Lhs), value(FpVar(op.Rhs)), false, op.Then, op.Else)
	case ir.IfEqI:
		p.compileIf(FpVar(op.Lhs), constant(op.Rhs), true, op.Then, op.Else)
	case ir.IfNeI:
		p.compileIf(FpVar(op.Lhs), constant(op.Rhs), false, op.Then, op.Else)
	case ir.Break:
		if p.breakLabel < 0 {
			panic("break outside of a loop")
		}
		//
		p.containsBreak[p.blockLabel()] = struct{}{}
		p.push(Instruction{Opcode: Break, Target: uint(p.breakLabel)})
	case ir.For:
		f := forCompiler{
			compiler: p,
			start:    op.Start,
			end:      op.End,
			step:     op.Step,
			loopVar:  op.LoopVar,
		}
		f.forEach(func(_ ir.Var, p *Compiler) { p.Build(op.Body) })
	case ir.Error:
		p.push(Instruction{Opcode: Trap})
	// Assertions, which trap when the negated condition holds.
	case ir.AssertEqV:
		p.assert(FpVar(op.Lhs), value(FpVar(op.Rhs)), false)
	case ir.AssertNeV:
		p.assert(FpVar(op.Lhs), value(FpVar(op.Rhs)), true)
	case ir.AssertEqVI:
		p.assert(FpVar(op.Lhs), constant(op.Rhs), false)
	case ir.AssertNeVI:
		p.assert(FpVar(op.Lhs), constant(op.Rhs), true)
	case ir.AssertEqF:
		p.assert(FpFelt(op.Lhs), value(FpFelt(op.Rhs)), false)
	case ir.AssertNeF:
		p.assert(FpFelt(op.Lhs), value(FpFelt(op.Rhs)), true)
	case ir.AssertEqFI:
		p.assert(FpFelt(op.Lhs), constant(op.Rhs), false)
	case ir.AssertNeFI:
		p.assert(FpFelt(op.Lhs), constant(op.Rhs), true)
	case ir.AssertEqE:
		p.assert(FpExt(op.Lhs), extValue(FpExt(op.Rhs)), false)
	case ir.AssertNeE:
		p.assert(FpExt(op.Lhs), extValue(FpExt(op.Rhs)), true)
	case ir.AssertEqEI:
		p.assert(FpExt(op.Lhs), extConstant(op.Rhs), false)
	case ir.AssertNeEI:
		p.assert(FpExt(op.Lhs), extConstant(op.Rhs), true)
	// Memory
	case ir.Alloc:
		p.alloc(op.Ptr, op.Len, op.Size)
	case ir.LoadV:
		p.loadStore(LoadF, LoadFI, FpVar(op.Dst), FpPtr(op.Ptr), op.Index)
	case ir.LoadF:
		p.loadStore(LoadF, LoadFI, FpFelt(op.Dst), FpPtr(op.Ptr), op.Index)
	case ir.LoadE:
		p.loadStore(LoadE, LoadEI, FpExt(op.Dst), FpPtr(op.Ptr), op.Index)
	case ir.StoreV:
		p.loadStore(StoreF, StoreFI, FpPtr(op.Ptr), FpVar(op.Src), op.Index)
	case ir.StoreF:
		p.loadStore(StoreF, StoreFI, FpPtr(op.Ptr), FpFelt(op.Src), op.Index)
	case ir.StoreE:
		p.loadStore(StoreE, StoreEI, FpPtr(op.Ptr), FpExt(op.Src), op.Index)
	// I/O and hints
	case ir.PrintV:
		p.push(Instruction{Opcode: PrintV, A: FpVar(op.Src)})
	case ir.PrintF:
		p.push(Instruction{Opcode: PrintF, A: FpFelt(op.Src)})
	case ir.PrintE:
		p.push(Instruction{Opcode: PrintE, A: FpExt(op.Src)})
	case ir.HintLen:
		p.push(Instruction{Opcode: HintLen, A: FpVar(op.Dst)})
	case ir.HintVars:
		p.push(Instruction{Opcode: Hint, A: dynPtr(op.Dst, "HintVars")})
	case ir.HintFelts:
		p.push(Instruction{Opcode: Hint, A: dynPtr(op.Dst, "HintFelts")})
	case ir.HintExts:
		p.push(Instruction{Opcode: Hint, A: dynPtr(op.Dst, "HintExts")})
	case ir.HintBitsU:
		if !op.Src.IsVar() {
			panic("HintBitsU requires a var source")
		}
		//
		p.push(Instruction{Opcode: HintBits, A: dynPtr(op.Dst, "HintBitsU"), B: FpVar(op.Src.Var())})
	case ir.HintBitsF:
		p.push(Instruction{Opcode: HintBits, A: dynPtr(op.Dst, "HintBitsF"), B: FpFelt(op.Src)})
	case ir.HintBitsV:
		p.push(Instruction{Opcode: HintBits, A: dynPtr(op.Dst, "HintBitsV"), B: FpVar(op.Src)})
	// Cryptographic primitives
	case ir.Poseidon2Permute:
		p.push(Instruction{
			Opcode: Poseidon2Permute,
			A:      dynPtr(op.Dst, "Poseidon2Permute"),
			B:      dynPtr(op.Src, "Poseidon2Permute"),
		})
	case ir.Poseidon2Compress:
		p.push(Instruction{
			Opcode: Poseidon2Compress,
			A:      dynPtr(op.Result, "Poseidon2Compress"),
			B:      dynPtr(op.Left, "Poseidon2Compress"),
			C:      dynPtr(op.Right, "Poseidon2Compress"),
		})
	case ir.Ext2Felt:
		p.push(Instruction{Opcode: Ext2Felt, A: dynPtr(op.Dst, "Ext2Felt"), B: FpExt(op.Src)})
	case ir.FriFold:
		p.push(Instruction{Opcode: FriFold, A: FpVar(op.M), B: dynPtr(op.Input, "FriFold")})
	default:
		panic(fmt.Sprintf("unsupported operation %T", op))
	}
}

// compileIf delegates a conditional to the if sub-compiler, choosing the
// single or two branch form depending on whether an else body is present.
func (p *Compiler) compileIf(lhs int32, rhs operand, eq bool, thenOps, elseOps []ir.Op) {
	c := ifCompiler{compiler: p, lhs: lhs, rhs: rhs, eq: eq}
	//
	if len(elseOps) == 0 {
		c.then(func(p *Compiler) { p.Build(thenOps) })
	} else {
		c.thenOrElse(
			func(p *Compiler) { p.Build(thenOps) },
			func(p *Compiler) { p.Build(elseOps) },
		)
	}
}

// assert emits a guarded trap: the trap fires exactly when the branch
// condition given by (rhs, eq) fails to hold for lhs.
func (p *Compiler) assert(lhs int32, rhs operand, eq bool) {
	c := ifCompiler{compiler: p, lhs: lhs, rhs: rhs, eq: eq}
	c.then(func(p *Compiler) { p.push(Instruction{Opcode: Trap}) })
}

// alloc binds ptr to the current heap pointer, then bumps the heap pointer
// past the new region.  The heap only ever grows; a compiled program is
// executed once, so nothing is ever freed.
func (p *Compiler) alloc(ptr ir.Ptr, length ir.Usize, size uint32) {
	p.push(Instruction{Opcode: AddFI, A: FpPtr(ptr), B: HeapPtr, Imm: babybear.Zero()})
	//
	if length.IsVar() {
		// Scale the length through the scratch cell.
		p.push(Instruction{Opcode: MulFI, A: A0, B: FpVar(length.Var()), Imm: babybear.NewElement(uint64(size))})
		p.push(Instruction{Opcode: AddF, A: HeapPtr, B: HeapPtr, C: A0})
	} else {
		cells := uint64(length.Value()) * uint64(size)
		p.push(Instruction{Opcode: AddFI, A: HeapPtr, B: HeapPtr, Imm: babybear.NewElement(cells)})
	}
}

// loadStore emits a memory access, selecting the register or immediate
// indexed form of the opcode.
func (p *Compiler) loadStore(regOp, immOp Opcode, a, b int32, index ir.MemIndex) {
	var (
		offset = babybear.NewElement(uint64(index.Offset))
		size   = babybear.NewElement(uint64(index.Size))
	)
	//
	if index.Index.IsVar() {
		p.push(Instruction{Opcode: regOp, A: a, B: b, C: FpVar(index.Index.Var()), Offset: offset, Size: size})
	} else {
		idx := babybear.NewElement(uint64(index.Index.Value()))
		p.push(Instruction{Opcode: immOp, A: a, B: b, Imm: idx, Offset: offset, Size: size})
	}
}

// newBreakLabel allocates a fresh break label.
func (p *Compiler) newBreakLabel() uint {
	label := p.breakCounter
	p.breakCounter++
	//
	return label
}

// basicBlock appends a fresh block, making it current.
func (p *Compiler) basicBlock() {
	p.blocks = append(p.blocks, BasicBlock{})
}

// blockLabel returns the label of the current block.
func (p *Compiler) blockLabel() uint {
	return uint(len(p.blocks) - 1)
}

// push appends an instruction to the current block.
func (p *Compiler) push(insn Instruction) {
	p.blocks[len(p.blocks)-1].Push(insn)
}

// pushToBlock appends an instruction to the block at a given label.
func (p *Compiler) pushToBlock(label uint, insn Instruction) {
	if label >= uint(len(p.blocks)) {
		panic(fmt.Sprintf("missing block at label %d", label))
	}
	//
	p.blocks[label].Push(insn)
}

// dynPtr extracts the pointer address of a dynamic array, aborting for
// statically unrolled arrays which have no heap presence.
func dynPtr(a ir.Array, op string) int32 {
	d, ok := a.(ir.Dyn)
	//
	if !ok {
		panic(fmt.Sprintf("%s requires a dynamic array", op))
	}
	//
	return FpPtr(d.Ptr)
}
