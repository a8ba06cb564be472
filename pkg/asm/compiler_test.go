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
package asm

import (
	"testing"

	"github.com/ClementWalter/sp1/pkg/ir"
	"github.com/ClementWalter/sp1/pkg/util/field/babybear"
	"github.com/stretchr/testify/require"
)

// compileOps compiles a sequence of operations and returns the raw block
// arena for structural inspection.
func compileOps(ops []ir.Op) []BasicBlock {
	compiler := NewCompiler()
	compiler.Build(ops)
	//
	return compiler.blocks
}

func TestCompiler_HeapInitEmittedOnce(t *testing.T) {
	blocks := compileOps([]ir.Op{
		ir.ImmFelt{Dst: ir.Felt(0), Value: babybear.NewElement(7)},
	})
	//
	require.Len(t, blocks, 1)
	insns := blocks[0].Instructions
	require.Len(t, insns, 2)
	// Heap pointer starts just past the stack frame.
	expected := Instruction{Opcode: ImmF, A: HeapPtr, Imm: babybear.NewElement(StackSize + 4)}
	require.Equal(t, expected, insns[0])
	//
	count := 0
	//
	for _, insn := range insns {
		if insn.Opcode == ImmF && insn.A == HeapPtr {
			count++
		}
	}
	//
	require.Equal(t, 1, count)
}

func TestCompiler_FeltArithmetic(t *testing.T) {
	var (
		a, b, c = ir.Felt(0), ir.Felt(1), ir.Felt(2)
		k       = babybear.NewElement(42)
	)
	//
	blocks := compileOps([]ir.Op{
		ir.AddF{Dst: c, Lhs: a, Rhs: b},
		ir.SubFI{Dst: c, Lhs: a, Rhs: k},
		ir.MulF{Dst: c, Lhs: a, Rhs: b},
		ir.DivFIN{Dst: c, Lhs: k, Rhs: b},
	})
	//
	insns := blocks[0].Instructions[1:]
	require.Equal(t, Instruction{Opcode: AddF, A: FpFelt(c), B: FpFelt(a), C: FpFelt(b)}, insns[0])
	require.Equal(t, Instruction{Opcode: SubFI, A: FpFelt(c), B: FpFelt(a), Imm: k}, insns[1])
	require.Equal(t, Instruction{Opcode: MulF, A: FpFelt(c), B: FpFelt(a), C: FpFelt(b)}, insns[2])
	// Constant dividend moves into the immediate slot.
	require.Equal(t, Instruction{Opcode: DivFIN, A: FpFelt(c), B: FpFelt(b), Imm: k}, insns[3])
}

func TestCompiler_NegationAndInversion(t *testing.T) {
	blocks := compileOps([]ir.Op{
		ir.NegF{Dst: ir.Felt(1), Src: ir.Felt(0)},
		ir.InvF{Dst: ir.Felt(2), Src: ir.Felt(0)},
		ir.NegE{Dst: ir.Ext(1), Src: ir.Ext(0)},
		ir.InvE{Dst: ir.Ext(2), Src: ir.Ext(0)},
	})
	//
	insns := blocks[0].Instructions[1:]
	// Negation is subtraction from zero, inversion division of one.
	require.Equal(t, Instruction{Opcode: SubFIN, A: FpFelt(ir.Felt(1)), B: FpFelt(ir.Felt(0)), Imm: babybear.Zero()}, insns[0])
	require.Equal(t, Instruction{Opcode: DivFIN, A: FpFelt(ir.Felt(2)), B: FpFelt(ir.Felt(0)), Imm: babybear.One()}, insns[1])
	require.Equal(t, Instruction{Opcode: SubEIN, A: FpExt(ir.Ext(1)), B: FpExt(ir.Ext(0)), EImm: babybear.ZeroExt()}, insns[2])
	require.Equal(t, Instruction{Opcode: DivEIN, A: FpExt(ir.Ext(2)), B: FpExt(ir.Ext(0)), EImm: babybear.OneExt()}, insns[3])
}

func TestCompiler_MixedExtFelt(t *testing.T) {
	var (
		e, d = ir.Ext(0), ir.Ext(1)
		f    = ir.Felt(0)
		k    = babybear.NewElement(9)
	)
	//
	blocks := compileOps([]ir.Op{
		ir.AddEF{Dst: d, Lhs: e, Rhs: f},
		ir.MulEFI{Dst: d, Lhs: e, Rhs: k},
		ir.AddEFFI{Dst: d, Lhs: f, Rhs: babybear.OneExt()},
	})
	//
	insns := blocks[0].Instructions[1:]
	require.Equal(t, Instruction{Opcode: AddEF, A: FpExt(d), B: FpExt(e), C: FpFelt(f)}, insns[0])
	// A base field immediate is widened into the extension field.
	require.Equal(t, Instruction{Opcode: MulEI, A: FpExt(d), B: FpExt(e), EImm: babybear.FromBase(k)}, insns[1])
	require.Equal(t, Instruction{Opcode: AddEIF, A: FpExt(d), B: FpFelt(f), EImm: babybear.OneExt()}, insns[2])
}

func TestCompiler_AllocConstantLength(t *testing.T) {
	ptr := ir.Ptr{Address: ir.Var(0)}
	//
	blocks := compileOps([]ir.Op{
		ir.Alloc{Ptr: ptr, Len: ir.Const(8), Size: 4},
	})
	//
	insns := blocks[0].Instructions[1:]
	require.Len(t, insns, 2)
	require.Equal(t, Instruction{Opcode: AddFI, A: FpPtr(ptr), B: HeapPtr, Imm: babybear.Zero()}, insns[0])
	require.Equal(t, Instruction{Opcode: AddFI, A: HeapPtr, B: HeapPtr, Imm: babybear.NewElement(32)}, insns[1])
}

func TestCompiler_AllocVariableLength(t *testing.T) {
	var (
		ptr = ir.Ptr{Address: ir.Var(0)}
		n   = ir.Var(1)
	)
	//
	blocks := compileOps([]ir.Op{
		ir.Alloc{Ptr: ptr, Len: ir.FromVar(n), Size: 4},
	})
	//
	insns := blocks[0].Instructions[1:]
	require.Len(t, insns, 3)
	require.Equal(t, Instruction{Opcode: AddFI, A: FpPtr(ptr), B: HeapPtr, Imm: babybear.Zero()}, insns[0])
	// The region size is scaled through the scratch cell.
	require.Equal(t, Instruction{Opcode: MulFI, A: A0, B: FpVar(n), Imm: babybear.NewElement(4)}, insns[1])
	require.Equal(t, Instruction{Opcode: AddF, A: HeapPtr, B: HeapPtr, C: A0}, insns[2])
}

func TestCompiler_LoadStore(t *testing.T) {
	var (
		ptr = ir.Ptr{Address: ir.Var(0)}
		f   = ir.Felt(0)
		i   = ir.Var(1)
	)
	//
	blocks := compileOps([]ir.Op{
		ir.LoadF{Dst: f, Ptr: ptr, Index: ir.MemIndex{Index: ir.Const(3), Offset: 1, Size: 4}},
		ir.StoreF{Ptr: ptr, Src: f, Index: ir.MemIndex{Index: ir.FromVar(i), Offset: 0, Size: 4}},
	})
	//
	insns := blocks[0].Instructions[1:]
	require.Equal(t, Instruction{
		Opcode: LoadFI, A: FpFelt(f), B: FpPtr(ptr),
		Imm: babybear.NewElement(3), Offset: babybear.One(), Size: babybear.NewElement(4),
	}, insns[0])
	// Stores address through A, with the value in B.
	require.Equal(t, Instruction{
		Opcode: StoreF, A: FpPtr(ptr), B: FpFelt(f), C: FpVar(i),
		Offset: babybear.Zero(), Size: babybear.NewElement(4),
	}, insns[1])
}

func TestCompiler_Deterministic(t *testing.T) {
	ops := []ir.Op{
		ir.ImmVar{Dst: ir.Var(0), Value: babybear.NewElement(5)},
		ir.For{
			Start: ir.Const(0), End: ir.FromVar(ir.Var(0)), Step: 1, LoopVar: ir.Var(1),
			Body: []ir.Op{
				ir.AddVI{Dst: ir.Var(2), Lhs: ir.Var(2), Rhs: babybear.One()},
			},
		},
	}
	//
	first := compileOps(ops)
	second := compileOps(ops)
	require.Equal(t, first, second)
}

func TestCompiler_UnsupportedOpPanics(t *testing.T) {
	compiler := NewCompiler()
	//
	require.Panics(t, func() {
		compiler.Build([]ir.Op{
			ir.Num2BitsF{Dst: ir.Fixed{Size: 32}, Src: ir.Felt(0)},
		})
	})
}

func TestCompiler_BreakOutsideLoopPanics(t *testing.T) {
	compiler := NewCompiler()
	//
	require.PanicsWithValue(t, "break outside of a loop", func() {
		compiler.Build([]ir.Op{ir.Break{}})
	})
}

func TestCompiler_HintsRequireDynamicArrays(t *testing.T) {
	compiler := NewCompiler()
	//
	require.Panics(t, func() {
		compiler.Build([]ir.Op{ir.HintFelts{Dst: ir.Fixed{Size: 8}}})
	})
}

func TestCompiler_DuplicateFunctionPanics(t *testing.T) {
	compiler := NewCompiler()
	compiler.Function("verify")
	//
	require.Panics(t, func() {
		compiler.Function("verify")
	})
}
