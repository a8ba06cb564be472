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
	"github.com/ClementWalter/sp1/pkg/ir"
	"github.com/ClementWalter/sp1/pkg/util/field/babybear"
)

// forCompiler linearises a loop into blocks: loop variable setup in the
// calling block, a body block, a bottom-tested condition block and an
// after block.  The calling block jumps straight to the condition block, so
// the bound is checked exactly once per iteration including first entry.
//
// Ranges whose end lies below their start are undefined behaviour.
type forCompiler struct {
	compiler   *Compiler
	start, end ir.Usize
	step       uint32
	loopVar    ir.Var
}

func (p *forCompiler) forEach(body func(ir.Var, *Compiler)) {
	var compiler = p.compiler
	// Set the loop variable to the start of the range.
	p.setLoopVar()
	loopCallBlock := compiler.blockLabel()
	// Activate a fresh break label, keeping the enclosing loop's label so
	// breaks emitted after this loop bind to the right level again.
	enclosingBreakLabel := compiler.breakLabel
	breakLabel := compiler.newBreakLabel()
	compiler.breakLabel = int(breakLabel)
	// Compile the loop body into a fresh block.
	compiler.basicBlock()
	loopBlock := compiler.blockLabel()
	body(p.loopVar, compiler)
	//
	if p.step == 1 {
		// Unit step: fuse the increment into the back branch.
		p.jumpToLoopBodyInc(loopBlock)
	} else {
		step := babybear.NewElement(uint64(p.step))
		compiler.push(Instruction{Opcode: AddFI, A: FpVar(p.loopVar), B: FpVar(p.loopVar), Imm: step})
	}
	// The loop condition block, holding the back branch.
	compiler.basicBlock()
	p.jumpToLoopBody(loopBlock)
	// First entry reaches the bottom test through an explicit jump.
	compiler.pushToBlock(loopCallBlock, jumpTo(compiler.blockLabel()))
	// Open the after block and resolve this loop's breaks to it.
	compiler.basicBlock()
	afterLoopBlock := compiler.blockLabel()
	//
	for block := range compiler.containsBreak {
		instructions := compiler.blocks[block].Instructions
		//
		for i, insn := range instructions {
			if insn.Opcode == Break && insn.Target == breakLabel {
				instructions[i] = jumpTo(afterLoopBlock)
			}
		}
	}
	//
	compiler.breakLabel = enclosingBreakLabel
}

// setLoopVar initialises the loop variable from the range start.
func (p *forCompiler) setLoopVar() {
	var compiler = p.compiler
	//
	if p.start.IsVar() {
		compiler.push(Instruction{
			Opcode: AddFI, A: FpVar(p.loopVar), B: FpVar(p.start.Var()), Imm: babybear.Zero(),
		})
	} else {
		compiler.push(Instruction{
			Opcode: ImmF, A: FpVar(p.loopVar), Imm: babybear.NewElement(uint64(p.start.Value())),
		})
	}
}

// jumpToLoopBody emits the back branch taken while the loop variable has not
// reached the range end.
func (p *forCompiler) jumpToLoopBody(loopBlock uint) {
	var compiler = p.compiler
	//
	if p.end.IsVar() {
		compiler.push(Instruction{
			Opcode: Bne, Target: loopBlock, A: FpVar(p.loopVar), B: FpVar(p.end.Var()),
		})
	} else {
		compiler.push(Instruction{
			Opcode: BneI, Target: loopBlock, A: FpVar(p.loopVar), Imm: babybear.NewElement(uint64(p.end.Value())),
		})
	}
}

// jumpToLoopBodyInc emits the fused increment-and-back-branch used for unit
// steps.
func (p *forCompiler) jumpToLoopBodyInc(loopBlock uint) {
	var compiler = p.compiler
	//
	if p.end.IsVar() {
		compiler.push(Instruction{
			Opcode: BneInc, Target: loopBlock, A: FpVar(p.loopVar), B: FpVar(p.end.Var()),
		})
	} else {
		compiler.push(Instruction{
			Opcode: BneIInc, Target: loopBlock, A: FpVar(p.loopVar), Imm: babybear.NewElement(uint64(p.end.Value())),
		})
	}
}
