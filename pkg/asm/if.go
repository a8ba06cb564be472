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
	"github.com/ClementWalter/sp1/pkg/util/field/babybear"
)

type operandKind uint8

const (
	opValue operandKind = iota
	opConstant
	opExtValue
	opExtConstant
)

// operand is the right-hand side of a comparison: either a cell address or an
// immediate, in the base or extension field.
type operand struct {
	kind operandKind
	addr int32
	imm  babybear.Element
	eimm babybear.Ext
}

func value(addr int32) operand {
	return operand{kind: opValue, addr: addr}
}

func constant(imm babybear.Element) operand {
	return operand{kind: opConstant, imm: imm}
}

func extValue(addr int32) operand {
	return operand{kind: opExtValue, addr: addr}
}

func extConstant(eimm babybear.Ext) operand {
	return operand{kind: opExtConstant, eimm: eimm}
}

// ifCompiler linearises a conditional into blocks.  The branching block ends
// with a single conditional branch on the negated condition, so the
// fall-through path into the physically adjacent block is the "then" case.
type ifCompiler struct {
	compiler *Compiler
	lhs      int32
	rhs      operand
	eq       bool
}

// then compiles the single-branch form: a then body followed by an
// after block, with the branching block skipping the body when the condition
// fails.
func (p ifCompiler) then(body func(*Compiler)) {
	var compiler = p.compiler
	// Label of the block which will hold the branch.
	branchingBlock := compiler.blockLabel()
	// Compile the then body into a fresh block.
	compiler.basicBlock()
	body(compiler)
	// Open the block where the main flow resumes.
	compiler.basicBlock()
	afterIfBlock := compiler.blockLabel()
	// Patch the branching block now the after block is known.
	compiler.pushToBlock(branchingBlock, branch(p.lhs, p.rhs, p.eq, afterIfBlock))
}

// thenOrElse compiles the two-branch form: the branching block branches to
// the else body when the condition fails, and the then body jumps over it to
// the after block where both paths converge.
func (p ifCompiler) thenOrElse(thenBody, elseBody func(*Compiler)) {
	var compiler = p.compiler
	//
	branchingBlock := compiler.blockLabel()
	// Compile the then body, remembering its terminal block.
	compiler.basicBlock()
	thenBody(compiler)
	lastThenBlock := compiler.blockLabel()
	// Compile the else body.
	compiler.basicBlock()
	elseBlock := compiler.blockLabel()
	elseBody(compiler)
	// Patch the branching block to skip to the else body.
	compiler.pushToBlock(branchingBlock, branch(p.lhs, p.rhs, p.eq, elseBlock))
	// Open the block where both paths converge, and route the then path
	// around the else body.
	compiler.basicBlock()
	mainFlowBlock := compiler.blockLabel()
	compiler.pushToBlock(lastThenBlock, jumpTo(mainFlowBlock))
}

// branch selects the physical branch opcode for a comparison.  The branch is
// taken when the condition does NOT hold, skipping the then body.
func branch(lhs int32, rhs operand, eq bool, target uint) Instruction {
	switch {
	case rhs.kind == opConstant && eq:
		return Instruction{Opcode: BneI, Target: target, A: lhs, Imm: rhs.imm}
	case rhs.kind == opConstant:
		return Instruction{Opcode: BeqI, Target: target, A: lhs, Imm: rhs.imm}
	case rhs.kind == opExtConstant && eq:
		return Instruction{Opcode: BneEI, Target: target, A: lhs, EImm: rhs.eimm}
	case rhs.kind == opExtConstant:
		return Instruction{Opcode: BeqEI, Target: target, A: lhs, EImm: rhs.eimm}
	case rhs.kind == opValue && eq:
		return Instruction{Opcode: Bne, Target: target, A: lhs, B: rhs.addr}
	case rhs.kind == opValue:
		return Instruction{Opcode: Beq, Target: target, A: lhs, B: rhs.addr}
	case eq:
		return Instruction{Opcode: BneE, Target: target, A: lhs, B: rhs.addr}
	default:
		return Instruction{Opcode: BeqE, Target: target, A: lhs, B: rhs.addr}
	}
}
