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
	"fmt"

	"github.com/ClementWalter/sp1/pkg/util/field/babybear"
)

// Instruction is a single machine instruction, closed over Opcode.  Operand
// meaning is positional: A is the destination (the pointer for stores), B the
// first source (the pointer for loads), C the second source when it is
// addressed rather than immediate.  Branches compare A against B, Imm or
// EImm and transfer control to Target.
type Instruction struct {
	Opcode Opcode
	// A, B, C are frame-relative cell addresses.
	A, B, C int32
	// Imm is a base field immediate.
	Imm babybear.Element
	// EImm is an extension field immediate.
	EImm babybear.Ext
	// Offset and Size scale memory accesses: the effective address is
	// ptr + index*Size + Offset.
	Offset, Size babybear.Element
	// Target is a block label for branches and jumps (an absolute address
	// once bound), and a break label for Break.
	Target uint
}

// jumpTo constructs an unconditional jump to a given block.
func jumpTo(target uint) Instruction {
	return Instruction{Opcode: Jump, Target: target}
}

// bind rewrites this instruction's block-relative target into an absolute
// instruction address.  A target outside the block list is a compiler defect
// and aborts, as does an unresolved break.
func (p *Instruction) bind(offsets []uint) {
	if p.Opcode == Break {
		panic(fmt.Sprintf("unresolved break (label %d)", p.Target))
	}
	//
	if !p.Opcode.isBranch() {
		return
	}
	//
	if p.Target >= uint(len(offsets)) {
		panic(fmt.Sprintf("dangling label %d", p.Target))
	}
	//
	p.Target = offsets[p.Target]
}

func (p Instruction) String() string {
	mnemonic := p.Opcode.String()
	//
	switch p.Opcode {
	case ImmF:
		return fmt.Sprintf("%-8s(%d), %s", mnemonic, p.A, p.Imm.String())
	case ImmE:
		return fmt.Sprintf("%-8s(%d), %s", mnemonic, p.A, p.EImm.String())
	case AddF, SubF, MulF, DivF, AddE, SubE, MulE, DivE, AddEF, SubFE, MulFE, DivFE:
		return fmt.Sprintf("%-8s(%d), (%d), (%d)", mnemonic, p.A, p.B, p.C)
	case AddFI, SubFI, MulFI, DivFI:
		return fmt.Sprintf("%-8s(%d), (%d), %s", mnemonic, p.A, p.B, p.Imm.String())
	case SubFIN, DivFIN:
		return fmt.Sprintf("%-8s(%d), %s, (%d)", mnemonic, p.A, p.Imm.String(), p.B)
	case AddEI, SubEI, MulEI, DivEI, AddEIF:
		return fmt.Sprintf("%-8s(%d), (%d), %s", mnemonic, p.A, p.B, p.EImm.String())
	case SubEIN, DivEIN:
		return fmt.Sprintf("%-8s(%d), %s, (%d)", mnemonic, p.A, p.EImm.String(), p.B)
	case LoadF, LoadE, StoreF, StoreE:
		return fmt.Sprintf("%-8s(%d), (%d), (%d), %s, %s",
			mnemonic, p.A, p.B, p.C, p.Offset.String(), p.Size.String())
	case LoadFI, LoadEI, StoreFI, StoreEI:
		return fmt.Sprintf("%-8s(%d), (%d), %s, %s, %s",
			mnemonic, p.A, p.B, p.Imm.String(), p.Offset.String(), p.Size.String())
	case Beq, Bne, BeqE, BneE, BneInc:
		return fmt.Sprintf("%-8s.L%d, (%d), (%d)", mnemonic, p.Target, p.A, p.B)
	case BeqI, BneI, BneIInc:
		return fmt.Sprintf("%-8s.L%d, (%d), %s", mnemonic, p.Target, p.A, p.Imm.String())
	case BeqEI, BneEI:
		return fmt.Sprintf("%-8s.L%d, (%d), %s", mnemonic, p.Target, p.A, p.EImm.String())
	case Jump:
		return fmt.Sprintf("%-8s.L%d", mnemonic, p.Target)
	case Break:
		return fmt.Sprintf("%-8s%d", mnemonic, p.Target)
	case Trap:
		return mnemonic
	case PrintV, PrintF, PrintE, HintLen, Hint:
		return fmt.Sprintf("%-8s(%d)", mnemonic, p.A)
	case HintBits, Ext2Felt, Poseidon2Permute, FriFold:
		return fmt.Sprintf("%-8s(%d), (%d)", mnemonic, p.A, p.B)
	case Poseidon2Compress:
		return fmt.Sprintf("%-8s(%d), (%d), (%d)", mnemonic, p.A, p.B, p.C)
	default:
		return fmt.Sprintf("%-8s(%d), (%d), (%d)", mnemonic, p.A, p.B, p.C)
	}
}
