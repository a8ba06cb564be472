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

import "fmt"

// Opcode identifies a machine instruction.  The vocabulary is closed; the
// assembler and any downstream interpreter dispatch exhaustively over it.
type Opcode uint8

const (
	// ImmF loads a base field immediate.
	ImmF Opcode = iota
	// ImmE loads an extension field immediate.
	ImmE
	// AddF adds two base field cells.
	AddF
	// AddFI adds an immediate to a base field cell.
	AddFI
	// SubF subtracts two base field cells.
	SubF
	// SubFI subtracts an immediate from a base field cell.
	SubFI
	// SubFIN subtracts a base field cell from an immediate.
	SubFIN
	// MulF multiplies two base field cells.
	MulF
	// MulFI multiplies a base field cell by an immediate.
	MulFI
	// DivF divides two base field cells.
	DivF
	// DivFI divides a base field cell by an immediate.
	DivFI
	// DivFIN divides an immediate by a base field cell.
	DivFIN
	// AddE adds two extension cells.
	AddE
	// AddEI adds an immediate to an extension cell.
	AddEI
	// SubE subtracts two extension cells.
	SubE
	// SubEI subtracts an immediate from an extension cell.
	SubEI
	// SubEIN subtracts an extension cell from an immediate.
	SubEIN
	// MulE multiplies two extension cells.
	MulE
	// MulEI multiplies an extension cell by an immediate.
	MulEI
	// DivE divides two extension cells.
	DivE
	// DivEI divides an extension cell by an immediate.
	DivEI
	// DivEIN divides an immediate by an extension cell.
	DivEIN
	// AddEF adds a base field cell to an extension cell.
	AddEF
	// AddEIF adds an extension immediate to a base field cell.
	AddEIF
	// SubFE subtracts a base field cell from an extension cell.
	SubFE
	// MulFE multiplies an extension cell by a base field cell.
	MulFE
	// DivFE divides an extension cell by a base field cell.
	DivFE
	// LoadF loads a base field element, indexed by a var.
	LoadF
	// LoadFI loads a base field element, indexed by a constant.
	LoadFI
	// LoadE loads an extension element, indexed by a var.
	LoadE
	// LoadEI loads an extension element, indexed by a constant.
	LoadEI
	// StoreF stores a base field element, indexed by a var.
	StoreF
	// StoreFI stores a base field element, indexed by a constant.
	StoreFI
	// StoreE stores an extension element, indexed by a var.
	StoreE
	// StoreEI stores an extension element, indexed by a constant.
	StoreEI
	// Beq branches when two base field cells are equal.
	Beq
	// BeqI branches when a base field cell equals an immediate.
	BeqI
	// Bne branches when two base field cells differ.
	Bne
	// BneI branches when a base field cell differs from an immediate.
	BneI
	// BeqE branches when two extension cells are equal.
	BeqE
	// BeqEI branches when an extension cell equals an immediate.
	BeqEI
	// BneE branches when two extension cells differ.
	BneE
	// BneEI branches when an extension cell differs from an immediate.
	BneEI
	// BneInc increments a cell, then branches when it differs from another
	// cell.
	BneInc
	// BneIInc increments a cell, then branches when it differs from an
	// immediate.
	BneIInc
	// Jump branches unconditionally.
	Jump
	// Break is an abstract forward branch to the end of the innermost loop.
	// Every Break is rewritten to a Jump before assembly completes.
	Break
	// Trap aborts execution.
	Trap
	// PrintV prints a var cell.
	PrintV
	// PrintF prints a base field cell.
	PrintF
	// PrintE prints an extension cell.
	PrintE
	// HintBits reads an externally hinted bit decomposition.
	HintBits
	// HintLen reads the length of the next external hint.
	HintLen
	// Hint reads an external hint.
	Hint
	// Ext2Felt writes the coefficients of an extension cell to memory.
	Ext2Felt
	// Poseidon2Permute applies the Poseidon2 permutation.
	Poseidon2Permute
	// Poseidon2Compress applies the Poseidon2 compression function.
	Poseidon2Compress
	// FriFold performs one FRI folding step.
	FriFold
)

// mnemonics for disassembly, indexed by opcode.
var mnemonics = [...]string{
	ImmF: "imm", ImmE: "eimm",
	AddF: "add", AddFI: "addi", SubF: "sub", SubFI: "subi", SubFIN: "subin",
	MulF: "mul", MulFI: "muli", DivF: "div", DivFI: "divi", DivFIN: "divin",
	AddE: "eadd", AddEI: "eaddi", SubE: "esub", SubEI: "esubi", SubEIN: "esubin",
	MulE: "emul", MulEI: "emuli", DivE: "ediv", DivEI: "edivi", DivEIN: "edivin",
	AddEF: "efadd", AddEIF: "efaddi", SubFE: "efsub", MulFE: "efmul", DivFE: "efdiv",
	LoadF: "lw", LoadFI: "lwi", LoadE: "le", LoadEI: "lei",
	StoreF: "sw", StoreFI: "swi", StoreE: "se", StoreEI: "sei",
	Beq: "beq", BeqI: "beqi", Bne: "bne", BneI: "bnei",
	BeqE: "ebeq", BeqEI: "ebeqi", BneE: "ebne", BneEI: "ebnei",
	BneInc: "bneinc", BneIInc: "bneiinc",
	Jump: "j", Break: "break", Trap: "trap",
	PrintV: "printv", PrintF: "printf", PrintE: "printe",
	HintBits: "hintbits", HintLen: "hintlen", Hint: "hint",
	Ext2Felt: "ext2felt", Poseidon2Permute: "poseidon2_permute",
	Poseidon2Compress: "poseidon2_compress", FriFold: "fri_fold",
}

func (p Opcode) String() string {
	if int(p) < len(mnemonics) {
		return mnemonics[p]
	}
	//
	return fmt.Sprintf("opcode(%d)", uint8(p))
}

// isBranch checks whether this opcode transfers control to a block label.
// Break is excluded since it must be rewritten before labels are bound.
func (p Opcode) isBranch() bool {
	return p >= Beq && p <= Jump
}
