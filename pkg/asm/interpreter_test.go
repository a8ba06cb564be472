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
	"math/big"

	"github.com/ClementWalter/sp1/pkg/ir"
	"github.com/ClementWalter/sp1/pkg/util/field/babybear"
)

// maxSteps bounds test executions, so a mislinked loop fails rather than
// hangs.
const maxSteps = 1_000_000

// machine is a minimal interpreter over assembled programs, sufficient for
// checking the behaviour of compiled control flow, arithmetic and memory
// traffic.  Every memory cell is extension wide; base field values live in
// the constant coefficient.
type machine struct {
	program *Program
	mem     map[int32]babybear.Ext
	trapped bool
}

func newMachine(program *Program) *machine {
	return &machine{
		program: program,
		mem:     make(map[int32]babybear.Ext),
	}
}

// compileAndRun compiles a sequence of operations and executes the result,
// returning the machine for state inspection.
func compileAndRun(ops []ir.Op) (*machine, error) {
	compiler := NewCompiler()
	compiler.Build(ops)
	//
	machine := newMachine(compiler.Compile())
	err := machine.run()
	//
	return machine, err
}

func (m *machine) felt(addr int32) babybear.Element {
	return m.mem[addr][0]
}

func (m *machine) setFelt(addr int32, v babybear.Element) {
	m.mem[addr] = babybear.FromBase(v)
}

// feltAsInt interprets a cell value as a memory address or index.
func feltAsInt(v babybear.Element) int64 {
	var b big.Int
	return v.BigInt(&b).Int64()
}

//nolint:gocyclo
func (m *machine) run() error {
	var (
		pc  uint
		one = babybear.One()
	)
	//
	for steps := 0; pc < uint(len(m.program.Instructions)); steps++ {
		if steps >= maxSteps {
			return fmt.Errorf("step limit exceeded at pc %d", pc)
		}
		//
		var (
			insn = m.program.Instructions[pc]
			next = pc + 1
			t    babybear.Element
			te   babybear.Ext
		)
		//
		switch insn.Opcode {
		case ImmF:
			m.setFelt(insn.A, insn.Imm)
		case ImmE:
			m.mem[insn.A] = insn.EImm
		case AddF:
			lhs, rhs := m.felt(insn.B), m.felt(insn.C)
			m.setFelt(insn.A, *t.Add(&lhs, &rhs))
		case AddFI:
			lhs := m.felt(insn.B)
			m.setFelt(insn.A, *t.Add(&lhs, &insn.Imm))
		case SubF:
			lhs, rhs := m.felt(insn.B), m.felt(insn.C)
			m.setFelt(insn.A, *t.Sub(&lhs, &rhs))
		case SubFI:
			lhs := m.felt(insn.B)
			m.setFelt(insn.A, *t.Sub(&lhs, &insn.Imm))
		case SubFIN:
			rhs := m.felt(insn.B)
			m.setFelt(insn.A, *t.Sub(&insn.Imm, &rhs))
		case MulF:
			lhs, rhs := m.felt(insn.B), m.felt(insn.C)
			m.setFelt(insn.A, *t.Mul(&lhs, &rhs))
		case MulFI:
			lhs := m.felt(insn.B)
			m.setFelt(insn.A, *t.Mul(&lhs, &insn.Imm))
		case DivF:
			lhs, rhs := m.felt(insn.B), m.felt(insn.C)
			m.setFelt(insn.A, *t.Div(&lhs, &rhs))
		case DivFI:
			lhs := m.felt(insn.B)
			m.setFelt(insn.A, *t.Div(&lhs, &insn.Imm))
		case DivFIN:
			rhs := m.felt(insn.B)
			m.setFelt(insn.A, *t.Div(&insn.Imm, &rhs))
		case AddE:
			lhs, rhs := m.mem[insn.B], m.mem[insn.C]
			m.mem[insn.A] = *te.Add(&lhs, &rhs)
		case AddEI:
			lhs := m.mem[insn.B]
			m.mem[insn.A] = *te.Add(&lhs, &insn.EImm)
		case SubE:
			lhs, rhs := m.mem[insn.B], m.mem[insn.C]
			m.mem[insn.A] = *te.Sub(&lhs, &rhs)
		case SubEI:
			lhs := m.mem[insn.B]
			m.mem[insn.A] = *te.Sub(&lhs, &insn.EImm)
		case SubEIN:
			rhs := m.mem[insn.B]
			m.mem[insn.A] = *te.Sub(&insn.EImm, &rhs)
		case MulE:
			lhs, rhs := m.mem[insn.B], m.mem[insn.C]
			m.mem[insn.A] = *te.Mul(&lhs, &rhs)
		case MulEI:
			lhs := m.mem[insn.B]
			m.mem[insn.A] = *te.Mul(&lhs, &insn.EImm)
		case DivE:
			lhs, rhs := m.mem[insn.B], m.mem[insn.C]
			m.mem[insn.A] = *te.Div(&lhs, &rhs)
		case DivEI:
			lhs := m.mem[insn.B]
			m.mem[insn.A] = *te.Div(&lhs, &insn.EImm)
		case DivEIN:
			rhs := m.mem[insn.B]
			m.mem[insn.A] = *te.Div(&insn.EImm, &rhs)
		case Beq:
			if lhs, rhs := m.felt(insn.A), m.felt(insn.B); lhs.Equal(&rhs) {
				next = insn.Target
			}
		case BeqI:
			if lhs := m.felt(insn.A); lhs.Equal(&insn.Imm) {
				next = insn.Target
			}
		case Bne:
			if lhs, rhs := m.felt(insn.A), m.felt(insn.B); !lhs.Equal(&rhs) {
				next = insn.Target
			}
		case BneI:
			if lhs := m.felt(insn.A); !lhs.Equal(&insn.Imm) {
				next = insn.Target
			}
		case BeqE:
			if lhs, rhs := m.mem[insn.A], m.mem[insn.B]; lhs.Equal(&rhs) {
				next = insn.Target
			}
		case BeqEI:
			if lhs := m.mem[insn.A]; lhs.Equal(&insn.EImm) {
				next = insn.Target
			}
		case BneE:
			if lhs, rhs := m.mem[insn.A], m.mem[insn.B]; !lhs.Equal(&rhs) {
				next = insn.Target
			}
		case BneEI:
			if lhs := m.mem[insn.A]; !lhs.Equal(&insn.EImm) {
				next = insn.Target
			}
		case BneInc:
			v := m.felt(insn.A)
			v.Add(&v, &one)
			m.setFelt(insn.A, v)
			//
			if rhs := m.felt(insn.B); !v.Equal(&rhs) {
				next = insn.Target
			}
		case BneIInc:
			v := m.felt(insn.A)
			v.Add(&v, &one)
			m.setFelt(insn.A, v)
			//
			if !v.Equal(&insn.Imm) {
				next = insn.Target
			}
		case Jump:
			next = insn.Target
		case Trap:
			m.trapped = true
			return nil
		case LoadF, LoadE:
			index := feltAsInt(m.felt(insn.C))
			m.mem[insn.A] = m.mem[m.effectiveAddress(insn.B, index, insn)]
		case LoadFI, LoadEI:
			index := feltAsInt(insn.Imm)
			m.mem[insn.A] = m.mem[m.effectiveAddress(insn.B, index, insn)]
		case StoreF, StoreE:
			index := feltAsInt(m.felt(insn.C))
			m.mem[m.effectiveAddress(insn.A, index, insn)] = m.mem[insn.B]
		case StoreFI, StoreEI:
			index := feltAsInt(insn.Imm)
			m.mem[m.effectiveAddress(insn.A, index, insn)] = m.mem[insn.B]
		case PrintV, PrintF, PrintE:
			// Ignored by the test machine.
		default:
			return fmt.Errorf("opcode %s not supported by test machine", insn.Opcode)
		}
		//
		pc = next
	}
	//
	return nil
}

// effectiveAddress computes ptr + index*size + offset for a memory access,
// where ptr is the value held at the given cell.
func (m *machine) effectiveAddress(ptrAddr int32, index int64, insn Instruction) int32 {
	base := feltAsInt(m.felt(ptrAddr))
	return int32(base + index*feltAsInt(insn.Size) + feltAsInt(insn.Offset))
}
