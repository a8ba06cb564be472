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
	"strings"

	log "github.com/sirupsen/logrus"
)

// AssemblyCode is the frozen output of a compilation: the block arena plus
// the names of blocks which are function entry points.  Blocks are never
// merged, reordered or removed at this stage; the only remaining step is
// binding labels to absolute addresses.
type AssemblyCode struct {
	Blocks []BasicBlock
	// Labels maps block labels to entry point names.
	Labels map[uint]string
}

// NewAssemblyCode constructs an assembly artifact from a block arena and an
// entry point table.
func NewAssemblyCode(blocks []BasicBlock, labels map[uint]string) AssemblyCode {
	return AssemblyCode{Blocks: blocks, Labels: labels}
}

// Machine binds every block-relative label to an absolute instruction
// address, producing the flat program consumed by the downstream
// interpreter.  Any reference to a label outside the block list aborts: a
// dangling label is a compiler defect and must never surface at runtime.
func (p AssemblyCode) Machine() *Program {
	var (
		offsets = make([]uint, len(p.Blocks))
		total   uint
	)
	//
	for i, block := range p.Blocks {
		offsets[i] = total
		total += uint(len(block.Instructions))
	}
	//
	instructions := make([]Instruction, 0, total)
	//
	for _, block := range p.Blocks {
		for _, insn := range block.Instructions {
			insn.bind(offsets)
			instructions = append(instructions, insn)
		}
	}
	//
	labels := make(map[string]uint, len(p.Labels))
	//
	for label, name := range p.Labels {
		if label >= uint(len(p.Blocks)) {
			panic(fmt.Sprintf("dangling label %d (function %s)", label, name))
		}
		//
		labels[name] = offsets[label]
	}
	//
	log.Debugf("assembled %d blocks into %d instructions", len(p.Blocks), total)
	//
	return &Program{Instructions: instructions, Labels: labels}
}

func (p AssemblyCode) String() string {
	var builder strings.Builder
	//
	for i, block := range p.Blocks {
		if name, ok := p.Labels[uint(i)]; ok {
			builder.WriteString(fmt.Sprintf("%s:\n", name))
		}
		//
		builder.WriteString(fmt.Sprintf(".L%d:\n", i))
		//
		for _, insn := range block.Instructions {
			builder.WriteString(fmt.Sprintf("\t%s\n", insn.String()))
		}
	}
	//
	return builder.String()
}
