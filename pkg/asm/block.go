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

// BasicBlock is a straight-line instruction sequence with control transfer
// only at its end.  Blocks live in an append-only arena held by the compiler;
// a block's index in that arena is its label.  Physically adjacent blocks
// fall through unless an explicit branch or jump says otherwise.
type BasicBlock struct {
	Instructions []Instruction
}

// Push appends an instruction to this block.
func (p *BasicBlock) Push(insn Instruction) {
	p.Instructions = append(p.Instructions, insn)
}
