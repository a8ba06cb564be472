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
)

// Program is the final artifact of compilation: a flat, address-resolved
// instruction list together with a table mapping function entry point names
// to absolute addresses.  It is immutable and is the sole interface handed
// to the downstream interpreter.
type Program struct {
	Instructions []Instruction   `json:"instructions"`
	Labels       map[string]uint `json:"labels"`
}

func (p *Program) String() string {
	var builder strings.Builder
	// Invert the label table for display.
	names := make(map[uint]string, len(p.Labels))
	//
	for name, address := range p.Labels {
		names[address] = name
	}
	//
	for address, insn := range p.Instructions {
		if name, ok := names[uint(address)]; ok {
			builder.WriteString(fmt.Sprintf("%s:\n", name))
		}
		//
		builder.WriteString(fmt.Sprintf("%04d\t%s\n", address, insn.String()))
	}
	//
	return builder.String()
}
