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

import "github.com/ClementWalter/sp1/pkg/ir"

// The frame layout reserves a small header below the frame pointer, followed
// by one slot per symbolic value.  Value slots are assigned by a pure
// function of (kind, index): every kind owns one residue class modulo the
// stride, so no two distinct values ever alias.

const (
	// Zero is the address of the always-zero cell.
	Zero int32 = 0
	// HeapPtr is the address of the heap pointer cell.
	HeapPtr int32 = -4
	// A0 is the address of the scratch cell used when allocating
	// variable-length regions.
	A0 int32 = -8
	// StackStartOffset is the offset below the frame pointer at which value
	// slots begin.
	StackStartOffset int32 = 16
	// StackSize is the number of cells reserved for the frame; the heap
	// begins immediately after.
	StackSize = 1 << 24
	// stride between consecutive slots of the same kind.
	stride int32 = 3
)

// FpVar returns the frame address of a var.
func FpVar(v ir.Var) int32 {
	return -(int32(v)*stride + 1 + StackStartOffset)
}

// FpFelt returns the frame address of a felt.
func FpFelt(f ir.Felt) int32 {
	return -(int32(f)*stride + 2 + StackStartOffset)
}

// FpExt returns the frame address of an extension element.
func FpExt(e ir.Ext) int32 {
	return -(int32(e)*stride + StackStartOffset)
}

// FpPtr returns the frame address of a pointer.
func FpPtr(p ir.Ptr) int32 {
	return FpVar(p.Address)
}
