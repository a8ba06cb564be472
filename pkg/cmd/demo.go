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
package cmd

import (
	"github.com/ClementWalter/sp1/pkg/ir"
	"github.com/ClementWalter/sp1/pkg/util/field/babybear"
)

// demoCircuit constructs a small circuit exercising every structural feature
// of the DSL: field and extension arithmetic, conditionals, nested loops
// with early exit, heap allocation and memory traffic.
func demoCircuit() []ir.Op {
	var (
		builder = ir.NewBuilder()
		x       = builder.Felt()
		y       = builder.Felt()
		sum     = builder.Felt()
		e       = builder.Ext()
		esq     = builder.Ext()
		ptr     = builder.Ptr()
		i       = builder.Var()
		j       = builder.Var()
		n       = builder.Var()
		cell    = builder.Felt()
	)
	//
	builder.Push(
		ir.ImmFelt{Dst: x, Value: babybear.NewElement(7)},
		ir.ImmFelt{Dst: y, Value: babybear.NewElement(35)},
		ir.DivF{Dst: sum, Lhs: y, Rhs: x},
		ir.AssertEqFI{Lhs: sum, Rhs: babybear.NewElement(5)},
		// Extension arithmetic
		ir.ImmExt{Dst: e, Value: babybear.NewExt(1, 2, 3, 4)},
		ir.MulE{Dst: esq, Lhs: e, Rhs: e},
		// A scratch region of eight felts
		ir.Alloc{Ptr: ptr, Len: ir.Const(8), Size: 1},
		ir.ImmVar{Dst: n, Value: babybear.NewElement(8)},
		// Fill the region, stopping early half way through.
		ir.For{
			Start: ir.Const(0), End: ir.FromVar(n), Step: 1, LoopVar: i,
			Body: []ir.Op{
				ir.IfEqI{Lhs: i, Rhs: babybear.NewElement(4), Then: []ir.Op{ir.Break{}}},
				ir.StoreF{
					Ptr: ptr, Src: x,
					Index: ir.MemIndex{Index: ir.FromVar(i), Size: 1},
				},
				// An inner loop accumulating into sum.
				ir.For{
					Start: ir.Const(0), End: ir.Const(2), Step: 1, LoopVar: j,
					Body: []ir.Op{
						ir.AddF{Dst: sum, Lhs: sum, Rhs: x},
					},
				},
			},
		},
		ir.LoadF{Dst: cell, Ptr: ptr, Index: ir.MemIndex{Index: ir.Const(3), Size: 1}},
		ir.AssertEqF{Lhs: cell, Rhs: x},
		ir.PrintF{Src: sum},
	)
	//
	return builder.Ops()
}
