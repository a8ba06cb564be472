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
package ir

import (
	"github.com/ClementWalter/sp1/pkg/util/field/babybear"
)

// Op is a single operation of the verification DSL.  The vocabulary is
// closed: the compiler dispatches exhaustively over these types and aborts on
// anything else.
type Op interface {
	isOp()
}

// ============================================================================
// Immediates
// ============================================================================

// ImmVar assigns a constant to a var.
type ImmVar struct {
	Dst   Var
	Value babybear.Element
}

// ImmFelt assigns a constant to a felt.
type ImmFelt struct {
	Dst   Felt
	Value babybear.Element
}

// ImmExt assigns a constant to an extension element.
type ImmExt struct {
	Dst   Ext
	Value babybear.Ext
}

// ============================================================================
// Var arithmetic
// ============================================================================

// AddV computes Dst = Lhs + Rhs.
type AddV struct{ Dst, Lhs, Rhs Var }

// AddVI computes Dst = Lhs + Rhs where Rhs is constant.
type AddVI struct {
	Dst, Lhs Var
	Rhs      babybear.Element
}

// SubV computes Dst = Lhs - Rhs.
type SubV struct{ Dst, Lhs, Rhs Var }

// SubVI computes Dst = Lhs - Rhs where Rhs is constant.
type SubVI struct {
	Dst, Lhs Var
	Rhs      babybear.Element
}

// SubVIN computes Dst = Lhs - Rhs where Lhs is constant.
type SubVIN struct {
	Dst Var
	Lhs babybear.Element
	Rhs Var
}

// MulV computes Dst = Lhs * Rhs.
type MulV struct{ Dst, Lhs, Rhs Var }

// MulVI computes Dst = Lhs * Rhs where Rhs is constant.
type MulVI struct {
	Dst, Lhs Var
	Rhs      babybear.Element
}

// NegV computes Dst = -Src.
type NegV struct{ Dst, Src Var }

// InvV computes Dst = 1 / Src.
type InvV struct{ Dst, Src Var }

// ============================================================================
// Felt arithmetic
// ============================================================================

// AddF computes Dst = Lhs + Rhs.
type AddF struct{ Dst, Lhs, Rhs Felt }

// AddFI computes Dst = Lhs + Rhs where Rhs is constant.
type AddFI struct {
	Dst, Lhs Felt
	Rhs      babybear.Element
}

// SubF computes Dst = Lhs - Rhs.
type SubF struct{ Dst, Lhs, Rhs Felt }

// SubFI computes Dst = Lhs - Rhs where Rhs is constant.
type SubFI struct {
	Dst, Lhs Felt
	Rhs      babybear.Element
}

// SubFIN computes Dst = Lhs - Rhs where Lhs is constant.
type SubFIN struct {
	Dst Felt
	Lhs babybear.Element
	Rhs Felt
}

// MulF computes Dst = Lhs * Rhs.
type MulF struct{ Dst, Lhs, Rhs Felt }

// MulFI computes Dst = Lhs * Rhs where Rhs is constant.
type MulFI struct {
	Dst, Lhs Felt
	Rhs      babybear.Element
}

// DivF computes Dst = Lhs / Rhs.
type DivF struct{ Dst, Lhs, Rhs Felt }

// DivFI computes Dst = Lhs / Rhs where Rhs is constant.
type DivFI struct {
	Dst, Lhs Felt
	Rhs      babybear.Element
}

// DivFIN computes Dst = Lhs / Rhs where Lhs is constant.
type DivFIN struct {
	Dst Felt
	Lhs babybear.Element
	Rhs Felt
}

// NegF computes Dst = -Src.
type NegF struct{ Dst, Src Felt }

// InvF computes Dst = 1 / Src.
type InvF struct{ Dst, Src Felt }

// ============================================================================
// Ext arithmetic
// ============================================================================

// AddE computes Dst = Lhs + Rhs.
type AddE struct{ Dst, Lhs, Rhs Ext }

// AddEI computes Dst = Lhs + Rhs where Rhs is constant.
type AddEI struct {
	Dst, Lhs Ext
	Rhs      babybear.Ext
}

// SubE computes Dst = Lhs - Rhs.
type SubE struct{ Dst, Lhs, Rhs Ext }

// SubEI computes Dst = Lhs - Rhs where Rhs is constant.
type SubEI struct {
	Dst, Lhs Ext
	Rhs      babybear.Ext
}

// SubEIN computes Dst = Lhs - Rhs where Lhs is constant.
type SubEIN struct {
	Dst Ext
	Lhs babybear.Ext
	Rhs Ext
}

// MulE computes Dst = Lhs * Rhs.
type MulE struct{ Dst, Lhs, Rhs Ext }

// MulEI computes Dst = Lhs * Rhs where Rhs is constant.
type MulEI struct {
	Dst, Lhs Ext
	Rhs      babybear.Ext
}

// DivE computes Dst = Lhs / Rhs.
type DivE struct{ Dst, Lhs, Rhs Ext }

// DivEI computes Dst = Lhs / Rhs where Rhs is constant.
type DivEI struct {
	Dst, Lhs Ext
	Rhs      babybear.Ext
}

// DivEIN computes Dst = Lhs / Rhs where Lhs is constant.
type DivEIN struct {
	Dst Ext
	Lhs babybear.Ext
	Rhs Ext
}

// NegE computes Dst = -Src.
type NegE struct{ Dst, Src Ext }

// InvE computes Dst = 1 / Src.
type InvE struct{ Dst, Src Ext }

// ============================================================================
// Mixed Ext / Felt arithmetic
// ============================================================================

// AddEF computes Dst = Lhs + Rhs where Rhs is a felt.
type AddEF struct {
	Dst, Lhs Ext
	Rhs      Felt
}

// AddEFI computes Dst = Lhs + Rhs where Rhs is a felt constant.
type AddEFI struct {
	Dst, Lhs Ext
	Rhs      babybear.Element
}

// AddEFFI computes Dst = Lhs + Rhs where Lhs is a felt and Rhs an extension
// constant.
type AddEFFI struct {
	Dst Ext
	Lhs Felt
	Rhs babybear.Ext
}

// SubEF computes Dst = Lhs - Rhs where Rhs is a felt.
type SubEF struct {
	Dst, Lhs Ext
	Rhs      Felt
}

// SubEFI computes Dst = Lhs - Rhs where Rhs is a felt constant.
type SubEFI struct {
	Dst, Lhs Ext
	Rhs      babybear.Element
}

// MulEF computes Dst = Lhs * Rhs where Rhs is a felt.
type MulEF struct {
	Dst, Lhs Ext
	Rhs      Felt
}

// MulEFI computes Dst = Lhs * Rhs where Rhs is a felt constant.
type MulEFI struct {
	Dst, Lhs Ext
	Rhs      babybear.Element
}

// DivEF computes Dst = Lhs / Rhs where Rhs is a felt.
type DivEF struct {
	Dst, Lhs Ext
	Rhs      Felt
}

// DivEFI computes Dst = Lhs / Rhs where Rhs is a felt constant.
type DivEFI struct {
	Dst, Lhs Ext
	Rhs      babybear.Element
}

// DivEFIN computes Dst = Lhs / Rhs where Lhs is a felt constant.
type DivEFIN struct {
	Dst Ext
	Lhs babybear.Element
	Rhs Ext
}

// ============================================================================
// Control flow
// ============================================================================

// IfEq executes Then when Lhs == Rhs, and Else otherwise.
type IfEq struct {
	Lhs, Rhs   Var
	Then, Else []Op
}

// IfNe executes Then when Lhs != Rhs, and Else otherwise.
type IfNe struct {
	Lhs, Rhs   Var
	Then, Else []Op
}

// IfEqI executes Then when Lhs equals the given constant, and Else otherwise.
type IfEqI struct {
	Lhs        Var
	Rhs        babybear.Element
	Then, Else []Op
}

// IfNeI executes Then when Lhs differs from the given constant, and Else
// otherwise.
type IfNeI struct {
	Lhs        Var
	Rhs        babybear.Element
	Then, Else []Op
}

// For executes Body with LoopVar ranging over [Start, End) in increments of
// Step.  Ranges with End below Start are undefined behaviour.
type For struct {
	Start, End Usize
	Step       uint32
	LoopVar    Var
	Body       []Op
}

// Break transfers control past the end of the innermost enclosing loop.
type Break struct{}

// Error aborts execution of the compiled program.
type Error struct{}

// ============================================================================
// Assertions
// ============================================================================

// AssertEqV aborts execution unless Lhs == Rhs.
type AssertEqV struct{ Lhs, Rhs Var }

// AssertNeV aborts execution unless Lhs != Rhs.
type AssertNeV struct{ Lhs, Rhs Var }

// AssertEqVI aborts execution unless Lhs equals the given constant.
type AssertEqVI struct {
	Lhs Var
	Rhs babybear.Element
}

// AssertNeVI aborts execution unless Lhs differs from the given constant.
type AssertNeVI struct {
	Lhs Var
	Rhs babybear.Element
}

// AssertEqF aborts execution unless Lhs == Rhs.
type AssertEqF struct{ Lhs, Rhs Felt }

// AssertNeF aborts execution unless Lhs != Rhs.
type AssertNeF struct{ Lhs, Rhs Felt }

// AssertEqFI aborts execution unless Lhs equals the given constant.
type AssertEqFI struct {
	Lhs Felt
	Rhs babybear.Element
}

// AssertNeFI aborts execution unless Lhs differs from the given constant.
type AssertNeFI struct {
	Lhs Felt
	Rhs babybear.Element
}

// AssertEqE aborts execution unless Lhs == Rhs.
type AssertEqE struct{ Lhs, Rhs Ext }

// AssertNeE aborts execution unless Lhs != Rhs.
type AssertNeE struct{ Lhs, Rhs Ext }

// AssertEqEI aborts execution unless Lhs equals the given constant.
type AssertEqEI struct {
	Lhs Ext
	Rhs babybear.Ext
}

// AssertNeEI aborts execution unless Lhs differs from the given constant.
type AssertNeEI struct {
	Lhs Ext
	Rhs babybear.Ext
}

// ============================================================================
// Memory
// ============================================================================

// Alloc binds Ptr to a fresh heap region of Len elements of the given size.
type Alloc struct {
	Ptr  Ptr
	Len  Usize
	Size uint32
}

// LoadV loads a var from memory.
type LoadV struct {
	Dst   Var
	Ptr   Ptr
	Index MemIndex
}

// LoadF loads a felt from memory.
type LoadF struct {
	Dst   Felt
	Ptr   Ptr
	Index MemIndex
}

// LoadE loads an extension element from memory.
type LoadE struct {
	Dst   Ext
	Ptr   Ptr
	Index MemIndex
}

// StoreV stores a var to memory.
type StoreV struct {
	Ptr   Ptr
	Src   Var
	Index MemIndex
}

// StoreF stores a felt to memory.
type StoreF struct {
	Ptr   Ptr
	Src   Felt
	Index MemIndex
}

// StoreE stores an extension element to memory.
type StoreE struct {
	Ptr   Ptr
	Src   Ext
	Index MemIndex
}

// ============================================================================
// I/O and hints
// ============================================================================

// PrintV prints a var.
type PrintV struct{ Src Var }

// PrintF prints a felt.
type PrintF struct{ Src Felt }

// PrintE prints an extension element.
type PrintE struct{ Src Ext }

// HintLen reads the length of the next external hint into a var.
type HintLen struct{ Dst Var }

// HintVars reads externally hinted vars into a dynamic array.
type HintVars struct{ Dst Array }

// HintFelts reads externally hinted felts into a dynamic array.
type HintFelts struct{ Dst Array }

// HintExts reads externally hinted extension elements into a dynamic array.
type HintExts struct{ Dst Array }

// HintBitsU decomposes a usize into externally hinted bits.
type HintBitsU struct {
	Dst Array
	Src Usize
}

// HintBitsF decomposes a felt into externally hinted bits.
type HintBitsF struct {
	Dst Array
	Src Felt
}

// HintBitsV decomposes a var into externally hinted bits.
type HintBitsV struct {
	Dst Array
	Src Var
}

// ============================================================================
// Cryptographic primitives
// ============================================================================

// Poseidon2Permute applies the Poseidon2 permutation to Src, writing the
// result to Dst.
type Poseidon2Permute struct {
	Dst, Src Array
}

// Poseidon2Compress compresses Left and Right into Result.
type Poseidon2Compress struct {
	Result, Left, Right Array
}

// Ext2Felt decomposes an extension element into its base field coefficients.
type Ext2Felt struct {
	Dst Array
	Src Ext
}

// FriFold performs one FRI folding step over the given input memory.
type FriFold struct {
	M     Var
	Input Array
}

// ============================================================================
// Operations without a machine lowering
// ============================================================================

// Num2BitsF decomposes a felt into bits.  Unsupported by this compiler.
type Num2BitsF struct {
	Dst Array
	Src Felt
}

// Num2BitsV decomposes a var into bits.  Unsupported by this compiler.
type Num2BitsV struct {
	Dst Array
	Src Var
}

// ReverseBitsLen reverses the low bits of a var.  Unsupported by this
// compiler.
type ReverseBitsLen struct {
	Dst, Src Var
	Len      Usize
}

// ExpUsizeV raises a var to a usize power.  Unsupported by this compiler.
type ExpUsizeV struct {
	Dst, Src Var
	Power    Usize
}

// ExpUsizeF raises a felt to a usize power.  Unsupported by this compiler.
type ExpUsizeF struct {
	Dst, Src Felt
	Power    Usize
}

// TwoAdicGenerator produces a generator of the two-adic subgroup of a given
// order.  Unsupported by this compiler.
type TwoAdicGenerator struct {
	Dst  Felt
	Bits Usize
}

func (ImmVar) isOp()  {}
func (ImmFelt) isOp() {}
func (ImmExt) isOp()  {}

func (AddV) isOp()   {}
func (AddVI) isOp()  {}
func (SubV) isOp()   {}
func (SubVI) isOp()  {}
func (SubVIN) isOp() {}
func (MulV) isOp()   {}
func (MulVI) isOp()  {}
func (NegV) isOp()   {}
func (InvV) isOp()   {}

func (AddF) isOp()   {}
func (AddFI) isOp()  {}
func (SubF) isOp()   {}
func (SubFI) isOp()  {}
func (SubFIN) isOp() {}
func (MulF) isOp()   {}
func (MulFI) isOp()  {}
func (DivF) isOp()   {}
func (DivFI) isOp()  {}
func (DivFIN) isOp() {}
func (NegF) isOp()   {}
func (InvF) isOp()   {}

func (AddE) isOp()   {}
func (AddEI) isOp()  {}
func (SubE) isOp()   {}
func (SubEI) isOp()  {}
func (SubEIN) isOp() {}
func (MulE) isOp()   {}
func (MulEI) isOp()  {}
func (DivE) isOp()   {}
func (DivEI) isOp()  {}
func (DivEIN) isOp() {}
func (NegE) isOp()   {}
func (InvE) isOp()   {}

func (AddEF) isOp()   {}
func (AddEFI) isOp()  {}
func (AddEFFI) isOp() {}
func (SubEF) isOp()   {}
func (SubEFI) isOp()  {}
func (MulEF) isOp()   {}
func (MulEFI) isOp()  {}
func (DivEF) isOp()   {}
func (DivEFI) isOp()  {}
func (DivEFIN) isOp() {}

func (IfEq) isOp()  {}
func (IfNe) isOp()  {}
func (IfEqI) isOp() {}
func (IfNeI) isOp() {}
func (For) isOp()   {}
func (Break) isOp() {}
func (Error) isOp() {}

func (AssertEqV) isOp()  {}
func (AssertNeV) isOp()  {}
func (AssertEqVI) isOp() {}
func (AssertNeVI) isOp() {}
func (AssertEqF) isOp()  {}
func (AssertNeF) isOp()  {}
func (AssertEqFI) isOp() {}
func (AssertNeFI) isOp() {}
func (AssertEqE) isOp()  {}
func (AssertNeE) isOp()  {}
func (AssertEqEI) isOp() {}
func (AssertNeEI) isOp() {}

func (Alloc) isOp()  {}
func (LoadV) isOp()  {}
func (LoadF) isOp()  {}
func (LoadE) isOp()  {}
func (StoreV) isOp() {}
func (StoreF) isOp() {}
func (StoreE) isOp() {}

func (PrintV) isOp()    {}
func (PrintF) isOp()    {}
func (PrintE) isOp()    {}
func (HintLen) isOp()   {}
func (HintVars) isOp()  {}
func (HintFelts) isOp() {}
func (HintExts) isOp()  {}
func (HintBitsU) isOp() {}
func (HintBitsF) isOp() {}
func (HintBitsV) isOp() {}

func (Poseidon2Permute) isOp()  {}
func (Poseidon2Compress) isOp() {}
func (Ext2Felt) isOp()          {}
func (FriFold) isOp()           {}

func (Num2BitsF) isOp()        {}
func (Num2BitsV) isOp()        {}
func (ReverseBitsLen) isOp()   {}
func (ExpUsizeV) isOp()        {}
func (ExpUsizeF) isOp()        {}
func (TwoAdicGenerator) isOp() {}
