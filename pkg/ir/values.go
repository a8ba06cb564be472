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

// Package ir defines the operation vocabulary consumed by the assembly
// compiler.  Programs are ordered sequences of operations over symbolic
// values; each value is identified by its kind and a per-kind index assigned
// once at construction time and never re-bound.
package ir

// Var is a symbolic machine word, used for loop counters, lengths and
// pointers.
type Var uint32

// Felt is a symbolic base field element.
type Felt uint32

// Ext is a symbolic extension field element.
type Ext uint32

// Ptr is a var whose runtime value is a heap address.
type Ptr struct {
	Address Var
}

// Usize is a quantity which is either a compile-time constant or held in a
// var at runtime.
type Usize struct {
	value uint32
	v     Var
	isVar bool
}

// Const constructs a compile-time constant Usize.
func Const(n uint32) Usize {
	return Usize{value: n}
}

// FromVar constructs a Usize held in the given var.
func FromVar(v Var) Usize {
	return Usize{v: v, isVar: true}
}

// IsVar checks whether this quantity is held in a var.
func (p Usize) IsVar() bool {
	return p.isVar
}

// Value returns the constant value of this quantity.
func (p Usize) Value() uint32 {
	if p.isVar {
		panic("usize is not a constant")
	}
	//
	return p.value
}

// Var returns the var holding this quantity.
func (p Usize) Var() Var {
	if !p.isVar {
		panic("usize is not a var")
	}
	//
	return p.v
}

// Array is either backed by the heap (dynamic) or statically unrolled by the
// builder (fixed).  Only dynamic arrays have a runtime representation.
type Array interface {
	isArray()
}

// Dyn is a heap-backed array described by a pointer and a length.
type Dyn struct {
	Ptr Ptr
	Len Usize
}

// Fixed is a statically sized array whose elements are unrolled into
// individual values and never touch the heap.
type Fixed struct {
	Size uint32
}

func (Dyn) isArray()   {}
func (Fixed) isArray() {}

// MemIndex describes how a load or store indexes into an array: the element
// index (constant or var) is scaled by the element size, then the constant
// offset is added.
type MemIndex struct {
	Index  Usize
	Offset uint32
	Size   uint32
}
