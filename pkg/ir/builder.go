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

// Builder mints symbolic values and accumulates the operation sequence of a
// program under construction.  Indices increase monotonically per kind, which
// is what guarantees every value a distinct frame slot downstream.
type Builder struct {
	nvars  uint32
	nfelts uint32
	nexts  uint32
	ops    []Op
}

// NewBuilder constructs an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Var mints a fresh var.
func (p *Builder) Var() Var {
	v := Var(p.nvars)
	p.nvars++
	//
	return v
}

// Felt mints a fresh felt.
func (p *Builder) Felt() Felt {
	f := Felt(p.nfelts)
	p.nfelts++
	//
	return f
}

// Ext mints a fresh extension element.
func (p *Builder) Ext() Ext {
	e := Ext(p.nexts)
	p.nexts++
	//
	return e
}

// Ptr mints a fresh pointer, backed by a fresh var.
func (p *Builder) Ptr() Ptr {
	return Ptr{Address: p.Var()}
}

// Push appends one or more operations to the program under construction.
func (p *Builder) Push(ops ...Op) {
	p.ops = append(p.ops, ops...)
}

// Ops returns the operation sequence constructed so far.
func (p *Builder) Ops() []Op {
	return p.ops
}
