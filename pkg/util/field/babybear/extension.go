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
package babybear

import (
	"fmt"
	"math/big"
)

// Degree of the extension field over the base field.
const Degree = 4

// Ext is an element of the quartic extension F[u] / (u⁴ - 11) of the BabyBear
// field, with coefficients stored in ascending powers of u.
type Ext [Degree]Element

// qnr is the quartic non-residue defining the extension.
var qnr = NewElement(11)

// frobGen is w^((p-1)/4), the image of u under the Frobenius endomorphism
// being frobGen * u.
var frobGen Element

func init() {
	exp := new(big.Int).Sub(Modulus(), big.NewInt(1))
	exp.Rsh(exp, 2)
	frobGen.Exp(qnr, exp)
}

// NewExt constructs an extension element from its four coefficients.
func NewExt(a, b, c, d uint64) Ext {
	return Ext{NewElement(a), NewElement(b), NewElement(c), NewElement(d)}
}

// FromBase embeds a base field element into the extension.
func FromBase(x Element) Ext {
	var z Ext
	z[0] = x
	//
	return z
}

// ZeroExt returns the additive identity of the extension.
func ZeroExt() Ext {
	var z Ext
	return z
}

// OneExt returns the multiplicative identity of the extension.
func OneExt() Ext {
	return FromBase(One())
}

// SetZero sets z to zero, returning z.
func (z *Ext) SetZero() *Ext {
	*z = Ext{}
	return z
}

// SetOne sets z to one, returning z.
func (z *Ext) SetOne() *Ext {
	*z = OneExt()
	return z
}

// Add sets z to x + y, returning z.
func (z *Ext) Add(x, y *Ext) *Ext {
	for i := 0; i < Degree; i++ {
		z[i].Add(&x[i], &y[i])
	}
	//
	return z
}

// Sub sets z to x - y, returning z.
func (z *Ext) Sub(x, y *Ext) *Ext {
	for i := 0; i < Degree; i++ {
		z[i].Sub(&x[i], &y[i])
	}
	//
	return z
}

// Neg sets z to -x, returning z.
func (z *Ext) Neg(x *Ext) *Ext {
	for i := 0; i < Degree; i++ {
		z[i].Neg(&x[i])
	}
	//
	return z
}

// Mul sets z to x * y, returning z.  Products of powers at or above the
// degree wrap around scaled by the non-residue.
func (z *Ext) Mul(x, y *Ext) *Ext {
	var acc Ext
	//
	for i := 0; i < Degree; i++ {
		for j := 0; j < Degree; j++ {
			var t Element
			//
			t.Mul(&x[i], &y[j])
			//
			if i+j >= Degree {
				t.Mul(&t, &qnr)
				acc[i+j-Degree].Add(&acc[i+j-Degree], &t)
			} else {
				acc[i+j].Add(&acc[i+j], &t)
			}
		}
	}
	//
	*z = acc
	//
	return z
}

// MulByBase sets z to x scaled by the base field element y, returning z.
func (z *Ext) MulByBase(x *Ext, y *Element) *Ext {
	for i := 0; i < Degree; i++ {
		z[i].Mul(&x[i], y)
	}
	//
	return z
}

// Inverse sets z to 1/x, returning z.  The inverse of zero is zero.  This uses
// the norm map: multiplying x by its three Frobenius conjugates lands in the
// base field, where inversion is cheap.
func (z *Ext) Inverse(x *Ext) *Ext {
	if x.IsZero() {
		return z.SetZero()
	}
	//
	var (
		f1 = frobenius(x, 1)
		f2 = frobenius(x, 2)
		f3 = frobenius(x, 3)
		t  Ext
		n  Ext
	)
	//
	t.Mul(&f1, &f2)
	t.Mul(&t, &f3)
	// Norm of x, held in the constant coefficient.
	n.Mul(x, &t)
	//
	var ninv Element
	//
	ninv.Inverse(&n[0])
	//
	return z.MulByBase(&t, &ninv)
}

// Div sets z to x / y, returning z.
func (z *Ext) Div(x, y *Ext) *Ext {
	var yinv Ext
	//
	yinv.Inverse(y)
	//
	return z.Mul(x, &yinv)
}

// Equal checks whether z and x represent the same extension element.
func (z *Ext) Equal(x *Ext) bool {
	for i := 0; i < Degree; i++ {
		if !z[i].Equal(&x[i]) {
			return false
		}
	}
	//
	return true
}

// IsZero checks whether z is the additive identity.
func (z *Ext) IsZero() bool {
	for i := 0; i < Degree; i++ {
		if !z[i].IsZero() {
			return false
		}
	}
	//
	return true
}

func (z Ext) String() string {
	return fmt.Sprintf("[%s, %s, %s, %s]", z[0].String(), z[1].String(), z[2].String(), z[3].String())
}

// frobenius applies the k-th power of the Frobenius endomorphism, which maps
// the i-th coefficient to itself scaled by frobGen^(i*k).
func frobenius(x *Ext, k uint) Ext {
	var (
		z     Ext
		gk    Element
		scale Element
	)
	//
	gk.Exp(frobGen, big.NewInt(int64(k)))
	scale.SetOne()
	//
	for i := 0; i < Degree; i++ {
		z[i].Mul(&x[i], &scale)
		scale.Mul(&scale, &gk)
	}
	//
	return z
}
