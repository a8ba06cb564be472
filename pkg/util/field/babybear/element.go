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
	"math/big"

	fr "github.com/consensys/gnark-crypto/field/babybear"
)

// Element is an element of the BabyBear prime field (p = 15 * 2²⁷ + 1).
type Element = fr.Element

// NewElement constructs a field element from a given uint64.
func NewElement(v uint64) Element {
	return fr.NewElement(v)
}

// Zero returns the additive identity of the field.
func Zero() Element {
	var zero Element
	return zero
}

// One returns the multiplicative identity of the field.
func One() Element {
	var one Element
	one.SetOne()
	//
	return one
}

// Modulus returns the field modulus as a big integer.
func Modulus() *big.Int {
	return fr.Modulus()
}
