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
package linear

// RelSym identifies a relation symbol, as used in generalised affine
// transformations.
type RelSym uint8

const (
	// LessThan represents <
	LessThan RelSym = iota
	// LessOrEqual represents <=
	LessOrEqual
	// Equal represents ==
	Equal
	// GreaterOrEqual represents >=
	GreaterOrEqual
	// GreaterThan represents >
	GreaterThan
	// NotEqual represents !=
	NotEqual
)

var relSymNames = []string{"<", "<=", "==", ">=", ">", "!="}

// ParseRelSym is the inverse of RelSym.String().
func ParseRelSym(s string) (RelSym, bool) {
	for i, name := range relSymNames {
		if name == s {
			return RelSym(i), true
		}
	}
	//
	return 0, false
}

// Reverse returns the symbol obtained by swapping the operands, such that "a <
// b" holds iff "b > a".
func (r RelSym) Reverse() RelSym {
	switch r {
	case LessThan:
		return GreaterThan
	case LessOrEqual:
		return GreaterOrEqual
	case GreaterOrEqual:
		return LessOrEqual
	case GreaterThan:
		return LessThan
	default:
		return r
	}
}

// IsStrict checks whether this is either < or >.
func (r RelSym) IsStrict() bool {
	return r == LessThan || r == GreaterThan
}

func (r RelSym) String() string {
	return relSymNames[r]
}
