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

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Variable identifies a dimension of a vector space by its (zero-based)
// index.  Variable(0) is the first dimension, and so on.
type Variable uint

// Id returns the zero-based index of this variable.
func (v Variable) Id() uint {
	return uint(v)
}

// SpaceDimension returns the least space dimension in which this variable is
// meaningful.
func (v Variable) SpaceDimension() uint {
	return uint(v) + 1
}

// String returns the conventional name of this variable, where the first 26
// variables are named A to Z, the next 26 are named A1 to Z1, and so on.
func (v Variable) String() string {
	letter := rune('A' + v%26)
	//
	if n := v / 26; n != 0 {
		return fmt.Sprintf("%c%d", letter, n)
	}
	//
	return string(letter)
}

// ParseVariable is the inverse of Variable.String(), returning false if the
// given name does not follow the naming convention.
func ParseVariable(name string) (Variable, bool) {
	if len(name) == 0 || name[0] < 'A' || name[0] > 'Z' {
		return 0, false
	}
	//
	var n uint
	//
	if len(name) > 1 {
		if _, err := fmt.Sscanf(name[1:], "%d", &n); err != nil || fmt.Sprint(n) != name[1:] || n == 0 {
			return 0, false
		}
	}
	//
	return Variable(n*26 + uint(name[0]-'A')), true
}

// VarSet represents a set of variables (e.g. the set of dimensions to be
// removed from a shape).
type VarSet struct {
	bits *bitset.BitSet
}

// NewVarSet constructs a variable set containing the given variables.
func NewVarSet(vars ...Variable) VarSet {
	s := VarSet{bitset.New(0)}
	//
	for _, v := range vars {
		s.Insert(v)
	}
	//
	return s
}

// Insert a variable into this set.
func (s *VarSet) Insert(v Variable) {
	if s.bits == nil {
		s.bits = bitset.New(0)
	}
	//
	s.bits.Set(uint(v))
}

// Contains checks whether a given variable is in this set.
func (s VarSet) Contains(v Variable) bool {
	return s.bits != nil && s.bits.Test(uint(v))
}

// Len returns the number of variables in this set.
func (s VarSet) Len() uint {
	if s.bits == nil {
		return 0
	}
	//
	return s.bits.Count()
}

// IsEmpty checks whether this set contains no variables.
func (s VarSet) IsEmpty() bool {
	return s.Len() == 0
}

// SpaceDimension returns the least space dimension in which every variable of
// this set is meaningful (zero for the empty set).
func (s VarSet) SpaceDimension() uint {
	vars := s.Vars()
	//
	if len(vars) == 0 {
		return 0
	}
	//
	return vars[len(vars)-1].SpaceDimension()
}

// Vars returns the variables of this set in ascending order.
func (s VarSet) Vars() []Variable {
	var vars []Variable
	//
	if s.bits == nil {
		return vars
	}
	//
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		vars = append(vars, Variable(i))
	}
	//
	return vars
}

func (s VarSet) String() string {
	var names []string
	//
	for _, v := range s.Vars() {
		names = append(names, v.String())
	}
	//
	return fmt.Sprintf("{%s}", strings.Join(names, ", "))
}

// PartialFunction is an injective partial mapping from space dimensions to
// space dimensions, as used when renaming or projecting dimensions.
type PartialFunction struct {
	// image of each dimension, or -1 if unmapped.
	mapping []int
	// set of dimensions in the codomain.
	codomain VarSet
}

// NewPartialFunction constructs an empty partial function.
func NewPartialFunction() *PartialFunction {
	return &PartialFunction{nil, NewVarSet()}
}

// Insert the pair i -> j into this partial function.  This will panic if i is
// already mapped, or if j is already the image of some other dimension (since
// the function would then not be injective).
func (p *PartialFunction) Insert(i Variable, j Variable) {
	for uint(len(p.mapping)) <= i.Id() {
		p.mapping = append(p.mapping, -1)
	}
	//
	if p.mapping[i] != -1 {
		panic(fmt.Sprintf("dimension %s already mapped", i))
	} else if p.codomain.Contains(j) {
		panic(fmt.Sprintf("dimension %s already in codomain", j))
	}
	//
	p.mapping[i] = int(j)
	p.codomain.Insert(j)
}

// HasEmptyCodomain checks whether no dimension is mapped.
func (p *PartialFunction) HasEmptyCodomain() bool {
	return p.codomain.IsEmpty()
}

// MaxInCodomain returns the largest dimension in the codomain.  This will
// panic if the codomain is empty.
func (p *PartialFunction) MaxInCodomain() Variable {
	vars := p.codomain.Vars()
	//
	if len(vars) == 0 {
		panic("empty codomain")
	}
	//
	return vars[len(vars)-1]
}

// MapsTo returns the image of i, or false if i is not mapped.
func (p *PartialFunction) MapsTo(i Variable) (Variable, bool) {
	if i.Id() >= uint(len(p.mapping)) || p.mapping[i] < 0 {
		return 0, false
	}
	//
	return Variable(p.mapping[i]), true
}
