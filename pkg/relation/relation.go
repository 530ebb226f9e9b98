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
package relation

import (
	"strings"

	"github.com/consensys/go-bdshape/pkg/linear"
	"github.com/consensys/go-bdshape/pkg/util/math"
)

// ConRelation describes the relationship between an element of a numeric
// domain and a single constraint.  A relation is a set of flags, where
// combining two relations (with And) accumulates the evidence of both.
type ConRelation uint8

const (
	// Nothing is the relation asserting nothing.
	Nothing ConRelation = 0
	// IsDisjoint holds when no point of the element satisfies the
	// constraint.
	IsDisjoint ConRelation = 1 << (iota - 1)
	// StrictlyIntersects holds when some points of the element satisfy the
	// constraint, but not all of them.
	StrictlyIntersects
	// IsIncluded holds when every point of the element satisfies the
	// constraint.
	IsIncluded
	// Saturates holds when every point of the element satisfies the
	// constraint with equality.
	Saturates
)

var conRelationNames = []struct {
	flag ConRelation
	name string
}{
	{IsDisjoint, "is_disjoint"},
	{StrictlyIntersects, "strictly_intersects"},
	{IsIncluded, "is_included"},
	{Saturates, "saturates"},
}

// And combines the evidence of two relations.
func (r ConRelation) And(o ConRelation) ConRelation {
	return r | o
}

// Implies checks whether every flag of o is also present in r.
func (r ConRelation) Implies(o ConRelation) bool {
	return r&o == o
}

func (r ConRelation) String() string {
	var names []string
	//
	for _, item := range conRelationNames {
		if r&item.flag != 0 {
			names = append(names, item.name)
		}
	}
	//
	if len(names) == 0 {
		return "nothing"
	}
	//
	return strings.Join(names, ", ")
}

// GenRelation describes the relationship between an element of a numeric
// domain and a single generator.
type GenRelation uint8

const (
	// GenNothing is the relation asserting nothing.
	GenNothing GenRelation = 0
	// Subsumes holds when adding the generator to the element would not
	// change it.
	Subsumes GenRelation = 1
)

// And combines the evidence of two relations.
func (r GenRelation) And(o GenRelation) GenRelation {
	return r | o
}

// Implies checks whether every flag of o is also present in r.
func (r GenRelation) Implies(o GenRelation) bool {
	return r&o == o
}

func (r GenRelation) String() string {
	if r == Subsumes {
		return "subsumes"
	}
	//
	return "nothing"
}

// Empty is the relation between the empty element and any constraint.
const Empty = Saturates | IsIncluded | IsDisjoint

// Classify determines the relation between a non-empty element and a
// constraint "e ⋈ 0" of the given kind, where lo and hi are the exact
// infimum and supremum of e over the element.  Infinite values indicate e is
// unbounded in that direction.
func Classify(kind linear.ConstraintKind, lo, hi math.InfRat) ConRelation {
	var (
		minSign = lo.Sign()
		maxSign = hi.Sign()
		point   = minSign == 0 && maxSign == 0
	)
	//
	switch {
	case point && kind == linear.Strict:
		return Saturates.And(IsDisjoint)
	case point:
		return Saturates.And(IsIncluded)
	}
	//
	switch kind {
	case linear.Equality:
		if minSign > 0 || maxSign < 0 {
			return IsDisjoint
		}
	case linear.NonStrict:
		if minSign >= 0 {
			return IsIncluded
		} else if maxSign < 0 {
			return IsDisjoint
		}
	case linear.Strict:
		if minSign > 0 {
			return IsIncluded
		} else if maxSign <= 0 {
			return IsDisjoint
		}
	}
	//
	return StrictlyIntersects
}
