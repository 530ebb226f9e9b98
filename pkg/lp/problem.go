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
package lp

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/go-bdshape/pkg/linear"
	"github.com/consensys/go-bdshape/pkg/util/math"
)

// ErrDimensionMismatch is returned when a constraint or objective refers to a
// variable outside the space of a problem.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// Status describes the outcome of solving a problem.
type Status uint8

const (
	// Unfeasible indicates the constraints of a problem have no solution.
	Unfeasible Status = iota
	// Unbounded indicates the objective function can be improved without
	// bound.
	Unbounded
	// Optimized indicates an optimal solution was found.
	Optimized
)

func (s Status) String() string {
	switch s {
	case Unfeasible:
		return "unfeasible"
	case Unbounded:
		return "unbounded"
	default:
		return "optimized"
	}
}

// Problem represents a linear programming problem over rational variables,
// solved exactly.  Strict inequalities are treated as their non-strict
// counterparts, hence the optimal value is the supremum (or infimum) of the
// objective over the set described by the constraints.
type Problem struct {
	dim         uint
	constraints linear.ConstraintSystem
	objective   linear.Expr
	maximize    bool
	// outcome of the last solve
	status Status
	value  *big.Rat
	point  []*big.Rat
}

// NewProblem constructs a problem over a given number of (unconstrained)
// variables, with a zero objective function to be minimised.
func NewProblem(dim uint) *Problem {
	return &Problem{dim: dim, objective: linear.NewExpr(0)}
}

// SpaceDimension returns the number of variables of this problem.
func (p *Problem) SpaceDimension() uint {
	return p.dim
}

// AddConstraint adds a constraint to this problem.
func (p *Problem) AddConstraint(c linear.Constraint) error {
	if c.SpaceDimension() > p.dim {
		return fmt.Errorf("%w: constraint %s in %d dimensions", ErrDimensionMismatch, c.String(), p.dim)
	}
	//
	p.constraints = append(p.constraints, c)
	//
	return nil
}

// AddConstraints adds zero or more constraints to this problem.
func (p *Problem) AddConstraints(cs linear.ConstraintSystem) error {
	for _, c := range cs {
		if err := p.AddConstraint(c); err != nil {
			return err
		}
	}
	//
	return nil
}

// SetObjective sets the objective function of this problem.
func (p *Problem) SetObjective(e linear.Expr) error {
	if e.SpaceDimension() > p.dim {
		return fmt.Errorf("%w: objective %s in %d dimensions", ErrDimensionMismatch, e.String(), p.dim)
	}
	//
	p.objective = e
	//
	return nil
}

// SetMaximize determines whether the objective is to be maximised (true) or
// minimised (false).
func (p *Problem) SetMaximize(flag bool) {
	p.maximize = flag
}

// Solve this problem, returning its status.
func (p *Problem) Solve() Status {
	var (
		t   = newTableau(p.dim, p.constraints)
		obj = p.objective
	)
	// Internally, we always minimise.
	if p.maximize {
		obj = obj.Neg()
	}
	//
	p.value, p.point = nil, nil
	//
	if !t.feasible() {
		p.status = Unfeasible
	} else if !t.optimise(obj) {
		p.status = Unbounded
		p.point = t.solution()
	} else {
		p.status = Optimized
		p.point = t.solution()
		p.value = p.objective.EvalRat(p.point)
	}
	//
	return p.status
}

// IsSatisfiable checks whether the constraints of this problem have a
// solution.
func (p *Problem) IsSatisfiable() bool {
	return newTableau(p.dim, p.constraints).feasible()
}

// Status returns the status of the last solve.
func (p *Problem) Status() Status {
	return p.status
}

// OptimalValue returns the optimal value of the objective, as determined by
// the last solve.  This is nil unless that solve was successful.
func (p *Problem) OptimalValue() *big.Rat {
	return p.value
}

// OptimizingPoint returns a point at which the optimal value is attained, as
// determined by the last solve.  This is nil if the problem was unfeasible.
func (p *Problem) OptimizingPoint() []*big.Rat {
	return p.point
}

// Bounds determines the range of values a given expression takes over the set
// of points described by a constraint system in a space of the given
// dimension.  An empty interval is returned if the constraints are
// unsatisfiable.
func Bounds(dim uint, cs linear.ConstraintSystem, e linear.Expr) (math.Interval, error) {
	var p = NewProblem(dim)
	//
	if err := p.AddConstraints(cs); err != nil {
		return math.EMPTY, err
	} else if err := p.SetObjective(e); err != nil {
		return math.EMPTY, err
	}
	//
	lower := math.NegInfinity
	upper := math.PosInfinity
	//
	switch p.Solve() {
	case Unfeasible:
		return math.EMPTY, nil
	case Optimized:
		lower = math.NewInfRat(p.OptimalValue())
	}
	//
	p.SetMaximize(true)
	//
	if p.Solve() == Optimized {
		upper = math.NewInfRat(p.OptimalValue())
	}
	//
	return math.NewInterval(lower, upper), nil
}
