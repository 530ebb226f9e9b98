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
package lisp

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/consensys/go-bdshape/pkg/bds"
	"github.com/consensys/go-bdshape/pkg/linear"
	"github.com/consensys/go-bdshape/pkg/util/source"
	"github.com/consensys/go-bdshape/pkg/util/source/sexp"
)

// NamedShape associates a shape with the name it was declared under, along
// with the names of its dimensions.
type NamedShape struct {
	Name  string
	Vars  []string
	Shape *bds.Shape
}

// ParseShapes parses every shape declared in a given source file.  A shape is
// declared as follows:
//
//	(shape [name] (vars x y ...) item*)
//
// Where each item is either a constraint, such as (<= (- x y) 3), or a
// generator, such as (point (+ x (* 2 y)) 3).  A shape is described either by
// constraints or by generators, but never by both.
func ParseShapes(srcfile *source.File) ([]NamedShape, []source.SyntaxError) {
	terms, srcmap, err := sexp.ParseAll(srcfile)
	//
	if err != nil {
		return nil, []source.SyntaxError{*err}
	}
	//
	var (
		p      = &parser{srcmap: srcmap}
		shapes []NamedShape
		errors []source.SyntaxError
	)
	//
	for i, term := range terms {
		shape, errs := p.parseShape(i, term)
		//
		if len(errs) == 0 {
			shapes = append(shapes, shape)
		}
		//
		errors = append(errors, errs...)
	}
	//
	return shapes, errors
}

// ParseConstraint parses a single constraint over a given set of variable
// names, such as "(<= (- x y) 3)".
func ParseConstraint(text string, vars []string) (linear.Constraint, error) {
	srcfile := source.NewSourceFile("constraint", []byte(text))
	term, srcmap, err := sexp.Parse(srcfile)
	//
	if err != nil {
		return linear.Constraint{}, err
	}
	//
	p := &parser{srcmap: srcmap, env: environment(vars)}
	//
	if list := term.AsList(); list == nil || !isConstraint(list) {
		return linear.Constraint{}, p.error(term, "expected constraint")
	}
	//
	c, errs := p.parseConstraint(term.AsList())
	//
	if len(errs) > 0 {
		return linear.Constraint{}, &errs[0]
	}
	//
	return c, nil
}

type parser struct {
	srcmap *source.Map[sexp.SExp]
	// Variable names in scope.
	env map[string]linear.Variable
}

func (p *parser) parseShape(index int, term sexp.SExp) (NamedShape, []source.SyntaxError) {
	var (
		list  = term.AsList()
		named NamedShape
	)
	//
	if list == nil || list.Head() != "shape" {
		return named, p.errors(term, "expected shape declaration")
	}
	//
	items := list.Elements[1:]
	// Optional name
	if len(items) > 0 && items[0].AsSymbol() != nil {
		named.Name = items[0].AsSymbol().Value
		items = items[1:]
	} else {
		named.Name = fmt.Sprintf("#%d", index+1)
	}
	//
	if len(items) == 0 || items[0].AsList() == nil || items[0].AsList().Head() != "vars" {
		return named, p.errors(term, "missing variable declaration")
	}
	//
	vars, errs := p.parseVars(items[0].AsList())
	//
	if len(errs) > 0 {
		return named, errs
	}
	//
	named.Vars = vars
	p.env = environment(vars)
	//
	shape, errs := p.parseBody(uint(len(vars)), items[1:])
	named.Shape = shape
	//
	return named, errs
}

func (p *parser) parseVars(list *sexp.List) ([]string, []source.SyntaxError) {
	var (
		vars   []string
		errors []source.SyntaxError
	)
	//
	for _, e := range list.Elements[1:] {
		sym := e.AsSymbol()
		//
		switch {
		case sym == nil:
			errors = append(errors, *p.error(e, "invalid variable name"))
		case isInteger(sym.Value) || isOperator(sym.Value):
			errors = append(errors, *p.error(e, "invalid variable name"))
		case slices.Contains(vars, sym.Value):
			errors = append(errors, *p.error(e, "duplicate variable"))
		default:
			vars = append(vars, sym.Value)
		}
	}
	//
	return vars, errors
}

func (p *parser) parseBody(dim uint, items []sexp.SExp) (*bds.Shape, []source.SyntaxError) {
	var (
		cs          linear.ConstraintSystem
		gs          linear.GeneratorSystem
		errors      []source.SyntaxError
		constraints bool
		generators  bool
	)
	//
	for _, item := range items {
		list := item.AsList()
		//
		switch {
		case list != nil && isConstraint(list):
			c, errs := p.parseConstraint(list)
			cs = append(cs, c)
			errors = append(errors, errs...)
			constraints = true
		case list != nil && isGenerator(list):
			g, errs := p.parseGenerator(list)
			gs = append(gs, g)
			errors = append(errors, errs...)
			generators = true
		default:
			errors = append(errors, *p.error(item, "expected constraint or generator"))
		}
		//
		if constraints && generators {
			return nil, append(errors, *p.error(item, "cannot mix constraints and generators"))
		}
	}
	//
	if len(errors) > 0 {
		return nil, errors
	} else if generators && !gs.HasPoints() {
		return nil, p.errors(items[0], "generators require at least one point")
	} else if generators {
		return fromGenerators(dim, gs), nil
	}
	//
	return fromConstraints(dim, cs), nil
}

func (p *parser) parseConstraint(list *sexp.List) (linear.Constraint, []source.SyntaxError) {
	if list.Len() != 3 {
		return linear.Constraint{}, p.errors(list, "constraint requires two operands")
	}
	//
	lhs, errs1 := p.parseExpr(list.Get(1))
	rhs, errs2 := p.parseExpr(list.Get(2))
	//
	if errs := append(errs1, errs2...); len(errs) > 0 {
		return linear.Constraint{}, errs
	}
	//
	op, _ := linear.ParseRelSym(list.Head())
	//
	return linear.Relate(lhs, op, rhs), nil
}

func (p *parser) parseGenerator(list *sexp.List) (linear.Generator, []source.SyntaxError) {
	var (
		head    = list.Head()
		divisor = big.NewInt(1)
		point   = head == "point" || head == "closure-point"
	)
	//
	if list.Len() < 2 || list.Len() > 3 || (!point && list.Len() == 3) {
		return linear.Generator{}, p.errors(list, "incorrect number of arguments")
	}
	//
	e, errs := p.parseExpr(list.Get(1))
	//
	if len(errs) > 0 {
		return linear.Generator{}, errs
	} else if e.Inhomogeneous().Sign() != 0 {
		return linear.Generator{}, p.errors(list.Get(1), "unexpected constant")
	} else if list.Len() == 3 {
		if divisor = p.parseInteger(list.Get(2)); divisor == nil || divisor.Sign() <= 0 {
			return linear.Generator{}, p.errors(list.Get(2), "expected positive divisor")
		}
	}
	//
	switch {
	case head == "point":
		return linear.RationalPoint(e, divisor), nil
	case head == "closure-point":
		return linear.ClosurePoint(e, divisor), nil
	case head == "ray" && e.IsZero():
		return linear.Generator{}, p.errors(list, "ray requires a non-zero direction")
	case head == "ray":
		return linear.Ray(e), nil
	case e.IsZero():
		return linear.Generator{}, p.errors(list, "line requires a non-zero direction")
	default:
		return linear.Line(e), nil
	}
}

// Parse a linear expression, which has one of the following forms:
//
//	e := integer | var | (+ e*) | (- e e*) | (* integer e)
func (p *parser) parseExpr(term sexp.SExp) (linear.Expr, []source.SyntaxError) {
	if sym := term.AsSymbol(); sym != nil {
		return p.parseAtom(sym)
	}
	//
	var (
		list = term.AsList()
		args []linear.Expr
	)
	//
	switch head := list.Head(); {
	case head == "+":
	case head == "-" && list.Len() >= 2:
	case head == "*" && list.Len() == 3:
		k := p.parseInteger(list.Get(1))
		if k == nil {
			return linear.Expr{}, p.errors(list.Get(1), "expected integer coefficient")
		}
		//
		e, errs := p.parseExpr(list.Get(2))
		//
		return e.TimesInt(k), errs
	default:
		return linear.Expr{}, p.errors(term, "invalid expression")
	}
	//
	var errors []source.SyntaxError
	//
	for _, arg := range list.Elements[1:] {
		e, errs := p.parseExpr(arg)
		args = append(args, e)
		errors = append(errors, errs...)
	}
	//
	if len(errors) > 0 {
		return linear.Expr{}, errors
	} else if list.Head() == "+" {
		return linear.Sum(args...), nil
	} else if len(args) == 1 {
		return args[0].Neg(), nil
	}
	//
	return args[0].Minus(linear.Sum(args[1:]...)), nil
}

func (p *parser) parseAtom(sym *sexp.Symbol) (linear.Expr, []source.SyntaxError) {
	if k := p.parseInteger(sym); k != nil {
		return linear.NewExpr(0).WithInhomogeneous(k), nil
	} else if v, ok := p.env[sym.Value]; ok {
		return linear.Var(v), nil
	}
	//
	return linear.Expr{}, p.errors(sym, fmt.Sprintf("unknown variable %s", sym.Value))
}

func (p *parser) parseInteger(term sexp.SExp) *big.Int {
	if sym := term.AsSymbol(); sym != nil && isInteger(sym.Value) {
		k, _ := new(big.Int).SetString(sym.Value, 10)
		return k
	}
	//
	return nil
}

func (p *parser) error(term sexp.SExp, msg string) *source.SyntaxError {
	return p.srcmap.SyntaxError(term, msg)
}

func (p *parser) errors(term sexp.SExp, msg string) []source.SyntaxError {
	return p.srcmap.SyntaxErrors(term, msg)
}

// Construct the shape described by a set of constraints.  Constraints which
// are not bounded differences are approximated.
func fromConstraints(dim uint, cs linear.ConstraintSystem) *bds.Shape {
	shape, err := bds.NewShape(dim, linear.UniverseElement)
	//
	if err == nil {
		err = shape.RefineWithConstraints(cs)
	}
	// Unreachable since variables are drawn from the declaration.
	if err != nil {
		panic(err)
	}
	//
	return shape
}

// Construct the shape generated by a set of generators.  Dimensions which no
// generator mentions are zero.
func fromGenerators(dim uint, gs linear.GeneratorSystem) *bds.Shape {
	shape, err := bds.FromGenerators(gs)
	//
	if err == nil {
		err = shape.AddSpaceDimensionsAndProject(dim - gs.SpaceDimension())
	}
	// Unreachable since at least one point is present.
	if err != nil {
		panic(err)
	}
	//
	return shape
}

func environment(vars []string) map[string]linear.Variable {
	env := make(map[string]linear.Variable)
	//
	for i, v := range vars {
		env[v] = linear.Variable(i)
	}
	//
	return env
}

func isConstraint(list *sexp.List) bool {
	op, ok := linear.ParseRelSym(list.Head())
	return ok && op != linear.NotEqual
}

func isGenerator(list *sexp.List) bool {
	switch list.Head() {
	case "point", "closure-point", "ray", "line":
		return true
	default:
		return false
	}
}

func isOperator(name string) bool {
	_, ok := linear.ParseRelSym(name)
	return ok || name == "+" || name == "-" || name == "*"
}

func isInteger(name string) bool {
	_, ok := new(big.Int).SetString(name, 10)
	return ok
}
