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
package cmd

import (
	"fmt"
	"slices"

	"github.com/consensys/go-bdshape/pkg/bds"
	"github.com/consensys/go-bdshape/pkg/lisp"
	log "github.com/sirupsen/logrus"
)

// Join computes the smallest shape containing every given shape.
func Join(shapes []lisp.NamedShape) (lisp.NamedShape, error) {
	return fold("join", shapes, (*bds.Shape).UpperBoundAssign)
}

// Meet computes the intersection of every given shape.
func Meet(shapes []lisp.NamedShape) (lisp.NamedShape, error) {
	return fold("meet", shapes, (*bds.Shape).IntersectionAssign)
}

// Widen iterates the configured widening over a sequence of shapes, such that
// x[0] = s[0] and x[k+1] = (x[k] ⊔ s[k+1]) ∇ x[k].  The sequence x is
// increasing, and the widening ensures it stabilises in a finite number of
// steps.
func Widen(shapes []lisp.NamedShape, config WideningConfig) (lisp.NamedShape, error) {
	var (
		stops, _ = Config{Widening: config}.StopPoints()
		tokens   = config.Tokens
	)
	//
	widen := func(x *bds.Shape, y *bds.Shape) error {
		switch {
		case config.Operator == BHMZ05:
			return x.BHMZ05WideningAssign(y, &tokens)
		case len(stops) > 0:
			return x.CC76ExtrapolationAssignWithStopPoints(y, stops, &tokens)
		default:
			return x.CC76ExtrapolationAssign(y, &tokens)
		}
	}
	//
	step := func(x *bds.Shape, s *bds.Shape) error {
		prev := x.Clone()
		//
		if err := x.UpperBoundAssign(s); err != nil {
			return err
		}
		//
		return widen(x, prev)
	}
	//
	result, err := fold("widen", shapes, step)
	//
	log.Debugf("widening finished with %d unused tokens", tokens)
	//
	return result, err
}

// Fold a binary operation over a non-empty sequence of shapes, all of which
// must share the same variables.
func fold(name string, shapes []lisp.NamedShape, op func(*bds.Shape, *bds.Shape) error) (lisp.NamedShape, error) {
	if len(shapes) == 0 {
		return lisp.NamedShape{}, fmt.Errorf("%s: no shapes given", name)
	}
	//
	result := lisp.NamedShape{Name: name, Vars: shapes[0].Vars, Shape: shapes[0].Shape.Clone()}
	//
	for _, s := range shapes[1:] {
		if !slices.Equal(s.Vars, result.Vars) {
			return result, fmt.Errorf("%s: shape %s has variables %v, expected %v", name, s.Name, s.Vars, result.Vars)
		} else if err := op(result.Shape, s.Shape); err != nil {
			return result, fmt.Errorf("%s: shape %s: %w", name, s.Name, err)
		}
	}
	//
	return result, nil
}
