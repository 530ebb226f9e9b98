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
	"os"

	"github.com/consensys/go-bdshape/pkg/lisp"
	"github.com/spf13/cobra"
)

var relationCmd = &cobra.Command{
	Use:   "relation [flags] shape_file constraint(s)",
	Short: "Determine how each shape relates to one or more constraints.",
	Long: `Determine how each shape declared in a given file relates to one or more
constraints, such as "(<= (- x y) 3)".  A shape may be disjoint from a
constraint, strictly intersect it or be included in it.  Furthermore, it
saturates a constraint when every point lies on its boundary.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 2 {
			cmd.PrintErrln(cmd.UsageString())
			os.Exit(1)
		}
		//
		_ = loadConfig(cmd)
		//
		for _, shape := range readShapeFiles(args[0]) {
			for _, text := range args[1:] {
				rel, err := relate(shape, text)
				//
				if err != nil {
					fmt.Println(err)
					os.Exit(2)
				}
				//
				fmt.Printf("%s %s: %s\n", shape.Name, text, rel)
			}
		}
	},
}

// Determine the relation of a shape with a constraint given over the shape's
// variables.
func relate(shape lisp.NamedShape, text string) (string, error) {
	c, err := lisp.ParseConstraint(text, shape.Vars)
	//
	if err != nil {
		return "", err
	}
	//
	rel, err := shape.Shape.RelationWith(c)
	//
	if err != nil {
		return "", err
	}
	//
	return rel.String(), nil
}

func init() {
	rootCmd.AddCommand(relationCmd)
}
