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

var joinCmd = &cobra.Command{
	Use:   "join [flags] shape_file(s)",
	Short: "Compute the smallest shape containing every shape.",
	Run: func(cmd *cobra.Command, args []string) {
		runLatticeCommand(cmd, args, Join)
	},
}

var meetCmd = &cobra.Command{
	Use:   "meet [flags] shape_file(s)",
	Short: "Compute the intersection of every shape.",
	Run: func(cmd *cobra.Command, args []string) {
		runLatticeCommand(cmd, args, Meet)
	},
}

func runLatticeCommand(cmd *cobra.Command, args []string, op func([]lisp.NamedShape) (lisp.NamedShape, error)) {
	if len(args) == 0 {
		cmd.PrintErrln(cmd.UsageString())
		os.Exit(1)
	}
	//
	config := loadConfig(cmd)
	result, err := op(readShapeFiles(args...))
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	printShape(os.Stdout, result, config.Output)
}

func init() {
	rootCmd.AddCommand(joinCmd)
	rootCmd.AddCommand(meetCmd)
}
