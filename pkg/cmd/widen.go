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

	"github.com/spf13/cobra"
)

var widenCmd = &cobra.Command{
	Use:   "widen [flags] shape_file(s)",
	Short: "Widen a sequence of shapes.",
	Long: `Widen the sequence of shapes declared in the given files (in order), as
would be done when analysing a loop.  The result contains every shape, and is
obtained in a bounded number of steps regardless of the sequence.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			cmd.PrintErrln(cmd.UsageString())
			os.Exit(1)
		}
		//
		config := loadConfig(cmd)
		result, err := Widen(readShapeFiles(args...), config.Widening)
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		printShape(os.Stdout, result, config.Output)
	},
}

func init() {
	rootCmd.AddCommand(widenCmd)
	widenCmd.Flags().String("widening", CC76, "widening operator (cc76 or bhmz05)")
	widenCmd.Flags().StringArray("stop-points", nil, "stop points for the cc76 widening (e.g. 5/2)")
	widenCmd.Flags().Uint("tokens", 0, "number of imprecise widening steps to delay")
}
