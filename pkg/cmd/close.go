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
	"bytes"
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/consensys/go-bdshape/pkg/lisp"
	"github.com/consensys/go-bdshape/pkg/util"
	"github.com/spf13/cobra"
)

var closeCmd = &cobra.Command{
	Use:   "close [flags] shape_file(s)",
	Short: "Print the closure of each shape.",
	Long: `Print the shortest-path closure of each shape declared in the given files,
where every bound is made as tight as possible.  Alternatively, print the
smallest set of constraints describing each shape.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			cmd.PrintErrln(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			config = loadConfig(cmd)
			shapes = readShapeFiles(args...)
			stats  = util.NewPerfStats()
			jobs   = make([]*closeJob, len(shapes))
		)
		//
		for i, shape := range shapes {
			jobs[i] = &closeJob{shape: shape, config: config.Output,
				integer: GetFlag(cmd, "integer"), matrix: GetFlag(cmd, "matrix")}
		}
		// Shapes are independent, so can be closed in parallel.
		if err := util.ParExec(context.Background(), jobs, runtime.NumCPU()); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		stats.Log("Closing shapes")
		//
		for _, job := range jobs {
			fmt.Print(job.output.String())
		}
	},
}

// closeJob closes a single shape, and renders the result.
type closeJob struct {
	shape   lisp.NamedShape
	config  OutputConfig
	integer bool
	matrix  bool
	output  bytes.Buffer
}

func (p *closeJob) Run(ctx context.Context) error {
	if p.integer {
		p.shape.Shape.DropSomeNonIntegerPoints()
	}
	//
	if p.matrix {
		printMatrix(&p.output, p.shape, p.config)
	} else {
		printShape(&p.output, p.shape, p.config)
	}
	//
	return nil
}

func init() {
	rootCmd.AddCommand(closeCmd)
	closeCmd.Flags().Bool("integer", false, "drop non-integer points from each shape")
	closeCmd.Flags().Bool("matrix", false, "print the bound matrix of each shape")
}
