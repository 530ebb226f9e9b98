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
	"github.com/consensys/go-bdshape/pkg/util"
	"github.com/consensys/go-bdshape/pkg/util/source"
	"github.com/consensys/go-bdshape/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// GetUint gets an expected unsigned integer flag, or exits if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// GetString gets an expected string flag, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// GetStringArray gets an expected string array flag, or exits if an error
// arises.
func GetStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// Load the configuration file (if given) and apply any flags which override
// its settings.  Flags which are not registered for the given command are
// ignored.
func loadConfig(cmd *cobra.Command) Config {
	config, err := LoadConfig(GetString(cmd, "config"))
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	flags := cmd.Flags()
	//
	if GetFlag(cmd, "verbose") {
		config.LogLevel = log.DebugLevel.String()
	}
	//
	if flags.Changed("textwidth") {
		config.Output.TextWidth = GetUint(cmd, "textwidth")
	}
	//
	if flags.Changed("minimized") {
		config.Output.Minimized = GetFlag(cmd, "minimized")
	}
	//
	if GetFlag(cmd, "no-colour") || !termio.IsTerminal(os.Stdout) {
		config.Output.Colour = false
	}
	//
	if flags.Lookup("widening") != nil && flags.Changed("widening") {
		config.Widening.Operator = GetString(cmd, "widening")
	}
	//
	if flags.Lookup("stop-points") != nil && flags.Changed("stop-points") {
		config.Widening.StopPoints = GetStringArray(cmd, "stop-points")
	}
	//
	if flags.Lookup("tokens") != nil && flags.Changed("tokens") {
		config.Widening.Tokens = GetUint(cmd, "tokens")
	}
	//
	if err := config.Validate(); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return config
}

// Read and parse one or more shape files, reporting any syntax errors and
// exiting if any arise.
func readShapeFiles(filenames ...string) []lisp.NamedShape {
	var (
		stats  = util.NewPerfStats()
		shapes []lisp.NamedShape
		failed bool
	)
	//
	files, err := source.ReadFiles(filenames...)
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	for i := range files {
		ss, errs := lisp.ParseShapes(&files[i])
		//
		for _, e := range errs {
			fmt.Println(e.Highlight())
		}
		//
		failed = failed || len(errs) > 0
		shapes = append(shapes, ss...)
	}
	//
	if failed {
		os.Exit(2)
	}
	//
	stats.Log("Reading shape files")
	//
	return shapes
}
