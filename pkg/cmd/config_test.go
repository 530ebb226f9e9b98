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
	"math/big"
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Config_01(t *testing.T) {
	config, err := LoadConfig("")
	//
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
	assert.Equal(t, log.WarnLevel, config.Level())
	assert.NoError(t, config.Validate())
}

func Test_Config_02(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
widening:
  operator: cc76
  stop_points: ["5/2", "10"]
  tokens: 2
output:
  minimized: true
`)
	config, err := LoadConfig(path)
	//
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, config.Level())
	assert.Equal(t, uint(2), config.Widening.Tokens)
	assert.True(t, config.Output.Minimized)
	// Defaults retained
	assert.Equal(t, uint(80), config.Output.TextWidth)
	assert.True(t, config.Output.Colour)
	//
	stops, err := config.StopPoints()
	require.NoError(t, err)
	require.Len(t, stops, 2)
	assert.Equal(t, 0, stops[0].Cmp(big.NewRat(5, 2)))
	assert.Equal(t, 0, stops[1].Cmp(big.NewRat(10, 1)))
}

func Test_Config_03(t *testing.T) {
	checkInvalidConfig(t, "log_level: loud\n")
	checkInvalidConfig(t, "widening:\n  operator: h79\n")
	checkInvalidConfig(t, "widening:\n  operator: bhmz05\n  stop_points: [\"1\"]\n")
	checkInvalidConfig(t, "widening:\n  stop_points: [\"x\"]\n")
	checkInvalidConfig(t, "output:\n  text_width: 0\n")
	checkInvalidConfig(t, "output: [")
	//
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	//
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0600))
	//
	return path
}

func checkInvalidConfig(t *testing.T, text string) {
	t.Helper()
	//
	_, err := LoadConfig(writeConfig(t, text))
	assert.Error(t, err, text)
}
