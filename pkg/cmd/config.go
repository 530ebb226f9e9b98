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
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/go-bdshape/pkg/mmap"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// CC76 selects the widening of Cousot & Cousot (1976), optionally with
	// stop points.
	CC76 = "cc76"
	// BHMZ05 selects the widening of Bagnara, Hill, Mazzi & Zaffanella (2005).
	BHMZ05 = "bhmz05"
)

// Config captures the settings of the command-line tool, which can be read
// from a YAML file and then overridden by flags.
type Config struct {
	// LogLevel is one of panic, fatal, error, warning, info, debug or trace.
	LogLevel string         `yaml:"log_level"`
	Widening WideningConfig `yaml:"widening"`
	Output   OutputConfig   `yaml:"output"`
}

// WideningConfig determines how a sequence of shapes is widened.
type WideningConfig struct {
	Operator string `yaml:"operator"`
	// StopPoints are rationals (e.g. "5/2") at which an unstable bound may
	// stop, rather than going to infinity.  Only used by CC76.
	StopPoints []string `yaml:"stop_points"`
	// Tokens is the number of imprecise widening steps to be delayed.
	Tokens uint `yaml:"tokens"`
}

// OutputConfig determines how shapes are printed.
type OutputConfig struct {
	TextWidth uint `yaml:"text_width"`
	Minimized bool `yaml:"minimized"`
	Colour    bool `yaml:"colour"`
}

// DefaultConfig returns the configuration used in the absence of a
// configuration file.
func DefaultConfig() Config {
	return Config{
		LogLevel: "warning",
		Widening: WideningConfig{Operator: CC76},
		Output:   OutputConfig{TextWidth: 80, Colour: true},
	}
}

// LoadConfig reads a configuration file, where any setting not given by the
// file retains its default value.  An empty path gives the default
// configuration.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	//
	if path == "" {
		return config, nil
	}
	//
	bytes, err := mmap.ReadFile(path)
	//
	if err != nil {
		return config, fmt.Errorf("load config file: %w", err)
	} else if err := yaml.Unmarshal(bytes, &config); err != nil {
		return config, fmt.Errorf("parse config file %s: %w", path, err)
	} else if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}
	//
	return config, nil
}

// Validate checks every setting of this configuration is meaningful.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	} else if c.Widening.Operator != CC76 && c.Widening.Operator != BHMZ05 {
		return fmt.Errorf("unknown widening operator %q", c.Widening.Operator)
	} else if len(c.Widening.StopPoints) > 0 && c.Widening.Operator != CC76 {
		return errors.New("stop points require the cc76 widening")
	} else if _, err := c.StopPoints(); err != nil {
		return err
	} else if c.Output.TextWidth == 0 {
		return errors.New("text width must be positive")
	}
	//
	return nil
}

// Level returns the logging level of this configuration.
func (c Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	//
	if err != nil {
		return log.WarnLevel
	}
	//
	return level
}

// StopPoints parses the widening stop points of this configuration.
func (c Config) StopPoints() ([]*big.Rat, error) {
	var stops []*big.Rat
	//
	for _, s := range c.Widening.StopPoints {
		r, ok := new(big.Rat).SetString(s)
		if !ok {
			return nil, fmt.Errorf("invalid stop point %q", s)
		}
		//
		stops = append(stops, r)
	}
	//
	return stops, nil
}
