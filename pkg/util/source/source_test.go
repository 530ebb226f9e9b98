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
package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Source_01(t *testing.T) {
	file := NewSourceFile("test.lisp", []byte("(shape\n  (vars A B)\n  (<= A x))"))
	// Span of "x"
	err := file.SyntaxError(NewSpan(28, 29), "unknown variable")
	line := err.FirstEnclosingLine()
	//
	assert.Equal(t, 3, line.Number())
	assert.Equal(t, "  (<= A x))", line.String())
	assert.Equal(t, "test.lisp:3:9-10 unknown variable", err.Error())
	assert.Equal(t, "test.lisp:3:9-10 unknown variable\n  (<= A x))\n        ^", err.Highlight())
}

func Test_Source_02(t *testing.T) {
	file := NewSourceFile("test.lisp", []byte("abc"))
	// Beyond the end is attributed to the last line
	line := file.FindFirstEnclosingLine(NewSpan(10, 11))
	assert.Equal(t, 1, line.Number())
	assert.Equal(t, "abc", line.String())
}

func Test_Source_03(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.lisp")
	require.NoError(t, os.WriteFile(path, []byte("(shape (vars A))"), 0600))
	//
	files, err := ReadFiles(path)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, path, files[0].Filename())
	assert.Equal(t, "(shape (vars A))", string(files[0].Contents()))
	//
	_, err = ReadFiles(path, filepath.Join(dir, "missing.lisp"))
	assert.Error(t, err)
}

func Test_SourceMap_01(t *testing.T) {
	file := NewSourceFile("test.lisp", []byte("hello world"))
	srcmap := NewSourceMap[string](*file)
	srcmap.Put("world", NewSpan(6, 11))
	//
	assert.True(t, srcmap.Has("world"))
	assert.False(t, srcmap.Has("hello"))
	//
	span := srcmap.Get("world")
	assert.Equal(t, 5, span.Length())
	assert.Equal(t, "test.lisp:1:7-12 bad", srcmap.SyntaxError("world", "bad").Error())
	assert.Len(t, srcmap.SyntaxErrors("world", "bad"), 1)
	assert.Panics(t, func() { srcmap.Put("world", NewSpan(0, 1)) })
	assert.Panics(t, func() { NewSpan(2, 1) })
}
