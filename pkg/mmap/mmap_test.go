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
package mmap

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_File_01(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shapes.lisp")
	require.NoError(t, os.WriteFile(path, []byte("(shape (vars A) (<= A 1))"), 0600))
	//
	f, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, path, f.Path())
	require.Equal(t, 25, f.Len())
	//
	buf := make([]byte, 5)
	n, err := f.ReadAt(buf, 1)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "shape", string(buf))
	// Reading past the end
	n, err = f.ReadAt(buf, 22)
	require.Equal(t, 3, n)
	require.ErrorIs(t, err, io.EOF)
	//
	require.NoError(t, f.Close())
	require.NoError(t, f.Close())
}

func Test_File_02(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.lisp")
	require.NoError(t, os.WriteFile(path, nil, 0600))
	//
	bytes, err := ReadFile(path)
	require.NoError(t, err)
	require.Empty(t, bytes)
	//
	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.lisp"))
	require.Error(t, err)
}
