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

	pkgErrors "github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// File represents a read-only memory-mapped file.
type File struct {
	*BlockDevice
	path string
}

// Open maps the entire contents of a given file into memory.
func Open(path string) (*File, error) {
	fd, err := unix.Open(path, unix.O_RDONLY, 0)
	if err != nil {
		return nil, pkgErrors.Wrapf(err, "failed to open file %#v", path)
	}
	//
	var stat unix.Stat_t
	//
	if err := unix.Fstat(fd, &stat); err != nil {
		_ = unix.Close(fd)
		return nil, pkgErrors.Wrapf(err, "failed to obtain size of file %#v", path)
	}
	//
	bd, err := NewBlockDevice(fd, int(stat.Size))
	//
	if err != nil {
		_ = unix.Close(fd)
		return nil, pkgErrors.Wrapf(err, "failed to map file %#v", path)
	} else if err := unix.Close(fd); err != nil {
		_ = bd.Close()
		return nil, pkgErrors.Wrapf(err, "failed to close file %#v", path)
	}
	//
	return &File{bd, path}, nil
}

// Path returns the path of this file.
func (f *File) Path() string {
	return f.path
}

// ReadFile reads the entire contents of a given file through a temporary
// memory mapping.
func ReadFile(path string) ([]byte, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	//
	bytes := make([]byte, f.Len())
	//
	if _, err := f.ReadAt(bytes, 0); err != nil && err != io.EOF {
		_ = f.Close()
		return nil, pkgErrors.Wrapf(err, "failed to read file %#v", path)
	}
	//
	return bytes, f.Close()
}
