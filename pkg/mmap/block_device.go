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
	"errors"
	"io"
	"runtime/debug"
	"syscall"

	pkgErrors "github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// BlockDevice is a read-only memory mapping of (part of) a file.
type BlockDevice struct {
	data []byte
}

// NewBlockDevice maps the first sizeBytes of a given file descriptor into
// memory.  The file descriptor may be closed once this returns.
func NewBlockDevice(fileDescriptor, sizeBytes int) (*BlockDevice, error) {
	if sizeBytes == 0 {
		// Empty mappings are not permitted
		return &BlockDevice{nil}, nil
	}
	//
	data, err := unix.Mmap(fileDescriptor, 0, sizeBytes, syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		return nil, pkgErrors.Wrap(err, "failed to memory map block device")
	}
	//
	return &BlockDevice{data}, nil
}

// Len returns the number of bytes mapped.
func (bd *BlockDevice) Len() int {
	return len(bd.data)
}

// ReadAt reads through the memory map at a given offset.
func (bd *BlockDevice) ReadAt(p []byte, off int64) (n int, err error) {
	if off < 0 {
		return 0, syscall.EINVAL
	} else if off >= int64(len(bd.data)) {
		return 0, io.EOF
	}
	// I/O errors against the mapping (e.g. the file being truncated) surface
	// as page faults.
	old := debug.SetPanicOnFault(true)
	defer func() {
		debug.SetPanicOnFault(old)
		//
		if recover() != nil {
			err = errors.New("page fault occurred while reading from memory map")
		}
	}()
	//
	n = copy(p, bd.data[off:])
	//
	if n < len(p) {
		err = io.EOF
	}
	//
	return n, err
}

// Close unmaps this block device.
func (bd *BlockDevice) Close() error {
	if bd.data == nil {
		return nil
	}
	//
	data := bd.data
	bd.data = nil
	//
	return pkgErrors.Wrap(unix.Munmap(data), "failed to unmap block device")
}
