/*
Velociraptor - Dig Deeper
Copyright (C) 2019-2025 Rapid7 Inc.

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU Affero General Public License as published
by the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU Affero General Public License for more details.

You should have received a copy of the GNU Affero General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
// An in memory filesystem. Used to build recycle bin trees with
// known timestamps for tests and fixtures. Paths are / separated.
package memory

import (
	"bytes"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"www.velocidex.com/golang/rbdump/accessors"
)

var (
	// All new nodes get this time unless set explicitly.
	DefaultTime = time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
)

type node struct {
	name   string
	data   []byte
	is_dir bool

	btime, mtime, atime time.Time

	children map[string]*node

	// If set, listing this directory fails with this error.
	readdir_err error
}

type MemoryFileInfo struct {
	node      *node
	full_path string
}

func (self *MemoryFileInfo) Name() string     { return self.node.name }
func (self *MemoryFileInfo) FullPath() string { return self.full_path }
func (self *MemoryFileInfo) IsDir() bool      { return self.node.is_dir }
func (self *MemoryFileInfo) Btime() time.Time { return self.node.btime }
func (self *MemoryFileInfo) Mtime() time.Time { return self.node.mtime }
func (self *MemoryFileInfo) Atime() time.Time { return self.node.atime }

func (self *MemoryFileInfo) Size() int64 {
	if self.node.is_dir {
		return 0
	}
	return int64(len(self.node.data))
}

type MemoryAccessor struct {
	mu   sync.Mutex
	root *node
}

func NewMemoryAccessor() *MemoryAccessor {
	return &MemoryAccessor{
		root: newNode("", true),
	}
}

func newNode(name string, is_dir bool) *node {
	result := &node{
		name:   name,
		is_dir: is_dir,
		btime:  DefaultTime,
		mtime:  DefaultTime,
		atime:  DefaultTime,
	}
	if is_dir {
		result.children = make(map[string]*node)
	}
	return result
}

func splitPath(p string) []string {
	cleaned := strings.Trim(path.Clean("/"+p), "/")
	if cleaned == "" {
		return nil
	}
	return strings.Split(cleaned, "/")
}

// Walk to the node, optionally creating intermediate directories.
func (self *MemoryAccessor) find(p string, create bool) (*node, error) {
	current := self.root
	for _, component := range splitPath(p) {
		if !current.is_dir {
			return nil, errors.Wrap(os.ErrNotExist, p)
		}

		next, pres := current.children[component]
		if !pres {
			if !create {
				return nil, errors.Wrap(os.ErrNotExist, p)
			}
			next = newNode(component, true)
			current.children[component] = next
		}
		current = next
	}
	return current, nil
}

func (self *MemoryAccessor) Mkdir(p string) *MemoryAccessor {
	self.mu.Lock()
	defer self.mu.Unlock()

	_, _ = self.find(p, true)
	return self
}

// Create a file with the content, creating parent directories as
// needed.
func (self *MemoryAccessor) SetFile(p string, data []byte) *MemoryAccessor {
	self.mu.Lock()
	defer self.mu.Unlock()

	dirname, basename := path.Split(path.Clean("/" + p))
	parent, err := self.find(dirname, true)
	if err != nil || !parent.is_dir {
		return self
	}

	child := newNode(basename, false)
	child.data = append([]byte{}, data...)
	parent.children[basename] = child
	return self
}

func (self *MemoryAccessor) SetTimes(
	p string, btime, mtime, atime time.Time) error {
	self.mu.Lock()
	defer self.mu.Unlock()

	n, err := self.find(p, false)
	if err != nil {
		return err
	}
	n.btime = btime
	n.mtime = mtime
	n.atime = atime
	return nil
}

func (self *MemoryAccessor) SetReadDirError(p string, err error) error {
	self.mu.Lock()
	defer self.mu.Unlock()

	n, err1 := self.find(p, false)
	if err1 != nil {
		return err1
	}
	n.readdir_err = err
	return nil
}

func (self *MemoryAccessor) Remove(p string) {
	self.mu.Lock()
	defer self.mu.Unlock()

	dirname, basename := path.Split(path.Clean("/" + p))
	parent, err := self.find(dirname, false)
	if err == nil && parent.is_dir {
		delete(parent.children, basename)
	}
}

func (self *MemoryAccessor) Lstat(p string) (accessors.FileInfo, error) {
	self.mu.Lock()
	defer self.mu.Unlock()

	n, err := self.find(p, false)
	if err != nil {
		return nil, err
	}
	return &MemoryFileInfo{node: n, full_path: p}, nil
}

func (self *MemoryAccessor) ReadDir(p string) ([]accessors.FileInfo, error) {
	self.mu.Lock()
	defer self.mu.Unlock()

	n, err := self.find(p, false)
	if err != nil {
		return nil, err
	}

	if !n.is_dir {
		return nil, errors.Errorf("%v: not a directory", p)
	}

	if n.readdir_err != nil {
		return nil, n.readdir_err
	}

	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]accessors.FileInfo, 0, len(names))
	for _, name := range names {
		result = append(result, &MemoryFileInfo{
			node:      n.children[name],
			full_path: path.Join(p, name),
		})
	}
	return result, nil
}

type memoryReader struct {
	*bytes.Reader
}

func (self memoryReader) Close() error {
	return nil
}

func (self *MemoryAccessor) Open(p string) (accessors.ReadSeekCloser, error) {
	self.mu.Lock()
	defer self.mu.Unlock()

	n, err := self.find(p, false)
	if err != nil {
		return nil, err
	}

	if n.is_dir {
		return nil, errors.Errorf("%v: is a directory", p)
	}

	return memoryReader{bytes.NewReader(n.data)}, nil
}
