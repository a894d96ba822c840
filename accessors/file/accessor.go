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
// The file accessor reads the local filesystem using the OS APIs.
package file

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"www.velocidex.com/golang/rbdump/accessors"
	"www.velocidex.com/golang/rbdump/logging"
)

type OSFileInfo struct {
	name      string
	full_path string
	size      int64
	is_dir    bool

	btime, mtime, atime time.Time
}

func NewOSFileInfo(base os.FileInfo, full_path string) *OSFileInfo {
	btime, mtime, atime := getTimes(full_path, base)
	return &OSFileInfo{
		name:      base.Name(),
		full_path: full_path,
		size:      base.Size(),
		is_dir:    base.IsDir(),
		btime:     btime,
		mtime:     mtime,
		atime:     atime,
	}
}

func (self *OSFileInfo) Name() string     { return self.name }
func (self *OSFileInfo) FullPath() string { return self.full_path }
func (self *OSFileInfo) Size() int64      { return self.size }
func (self *OSFileInfo) IsDir() bool      { return self.is_dir }
func (self *OSFileInfo) Btime() time.Time { return self.btime }
func (self *OSFileInfo) Mtime() time.Time { return self.mtime }
func (self *OSFileInfo) Atime() time.Time { return self.atime }
func (self *OSFileInfo) String() string   { return self.full_path }

type OSFileSystemAccessor struct{}

func NewOSFileSystemAccessor() *OSFileSystemAccessor {
	return &OSFileSystemAccessor{}
}

func (self *OSFileSystemAccessor) Lstat(path string) (accessors.FileInfo, error) {
	defer Instrument("lstat")()

	lstat, err := os.Lstat(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return NewOSFileInfo(lstat, path), nil
}

// Entries are returned sorted by name (os.ReadDir does that) which
// keeps the output stable between runs.
func (self *OSFileSystemAccessor) ReadDir(dir string) ([]accessors.FileInfo, error) {
	defer Instrument("readdir")()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return fileInfos(dir, entries), nil
}

func fileInfos(dir string, entries []fs.DirEntry) []accessors.FileInfo {
	result := make([]accessors.FileInfo, 0, len(entries))
	for _, entry := range entries {
		// The entry may have been removed since we listed the
		// directory.
		info, err := entry.Info()
		if err != nil {
			fileAccessorStatErrors.Inc()
			logging.GetLogger(nil, &logging.ToolComponent).Debug(
				"ReadDir %v: dropping %v: %v", dir, entry.Name(), err)
			continue
		}

		result = append(result,
			NewOSFileInfo(info, filepath.Join(dir, entry.Name())))
	}
	return result
}

// Wrap the os.File object to keep track of open file handles.
type OSFileWrapper struct {
	*os.File
	closed bool
}

func (self *OSFileWrapper) Close() error {
	if self.closed {
		return nil
	}
	fileAccessorCurrentOpened.Dec()
	self.closed = true
	return self.File.Close()
}

func (self *OSFileSystemAccessor) Open(path string) (accessors.ReadSeekCloser, error) {
	defer Instrument("open")()

	fd, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	fileAccessorCurrentOpened.Inc()
	return &OSFileWrapper{File: fd}, nil
}
