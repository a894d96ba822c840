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
package accessors

import (
	"io"
	"time"
)

// A FileInfo represents information about a file. It is similar to
// os.FileInfo but exposes all the timestamps the recycle bin report
// needs.
type FileInfo interface {
	Name() string

	// Path as OS serialization.
	FullPath() string

	// Time the file was birthed (initially created). May be zero if
	// the filesystem does not record it.
	Btime() time.Time
	Mtime() time.Time
	Atime() time.Time

	Size() int64
	IsDir() bool
}

// A File reader. Metadata records are parsed through io.ReaderAt so
// readers are expected to support it.
type ReadSeekCloser interface {
	io.ReadSeeker
	io.ReaderAt
	io.Closer
}

// Interface for accessing the filesystem. Paths are OS serialized
// strings as returned by FileInfo.FullPath().
type FileSystemAccessor interface {
	// List a directory. Implementations never return the . and
	// .. pseudo entries.
	ReadDir(path string) ([]FileInfo, error)

	// Open a file for reading
	Open(path string) (ReadSeekCloser, error)

	// Stat the path without following symlinks. Returns an error
	// satisfying errors.Is(err, os.ErrNotExist) when the path is
	// absent.
	Lstat(path string) (FileInfo, error)
}
