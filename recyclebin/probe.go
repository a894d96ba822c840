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
package recyclebin

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"www.velocidex.com/golang/rbdump/accessors"
)

// The state of a payload on disk. When Exists is false all other
// fields are zero and Err says why.
type PayloadAttributes struct {
	Path     string
	Created  time.Time
	Modified time.Time
	Accessed time.Time
	Size     uint64
	IsDir    bool
	Exists   bool

	// ErrPathMissing when the path is simply gone, otherwise the
	// underlying IO error.
	Err error
}

func AttributesFromFileInfo(info accessors.FileInfo) PayloadAttributes {
	size := info.Size()
	if size < 0 {
		size = 0
	}

	return PayloadAttributes{
		Path:     info.FullPath(),
		Created:  info.Btime(),
		Modified: info.Mtime(),
		Accessed: info.Atime(),
		Size:     uint64(size),
		IsDir:    info.IsDir(),
		Exists:   true,
	}
}

// Probe never fails: a payload that is absent or can not be accessed
// is reported as missing. It is common for payloads to be removed
// from the recycle bin independently of their $I file.
func Probe(accessor accessors.FileSystemAccessor, path string) PayloadAttributes {
	info, err := accessor.Lstat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = errors.Wrap(ErrPathMissing, path)
		}
		return PayloadAttributes{Err: err}
	}

	return AttributesFromFileInfo(info)
}
