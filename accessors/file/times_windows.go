//go:build windows

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

package file

import (
	"os"
	"syscall"
	"time"
)

func getTimes(path string, info os.FileInfo) (btime, mtime, atime time.Time) {
	sys, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return time.Time{}, info.ModTime(), time.Time{}
	}

	return time.Unix(0, sys.CreationTime.Nanoseconds()),
		time.Unix(0, sys.LastWriteTime.Nanoseconds()),
		time.Unix(0, sys.LastAccessTime.Nanoseconds())
}
