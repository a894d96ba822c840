//go:build linux

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

	"golang.org/x/sys/unix"
)

// Birth time is only available through statx and only on some
// filesystems.
func getTimes(path string, info os.FileInfo) (btime, mtime, atime time.Time) {
	mtime = info.ModTime()

	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_SYMLINK_NOFOLLOW,
		unix.STATX_BTIME|unix.STATX_ATIME, &stx)
	if err == nil {
		if stx.Mask&unix.STATX_BTIME != 0 {
			btime = time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
		}
		if stx.Mask&unix.STATX_ATIME != 0 {
			atime = time.Unix(stx.Atime.Sec, int64(stx.Atime.Nsec))
		}
		return btime, mtime, atime
	}

	sys, ok := info.Sys().(*syscall.Stat_t)
	if ok {
		atime = time.Unix(int64(sys.Atim.Sec), int64(sys.Atim.Nsec))
	}
	return btime, mtime, atime
}
