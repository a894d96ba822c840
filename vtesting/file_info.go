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
package vtesting

import (
	"time"

	"www.velocidex.com/golang/rbdump/accessors"
)

var _ accessors.FileInfo = MockFileInfo{}

type MockFileInfo struct {
	Name_     string
	FullPath_ string
	Size_     int64
	IsDir_    bool

	Btime_, Mtime_, Atime_ time.Time
}

func (self MockFileInfo) Name() string     { return self.Name_ }
func (self MockFileInfo) FullPath() string { return self.FullPath_ }
func (self MockFileInfo) Size() int64      { return self.Size_ }
func (self MockFileInfo) IsDir() bool      { return self.IsDir_ }
func (self MockFileInfo) Btime() time.Time { return self.Btime_ }
func (self MockFileInfo) Mtime() time.Time { return self.Mtime_ }
func (self MockFileInfo) Atime() time.Time { return self.Atime_ }
