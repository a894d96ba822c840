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
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"www.velocidex.com/golang/rbdump/accessors"
	"www.velocidex.com/golang/rbdump/accessors/memory"
	"www.velocidex.com/golang/rbdump/vtesting"
)

func TestProbe(t *testing.T) {
	accessor := memory.NewMemoryAccessor().
		SetFile("/bin/$RABC.txt", []byte("hello")).
		Mkdir("/bin/$RDIR")

	btime := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, accessor.SetTimes("/bin/$RABC.txt",
		btime, btime.Add(time.Hour), btime.Add(2*time.Hour)))

	attrs := Probe(accessor, "/bin/$RABC.txt")
	assert.True(t, attrs.Exists)
	assert.False(t, attrs.IsDir)
	assert.NoError(t, attrs.Err)
	assert.Equal(t, uint64(5), attrs.Size)
	assert.Equal(t, "/bin/$RABC.txt", attrs.Path)
	assert.Equal(t, btime, attrs.Created)
	assert.Equal(t, btime.Add(time.Hour), attrs.Modified)
	assert.Equal(t, btime.Add(2*time.Hour), attrs.Accessed)

	attrs = Probe(accessor, "/bin/$RDIR")
	assert.True(t, attrs.Exists)
	assert.True(t, attrs.IsDir)
	assert.Equal(t, uint64(0), attrs.Size)

	attrs = Probe(accessor, "/bin/$RGONE")
	assert.False(t, attrs.Exists)
	assert.True(t, errors.Is(attrs.Err, ErrPathMissing))
	assert.Equal(t, PayloadAttributes{Err: attrs.Err}, attrs)
}

type failingAccessor struct {
	*memory.MemoryAccessor
}

func (self failingAccessor) Lstat(path string) (accessors.FileInfo, error) {
	return nil, os.ErrPermission
}

func TestProbeIOError(t *testing.T) {
	accessor := failingAccessor{memory.NewMemoryAccessor()}

	attrs := Probe(accessor, "/bin/$RABC")
	assert.False(t, attrs.Exists)
	assert.False(t, errors.Is(attrs.Err, ErrPathMissing))
	assert.True(t, errors.Is(attrs.Err, os.ErrPermission))
}

func TestAttributesFromFileInfo(t *testing.T) {
	mtime := time.Date(2022, 2, 3, 4, 5, 6, 0, time.UTC)
	attrs := AttributesFromFileInfo(vtesting.MockFileInfo{
		Name_:     "b.txt",
		FullPath_: "/x/b.txt",
		Size_:     -1,
		Mtime_:    mtime,
	})

	assert.True(t, attrs.Exists)
	assert.Equal(t, "/x/b.txt", attrs.Path)
	assert.Equal(t, uint64(0), attrs.Size)
	assert.Equal(t, mtime, attrs.Modified)
	assert.True(t, attrs.Created.IsZero())
}
