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
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// An entry removed between listing and stat.
type vanishedEntry struct {
	name string
}

func (self vanishedEntry) Name() string               { return self.name }
func (self vanishedEntry) IsDir() bool                { return false }
func (self vanishedEntry) Type() fs.FileMode          { return 0 }
func (self vanishedEntry) Info() (fs.FileInfo, error) { return nil, os.ErrNotExist }

func TestVanishedEntriesAreCounted(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0600))

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	entries = append(entries, vanishedEntry{name: "b.txt"})

	before := testutil.ToFloat64(fileAccessorStatErrors)
	infos := fileInfos(dir, entries)
	after := testutil.ToFloat64(fileAccessorStatErrors)

	assert.Equal(t, 1, len(infos))
	assert.Equal(t, filepath.Join(dir, "a.txt"), infos[0].FullPath())
	assert.Equal(t, float64(1), after-before)
}
