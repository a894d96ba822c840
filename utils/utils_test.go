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
package utils

import (
	"testing"
	"time"

	"github.com/alecthomas/assert"
	"www.velocidex.com/golang/rbdump/json"
)

func TestFileTime(t *testing.T) {
	// 2020-01-01 00:00:00 UTC
	ft := FileTime(132223104000000000)
	assert.Equal(t, "2020-01-01 00:00:00", ft.String())
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), ft.Time())

	assert.Equal(t, ft, NewFileTime(ft.Low(), ft.High()))

	now := time.Date(2023, 4, 5, 6, 7, 8, 123456700, time.UTC)
	assert.Equal(t, now, FileTimeFromTime(now).Time())

	// The epoch itself.
	assert.Equal(t, "1601-01-01 00:00:00", FileTime(0).String())
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "", FormatTime(time.Time{}))

	local := time.Date(2023, 4, 5, 8, 7, 8, 0, time.FixedZone("X", 2*3600))
	assert.Equal(t, "2023-04-05 06:07:08", FormatTime(local))
}

func TestMarshalTimes(t *testing.T) {
	serialized, err := json.Marshal(FileTime(132223104000000000))
	assert.NoError(t, err)
	assert.Equal(t, `"2020-01-01T00:00:00Z"`, string(serialized))
}

func TestUTF16(t *testing.T) {
	for _, in := range []string{
		`C:\Users\test\file.txt`,
		`C:\Users\tëst\файл.txt`,
		"emoji \U0001F600",
		"",
	} {
		encoded := StringToUTF16LE(in)
		assert.Equal(t, in, UTF16LEToString(encoded))
		assert.Equal(t, len(encoded)/2, UTF16Len(in))
	}

	// Surrogate pairs take two code units.
	assert.Equal(t, 2, UTF16Len("\U0001F600"))

	padded := append(StringToUTF16LE("abc"), 0, 0, 'x', 0)
	assert.Equal(t, "abc", UTF16LEToStringTrimNul(padded))

	// Anything after the terminator is ignored.
	assert.Equal(t, "ab", UTF16LEToStringTrimNul(
		append(StringToUTF16LE("ab"), 0, 0, 0)))
}
