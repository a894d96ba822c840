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
	"bytes"
	"encoding/binary"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"www.velocidex.com/golang/rbdump/utils"
	"www.velocidex.com/golang/rbdump/vtesting/goldie"
)

var testDeletedTime = time.Date(2023, 3, 4, 5, 6, 7, 0, time.UTC)

func TestRecordRoundTrip(t *testing.T) {
	for _, version := range []FormatVersion{FormatV1, FormatV2} {
		record := &Record{
			Version:      version,
			Size:         12345,
			DeletedAt:    utils.FileTimeFromTime(testDeletedTime),
			OriginalPath: `C:\Users\test\Documents\report.docx`,
		}

		serialized, err := record.Encode()
		require.NoError(t, err)

		if version == FormatV1 {
			assert.Equal(t, V1RecordSize, len(serialized))
			assert.Equal(t, 544, len(serialized))
		} else {
			assert.Equal(t, 28+2*len(record.OriginalPath), len(serialized))
		}

		decoded, err := Decode(serialized)
		require.NoError(t, err)
		assert.Equal(t, record, decoded, version.String())
		assert.Equal(t, "2023-03-04 05:06:07", decoded.DeletedAt.String())
	}
}

// Windows counts the terminating NUL in the V2 length.
func TestV2WithTerminator(t *testing.T) {
	path := utils.StringToUTF16LE(`C:\tmp\a.txt` + "\x00")

	buf := make([]byte, 28)
	binary.LittleEndian.PutUint64(buf[0:], 2)
	binary.LittleEndian.PutUint64(buf[8:], 42)
	binary.LittleEndian.PutUint64(buf[16:], 132223104000000000)
	binary.LittleEndian.PutUint32(buf[24:], uint32(len(path)/2))
	buf = append(buf, path...)

	record, err := Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, FormatV2, record.Version)
	assert.Equal(t, uint64(42), record.Size)
	assert.Equal(t, `C:\tmp\a.txt`, record.OriginalPath)
	assert.Equal(t, "2020-01-01 00:00:00", record.DeletedAt.String())
}

func TestV1Truncated(t *testing.T) {
	record := &Record{
		Version:      FormatV1,
		Size:         1,
		DeletedAt:    utils.FileTimeFromTime(testDeletedTime),
		OriginalPath: `C:\a.txt`,
	}
	serialized, err := record.Encode()
	require.NoError(t, err)

	for _, length := range []int{0, 7, 8, 23, 24, 543} {
		_, err := Decode(serialized[:length])
		assert.True(t, errors.Is(err, ErrTruncated),
			"length %d: %v", length, err)
	}
}

func TestV2Truncated(t *testing.T) {
	record := &Record{
		Version:      FormatV2,
		Size:         1,
		OriginalPath: `C:\some\long\path.txt`,
	}
	serialized, err := record.Encode()
	require.NoError(t, err)

	// Missing the length field and missing part of the path.
	for _, length := range []int{24, 27, 30, len(serialized) - 1} {
		_, err := Decode(serialized[:length])
		assert.True(t, errors.Is(err, ErrTruncated),
			"length %d: %v", length, err)
	}

	// An absurd path length is treated as corruption.
	binary.LittleEndian.PutUint32(serialized[24:], 0xffffffff)
	_, err = Decode(serialized)
	assert.True(t, errors.Is(err, ErrCorrupt))
	assert.False(t, errors.Is(err, ErrTruncated))
}

func TestV2OversizedPathLength(t *testing.T) {
	// The path bytes are all there but the length is past what
	// Windows allows.
	length := maxPathUnits + 1
	buf := make([]byte, v2PathOffset+length*2)
	binary.LittleEndian.PutUint64(buf[0:], uint64(FormatV2))
	binary.LittleEndian.PutUint32(buf[v2LengthOffset:], uint32(length))

	_, err := Decode(buf)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorrupt), "%v", err)
	assert.False(t, errors.Is(err, ErrTruncated))
	assert.Equal(t, "corrupt", decodeErrorReason(err))

	// One unit less decodes.
	binary.LittleEndian.PutUint32(buf[v2LengthOffset:], uint32(maxPathUnits))
	_, err = Decode(buf[:v2PathOffset+maxPathUnits*2])
	require.NoError(t, err)
}

// Remembers the furthest byte read.
type countingReader struct {
	reader   *bytes.Reader
	max_read int64
}

func (self *countingReader) ReadAt(buf []byte, offset int64) (int, error) {
	n, err := self.reader.ReadAt(buf, offset)
	end := offset + int64(n)
	if end > self.max_read {
		self.max_read = end
	}
	return n, err
}

func TestUnsupportedVersion(t *testing.T) {
	buf := make([]byte, 1024)
	binary.LittleEndian.PutUint64(buf, 3)

	reader := &countingReader{reader: bytes.NewReader(buf)}
	_, err := ParseRecycleBin(reader)
	assert.True(t, errors.Is(err, ErrUnsupportedVersion), err)
	assert.False(t, errors.Is(err, ErrTruncated))
	assert.LessOrEqual(t, reader.max_read, int64(8))

	record := &Record{Version: FormatVersion(3)}
	_, err = record.Encode()
	assert.True(t, errors.Is(err, ErrUnsupportedVersion))
}

func TestV1LongPathIsTruncated(t *testing.T) {
	long_path := `C:\` + string(bytes.Repeat([]byte("a"), 300))
	record := &Record{
		Version:      FormatV1,
		OriginalPath: long_path,
	}
	serialized, err := record.Encode()
	require.NoError(t, err)
	assert.Equal(t, V1RecordSize, len(serialized))

	decoded, err := Decode(serialized)
	require.NoError(t, err)
	assert.Equal(t, long_path[:259], decoded.OriginalPath)
}

func TestRecordToDict(t *testing.T) {
	record := &Record{
		Version:      FormatV2,
		Size:         7,
		DeletedAt:    utils.FileTimeFromTime(testDeletedTime),
		OriginalPath: `C:\x`,
	}

	dict := record.ToDict()
	assert.Equal(t, []string{"Version", "OriginalPath", "Size", "DeletedTimestamp"},
		dict.Keys())

	version, _ := dict.Get("Version")
	assert.Equal(t, "V2", version)

	goldie.AssertJson(t, "TestRecordToDict", dict)
}
