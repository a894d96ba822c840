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
// Parsers for the $I files found in the $Recycle.Bin.
//
// When a file or folder is deleted it is renamed to $R<random> and a
// $I<random> file is written alongside it recording where it came
// from, when it was deleted and how big it was. There are two
// versions of the $I format:
//
//	Version 1 (before Windows 10), fixed 544 bytes:
//	  uint64   version       = 1
//	  uint64   size
//	  FILETIME deleted
//	  wchar    path[260]     NUL padded
//
//	Version 2 (Windows 10 and later):
//	  uint64   version       = 2
//	  uint64   size
//	  FILETIME deleted
//	  uint32   path_length   in UTF-16 code units
//	  wchar    path[path_length]
package recyclebin

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/Velocidex/ordereddict"
	"github.com/pkg/errors"
	"www.velocidex.com/golang/rbdump/accessors"
	"www.velocidex.com/golang/rbdump/utils"
)

type FormatVersion uint64

const (
	FormatV1 FormatVersion = 1
	FormatV2 FormatVersion = 2

	headerSize     = 24
	v1PathUnits    = 260
	V1RecordSize   = headerSize + v1PathUnits*2
	v2LengthOffset = headerSize
	v2PathOffset   = headerSize + 4

	// Longest path Windows supports, in UTF-16 code units.
	maxPathUnits = 32767
)

var (
	ErrTruncated          = errors.New("record truncated")
	ErrUnsupportedVersion = errors.New("unsupported record version")
	ErrPathMissing        = errors.New("payload missing")
	ErrCorrupt            = errors.New("record corrupt")
)

func (self FormatVersion) String() string {
	switch self {
	case FormatV1:
		return "V1"
	case FormatV2:
		return "V2"
	default:
		return "Unknown"
	}
}

type Record struct {
	Version      FormatVersion
	Size         uint64
	DeletedAt    utils.FileTime
	OriginalPath string
}

func (self *Record) ToDict() *ordereddict.Dict {
	return ordereddict.NewDict().
		Set("Version", self.Version.String()).
		Set("OriginalPath", self.OriginalPath).
		Set("Size", self.Size).
		Set("DeletedTimestamp", self.DeletedAt.Time())
}

// Read exactly len(buf) bytes at offset.
func readAt(reader io.ReaderAt, buf []byte, offset int64, field string) error {
	n, err := reader.ReadAt(buf, offset)
	if n < len(buf) {
		return errors.Wrapf(ErrTruncated, "reading %s at offset %d: %v",
			field, offset, err)
	}
	return nil
}

// Parse a $I record from the reader. The reader must be positioned so
// the record starts at offset 0.
func ParseRecycleBin(reader io.ReaderAt) (*Record, error) {
	buf := make([]byte, 8)
	err := readAt(reader, buf, 0, "version")
	if err != nil {
		return nil, err
	}

	result := &Record{
		Version: FormatVersion(binary.LittleEndian.Uint64(buf)),
	}

	// Bail before reading anything else.
	if result.Version != FormatV1 && result.Version != FormatV2 {
		return nil, errors.Wrapf(ErrUnsupportedVersion,
			"version %d", uint64(result.Version))
	}

	header := make([]byte, headerSize-8)
	err = readAt(reader, header, 8, "header")
	if err != nil {
		return nil, err
	}

	result.Size = binary.LittleEndian.Uint64(header[0:8])
	result.DeletedAt = utils.NewFileTime(
		binary.LittleEndian.Uint32(header[8:12]),
		binary.LittleEndian.Uint32(header[12:16]))

	switch result.Version {
	case FormatV1:
		path := make([]byte, v1PathUnits*2)
		err = readAt(reader, path, headerSize, "path")
		if err != nil {
			return nil, err
		}
		result.OriginalPath = utils.UTF16LEToStringTrimNul(path)

	case FormatV2:
		length_buf := make([]byte, 4)
		err = readAt(reader, length_buf, v2LengthOffset, "path length")
		if err != nil {
			return nil, err
		}

		// A length this large can not be a real path and we do not
		// want to allocate it.
		length := binary.LittleEndian.Uint32(length_buf)
		if length > maxPathUnits {
			return nil, errors.Wrapf(ErrCorrupt,
				"path length %d exceeds %d", length, maxPathUnits)
		}

		path := make([]byte, int(length)*2)
		err = readAt(reader, path, v2PathOffset, "path")
		if err != nil {
			return nil, err
		}

		// Windows includes the terminating NUL in the length. We
		// read exactly length units but render up to the first NUL.
		result.OriginalPath = utils.UTF16LEToStringTrimNul(path)
	}

	return result, nil
}

// Open the file through the accessor and parse the record in it.
func ParseFile(accessor accessors.FileSystemAccessor, path string) (*Record, error) {
	fd, err := accessor.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	return ParseRecycleBin(fd)
}

func Decode(buf []byte) (*Record, error) {
	return ParseRecycleBin(bytes.NewReader(buf))
}

// Serialize the record in its own format version. V1 paths longer
// than 259 code units are truncated to fit the fixed field.
func (self *Record) Encode() ([]byte, error) {
	out := &bytes.Buffer{}

	header := make([]byte, headerSize)
	binary.LittleEndian.PutUint64(header[0:8], uint64(self.Version))
	binary.LittleEndian.PutUint64(header[8:16], self.Size)
	binary.LittleEndian.PutUint32(header[16:20], self.DeletedAt.Low())
	binary.LittleEndian.PutUint32(header[20:24], self.DeletedAt.High())
	out.Write(header)

	path := utils.StringToUTF16LE(self.OriginalPath)

	switch self.Version {
	case FormatV1:
		fixed := make([]byte, v1PathUnits*2)
		copy(fixed[:len(fixed)-2], path)
		out.Write(fixed)

	case FormatV2:
		length := make([]byte, 4)
		binary.LittleEndian.PutUint32(length, uint32(len(path)/2))
		out.Write(length)
		out.Write(path)

	default:
		return nil, errors.Wrapf(ErrUnsupportedVersion,
			"version %d", uint64(self.Version))
	}

	return out.Bytes(), nil
}
