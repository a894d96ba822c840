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
	"time"

	"github.com/Velocidex/json"
	"www.velocidex.com/golang/rbdump/constants"
	vjson "www.velocidex.com/golang/rbdump/json"
)

// Number of seconds between 1601-01-01 and 1970-01-01.
const filetimeEpochDelta = 11644473600

// A Windows FILETIME: 100 nanosecond ticks since 1601-01-01 UTC. It is
// stored on disk as two little endian uint32 (low, high) which is the
// same as a single little endian uint64.
type FileTime uint64

func NewFileTime(low, high uint32) FileTime {
	return FileTime(uint64(high)<<32 | uint64(low))
}

func (self FileTime) Low() uint32 {
	return uint32(self)
}

func (self FileTime) High() uint32 {
	return uint32(self >> 32)
}

func (self FileTime) Time() time.Time {
	ticks := uint64(self)
	sec := int64(ticks/10000000) - filetimeEpochDelta
	nsec := int64(ticks%10000000) * 100
	return time.Unix(sec, nsec).UTC()
}

func (self FileTime) String() string {
	return self.Time().Format(constants.TIME_FORMAT)
}

func FileTimeFromTime(t time.Time) FileTime {
	sec := t.Unix() + filetimeEpochDelta
	return FileTime(uint64(sec)*10000000 + uint64(t.Nanosecond()/100))
}

// Render a filesystem timestamp the way the output table wants
// it. Some filesystems do not report all timestamps (e.g. birth time)
// and those render as an empty cell.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(constants.TIME_FORMAT)
}

// Take care of marshaling all timestamps in UTC
func MarshalTimes(v interface{}, opts *json.EncOpts) ([]byte, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().MarshalJSON()

	case *time.Time:
		return t.UTC().MarshalJSON()

	case FileTime:
		return t.Time().MarshalJSON()
	}
	return nil, json.EncoderCallbackSkip
}

func init() {
	vjson.RegisterCustomEncoder(time.Time{}, MarshalTimes)
	vjson.RegisterCustomEncoder(&time.Time{}, MarshalTimes)
	vjson.RegisterCustomEncoder(FileTime(0), MarshalTimes)
}
