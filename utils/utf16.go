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
	"golang.org/x/text/encoding/unicode"
)

// Decode a buffer of UTF-16LE code units into a Go string. Invalid
// surrogates are replaced rather than failing the whole path.
func UTF16LEToString(buf []byte) string {
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	result, err := decoder.Bytes(buf)
	if err != nil {
		return ""
	}
	return string(result)
}

// Same as UTF16LEToString but stops at the first NUL code unit. Fixed
// width fields are NUL padded.
func UTF16LEToStringTrimNul(buf []byte) string {
	for i := 0; i+1 < len(buf); i += 2 {
		if buf[i] == 0 && buf[i+1] == 0 {
			buf = buf[:i]
			break
		}
	}
	return UTF16LEToString(buf)
}

// Encode a string into UTF-16LE code units. Mostly used to build
// records in tests and fixtures.
func StringToUTF16LE(in string) []byte {
	encoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	result, err := encoder.Bytes([]byte(in))
	if err != nil {
		return nil
	}
	return result
}

// Number of UTF-16 code units needed to encode the string.
func UTF16Len(in string) int {
	return len(StringToUTF16LE(in)) / 2
}
