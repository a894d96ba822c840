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
package rows

import (
	"encoding/csv"
	"io"
)

// Writes comma separated rows. Every field, including the last one,
// is followed by a separator.
type CSVSink struct {
	writer *csv.Writer
}

func NewCSVSink(out io.Writer, delimiter rune) *CSVSink {
	writer := csv.NewWriter(out)
	writer.Comma = delimiter
	return &CSVSink{writer: writer}
}

func (self *CSVSink) write(fields []string) error {
	// The trailing empty field produces the trailing separator.
	record := make([]string, 0, len(fields)+1)
	record = append(record, fields...)
	record = append(record, "")
	return self.writer.Write(record)
}

func (self *CSVSink) WriteHeader(columns []string) error {
	err := self.write(columns)
	if err != nil {
		return err
	}
	self.writer.Flush()
	return self.writer.Error()
}

func (self *CSVSink) WriteRow(row Row) error {
	return self.write(row)
}

func (self *CSVSink) Close() error {
	self.writer.Flush()
	return self.writer.Error()
}
