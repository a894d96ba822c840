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
	"io"

	"github.com/Velocidex/ordereddict"
	"www.velocidex.com/golang/rbdump/json"
)

// One JSON object per line, keys in column order.
type JSONLSink struct {
	out     io.Writer
	columns []string
}

func NewJSONLSink(out io.Writer) *JSONLSink {
	return &JSONLSink{out: out}
}

func (self *JSONLSink) WriteHeader(columns []string) error {
	self.columns = columns
	return nil
}

func (self *JSONLSink) WriteRow(row Row) error {
	dict := ordereddict.NewDict()
	for idx, value := range row {
		key := ""
		if idx < len(self.columns) {
			key = self.columns[idx]
		}
		dict.Set(key, value)
	}

	serialized, err := json.Marshal(dict)
	if err != nil {
		return err
	}

	serialized = append(serialized, '\n')
	_, err = self.out.Write(serialized)
	return err
}

func (self *JSONLSink) Close() error {
	return nil
}
