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

	"github.com/pkg/errors"
	config_proto "www.velocidex.com/golang/rbdump/config/proto"
)

// Build the sink selected in the config. Text based sinks write to
// out, the sqlite sink writes to the configured file.
func NewSink(config_obj *config_proto.Config, out io.Writer) (Sink, error) {
	output := config_obj.Output
	switch output.Format {
	case "", "csv":
		delimiter := ','
		if output.CsvDelimiter != "" {
			delimiter = []rune(output.CsvDelimiter)[0]
		}
		return NewCSVSink(out, delimiter), nil

	case "jsonl":
		return NewJSONLSink(out), nil

	case "table":
		return NewTableSink(out), nil

	case "sqlite":
		return NewSQLiteSink(output.Filename, output.SqliteTable)

	default:
		return nil, errors.Errorf("Unknown output format %v", output.Format)
	}
}

// Collects rows in memory. Useful for tests and for callers that
// post process the output.
type MemorySink struct {
	Headers int
	Rows    []Row
}

func (self *MemorySink) WriteHeader(columns []string) error {
	self.Headers++
	return nil
}

func (self *MemorySink) WriteRow(row Row) error {
	self.Rows = append(self.Rows, row)
	return nil
}

func (self *MemorySink) Close() error {
	return nil
}
