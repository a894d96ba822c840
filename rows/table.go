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

	"github.com/olekukonko/tablewriter"
)

// Renders a text table for each section. Rows are buffered until the
// next header or Close.
type TableSink struct {
	out   io.Writer
	table *tablewriter.Table
	count int
}

func NewTableSink(out io.Writer) *TableSink {
	return &TableSink{out: out}
}

func (self *TableSink) render() {
	if self.table != nil && self.count > 0 {
		self.table.Render()
	}
	self.table = nil
	self.count = 0
}

func (self *TableSink) WriteHeader(columns []string) error {
	self.render()

	self.table = tablewriter.NewWriter(self.out)
	self.table.SetHeader(columns)
	self.table.SetAutoFormatHeaders(false)
	self.table.SetAutoWrapText(false)
	return nil
}

func (self *TableSink) WriteRow(row Row) error {
	if self.table == nil {
		self.table = tablewriter.NewWriter(self.out)
		self.table.SetAutoFormatHeaders(false)
		self.table.SetAutoWrapText(false)
	}
	self.table.Append(row)
	self.count++
	return nil
}

func (self *TableSink) Close() error {
	self.render()
	return nil
}
