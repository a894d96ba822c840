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
// Rows are built up one field at a time and flushed to a Sink. The
// Builder supports checkpointing so a shared prefix of fields can be
// reused across many rows without recomputing it.
package rows

import (
	"github.com/pkg/errors"
)

var (
	ErrIncompleteRow = errors.New("row does not match header")
)

type Row []string

type Sink interface {
	// Called at the start of every output section. Some sinks
	// ignore it.
	WriteHeader(columns []string) error
	WriteRow(row Row) error
	Close() error
}

type Builder struct {
	columns []string
	fields  []string
	sink    Sink
}

func NewBuilder(sink Sink, columns []string) *Builder {
	return &Builder{
		columns: columns,
		fields:  make([]string, 0, len(columns)),
		sink:    sink,
	}
}

func (self *Builder) Add(fields ...string) *Builder {
	self.fields = append(self.fields, fields...)
	return self
}

// The current position. Restoring to it later drops all fields added
// after this point.
func (self *Builder) Checkpoint() int {
	return len(self.fields)
}

func (self *Builder) Restore(position int) {
	if position >= 0 && position <= len(self.fields) {
		self.fields = self.fields[:position]
	}
}

// A copy of the fields added so far.
func (self *Builder) Fields() Row {
	return append(Row{}, self.fields...)
}

func (self *Builder) Header() error {
	return self.sink.WriteHeader(self.columns)
}

// Write the current fields as a row. The fields are kept so the
// caller can restore to an earlier checkpoint.
func (self *Builder) Emit() error {
	if len(self.fields) != len(self.columns) {
		return errors.Wrapf(ErrIncompleteRow, "got %d fields, expected %d",
			len(self.fields), len(self.columns))
	}
	return self.sink.WriteRow(self.Fields())
}
