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
	"bytes"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Velocidex/ordereddict"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"www.velocidex.com/golang/rbdump/config"
	"www.velocidex.com/golang/rbdump/constants"
)

var testColumns = []string{"A", "B", "C", "D"}

func TestBuilderCheckpoint(t *testing.T) {
	sink := &MemorySink{}
	builder := NewBuilder(sink, testColumns)

	require.NoError(t, builder.Header())

	builder.Add("a", "b")
	prefix := builder.Checkpoint()
	assert.Equal(t, 2, prefix)

	builder.Add("c1", "d1")
	require.NoError(t, builder.Emit())

	builder.Restore(prefix)
	builder.Add("c2", "d2")
	require.NoError(t, builder.Emit())

	// A nested checkpoint restored to the outer one.
	builder.Restore(prefix)
	builder.Add("c3")
	inner := builder.Checkpoint()
	builder.Add("d3")
	require.NoError(t, builder.Emit())
	builder.Restore(inner)
	builder.Add("d4")
	require.NoError(t, builder.Emit())

	assert.Equal(t, 1, sink.Headers)
	assert.Equal(t, []Row{
		{"a", "b", "c1", "d1"},
		{"a", "b", "c2", "d2"},
		{"a", "b", "c3", "d3"},
		{"a", "b", "c3", "d4"},
	}, sink.Rows)

	// Rows are copies and do not alias the builder.
	builder.Restore(0)
	builder.Add("x", "x", "x", "x")
	assert.Equal(t, "a", sink.Rows[3][0])

	// Out of range restores are ignored.
	builder.Restore(10)
	assert.Equal(t, 4, len(builder.Fields()))
}

func TestBuilderIncompleteRow(t *testing.T) {
	sink := &MemorySink{}
	builder := NewBuilder(sink, testColumns)

	builder.Add("a", "b", "c")
	err := builder.Emit()
	assert.True(t, errors.Is(err, ErrIncompleteRow))

	builder.Add("d", "e")
	assert.Error(t, builder.Emit())
	assert.Equal(t, 0, len(sink.Rows))
}

func TestCSVSink(t *testing.T) {
	out := &bytes.Buffer{}
	sink := NewCSVSink(out, ',')
	builder := NewBuilder(sink, testColumns)

	require.NoError(t, builder.Header())
	builder.Add(`C:\a,b.txt`, "2023-01-02 03:04:05", "", "5")
	require.NoError(t, builder.Emit())
	require.NoError(t, sink.Close())

	assert.Equal(t, "A,B,C,D,\n"+
		`"C:\a,b.txt",2023-01-02 03:04:05,,5,`+"\n", out.String())
}

func TestCSVSinkDelimiter(t *testing.T) {
	out := &bytes.Buffer{}
	sink := NewCSVSink(out, '\t')

	require.NoError(t, sink.WriteHeader(testColumns))
	require.NoError(t, sink.WriteRow(Row{"1", "2", "3", "4"}))
	require.NoError(t, sink.Close())

	assert.Equal(t, "A\tB\tC\tD\t\n1\t2\t3\t4\t\n", out.String())
}

func TestJSONLSink(t *testing.T) {
	out := &bytes.Buffer{}
	sink := NewJSONLSink(out)

	require.NoError(t, sink.WriteHeader(testColumns))
	require.NoError(t, sink.WriteRow(Row{"1", "2", "3", "4"}))
	require.NoError(t, sink.WriteRow(Row{"5", "6", "7", "8"}))
	require.NoError(t, sink.Close())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Equal(t, 2, len(lines))

	row := ordereddict.NewDict()
	require.NoError(t, row.UnmarshalJSON([]byte(lines[1])))
	assert.Equal(t, []string{"A", "B", "C", "D"}, row.Keys())

	value, _ := row.Get("C")
	assert.Equal(t, "7", value)
}

func TestTableSink(t *testing.T) {
	out := &bytes.Buffer{}
	sink := NewTableSink(out)

	require.NoError(t, sink.WriteHeader(testColumns))
	require.NoError(t, sink.WriteRow(Row{"first", "2", "3", "4"}))
	require.NoError(t, sink.WriteHeader(testColumns))
	require.NoError(t, sink.WriteRow(Row{"second", "2", "3", "4"}))
	require.NoError(t, sink.Close())

	output := out.String()
	assert.Contains(t, output, "first")
	assert.Contains(t, output, "second")

	// One table per section.
	assert.Equal(t, 2, strings.Count(output, " D |"))
}

func TestSQLiteSink(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "out.sqlite")

	config_obj := config.GetDefaultConfig()
	config_obj.Output.Format = "sqlite"
	config_obj.Output.Filename = filename

	sink, err := NewSink(config_obj, nil)
	require.NoError(t, err)

	builder := NewBuilder(sink, constants.COLUMNS)
	require.NoError(t, builder.Header())
	for _, name := range []string{"a.txt", "b.txt"} {
		builder.Restore(0)
		for i := 0; i < len(constants.COLUMNS)-1; i++ {
			builder.Add("")
		}
		builder.Add(name)
		require.NoError(t, builder.Emit())
	}
	require.NoError(t, sink.Close())

	handle, err := sql.Open("sqlite3", filename)
	require.NoError(t, err)
	defer handle.Close()

	var count int
	require.NoError(t, handle.QueryRow(
		"SELECT count(*) FROM recyclebin WHERE OriginalFileSize LIKE '%.txt'").
		Scan(&count))
	assert.Equal(t, 2, count)
}

func TestNewSink(t *testing.T) {
	config_obj := config.GetDefaultConfig()
	out := &bytes.Buffer{}

	for format, expected := range map[string]interface{}{
		"csv":   &CSVSink{},
		"jsonl": &JSONLSink{},
		"table": &TableSink{},
	} {
		config_obj.Output.Format = format
		sink, err := NewSink(config_obj, out)
		require.NoError(t, err)
		assert.IsType(t, expected, sink)
	}

	config_obj.Output.Format = "xml"
	_, err := NewSink(config_obj, out)
	assert.Error(t, err)

	config_obj.Output.Format = "sqlite"
	config_obj.Output.Filename = ""
	_, err = NewSink(config_obj, out)
	assert.Error(t, err)
}
