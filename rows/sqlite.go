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
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"www.velocidex.com/golang/rbdump/constants"
)

// Inserts rows into an sqlite table so they can be queried with SQL.
// All rows are written in one transaction committed on Close.
type SQLiteSink struct {
	handle    *sql.DB
	tx        *sql.Tx
	statement *sql.Stmt
	table     string
}

func NewSQLiteSink(filename, table string) (*SQLiteSink, error) {
	if filename == "" {
		return nil, errors.New("sqlite output requires a filename")
	}

	handle, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	columns := make([]string, 0, len(constants.COLUMNS))
	for _, c := range constants.COLUMNS {
		columns = append(columns, c+" TEXT")
	}

	_, err = handle.Exec(fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (%s)",
		table, strings.Join(columns, ", ")))
	if err != nil {
		handle.Close()
		return nil, errors.WithStack(err)
	}

	tx, err := handle.Begin()
	if err != nil {
		handle.Close()
		return nil, errors.WithStack(err)
	}

	placeholders := strings.TrimSuffix(
		strings.Repeat("?, ", len(constants.COLUMNS)), ", ")
	statement, err := tx.Prepare(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)", table,
		strings.Join(constants.COLUMNS, ", "), placeholders))
	if err != nil {
		tx.Rollback()
		handle.Close()
		return nil, errors.WithStack(err)
	}

	return &SQLiteSink{
		handle:    handle,
		tx:        tx,
		statement: statement,
		table:     table,
	}, nil
}

func (self *SQLiteSink) WriteHeader(columns []string) error {
	return nil
}

func (self *SQLiteSink) WriteRow(row Row) error {
	args := make([]interface{}, 0, len(row))
	for _, field := range row {
		args = append(args, field)
	}
	_, err := self.statement.Exec(args...)
	return errors.WithStack(err)
}

func (self *SQLiteSink) Close() error {
	defer self.handle.Close()

	self.statement.Close()
	return errors.WithStack(self.tx.Commit())
}
