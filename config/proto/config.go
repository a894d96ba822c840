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
// Configuration types shared by all packages. Kept separate from the
// config package so that logging can depend on them.
package proto

type OutputConfig struct {
	// One of csv, jsonl, table, sqlite
	Format string `json:"format,omitempty"`

	// Write output to this file instead of stdout. Required for
	// the sqlite format.
	Filename string `json:"filename,omitempty"`

	CsvDelimiter string `json:"csv_delimiter,omitempty"`

	// By default a header is written before the rows of each
	// recycle bin root. Setting this emits a single header for the
	// whole run.
	SingleHeader bool `json:"single_header,omitempty"`

	SqliteTable string `json:"sqlite_table,omitempty"`
}

type LoggingConfig struct {
	// If set, logs are also written to rotated files in this
	// directory.
	OutputDirectory string `json:"output_directory,omitempty"`

	// In seconds
	RotationTime uint64 `json:"rotation_time,omitempty"`
	MaxAge       uint64 `json:"max_age,omitempty"`

	Verbose bool `json:"verbose,omitempty"`
}

type DumperConfig struct {
	// Pattern matched against names at each root to find the $I
	// metadata records.
	InfoGlob string `json:"info_glob,omitempty"`

	// Only emit records deleted in this window. Any format
	// understood by dateparse is accepted.
	DeletedAfter  string `json:"deleted_after,omitempty"`
	DeletedBefore string `json:"deleted_before,omitempty"`
}

type Config struct {
	Version *Version       `json:"version,omitempty"`
	Output  *OutputConfig  `json:"Output,omitempty"`
	Logging *LoggingConfig `json:"Logging,omitempty"`
	Dumper  *DumperConfig  `json:"Dumper,omitempty"`

	// Path to the file the config was loaded from, if any.
	Filename string `json:"-"`
}

type Version struct {
	Name      string `json:"name,omitempty"`
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version,omitempty"`

	// Only filled in for verbose version reports.
	Dependencies []string `json:"dependencies,omitempty"`
}
