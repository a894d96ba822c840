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
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"www.velocidex.com/golang/rbdump/accessors"
	"www.velocidex.com/golang/rbdump/accessors/file"
	config_proto "www.velocidex.com/golang/rbdump/config/proto"
	"www.velocidex.com/golang/rbdump/json"
	"www.velocidex.com/golang/rbdump/logging"
	"www.velocidex.com/golang/rbdump/recyclebin"
)

var (
	parse_command = app.Command("parse", "Decode $I files and print them as JSON.")

	parse_files = parse_command.Arg("files", "The $I files to decode.").
			Required().Strings()
)

// Print one JSON object per file. Files that fail to decode are
// logged and skipped.
func parseFiles(
	config_obj *config_proto.Config,
	accessor accessors.FileSystemAccessor,
	out io.Writer, files []string) int {

	logger := logging.GetLogger(config_obj, &logging.ToolComponent)

	failed := 0
	for _, filename := range files {
		record, err := recyclebin.ParseFile(accessor, filename)
		if err != nil {
			logger.Warn("Skipping %v: %v", filename, err)
			failed++
			continue
		}

		fmt.Fprintln(out, json.MustMarshalString(
			record.ToDict().Set("InfoFile", filename)))
	}
	return failed
}

func doParse() {
	config_obj, err := makeDefaultConfigLoader().LoadAndValidate()
	kingpin.FatalIfError(err, "Unable to load config.")

	parseFiles(config_obj, file.NewOSFileSystemAccessor(),
		os.Stdout, *parse_files)
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		if command == parse_command.FullCommand() {
			doParse()
			return true
		}
		return false
	})
}
