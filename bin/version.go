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
	"io"
	"os"

	"github.com/Velocidex/yaml/v2"
	"github.com/alecthomas/kingpin/v2"
	"www.velocidex.com/golang/rbdump/config"
)

var (
	version_command = app.Command("version",
		"Print the rbdump version as YAML. With --verbose also list the compiled in modules.")
)

func doVersion(out io.Writer, verbose bool) error {
	version := config.GetVersion()
	if verbose {
		version = config.GetVersionWithDependencies()
	}

	res, err := yaml.Marshal(version)
	if err != nil {
		return err
	}

	_, err = out.Write(res)
	return err
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		if command == version_command.FullCommand() {
			err := doVersion(os.Stdout, *verbose_flag)
			kingpin.FatalIfError(err, "Unable to encode version.")
			return true
		}
		return false
	})
}
