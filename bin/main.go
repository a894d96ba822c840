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
	"os"

	"github.com/alecthomas/kingpin/v2"
	"www.velocidex.com/golang/rbdump/config"
	"www.velocidex.com/golang/rbdump/constants"
)

type CommandHandler func(command string) bool

var (
	app = kingpin.New(constants.NAME,
		"Dump the contents of the Windows Recycle Bin.")

	config_path = app.Flag("config", "The configuration file.").Short('c').
			Envar("RBDUMP_CONFIG").String()

	env_file = app.Flag("env_file",
		"Load environment variables from this file first.").String()

	verbose_flag = app.Flag(
		"verbose", "Enabled verbose logging.").Short('v').
		Default("false").Bool()

	logfile_flag = app.Flag("logfile", "Also write logs to this file.").String()

	metrics_file_flag = app.Flag("metrics_file",
		"Write prometheus metrics to this file on exit.").String()

	command_handlers []CommandHandler
)

// The loader every command starts from. Commands add their own
// mutators on top.
func makeDefaultConfigLoader() *config.Loader {
	return config.DefaultConfigLoader.
		WithVerbose(*verbose_flag).
		WithLogFile(*logfile_flag).
		WithEnvFile(*env_file).
		WithFileLoader(*config_path).
		WithEnvLoader("RBDUMP_CONFIG").
		WithDefaultLoader()
}

func main() {
	app.HelpFlag.Short('h')
	app.UsageTemplate(kingpin.CompactUsageTemplate)
	args := os.Args[1:]

	command := kingpin.MustParse(app.Parse(args))

	for _, command_handler := range command_handlers {
		if command_handler(command) {
			break
		}
	}

	err := writeMetrics(*metrics_file_flag)
	kingpin.FatalIfError(err, "Unable to write metrics.")
}
