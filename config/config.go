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
package config

import (
	"io/ioutil"
	"os"
	"runtime/debug"

	"github.com/Velocidex/yaml/v2"
	config_proto "www.velocidex.com/golang/rbdump/config/proto"
	"www.velocidex.com/golang/rbdump/constants"
)

// Embed build time constants into here for reporting the version.
var (
	build_time  string
	commit_hash string
)

func getVersion() (*config_proto.Version, *debug.BuildInfo) {
	result := &config_proto.Version{
		Name:      constants.NAME,
		Version:   constants.VERSION,
		Commit:    commit_hash,
		BuildTime: build_time,
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return result, nil
	}

	result.GoVersion = info.GoVersion

	// Fall back to the VCS stamp when not set by the linker.
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if result.Commit == "" {
				result.Commit = setting.Value
			}
		case "vcs.time":
			if result.BuildTime == "" {
				result.BuildTime = setting.Value
			}
		}
	}
	return result, info
}

func GetVersion() *config_proto.Version {
	result, _ := getVersion()
	return result
}

// Same as GetVersion but also lists the modules compiled in.
func GetVersionWithDependencies() *config_proto.Version {
	result, info := getVersion()
	if info == nil {
		return result
	}

	for _, dep := range info.Deps {
		result.Dependencies = append(result.Dependencies,
			dep.Path+" "+dep.Version)
	}
	return result
}

func GetDefaultConfig() *config_proto.Config {
	return &config_proto.Config{
		Version: GetVersion(),
		Output: &config_proto.OutputConfig{
			Format:       "csv",
			CsvDelimiter: ",",
			SqliteTable:  "recyclebin",
		},
		Logging: &config_proto.LoggingConfig{
			RotationTime: 604800,
			MaxAge:       31536000,
		},
		Dumper: &config_proto.DumperConfig{
			InfoGlob: constants.INFO_FILE_GLOB,
		},
	}
}

// Make sure all the sections are present so callers do not need to
// check for nil.
func normalize(config_obj *config_proto.Config) {
	defaults := GetDefaultConfig()
	if config_obj.Version == nil {
		config_obj.Version = defaults.Version
	}

	if config_obj.Output == nil {
		config_obj.Output = defaults.Output
	}
	if config_obj.Output.Format == "" {
		config_obj.Output.Format = defaults.Output.Format
	}
	if config_obj.Output.CsvDelimiter == "" {
		config_obj.Output.CsvDelimiter = defaults.Output.CsvDelimiter
	}
	if config_obj.Output.SqliteTable == "" {
		config_obj.Output.SqliteTable = defaults.Output.SqliteTable
	}

	if config_obj.Logging == nil {
		config_obj.Logging = defaults.Logging
	}
	if config_obj.Logging.RotationTime == 0 {
		config_obj.Logging.RotationTime = defaults.Logging.RotationTime
	}
	if config_obj.Logging.MaxAge == 0 {
		config_obj.Logging.MaxAge = defaults.Logging.MaxAge
	}

	if config_obj.Dumper == nil {
		config_obj.Dumper = defaults.Dumper
	}
	if config_obj.Dumper.InfoGlob == "" {
		config_obj.Dumper.InfoGlob = defaults.Dumper.InfoGlob
	}
}

func ParseConfigFromString(data []byte) (*config_proto.Config, error) {
	result := &config_proto.Config{}
	err := yaml.UnmarshalStrict(data, result)
	if err != nil {
		return nil, err
	}
	normalize(result)
	return result, nil
}

// Load the config stored in the YAML file and returns a config object.
func LoadConfig(filename string) (*config_proto.Config, error) {
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	result, err := ParseConfigFromString(data)
	if err != nil {
		return nil, err
	}
	result.Filename = filename
	return result, nil
}

func Encode(config_obj *config_proto.Config) ([]byte, error) {
	return yaml.Marshal(config_obj)
}

func WriteConfigToFile(filename string, config_obj *config_proto.Config) error {
	bytes, err := Encode(config_obj)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(filename, bytes, 0600)
}

// Used by the loader to check for an explicitly empty environment
// variable.
func getenv(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	return os.LookupEnv(name)
}
