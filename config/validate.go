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
	"regexp"
	"unicode/utf8"

	"github.com/araddon/dateparse"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	config_proto "www.velocidex.com/golang/rbdump/config/proto"
)

var (
	OutputFormats = []interface{}{"csv", "jsonl", "table", "sqlite"}

	sqlIdentifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

func isSingleRune(value interface{}) error {
	s, _ := value.(string)
	if utf8.RuneCountInString(s) != 1 {
		return validation.NewError(
			"validation_single_rune", "must be a single character")
	}
	return nil
}

func isTimestamp(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	_, err := dateparse.ParseAny(s)
	if err != nil {
		return validation.NewError(
			"validation_timestamp", "must be a valid timestamp")
	}
	return nil
}

func validateOutput(output *config_proto.OutputConfig) error {
	return validation.ValidateStruct(output,
		validation.Field(&output.Format,
			validation.Required, validation.In(OutputFormats...)),
		validation.Field(&output.CsvDelimiter,
			validation.Required, validation.By(isSingleRune)),
		validation.Field(&output.SqliteTable,
			validation.Required, validation.Match(sqlIdentifierRegex)),
		validation.Field(&output.Filename,
			validation.When(output.Format == "sqlite", validation.Required)),
	)
}

func validateDumper(dumper *config_proto.DumperConfig) error {
	return validation.ValidateStruct(dumper,
		validation.Field(&dumper.InfoGlob, validation.Required),
		validation.Field(&dumper.DeletedAfter, validation.By(isTimestamp)),
		validation.Field(&dumper.DeletedBefore, validation.By(isTimestamp)),
	)
}

// Check the config is usable. Sections are normalized by the loader
// so they are never nil here.
func ValidateConfig(config_obj *config_proto.Config) error {
	normalize(config_obj)

	return validation.Errors{
		"Output": validateOutput(config_obj.Output),
		"Dumper": validateDumper(config_obj.Dumper),
	}.Filter()
}
