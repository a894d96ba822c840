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
package vtesting

import (
	"testing"

	"github.com/stretchr/testify/require"
	"www.velocidex.com/golang/rbdump/config"
	config_proto "www.velocidex.com/golang/rbdump/config/proto"
)

// A validated default config with verbose logging so debug messages
// reach the memory logs.
func GetTestConfig(t *testing.T) *config_proto.Config {
	config_obj := config.GetDefaultConfig()
	config_obj.Logging.Verbose = true

	require.NoError(t, config.ValidateConfig(config_obj))

	return config_obj
}
