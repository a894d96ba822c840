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
package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	config_proto "www.velocidex.com/golang/rbdump/config/proto"
)

func newTestConfig(verbose bool) *config_proto.Config {
	return &config_proto.Config{
		Logging: &config_proto.LoggingConfig{
			Verbose:      verbose,
			RotationTime: 3600,
			MaxAge:       3600,
		},
	}
}

func captureStderr(t *testing.T) *bytes.Buffer {
	buf := &bytes.Buffer{}
	old := Stderr
	Stderr = buf
	t.Cleanup(func() {
		Stderr = old
		Manager.Reset()
	})
	Manager.Reset()
	return buf
}

func TestLevels(t *testing.T) {
	buf := captureStderr(t)
	ClearMemoryLogs()

	logger := GetLogger(newTestConfig(false), &ToolComponent)
	logger.Debug("hidden %v", 1)
	logger.Warn("shown %v", 2)

	output := buf.String()
	assert.NotContains(t, output, "hidden")
	assert.Contains(t, output, "[WARNING]")
	assert.Contains(t, output, "RBDUMP: shown 2")

	assert.Equal(t, []string{"RBDUMP: shown 2"}, GetMemoryLogs())

	Manager.Reset()
	logger = GetLogger(newTestConfig(true), &ToolComponent)
	logger.Debug("visible")
	assert.Contains(t, buf.String(), "[DEBUG]")
}

func TestComponentsAreCached(t *testing.T) {
	captureStderr(t)

	config_obj := newTestConfig(false)
	assert.Same(t, GetLogger(config_obj, &DumperComponent),
		GetLogger(config_obj, &DumperComponent))
	assert.NotSame(t, GetLogger(config_obj, &DumperComponent),
		GetLogger(config_obj, &ToolComponent))
}

func TestPrelogAndOutputDirectory(t *testing.T) {
	buf := captureStderr(t)
	ClearMemoryLogs()

	dir := t.TempDir()
	config_obj := newTestConfig(true)
	config_obj.Logging.OutputDirectory = filepath.Join(dir, "logs")

	Prelog("early message %v", "one")
	require.NoError(t, InitLogging(config_obj))

	assert.Contains(t, buf.String(), "early message one")

	GetLogger(config_obj, &DumperComponent).Info("to the file")

	files, err := filepath.Glob(filepath.Join(dir, "logs", "recyclebin.*.log"))
	require.NoError(t, err)
	require.Equal(t, 1, len(files))

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"to the file"`)
}

func TestAddLogFile(t *testing.T) {
	captureStderr(t)

	filename := filepath.Join(t.TempDir(), "extra.log")
	require.NoError(t, AddLogFile(filename))
	t.Cleanup(func() {
		Manager.mu.Lock()
		Manager.log_files = nil
		Manager.mu.Unlock()
	})

	GetLogger(newTestConfig(false), &ToolComponent).Error("bad thing")

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "bad thing"))
}
