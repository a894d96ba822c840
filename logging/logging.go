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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	rotatelogs "github.com/Velocidex/file-rotatelogs"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	config_proto "www.velocidex.com/golang/rbdump/config/proto"
)

var (
	ToolComponent   = "RBDUMP"
	DumperComponent = "RecycleBin"

	// Where console logs go. Tests may redirect this.
	Stderr io.Writer = os.Stderr

	Manager = NewLogManager()

	prelogs_mu sync.Mutex
	prelogs    []string

	memory_mu   sync.Mutex
	memory_logs []string
)

const maxMemoryLogs = 1000

type LogContext struct {
	*logrus.Logger
}

func (self *LogContext) Debug(format string, v ...interface{}) {
	self.Logger.Debug(fmt.Sprintf(format, v...))
}

func (self *LogContext) Info(format string, v ...interface{}) {
	self.Logger.Info(fmt.Sprintf(format, v...))
}

func (self *LogContext) Warn(format string, v ...interface{}) {
	self.Logger.Warn(fmt.Sprintf(format, v...))
}

func (self *LogContext) Error(format string, v ...interface{}) {
	self.Logger.Error(fmt.Sprintf(format, v...))
}

type LogManager struct {
	mu sync.Mutex

	config_obj *config_proto.Config
	contexts   map[*string]*LogContext

	// Extra files requested on the command line.
	log_files []string
}

func NewLogManager() *LogManager {
	return &LogManager{
		contexts: make(map[*string]*LogContext),
	}
}

func (self *LogManager) Reset() {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.contexts = make(map[*string]*LogContext)
}

func (self *LogManager) GetLogger(
	config_obj *config_proto.Config, component *string) *LogContext {
	self.mu.Lock()
	defer self.mu.Unlock()

	ctx, pres := self.contexts[component]
	if pres {
		return ctx
	}

	if config_obj == nil {
		config_obj = self.config_obj
	}

	ctx = self.makeNewComponent(config_obj, component)
	self.contexts[component] = ctx
	return ctx
}

func (self *LogManager) makeNewComponent(
	config_obj *config_proto.Config, component *string) *LogContext {
	logger := logrus.New()
	logger.Out = Stderr
	logger.Formatter = &Formatter{component: *component}
	logger.Level = logrus.WarnLevel

	if config_obj != nil && config_obj.Logging != nil {
		if config_obj.Logging.Verbose {
			logger.Level = logrus.DebugLevel
		}

		if config_obj.Logging.OutputDirectory != "" {
			hook, err := makeRotatingHook(config_obj.Logging, *component)
			if err == nil {
				logger.AddHook(hook)
			} else {
				fmt.Fprintf(Stderr, "Unable to open log directory: %v\n", err)
			}
		}
	}

	for _, filename := range self.log_files {
		logger.AddHook(lfshook.NewHook(lfshook.PathMap{
			logrus.DebugLevel: filename,
			logrus.InfoLevel:  filename,
			logrus.WarnLevel:  filename,
			logrus.ErrorLevel: filename,
		}, &logrus.JSONFormatter{}))
	}

	logger.AddHook(&memoryHook{component: *component})

	return &LogContext{Logger: logger}
}

// Rotate log files per component in the output directory. All
// levels go to the same file.
func makeRotatingHook(
	logging_config *config_proto.LoggingConfig, component string) (logrus.Hook, error) {
	base_path := filepath.Join(logging_config.OutputDirectory,
		strings.ToLower(component))

	writer, err := rotatelogs.New(
		base_path+".%Y%m%d.log",
		rotatelogs.WithLinkName(base_path+".log"),
		rotatelogs.WithRotationTime(
			time.Duration(logging_config.RotationTime)*time.Second),
		rotatelogs.WithMaxAge(
			time.Duration(logging_config.MaxAge)*time.Second),
	)
	if err != nil {
		return nil, err
	}

	return lfshook.NewHook(lfshook.WriterMap{
		logrus.DebugLevel: writer,
		logrus.InfoLevel:  writer,
		logrus.WarnLevel:  writer,
		logrus.ErrorLevel: writer,
	}, &logrus.JSONFormatter{}), nil
}

func GetLogger(config_obj *config_proto.Config, component *string) *LogContext {
	return Manager.GetLogger(config_obj, component)
}

// Configure the logging subsystem. Loggers created before this are
// dropped so they pick up the new settings.
func InitLogging(config_obj *config_proto.Config) error {
	if config_obj.Logging != nil &&
		config_obj.Logging.OutputDirectory != "" {
		err := os.MkdirAll(config_obj.Logging.OutputDirectory, 0700)
		if err != nil {
			return err
		}
	}

	Manager.mu.Lock()
	Manager.config_obj = config_obj
	Manager.mu.Unlock()
	Manager.Reset()

	// Flush early messages into the real logger.
	logger := GetLogger(config_obj, &ToolComponent)

	prelogs_mu.Lock()
	defer prelogs_mu.Unlock()

	for _, msg := range prelogs {
		logger.Debug("%s", msg)
	}
	prelogs = nil

	return nil
}

// Additionally send all logs to this file.
func AddLogFile(filename string) error {
	fd, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return err
	}
	fd.Close()

	Manager.mu.Lock()
	Manager.log_files = append(Manager.log_files, filename)
	Manager.mu.Unlock()
	Manager.Reset()

	return nil
}

// Log a message before the logging system is configured. These are
// replayed when InitLogging is called.
func Prelog(format string, v ...interface{}) {
	prelogs_mu.Lock()
	defer prelogs_mu.Unlock()

	prelogs = append(prelogs, fmt.Sprintf(format, v...))
}

type Formatter struct {
	component string
}

func (self *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := &bytes.Buffer{}

	levelText := strings.ToUpper(entry.Level.String())
	fmt.Fprintf(b, "[%s] %v %s: %s", levelText,
		entry.Time.UTC().Format(time.RFC3339), self.component,
		strings.TrimRight(entry.Message, "\r\n"))

	if len(entry.Data) > 0 {
		keys := make([]string, 0, len(entry.Data))
		for k := range entry.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			fmt.Fprintf(b, " %s=%v", k, entry.Data[k])
		}
	}
	b.WriteString("\n")

	return b.Bytes(), nil
}

// Keeps the last few log lines in memory so tests can inspect them.
type memoryHook struct {
	component string
}

func (self *memoryHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (self *memoryHook) Fire(entry *logrus.Entry) error {
	memory_mu.Lock()
	defer memory_mu.Unlock()

	line := fmt.Sprintf("%s: %s", self.component, entry.Message)
	if len(entry.Data) > 0 {
		line += fmt.Sprintf(" %v", entry.Data)
	}

	memory_logs = append(memory_logs, line)
	if len(memory_logs) > maxMemoryLogs {
		memory_logs = memory_logs[len(memory_logs)-maxMemoryLogs:]
	}
	return nil
}

func GetMemoryLogs() []string {
	memory_mu.Lock()
	defer memory_mu.Unlock()

	return append([]string{}, memory_logs...)
}

func ClearMemoryLogs() {
	memory_mu.Lock()
	defer memory_mu.Unlock()

	memory_logs = nil
}
