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
	"fmt"

	"github.com/go-errors/errors"
	"github.com/joho/godotenv"
	config_proto "www.velocidex.com/golang/rbdump/config/proto"
	"www.velocidex.com/golang/rbdump/logging"
)

// A hard error causes the loader to stop immediately.
type HardError struct {
	Err error
}

func (self HardError) Error() string {
	return self.Err.Error()
}

type loaderFunction struct {
	name        string
	loader_func func(self *Loader) (*config_proto.Config, error)
}

type configMutator struct {
	name                string
	config_mutator_func func(self *config_proto.Config) error
}

type validatorFunction struct {
	name      string
	validator func(self *Loader, config_obj *config_proto.Config) error
}

// The Loader tries each loader in turn until one produces a config,
// then applies mutators and validators to it. Each With* method
// returns a modified copy.
type Loader struct {
	verbose bool

	loaders         []loaderFunction
	config_mutators []configMutator
	validators      []validatorFunction

	logger *logging.LogContext
}

func (self *Loader) WithVerbose(verbose bool) *Loader {
	self = self.Copy()
	self.verbose = verbose
	return self
}

func (self *Loader) WithLogFile(filename string) *Loader {
	if filename == "" {
		return self
	}

	self = self.Copy()
	self.validators = append(self.validators, validatorFunction{
		name: "WithLogFile",
		validator: func(self *Loader, config_obj *config_proto.Config) error {
			err := logging.AddLogFile(filename)
			if err != nil {
				return HardError{err}
			}
			return nil
		}})
	return self
}

// Load environment variables from a dotenv file before any env based
// loader runs. A missing file is a hard error since the user asked
// for it explicitly.
func (self *Loader) WithEnvFile(filename string) *Loader {
	if filename == "" {
		return self
	}

	self = self.Copy()
	self.loaders = append([]loaderFunction{{
		name: "WithEnvFile",
		loader_func: func(self *Loader) (*config_proto.Config, error) {
			err := godotenv.Load(filename)
			if err != nil {
				return nil, HardError{errors.Wrap(err, 0)}
			}
			self.Log("Loaded environment from %v", filename)

			// Never produces a config, fall through to the next
			// loader.
			return nil, errSkipLoader
		}}}, self.loaders...)
	return self
}

func (self *Loader) WithConfigMutator(
	name string,
	mutator func(self *config_proto.Config) error) *Loader {
	self = self.Copy()
	self.config_mutators = append(self.config_mutators, configMutator{
		name:                name,
		config_mutator_func: mutator,
	})
	return self
}

// Falls back to the built in defaults.
func (self *Loader) WithDefaultLoader() *Loader {
	self = self.Copy()
	self.loaders = append(self.loaders, loaderFunction{
		name: "WithDefaultLoader",
		loader_func: func(self *Loader) (*config_proto.Config, error) {
			self.Log("Using default config")
			return GetDefaultConfig(), nil
		}})
	return self
}

func (self *Loader) WithFileLoader(filename string) *Loader {
	if filename != "" {
		self = self.Copy()
		self.loaders = append(self.loaders, loaderFunction{
			name: "WithFileLoader",
			loader_func: func(self *Loader) (*config_proto.Config, error) {
				self.Log("Loading config from file %v", filename)
				result, err := LoadConfig(filename)
				if err != nil {
					// If a filename is specified but it
					// does not exist or invalid stop
					// searching immediately.
					return result, HardError{errors.Wrap(err, 0)}
				}
				return result, nil
			}})
	}

	return self
}

func (self *Loader) WithEnvLoader(env_var string) *Loader {
	self = self.Copy()
	self.loaders = append(self.loaders, loaderFunction{
		name: "WithEnvLoader",
		loader_func: func(self *Loader) (*config_proto.Config, error) {
			env_config, pres := getenv(env_var)
			if pres && env_config != "" {
				self.Log("Loading config from env %v (%v)", env_var, env_config)
				result, err := LoadConfig(env_config)
				if err != nil {
					return nil, HardError{errors.Wrap(err, 0)}
				}
				return result, nil
			}
			return nil, fmt.Errorf("Env var %v is not set", env_var)
		}})

	return self
}

func (self *Loader) Copy() *Loader {
	return &Loader{
		verbose:         self.verbose,
		logger:          self.logger,
		loaders:         append([]loaderFunction{}, self.loaders...),
		validators:      append([]validatorFunction{}, self.validators...),
		config_mutators: append([]configMutator{}, self.config_mutators...),
	}
}

func (self *Loader) Log(format string, v ...interface{}) {
	if self.logger == nil {
		logging.Prelog(format, v...)
	} else {
		self.logger.Debug(format, v...)
	}
}

func (self *Loader) Validate(config_obj *config_proto.Config) error {
	var err error

	if self.verbose {
		config_obj.Logging.Verbose = true
	}

	for _, mutator := range self.config_mutators {
		err = mutator.config_mutator_func(config_obj)
		if err != nil {
			return err
		}
	}

	err = logging.InitLogging(config_obj)
	if err != nil {
		return err
	}

	// Set the logger for the rest of the loading process.
	self.logger = logging.GetLogger(config_obj, &logging.ToolComponent)

	for _, validator := range self.validators {
		err = validator.validator(self, config_obj)
		if err != nil {
			self.logger.Error("%v: %v", validator.name, err)
			return err
		}
	}

	return ValidateConfig(config_obj)
}

func (self *Loader) LoadAndValidate() (*config_proto.Config, error) {
	for _, loader := range self.loaders {
		result, err := loader.loader_func(self)
		if err == nil {
			normalize(result)
			return result, self.Validate(result)
		}

		// Stop on hard errors.
		_, ok := err.(HardError)
		if ok {
			return nil, err
		}

		if err != errSkipLoader {
			self.Log("%v", err)
		}
	}
	return nil, errors.New("Unable to load config from any source.")
}

var (
	errSkipLoader = errors.New("skip")

	DefaultConfigLoader = &Loader{}
)
