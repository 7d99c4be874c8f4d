// Copyright 2014 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/alastai/grasch-lex/spectral"
)

const (
	KeyMode         = "validate.mode"
	KeyRequireKeys  = "schema.require_keys"
	KeyExportFormat = "export.format"
	KeyMetricsFile  = "metrics.file"
)

// EnvPrefix is the prefix of environment variables overriding config keys.
// GRASCH_VALIDATE_MODE overrides validate.mode.
const EnvPrefix = "GRASCH"

// Config defines the behavior of schema loading, validation and export.
type Config struct {
	Mode         spectral.Mode
	RequireKeys  bool
	ExportFormat string
	MetricsFile  string
}

// New returns a viper instance with defaults and environment overrides set up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults sets the default value of every config key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyMode, spectral.SubtypeConformant.String())
	v.SetDefault(KeyRequireKeys, false)
	v.SetDefault(KeyExportFormat, "json")
	v.SetDefault(KeyMetricsFile, "")
}

// FromViper reads a config from the current viper settings.
func FromViper(v *viper.Viper) (*Config, error) {
	mode, err := spectral.ParseMode(v.GetString(KeyMode))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyMode, err)
	}
	return &Config{
		Mode:         mode,
		RequireKeys:  v.GetBool(KeyRequireKeys),
		ExportFormat: v.GetString(KeyExportFormat),
		MetricsFile:  v.GetString(KeyMetricsFile),
	}, nil
}

// Load reads a config file in any format viper supports. Only defaults and
// environment overrides are used if the filename is empty.
func Load(file string) (*Config, error) {
	v := New()
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("could not read config file %q: %v", file, err)
		}
	}
	return FromViper(v)
}
