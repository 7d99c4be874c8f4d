package command

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"

	"github.com/alastai/grasch-lex/clog"
	"github.com/alastai/grasch-lex/element"
	"github.com/alastai/grasch-lex/internal/config"
	"github.com/alastai/grasch-lex/internal/definition"
)

// EnvReplacer maps config keys to environment variable names.
var EnvReplacer = strings.NewReplacer(".", "_")

var errNoDefinition = errors.New("definition file is not specified")

const flagOut = "out"

func init() {
	config.SetDefaults(viper.GetViper())
}

func currentConfig() (*config.Config, error) {
	return config.FromViper(viper.GetViper())
}

// loadSchema reads a definition file and derives its schema.
func loadSchema(args []string) (*definition.File, *element.Schema, error) {
	if len(args) == 0 {
		return nil, nil, errNoDefinition
	} else if len(args) > 1 {
		return nil, nil, fmt.Errorf("too many arguments provided, expected 1")
	}
	cfg, err := currentConfig()
	if err != nil {
		return nil, nil, err
	}
	f, err := definition.Load(args[0])
	if err != nil {
		return nil, nil, err
	}
	f.RequireKeys = f.RequireKeys || cfg.RequireKeys
	s, err := f.Schema()
	if err != nil {
		return nil, nil, err
	}
	clog.Infof("loaded %d node types and %d edge types from %q", len(s.Nodes()), len(s.Edges()), args[0])
	return f, s, nil
}

// output opens the file named by path, or returns def for an empty path or "-".
func output(path string, def io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return def, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// WriteMetrics writes the default prometheus registry to the configured metrics
// file, if any.
func WriteMetrics() error {
	path := viper.GetString(config.KeyMetricsFile)
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("could not write metrics to %q: %v", path, err)
	}
	return nil
}
