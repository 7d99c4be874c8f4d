// Package definition loads schema definitions and instances from YAML, JSON or
// TOML files and builds them into element types.
package definition

import (
	"fmt"

	"github.com/spf13/viper"
)

type Property struct {
	Name      string `mapstructure:"name"`
	Type      string `mapstructure:"type"`
	Mandatory bool   `mapstructure:"mandatory"`
}

// Element defines a node type, or an edge type if Tail and Head are set.
// Labels are mandatory, OptionalLabels are not.
type Element struct {
	Name           string     `mapstructure:"name"`
	Labels         []string   `mapstructure:"labels"`
	OptionalLabels []string   `mapstructure:"optional_labels"`
	Key            []string   `mapstructure:"key"`
	Properties     []Property `mapstructure:"properties"`
	Abstract       bool       `mapstructure:"abstract"`

	Tail     string `mapstructure:"tail"`
	Head     string `mapstructure:"head"`
	Directed bool   `mapstructure:"directed"`
}

type KeyConstraint struct {
	Type       string   `mapstructure:"type"`
	Attributes []string `mapstructure:"attributes"`
}

type Cardinality struct {
	Edge string `mapstructure:"edge"`
	Min  int    `mapstructure:"min"`
	Max  int    `mapstructure:"max"`
}

// Instance is a raw node or edge record. Type optionally names the declared
// element type; Tail and Head refer to node instances by their index in the file.
type Instance struct {
	Type       string                 `mapstructure:"type"`
	Labels     []string               `mapstructure:"labels"`
	Properties map[string]interface{} `mapstructure:"properties"`
	Tail       *int                   `mapstructure:"tail"`
	Head       *int                   `mapstructure:"head"`
}

// IsEdge reports whether the instance has endpoints.
func (in Instance) IsEdge() bool { return in.Tail != nil && in.Head != nil }

// File is the content of a definition file.
type File struct {
	Graph       string          `mapstructure:"graph"`
	RequireKeys bool            `mapstructure:"require_keys"`
	Nodes       []Element       `mapstructure:"nodes"`
	Edges       []Element       `mapstructure:"edges"`
	Keys        []KeyConstraint `mapstructure:"keys"`
	Cardinality []Cardinality   `mapstructure:"cardinality"`
	Instances   []Instance      `mapstructure:"instances"`
}

// Load reads a definition file. The format is chosen by file extension.
func Load(path string) (*File, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("could not read definition file %q: %v", path, err)
	}
	return Decode(v)
}

// Decode reads a definition from viper settings.
func Decode(v *viper.Viper) (*File, error) {
	var f File
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("could not parse definition: %v", err)
	}
	return &f, nil
}
