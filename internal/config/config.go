// Package config loads the optional YAML configuration file and merges it
// with command-line values into an engine configuration.
//
// The file has the following structure:
//
//	include:
//	  - /path/to/project/a
//	  - /path/to/project/b
//	map:
//	  - /path/to/project/a:project/a
//	  - /path/to/project/b:project/b
//	keep_going: false
//
// Entries from the file come first; command-line entries are appended after
// them in the order given.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"transform-include/internal/model"
)

// File is the on-disk configuration.
type File struct {
	Include   []string `yaml:"include"`
	Map       []string `yaml:"map"`
	KeepGoing bool     `yaml:"keep_going"`
}

// Flags holds the engine-related command-line values.
type Flags struct {
	Include   []string
	Map       []string
	KeepGoing bool
}

// LoadFile loads and parses a YAML config file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// An empty document decodes to io.EOF.
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return &f, nil
}

// Build merges f (which may be nil) and flags into an EngineConfig.
// Every map value is validated; the first bad one is returned as a
// *model.ConfigError.
func Build(f *File, flags Flags) (model.EngineConfig, error) {
	if f == nil {
		f = &File{}
	}

	var include, maps []string
	include = append(include, f.Include...)
	include = append(include, flags.Include...)
	maps = append(maps, f.Map...)
	maps = append(maps, flags.Map...)

	rules, err := model.ParseMappingRules(maps)
	if err != nil {
		return model.EngineConfig{}, err
	}

	return model.EngineConfig{
		SearchDirs:   include,
		MappingRules: rules,
		KeepGoing:    f.KeepGoing || flags.KeepGoing,
	}, nil
}
