package model

import (
	"fmt"
	"strings"
)

// Version is the current version of transform-include.
const Version = "v0.3.1"

// GitHub repository queried by --update for the latest release tag.
// Release builds set these with
// -ldflags "-X transform-include/internal/model.ReleaseOwner=<owner>".
var (
	ReleaseOwner      = "transform-include"
	ReleaseRepository = "transform-include"
)

// MappingRule rewrites a resolved path that starts with Source so that it
// starts with Destination instead.
type MappingRule struct {
	Source      string // Absolute prefix to strip (e.g., /path/to/project/a)
	Destination string // Replacement prefix (e.g., project/a)
}

func (r MappingRule) String() string {
	return r.Source + ":" + r.Destination
}

// EngineConfig is built once at startup and only read afterwards.
// Order of SearchDirs and MappingRules is the priority order.
type EngineConfig struct {
	SearchDirs   []string
	MappingRules []MappingRule
	KeepGoing    bool
}

// IncludeReference is a quoted include directive split around its path.
type IncludeReference struct {
	Leading  string // Up to and including the opening quote
	Path     string // The referenced path, as written
	Trailing string // From the closing quote to the end of the line
}

// Line reassembles the directive around path.
func (r IncludeReference) Line(path string) string {
	return r.Leading + path + r.Trailing
}

// ConfigError reports a configuration value that cannot be used.
type ConfigError struct {
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("bad map argument %q: %s", e.Value, e.Reason)
}

// ParseMappingRule parses "src:dst". The value must contain exactly one ':'.
func ParseMappingRule(value string) (MappingRule, error) {
	switch n := strings.Count(value, ":"); {
	case n == 0:
		return MappingRule{}, &ConfigError{Value: value, Reason: "missing ':' separator"}
	case n > 1:
		return MappingRule{}, &ConfigError{Value: value, Reason: "more than one ':' separator"}
	}

	src, dst, _ := strings.Cut(value, ":")
	return MappingRule{Source: src, Destination: dst}, nil
}

// ParseMappingRules parses values in order, stopping at the first bad one.
func ParseMappingRules(values []string) ([]MappingRule, error) {
	rules := make([]MappingRule, 0, len(values))
	for _, v := range values {
		rule, err := ParseMappingRule(v)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
