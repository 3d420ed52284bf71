package rewrite

import (
	"log/slog"
	"path/filepath"
	"strings"

	"transform-include/internal/model"
)

// Engine resolves and remaps include paths for one run.
// The configuration is never modified after NewEngine.
type Engine struct {
	cfg    model.EngineConfig
	prober Prober
	log    *slog.Logger
}

// NewEngine creates an Engine that checks candidates with prober.
func NewEngine(cfg model.EngineConfig, prober Prober) *Engine {
	return &Engine{
		cfg:    cfg,
		prober: prober,
		log:    slog.Default(),
	}
}

// WithLogger returns a copy of e that logs to l.
func (e *Engine) WithLogger(l *slog.Logger) *Engine {
	c := *e
	c.log = l
	return &c
}

// Mapping is the outcome of applying the mapping rules to a resolved path.
type Mapping struct {
	Chosen  string   // Candidate from the first matching rule
	Others  []string // Candidates from later matching rules, in rule order
	Matched bool
}

// TransformPath resolves path and maps the result. A path that resolves but
// matches no rule is returned exactly as written.
func (e *Engine) TransformPath(path string) (string, error) {
	resolved, err := e.ResolvePath(path)
	if err != nil {
		return "", err
	}

	m := e.MapPath(resolved)
	if !m.Matched {
		return path, nil // no mapping --> no transform
	}

	if len(m.Others) > 0 {
		e.log.Warn("multiple candidates", "first", m.Chosen, "other", m.Others)
	}

	return m.Chosen, nil
}

// MapPath applies every rule whose source is a literal prefix of resolved.
func (e *Engine) MapPath(resolved string) Mapping {
	var m Mapping
	for _, rule := range e.cfg.MappingRules {
		suffix, ok := strings.CutPrefix(resolved, rule.Source)
		if !ok {
			continue
		}

		candidate := rule.Destination + suffix
		if !m.Matched {
			m.Chosen = candidate
			m.Matched = true
		} else {
			m.Others = append(m.Others, candidate)
		}
	}
	return m
}

// ResolvePath returns the first search directory candidate that exists.
// Later directories are not checked once one matches.
func (e *Engine) ResolvePath(path string) (string, error) {
	for _, dir := range e.cfg.SearchDirs {
		candidate := joinSearchPath(dir, path)

		exists, err := e.prober.FileExists(candidate)
		if err != nil {
			return "", &ProbeError{Path: candidate, Err: err}
		}
		if exists {
			return candidate, nil
		}
	}

	return "", &ResolutionError{Path: path}
}

// joinSearchPath joins dir and path with a single separator.
// Unlike filepath.Join it does not clean "." or ".." elements, so the
// resolved path keeps the include's spelling for prefix matching.
// An absolute path replaces dir.
func joinSearchPath(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if dir == "" {
		return path
	}

	sep := string(filepath.Separator)
	return strings.TrimRight(dir, sep) + sep + strings.TrimLeft(path, sep)
}
