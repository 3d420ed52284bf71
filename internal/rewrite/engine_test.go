package rewrite

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transform-include/internal/model"
)

type failingProber struct {
	err error
}

func (p failingProber) FileExists(path string) (bool, error) {
	return false, p.err
}

// countingProber records every candidate it is asked about.
type countingProber struct {
	SetProber
	asked []string
}

func (p *countingProber) FileExists(path string) (bool, error) {
	p.asked = append(p.asked, path)
	return p.SetProber.FileExists(path)
}

func newTestEngine(cfg model.EngineConfig, files ...string) *Engine {
	return NewEngine(cfg, NewSetProber(files...))
}

func TestResolvePath(t *testing.T) {
	cfg := model.EngineConfig{SearchDirs: []string{"/a", "/b/"}}

	tests := []struct {
		name     string
		files    []string
		path     string
		expected string
	}{
		{name: "first directory", files: []string{"/a/foo.h"}, path: "foo.h", expected: "/a/foo.h"},
		{name: "second directory", files: []string{"/b/foo.h"}, path: "foo.h", expected: "/b/foo.h"},
		{name: "first wins when both exist", files: []string{"/a/foo.h", "/b/foo.h"}, path: "foo.h", expected: "/a/foo.h"},
		{name: "nested path", files: []string{"/b/sub/bar.h"}, path: "sub/bar.h", expected: "/b/sub/bar.h"},
		{name: "dot segments kept", files: []string{"/a/../b/x.h"}, path: "../b/x.h", expected: "/a/../b/x.h"},
		{name: "absolute include", files: []string{"/abs/x.h"}, path: "/abs/x.h", expected: "/abs/x.h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newTestEngine(cfg, tt.files...).ResolvePath(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolvePathStopsAtFirstMatch(t *testing.T) {
	prober := &countingProber{SetProber: NewSetProber("/a/foo.h", "/b/foo.h")}
	eng := NewEngine(model.EngineConfig{SearchDirs: []string{"/a", "/b", "/c"}}, prober)

	_, err := eng.ResolvePath("foo.h")
	require.NoError(t, err)
	assert.Equal(t, []string{"/a/foo.h"}, prober.asked)
}

func TestResolvePathNotFound(t *testing.T) {
	eng := newTestEngine(model.EngineConfig{SearchDirs: []string{"/a", "/b"}}, "/a/foo.h")

	_, err := eng.ResolvePath("bar.h")

	var rerr *ResolutionError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "bar.h", rerr.Path)
}

func TestResolvePathNoSearchDirs(t *testing.T) {
	_, err := newTestEngine(model.EngineConfig{}, "foo.h").ResolvePath("foo.h")

	var rerr *ResolutionError
	assert.ErrorAs(t, err, &rerr)
}

func TestResolvePathProbeFailure(t *testing.T) {
	denied := errors.New("permission denied")
	eng := NewEngine(model.EngineConfig{SearchDirs: []string{"/a", "/b"}}, failingProber{err: denied})

	_, err := eng.ResolvePath("foo.h")

	var perr *ProbeError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "/a/foo.h", perr.Path)
	assert.ErrorIs(t, err, denied)
}

func TestMapPath(t *testing.T) {
	tests := []struct {
		name     string
		rules    []model.MappingRule
		resolved string
		expected Mapping
	}{
		{
			name:     "no rules",
			resolved: "/a/foo.h",
			expected: Mapping{},
		},
		{
			name:     "single rule",
			rules:    []model.MappingRule{{Source: "/a", Destination: "X"}},
			resolved: "/a/foo.h",
			expected: Mapping{Chosen: "X/foo.h", Matched: true},
		},
		{
			name:     "literal string prefix",
			rules:    []model.MappingRule{{Source: "/a", Destination: "X"}},
			resolved: "/ab/foo.h",
			expected: Mapping{Chosen: "Xb/foo.h", Matched: true},
		},
		{
			name: "first rule wins",
			rules: []model.MappingRule{
				{Source: "/a", Destination: "X"},
				{Source: "/a", Destination: "Y"},
			},
			resolved: "/a/foo.h",
			expected: Mapping{Chosen: "X/foo.h", Others: []string{"Y/foo.h"}, Matched: true},
		},
		{
			name: "broader fallback listed first still wins",
			rules: []model.MappingRule{
				{Source: "/", Destination: "root/"},
				{Source: "/a/", Destination: ""},
				{Source: "/b", Destination: "B"},
			},
			resolved: "/a/foo.h",
			expected: Mapping{Chosen: "root/a/foo.h", Others: []string{"foo.h"}, Matched: true},
		},
		{
			name:     "no matching rule",
			rules:    []model.MappingRule{{Source: "/b", Destination: "X"}},
			resolved: "/a/foo.h",
			expected: Mapping{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := newTestEngine(model.EngineConfig{MappingRules: tt.rules})
			assert.Equal(t, tt.expected, eng.MapPath(tt.resolved))
		})
	}
}

func TestTransformPath(t *testing.T) {
	cfg := model.EngineConfig{
		SearchDirs:   []string{"/a", "/b"},
		MappingRules: []model.MappingRule{{Source: "/a", Destination: "X"}},
	}
	eng := newTestEngine(cfg, "/a/foo.h", "/b/./bar.h")

	got, err := eng.TransformPath("foo.h")
	require.NoError(t, err)
	assert.Equal(t, "X/foo.h", got)

	// Resolves under /b but no rule matches: spelling is kept exactly.
	got, err = eng.TransformPath("./bar.h")
	require.NoError(t, err)
	assert.Equal(t, "./bar.h", got)

	_, err = eng.TransformPath("missing.h")
	var rerr *ResolutionError
	assert.ErrorAs(t, err, &rerr)
}

func TestTransformPathWarnsOnMultipleCandidates(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	cfg := model.EngineConfig{
		SearchDirs: []string{"/a"},
		MappingRules: []model.MappingRule{
			{Source: "/a", Destination: "X"},
			{Source: "/a", Destination: "Y"},
		},
	}
	eng := newTestEngine(cfg, "/a/foo.h").WithLogger(logger)

	got, err := eng.TransformPath("foo.h")
	require.NoError(t, err)
	assert.Equal(t, "X/foo.h", got)

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "multiple candidates")
	assert.Contains(t, out, "first=X/foo.h")
	assert.Contains(t, out, "Y/foo.h")

	buf.Reset()
	got, err = eng.TransformString("int a;\n#include \"foo.h\"\n")
	require.NoError(t, err)
	assert.Equal(t, "int a;\n#include \"X/foo.h\"", got)
	assert.Contains(t, buf.String(), "line=2")
}

func TestTransformWarningsCarryLineAndFile(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"inc/foo.h": "",
		"inc/bar.h": "",
		"main.c":    "int a;\n#include \"foo.h\"\n#include \"bar.h\"\n",
	})
	inc := filepath.Join(root, "inc")

	cfg := model.EngineConfig{
		SearchDirs: []string{inc},
		MappingRules: []model.MappingRule{
			{Source: inc, Destination: "X"},
			{Source: inc, Destination: "Y"},
		},
	}
	eng := NewEngine(cfg, OSProber{}).WithLogger(logger)

	src := filepath.Join(root, "main.c")
	_, err := eng.RewriteFile(src)
	require.NoError(t, err)

	var warnings []string
	for _, l := range strings.Split(buf.String(), "\n") {
		if strings.Contains(l, "multiple candidates") {
			warnings = append(warnings, l)
		}
	}
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "line=2")
	assert.Contains(t, warnings[0], "first=X/foo.h")
	assert.Contains(t, warnings[1], "line=3")
	assert.Contains(t, warnings[1], "first=X/bar.h")
	for _, w := range warnings {
		assert.Contains(t, w, "file="+src)
	}
}

func TestJoinSearchPath(t *testing.T) {
	assert.Equal(t, "/a/foo.h", joinSearchPath("/a", "foo.h"))
	assert.Equal(t, "/a/foo.h", joinSearchPath("/a/", "foo.h"))
	assert.Equal(t, "/a/foo.h", joinSearchPath("/a//", "foo.h"))
	assert.Equal(t, "/foo.h", joinSearchPath("/", "foo.h"))
	assert.Equal(t, "/a/./foo.h", joinSearchPath("/a", "./foo.h"))
	assert.Equal(t, "foo.h", joinSearchPath("", "foo.h"))
	assert.Equal(t, "/x/foo.h", joinSearchPath("/a", "/x/foo.h"))
}
