package rewrite

import (
	"bufio"
	"errors"
	"io"
	"regexp"
	"strings"

	"transform-include/internal/model"
)

// Matches:
// #include "foo.h"
//     #include "sub/bar.h" // comment
// Angle-bracket includes never match. Whitespace includes Unicode
// separators such as U+00A0.
var includeRe = regexp.MustCompile(`^([\s\p{Z}]*#include[\s\p{Z}]*")([^"]+)(".*)$`)

// ParseInclude splits a quoted include line. ok is false for any other line.
func ParseInclude(line string) (ref model.IncludeReference, ok bool) {
	m := includeRe.FindStringSubmatch(line)
	if len(m) != 4 {
		return model.IncludeReference{}, false
	}
	return model.IncludeReference{Leading: m[1], Path: m[2], Trailing: m[3]}, true
}

// Transform reads r line by line and returns the rewritten lines joined by
// "\n", without a trailing newline. Events logged for a line carry its
// number as "line". Processing stops at the first error that
// keep-going does not cover; nothing is returned in that case.
func (e *Engine) Transform(r io.Reader) (string, error) {
	var newLines []string

	err := eachLine(r, func(n int, line string) error {
		le := e.WithLogger(e.log.With("line", n))

		newLine, err := le.TransformLine(line)
		if err != nil {
			var rerr *ResolutionError
			if !errors.As(err, &rerr) {
				return err
			}
			rerr.Line = n
			if !e.cfg.KeepGoing {
				return err
			}
			le.log.Info("unresolved include kept", "path", rerr.Path)
			newLine = line
		}
		newLines = append(newLines, newLine)
		return nil
	})
	if err != nil {
		return "", err
	}

	return strings.Join(newLines, "\n"), nil
}

// TransformString is Transform over an in-memory string.
func (e *Engine) TransformString(content string) (string, error) {
	return e.Transform(strings.NewReader(content))
}

// TransformLine rewrites a single line. Lines that are not quoted includes
// are returned unchanged.
func (e *Engine) TransformLine(line string) (string, error) {
	ref, ok := ParseInclude(line)
	if !ok {
		return line, nil
	}

	e.log.Debug("match", "line", line)

	newPath, err := e.TransformPath(ref.Path)
	if err != nil {
		return "", err
	}

	newLine := ref.Line(newPath)
	e.log.Debug("into", "line", newLine)
	return newLine, nil
}

// eachLine calls fn with every line of r, numbered from 1, with the line
// terminator ("\n" or "\r\n") removed. There is no line length limit.
func eachLine(r io.Reader, fn func(n int, line string) error) error {
	br := bufio.NewReader(r)
	for n := 1; ; n++ {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			if trimmed, ok := strings.CutSuffix(line, "\n"); ok {
				line = strings.TrimSuffix(trimmed, "\r")
			}
			if ferr := fn(n, line); ferr != nil {
				return ferr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
