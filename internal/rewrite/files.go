package rewrite

import (
	"bytes"
	"errors"
	"fmt"
	"os"
)

// FileResult holds one file before and after rewriting.
type FileResult struct {
	Path      string
	Original  string
	Rewritten string // Always ends with exactly one added "\n"
}

// Changed reports whether writing the result would modify the file.
func (r FileResult) Changed() bool {
	return r.Original != r.Rewritten
}

// RewriteFile reads path and transforms its content. Nothing is written.
func (e *Engine) RewriteFile(path string) (FileResult, error) {
	fe := e.WithLogger(e.log.With("file", path))
	fe.log.Debug("open")

	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, fmt.Errorf("failed to read file %q: %w", path, err)
	}

	rewritten, err := fe.Transform(bytes.NewReader(data))
	if err != nil {
		var rerr *ResolutionError
		if errors.As(err, &rerr) {
			rerr.File = path
		}
		return FileResult{}, fmt.Errorf("failed to transform file %q: %w", path, err)
	}

	return FileResult{
		Path:      path,
		Original:  string(data),
		Rewritten: rewritten + "\n",
	}, nil
}

// WriteResult overwrites the file in place with the rewritten content.
func WriteResult(res FileResult) error {
	if err := os.WriteFile(res.Path, []byte(res.Rewritten), 0644); err != nil {
		return fmt.Errorf("failed to write file %q: %w", res.Path, err)
	}
	return nil
}
