package rewrite

import "fmt"

// ResolutionError is returned when an include path exists in none of the
// search directories. It is the only error suppressed by keep-going mode.
type ResolutionError struct {
	Path string // The include path as written
	File string // Set once the file being processed is known
	Line int    // 1-based line number, 0 when unknown
}

func (e *ResolutionError) Error() string {
	msg := fmt.Sprintf("failed to resolve include path %q in any search directory", e.Path)
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

// ProbeError is returned when the existence check for a candidate failed.
// It is never suppressed.
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("failed to check %q: %v", e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}
