package model

import (
	"fmt"
	"strings"
)

// LineContext represents a line from a file with surrounding context
type LineContext struct {
	Before1    string // Line before the target
	Target     string // The actual target line
	After1     string // Line after the target
	LineNumber int    // Line number of the target
	HasBefore1 bool   // Whether there's a line before
	HasAfter1  bool   // Whether there's a line after
	ErrorMsg   string // Set when the line number is out of range
}

// LineContextOf returns the 1-based line lineNumber of content with one line
// of context on each side.
func LineContextOf(content string, lineNumber int) LineContext {
	result := LineContext{
		LineNumber: lineNumber,
	}

	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	if strings.HasSuffix(content, "\n") {
		lines = lines[:len(lines)-1]
	}

	if lineNumber < 1 || lineNumber > len(lines) {
		result.ErrorMsg = fmt.Sprintf("Line %d out of range (file has %d lines)", lineNumber, len(lines))
		return result
	}

	result.Target = lines[lineNumber-1]

	if lineNumber > 1 {
		result.Before1 = lines[lineNumber-2]
		result.HasBefore1 = true
	}
	if lineNumber < len(lines) {
		result.After1 = lines[lineNumber]
		result.HasAfter1 = true
	}

	return result
}
