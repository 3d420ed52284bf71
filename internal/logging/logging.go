package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// VerbosityLevel defines the logging verbosity.
type VerbosityLevel int

const (
	Verbose VerbosityLevel = iota
	Info
	Warning
	Error
	Off
)

// ParseVerbosity accepts the level names case-insensitively.
func ParseVerbosity(s string) (VerbosityLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "verbose":
		return Verbose, nil
	case "info":
		return Info, nil
	case "warning":
		return Warning, nil
	case "error":
		return Error, nil
	case "off":
		return Off, nil
	}
	return Off, fmt.Errorf("invalid verbosity level '%s'. Valid levels are Verbose, Info, Warning, Error, Off", s)
}

func (v VerbosityLevel) String() string {
	switch v {
	case Verbose:
		return "Verbose"
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return "Off"
	}
}

// SlogLevel maps v onto a slog level. Off maps above every level slog emits.
func (v VerbosityLevel) SlogLevel() slog.Level {
	switch v {
	case Verbose:
		return slog.LevelDebug
	case Info:
		return slog.LevelInfo
	case Warning:
		return slog.LevelWarn
	case Error:
		return slog.LevelError
	default:
		return slog.LevelError + 4
	}
}

// NewLogger returns a text logger writing to w at verbosity v.
func NewLogger(w io.Writer, v VerbosityLevel) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: v.SlogLevel()}))
}

// Setup installs a logger for v as the slog default.
func Setup(w io.Writer, v VerbosityLevel) {
	slog.SetDefault(NewLogger(w, v))
}
