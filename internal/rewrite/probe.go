package rewrite

import (
	"errors"
	"io/fs"
	"os"
	"syscall"
)

// Prober reports whether a candidate path exists.
// "Not found" is (false, nil); an error means the check itself failed.
type Prober interface {
	FileExists(path string) (bool, error)
}

// OSProber implements Prober on the host filesystem. Only existence is
// checked; a file without read permission still exists.
type OSProber struct{}

func (OSProber) FileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return false, nil
	}
	return false, err
}

// SetProber implements Prober over a fixed set of paths.
type SetProber map[string]struct{}

// NewSetProber returns a SetProber containing paths.
func NewSetProber(paths ...string) SetProber {
	s := make(SetProber, len(paths))
	for _, p := range paths {
		s[p] = struct{}{}
	}
	return s
}

func (s SetProber) FileExists(path string) (bool, error) {
	_, ok := s[path]
	return ok, nil
}
