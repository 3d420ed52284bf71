// Package rewrite rewrites quoted include directives.
//
// Each `#include "path"` line is handed to the Engine, which first resolves
// the path against the configured search directories (first directory
// containing it wins) and then maps the resolved path through the mapping
// rules (first matching rule wins, later matches are only reported).
// A resolved path matching no rule is left exactly as written.
//
// Filesystem access is limited to the Prober capability, so the engine can be
// driven by SetProber in tests.
package rewrite
