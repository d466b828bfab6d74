package sandbox

import (
	"strings"

	"goterm/pkg/logger"
)

// denylist holds substrings that mark an argument as dangerous-looking:
// parent-directory traversal markers, home shortcuts, and absolute
// references to system configuration trees. Matching is case-insensitive.
var denylist = []string{
	"../",
	`..\`,
	"~/",
	"/etc/",
	"/sys/",
	"/proc/",
}

// Gate is a pre-flight filter on raw argument strings, run before any path
// resolution. It is defense in depth only; Sandbox.Resolve remains the
// authority on whether a path is allowed and runs regardless of the gate.
type Gate struct {
	safeMode bool
}

// NewGate creates a gate. With safeMode set a denylist hit blocks the
// command; otherwise the hit is logged and the arguments pass through.
func NewGate(safeMode bool) *Gate {
	return &Gate{safeMode: safeMode}
}

// SafeMode reports whether the gate is blocking.
func (g *Gate) SafeMode() bool { return g.safeMode }

// Validate scans the arguments for denylisted substrings. The first hit is
// logged as a warning; under safe mode it also fails validation with an
// ArgumentRejectedError. The gate never touches the filesystem.
func (g *Gate) Validate(args []string) error {
	for _, arg := range args {
		lower := strings.ToLower(arg)
		for _, pattern := range denylist {
			if strings.Contains(lower, pattern) {
				logger.Warn().Str("arg", arg).Str("pattern", pattern).Msg("potentially dangerous argument")
				if g.safeMode {
					return &ArgumentRejectedError{Arg: arg, Pattern: pattern}
				}
				return nil
			}
		}
	}
	return nil
}
