package translate

import "strings"

// safeCommands is the whitelist of command names a translated line may
// invoke. Anything else is refused before dispatch.
var safeCommands = map[string]bool{
	"ls":      true,
	"cd":      true,
	"pwd":     true,
	"mkdir":   true,
	"rm":      true,
	"trash":   true,
	"help":    true,
	"exit":    true,
	"monitor": true,
}

// rmDangerous marks rm arguments that a translated request must never
// carry, regardless of what the sandbox would later decide.
var rmDangerous = []string{
	"*", "/", `\`, "..", "~", "c:", "d:", "system32", "windows",
}

// IsSafeCommand reports whether a translated command line is allowed to
// run: the command must be whitelisted, and rm arguments must not reference
// wildcards, roots, or system locations.
func IsSafeCommand(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}

	if !safeCommands[parts[0]] {
		return false
	}

	if parts[0] == "rm" {
		for _, arg := range parts[1:] {
			lower := strings.ToLower(arg)
			for _, pattern := range rmDangerous {
				if strings.Contains(lower, pattern) {
					return false
				}
			}
		}
	}
	return true
}
