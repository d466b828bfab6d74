//go:build windows

package sandbox

import "os"

type probe uint32

const (
	probeRead  probe = 1
	probeWrite probe = 2
)

// accessible approximates access(2) from the file mode bits. Windows has no
// real uid-based access call, so a stat-able file is considered readable and
// writability follows the read-only attribute.
func accessible(path string, mode probe) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if mode == probeWrite {
		return info.Mode().Perm()&0200 != 0
	}
	return true
}
