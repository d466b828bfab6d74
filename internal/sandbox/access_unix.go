//go:build unix

package sandbox

import "golang.org/x/sys/unix"

type probe uint32

const (
	probeRead  probe = unix.R_OK
	probeWrite probe = unix.W_OK
)

// accessible probes the real permission bits with access(2).
func accessible(path string, mode probe) bool {
	return unix.Access(path, uint32(mode)) == nil
}
