//go:build unix

package transport

import "golang.org/x/sys/unix"

// setSocketOptions lets a new replay bind a source port still held by a
// previous socket, and allows broadcast destinations.
func setSocketOptions(fd uintptr) error {
	if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		return err
	}
	return unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST, 1)
}
