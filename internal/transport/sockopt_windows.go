//go:build windows

package transport

import "golang.org/x/sys/windows"

// setSocketOptions lets a new replay bind a source port still held by a
// previous socket, and allows broadcast destinations.
func setSocketOptions(fd uintptr) error {
	h := windows.Handle(fd)
	if err := windows.SetsockoptInt(h, windows.SOL_SOCKET, windows.SO_REUSEADDR, 1); err != nil {
		return err
	}
	return windows.SetsockoptInt(h, windows.SOL_SOCKET, windows.SO_BROADCAST, 1)
}
