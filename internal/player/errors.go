package player

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrPlayerInit is returned when a player cannot be built for a recording.
	ErrPlayerInit = errors.New("failed to initialize the player")
	// ErrFileTypeNotSupported is returned for files that are not captures.
	ErrFileTypeNotSupported = errors.New("file type is not supported for playback")
	// ErrCommandChannel is returned when a command cannot reach the engine.
	ErrCommandChannel = errors.New("the command channel failed")
)

// SupportedExtensions lists the capture file extensions the player accepts.
var SupportedExtensions = []string{".pcap", ".pcapng", ".cap"}

// CheckFileType rejects paths whose extension is not a known capture type.
func CheckFileType(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions {
		if ext == e {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrFileTypeNotSupported, ext)
}
