package ipc

import (
	"os"
	"path/filepath"
)

const socketName = "setroot.sock"

// SocketPath returns the daemon socket path in $XDG_RUNTIME_DIR, or in the
// temporary directory if that is not set.
func SocketPath() string {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, socketName)
}
