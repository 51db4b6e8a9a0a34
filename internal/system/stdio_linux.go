//go:build linux

package system

import (
	"os"

	"golang.org/x/sys/unix"
)

// RedirectStdIO points stdout and stderr at path, so panics and stray prints
// end up in the file while the console is in graphics mode.
func RedirectStdIO(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, target := range []*os.File{os.Stdout, os.Stderr} {
		if err := unix.Dup3(int(f.Fd()), int(target.Fd()), 0); err != nil {
			return err
		}
	}
	return nil
}
