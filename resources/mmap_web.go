//go:build js || wasip1

package resources

import (
	"io"
	"os"
)

// No mmap on these targets, so the file is read into memory.
func readMmap(file *os.File) ([]byte, func() error, error) {
	contents, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, err
	}
	return contents, func() error { return nil }, nil
}
