//go:build !unix

package mapfile

import "os"

// Open reads the named file into memory. Platforms without mmap get the
// whole file up front; Close is a no-op.
func Open(name string) (*Mapping, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return &Mapping{data: data}, nil
}
