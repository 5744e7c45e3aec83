//go:build unix

package mapfile

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Open maps the named file read-only.
//
// Pages are faulted in as the returned bytes are read, so a scan that stops
// early never touches the tail of the file.
func Open(name string) (*Mapping, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	size := stat.Size()
	if size == 0 {
		return &Mapping{data: []byte{}, release: f.Close}, nil
	}
	if size != int64(int(size)) {
		f.Close()
		return nil, fmt.Errorf("map %s: file too large (%d bytes)", name, size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("map %s: %w", name, err)
	}

	return &Mapping{
		data: data,
		release: func() error {
			unmapErr := unix.Munmap(data)
			closeErr := f.Close()
			if unmapErr != nil {
				return fmt.Errorf("unmap %s: %w", name, unmapErr)
			}
			return closeErr
		},
	}, nil
}
