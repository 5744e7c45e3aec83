// Package mapfile exposes a file's contents as a read-only byte slice,
// memory-mapped where the platform supports it.
package mapfile

// Mapping is the contents of an opened file.
// The bytes must not be used after Close.
type Mapping struct {
	data    []byte
	release func() error
}

// Bytes returns the file contents. The slice is read-only; writing to a
// mapped page faults.
func (m *Mapping) Bytes() []byte {
	return m.data
}

// Len returns the file size in bytes.
func (m *Mapping) Len() int {
	return len(m.data)
}

// Close releases the mapping. It is safe to call more than once.
func (m *Mapping) Close() error {
	release := m.release
	m.release = nil
	m.data = nil
	if release == nil {
		return nil
	}
	return release()
}
