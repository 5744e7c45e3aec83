package extractor

import "sync"

// DefaultBufferSize is the capacity of the output buffer handed to the tokenizer.
const DefaultBufferSize = 1024

// outputPool holds tokenizer output buffers of DefaultBufferSize bytes.
var outputPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, DefaultBufferSize)
		return &b
	},
}

// cellPool holds buffers that accumulate a field's bytes across OutputFull chunks.
var cellPool = sync.Pool{
	New: func() interface{} {
		// Pre-allocate with capacity for typical field content
		b := make([]byte, 0, 64)
		return &b
	},
}

// rowPool holds the scratch []string a row is assembled in before column slicing.
var rowPool = sync.Pool{
	New: func() interface{} {
		// Pre-allocate with capacity for typical CSV records (8 fields)
		s := make([]string, 0, 8)
		return &s
	},
}

// getOutput returns an output buffer of exactly size bytes. Only the default
// size is pooled.
func getOutput(size int) []byte {
	if size != DefaultBufferSize {
		return make([]byte, size)
	}
	return *outputPool.Get().(*[]byte)
}

func putOutput(buf []byte) {
	if len(buf) != DefaultBufferSize {
		return
	}
	outputPool.Put(&buf)
}

// getCell returns an empty cell buffer that may have capacity.
func getCell() []byte {
	p := cellPool.Get().(*[]byte)
	return (*p)[:0]
}

// putCell returns a cell buffer to the pool unless it grew too large to keep.
func putCell(buf []byte) {
	const maxCapacity = 4096
	if cap(buf) > maxCapacity {
		return
	}
	buf = buf[:0]
	cellPool.Put(&buf)
}

// getRow returns an empty row slice that may have capacity.
func getRow() []string {
	p := rowPool.Get().(*[]string)
	return (*p)[:0]
}

// putRow clears row so pooled slices do not pin cell strings, then pools it.
func putRow(row []string) {
	const maxCapacity = 1024
	if cap(row) > maxCapacity {
		return
	}
	clear(row[:cap(row)])
	row = row[:0]
	rowPool.Put(&row)
}
