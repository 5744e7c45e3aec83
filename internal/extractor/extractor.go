// Package extractor builds a windowed table from CSV bytes.
//
// The extractor drives the tokenizer field by field and applies the row and
// column window as each record completes. It stops as soon as the row window
// is satisfied, so the bytes after the window are never tokenized.
package extractor

import (
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/shapestone/shape-csv-window/internal/tokenizer"
	"github.com/shapestone/shape-csv-window/internal/window"
)

// Options configures the extractor.
type Options struct {
	// BufferSize is the size of the tokenizer output buffer. Default: DefaultBufferSize
	BufferSize int
	// Logger receives debug records about early termination. Default: discard
	Logger *slog.Logger
}

// DefaultOptions returns default extractor options.
func DefaultOptions() Options {
	return Options{
		BufferSize: DefaultBufferSize,
		Logger:     slog.New(slog.DiscardHandler),
	}
}

// Result is a windowed table together with scan statistics.
type Result struct {
	// Rows holds the selected rows in source order.
	Rows [][]string
	// Offsets holds, for each row in Rows, the byte offset where its record starts.
	Offsets []int
	// Consumed is the number of input bytes the tokenizer consumed.
	Consumed int
	// Stopped reports that scanning ended early because the row window was satisfied.
	Stopped bool
}

// extractor holds the state of a single Extract call.
type extractor struct {
	input  []byte
	pos    int
	win    window.Window
	reader tokenizer.Reader
	logger *slog.Logger

	out  []byte   // tokenizer output buffer
	cell []byte   // bytes of the field in progress
	row  []string // cells of the record in progress, only filled when keep is set

	rowIndex   int
	colIndex   int
	keep       bool // the record in progress is inside the row window
	rowStart   int
	fieldStart int

	result *Result
}

// Extract tokenizes input and returns the rows and columns selected by w.
//
// A record ending without a line break at the end of input is still returned.
// Every field consumed before the scan ends must be valid UTF-8, including
// fields of rows outside the window; otherwise Extract returns a *DecodeError
// and no rows.
func Extract(input []byte, w window.Window, opts Options) (*Result, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize = DefaultBufferSize
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	e := &extractor{
		input:  input,
		win:    w,
		logger: opts.Logger,
		out:    getOutput(opts.BufferSize),
		cell:   getCell(),
		row:    getRow(),
		result: &Result{Rows: [][]string{}, Offsets: []int{}},
	}
	defer e.release()

	if err := e.run(); err != nil {
		return nil, err
	}
	e.result.Consumed = e.pos
	return e.result, nil
}

// run is the extraction loop: read a field, finish it, and at each record end
// apply the inclusion test, then the termination test, then advance.
func (e *extractor) run() error {
	e.startRecord()

	for {
		outcome, nin, nout := e.reader.ReadField(e.input[e.pos:], e.out)
		e.pos += nin
		e.cell = append(e.cell, e.out[:nout]...)

		switch o := outcome.(type) {
		case tokenizer.InputExhausted, tokenizer.End:
			return nil

		case tokenizer.OutputFull:
			continue

		case tokenizer.FieldComplete:
			if err := e.finishField(); err != nil {
				return err
			}
			if !o.RecordEnd {
				continue
			}

			d := window.Decide(e.rowIndex, e.win.StartRow, e.win.RowCount)
			if d.Include {
				e.result.Rows = append(e.result.Rows, window.Columns(e.row, e.win.StartCol, e.win.ColCount))
				e.result.Offsets = append(e.result.Offsets, e.rowStart)
			}
			if d.Stop {
				e.result.Stopped = true
				e.logger.Debug("row window satisfied, stopping scan",
					slog.Int("row", e.rowIndex),
					slog.Int("consumed", e.pos),
					slog.Int("remaining", len(e.input)-e.pos))
				return nil
			}
			e.rowIndex++
			e.startRecord()

		default:
			return fmt.Errorf("unexpected tokenizer outcome %v", outcome)
		}
	}
}

// startRecord resets the per-record state for the record at e.rowIndex.
func (e *extractor) startRecord() {
	e.row = e.row[:0]
	e.colIndex = 0
	e.keep = e.win.Includes(e.rowIndex)

	e.rowStart = e.pos
	// An LF right after a record that ended with CR is part of that terminator.
	if e.pos > 0 && e.pos < len(e.input) && e.input[e.pos-1] == '\r' && e.input[e.pos] == '\n' {
		e.rowStart++
	}
	e.fieldStart = e.rowStart
}

// finishField validates the accumulated field bytes and appends the cell to
// the record when the record is kept.
func (e *extractor) finishField() error {
	if !utf8.Valid(e.cell) {
		return &DecodeError{
			Row:    e.rowIndex,
			Column: e.colIndex,
			Offset: e.fieldStart,
			Err:    ErrInvalidUTF8,
		}
	}
	if e.keep {
		e.row = append(e.row, string(e.cell))
	}
	e.cell = e.cell[:0]
	e.colIndex++
	e.fieldStart = e.pos
	return nil
}

// release returns the call's buffers to their pools.
func (e *extractor) release() {
	putOutput(e.out)
	putCell(e.cell)
	putRow(e.row)
	e.out, e.cell, e.row = nil, nil, nil
}
