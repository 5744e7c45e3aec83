// Package tokenizer provides an incremental, allocation-free CSV field tokenizer.
package tokenizer

import "fmt"

// Outcome is the result of a single ReadField call.
//
// The concrete types are InputExhausted, End, OutputFull and FieldComplete.
// Callers are expected to switch on the concrete type:
//
//	switch o := outcome.(type) {
//	case tokenizer.InputExhausted, tokenizer.End:
//	    // stop
//	case tokenizer.OutputFull:
//	    // drain the buffer, call again
//	case tokenizer.FieldComplete:
//	    // drain the buffer, finish the field; o.RecordEnd finishes the record
//	}
type Outcome interface {
	fmt.Stringer
	outcome()
}

// InputExhausted reports that the input held no more bytes and no record was
// in progress. It is terminal.
type InputExhausted struct{}

// End reports that the reader already reached the end of the stream.
// Every call after InputExhausted returns End.
type End struct{}

// OutputFull reports that the output buffer filled before the current field
// ended. No field or record boundary occurred.
type OutputFull struct{}

// FieldComplete reports that the output buffer holds the final bytes of the
// current field. RecordEnd is set when the field also ended its record.
type FieldComplete struct {
	RecordEnd bool
}

func (InputExhausted) outcome() {}
func (End) outcome()            {}
func (OutputFull) outcome()     {}
func (FieldComplete) outcome()  {}

func (InputExhausted) String() string { return "InputExhausted" }
func (End) String() string            { return "End" }
func (OutputFull) String() string     { return "OutputFull" }

func (f FieldComplete) String() string {
	if f.RecordEnd {
		return "FieldComplete(record end)"
	}
	return "FieldComplete"
}
