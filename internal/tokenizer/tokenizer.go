package tokenizer

// charClass represents the byte classes the state machine distinguishes.
type charClass uint8

const (
	classOther charClass = iota
	classQuote           // "
	classComma           // ,
	classCR              // \r
	classLF              // \n
)

// charClassTable is a 256-entry lookup table for byte classification.
var charClassTable [256]charClass

func init() {
	charClassTable['"'] = classQuote
	charClassTable[','] = classComma
	charClassTable['\r'] = classCR
	charClassTable['\n'] = classLF
}

// state is the position of the reader inside the current field.
type state uint8

const (
	stateStartField state = iota
	stateInUnquotedField
	stateInQuotedField
	stateQuoteInQuotedField // saw " inside a quoted field: closing quote or first half of ""
)

// Reader tokenizes CSV bytes into field events.
//
// Grammar (RFC 4180 with lenient quoting):
//
//	Record = Field { "," Field } ( CRLF | CR | LF | EOF ) ;
//	Field  = Quoted | Unquoted ;
//	Quoted = '"' { any byte except '"' | '""' } '"' { any byte except "," CR LF } ;
//
// A quote inside an unquoted field is a literal byte. Bytes after a closing
// quote are appended to the field as is. An empty line is a record holding a
// single empty field.
//
// The Reader keeps only the state needed to resume a field after OutputFull,
// so a field longer than the output buffer is delivered over several calls.
// It never allocates and never validates UTF-8.
//
// The end of the input passed to ReadField is the end of the stream: a field
// or record still open when the input runs out is completed there.
type Reader struct {
	state    state
	inRecord bool // at least one byte of the current record was consumed
	skipLF   bool // the last record ended with CR; a following LF belongs to it
	finished bool
}

// NewReader creates a Reader positioned at the start of a stream.
func NewReader() *Reader {
	return &Reader{}
}

// Reset returns the reader to the start of a new stream.
func (r *Reader) Reset() {
	*r = Reader{}
}

// ReadField reads bytes from input until the current field ends or output is
// full. It returns the outcome, the number of bytes consumed from input and
// the number of bytes written to output.
//
// The caller appends output[:nout] to the field being built, then calls again
// with input[nin:]. An empty output buffer makes no progress on bytes that
// must be written and reports OutputFull.
func (r *Reader) ReadField(input, output []byte) (Outcome, int, int) {
	if r.finished {
		return End{}, 0, 0
	}

	nin, nout := 0, 0

	if r.skipLF && len(input) > 0 {
		r.skipLF = false
		if input[0] == '\n' {
			nin++
		}
	}

	if nin == len(input) {
		if !r.inRecord {
			r.finished = true
			return InputExhausted{}, nin, 0
		}
		// Input ended right after a delimiter: the record closes with an empty field.
		r.endRecord()
		return FieldComplete{RecordEnd: true}, nin, 0
	}

	for nin < len(input) {
		b := input[nin]
		class := charClassTable[b]

		switch r.state {
		case stateStartField:
			r.inRecord = true
			switch class {
			case classQuote:
				r.state = stateInQuotedField
				nin++
			case classComma:
				nin++
				return FieldComplete{}, nin, nout
			case classCR:
				r.skipLF = true
				fallthrough
			case classLF:
				nin++
				r.endRecord()
				return FieldComplete{RecordEnd: true}, nin, nout
			default:
				if nout == len(output) {
					return OutputFull{}, nin, nout
				}
				output[nout] = b
				nout++
				nin++
				r.state = stateInUnquotedField
			}

		case stateInUnquotedField:
			switch class {
			case classComma:
				nin++
				r.state = stateStartField
				return FieldComplete{}, nin, nout
			case classCR:
				r.skipLF = true
				fallthrough
			case classLF:
				nin++
				r.endRecord()
				return FieldComplete{RecordEnd: true}, nin, nout
			default:
				if nout == len(output) {
					return OutputFull{}, nin, nout
				}
				output[nout] = b
				nout++
				nin++
			}

		case stateInQuotedField:
			if class == classQuote {
				r.state = stateQuoteInQuotedField
				nin++
				continue
			}
			if nout == len(output) {
				return OutputFull{}, nin, nout
			}
			output[nout] = b
			nout++
			nin++

		case stateQuoteInQuotedField:
			switch class {
			case classQuote:
				// "" is an escaped quote; nothing is consumed until it fits.
				if nout == len(output) {
					return OutputFull{}, nin, nout
				}
				output[nout] = '"'
				nout++
				nin++
				r.state = stateInQuotedField
			case classComma:
				nin++
				r.state = stateStartField
				return FieldComplete{}, nin, nout
			case classCR:
				r.skipLF = true
				fallthrough
			case classLF:
				nin++
				r.endRecord()
				return FieldComplete{RecordEnd: true}, nin, nout
			default:
				if nout == len(output) {
					return OutputFull{}, nin, nout
				}
				output[nout] = b
				nout++
				nin++
				r.state = stateInUnquotedField
			}
		}
	}

	// Input ran out inside a field, including an unterminated quoted field.
	r.endRecord()
	return FieldComplete{RecordEnd: true}, nin, nout
}

// endRecord resets the field state after a record boundary.
func (r *Reader) endRecord() {
	r.state = stateStartField
	r.inRecord = false
}
