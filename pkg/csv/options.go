// Package csv provides configurable options for CSV window extraction.
package csv

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"

	"github.com/shapestone/shape-csv-window/internal/extractor"
	"github.com/shapestone/shape-csv-window/internal/window"
)

// Window selects rows [StartRow, StartRow+RowCount) and columns
// [StartCol, StartCol+ColCount) of a CSV document. A nil count is unbounded.
//
// The JSON form uses snake_case keys and omits unset fields:
//
//	{"start_row": 1, "row_count": 10, "col_count": 3}
type Window struct {
	// StartRow is the 0-based index of the first row to return. Default: 0
	StartRow int `json:"start_row,omitempty" validate:"min=0" jsonschema:"minimum=0" jsonschema_description:"Index of the first row to return (0-based)."`

	// RowCount is the maximum number of rows to return. Default: nil (all rows)
	RowCount *int `json:"row_count,omitempty" validate:"omitempty,min=0" jsonschema:"minimum=0" jsonschema_description:"Maximum number of rows to return. Omit for all remaining rows."`

	// StartCol is the 0-based index of the first column to return. Default: 0
	StartCol int `json:"start_col,omitempty" validate:"min=0" jsonschema:"minimum=0" jsonschema_description:"Index of the first column to return (0-based)."`

	// ColCount is the maximum number of columns to return. Default: nil (all columns)
	ColCount *int `json:"col_count,omitempty" validate:"omitempty,min=0" jsonschema:"minimum=0" jsonschema_description:"Maximum number of columns to return. Omit for all remaining columns."`
}

// validate is a package-level singleton; building a validator is expensive.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so errors match WindowFromJSON input.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that no start or count is negative.
//
// The returned error matches ErrInvalidWindow with errors.Is and carries one
// *OptionsError per offending field.
func (w Window) Validate() error {
	err := validate.Struct(w)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidWindow, err)
	}

	errs := make([]error, 0, len(fieldErrs)+1)
	errs = append(errs, ErrInvalidWindow)
	for _, fe := range fieldErrs {
		msg := fe.Error()
		if fe.Tag() == "min" {
			msg = "must be at least " + fe.Param()
		}
		errs = append(errs, &OptionsError{Field: fe.Field(), Message: msg})
	}
	return errors.Join(errs...)
}

// bounds converts w to the extractor's representation.
func (w Window) bounds() window.Window {
	b := window.Window{
		StartRow: w.StartRow,
		RowCount: window.Unbounded,
		StartCol: w.StartCol,
		ColCount: window.Unbounded,
	}
	if w.RowCount != nil {
		b.RowCount = *w.RowCount
	}
	if w.ColCount != nil {
		b.ColCount = *w.ColCount
	}
	return b
}

// WindowFromJSON decodes and validates a window from its JSON form.
// Unknown keys are rejected.
//
// Example:
//
//	w, err := csv.WindowFromJSON([]byte(`{"start_row": 1, "row_count": 2}`))
//	if err != nil {
//	    // handle error
//	}
//	rows, err := csv.ParseWindow(data, w)
func WindowFromJSON(data []byte) (Window, error) {
	var w Window
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&w); err != nil {
		return Window{}, fmt.Errorf("csv: decode window: %w", err)
	}
	if err := w.Validate(); err != nil {
		return Window{}, err
	}
	return w, nil
}

// WindowSchema returns the JSON Schema (Draft 2020-12) describing the JSON form
// of Window, for hosts that validate configuration before passing it on.
func WindowSchema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true, // Expand struct definitions inline
	}
	schema := reflector.Reflect(&Window{})

	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("csv: marshal window schema: %w", err)
	}
	return out, nil
}

// Option configures a Parse call.
type Option func(*config)

type config struct {
	window     Window
	bufferSize int
	logger     *slog.Logger
}

func newConfig(opts []Option) config {
	cfg := config{bufferSize: extractor.DefaultBufferSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithStartRow sets the 0-based index of the first row to return.
func WithStartRow(n int) Option {
	return func(c *config) {
		c.window.StartRow = n
	}
}

// WithRowCount limits the number of rows returned. Scanning stops once the
// limit is reached.
func WithRowCount(n int) Option {
	return func(c *config) {
		c.window.RowCount = &n
	}
}

// WithStartCol sets the 0-based index of the first column to return.
func WithStartCol(n int) Option {
	return func(c *config) {
		c.window.StartCol = n
	}
}

// WithColCount limits the number of columns returned per row.
func WithColCount(n int) Option {
	return func(c *config) {
		c.window.ColCount = &n
	}
}

// WithWindow replaces the whole window. Options after it still apply.
func WithWindow(w Window) Option {
	return func(c *config) {
		c.window = w
	}
}

// WithBufferSize sets the size in bytes of the buffer fields are tokenized into.
// Fields longer than the buffer are assembled from several chunks. Values
// below 1 select the default of 1024.
func WithBufferSize(n int) Option {
	return func(c *config) {
		c.bufferSize = n
	}
}

// WithLogger sets the logger for debug output about the scan. The default
// discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}
