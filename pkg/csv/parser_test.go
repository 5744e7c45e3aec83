package csv_test

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapestone/shape-csv-window/pkg/csv"
)

func intPtr(n int) *int { return &n }

// TestParse_Scenarios covers the documented examples end to end.
func TestParse_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  []csv.Option
		want  [][]string
	}{
		{
			name:  "no window",
			input: "a,b,c\n1,2,3\n",
			want:  [][]string{{"a", "b", "c"}, {"1", "2", "3"}},
		},
		{
			name:  "column window",
			input: "a,b,c,d\n1,2,3,4",
			opts:  []csv.Option{csv.WithStartCol(1), csv.WithColCount(2)},
			want:  [][]string{{"b", "c"}, {"2", "3"}},
		},
		{
			name:  "row window",
			input: "a,b\n1,2\n3,4\n5,6",
			opts:  []csv.Option{csv.WithStartRow(1), csv.WithRowCount(2)},
			want:  [][]string{{"1", "2"}, {"3", "4"}},
		},
		{
			name:  "quoting",
			input: "\"a,b\",c\n\"\"\"quoted\"\"\",\"line\nbreak\"",
			want:  [][]string{{"a,b", "c"}, {`"quoted"`, "line\nbreak"}},
		},
		{
			name:  "start row past end",
			input: "a,b\n1,2",
			opts:  []csv.Option{csv.WithStartRow(5)},
			want:  [][]string{},
		},
		{
			name:  "over-wide column count",
			input: "a,b\n1,2",
			opts:  []csv.Option{csv.WithColCount(5)},
			want:  [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:  "start column past end",
			input: "a,b\n1,2,3",
			opts:  []csv.Option{csv.WithStartCol(2)},
			want:  [][]string{{}, {"3"}},
		},
		{
			name:  "combined window",
			input: "a,b,c,d\n1,2,3,4\n5,6,7,8\n9,10,11,12",
			opts: []csv.Option{
				csv.WithStartCol(1), csv.WithStartRow(1), csv.WithColCount(2), csv.WithRowCount(2),
			},
			want: [][]string{{"2", "3"}, {"6", "7"}},
		},
		{
			name:  "empty input",
			input: "",
			want:  [][]string{},
		},
		{
			name:  "zero row count",
			input: "a\nb",
			opts:  []csv.Option{csv.WithRowCount(0)},
			want:  [][]string{},
		},
		{
			name:  "unicode",
			input: "α,β,γ\n🦀,🎉,🌟",
			want:  [][]string{{"α", "β", "γ"}, {"🦀", "🎉", "🌟"}},
		},
		{
			name:  "small buffer",
			input: "\"a long quoted field, with a comma\",x\nnext,row",
			opts:  []csv.Option{csv.WithBufferSize(4)},
			want:  [][]string{{"a long quoted field, with a comma", "x"}, {"next", "row"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := csv.Parse([]byte(tt.input), tt.opts...)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseWindow(t *testing.T) {
	data := []byte("a,b,c\n1,2,3\n4,5,6\n7,8,9")

	got, err := csv.ParseWindow(data, csv.Window{StartRow: 1, RowCount: intPtr(2), StartCol: 2})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"3"}, {"6"}}, got)

	got, err = csv.ParseWindow(data, csv.Window{})
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

// TestParse_TableSize checks |Table| = min(row_count, max(0, total-start_row)).
func TestParse_TableSize(t *testing.T) {
	data := []byte(generateLargeCSV(20)) // header + 20 rows
	const total = 21

	for _, start := range []int{0, 1, 10, 20, 21, 30} {
		got, err := csv.Parse(data, csv.WithStartRow(start))
		require.NoError(t, err)
		assert.Len(t, got, max(0, total-start), "start_row=%d", start)

		for _, count := range []int{0, 1, 5, 21, 100} {
			got, err := csv.Parse(data, csv.WithStartRow(start), csv.WithRowCount(count))
			require.NoError(t, err)
			assert.Len(t, got, min(count, max(0, total-start)), "start_row=%d row_count=%d", start, count)
		}
	}
}

// TestParse_OrderPreserved checks that rows and cells keep source order under a window.
func TestParse_OrderPreserved(t *testing.T) {
	var b strings.Builder
	for r := 0; r < 50; r++ {
		for c := 0; c < 6; c++ {
			if c > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "r%dc%d", r, c)
		}
		b.WriteByte('\n')
	}

	got, err := csv.Parse([]byte(b.String()), csv.WithStartRow(10), csv.WithRowCount(30), csv.WithStartCol(2), csv.WithColCount(3))
	require.NoError(t, err)
	require.Len(t, got, 30)
	for i, row := range got {
		want := []string{
			fmt.Sprintf("r%dc2", i+10),
			fmt.Sprintf("r%dc3", i+10),
			fmt.Sprintf("r%dc4", i+10),
		}
		assert.Equal(t, want, row)
	}
}

// writeCSV renders records with the quoting rules the parser reads: fields
// holding a comma, quote, CR or LF are quoted and quotes are doubled.
func writeCSV(records [][]string) []byte {
	var buf bytes.Buffer
	for _, record := range records {
		for i, field := range record {
			if i > 0 {
				buf.WriteByte(',')
			}
			if strings.ContainsAny(field, ",\"\r\n") || (len(record) == 1 && field == "") {
				buf.WriteByte('"')
				buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
				buf.WriteByte('"')
				continue
			}
			buf.WriteString(field)
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func TestParse_RoundTrip(t *testing.T) {
	tables := [][][]string{
		{{"a", "b", "c"}, {"1", "2", "3"}},
		{{"with,comma", `with "quote"`, "with\nnewline", "with\r\ncrlf"}},
		{{""}, {"", ""}, {"x"}},
		{{`"`, `""`, `,`, "\r"}},
		{{"α", "🦀 crab", "naïve, café"}},
		{{strings.Repeat("long field ", 500), "tail"}},
	}

	for i, table := range tables {
		t.Run(fmt.Sprintf("table %d", i), func(t *testing.T) {
			got, err := csv.Parse(writeCSV(table), csv.WithBufferSize(16))
			require.NoError(t, err)
			assert.Equal(t, table, got)
		})
	}
}

func TestParse_NoTrailingNewline(t *testing.T) {
	got, err := csv.Parse([]byte("a,b\nlast,row"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"last", "row"}}, got)

	got, err = csv.Parse([]byte("a,b\n\"last\",\"quoted\""))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"last", "quoted"}}, got)
}

func TestParse_InvalidUTF8(t *testing.T) {
	data := []byte("name,value\nok,\xff\xfe\n")

	got, err := csv.Parse(data)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, csv.ErrInvalidUTF8)

	var de *csv.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 1, de.Row)
	assert.Equal(t, 1, de.Column)
	assert.Equal(t, 14, de.Offset)

	// The scan ends on the record after the window, so rows beyond it are
	// never decoded.
	got, err = csv.Parse([]byte("name,value\nok,fine\n\xff,bad\n"), csv.WithRowCount(1))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"name", "value"}}, got)

	// Skipped rows are still decoded.
	_, err = csv.Parse([]byte("\xff\nok"), csv.WithStartRow(1))
	assert.ErrorIs(t, err, csv.ErrInvalidUTF8)
}

func TestParse_InvalidWindow(t *testing.T) {
	got, err := csv.Parse([]byte("a,b"), csv.WithStartRow(-1))
	assert.Nil(t, got)
	assert.ErrorIs(t, err, csv.ErrInvalidWindow)
}

func TestParseReader(t *testing.T) {
	got, err := csv.ParseReader(strings.NewReader(generateLargeCSV(1000)), csv.WithStartRow(1), csv.WithRowCount(3), csv.WithColCount(2))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "Alice"}, {"1", "Alice"}, {"1", "Alice"}}, got)

	got, err = csv.ParseReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)

	readErr := errors.New("disk on fire")
	_, err = csv.ParseReader(iotest.ErrReader(readErr))
	assert.ErrorIs(t, err, readErr)

	_, err = csv.ParseReader(iotest.OneByteReader(strings.NewReader("a,\xff")))
	assert.ErrorIs(t, err, csv.ErrInvalidUTF8)
}

func TestParseFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "people.csv")
	require.NoError(t, os.WriteFile(name, []byte(generateLargeCSV(500)), 0o644))

	got, err := csv.ParseFile(name, csv.WithStartRow(1), csv.WithRowCount(2), csv.WithStartCol(1), csv.WithColCount(1))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Alice"}, {"Alice"}}, got)

	all, err := csv.ParseFile(name)
	require.NoError(t, err)
	assert.Len(t, all, 501)

	empty := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	got, err = csv.ParseFile(empty)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = csv.ParseFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestParse_DoesNotRetainInput(t *testing.T) {
	data := []byte("abc,def\nghi,jkl")
	got, err := csv.Parse(data)
	require.NoError(t, err)

	for i := range data {
		data[i] = 'x'
	}
	assert.Equal(t, [][]string{{"abc", "def"}, {"ghi", "jkl"}}, got)
}

func TestParse_Concurrent(t *testing.T) {
	data := []byte(generateLargeCSV(200))
	want, err := csv.Parse(data, csv.WithStartRow(5), csv.WithRowCount(50), csv.WithStartCol(1))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := csv.Parse(data, csv.WithStartRow(5), csv.WithRowCount(50), csv.WithStartCol(1))
			if err != nil {
				errs <- err
				return
			}
			if len(got) != len(want) || got[0][0] != want[0][0] {
				errs <- fmt.Errorf("got %d rows, want %d", len(got), len(want))
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "CSV", csv.Format())
}

func generateLargeCSV(rows int) string {
	var sb strings.Builder
	sb.WriteString("id,name,age,email\n")
	for i := 0; i < rows; i++ {
		sb.WriteString("1,Alice,30,alice@example.com\n")
	}
	return sb.String()
}
