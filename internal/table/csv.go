package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	rcerrors "github.com/coral-mesh/rowcut/internal/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrNoHeader is returned for an input without a header row.
var ErrNoHeader = errors.New("input has no header row")

// Dialect describes the delimited text layout of a table.
type Dialect struct {
	Comma rune
	CRLF  bool
	BOM   bool
}

// DefaultComma picks the delimiter for path from its extension.
func DefaultComma(path string) rune {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".tab":
		return '\t'
	default:
		return ','
	}
}

// ParseComma converts a --delimiter value into a rune. "\t" and "tab" select
// a tab.
func ParseComma(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case `\t`, "tab":
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}
	return r, nil
}

// Decode parses delimited text into a Table. comma may be zero to use ','.
// Every row must have as many fields as the header.
func Decode(data []byte, comma rune) (*Table, error) {
	if comma == 0 {
		comma = ','
	}
	d := Dialect{
		Comma: comma,
		CRLF:  bytes.Contains(data, []byte("\r\n")),
		BOM:   bytes.HasPrefix(data, utf8BOM),
	}

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	r.Comma = comma

	header, err := r.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return &Table{Header: header, Rows: rows, Dialect: d}, nil
}

// Encode writes t using its dialect.
func Encode(w io.Writer, t *Table) error {
	if t.Dialect.BOM {
		if _, err := w.Write(utf8BOM); err != nil {
			return err
		}
	}

	cw := csv.NewWriter(w)
	if t.Dialect.Comma != 0 {
		cw.Comma = t.Dialect.Comma
	}
	cw.UseCRLF = t.Dialect.CRLF

	if err := writeRecord(w, cw, t.Header, t.Dialect.CRLF); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := writeRecord(w, cw, row, t.Dialect.CRLF); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeRecord writes one record through cw. csv.Writer emits a lone empty
// field as a blank line, which csv.Reader skips, so that record is quoted
// directly on w instead.
func writeRecord(w io.Writer, cw *csv.Writer, record []string, crlf bool) error {
	if len(record) != 1 || record[0] != "" {
		return cw.Write(record)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	eol := "\n"
	if crlf {
		eol = "\r\n"
	}
	_, err := io.WriteString(w, `""`+eol)
	return err
}

// FileAccessError reports an input that cannot be read or an output that
// cannot be written.
type FileAccessError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *FileAccessError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// ExitCode implements rcerrors.Coded.
func (e *FileAccessError) ExitCode() int {
	return rcerrors.ExitFileAccess
}
