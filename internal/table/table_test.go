package table

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	data := []byte("id,timestamp,value\n1,2023-01-01,a\n2,2023-01-15,\"b,c\"\n")

	tbl, err := Decode(data, ',')
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "timestamp", "value"}, tbl.Header)
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, []string{"2", "2023-01-15", "b,c"}, tbl.Rows[1])
	assert.False(t, tbl.Dialect.CRLF)
	assert.False(t, tbl.Dialect.BOM)
}

func TestDecode_Errors(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, err := Decode(nil, ',')
		assert.ErrorIs(t, err, ErrNoHeader)
	})

	t.Run("ragged row", func(t *testing.T) {
		_, err := Decode([]byte("a,b\n1,2,3\n"), ',')
		assert.Error(t, err)
	})
}

func TestEncode_RoundTripsDialect(t *testing.T) {
	tests := []struct {
		name  string
		input string
		comma rune
	}{
		{"plain", "a,b\n1,2\n", ','},
		{"crlf", "a,b\r\n1,2\r\n", ','},
		{"bom", "\xEF\xBB\xBFa,b\n1,2\n", ','},
		{"tab", "a\tb\n1\t2\n", '\t'},
		{"quoted field", "a,b\n\"x,y\",2\n", ','},
		{"single empty column", "a\n1\n\"\"\n2\n", ','},
		{"single empty column crlf", "a\r\n\"\"\r\n2\r\n", ','},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := Decode([]byte(tt.input), tt.comma)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, tbl))
			assert.Equal(t, tt.input, buf.String())
		})
	}
}

func TestColumnIndex(t *testing.T) {
	tbl := &Table{Header: []string{"id", "date", "value"}}

	idx, err := tbl.ColumnIndex("date")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	_, err = tbl.ColumnIndex("Date")
	require.Error(t, err)

	var cnf *ColumnNotFoundError
	require.ErrorAs(t, err, &cnf)
	assert.Equal(t, "Date", cnf.Column)
	assert.Equal(t, []string{"id", "date", "value"}, cnf.Available)
	assert.Equal(t, "date", cnf.Suggestion())
	assert.Contains(t, err.Error(), "id, date, value")
}

func TestColumn(t *testing.T) {
	tbl := &Table{
		Header: []string{"id", "ts"},
		Rows:   [][]string{{"1", "x"}, {"2", "y"}},
	}

	values, err := tbl.Column("ts")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, values)
}

func TestParseComma(t *testing.T) {
	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{in: "", want: 0},
		{in: ";", want: ';'},
		{in: `\t`, want: '\t'},
		{in: "tab", want: '\t'},
		{in: "|", want: '|'},
		{in: `"`, wantErr: true},
		{in: ",,", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseComma(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestDefaultComma(t *testing.T) {
	assert.Equal(t, '\t', DefaultComma("data.TSV"))
	assert.Equal(t, ',', DefaultComma("data.csv"))
	assert.Equal(t, ',', DefaultComma("data"))
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.tsv")
	require.NoError(t, os.WriteFile(in, []byte("a\tb\n1\t2\n3\t4\n"), 0o640))

	tbl, err := Load(in, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, '\t', tbl.Dialect.Comma)

	out := filepath.Join(dir, "out.tsv")
	require.NoError(t, Save(out, tbl.Derive(tbl.Rows[1:]), 0o640, zerolog.Nop()))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "a\tb\n3\t4\n", string(got))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "temp file must not be left behind")
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), LoadOptions{})
	require.Error(t, err)

	var fae *FileAccessError
	require.ErrorAs(t, err, &fae)
	assert.Equal(t, "read", fae.Op)
	assert.True(t, os.IsNotExist(fae.Err) || os.IsNotExist(err))
}

func TestSave_UnwritableDirectory(t *testing.T) {
	tbl := &Table{Header: []string{"a"}}

	err := Save(filepath.Join(t.TempDir(), "missing", "out.csv"), tbl, 0, zerolog.Nop())
	var fae *FileAccessError
	require.ErrorAs(t, err, &fae)
	assert.Equal(t, "write", fae.Op)
}

func TestEncode_SingleEmptyFieldSurvivesReload(t *testing.T) {
	tbl := &Table{
		Header: []string{"timestamp"},
		Rows:   [][]string{{""}, {"2023-02-01"}, {""}},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, tbl))

	back, err := Decode(buf.Bytes(), ',')
	require.NoError(t, err)
	assert.Equal(t, tbl.Rows, back.Rows)
}
