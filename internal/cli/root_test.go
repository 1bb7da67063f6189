package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coral-mesh/rowcut/internal/datetime"
	rcerrors "github.com/coral-mesh/rowcut/internal/errors"
	"github.com/coral-mesh/rowcut/internal/prune"
	"github.com/coral-mesh/rowcut/internal/table"
)

const sampleCSV = "id,timestamp\n1,2023-01-01\n2,2023-01-15\n3,2023-02-01\n"

// isolate keeps a developer's own config file and environment out of a test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("ROWCUT_CONFIG", "")
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--log-level", "disabled"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestPrune_DeletesJanuary(t *testing.T) {
	dir := isolate(t)
	in := writeFile(t, dir, "data.csv", sampleCSV)

	out, err := run(t, in, "-c", "timestamp", "-s", "2023-01-01", "-e", "2023-01-31")
	require.NoError(t, err)

	assert.Equal(t, "id,timestamp\n3,2023-02-01\n", readFile(t, in))
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "Rows deleted")
	assert.Contains(t, out, "YYYY-MM-DD (detected)")
	assert.Contains(t, out, "Deleted (2 of 2 rows)")
}

func TestPrune_JSONReport(t *testing.T) {
	dir := isolate(t)
	in := writeFile(t, dir, "data.csv", sampleCSV)

	out, err := run(t, in, "-c", "timestamp", "-s", "2023-01-01", "-e", "2023-01-31", "--dry-run", "-r", "json")
	require.NoError(t, err)

	var report prune.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2, report.Deleted)
	assert.Equal(t, 1, report.RowsAfter)
	assert.True(t, report.DryRun)
	assert.False(t, report.Written)
	assert.Equal(t, sampleCSV, readFile(t, in))
}

func TestPrune_CSVReport(t *testing.T) {
	dir := isolate(t)
	in := writeFile(t, dir, "data.csv", sampleCSV)

	out, err := run(t, in, "-c", "timestamp", "-s", "2023-01-01", "-e", "2023-01-31", "--dry-run", "-r", "csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "FIELD,VALUE\n"))
	assert.Contains(t, out, "Rows deleted,2\n")
}

func TestPrune_OutputAndBackup(t *testing.T) {
	dir := isolate(t)
	in := writeFile(t, dir, "data.csv", sampleCSV)
	outPath := filepath.Join(dir, "out.csv")

	_, err := run(t, in, "-c", "timestamp", "-s", "2023-01-01", "-e", "2023-01-31", "-o", outPath, "--backup", "--backup-suffix", ".bak")
	require.NoError(t, err)

	assert.Equal(t, sampleCSV, readFile(t, in))
	assert.Equal(t, sampleCSV, readFile(t, in+".bak"))
	assert.Equal(t, "id,timestamp\n3,2023-02-01\n", readFile(t, outPath))
}

func TestPrune_FormatAlias(t *testing.T) {
	dir := isolate(t)
	in := writeFile(t, dir, "data.csv", "id,when\n1,15/01/2023\n2,15/02/2023\n")

	_, err := run(t, in, "-c", "when", "-s", "01/01/2023", "-e", "31/01/2023", "--datetime-format", "%d/%m/%Y")
	require.NoError(t, err)
	assert.Equal(t, "id,when\n2,15/02/2023\n", readFile(t, in))
}

func TestPrune_Errors(t *testing.T) {
	dir := isolate(t)
	in := writeFile(t, dir, "data.csv", sampleCSV)

	tests := []struct {
		name     string
		args     []string
		exitCode int
		contains string
	}{
		{
			name:     "missing input",
			args:     []string{filepath.Join(dir, "missing.csv"), "-c", "timestamp", "-s", "2023-01-01", "-e", "2023-01-31"},
			exitCode: rcerrors.ExitFileAccess,
			contains: "missing.csv",
		},
		{
			name:     "column case differs",
			args:     []string{in, "-c", "Timestamp", "-s", "2023-01-01", "-e", "2023-01-31"},
			exitCode: rcerrors.ExitColumnNotFound,
			contains: "timestamp",
		},
		{
			name:     "explicit format mismatch",
			args:     []string{in, "-c", "timestamp", "-s", "01/01/2023", "-e", "31/01/2023", "-f", "%d/%m/%Y"},
			exitCode: rcerrors.ExitFormat,
			contains: "2023-01-01",
		},
		{
			name:     "start after end",
			args:     []string{in, "-c", "timestamp", "-s", "2023-02-01", "-e", "2023-01-01"},
			exitCode: rcerrors.ExitRangeOrder,
			contains: "before or equal",
		},
		{
			name:     "missing required flags",
			args:     []string{in, "-c", "timestamp"},
			exitCode: rcerrors.ExitFailure,
			contains: "end-date",
		},
		{
			name:     "bad delimiter",
			args:     []string{in, "-c", "timestamp", "-s", "2023-01-01", "-e", "2023-01-31", "--delimiter", "::"},
			exitCode: rcerrors.ExitFailure,
			contains: "delimiter",
		},
		{
			name:     "bad report format",
			args:     []string{in, "-c", "timestamp", "-s", "2023-01-01", "-e", "2023-01-31", "-r", "html"},
			exitCode: rcerrors.ExitFailure,
			contains: "output.report",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.exitCode, rcerrors.ExitCode(err))
			assert.Contains(t, err.Error(), tt.contains)
			assert.Equal(t, sampleCSV, readFile(t, in), "failed runs must not touch the input")
		})
	}
}

func TestPrune_ErrorTypes(t *testing.T) {
	dir := isolate(t)
	in := writeFile(t, dir, "data.csv", "id,when\n1,someday\n")

	_, err := run(t, in, "-c", "when", "-s", "2023-01-01", "-e", "2023-01-31")

	var fe *datetime.FormatError
	require.ErrorAs(t, err, &fe)
	assert.ErrorIs(t, err, datetime.ErrNoMatch)

	_, err = run(t, in, "-c", "nope", "-s", "2023-01-01", "-e", "2023-01-31")
	var cnf *table.ColumnNotFoundError
	require.ErrorAs(t, err, &cnf)
}

func TestPrune_ConfigFile(t *testing.T) {
	dir := isolate(t)
	in := writeFile(t, dir, "data.txt", "id;ts\n1;2023.01.10\n2;2023.03.10\n")
	cfgPath := writeFile(t, dir, "config.yaml", `
input:
  delimiter: ";"
detect:
  candidates:
    - name: YYYY.MM.DD
      format: "%Y.%m.%d"
output:
  report: yaml
`)

	out, err := run(t, "--config", cfgPath, in, "-c", "ts", "-s", "2023.01.01", "-e", "2023.01.31")
	require.NoError(t, err)
	assert.Equal(t, "id;ts\n2;2023.03.10\n", readFile(t, in))
	assert.Contains(t, out, "pattern: YYYY.MM.DD")
}

func TestDetect(t *testing.T) {
	dir := isolate(t)
	in := writeFile(t, dir, "data.csv", "id,when\n1,01/31/2023 08:00:00\n2,02/01/2023 09:30:00\n")

	out, err := run(t, "detect", in, "-c", "when", "-r", "json")
	require.NoError(t, err)

	var d prune.Detection
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, "MM/DD/YYYY HH:MM:SS", d.Pattern)
	assert.Equal(t, "detected", d.Source)
	assert.Equal(t, 2, d.Rows)

	out, err = run(t, "detect", in, "-c", "when")
	require.NoError(t, err)
	assert.Contains(t, out, "Detection")
	assert.Contains(t, out, "%m/%d/%Y %H:%M:%S")
}

func TestFormats(t *testing.T) {
	isolate(t)

	out, err := run(t, "formats")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 12)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[1], "YYYY-MM-DD HH:MM:SS")
	assert.Contains(t, lines[1], "2023-01-31 14:05:09")
	assert.Contains(t, lines[11], "2023-01-31T14:05:09Z")

	mmdd := strings.Index(out, "MM/DD/YYYY")
	ddmm := strings.Index(out, "DD/MM/YYYY")
	assert.Less(t, mmdd, ddmm, "month-first candidates are tried first")
}

func TestVersion(t *testing.T) {
	isolate(t)

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "rowcut version")

	out, err = run(t, "version", "-r", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"go_version"`)
}
