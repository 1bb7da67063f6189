package helpers

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    RangeFlags
		wantErr string
	}{
		{
			name: "long flags",
			args: []string{"--start-date", "2023-01-01", "--end-date", "2023-01-31", "--format", "%Y-%m-%d"},
			want: RangeFlags{Start: "2023-01-01", End: "2023-01-31", Format: "%Y-%m-%d"},
		},
		{
			name: "short flags",
			args: []string{"-s", "2023-01-01", "-e", "2023-01-31", "-f", "%Y-%m-%d"},
			want: RangeFlags{Start: "2023-01-01", End: "2023-01-31", Format: "%Y-%m-%d"},
		},
		{
			name: "datetime-format alias",
			args: []string{"-s", "a", "-e", "b", "--datetime-format", "%d/%m/%Y"},
			want: RangeFlags{Start: "a", End: "b", Format: "%d/%m/%Y"},
		},
		{
			name:    "missing end",
			args:    []string{"-s", "2023-01-01"},
			want:    RangeFlags{Start: "2023-01-01"},
			wantErr: "--end-date",
		},
		{
			name:    "blank bounds",
			args:    []string{"-s", " ", "-e", ""},
			want:    RangeFlags{Start: " "},
			wantErr: "--start-date, --end-date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f RangeFlags
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			f.AddFlags(fs)

			require.NoError(t, fs.Parse(tt.args))
			assert.Equal(t, tt.want, f)

			err := f.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAddFormatFlag_AliasHidden(t *testing.T) {
	var format string
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddFormatFlag(fs, &format)

	alias := fs.Lookup("datetime-format")
	require.NotNil(t, alias)
	assert.True(t, alias.Hidden)
	assert.Equal(t, "f", fs.Lookup("format").Shorthand)
}
