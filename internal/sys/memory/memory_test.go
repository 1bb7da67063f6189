package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFits(t *testing.T) {
	tests := []struct {
		name      string
		size      int64
		available uint64
		want      bool
	}{
		{"empty file", 0, 0, true},
		{"plenty of room", 100, 1 << 20, true},
		{"exact fit", 100, 300, true},
		{"too large", 100, 299, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fits(tt.size, tt.available))
		})
	}
}

func TestAvailable(t *testing.T) {
	avail, err := Available()
	require.NoError(t, err)
	assert.Greater(t, avail, uint64(0))
}
