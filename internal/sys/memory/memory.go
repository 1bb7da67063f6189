// Package memory reports host memory headroom for in-memory table loads.
package memory

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/mem"
)

// LoadFactor approximates the in-memory size of a parsed table relative to
// its size on disk.
const LoadFactor = 3

// Available returns the memory available to new allocations, in bytes.
func Available() (uint64, error) {
	vmStat, err := mem.VirtualMemory()
	if err != nil {
		return 0, fmt.Errorf("failed to get memory stats: %w", err)
	}
	return vmStat.Available, nil
}

// Fits reports whether a file of size bytes is expected to fit in available
// memory once loaded.
func Fits(size int64, available uint64) bool {
	if size <= 0 {
		return true
	}
	return uint64(size)*LoadFactor <= available
}
