//go:build !linux

package data

import (
	"context"

	"github.com/shirou/gopsutil/v4/process"
)

// sharedMemory is only reported on Linux.
func sharedMemory(context.Context, *process.Process) (uint64, bool) {
	return 0, false
}
