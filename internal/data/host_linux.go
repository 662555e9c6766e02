package data

import (
	"context"

	"github.com/shirou/gopsutil/v4/process"
)

func sharedMemory(ctx context.Context, p *process.Process) (uint64, bool) {
	ex, err := p.MemoryInfoExWithContext(ctx)
	if err != nil || ex == nil {
		return 0, false
	}
	return ex.Shared, true
}
