package data

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
)

// Query timeouts. A slow query delays the frame; these only bound a hang.
const (
	queryTimeout   = 2 * time.Second
	processTimeout = 5 * time.Second
)

// HostProvider reads the local machine through gopsutil.
type HostProvider struct {
	Now func() time.Time
}

// NewHostProvider returns a provider for the local host.
func NewHostProvider() *HostProvider {
	return &HostProvider{Now: time.Now}
}

func (h *HostProvider) Connections(kind string) (ConnSnapshot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	stats, err := net.ConnectionsWithContext(ctx, kind)
	if err != nil {
		return ConnSnapshot{}, fmt.Errorf("listing %s connections: %w", kind, err)
	}
	var snap ConnSnapshot
	for _, c := range stats {
		switch c.Status {
		case StatusEstablished, StatusListen:
		default:
			continue
		}
		conn := Conn{
			Local:  FormatAddr(c.Laddr.IP, c.Laddr.Port),
			Remote: FormatAddr(c.Raddr.IP, c.Raddr.Port),
			Status: c.Status,
			PID:    c.Pid,
		}
		if c.Status == StatusEstablished {
			snap.Established = append(snap.Established, conn)
		} else {
			snap.Listening = append(snap.Listening, conn)
		}
	}
	return snap, nil
}

func (h *HostProvider) ProcessMeta(pid int32) (ProcMeta, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return ProcMeta{}, fmt.Errorf("pid %d: %w", pid, ErrUnavailable)
	}
	name, err := p.NameWithContext(ctx)
	if err != nil {
		return ProcMeta{}, fmt.Errorf("pid %d name: %w", pid, ErrUnavailable)
	}
	user, err := p.UsernameWithContext(ctx)
	if err != nil {
		return ProcMeta{}, fmt.Errorf("pid %d user: %w", pid, ErrUnavailable)
	}
	return ProcMeta{Name: name, User: user}, nil
}

func (h *HostProvider) ProcessIO(pid int32) (IOCounters, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return IOCounters{}, fmt.Errorf("pid %d: %w", pid, ErrUnavailable)
	}
	io, err := p.IOCountersWithContext(ctx)
	if err != nil || io == nil {
		return IOCounters{}, fmt.Errorf("pid %d io: %w", pid, ErrUnavailable)
	}
	return IOCounters{ReadBytes: io.ReadBytes, WriteBytes: io.WriteBytes}, nil
}

// Processes lists every process it can read. Processes that vanish or deny
// access mid-scan are skipped.
func (h *HostProvider) Processes() ([]ProcessRow, error) {
	ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
	defer cancel()

	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing processes: %w", err)
	}
	now := h.now()
	rows := make([]ProcessRow, 0, len(procs))
	for _, p := range procs {
		row, err := readProcess(ctx, p, now)
		if err != nil {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func readProcess(ctx context.Context, p *process.Process, now time.Time) (ProcessRow, error) {
	row := ProcessRow{PID: p.Pid, User: "N/A", Status: "N/A", Name: "N/A"}

	created, err := p.CreateTimeWithContext(ctx)
	if err != nil {
		return row, err
	}
	row.Uptime = now.Sub(time.UnixMilli(created)).Truncate(time.Second)
	if row.Uptime < 0 {
		row.Uptime = 0
	}

	if v, err := p.NameWithContext(ctx); err == nil {
		row.Name = v
	}
	if v, err := p.UsernameWithContext(ctx); err == nil {
		row.User = v
	}
	if v, err := p.NiceWithContext(ctx); err == nil {
		row.Nice = v
	}
	if m, err := p.MemoryInfoWithContext(ctx); err == nil && m != nil {
		row.VMS, row.RSS = m.VMS, m.RSS
	}
	row.Shared, row.HasShared = sharedMemory(ctx, p)
	if v, err := p.StatusWithContext(ctx); err == nil && len(v) > 0 {
		row.Status = strings.Join(v, ",")
	}
	if v, err := p.CPUPercentWithContext(ctx); err == nil {
		row.CPU = v
	}
	if v, err := p.MemoryPercentWithContext(ctx); err == nil {
		row.Mem = v
	}
	return row, nil
}

func (h *HostProvider) SystemInfo() (SystemInfo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	hi, err := host.InfoWithContext(ctx)
	if err != nil {
		return SystemInfo{}, fmt.Errorf("reading host info: %w", err)
	}
	info := SystemInfo{
		System:   titleOS(hi.OS),
		NodeName: hi.Hostname,
		Release:  hi.KernelVersion,
		Version:  strings.TrimSpace(hi.Platform + " " + hi.PlatformVersion),
		Machine:  hi.KernelArch,
	}
	// Every field below is optional; failures leave zero values.
	info.Cores, _ = cpu.CountsWithContext(ctx, false)
	info.Threads, _ = cpu.CountsWithContext(ctx, true)
	if cpus, err := cpu.InfoWithContext(ctx); err == nil && len(cpus) > 0 {
		info.FreqMHz = cpus[0].Mhz
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		info.TotalMem = vm.Total
	}
	if du, err := disk.UsageWithContext(ctx, "/"); err == nil {
		info.DiskTotal, info.DiskUsed = du.Total, du.UsedPercent
	}
	if ifs, err := net.InterfacesWithContext(ctx); err == nil {
		for _, i := range ifs {
			info.Interfaces = append(info.Interfaces, i.Name)
		}
		sort.Strings(info.Interfaces)
	}
	return info, nil
}

func (h *HostProvider) Terminate(pid int32) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return fmt.Errorf("pid %d: %w", pid, err)
	}
	if err := p.TerminateWithContext(ctx); err != nil {
		return fmt.Errorf("terminating pid %d: %w", pid, err)
	}
	return nil
}

func (h *HostProvider) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

// titleOS turns gopsutil's lower-case OS name into the uname spelling.
func titleOS(os string) string {
	switch os {
	case "linux":
		return "Linux"
	case "darwin":
		return "Darwin"
	case "freebsd":
		return "FreeBSD"
	case "openbsd":
		return "OpenBSD"
	case "windows":
		return "Windows"
	}
	return os
}
