// Package data gathers connection, process and host snapshots from the OS.
package data

import "time"

// Connection statuses shown by the dashboard.
const (
	StatusEstablished = "ESTABLISHED"
	StatusListen      = "LISTEN"
)

// Conn is one socket from a connection snapshot. PID is 0 when the owner is
// unknown (no permission, kernel socket).
type Conn struct {
	Local  string
	Remote string
	Status string
	PID    int32
}

// ConnSnapshot splits connections by status. Other statuses are dropped.
type ConnSnapshot struct {
	Established []Conn
	Listening   []Conn
}

// ByStatus returns the slice for StatusEstablished or StatusListen.
func (s ConnSnapshot) ByStatus(status string) []Conn {
	if status == StatusListen {
		return s.Listening
	}
	return s.Established
}

// ProcMeta is the per-pid detail shown next to a connection.
type ProcMeta struct {
	Name string
	User string
}

// IOCounters are cumulative process I/O byte counts.
type IOCounters struct {
	ReadBytes  uint64
	WriteBytes uint64
}

// ProcessRow is one line of the process table.
type ProcessRow struct {
	PID       int32
	User      string
	Nice      int32
	VMS       uint64
	RSS       uint64
	Shared    uint64
	HasShared bool
	Status    string
	CPU       float64
	Mem       float32
	Uptime    time.Duration
	Name      string
}

// SystemInfo is the host summary.
type SystemInfo struct {
	System     string
	NodeName   string
	Release    string
	Version    string
	Machine    string
	Cores      int
	Threads    int
	FreqMHz    float64
	TotalMem   uint64
	DiskTotal  uint64
	DiskUsed   float64
	Interfaces []string
}
