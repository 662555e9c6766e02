package data

import (
	"errors"
	"fmt"
)

// ErrUnavailable means the OS would not or could not answer. Callers render
// it as N/A.
var ErrUnavailable = errors.New("unavailable")

// Provider answers OS queries. Implementations may be called redundantly;
// Memo bounds the call volume per tick.
type Provider interface {
	Connections(kind string) (ConnSnapshot, error)
	ProcessMeta(pid int32) (ProcMeta, error)
	ProcessIO(pid int32) (IOCounters, error)
	Processes() ([]ProcessRow, error)
	SystemInfo() (SystemInfo, error)
	Terminate(pid int32) error
}

// ConnKinds are the accepted connection-kind values.
var ConnKinds = []string{"tcp", "tcp4", "tcp6", "udp", "udp4", "udp6", "inet", "all"}

// ValidConnKind reports whether kind is one of ConnKinds.
func ValidConnKind(kind string) bool {
	for _, k := range ConnKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// ErrReadOnly is returned by ReadOnly.Terminate.
var ErrReadOnly = errors.New("process control disabled")

// ReadOnly serves p but refuses Terminate.
type ReadOnly struct {
	Provider
}

func (ReadOnly) Terminate(pid int32) error {
	return fmt.Errorf("pid %d: %w", pid, ErrReadOnly)
}
