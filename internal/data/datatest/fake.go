// Package datatest provides an in-memory data.Provider for tests.
package datatest

import (
	"fmt"

	"github.com/tnguyen21/netscope/internal/data"
)

// Fake serves canned data and counts calls per method.
type Fake struct {
	Snapshot   data.ConnSnapshot
	Meta       map[int32]data.ProcMeta
	IO         map[int32]data.IOCounters
	Rows       []data.ProcessRow
	Info       data.SystemInfo
	Err        error
	Terminated []int32

	Calls map[string]int
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{
		Meta:  make(map[int32]data.ProcMeta),
		IO:    make(map[int32]data.IOCounters),
		Calls: make(map[string]int),
	}
}

func (f *Fake) count(key string) {
	if f.Calls == nil {
		f.Calls = make(map[string]int)
	}
	f.Calls[key]++
}

func (f *Fake) Connections(kind string) (data.ConnSnapshot, error) {
	f.count("Connections:" + kind)
	return f.Snapshot, f.Err
}

func (f *Fake) ProcessMeta(pid int32) (data.ProcMeta, error) {
	f.count(fmt.Sprintf("ProcessMeta:%d", pid))
	m, ok := f.Meta[pid]
	if !ok {
		return data.ProcMeta{}, data.ErrUnavailable
	}
	return m, nil
}

func (f *Fake) ProcessIO(pid int32) (data.IOCounters, error) {
	f.count(fmt.Sprintf("ProcessIO:%d", pid))
	io, ok := f.IO[pid]
	if !ok {
		return data.IOCounters{}, data.ErrUnavailable
	}
	return io, nil
}

func (f *Fake) Processes() ([]data.ProcessRow, error) {
	f.count("Processes")
	return append([]data.ProcessRow(nil), f.Rows...), f.Err
}

func (f *Fake) SystemInfo() (data.SystemInfo, error) {
	f.count("SystemInfo")
	return f.Info, f.Err
}

func (f *Fake) Terminate(pid int32) error {
	f.count("Terminate")
	f.Terminated = append(f.Terminated, pid)
	return f.Err
}
