package data

import (
	"github.com/rs/zerolog/log"

	"github.com/tnguyen21/netscope/internal/render"
)

// Memo is a Provider that asks the wrapped provider at most once per key per
// tick. Every row of a frame therefore sees the same snapshot.
type Memo struct {
	p     Provider
	conns *render.TickCache[string, ConnSnapshot]
	meta  *render.TickCache[int32, ProcMeta]
	io    *render.TickCache[int32, IOCounters]
	procs *render.TickCache[struct{}, []ProcessRow]
	info  *render.TickCache[struct{}, SystemInfo]
}

// NewMemo wraps p with caches keyed to src's tick.
func NewMemo(p Provider, src render.TickSource) *Memo {
	return &Memo{
		p:     p,
		conns: render.NewTickCache[string, ConnSnapshot](src),
		meta:  render.NewTickCache[int32, ProcMeta](src),
		io:    render.NewTickCache[int32, IOCounters](src),
		procs: render.NewTickCache[struct{}, []ProcessRow](src),
		info:  render.NewTickCache[struct{}, SystemInfo](src),
	}
}

func (m *Memo) Connections(kind string) (ConnSnapshot, error) {
	return m.conns.Get(kind, func() (ConnSnapshot, error) {
		snap, err := m.p.Connections(kind)
		if err != nil {
			log.Debug().Err(err).Str("kind", kind).Msg("connection snapshot failed")
		}
		return snap, err
	})
}

func (m *Memo) ProcessMeta(pid int32) (ProcMeta, error) {
	return m.meta.Get(pid, func() (ProcMeta, error) {
		return m.p.ProcessMeta(pid)
	})
}

func (m *Memo) ProcessIO(pid int32) (IOCounters, error) {
	return m.io.Get(pid, func() (IOCounters, error) {
		return m.p.ProcessIO(pid)
	})
}

func (m *Memo) Processes() ([]ProcessRow, error) {
	return m.procs.Get(struct{}{}, func() ([]ProcessRow, error) {
		rows, err := m.p.Processes()
		if err != nil {
			log.Debug().Err(err).Msg("process scan failed")
		}
		return rows, err
	})
}

func (m *Memo) SystemInfo() (SystemInfo, error) {
	return m.info.Get(struct{}{}, func() (SystemInfo, error) {
		return m.p.SystemInfo()
	})
}

// Terminate is never memoized.
func (m *Memo) Terminate(pid int32) error {
	return m.p.Terminate(pid)
}

// ConnRow is a connection with its per-pid details filled in, formatted for
// the connection table.
func (m *Memo) ConnRow(c Conn) []string {
	pid, name, user, sent, recv := NA, NA, NA, NA, NA
	if c.PID != 0 {
		pid = FormatPID(c.PID)
		if meta, err := m.ProcessMeta(c.PID); err == nil {
			name, user = meta.Name, meta.User
		}
		if io, err := m.ProcessIO(c.PID); err == nil {
			sent, recv = FormatBytes(io.WriteBytes), FormatBytes(io.ReadBytes)
		}
	}
	return []string{c.Local, c.Remote, c.Status, pid, name, user, sent, recv}
}
