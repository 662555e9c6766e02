package data_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tnguyen21/netscope/internal/data"
	"github.com/tnguyen21/netscope/internal/data/datatest"
	"github.com/tnguyen21/netscope/internal/render"
	"github.com/tnguyen21/netscope/internal/theme"
)

func newMemo(t *testing.T) (*data.Memo, *datatest.Fake, *render.Engine) {
	t.Helper()
	fake := datatest.New()
	fake.Snapshot = data.ConnSnapshot{
		Established: []data.Conn{
			{Local: "10.0.0.2:5555", Remote: "1.1.1.1:443", Status: data.StatusEstablished, PID: 42},
			{Local: "10.0.0.2:5556", Remote: "1.1.1.1:443", Status: data.StatusEstablished, PID: 42},
			{Local: "10.0.0.2:5557", Remote: "8.8.8.8:53", Status: data.StatusEstablished},
		},
		Listening: []data.Conn{{Local: "0.0.0.0:22", Remote: data.NA, Status: data.StatusListen, PID: 1}},
	}
	fake.Meta[42] = data.ProcMeta{Name: "curl", User: "alice"}
	fake.IO[42] = data.IOCounters{ReadBytes: 2048, WriteBytes: 1024}

	e := render.NewEngine(theme.DefaultBinding(), nil, nil)
	return data.NewMemo(fake, e), fake, e
}

func TestMemoOneLookupPerKeyPerTick(t *testing.T) {
	m, fake, e := newMemo(t)

	for i := 0; i < 3; i++ {
		_, err := m.Connections("tcp")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, fake.Calls["Connections:tcp"])

	_, _ = m.ProcessMeta(42)
	_, _ = m.ProcessMeta(42)
	assert.Equal(t, 1, fake.Calls["ProcessMeta:42"])

	e.AdvanceTick()
	_, _ = m.ProcessMeta(42)
	_, _ = m.Connections("tcp")
	assert.Equal(t, 2, fake.Calls["ProcessMeta:42"])
	assert.Equal(t, 2, fake.Calls["Connections:tcp"])
}

func TestMemoFrameSharesLookups(t *testing.T) {
	m, fake, _ := newMemo(t)

	snap, err := m.Connections("tcp")
	require.NoError(t, err)

	var rows [][]string
	for _, c := range snap.Established {
		rows = append(rows, m.ConnRow(c))
	}
	assert.Equal(t, []string{"10.0.0.2:5555", "1.1.1.1:443", "ESTABLISHED", "42", "curl", "alice", "1.0 KiB", "2.0 KiB"}, rows[0])
	assert.Equal(t, []string{"10.0.0.2:5557", "8.8.8.8:53", "ESTABLISHED", "N/A", "N/A", "N/A", "N/A", "N/A"}, rows[2])
	assert.Equal(t, 1, fake.Calls["ProcessMeta:42"], "two rows, one pid, one lookup")
	assert.Equal(t, 1, fake.Calls["ProcessIO:42"])
	assert.Zero(t, fake.Calls["ProcessMeta:0"])
}

func TestMemoUnavailableIsMemoized(t *testing.T) {
	m, fake, _ := newMemo(t)

	row := m.ConnRow(data.Conn{Local: "a", Remote: "b", Status: data.StatusListen, PID: 9})
	assert.Equal(t, []string{"a", "b", "LISTEN", "9", "N/A", "N/A", "N/A", "N/A"}, row)
	_, err := m.ProcessMeta(9)
	assert.ErrorIs(t, err, data.ErrUnavailable)
	assert.Equal(t, 1, fake.Calls["ProcessMeta:9"])
}

func TestMemoTerminatePassesThrough(t *testing.T) {
	m, fake, _ := newMemo(t)
	require.NoError(t, m.Terminate(42))
	require.NoError(t, m.Terminate(42))
	assert.Equal(t, []int32{42, 42}, fake.Terminated)
}

func TestMemoProcessesAndInfo(t *testing.T) {
	m, fake, e := newMemo(t)
	fake.Rows = []data.ProcessRow{{PID: 1, Name: "init"}}
	fake.Info = data.SystemInfo{System: "Linux"}

	rows, err := m.Processes()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	_, _ = m.Processes()
	info, _ := m.SystemInfo()
	_, _ = m.SystemInfo()
	assert.Equal(t, "Linux", info.System)
	assert.Equal(t, 1, fake.Calls["Processes"])
	assert.Equal(t, 1, fake.Calls["SystemInfo"])

	e.AdvanceTick()
	_, _ = m.Processes()
	assert.Equal(t, 2, fake.Calls["Processes"])
}
