package data_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tnguyen21/netscope/internal/data"
	"github.com/tnguyen21/netscope/internal/data/datatest"
)

func TestReadOnlyRefusesTerminate(t *testing.T) {
	fake := datatest.New()
	fake.Rows = []data.ProcessRow{{PID: 7, Name: "sshd"}}
	ro := data.ReadOnly{Provider: fake}

	err := ro.Terminate(7)
	require.ErrorIs(t, err, data.ErrReadOnly)
	assert.Empty(t, fake.Terminated)

	rows, err := ro.Processes()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
