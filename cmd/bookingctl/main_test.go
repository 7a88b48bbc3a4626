package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRejectsBadUsage(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"unknown command", []string{"explode"}},
		{"rebuild without resource", []string{"rebuild"}},
		{"calendar without month", []string{"calendar", "--resource", "desk-1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := run(tc.args, &bytes.Buffer{})
			require.Error(t, err)
			assert.ErrorIs(t, err, errUsage)
		})
	}
}

func TestRunUnknownFlag(t *testing.T) {
	err := run([]string{"rebuild", "--month", "2025-01"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, errUsage)
}

func TestRunHelp(t *testing.T) {
	assert.NoError(t, run([]string{"help"}, &bytes.Buffer{}))
}
