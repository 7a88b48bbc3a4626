package catalog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/srgjo27/cowork_booking/internal/adapter/repository/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
resources:
  - id: open-space
    name: Open space
    capacity: 12
    blackouts:
      - date: 2025-12-25
        reason: Christmas
      - date: "2026-01-01"
  - id: room-a
    name: Meeting room A
    capacity: 1
`

func TestParse(t *testing.T) {
	resources, err := catalog.Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, resources, 2)

	open := resources[0]
	assert.Equal(t, "open-space", open.ID)
	assert.Equal(t, 12, open.Capacity)
	require.Len(t, open.Blackouts, 2)
	assert.Equal(t, time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), open.Blackouts[0].Date)
	assert.Equal(t, "Christmas", open.Blackouts[0].Reason)

	entry, ok := open.Blackout(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.True(t, ok)
	assert.Empty(t, entry.Reason)

	assert.Equal(t, 1, resources[1].EffectiveCapacity())
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"missing id":    "resources:\n  - name: x\n",
		"duplicate":     "resources:\n  - id: a\n  - id: a\n",
		"bad date":      "resources:\n  - id: a\n    blackouts:\n      - date: 25/12/2025\n",
		"unknown field": "resources:\n  - id: a\n    seats: 3\n",
		"negative":      "resources:\n  - id: a\n    capacity: -1\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := catalog.Parse(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resources.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	resources, err := catalog.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, resources, 2)

	_, err = catalog.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
