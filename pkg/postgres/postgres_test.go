package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingMigrations_ReturnsEmbeddedFilesInOrder(t *testing.T) {
	pending, err := pendingMigrations(map[string]bool{})
	require.NoError(t, err)
	require.NotEmpty(t, pending)

	assert.Contains(t, pending, "001_create_rota_tables.sql")
	assert.IsIncreasing(t, pending)
}

func TestPendingMigrations_SkipsApplied(t *testing.T) {
	all, err := pendingMigrations(map[string]bool{})
	require.NoError(t, err)

	applied := make(map[string]bool, len(all))
	for _, name := range all {
		applied[name] = true
	}

	pending, err := pendingMigrations(applied)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
