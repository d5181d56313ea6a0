package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames_Ordered(t *testing.T) {
	names, err := Names()
	require.NoError(t, err)

	assert.Equal(t, []string{"0001_init.sql", "0002_seed_tours.sql"}, names)
}

func TestMigrations_NotEmpty(t *testing.T) {
	names, err := Names()
	require.NoError(t, err)

	for _, name := range names {
		raw, err := migrationFiles.ReadFile(name)
		require.NoError(t, err)
		assert.NotEmpty(t, raw, name)
	}
}
