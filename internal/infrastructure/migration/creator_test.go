package migration

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	upPath, downPath, err := CreateMigration(dir, "add bills table")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(upPath, "_add_bills_table.up.sql"))
	assert.True(t, strings.HasSuffix(downPath, "_add_bills_table.down.sql"))

	for _, path := range []string{upPath, downPath} {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "add bills table")
	}
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "add_bills_table", sanitizeName("Add Bills Table"))
	assert.Equal(t, "pqr_tickets", sanitizeName("  PQR-Tickets  "))
	assert.Equal(t, "migration", sanitizeName("!!!"))
}
