package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaSQL_DeclaresQueriedTables(t *testing.T) {
	require.NotEmpty(t, schemaSQL)

	// Every table the queries touch must ship in the embedded DDL.
	assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS enhancement_runs")
	assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS run_items")
}

func TestSchemaSQL_CoversQueriedColumns(t *testing.T) {
	for _, column := range []string{"item_count", "status", "created_at", "completed_at"} {
		assert.Contains(t, schemaSQL, column)
	}
	for _, column := range []string{"run_id", "item_id", "content"} {
		assert.Contains(t, schemaSQL, column)
	}
}

func TestSchemaSQL_IsIdempotent(t *testing.T) {
	// Re-applying on every Connect must never fail on existing objects.
	assert.Equal(t, strings.Count(schemaSQL, "CREATE TABLE"), strings.Count(schemaSQL, "CREATE TABLE IF NOT EXISTS"))
	assert.Equal(t, strings.Count(schemaSQL, "CREATE INDEX"), strings.Count(schemaSQL, "CREATE INDEX IF NOT EXISTS"))
	assert.NotContains(t, schemaSQL, "DROP ")
}
