package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapperKeyMapping(t *testing.T) {
	expected := map[Table]string{
		TableCrops:            "crops",
		TableFields:           "fields",
		TableLivestock:        "livestock",
		TableEggLogs:          "eggLogs",
		TableHarvests:         "harvests",
		TableTransactions:     "transactions",
		TableUsers:            "users",
		TableAlerts:           "alerts",
		TableRecentActivities: "recentActivities",
		TableBackupHistory:    "backupHistory",
	}

	for table, wrapperKey := range expected {
		assert.Equal(t, wrapperKey, table.WrapperKey(), "table %s", table)
	}
}

func TestFileNameRoundTrip(t *testing.T) {
	for _, table := range KnownTables() {
		fileName := table.FileName()
		assert.Equal(t, string(table)+".json", fileName)

		// The stem of the file name must resolve back to the same table.
		stem := fileName[:len(fileName)-len(".json")]
		resolved, ok := Lookup(stem)
		require.True(t, ok, "stem %s", stem)
		assert.Equal(t, table, resolved)
	}
}

func TestLookupRejectsUnknownNames(t *testing.T) {
	for _, name := range []string{"", "Livestock", "egg_logs", "secrets", "../crops"} {
		_, ok := Lookup(name)
		assert.False(t, ok, "name %q", name)
	}
}

func TestKnownTablesCoversEveryManagedTable(t *testing.T) {
	tables := KnownTables()
	require.Len(t, tables, 10)

	seen := make(map[Table]bool, len(tables))
	for _, table := range tables {
		require.False(t, seen[table], "duplicate table %s", table)
		seen[table] = true
		_, hasSeed := seedDocuments[table]
		assert.True(t, hasSeed, "table %s has no seed document", table)
	}
}
