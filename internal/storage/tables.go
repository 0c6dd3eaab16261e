package storage

import "strings"

// Table is the logical name of one flat-file table. The name is kebab-case
// and matches the backing file name minus the .json extension.
type Table string

// Known tables.
const (
	TableCrops            Table = "crops"
	TableFields           Table = "fields"
	TableLivestock        Table = "livestock"
	TableEggLogs          Table = "egg-logs"
	TableHarvests         Table = "harvests"
	TableTransactions     Table = "transactions"
	TableUsers            Table = "users"
	TableAlerts           Table = "alerts"
	TableRecentActivities Table = "recent-activities"
	TableBackupHistory    Table = "backup-history"
)

var knownTables = []Table{
	TableAlerts,
	TableBackupHistory,
	TableCrops,
	TableEggLogs,
	TableFields,
	TableHarvests,
	TableLivestock,
	TableRecentActivities,
	TableTransactions,
	TableUsers,
}

// KnownTables returns every table the store manages, in stable order.
func KnownTables() []Table {
	tables := make([]Table, len(knownTables))
	copy(tables, knownTables)
	return tables
}

// Lookup resolves a table name received from the outside (route segment or
// backup bundle key) against the allow-list of known tables.
func Lookup(name string) (Table, bool) {
	for _, t := range knownTables {
		if string(t) == name {
			return t, true
		}
	}
	return "", false
}

// FileName maps the table to its backing file name.
func (t Table) FileName() string {
	return string(t) + ".json"
}

// WrapperKey maps the table to the camelCase key wrapping the record array
// inside the file, e.g. egg-logs -> eggLogs, backup-history -> backupHistory.
func (t Table) WrapperKey() string {
	parts := strings.Split(string(t), "-")
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
