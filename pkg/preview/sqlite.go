package preview

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // pure-Go sqlite driver
)

// sqliteSummary opens a local sqlite file and describes it: one line per
// table with its row count. Any open or query failure is reported in the
// summary text itself, never as an error.
func sqliteSummary(path string) string {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Sprintf("database file, read failed: %s", err)
	}
	defer db.Close() //nolint:errcheck

	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' ORDER BY name")
	if err != nil {
		return fmt.Sprintf("database file, read failed: %s", err)
	}
	defer rows.Close() //nolint:errcheck

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Sprintf("database file, read failed: %s", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return fmt.Sprintf("database file, read failed: %s", err)
	}

	var b strings.Builder
	b.WriteString("SQLite database\n\nTables:\n")
	for _, table := range tables {
		var count int64
		q := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, quoteIdentifier(table))
		if err := db.QueryRow(q).Scan(&count); err != nil {
			return fmt.Sprintf("database file, read failed: %s", err)
		}
		fmt.Fprintf(&b, "- %s (%d rows)\n", table, count)
	}
	return b.String()
}

// quoteIdentifier quotes an SQL identifier, doubling embedded quotes.
// Table names come out of sqlite_master, there is no placeholder form for
// identifiers.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
