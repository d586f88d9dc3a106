package database

import (
	"strconv"
	"strings"
)

// Dialect captures the SQL differences between supported databases.
type Dialect interface {
	Name() string
	// Rebind converts '?' placeholders to the dialect's native form.
	Rebind(query string) string
	// MonthOf returns an integer expression extracting the calendar month of column.
	MonthOf(column string) string
}

var (
	SQLite   Dialect = sqliteDialect{}
	Postgres Dialect = postgresDialect{}
)

type sqliteDialect struct{}

func (sqliteDialect) Name() string { return "sqlite3" }

func (sqliteDialect) Rebind(query string) string { return query }

func (sqliteDialect) MonthOf(column string) string {
	return "CAST(strftime('%m', " + column + ") AS INTEGER)"
}

type postgresDialect struct{}

func (postgresDialect) Name() string { return "postgres" }

func (postgresDialect) Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func (postgresDialect) MonthOf(column string) string {
	return "CAST(EXTRACT(MONTH FROM " + column + ") AS INTEGER)"
}
