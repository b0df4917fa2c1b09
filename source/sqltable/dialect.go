package sqltable

import (
	"strings"

	"sheetgen/errs"
)

// dialect captures what differs between the supported databases.
type dialect struct {
	name       string
	driver     string
	listTables string
	quote      func(string) string
}

func quoteDouble(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteBacktick(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

var (
	sqliteDialect = dialect{
		name:   "sqlite",
		driver: "sqlite",
		listTables: `SELECT name FROM sqlite_master
			WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`,
		quote: quoteDouble,
	}
	mysqlDialect = dialect{
		name:   "mysql",
		driver: "mysql",
		listTables: `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES
			WHERE TABLE_SCHEMA = DATABASE() AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`,
		quote: quoteBacktick,
	}
	postgresDialect = dialect{
		name:   "postgres",
		driver: "pgx",
		listTables: `SELECT table_name FROM information_schema.tables
			WHERE table_schema = current_schema() AND table_type = 'BASE TABLE' ORDER BY table_name`,
		quote: quoteDouble,
	}
)

// parseLocator picks the dialect of a locator and returns the driver DSN.
//
//	sqlite:game.db                      -> sqlite, "game.db"
//	mysql:user:pw@tcp(host:3306)/game   -> mysql, "user:pw@tcp(host:3306)/game"
//	postgres://user:pw@host/game        -> postgres, the locator itself
func parseLocator(locator string) (dialect, string, error) {
	lower := strings.ToLower(locator)

	switch {
	case strings.HasPrefix(lower, "sqlite:"):
		return sqliteDialect, locator[len("sqlite:"):], nil
	case strings.HasPrefix(lower, "mysql:"):
		return mysqlDialect, strings.TrimPrefix(locator[len("mysql:"):], "//"), nil
	case strings.HasPrefix(lower, "postgres:"), strings.HasPrefix(lower, "postgresql:"):
		return postgresDialect, locator, nil
	default:
		return dialect{}, "", errs.Newf(errs.KindInvalidConfig,
			"sql locator %q must start with sqlite:, mysql: or postgres://", locator)
	}
}
