package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	migrate "github.com/rubenv/sql-migrate"
)

// Dialect names as understood by sql-migrate.
const (
	Postgres = "postgres"
	MySQL    = "mysql"
	SQLite   = "sqlite3"
)

//go:embed postgres/*.sql mysql/*.sql sqlite/*.sql
var migrationsFS embed.FS

var roots = map[string]string{
	Postgres: "postgres",
	MySQL:    "mysql",
	SQLite:   "sqlite",
}

// Up applies all pending migrations for dialect and returns how many ran.
func Up(db *sql.DB, dialect string) (int, error) {
	root, ok := roots[dialect]
	if !ok {
		return 0, fmt.Errorf("unsupported migration dialect %q", dialect)
	}
	source := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationsFS,
		Root:       root,
	}
	n, err := migrate.Exec(db, dialect, source, migrate.Up)
	if err != nil {
		return n, fmt.Errorf("running %s migrations: %w", dialect, err)
	}
	return n, nil
}
