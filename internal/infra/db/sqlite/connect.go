package sqlite

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"

	"github.com/bryanwahyu/promptlens/internal/infra/db"
)

// Connect opens a SQLite database. A single connection is kept so that
// ":memory:" databases are shared by every query.
func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	return db.Open(ctx, "sqlite", dsn, db.Pool{MaxOpen: 1})
}
