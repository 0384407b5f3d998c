package mysql

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"

	"github.com/bryanwahyu/promptlens/internal/infra/db"
)

// Connect expects a DSN with parseTime=true so created_at scans into time.Time.
func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	return db.Open(ctx, "mysql", dsn, db.DefaultPool)
}
