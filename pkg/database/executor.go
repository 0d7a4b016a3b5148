package database

import (
	"context"
	"database/sql"
)

// QueryExecutor, hem *sql.DB (havuz) hem de *sql.Tx (transaction)
// tarafından sağlanan metotlardır. Client ve Transaction bu arayüz
// üzerinden çalışır; böylece aynı kod iki bağlamda da kullanılabilir.
type QueryExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

var (
	_ QueryExecutor = (*sql.DB)(nil)
	_ QueryExecutor = (*sql.Tx)(nil)
)
