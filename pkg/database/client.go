package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/biyonik/sql-composer/pkg/composer"
)

// -----------------------------------------------------------------------------
// Client - Composer çıktısını çalıştıran katman
// -----------------------------------------------------------------------------
// Client, composer.Renderer kabul eder; ToSQL ile metni ve parametreleri
// alır, QueryExecutor üzerinden çalıştırır ve her ifadeyi zerolog ile
// loglar:
//   - başarılı ifadeler debug seviyesinde
//   - SlowThreshold'u aşanlar warn seviyesinde
//   - hatalar error seviyesinde
//
// Örnek:
//
//	client := database.NewClient(db, database.WithLogger(logger))
//	var users []User
//	err := client.Get(ctx, client.Composer().Select("id", "email").From("users"), &users)
// -----------------------------------------------------------------------------

// ErrNoStatement, render edilen ifade boş olduğunda döner.
var ErrNoStatement = errors.New("database: empty statement")

// runner, Client ve Transaction'ın paylaştığı çalıştırma mantığıdır.
type runner struct {
	executor QueryExecutor
	logger   zerolog.Logger
	slow     time.Duration
	opts     []composer.Option
}

// Client, bir *sql.DB havuzu üzerinde çalışan istemcidir.
type Client struct {
	runner
	db *sql.DB
}

type ClientOption func(*Client)

// WithLogger, ifade loglarının yazılacağı logger'ı belirler. Varsayılan
// zerolog.Nop()'tur.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithSlowThreshold, bu süreyi aşan ifadeleri warn seviyesinde loglar.
// 0 ise yavaş ifade logu kapalıdır.
func WithSlowThreshold(d time.Duration) ClientOption {
	return func(c *Client) {
		c.slow = d
	}
}

// WithComposerOptions, Composer()/Simple() ile üretilen composer'lara
// uygulanacak seçeneklerdir (grammar, placeholder stili). Varsayılan "?"
// placeholder'larıdır; değerler SQL metnine yazılmaz, sürücüye parametre
// olarak gider. PostgreSQL için Config.ComposerOptions() verilmelidir.
func WithComposerOptions(opts ...composer.Option) ClientOption {
	return func(c *Client) {
		c.opts = append(c.opts, opts...)
	}
}

func NewClient(db *sql.DB, opts ...ClientOption) *Client {
	c := &Client{
		runner: runner{
			executor: db,
			logger:   zerolog.Nop(),
			opts:     []composer.Option{composer.WithPlaceholders(composer.Question)},
		},
		db:     db,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DB, alttaki havuzu döndürür.
func (c *Client) DB() *sql.DB {
	return c.db
}

// Close, havuzu kapatır.
func (c *Client) Close() error {
	return c.db.Close()
}

// BeginTransaction, yeni bir transaction başlatır. Dönen Transaction mutlaka
// Commit veya Rollback ile sonlandırılmalıdır.
func (c *Client) BeginTransaction(ctx context.Context, opts *sql.TxOptions) (*Transaction, error) {
	tx, err := c.db.BeginTx(ctx, opts)
	if err != nil {
		c.logger.Error().Err(err).Msg("transaction begin failed")
		return nil, fmt.Errorf("database: begin: %w", err)
	}
	c.logger.Debug().Msg("transaction started")

	r := c.runner
	r.executor = tx
	return &Transaction{runner: r, Tx: tx}, nil
}

// Composer, istemcinin seçenekleriyle yeni bir kontrollü composer döndürür.
func (r *runner) Composer() *composer.Composer {
	return composer.New(r.opts...)
}

// Simple, istemcinin seçenekleriyle yeni bir unchecked composer döndürür.
func (r *runner) Simple() *composer.Simple {
	return composer.NewSimple(r.opts...)
}

// Exec, INSERT/UPDATE/DELETE gibi satır döndürmeyen ifadeleri çalıştırır.
func (r *runner) Exec(ctx context.Context, q composer.Renderer) (sql.Result, error) {
	query, args, err := statement(q)
	if err != nil {
		return nil, err
	}

	begin := time.Now()
	res, err := r.executor.ExecContext(ctx, query, args...)
	rows := int64(-1)
	if err == nil {
		if n, rerr := res.RowsAffected(); rerr == nil {
			rows = n
		}
	}
	r.trace(begin, query, len(args), rows, err)
	if err != nil {
		return nil, fmt.Errorf("database: exec: %w", err)
	}
	return res, nil
}

// Query, satır döndüren ifadeyi çalıştırır. Dönen *sql.Rows kapatılmalıdır.
func (r *runner) Query(ctx context.Context, q composer.Renderer) (*sql.Rows, error) {
	query, args, err := statement(q)
	if err != nil {
		return nil, err
	}

	begin := time.Now()
	rows, err := r.executor.QueryContext(ctx, query, args...)
	r.trace(begin, query, len(args), -1, err)
	if err != nil {
		return nil, fmt.Errorf("database: query: %w", err)
	}
	return rows, nil
}

// Get, tüm sonuç kümesini dest'e (struct slice pointer) tarar.
func (r *runner) Get(ctx context.Context, q composer.Renderer, dest any) error {
	rows, err := r.Query(ctx, q)
	if err != nil {
		return err
	}
	defer rows.Close()

	return ScanSlice(rows, dest)
}

// First, ilk satırı dest'e (struct pointer) tarar. Satır yoksa
// sql.ErrNoRows döner.
func (r *runner) First(ctx context.Context, q composer.Renderer, dest any) error {
	rows, err := r.Query(ctx, q)
	if err != nil {
		return err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return err
		}
		return sql.ErrNoRows
	}
	if err := ScanStruct(rows, dest); err != nil {
		return err
	}
	return rows.Err()
}

// Maps, sonuç kümesini kolon adı → değer map'lerine çevirir.
func (r *runner) Maps(ctx context.Context, q composer.Renderer) ([]map[string]any, error) {
	rows, err := r.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rowsToMaps(rows)
}

// trace, ifadeyi loglar: hata → error, yavaş → warn, diğerleri → debug.
func (r *runner) trace(begin time.Time, query string, args int, rows int64, err error) {
	elapsed := time.Since(begin)
	level := zerolog.DebugLevel
	if err != nil {
		level = zerolog.ErrorLevel
	} else if r.slow != 0 && elapsed > r.slow {
		level = zerolog.WarnLevel
	}

	r.logger.WithLevel(level).
		Str("query", query).
		Int("args", args).
		Int64("rows", rows).
		Dur("elapsed", elapsed).
		Err(err).
		Msg("sql")
}

func statement(q composer.Renderer) (string, []any, error) {
	if q == nil {
		return "", nil, ErrNoStatement
	}
	query, args, err := q.ToSQL()
	if err != nil {
		return "", nil, err
	}
	if query == "" {
		return "", nil, ErrNoStatement
	}
	return query, args, nil
}
