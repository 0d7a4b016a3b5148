// -----------------------------------------------------------------------------
// dbtest - Kayıt tutan sahte database/sql sürücüsü
// -----------------------------------------------------------------------------
// Testlerde gerçek bir veritabanı yerine kullanılır. Her ifade (metin +
// parametreler) sırayla kaydedilir; dönecek sonuçlar Push ile kuyruğa
// eklenir. Kuyruk boşsa ifade boş bir sonuçla başarılı sayılır.
//
// Kullanım:
//
//	rec, db := dbtest.New()
//	rec.Push(dbtest.Result{Columns: []string{"id"}, Rows: [][]any{{int64(1)}}})
//	client := database.NewClient(db)
//	...
//	assert.Equal(t, "SELECT id FROM users", rec.Calls()[0].Query)
//
// Transaction sınırları BEGIN, COMMIT ve ROLLBACK olarak kaydedilir.
// -----------------------------------------------------------------------------

package dbtest

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"sync"
)

var errPrepare = errors.New("dbtest: prepared statements are not supported")

// Call, sürücüye ulaşan tek bir ifadedir.
type Call struct {
	Query string
	Args  []any
}

// Result, sıradaki ifadenin döndüreceği sonuçtur. Err doluysa ifade bu
// hatayla başarısız olur.
type Result struct {
	Columns      []string
	Rows         [][]any
	LastInsertID int64
	RowsAffected int64
	Err          error
}

// Recorder, ifadeleri kaydeder ve kuyruktaki sonuçları dağıtır.
type Recorder struct {
	mu      sync.Mutex
	calls   []Call
	results []Result
}

// New, kayıt tutan bir sürücü üzerinde *sql.DB döndürür.
func New() (*Recorder, *sql.DB) {
	rec := &Recorder{}
	return rec, sql.OpenDB(connector{rec: rec})
}

// Push, sonraki ifadelere sırayla dönecek sonuçları ekler.
func (r *Recorder) Push(results ...Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, results...)
}

// Calls, şimdiye kadar kaydedilen ifadelerin kopyasını döndürür.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Queries, yalnızca ifade metinlerini döndürür.
func (r *Recorder) Queries() []string {
	calls := r.Calls()
	queries := make([]string, len(calls))
	for i, c := range calls {
		queries[i] = c.Query
	}
	return queries
}

func (r *Recorder) mark(query string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Query: query})
}

func (r *Recorder) record(query string, named []driver.NamedValue) Result {
	args := make([]any, len(named))
	for i, nv := range named {
		if nv.Name != "" {
			args[i] = sql.Named(nv.Name, nv.Value)
			continue
		}
		args[i] = nv.Value
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Query: query, Args: args})
	if len(r.results) == 0 {
		return Result{}
	}
	res := r.results[0]
	r.results = r.results[1:]
	return res
}

type connector struct {
	rec *Recorder
}

func (c connector) Connect(context.Context) (driver.Conn, error) {
	return &conn{rec: c.rec}, nil
}

func (c connector) Driver() driver.Driver {
	return fakeDriver{rec: c.rec}
}

type fakeDriver struct {
	rec *Recorder
}

func (d fakeDriver) Open(string) (driver.Conn, error) {
	return &conn{rec: d.rec}, nil
}

type conn struct {
	rec *Recorder
}

var (
	_ driver.ExecerContext     = (*conn)(nil)
	_ driver.QueryerContext    = (*conn)(nil)
	_ driver.ConnBeginTx       = (*conn)(nil)
	_ driver.NamedValueChecker = (*conn)(nil)
)

func (c *conn) Prepare(string) (driver.Stmt, error) {
	return nil, errPrepare
}

func (c *conn) Close() error {
	return nil
}

func (c *conn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

func (c *conn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	c.rec.mark("BEGIN")
	return tx{rec: c.rec}, nil
}

// CheckNamedValue, tüm değerleri dönüştürmeden kabul eder; kaydedilen
// parametreler composer'ın ürettikleriyle birebir aynıdır.
func (c *conn) CheckNamedValue(*driver.NamedValue) error {
	return nil
}

func (c *conn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	res := c.rec.record(query, args)
	if res.Err != nil {
		return nil, res.Err
	}
	return result{lastID: res.LastInsertID, affected: res.RowsAffected}, nil
}

func (c *conn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	res := c.rec.record(query, args)
	if res.Err != nil {
		return nil, res.Err
	}
	return &rows{columns: res.Columns, values: res.Rows}, nil
}

type tx struct {
	rec *Recorder
}

func (t tx) Commit() error {
	t.rec.mark("COMMIT")
	return nil
}

func (t tx) Rollback() error {
	t.rec.mark("ROLLBACK")
	return nil
}

type result struct {
	lastID   int64
	affected int64
}

func (r result) LastInsertId() (int64, error) { return r.lastID, nil }
func (r result) RowsAffected() (int64, error) { return r.affected, nil }

type rows struct {
	columns []string
	values  [][]any
	pos     int
}

func (r *rows) Columns() []string {
	return r.columns
}

func (r *rows) Close() error {
	return nil
}

func (r *rows) Next(dest []driver.Value) error {
	if r.pos >= len(r.values) {
		return io.EOF
	}
	row := r.values[r.pos]
	r.pos++
	for i := range dest {
		if i < len(row) {
			dest[i] = row[i]
		} else {
			dest[i] = nil
		}
	}
	return nil
}
