// -----------------------------------------------------------------------------
// Database Package
// -----------------------------------------------------------------------------
// Bu paket, composer'ın ürettiği ifadeleri çalıştıran ince katmandır.
// Bağlantı MySQL (go-sql-driver/mysql) ya da PostgreSQL (pgx stdlib)
// üzerinden açılır; her iki sürücü de *sql.DB döndürür, böylece Client ve
// Transaction sürücüden bağımsız kalır.
//
// Connect; DSN'i sürücüye göre ayrıştırır, havuz ayarlarını uygular ve
// PingContext ile bağlantıyı doğrular. Hata durumunda havuz kapatılır.
// -----------------------------------------------------------------------------

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"

	"github.com/biyonik/sql-composer/pkg/composer"
)

var ErrUnknownDriver = errors.New("database: unknown driver")

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Config, bağlantı ve havuz ayarlarıdır.
type Config struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConfig, önceki sabit havuz değerlerini (25/25/5dk) korur.
func DefaultConfig(driver, dsn string) Config {
	return Config{
		Driver:          driver,
		DSN:             dsn,
		MaxOpenConns:    25,
		MaxIdleConns:    25,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

// NormalizeDriver, "pgx", "postgresql" gibi takma adları tek isme indirger.
func NormalizeDriver(driver string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "mysql", "mariadb":
		return DriverMySQL, nil
	case "postgres", "postgresql", "pgx", "pg":
		return DriverPostgres, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
}

// ComposerOptions, sürücüye uygun grammar ve placeholder stilini döndürür:
// mysql → backtick + "?", postgres → çift tırnak + "$1".
func (c Config) ComposerOptions() ([]composer.Option, error) {
	driver, err := NormalizeDriver(c.Driver)
	if err != nil {
		return nil, err
	}
	if driver == DriverPostgres {
		return []composer.Option{
			composer.WithGrammar(composer.NewPostgresGrammar()),
			composer.WithPlaceholders(composer.Dollar),
		}, nil
	}
	return []composer.Option{
		composer.WithGrammar(composer.NewMySQLGrammar()),
		composer.WithPlaceholders(composer.Question),
	}, nil
}

// Open, bağlantıyı kurmadan *sql.DB havuzunu oluşturur.
func Open(cfg Config) (*sql.DB, error) {
	driver, err := NormalizeDriver(cfg.Driver)
	if err != nil {
		return nil, err
	}

	var db *sql.DB
	switch driver {
	case DriverMySQL:
		mc, err := mysql.ParseDSN(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("database: invalid mysql dsn: %w", err)
		}
		mc.ParseTime = true
		connector, err := mysql.NewConnector(mc)
		if err != nil {
			return nil, fmt.Errorf("database: mysql connector: %w", err)
		}
		db = sql.OpenDB(connector)

	case DriverPostgres:
		pc, err := pgx.ParseConfig(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("database: invalid postgres dsn: %w", err)
		}
		db = stdlib.OpenDB(*pc)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return db, nil
}

// Connect, havuzu oluşturur ve PingContext ile erişilebilirliği kontrol eder.
func Connect(ctx context.Context, cfg Config, logger zerolog.Logger) (*sql.DB, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("driver", cfg.Driver).Msg("connecting to database")
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		logger.Error().Err(err).Str("driver", cfg.Driver).Msg("database ping failed")
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	logger.Info().Str("driver", cfg.Driver).Msg("database connection established")
	return db, nil
}
