// -----------------------------------------------------------------------------
// Config Package
// -----------------------------------------------------------------------------
// Bu paket, composer CLI'ının ve onu kullanan uygulamaların merkezi
// konfigürasyonunu sağlar. Değerler viper ile şu öncelik sırasıyla okunur:
//
//	ortam değişkenleri (COMPOSER_*) > config dosyası > varsayılanlar
//
// Ortam değişkenlerinde nokta yerine alt çizgi kullanılır:
// database.dsn → COMPOSER_DATABASE_DSN.
//
// Config, yüklendikten sonra Validate ile doğrulanır; geçersiz dialect,
// placeholder stili veya sürücü adı erken yakalanır.
// -----------------------------------------------------------------------------

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/biyonik/sql-composer/pkg/composer"
	"github.com/biyonik/sql-composer/pkg/database"
)

const EnvPrefix = "COMPOSER"

// DefaultFiles, açık bir yol verilmediğinde çalışma dizininde aranan
// config dosyalarıdır.
var DefaultFiles = []string{"composer.yaml", "composer.yml"}

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config, uygulamanın merkezi yapılandırma nesnesidir.
//
//   - Dialect: identifier/literal grammar'ı (plain, ansi, mysql, postgres)
//   - Placeholders: parametre stili (inline, question, dollar, colon)
//   - Database: bağlantı ve havuz ayarları
//   - Log: log seviyesi ve formatı
type Config struct {
	Dialect      string `mapstructure:"dialect" json:"dialect" validate:"omitempty,oneof=plain ansi mysql postgres postgresql pgx"`
	Placeholders string `mapstructure:"placeholders" json:"placeholders" validate:"omitempty,oneof=inline question dollar colon named"`

	Database DatabaseConfig `mapstructure:"database" json:"database"`
	Log      LogConfig      `mapstructure:"log" json:"log"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver" json:"driver" validate:"omitempty,oneof=mysql mariadb postgres postgresql pgx pg"`
	DSN             string        `mapstructure:"dsn" json:"dsn" validate:"required_with=Driver"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" json:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" json:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" json:"conn_max_lifetime" validate:"gte=0"`
	SlowThreshold   time.Duration `mapstructure:"slow_threshold" json:"slow_threshold" validate:"gte=0"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" json:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `mapstructure:"format" json:"format" validate:"oneof=json console"`
}

// Load, config'i varsayılanlar, dosya ve ortam değişkenlerinden okur.
// path boşsa DefaultFiles çalışma dizininde aranır; bulunamazsa yalnızca
// varsayılanlar ve ortam kullanılır. Kullanılan dosyanın yolu da döner.
func Load(path string) (*Config, string, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	file, err := findConfigFile(path)
	if err != nil {
		return nil, "", err
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, file, fmt.Errorf("config: reading %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, file, fmt.Errorf("config: unmarshaling: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, file, err
	}
	return cfg, file, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dialect", "")
	v.SetDefault("placeholders", "")

	v.SetDefault("database.driver", "")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 25)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("database.slow_threshold", 200*time.Millisecond)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

func findConfigFile(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config: file not found: %s", path)
		}
		return path, nil
	}
	for _, name := range DefaultFiles {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	return "", nil
}

// Validate, alan kurallarını validator ile, alanlar arası kuralları elle
// kontrol eder.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	db := c.Database
	if db.MaxOpenConns > 0 && db.MaxIdleConns > db.MaxOpenConns {
		return fmt.Errorf("%w: max_idle_conns (%d) max_open_conns (%d) değerini aşamaz",
			ErrInvalidConfig, db.MaxIdleConns, db.MaxOpenConns)
	}
	return nil
}

// DatabaseConfig, bağlantı ayarlarını database paketinin tipine çevirir.
func (c *Config) DatabaseConfig() database.Config {
	return database.Config{
		Driver:          c.Database.Driver,
		DSN:             c.Database.DSN,
		MaxOpenConns:    c.Database.MaxOpenConns,
		MaxIdleConns:    c.Database.MaxIdleConns,
		ConnMaxLifetime: c.Database.ConnMaxLifetime,
	}
}

// ComposerOptions, config'e göre composer seçeneklerini üretir. Sürücü
// tanımlıysa onun grammar ve placeholder stili temel alınır; Dialect ve
// Placeholders açıkça verilmişse bunları ezer.
func (c *Config) ComposerOptions() ([]composer.Option, error) {
	var opts []composer.Option
	if c.Database.Driver != "" {
		base, err := c.DatabaseConfig().ComposerOptions()
		if err != nil {
			return nil, err
		}
		opts = append(opts, base...)
	}

	if c.Dialect != "" {
		g, err := composer.GrammarByName(c.Dialect)
		if err != nil {
			return nil, err
		}
		opts = append(opts, composer.WithGrammar(g))
	}

	if c.Placeholders != "" {
		style, err := composer.ParsePlaceholderStyle(c.Placeholders)
		if err != nil {
			return nil, err
		}
		opts = append(opts, composer.WithPlaceholders(style))
	}

	return opts, nil
}
