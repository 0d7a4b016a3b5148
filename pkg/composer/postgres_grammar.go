package composer

import (
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

// PostgresGrammar, PostgreSQL quoting kuralıdır. Identifier'lar pgx'in
// Identifier.Sanitize'ı ile, literal'ler lib/pq'nun QuoteLiteral'ı ile
// üretilir; böylece sürücülerin kendi escaping davranışıyla birebir uyumlu
// kalınır.
type PostgresGrammar struct{}

func NewPostgresGrammar() *PostgresGrammar {
	return &PostgresGrammar{}
}

func (g *PostgresGrammar) Name() string {
	return "postgres"
}

// Wrap, "public.users" → "\"public\".\"users\"" üretir.
func (g *PostgresGrammar) Wrap(identifier string) (string, error) {
	return wrapIdentifier(identifier, func(parts []string) (string, error) {
		return pgx.Identifier(parts).Sanitize(), nil
	})
}

// Quote, backslash içeren değerlerde E'...' biçimine geçer.
// pq.QuoteLiteral bu durumda başa bir boşluk ekliyor; fragment'lar zaten
// boşlukla birleştirildiği için kırpılır.
func (g *PostgresGrammar) Quote(value string) string {
	return strings.TrimSpace(pq.QuoteLiteral(value))
}

func (g *PostgresGrammar) Quoted(text string) bool {
	return quotedDoubling(text, true)
}
