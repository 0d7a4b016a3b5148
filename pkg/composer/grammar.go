package composer

import (
	"fmt"
	"regexp"
	"strings"
)

// -----------------------------------------------------------------------------
// Grammar Interface
// -----------------------------------------------------------------------------
// Grammar, tek bir yapılandırılabilir quoting/escaping kuralını temsil eder.
// Composer hiçbir zaman kullanıcı verisini doğrudan SQL'e yazmaz:
//   - identifier'lar (tablo/kolon adları) Wrap'ten geçer,
//   - değerler (literal) Quote'tan veya placeholder yolundan geçer.
//
// Mevcut implementasyonlar:
//   - plain:    quote yok, identifier'lar regex ile doğrulanır (varsayılan)
//   - ansi:     "identifier", çift tırnak ikilenir
//   - mysql:    `identifier`, backtick ikilenir; literal'ler backslash ile escape edilir
//   - postgres: pgx.Identifier + pq.QuoteLiteral
// -----------------------------------------------------------------------------

type Grammar interface {
	// Name, grammar'ın adını döndürür (plain, ansi, mysql, postgres).
	Name() string

	// Wrap, bir identifier'ı grammar'ın quoting kuralına göre sarmalar.
	// "*", "users.*", "schema.table.column" ve "expr AS alias" biçimleri
	// desteklenir; her noktalı parça ayrı ayrı sarmalanır.
	//
	// Örnek (mysql):
	//   "users.id"        → "`users`.`id`"
	//   "users AS u"      → "`users` AS `u`"
	Wrap(identifier string) (string, error)

	// Quote, bir string değeri SQL literal'ine dönüştürür.
	Quote(value string) string

	// Quoted, verilen metnin bu grammar için zaten geçerli, tek parça bir
	// string literal olup olmadığını söyler. Geçerli literal'ler olduğu gibi
	// kullanılır ('bob' → 'bob'), diğer her şey Quote'tan geçer.
	Quoted(text string) bool
}

// EscapeMode, quote karakterinin metin içinde nasıl escape edileceğini belirler.
type EscapeMode int

const (
	// EscapeDouble, delimiter'ı ikiler: ' → ''
	EscapeDouble EscapeMode = iota
	// EscapeBackslash, delimiter'ı ve backslash'i backslash ile escape eder: ' → \'
	EscapeBackslash
)

// plainIdentifierPart, quote kullanılmayan grammar'da izin verilen karakterler.
// Nokta bu kümede yok; noktalar parça ayırıcı olarak ele alınır.
var plainIdentifierPart = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Convention, delimiter ve escape kuralları ile tanımlanan genel grammar'dır.
type Convention struct {
	name          string
	open, close   string
	identEscape   EscapeMode
	literalEscape EscapeMode
}

// NewConvention, özel bir quoting kuralı oluşturur. open/close boş ise
// identifier'lar quote edilmez ve güvenli karakter regex'i ile doğrulanır.
func NewConvention(name, open, close string, identEscape, literalEscape EscapeMode) *Convention {
	return &Convention{
		name:          name,
		open:          open,
		close:         close,
		identEscape:   identEscape,
		literalEscape: literalEscape,
	}
}

// NewPlainGrammar, quote kullanmayan varsayılan grammar'ı döndürür.
//
//	SELECT id, name FROM users WHERE age > 18
func NewPlainGrammar() *Convention {
	return NewConvention("plain", "", "", EscapeDouble, EscapeDouble)
}

// NewANSIGrammar, standart SQL çift tırnak quoting'i kullanır.
func NewANSIGrammar() *Convention {
	return NewConvention("ansi", `"`, `"`, EscapeDouble, EscapeDouble)
}

// NewMySQLGrammar, MySQL backtick quoting'i kullanır. String literal'lerde
// MySQL'in varsayılan sql_mode'u backslash'i escape karakteri saydığı için
// literal'ler backslash ile escape edilir.
func NewMySQLGrammar() *Convention {
	return NewConvention("mysql", "`", "`", EscapeDouble, EscapeBackslash)
}

// GrammarByName, isimden grammar üretir (config ve CLI için).
func GrammarByName(name string) (Grammar, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "plain":
		return NewPlainGrammar(), nil
	case "ansi":
		return NewANSIGrammar(), nil
	case "mysql":
		return NewMySQLGrammar(), nil
	case "postgres", "postgresql", "pgx":
		return NewPostgresGrammar(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownGrammar, name)
}

func (c *Convention) Name() string {
	return c.name
}

func (c *Convention) Wrap(identifier string) (string, error) {
	return wrapIdentifier(identifier, c.wrapParts)
}

func (c *Convention) wrapParts(parts []string) (string, error) {
	wrapped := make([]string, len(parts))
	for i, part := range parts {
		if c.open == "" {
			if !plainIdentifierPart.MatchString(part) {
				return "", fmt.Errorf("%w: %q (contains unsafe characters)", ErrInvalidIdentifier, part)
			}
			wrapped[i] = part
			continue
		}
		wrapped[i] = c.open + c.escapeIdentifier(part) + c.close
	}
	return strings.Join(wrapped, "."), nil
}

func (c *Convention) escapeIdentifier(part string) string {
	if c.identEscape == EscapeBackslash {
		part = strings.ReplaceAll(part, `\`, `\\`)
		return strings.ReplaceAll(part, c.close, `\`+c.close)
	}
	return strings.ReplaceAll(part, c.close, c.close+c.close)
}

func (c *Convention) Quote(value string) string {
	if c.literalEscape == EscapeBackslash {
		return "'" + backslashReplacer.Replace(value) + "'"
	}
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

var backslashReplacer = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\x00", `\0`,
	"\n", `\n`,
	"\r", `\r`,
	"\x1a", `\Z`,
)

func (c *Convention) Quoted(text string) bool {
	return quotedDoubling(text, c.literalEscape == EscapeBackslash)
}

// quotedDoubling, text'in '...' biçiminde olduğunu ve içerideki her tek
// tırnağın ikilendiğini kontrol eder. rejectBackslash true ise içeride
// backslash bulunan literal'ler reddedilir; backslash escape eden
// lehçelerde \' kapanış tırnağını yutabilir.
func quotedDoubling(text string, rejectBackslash bool) bool {
	if len(text) < 2 || text[0] != '\'' || text[len(text)-1] != '\'' {
		return false
	}
	inner := text[1 : len(text)-1]
	if strings.ContainsRune(inner, 0) {
		return false
	}
	if rejectBackslash && strings.Contains(inner, `\`) {
		return false
	}
	for i := 0; i < len(inner); i++ {
		if inner[i] != '\'' {
			continue
		}
		if i+1 >= len(inner) || inner[i+1] != '\'' {
			return false
		}
		i++
	}
	return true
}

// wrapIdentifier, tüm grammar'ların paylaştığı ayrıştırma kuralıdır:
// boşluk kırpılır, "*" aynen geçer, " AS " ile alias ayrılır, noktalı
// parçalar quote fonksiyonuna verilir.
func wrapIdentifier(identifier string, quote func(parts []string) (string, error)) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return "", fmt.Errorf("%w: empty identifier", ErrInvalidIdentifier)
	}
	if strings.ContainsRune(identifier, 0) {
		return "", fmt.Errorf("%w: %q contains NUL byte", ErrInvalidIdentifier, identifier)
	}
	if identifier == "*" {
		return identifier, nil
	}

	name, alias, hasAlias := splitAlias(identifier)
	wrapped, err := wrapDotted(name, quote)
	if err != nil {
		return "", err
	}
	if !hasAlias {
		return wrapped, nil
	}

	if alias == "" || strings.Contains(alias, ".") || alias == "*" {
		return "", fmt.Errorf("%w: invalid alias in %q", ErrInvalidIdentifier, identifier)
	}
	wrappedAlias, err := quote([]string{alias})
	if err != nil {
		return "", err
	}
	return wrapped + " AS " + wrappedAlias, nil
}

func splitAlias(identifier string) (name, alias string, ok bool) {
	idx := strings.LastIndex(strings.ToLower(identifier), " as ")
	if idx < 0 {
		return identifier, "", false
	}
	return strings.TrimSpace(identifier[:idx]), strings.TrimSpace(identifier[idx+4:]), true
}

func wrapDotted(name string, quote func(parts []string) (string, error)) (string, error) {
	parts := strings.Split(name, ".")

	star := false
	if len(parts) > 1 && parts[len(parts)-1] == "*" {
		star = true
		parts = parts[:len(parts)-1]
	}

	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			return "", fmt.Errorf("%w: %q (empty part)", ErrInvalidIdentifier, name)
		}
	}

	wrapped, err := quote(parts)
	if err != nil {
		return "", err
	}
	if star {
		wrapped += ".*"
	}
	return wrapped, nil
}
