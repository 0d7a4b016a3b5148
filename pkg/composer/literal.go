package composer

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// -----------------------------------------------------------------------------
// Literal & Placeholder Rendering
// -----------------------------------------------------------------------------
// Kullanıcıdan gelen her değer bu dosyadaki yoldan geçer. Değer ya grammar'a
// göre escape edilmiş bir literal olarak satır içine yazılır (Inline), ya da
// bir placeholder ile değiştirilip parametre listesine eklenir.
//
// Değerler identifier veya keyword yoluna asla girmez; "a' OR '1'='1" gibi
// bir değer her zaman tek bir literal token olarak kalır.
// -----------------------------------------------------------------------------

// PlaceholderStyle, değerlerin SQL metnine nasıl yazılacağını belirler.
type PlaceholderStyle int

const (
	// Inline, değerleri escape edilmiş literal olarak yazar.
	Inline PlaceholderStyle = iota
	// Question, MySQL/SQLite tarzı "?" placeholder'ları üretir.
	Question
	// Dollar, PostgreSQL tarzı "$1, $2" placeholder'ları üretir.
	Dollar
	// Colon, ":p1" veya sql.NamedArg için ":name" üretir; parametreler
	// sql.NamedArg olarak döner.
	Colon
)

// DateFormat, time.Time değerlerinin literal biçimi.
const DateFormat = "2006-01-02 15:04:05"

// numericLiteral yalnızca kanonik sayıları kabul eder; "01234" veya "1e5"
// gibi metinler tırnaklanır ki baştaki sıfır kaybolmasın.
var numericLiteral = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?$`)

func (p PlaceholderStyle) String() string {
	switch p {
	case Inline:
		return "inline"
	case Question:
		return "question"
	case Dollar:
		return "dollar"
	case Colon:
		return "named"
	}
	return fmt.Sprintf("PlaceholderStyle(%d)", int(p))
}

// ParsePlaceholderStyle, config/CLI değerini PlaceholderStyle'a çevirir.
func ParsePlaceholderStyle(name string) (PlaceholderStyle, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "inline":
		return Inline, nil
	case "question", "?":
		return Question, nil
	case "dollar", "$":
		return Dollar, nil
	case "named", "colon", ":":
		return Colon, nil
	}
	return Inline, fmt.Errorf("%w: %q", ErrUnknownPlaceholderStyle, name)
}

// bind, bir değer fragment'ını metne çevirir ve gerekiyorsa args'a ekler.
// nil her stilde NULL olarak yazılır; "IS ?" çoğu veritabanında geçersizdir.
func bind(g Grammar, style PlaceholderStyle, value any, args []any) (string, []any, error) {
	if value == nil || style == Inline || isNilPointer(value) {
		lit, err := formatLiteral(g, value)
		return lit, args, err
	}

	named, isNamed := value.(sql.NamedArg)
	switch style {
	case Question:
		if isNamed {
			value = named.Value
		}
		return "?", append(args, value), nil
	case Dollar:
		if isNamed {
			value = named.Value
		}
		args = append(args, value)
		return "$" + strconv.Itoa(len(args)), args, nil
	case Colon:
		if !isNamed {
			named = sql.Named("p"+strconv.Itoa(len(args)+1), value)
		}
		return ":" + named.Name, append(args, named), nil
	}
	return "", args, fmt.Errorf("%w: %d", ErrUnknownPlaceholderStyle, int(style))
}

// formatLiteral, bir Go değerini grammar'a göre SQL literal'ine çevirir.
// Typed nil pointer'lar Valuer case'ine düşmeden önce NULL olur; aksi halde
// value receiver'lı Value() nil pointer üzerinden çağrılır.
func formatLiteral(g Grammar, value any) (string, error) {
	if isNilPointer(value) {
		return "NULL", nil
	}

	switch v := value.(type) {
	case nil:
		return "NULL", nil
	case bool:
		if v {
			return "TRUE", nil
		}
		return "FALSE", nil
	case int:
		return strconv.FormatInt(int64(v), 10), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return formatFloat(float64(v), 32)
	case float64:
		return formatFloat(v, 64)
	case string:
		if numericLiteral.MatchString(v) || g.Quoted(v) {
			return v, nil
		}
		return g.Quote(v), nil
	case []byte:
		if v == nil {
			return "NULL", nil
		}
		return g.Quote(string(v)), nil
	case time.Time:
		return g.Quote(v.Format(DateFormat)), nil
	case sql.NamedArg:
		return formatLiteral(g, v.Value)
	case driver.Valuer:
		inner, err := v.Value()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
		}
		if _, again := inner.(driver.Valuer); again {
			return "", fmt.Errorf("%w: %T returns another Valuer", ErrUnsupportedValue, value)
		}
		return formatLiteral(g, inner)
	}
	return formatKind(g, value)
}

// formatKind, isimlendirilmiş temel tipleri (type Status string gibi)
// altındaki türe indirger.
func formatKind(g Grammar, value any) (string, error) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return formatLiteral(g, rv.String())
	case reflect.Bool:
		return formatLiteral(g, rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return formatLiteral(g, rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return formatLiteral(g, rv.Uint())
	case reflect.Float32, reflect.Float64:
		return formatLiteral(g, rv.Float())
	case reflect.Pointer:
		if rv.IsNil() {
			return "NULL", nil
		}
		return formatLiteral(g, rv.Elem().Interface())
	}
	return "", fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
}

func isNilPointer(value any) bool {
	rv := reflect.ValueOf(value)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func formatFloat(f float64, bits int) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedValue, f)
	}
	return strconv.FormatFloat(f, 'g', -1, bits), nil
}
