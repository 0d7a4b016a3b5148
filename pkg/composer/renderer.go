package composer

import (
	"fmt"
	"strings"
)

// -----------------------------------------------------------------------------
// Fragment Renderer
// -----------------------------------------------------------------------------
// Token formatlama kuralları: identifier listeleri, operatör whitelist'i ve
// değer doğrulaması. Bu fonksiyonlar buffer'a dokunmaz; ürettikleri
// fragment'ları session ekler.
// -----------------------------------------------------------------------------

var allowedOperators = map[string]bool{
	"=":        true,
	"!=":       true,
	"<>":       true,
	"<":        true,
	">":        true,
	"<=":       true,
	">=":       true,
	"LIKE":     true,
	"NOT LIKE": true,
	"IS":       true,
	"IS NOT":   true,
}

// normalizeOperator, operatörü büyük harfe çevirip whitelist'ten geçirir.
func normalizeOperator(operator string) (string, error) {
	op := strings.ToUpper(strings.Join(strings.Fields(operator), " "))
	if !allowedOperators[op] {
		return "", fmt.Errorf("%w: %q (not in whitelist)", ErrInvalidOperator, operator)
	}
	return op, nil
}

// normalizeSeparator, Condition ayırıcısını kabul edilen kümeye indirger.
func normalizeSeparator(separator string) (string, error) {
	sep := strings.ToUpper(strings.TrimSpace(separator))
	switch sep {
	case "", ",", "AND", "OR":
		return sep, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSeparator, separator)
}

// wrapList, kolon listesini virgülle birleştirilmiş tek bir metne çevirir.
func wrapList(g Grammar, columns []string) (string, error) {
	wrapped := make([]string, len(columns))
	for i, column := range columns {
		w, err := g.Wrap(column)
		if err != nil {
			return "", fmt.Errorf("failed to wrap '%s': %w", column, err)
		}
		wrapped[i] = w
	}
	return strings.Join(wrapped, ", "), nil
}

// wrapEach, her kolonu fn(kolon) biçimine sokar: COUNT(id), name DESC.
func wrapEach(g Grammar, columns []string, format func(string) string) (string, error) {
	wrapped := make([]string, len(columns))
	for i, column := range columns {
		w, err := g.Wrap(column)
		if err != nil {
			return "", fmt.Errorf("failed to wrap '%s': %w", column, err)
		}
		wrapped[i] = format(w)
	}
	return strings.Join(wrapped, ", "), nil
}

func keyword(text string) fragment {
	return fragment{kind: kindKeyword, text: text}
}

func identifier(text string) fragment {
	return fragment{kind: kindIdentifier, text: text}
}

func operator(text string) fragment {
	return fragment{kind: kindOperator, text: text}
}

func separator(text string) fragment {
	if text == "," {
		return fragment{kind: kindComma, text: text}
	}
	return fragment{kind: kindSeparator, text: text}
}

func valueOf(v any) fragment {
	return fragment{kind: kindValue, value: v}
}

var (
	openParen  = fragment{kind: kindOpen, text: "("}
	closeParen = fragment{kind: kindClose, text: ")"}
	comma      = fragment{kind: kindComma, text: ","}
)
