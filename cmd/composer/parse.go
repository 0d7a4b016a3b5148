package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	errConditionSyntax  = errors.New("condition must look like \"column operator value\"")
	errAssignmentSyntax = errors.New("assignment must look like \"column=value\"")
)

// İki kelimelik operatörler tek kelimelik olanlardan önce denenir.
var twoWordOperators = []string{"NOT LIKE", "IS NOT"}

type condition struct {
	column string
	op     string
	value  any
}

// parseCondition, "kolon operatör değer" biçimindeki bir --where değerini
// ayrıştırır. Operatörün whitelist kontrolü composer'a bırakılır.
func parseCondition(s string) (condition, error) {
	fields := strings.Fields(s)
	if len(fields) < 3 {
		return condition{}, fmt.Errorf("%w: %q", errConditionSyntax, s)
	}

	column, rest := fields[0], fields[1:]
	if len(rest) >= 3 {
		pair := strings.ToUpper(rest[0] + " " + rest[1])
		for _, op := range twoWordOperators {
			if pair == op {
				return condition{column, op, parseValue(strings.Join(rest[2:], " "))}, nil
			}
		}
	}
	return condition{column, rest[0], parseValue(strings.Join(rest[1:], " "))}, nil
}

// parseAssignment, "kolon=değer" biçimindeki bir --set değerini ayrıştırır.
func parseAssignment(s string) (string, any, error) {
	column, value, ok := strings.Cut(s, "=")
	column = strings.TrimSpace(column)
	if !ok || column == "" {
		return "", nil, fmt.Errorf("%w: %q", errAssignmentSyntax, s)
	}
	return column, parseValue(strings.TrimSpace(value)), nil
}

// parseValue, komut satırı değerini Go değerine çevirir: NULL → nil,
// true/false → bool, sayılar → int64/float64, tek tırnaklı metin → tırnaksız
// string. Geri kalan her şey string olarak kalır.
func parseValue(s string) any {
	switch strings.ToUpper(s) {
	case "NULL":
		return nil
	case "TRUE":
		return true
	case "FALSE":
		return false
	}
	// "007" gibi değerler metin olarak kalır.
	if d := strings.TrimPrefix(s, "-"); len(d) > 1 && d[0] == '0' && d[1] != '.' {
		return s
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}
	return s
}
