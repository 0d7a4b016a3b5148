package composer

import "strings"

// fragmentKind, buffer'daki her parçanın hangi formatlama kuralından
// geçtiğini işaretler.
type fragmentKind int

const (
	kindKeyword fragmentKind = iota
	kindIdentifier
	kindOperator
	kindValue
	kindSeparator
	kindComma
	kindOpen
	kindClose
)

// fragment, render edilmiş (ya da değer ise render'ı bekleyen) bir SQL parçası.
// Değerler render anına kadar ham tutulur ki iç içe composer'lar
// birleştirildiğinde placeholder numaraları doğru kalsın.
type fragment struct {
	kind  fragmentKind
	text  string
	value any
}

// renderFragments, fragment listesini tek bir SQL metnine çevirir.
// Parçalar tek boşlukla birleşir; "(" sonrası, ")" ve "," öncesi boşluk
// yazılmaz.
func renderFragments(frags []fragment, g Grammar, style PlaceholderStyle) (string, []any, error) {
	var (
		b    strings.Builder
		args []any
		prev fragmentKind
	)

	for i, f := range frags {
		text := f.text
		if f.kind == kindValue {
			var err error
			text, args, err = bind(g, style, f.value, args)
			if err != nil {
				return "", nil, err
			}
		}

		if i > 0 && prev != kindOpen && f.kind != kindClose && f.kind != kindComma {
			b.WriteByte(' ')
		}
		b.WriteString(text)
		prev = f.kind
	}

	return b.String(), args, nil
}
