package composer

import "errors"

// -----------------------------------------------------------------------------
// Composer Errors
// -----------------------------------------------------------------------------
// Composer zincirleme çağrılarla çalıştığı için hatalar çağrı anında session'a
// yazılır; ilk hata kalıcıdır ve sonraki tüm çağrılar no-op olur. Hata,
// Err(), ComposedQuery() ve ToSQL() üzerinden geri döner.
//
// Kullanım:
//
//	_, err := composer.Select("*").From("t").GroupBy().ComposedQuery()
//	if errors.Is(err, composer.ErrEmptyColumnList) {
//	    // GROUP BY kolonsuz çağrıldı
//	}
// -----------------------------------------------------------------------------

var (
	// ErrInvalidOperator, whitelist dışında bir operatör verildiğinde döner.
	ErrInvalidOperator = errors.New("composer: invalid operator")

	// ErrEmptyColumnList, GroupBy/OrderBy/On operandsız çağrıldığında döner.
	ErrEmptyColumnList = errors.New("composer: empty column list")

	// ErrUnterminatedComposition, hiçbir şey üretmemiş bir composer
	// tamamlanmış bir ifade olarak kullanıldığında döner.
	ErrUnterminatedComposition = errors.New("composer: unterminated composition")

	// ErrNestedComposition, Brackets/In/FromQuery'ye verilen alt composer
	// render edilemediğinde döner. Alt composer'ın kendi hatası da sarılır.
	ErrNestedComposition = errors.New("composer: nested composition failed")

	ErrInvalidIdentifier       = errors.New("composer: invalid identifier")
	ErrInvalidSeparator        = errors.New("composer: invalid separator")
	ErrUnsupportedValue        = errors.New("composer: unsupported value")
	ErrEmptyValueList          = errors.New("composer: empty value list")
	ErrColumnCountMismatch     = errors.New("composer: column/value count mismatch")
	ErrInvalidClause           = errors.New("composer: clause not allowed for statement")
	ErrUnknownGrammar          = errors.New("composer: unknown grammar")
	ErrUnknownPlaceholderStyle = errors.New("composer: unknown placeholder style")
)
