// -----------------------------------------------------------------------------
// Composer Types - Yardımcı Tipler
// -----------------------------------------------------------------------------
// JOIN ve ORDER BY için izin verilen anahtar kelimeler enum-like tiplerle
// tutulur; bu sayede kullanıcı input'u keyword yoluna giremez.
// -----------------------------------------------------------------------------

package composer

// JoinType, JOIN tiplerini temsil eden enum-like yapıdır.
type JoinType string

const (
	InnerJoin JoinType = "INNER"
	LeftJoin  JoinType = "LEFT"
	RightJoin JoinType = "RIGHT"
)

// OrderDirection, ORDER BY için izin verilen yönleri temsil eder.
type OrderDirection string

const (
	OrderAsc  OrderDirection = "ASC"
	OrderDesc OrderDirection = "DESC"
)

// statementKind, session'da hangi ifadenin kurulduğunu tutar.
type statementKind int

const (
	statementNone statementKind = iota
	statementSelect
	statementInsert
	statementUpdate
	statementDelete
)

// runContext, Condition zincirinin hangi listede olduğunu belirler:
// UPDATE ... SET listesi ya da WHERE koşulları.
type runContext int

const (
	runNone runContext = iota
	runSet
	runWhere
)
