package composer

// -----------------------------------------------------------------------------
// Koşul rolleri
// -----------------------------------------------------------------------------
// ExprComposer "açık" bir konumdur: WHERE, AND, OR veya NOT yazılmış ama
// henüz bir koşul gelmemiştir, bu yüzden render edilemez.
//
// Diğer roller tamamlanmış bir koşulu temsil eder ve predicate geçişlerini
// (And, Or, GroupBy, OrderBy, render) paylaşır.
// -----------------------------------------------------------------------------

// ExprComposer, bir koşul bekleyen roldür.
type ExprComposer struct {
	s *session
}

// Condition, "kolon operatör değer" yazar ve ayırıcıyı bekletir. Ayırıcı
// yalnızca ardından başka bir Condition gelirse yazılır.
//
// Ayırıcılar: "" (varsayılan: WHERE'de AND), "AND", "OR".
//
// Örnek:
//
//	composer.Select("*").From("t").WhereExpr().
//	    Condition("a", "=", 1, "OR").
//	    Condition("b", "=", 2, "")
//	// SELECT * FROM t WHERE a = 1 OR b = 2
func (c ExprComposer) Condition(column, op string, value any, sep string) ConditionComposer {
	c.s.condition(column, op, value, sep)
	return ConditionComposer{c.closed()}
}

// Not, NOT kolon operatör değer yazar.
func (c ExprComposer) Not(column, op string, value any) NotComposer {
	c.s.not(column, op, value)
	return NotComposer{c.closed()}
}

// NotExpr, tek başına NOT yazar: NOT (…), NOT a BETWEEN …
func (c ExprComposer) NotExpr() ExprComposer {
	c.s.notExpr()
	return c
}

// In, kolon IN (alt sorgu) yazar.
func (c ExprComposer) In(column string, child Renderer) InComposer {
	c.s.in(column, child)
	return InComposer{c.closed()}
}

// InValues, kolon IN (v1, v2, ...) yazar. Boş liste ErrEmptyValueList döndürür.
func (c ExprComposer) InValues(column string, values ...any) InComposer {
	c.s.inValues(column, values)
	return InComposer{c.closed()}
}

// Like, kolon LIKE desen yazar. Joker karakterler (%/_) çağıranın sorumluluğundadır.
func (c ExprComposer) Like(column string, pattern any) LikeComposer {
	c.s.like(column, pattern)
	return LikeComposer{c.closed()}
}

// Between, kolon BETWEEN alt AND üst yazar.
func (c ExprComposer) Between(column string, low, high any) BetweenComposer {
	c.s.between(column, low, high)
	return BetweenComposer{c.closed()}
}

// Brackets, alt composer'ı parantez içinde ekler. Alt composer'ın başındaki
// WHERE atılır:
//
//	inner := composer.NewSimple().Where("b", "=", 2).Or("c", "=", 3)
//	composer.Select("*").From("t").Where("a", "=", 1).AndExpr().Brackets(inner)
//	// SELECT * FROM t WHERE a = 1 AND (b = 2 OR c = 3)
func (c ExprComposer) Brackets(child Renderer) BracketComposer {
	c.s.splice(child, true)
	return BracketComposer{c.closed()}
}

func (c ExprComposer) closed() predicate {
	return predicate{terminal{c.s}}
}

// WhereComposer, WHERE kolon operatör değer sonrası roldür.
type WhereComposer struct {
	predicate
}

type AndComposer struct {
	predicate
}

type OrComposer struct {
	predicate
}

type NotComposer struct {
	predicate
}

type BetweenComposer struct {
	predicate
}

type LikeComposer struct {
	predicate
}

type InComposer struct {
	predicate
}

type BracketComposer struct {
	predicate
}

// ConditionComposer, Condition sonrası roldür; Condition zinciri devam edebilir.
type ConditionComposer struct {
	predicate
}

func (c ConditionComposer) Condition(column, op string, value any, sep string) ConditionComposer {
	c.s.condition(column, op, value, sep)
	return c
}
