package composer

// -----------------------------------------------------------------------------
// SELECT rolleri
// -----------------------------------------------------------------------------
// Select → From → (Join → On)* → Where... → GroupBy → OrderBy
// -----------------------------------------------------------------------------

// SelectComposer, SELECT kolon listesinden sonraki roldür; sadece FROM gelebilir.
type SelectComposer struct {
	s *session
}

// From, FROM tablo yazar. "users AS u" biçiminde alias desteklenir.
func (c SelectComposer) From(table string) FromComposer {
	c.s.from(table)
	return FromComposer{source{terminal{c.s}}}
}

// FromQuery, alt sorguyu FROM (alt sorgu) AS alias olarak yazar.
//
// Örnek:
//
//	inner := composer.Select("id").From("orders").Where("total", ">", 100)
//	composer.Select("*").FromQuery(inner, "big")
//	// SELECT * FROM (SELECT id FROM orders WHERE total > 100) AS big
func (c SelectComposer) FromQuery(child Renderer, alias string) FromComposer {
	c.s.fromQuery(child, alias)
	return FromComposer{source{terminal{c.s}}}
}

// source, FROM ve ON rollerinin paylaştığı geçişlerdir.
type source struct {
	terminal
}

func (c source) Join(table string) JoinComposer {
	c.s.join(InnerJoin, table)
	return JoinComposer{c.s}
}

func (c source) LJoin(table string) JoinComposer {
	c.s.join(LeftJoin, table)
	return JoinComposer{c.s}
}

func (c source) RJoin(table string) JoinComposer {
	c.s.join(RightJoin, table)
	return JoinComposer{c.s}
}

// Where, WHERE kolon operatör değer yazar.
func (c source) Where(column, op string, value any) WhereComposer {
	c.s.where(column, op, value)
	return WhereComposer{predicate{c.terminal}}
}

// WhereExpr, tek başına WHERE yazar; ardından bir ifade gelir.
func (c source) WhereExpr() ExprComposer {
	c.s.whereExpr()
	return ExprComposer{c.s}
}

func (c source) GroupBy(columns ...string) GroupByComposer {
	c.s.groupBy(columns)
	return GroupByComposer{c.terminal}
}

func (c source) OrderBy(columns ...string) OrderByComposer {
	c.s.orderBy(columns, OrderAsc)
	return OrderByComposer{c.terminal}
}

func (c source) OrderByDesc(columns ...string) OrderByComposer {
	c.s.orderBy(columns, OrderDesc)
	return OrderByComposer{c.terminal}
}

// FromComposer, FROM sonrası roldür.
type FromComposer struct {
	source
}

// Brackets, alt composer'ı parantez içinde ekler ve FROM rolünde kalır.
func (c FromComposer) Brackets(child Renderer) FromComposer {
	c.s.splice(child, true)
	return c
}

// JoinComposer, JOIN tablo sonrası roldür; sadece ON gelebilir.
type JoinComposer struct {
	s *session
}

// On, ON a = b yazar. İki kolon da zorunludur.
func (c JoinComposer) On(left, right string) OnComposer {
	c.s.on(left, right)
	return OnComposer{source{terminal{c.s}}}
}

// OnComposer, ON sonrası roldür.
type OnComposer struct {
	source
}

func (c OnComposer) Brackets(child Renderer) OnComposer {
	c.s.splice(child, true)
	return c
}

// GroupByComposer, GROUP BY sonrası roldür.
type GroupByComposer struct {
	terminal
}

func (c GroupByComposer) OrderBy(columns ...string) OrderByComposer {
	c.s.orderBy(columns, OrderAsc)
	return OrderByComposer{c.terminal}
}

func (c GroupByComposer) OrderByDesc(columns ...string) OrderByComposer {
	c.s.orderBy(columns, OrderDesc)
	return OrderByComposer{c.terminal}
}

// OrderByComposer, zincirin son rolüdür; sadece render edilebilir.
type OrderByComposer struct {
	terminal
}
