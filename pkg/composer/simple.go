package composer

// -----------------------------------------------------------------------------
// Simple - Unchecked Composer
// -----------------------------------------------------------------------------
// Simple, tüm clause işlemlerini her sırada kabul eden düz composer'dır.
// Sıra kontrolü yapılmaz; quoting, operatör whitelist'i ve değer kuralları
// aynen uygulanır. Başlıca kullanım alanları:
//   - Brackets/In'e verilen alt koşul parçaları
//   - kontrollü grafiğin ifade edemediği clause sıraları
//   - CLI gibi dinamik kurulan ifadeler
//
// Örnek:
//
//	q, err := composer.NewSimple().
//	    Delete().From("sessions").
//	    Where("expires_at", "<", "2024-01-01").
//	    ComposedQuery()
//	// DELETE FROM sessions WHERE expires_at < '2024-01-01'
// -----------------------------------------------------------------------------

// Simple, sırası kontrol edilmeyen composer'dır. Sıfır değeri kullanılamaz;
// NewSimple ile oluşturulmalıdır.
type Simple struct {
	s *session
}

// NewSimple, boş bir unchecked composer oluşturur.
func NewSimple(opts ...Option) *Simple {
	return &Simple{s: newSession(false, opts)}
}

// Cond, tek bir "kolon operatör değer" koşulu içeren bir parça üretir.
// Brackets'a verilmek üzere kısa yoldur:
//
//	.AndExpr().Brackets(composer.Cond("b", "=", 2).Or("c", "=", 3))
func Cond(column, op string, value any, opts ...Option) *Simple {
	c := NewSimple(opts...)
	if frags, ok := c.s.predicateFragments(column, op, value); ok {
		c.s.push(frags...)
	}
	return c
}

func (c *Simple) Select(columns ...string) *Simple {
	c.s.selectColumns("SELECT", columns)
	return c
}

func (c *Simple) SelectDistinct(columns ...string) *Simple {
	c.s.selectColumns("SELECT DISTINCT", columns)
	return c
}

func (c *Simple) SelectCount(columns ...string) *Simple {
	c.s.aggregate("COUNT", columns, true)
	return c
}

func (c *Simple) SelectAvg(column string) *Simple {
	c.s.aggregate("AVG", []string{column}, false)
	return c
}

func (c *Simple) SelectSum(column string) *Simple {
	c.s.aggregate("SUM", []string{column}, false)
	return c
}

func (c *Simple) SelectMin(column string) *Simple {
	c.s.aggregate("MIN", []string{column}, false)
	return c
}

func (c *Simple) SelectMax(column string) *Simple {
	c.s.aggregate("MAX", []string{column}, false)
	return c
}

func (c *Simple) Update(table string) *Simple {
	c.s.update(table)
	return c
}

// Delete, tek başına DELETE yazar; tablo From ile verilir.
func (c *Simple) Delete() *Simple {
	c.s.deleteBare()
	return c
}

func (c *Simple) Insert(table string, columns ...string) *Simple {
	c.s.insert(table, columns)
	return c
}

func (c *Simple) Values(values ...any) *Simple {
	c.s.values(values)
	return c
}

func (c *Simple) From(table string) *Simple {
	c.s.from(table)
	return c
}

func (c *Simple) FromQuery(child Renderer, alias string) *Simple {
	c.s.fromQuery(child, alias)
	return c
}

func (c *Simple) Join(table string) *Simple {
	c.s.join(InnerJoin, table)
	return c
}

func (c *Simple) LJoin(table string) *Simple {
	c.s.join(LeftJoin, table)
	return c
}

func (c *Simple) RJoin(table string) *Simple {
	c.s.join(RightJoin, table)
	return c
}

func (c *Simple) On(left, right string) *Simple {
	c.s.on(left, right)
	return c
}

// Column, tek bir identifier yazar (quoting uygulanır).
func (c *Simple) Column(name string) *Simple {
	c.s.column(name)
	return c
}

func (c *Simple) Where(column, op string, value any) *Simple {
	c.s.where(column, op, value)
	return c
}

func (c *Simple) WhereExpr() *Simple {
	c.s.whereExpr()
	return c
}

func (c *Simple) And(column, op string, value any) *Simple {
	c.s.logical("AND", column, op, value)
	return c
}

func (c *Simple) AndExpr() *Simple {
	c.s.logicalExpr("AND")
	return c
}

func (c *Simple) Or(column, op string, value any) *Simple {
	c.s.logical("OR", column, op, value)
	return c
}

func (c *Simple) OrExpr() *Simple {
	c.s.logicalExpr("OR")
	return c
}

func (c *Simple) Not(column, op string, value any) *Simple {
	c.s.not(column, op, value)
	return c
}

func (c *Simple) NotExpr() *Simple {
	c.s.notExpr()
	return c
}

func (c *Simple) In(column string, child Renderer) *Simple {
	c.s.in(column, child)
	return c
}

func (c *Simple) InValues(column string, values ...any) *Simple {
	c.s.inValues(column, values)
	return c
}

func (c *Simple) Like(column string, pattern any) *Simple {
	c.s.like(column, pattern)
	return c
}

func (c *Simple) Between(column string, low, high any) *Simple {
	c.s.between(column, low, high)
	return c
}

func (c *Simple) Brackets(child Renderer) *Simple {
	c.s.splice(child, true)
	return c
}

// Condition, ayırıcıyı bekleterek "kolon operatör değer" yazar. Kabul
// edilen ayırıcılar: "", ",", "AND", "OR".
func (c *Simple) Condition(column, op string, value any, sep string) *Simple {
	c.s.condition(column, op, value, sep)
	return c
}

func (c *Simple) GroupBy(columns ...string) *Simple {
	c.s.groupBy(columns)
	return c
}

func (c *Simple) OrderBy(columns ...string) *Simple {
	c.s.orderBy(columns, OrderAsc)
	return c
}

func (c *Simple) OrderByDesc(columns ...string) *Simple {
	c.s.orderBy(columns, OrderDesc)
	return c
}

// Reset, buffer'ı ve hatayı temizler; grammar ve placeholder stili korunur.
func (c *Simple) Reset() *Simple {
	c.s.reset()
	return c
}

// ComposedQuery, buffer'ı SQL metnine çevirir. Boş buffer "" döndürür.
func (c *Simple) ComposedQuery() (string, error) {
	query, _, err := c.s.render()
	return query, err
}

func (c *Simple) ToSQL() (string, []any, error) {
	return c.s.render()
}

func (c *Simple) Err() error {
	return c.s.err
}

func (c *Simple) state() *session {
	if c == nil {
		return nil
	}
	return c.s
}
