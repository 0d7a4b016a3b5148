// Package composer, akıcı (fluent) zincirlerle SQL ifadesi üretir.
//
// İki stil vardır:
//   - Composer: her adımda sadece geçerli metotları sunan kontrollü zincir
//   - Simple: her clause'u her sırada kabul eden kontrolsüz zincir
//
// Identifier'lar Grammar.Wrap'ten, değerler Grammar.Quote ya da placeholder
// yolundan geçer; kullanıcı verisi hiçbir zaman keyword konumuna yazılmaz.
package composer

// -----------------------------------------------------------------------------
// Checked Composer - Root
// -----------------------------------------------------------------------------
// Composer, kontrollü (typestate) zincirin giriş noktasıdır. Her çağrı bir
// sonraki grammar rolünü temsil eden ayrı bir struct döndürür; bir rolde
// sadece o noktada geçerli olan metotlar bulunur. Bu sayede
//
//	composer.Select("*").Where(...)       // derlenmez: Select'ten sonra From gelir
//	composer.Update("t").Where(...)       // derlenmez: önce SET ataması gerekir
//
// gibi hatalı sıralar derleme anında yakalanır.
//
// Tüm roller aynı session'ı paylaşır; role değerleri kopyalanabilir ama
// aynı buffer'a yazar. Session eşzamanlı kullanım için güvenli değildir.
// -----------------------------------------------------------------------------

// Renderer, render edilebilir bir composer'dır. Render edilebilir roller ve
// *Simple bu interface'i sağlar; Brackets/In/FromQuery alt composer olarak
// Renderer kabul eder.
type Renderer interface {
	ComposedQuery() (string, error)
	ToSQL() (string, []any, error)
	Err() error
	state() *session
}

// Predicate, tamamlanmış bir koşuldan sonra gelebilecek ortak geçişlerdir.
// Where, And, Or, Not, Between, Like, In, Bracket ve Condition rolleri bu
// interface'i sağlar; dinamik koşul zincirleri için kullanılır:
//
//	var p composer.Predicate = composer.Select("*").From("users").Where("active", "=", true)
//	for col, v := range filters {
//	    p = p.And(col, "=", v)
//	}
type Predicate interface {
	Renderer
	And(column, op string, value any) AndComposer
	AndExpr() ExprComposer
	Or(column, op string, value any) OrComposer
	OrExpr() ExprComposer
	GroupBy(columns ...string) GroupByComposer
	OrderBy(columns ...string) OrderByComposer
	OrderByDesc(columns ...string) OrderByComposer
}

// Composer, boş bir kontrollü composer'dır.
type Composer struct {
	s *session
}

// New, verilen seçeneklerle yeni bir Composer oluşturur.
//
// Örnek:
//
//	c := composer.New(
//	    composer.WithGrammar(composer.NewPostgresGrammar()),
//	    composer.WithPlaceholders(composer.Dollar),
//	)
//	query, args, err := c.Select("id").From("users").Where("age", ">", 18).ToSQL()
//	// SELECT "id" FROM "users" WHERE "age" > $1   [18]
func New(opts ...Option) *Composer {
	return &Composer{s: newSession(true, opts)}
}

// Err, Reset sonrası da dahil olmak üzere session'daki hatayı döndürür.
func (c *Composer) Err() error {
	return c.s.err
}

// Select, SELECT kolonlar ifadesini başlatır. Kolon verilmezse * yazılır.
func (c *Composer) Select(columns ...string) SelectComposer {
	c.s.selectColumns("SELECT", columns)
	return SelectComposer{c.s}
}

// SelectDistinct, SELECT DISTINCT kolonlar ifadesini başlatır.
func (c *Composer) SelectDistinct(columns ...string) SelectComposer {
	c.s.selectColumns("SELECT DISTINCT", columns)
	return SelectComposer{c.s}
}

// SelectCount, kolon verilmezse COUNT(*), verilirse her kolon için COUNT(kolon) yazar.
func (c *Composer) SelectCount(columns ...string) SelectComposer {
	c.s.aggregate("COUNT", columns, true)
	return SelectComposer{c.s}
}

func (c *Composer) SelectAvg(column string) SelectComposer {
	c.s.aggregate("AVG", []string{column}, false)
	return SelectComposer{c.s}
}

func (c *Composer) SelectSum(column string) SelectComposer {
	c.s.aggregate("SUM", []string{column}, false)
	return SelectComposer{c.s}
}

func (c *Composer) SelectMin(column string) SelectComposer {
	c.s.aggregate("MIN", []string{column}, false)
	return SelectComposer{c.s}
}

func (c *Composer) SelectMax(column string) SelectComposer {
	c.s.aggregate("MAX", []string{column}, false)
	return SelectComposer{c.s}
}

// Update, UPDATE tablo SET ifadesini başlatır. Ardından en az bir atama
// (Condition) ve bir WHERE gelmelidir.
func (c *Composer) Update(table string) UpdateComposer {
	c.s.update(table)
	return UpdateComposer{c.s}
}

// Delete, DELETE FROM tablo ifadesini başlatır. Kontrollü zincir WHERE
// olmadan render edilemez.
func (c *Composer) Delete(table string) DeleteComposer {
	c.s.deleteFrom(table)
	return DeleteComposer{c.s}
}

// Insert, INSERT INTO tablo (kolonlar) ifadesini başlatır.
func (c *Composer) Insert(table string, columns ...string) InsertComposer {
	c.s.insert(table, columns)
	return InsertComposer{c.s}
}

// -----------------------------------------------------------------------------
// Package-level kısayollar
// -----------------------------------------------------------------------------

func Select(columns ...string) SelectComposer {
	return New().Select(columns...)
}

func SelectDistinct(columns ...string) SelectComposer {
	return New().SelectDistinct(columns...)
}

func SelectCount(columns ...string) SelectComposer {
	return New().SelectCount(columns...)
}

func SelectAvg(column string) SelectComposer {
	return New().SelectAvg(column)
}

func SelectSum(column string) SelectComposer {
	return New().SelectSum(column)
}

func SelectMin(column string) SelectComposer {
	return New().SelectMin(column)
}

func SelectMax(column string) SelectComposer {
	return New().SelectMax(column)
}

func Update(table string) UpdateComposer {
	return New().Update(table)
}

func Delete(table string) DeleteComposer {
	return New().Delete(table)
}

func Insert(table string, columns ...string) InsertComposer {
	return New().Insert(table, columns...)
}

// -----------------------------------------------------------------------------
// Ortak role parçaları
// -----------------------------------------------------------------------------

// terminal, render edilebilir rollerin ortak metotlarını sağlar.
type terminal struct {
	s *session
}

// ComposedQuery, buffer'ı SQL metnine çevirir. Buffer değişmez; aynı zincir
// tekrar render edilebilir.
func (t terminal) ComposedQuery() (string, error) {
	query, _, err := t.s.render()
	return query, err
}

// ToSQL, SQL metnini ve placeholder parametrelerini birlikte döndürür.
// Inline stilde parametre listesi boştur.
func (t terminal) ToSQL() (string, []any, error) {
	return t.s.render()
}

// Err, zincir boyunca kaydedilen ilk hatayı döndürür.
func (t terminal) Err() error {
	return t.s.err
}

// Reset, buffer'ı ve hata durumunu temizleyip aynı session üzerinde yeni
// bir root döndürür.
func (t terminal) Reset() *Composer {
	t.s.reset()
	return &Composer{s: t.s}
}

func (t terminal) state() *session {
	return t.s
}

// predicate, tamamlanmış koşul rollerinin paylaştığı geçişlerdir.
type predicate struct {
	terminal
}

// And, "AND kolon operatör değer" ekler.
func (p predicate) And(column, op string, value any) AndComposer {
	p.s.logical("AND", column, op, value)
	return AndComposer{p}
}

// AndExpr, tek başına AND yazar; ardından bir ifade (Not, Brackets, Between...) gelir.
func (p predicate) AndExpr() ExprComposer {
	p.s.logicalExpr("AND")
	return ExprComposer{p.s}
}

func (p predicate) Or(column, op string, value any) OrComposer {
	p.s.logical("OR", column, op, value)
	return OrComposer{p}
}

func (p predicate) OrExpr() ExprComposer {
	p.s.logicalExpr("OR")
	return ExprComposer{p.s}
}

func (p predicate) GroupBy(columns ...string) GroupByComposer {
	p.s.groupBy(columns)
	return GroupByComposer{p.terminal}
}

func (p predicate) OrderBy(columns ...string) OrderByComposer {
	p.s.orderBy(columns, OrderAsc)
	return OrderByComposer{p.terminal}
}

func (p predicate) OrderByDesc(columns ...string) OrderByComposer {
	p.s.orderBy(columns, OrderDesc)
	return OrderByComposer{p.terminal}
}
