package composer

import (
	"fmt"
	"strings"
)

// -----------------------------------------------------------------------------
// Session - Paylaşılan Query Buffer
// -----------------------------------------------------------------------------
// Bir composer zincirindeki tüm role değerleri aynı session'ı gösterir.
// Session; fragment buffer'ını, grammar'ı, placeholder stilini ve ilk hatayı
// tutar. Hata oluştuktan sonra her işlem no-op olur.
//
// strict true ise (checked composer) bağlama göre ek kurallar uygulanır:
// SET listesinde sadece "=" ve ",", WHERE'de "," yasak, GROUP BY/ORDER BY
// sadece SELECT'te, VALUES sayısı kolon sayısına eşit.
// -----------------------------------------------------------------------------

type session struct {
	grammar Grammar
	style   PlaceholderStyle
	strict  bool

	frags []fragment
	err   error

	kind      statementKind
	selecting bool
	run       runContext
	pending   string
	columns   int
	rows      int
}

// Option, composer oluşturulurken session ayarlarını değiştirir.
type Option func(*session)

// WithGrammar, identifier/literal quoting kuralını seçer. nil verilirse
// plain grammar kullanılır.
func WithGrammar(g Grammar) Option {
	return func(s *session) {
		if g != nil {
			s.grammar = g
		}
	}
}

// WithPlaceholders, değerlerin satır içi mi yoksa placeholder ile mi
// yazılacağını belirler.
func WithPlaceholders(style PlaceholderStyle) Option {
	return func(s *session) {
		s.style = style
	}
}

func newSession(strict bool, opts []Option) *session {
	s := &session{
		grammar: NewPlainGrammar(),
		style:   Inline,
		strict:  strict,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.style < Inline || s.style > Colon {
		s.err = fmt.Errorf("%w: %d", ErrUnknownPlaceholderStyle, int(s.style))
	}
	return s
}

// fail, ilk hatayı saklar; sonrakiler yok sayılır.
func (s *session) fail(err error) {
	if s.err == nil && err != nil {
		s.err = err
	}
}

func (s *session) push(frags ...fragment) {
	if s.err != nil {
		return
	}
	s.frags = append(s.frags, frags...)
	s.pending = ""
}

func (s *session) wrap(name string) (string, bool) {
	w, err := s.grammar.Wrap(name)
	if err != nil {
		s.fail(err)
		return "", false
	}
	return w, true
}

// checkValue, Inline stilde değeri çağrı anında formatlar; böylece
// desteklenmeyen tipler render'a kadar beklemeden hata verir.
func (s *session) checkValue(v any) bool {
	if s.style != Inline {
		return true
	}
	if _, err := formatLiteral(s.grammar, v); err != nil {
		s.fail(err)
		return false
	}
	return true
}

func (s *session) checkValues(vs []any) bool {
	for _, v := range vs {
		if !s.checkValue(v) {
			return false
		}
	}
	return true
}

// -----------------------------------------------------------------------------
// SELECT / FROM / JOIN
// -----------------------------------------------------------------------------

func (s *session) selectColumns(kw string, columns []string) {
	if s.err != nil {
		return
	}
	list := "*"
	if len(columns) > 0 {
		var err error
		if list, err = wrapList(s.grammar, columns); err != nil {
			s.fail(err)
			return
		}
	}
	s.beginSelect()
	s.push(keyword(kw), identifier(list))
}

// aggregate, SELECT COUNT(a), COUNT(b) biçimini üretir. star true ise kolon
// verilmediğinde fn(*) yazılır.
func (s *session) aggregate(fn string, columns []string, star bool) {
	if s.err != nil {
		return
	}
	var list string
	if len(columns) == 0 {
		if !star {
			s.fail(fmt.Errorf("%w: %s requires a column", ErrEmptyColumnList, fn))
			return
		}
		list = fn + "(*)"
	} else {
		var err error
		list, err = wrapEach(s.grammar, columns, func(c string) string { return fn + "(" + c + ")" })
		if err != nil {
			s.fail(err)
			return
		}
	}
	s.beginSelect()
	s.push(keyword("SELECT"), identifier(list))
}

func (s *session) beginSelect() {
	if s.kind == statementNone {
		s.kind = statementSelect
	}
	s.selecting = true
}

func (s *session) from(table string) {
	if t, ok := s.wrap(table); ok {
		s.push(keyword("FROM"), identifier(t))
	}
}

func (s *session) fromQuery(child Renderer, alias string) {
	if s.err != nil {
		return
	}
	a, ok := s.wrap(alias)
	if !ok {
		return
	}
	s.push(keyword("FROM"))
	s.splice(child, false)
	s.push(keyword("AS"), identifier(a))
}

func (s *session) join(kind JoinType, table string) {
	if t, ok := s.wrap(table); ok {
		s.push(keyword(string(kind)+" JOIN"), identifier(t))
	}
}

func (s *session) on(left, right string) {
	if s.err != nil {
		return
	}
	if strings.TrimSpace(left) == "" || strings.TrimSpace(right) == "" {
		s.fail(fmt.Errorf("%w: ON requires two columns", ErrEmptyColumnList))
		return
	}
	l, ok := s.wrap(left)
	if !ok {
		return
	}
	r, ok := s.wrap(right)
	if !ok {
		return
	}
	s.push(keyword("ON"), identifier(l), operator("="), identifier(r))
}

func (s *session) column(name string) {
	if c, ok := s.wrap(name); ok {
		s.push(identifier(c))
	}
}

// -----------------------------------------------------------------------------
// WHERE / predicates
// -----------------------------------------------------------------------------

// predicateFragments, "kolon operatör değer" üçlüsünü doğrular. Hiçbir şey
// buffer'a eklenmez; çağıran ekler.
func (s *session) predicateFragments(column, op string, value any) ([]fragment, bool) {
	if s.err != nil {
		return nil, false
	}
	c, ok := s.wrap(column)
	if !ok {
		return nil, false
	}
	o, err := normalizeOperator(op)
	if err != nil {
		s.fail(err)
		return nil, false
	}
	if !s.checkValue(value) {
		return nil, false
	}
	return []fragment{identifier(c), operator(o), valueOf(value)}, true
}

func (s *session) where(column, op string, value any) {
	if frags, ok := s.predicateFragments(column, op, value); ok {
		s.push(keyword("WHERE"))
		s.push(frags...)
		s.run = runWhere
	}
}

func (s *session) whereExpr() {
	s.push(keyword("WHERE"))
	s.run = runWhere
}

// logical, AND/OR ile yeni bir predicate ekler.
func (s *session) logical(kw, column, op string, value any) {
	if frags, ok := s.predicateFragments(column, op, value); ok {
		s.push(separator(kw))
		s.push(frags...)
	}
}

func (s *session) logicalExpr(kw string) {
	s.push(separator(kw))
}

func (s *session) not(column, op string, value any) {
	if frags, ok := s.predicateFragments(column, op, value); ok {
		s.push(keyword("NOT"))
		s.push(frags...)
	}
}

func (s *session) notExpr() {
	s.push(keyword("NOT"))
}

func (s *session) between(column string, low, high any) {
	if s.err != nil {
		return
	}
	c, ok := s.wrap(column)
	if !ok || !s.checkValue(low) || !s.checkValue(high) {
		return
	}
	s.push(identifier(c), operator("BETWEEN"), valueOf(low), keyword("AND"), valueOf(high))
}

func (s *session) like(column string, pattern any) {
	if s.err != nil {
		return
	}
	c, ok := s.wrap(column)
	if !ok || !s.checkValue(pattern) {
		return
	}
	s.push(identifier(c), operator("LIKE"), valueOf(pattern))
}

func (s *session) in(column string, child Renderer) {
	if s.err != nil {
		return
	}
	c, ok := s.wrap(column)
	if !ok {
		return
	}
	s.push(identifier(c), operator("IN"))
	s.splice(child, false)
}

func (s *session) inValues(column string, values []any) {
	if s.err != nil {
		return
	}
	if len(values) == 0 {
		s.fail(fmt.Errorf("%w: IN requires at least one value", ErrEmptyValueList))
		return
	}
	c, ok := s.wrap(column)
	if !ok || !s.checkValues(values) {
		return
	}
	s.push(identifier(c), operator("IN"))
	s.push(tuple(values)...)
}

// condition, SET atamaları ve WHERE zincirleri için ortak adımdır.
// Ayırıcı sona eklenir ama yalnızca ardından başka bir Condition gelirse
// yazılır; aradaki herhangi bir push bekleyen ayırıcıyı düşürür.
func (s *session) condition(column, op string, value any, sep string) {
	if s.err != nil {
		return
	}
	next, err := s.runSeparator(sep)
	if err != nil {
		s.fail(err)
		return
	}
	if s.strict && s.run == runSet {
		if o, _ := normalizeOperator(op); o != "=" {
			s.fail(fmt.Errorf("%w: %q (SET assignments only accept =)", ErrInvalidOperator, op))
			return
		}
	}
	frags, ok := s.predicateFragments(column, op, value)
	if !ok {
		return
	}
	if prev := s.pending; prev != "" {
		s.push(separator(prev))
	}
	s.push(frags...)
	s.pending = next
}

func (s *session) runSeparator(sep string) (string, error) {
	norm, err := normalizeSeparator(sep)
	if err != nil || !s.strict {
		return norm, err
	}
	switch s.run {
	case runSet:
		if norm == "" {
			norm = ","
		}
		if norm != "," {
			return "", fmt.Errorf("%w: %q in SET list", ErrInvalidSeparator, sep)
		}
	case runWhere:
		if norm == "" {
			norm = "AND"
		}
		if norm == "," {
			return "", fmt.Errorf("%w: %q in WHERE clause", ErrInvalidSeparator, sep)
		}
	}
	return norm, nil
}

// splice, alt composer'ın fragment'larını parantez içine kopyalar.
// stripWhere true ise alt composer'ın başındaki WHERE atılır.
func (s *session) splice(child Renderer, stripWhere bool) {
	if s.err != nil {
		return
	}
	var cs *session
	if child != nil {
		cs = child.state()
	}
	switch {
	case cs == nil:
		s.fail(fmt.Errorf("%w: nil composer", ErrNestedComposition))
		return
	case cs == s:
		s.fail(fmt.Errorf("%w: composer cannot be nested into itself", ErrNestedComposition))
		return
	case cs.err != nil:
		s.fail(fmt.Errorf("%w: %w", ErrNestedComposition, cs.err))
		return
	}

	frags := cs.frags
	if stripWhere && len(frags) > 0 && frags[0].kind == kindKeyword && frags[0].text == "WHERE" {
		frags = frags[1:]
	}
	if len(frags) == 0 {
		s.fail(fmt.Errorf("%w: %w", ErrNestedComposition, ErrUnterminatedComposition))
		return
	}

	s.push(openParen)
	s.push(frags...)
	s.push(closeParen)
}

// -----------------------------------------------------------------------------
// GROUP BY / ORDER BY
// -----------------------------------------------------------------------------

func (s *session) groupBy(columns []string) {
	if !s.allowOrdering("GROUP BY", columns) {
		return
	}
	list, err := wrapList(s.grammar, columns)
	if err != nil {
		s.fail(err)
		return
	}
	s.push(keyword("GROUP BY"), identifier(list))
}

func (s *session) orderBy(columns []string, dir OrderDirection) {
	if !s.allowOrdering("ORDER BY", columns) {
		return
	}
	list, err := wrapEach(s.grammar, columns, func(c string) string {
		if dir == OrderDesc {
			return c + " DESC"
		}
		return c
	})
	if err != nil {
		s.fail(err)
		return
	}
	s.push(keyword("ORDER BY"), identifier(list))
}

func (s *session) allowOrdering(clause string, columns []string) bool {
	if s.err != nil {
		return false
	}
	if len(columns) == 0 {
		s.fail(fmt.Errorf("%w: %s", ErrEmptyColumnList, clause))
		return false
	}
	if s.strict && !s.selecting {
		s.fail(fmt.Errorf("%w: %s outside SELECT", ErrInvalidClause, clause))
		return false
	}
	return true
}

// -----------------------------------------------------------------------------
// UPDATE / DELETE / INSERT
// -----------------------------------------------------------------------------

func (s *session) update(table string) {
	if t, ok := s.wrap(table); ok {
		s.kind = statementUpdate
		s.run = runSet
		s.push(keyword("UPDATE"), identifier(t), keyword("SET"))
	}
}

func (s *session) deleteFrom(table string) {
	if t, ok := s.wrap(table); ok {
		s.kind = statementDelete
		s.push(keyword("DELETE FROM"), identifier(t))
	}
}

func (s *session) deleteBare() {
	if s.err == nil {
		s.kind = statementDelete
	}
	s.push(keyword("DELETE"))
}

func (s *session) insert(table string, columns []string) {
	if s.err != nil {
		return
	}
	t, ok := s.wrap(table)
	if !ok {
		return
	}
	frags := []fragment{keyword("INSERT INTO"), identifier(t)}
	if len(columns) > 0 {
		list, err := wrapList(s.grammar, columns)
		if err != nil {
			s.fail(err)
			return
		}
		frags = append(frags, openParen, identifier(list), closeParen)
	}
	s.kind = statementInsert
	s.columns = len(columns)
	s.rows = 0
	s.push(frags...)
}

// values, bir VALUES satırı ekler. İkinci ve sonraki çağrılar satırı
// virgülle mevcut VALUES listesine bağlar.
func (s *session) values(vals []any) {
	if s.err != nil {
		return
	}
	if len(vals) == 0 {
		s.fail(fmt.Errorf("%w: VALUES requires at least one value", ErrEmptyValueList))
		return
	}
	if s.strict && s.columns > 0 && len(vals) != s.columns {
		s.fail(fmt.Errorf("%w: %d columns, %d values", ErrColumnCountMismatch, s.columns, len(vals)))
		return
	}
	if !s.checkValues(vals) {
		return
	}
	if s.rows == 0 {
		s.push(keyword("VALUES"))
	} else {
		s.push(comma)
	}
	s.push(tuple(vals)...)
	s.rows++
}

// tuple, (v1, v2, ...) fragment'larını üretir.
func tuple(vals []any) []fragment {
	frags := make([]fragment, 0, 2*len(vals)+1)
	frags = append(frags, openParen)
	for i, v := range vals {
		if i > 0 {
			frags = append(frags, comma)
		}
		frags = append(frags, valueOf(v))
	}
	return append(frags, closeParen)
}

// -----------------------------------------------------------------------------
// Render / Reset
// -----------------------------------------------------------------------------

// render, buffer'ı değiştirmeden metni ve parametreleri üretir.
func (s *session) render() (string, []any, error) {
	if s.err != nil {
		return "", nil, s.err
	}
	return renderFragments(s.frags, s.grammar, s.style)
}

// reset, buffer'ı, hatayı ve bekleyen ayırıcıyı temizler. Grammar ve
// placeholder stili korunur.
func (s *session) reset() {
	clear(s.frags)
	s.frags = s.frags[:0]
	s.err = nil
	s.kind = statementNone
	s.selecting = false
	s.run = runNone
	s.pending = ""
	s.columns = 0
	s.rows = 0
}

