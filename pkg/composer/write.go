package composer

// -----------------------------------------------------------------------------
// UPDATE / DELETE / INSERT rolleri
// -----------------------------------------------------------------------------
// UPDATE ve DELETE zincirleri WHERE yazılmadan render edilemez; koşulsuz
// toplu güncelleme/silme için unchecked Simple composer kullanılmalıdır.
//
//	composer.Update("users").Condition("name", "=", "bob", ",").
//	    Condition("age", "=", 30, "").Where("id", "=", 7)
//	// UPDATE users SET name = 'bob', age = 30 WHERE id = 7
// -----------------------------------------------------------------------------

// UpdateComposer, UPDATE tablo SET sonrası roldür; ilk atama gelmelidir.
type UpdateComposer struct {
	s *session
}

// Condition, SET listesine "kolon = değer" ataması ekler. SET listesinde
// sadece "=" operatörü ve "," (veya boş) ayırıcı kabul edilir.
func (c UpdateComposer) Condition(column, op string, value any, sep string) SetComposer {
	c.s.condition(column, op, value, sep)
	return SetComposer(c)
}

// SetComposer, en az bir atama yazılmış UPDATE roldür.
type SetComposer struct {
	s *session
}

func (c SetComposer) Condition(column, op string, value any, sep string) SetComposer {
	c.s.condition(column, op, value, sep)
	return c
}

func (c SetComposer) Where(column, op string, value any) WhereComposer {
	c.s.where(column, op, value)
	return WhereComposer{predicate{terminal{c.s}}}
}

func (c SetComposer) WhereExpr() ExprComposer {
	c.s.whereExpr()
	return ExprComposer{c.s}
}

// DeleteComposer, DELETE FROM tablo sonrası roldür.
type DeleteComposer struct {
	s *session
}

func (c DeleteComposer) Where(column, op string, value any) WhereComposer {
	c.s.where(column, op, value)
	return WhereComposer{predicate{terminal{c.s}}}
}

func (c DeleteComposer) WhereExpr() ExprComposer {
	c.s.whereExpr()
	return ExprComposer{c.s}
}

// InsertComposer, INSERT INTO tablo (kolonlar) sonrası roldür.
type InsertComposer struct {
	s *session
}

// Values, VALUES (v1, v2, ...) yazar. Kolon listesi verildiyse değer sayısı
// eşit olmalıdır.
func (c InsertComposer) Values(values ...any) ValuesComposer {
	c.s.values(values)
	return ValuesComposer{terminal{c.s}}
}

// Select, INSERT INTO ... SELECT biçimini başlatır.
func (c InsertComposer) Select(columns ...string) SelectComposer {
	c.s.selectColumns("SELECT", columns)
	return SelectComposer(c)
}

func (c InsertComposer) SelectDistinct(columns ...string) SelectComposer {
	c.s.selectColumns("SELECT DISTINCT", columns)
	return SelectComposer(c)
}

// ValuesComposer, en az bir satır yazılmış INSERT roldür.
type ValuesComposer struct {
	terminal
}

// Values, aynı INSERT'e bir satır daha ekler: VALUES (1, 'a'), (2, 'b').
func (c ValuesComposer) Values(values ...any) ValuesComposer {
	c.s.values(values)
	return c
}
