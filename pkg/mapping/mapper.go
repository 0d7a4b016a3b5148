package mapping

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/biyonik/sql-composer/pkg/composer"
)

// -----------------------------------------------------------------------------
// Mapper - Struct tabanlı ifade üretimi
// -----------------------------------------------------------------------------
// Mapper, tablo metadata'sını kontrollü composer zincirine çevirir:
//
//	m := mapping.New(mapping.WithTablePrefix("app_"))
//	q, _ := m.Insert(User{Email: "a@b.c"})
//	// INSERT INTO app_user (email, created_at) VALUES ('a@b.c', '...')
//
// Üretilen ifadeler composer.Renderer olarak döner; doğrudan
// database.Client'a verilebilir.
// -----------------------------------------------------------------------------

type Mapper struct {
	prefix string
	opts   []composer.Option
}

type Option func(*Mapper)

// WithTablePrefix, tüm tablo adlarının başına eklenecek öneki belirler.
func WithTablePrefix(prefix string) Option {
	return func(m *Mapper) {
		m.prefix = prefix
	}
}

// WithComposerOptions, üretilen composer'lara grammar/placeholder seçeneklerini geçirir.
func WithComposerOptions(opts ...composer.Option) Option {
	return func(m *Mapper) {
		m.opts = append(m.opts, opts...)
	}
}

func New(opts ...Option) *Mapper {
	m := &Mapper{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TableName, önek eklenmiş tablo adını döndürür.
func (m *Mapper) TableName(t *Table) string {
	return m.prefix + t.Name
}

// Insert, aynı tipteki satırlar için tek bir çok satırlı INSERT üretir.
// ignoreinsert alanları kolon listesine girmez.
func (m *Mapper) Insert(rows ...any) (composer.Renderer, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrNoColumns)
	}

	table, first, err := resolve(rows[0])
	if err != nil {
		return nil, err
	}

	var fields []Field
	for _, f := range table.Fields {
		if !f.IgnoreInsert {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: every field of %s ignores insert", ErrNoColumns, table.Type)
	}

	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Column
	}

	insert := composer.New(m.opts...).Insert(m.TableName(table), columns...)
	values := insert.Values(fieldValues(fields, first)...)

	for _, row := range rows[1:] {
		t, v, err := resolve(row)
		if err != nil {
			return nil, err
		}
		if t != table {
			return nil, fmt.Errorf("%w: %s and %s", ErrTypeMismatch, table.Type, t.Type)
		}
		values = values.Values(fieldValues(fields, v)...)
	}

	return values, values.Err()
}

// Update, update satırının ignoreupdate olmayan alanlarını SET listesine,
// find satırının checkupdate alanlarını WHERE koşuluna yazar. ignore ile
// verilen kolonlar SET listesinden ayrıca çıkarılır.
func (m *Mapper) Update(find, update any, ignore ...string) (composer.Renderer, error) {
	table, fv, err := resolve(find)
	if err != nil {
		return nil, err
	}
	ut, uv, err := resolve(update)
	if err != nil {
		return nil, err
	}
	if ut != table {
		return nil, fmt.Errorf("%w: %s and %s", ErrTypeMismatch, table.Type, ut.Type)
	}

	var (
		set  []Field
		keys []Field
	)
	for _, f := range table.Fields {
		if !f.IgnoreUpdate && !slices.Contains(ignore, f.Column) {
			set = append(set, f)
		}
		if f.CheckUpdate {
			keys = append(keys, f)
		}
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: nothing to set on %s", ErrNoColumns, table.Type)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: %s has no checkupdate field", ErrNoKeyColumns, table.Type)
	}

	assign := composer.New(m.opts...).Update(m.TableName(table)).
		Condition(set[0].Column, "=", set[0].Value(uv), ",")
	for _, f := range set[1:] {
		assign = assign.Condition(f.Column, "=", f.Value(uv), ",")
	}

	where := matchKeys(keys, fv, assign.Where)
	return where, where.Err()
}

// Delete, checkdelete alanlarının eşitliğiyle satırı silen bir DELETE üretir.
func (m *Mapper) Delete(row any) (composer.Renderer, error) {
	table, v, err := resolve(row)
	if err != nil {
		return nil, err
	}

	var keys []Field
	for _, f := range table.Fields {
		if f.CheckDelete {
			keys = append(keys, f)
		}
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: %s has no checkdelete field", ErrNoKeyColumns, table.Type)
	}

	where := matchKeys(keys, v, composer.New(m.opts...).Delete(m.TableName(table)).Where)
	return where, where.Err()
}

// Select, modelin tüm kolonlarını seçen bir FROM rolü döndürür; çağıran
// Where/OrderBy ile devam eder.
func (m *Mapper) Select(model any) (composer.FromComposer, error) {
	table, err := Of(model)
	if err != nil {
		return composer.FromComposer{}, err
	}
	from := composer.New(m.opts...).Select(table.Columns()...).From(m.TableName(table))
	return from, from.Err()
}

// matchKeys, anahtar alanlarını AND ile bağlar. nil değerler IS NULL olur.
func matchKeys(keys []Field, v reflect.Value, where func(string, string, any) composer.WhereComposer) composer.Predicate {
	column, op, value := keyCondition(keys[0], v)
	var p composer.Predicate = where(column, op, value)
	for _, f := range keys[1:] {
		p = p.And(keyCondition(f, v))
	}
	return p
}

func keyCondition(f Field, v reflect.Value) (string, string, any) {
	value := f.Value(v)
	if isNil(value) {
		return f.Column, "IS", nil
	}
	return f.Column, "=", value
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func fieldValues(fields []Field, v reflect.Value) []any {
	values := make([]any, len(fields))
	for i, f := range fields {
		values[i] = f.Value(v)
	}
	return values
}

// resolve, satırın metadata'sını ve dereference edilmiş struct değerini döndürür.
func resolve(row any) (*Table, reflect.Value, error) {
	table, err := Of(row)
	if err != nil {
		return nil, reflect.Value{}, err
	}
	v := reflect.ValueOf(row)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, reflect.Value{}, fmt.Errorf("%w: nil %s", ErrNotStruct, v.Type())
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, reflect.Value{}, fmt.Errorf("%w: %s", ErrNotStruct, v.Type())
	}
	return table, v, nil
}
