package mapping

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/iancoleman/strcase"
)

// -----------------------------------------------------------------------------
// Struct → Tablo Metadata
// -----------------------------------------------------------------------------
// Bir struct tipi bir kez analiz edilir ve sonuç tip başına cache'lenir.
// Kolon bilgisi `db` tag'inden okunur:
//
//	type User struct {
//	    ID        int64     `db:"id,ignoreinsert,ignoreupdate,checkupdate,checkdelete"`
//	    Email     string    `db:"email"`
//	    CreatedAt time.Time `db:",ignoreupdate"`   // kolon adı: created_at
//	    Password  string    `db:"-"`               // tabloda yok
//	}
//
// Seçenekler:
//   - ignoreinsert: INSERT kolon listesine girmez (auto increment id vb.)
//   - ignoreupdate: UPDATE ... SET listesine girmez
//   - checkupdate:  UPDATE'in WHERE koşulunda kullanılır
//   - checkdelete:  DELETE'in WHERE koşulunda kullanılır
//
// Tag yoksa kolon adı alan adının snake_case halidir. Tablo adı, tip
// TableName() string metodunu sağlıyorsa ondan, yoksa tip adının snake_case
// halinden gelir.
// -----------------------------------------------------------------------------

var (
	ErrNotStruct    = errors.New("mapping: value is not a struct")
	ErrInvalidTag   = errors.New("mapping: invalid db tag")
	ErrNoColumns    = errors.New("mapping: no columns to write")
	ErrNoKeyColumns = errors.New("mapping: no key columns")
	ErrTypeMismatch = errors.New("mapping: rows have different types")
)

// Namer, tablo adını kendisi belirleyen tiplerdir.
type Namer interface {
	TableName() string
}

// Field, tek bir struct alanının kolon metadata'sıdır.
type Field struct {
	Name   string
	Column string
	Index  []int

	IgnoreInsert bool
	IgnoreUpdate bool
	CheckUpdate  bool
	CheckDelete  bool
}

// Table, bir struct tipinin tablo karşılığıdır.
type Table struct {
	Name   string
	Type   reflect.Type
	Fields []Field

	byColumn map[string]int
}

// Field, kolon adına göre alanı döndürür.
func (t *Table) Field(column string) (Field, bool) {
	i, ok := t.byColumn[column]
	if !ok {
		return Field{}, false
	}
	return t.Fields[i], true
}

// Columns, tüm kolon adlarını tanım sırasıyla döndürür.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		cols[i] = f.Column
	}
	return cols
}

// Value, verilen struct değerinden alanın değerini okur.
func (f Field) Value(v reflect.Value) any {
	return v.FieldByIndex(f.Index).Interface()
}

var cache sync.Map

// Of, bir struct (veya struct pointer) değerinin tablo metadata'sını döndürür.
func Of(v any) (*Table, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil", ErrNotStruct)
	}
	return OfType(reflect.TypeOf(v))
}

// OfType, tip için cache'lenmiş metadata'yı döndürür; yoksa analiz eder.
// Pointer ve slice tipleri eleman tipine indirgenir.
func OfType(t reflect.Type) (*Table, error) {
	for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, t)
	}

	if cached, ok := cache.Load(t); ok {
		return cached.(*Table), nil
	}

	table, err := analyze(t)
	if err != nil {
		return nil, err
	}
	actual, _ := cache.LoadOrStore(t, table)
	return actual.(*Table), nil
}

func analyze(t reflect.Type) (*Table, error) {
	table := &Table{
		Name:     tableName(t),
		Type:     t,
		byColumn: make(map[string]int),
	}
	if err := collect(table, t, nil); err != nil {
		return nil, err
	}
	return table, nil
}

func tableName(t reflect.Type) string {
	if n, ok := reflect.New(t).Interface().(Namer); ok {
		return n.TableName()
	}
	return strcase.ToSnake(t.Name())
}

// collect, embedded struct'ları düzleştirerek alanları toplar.
func collect(table *Table, t reflect.Type, parent []int) error {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		index := append(append([]int(nil), parent...), i)
		tag, hasTag := sf.Tag.Lookup("db")

		if sf.Anonymous && sf.Type.Kind() == reflect.Struct && !hasTag {
			if err := collect(table, sf.Type, index); err != nil {
				return err
			}
			continue
		}
		if !sf.IsExported() || tag == "-" {
			continue
		}

		field, err := parseField(sf, tag)
		if err != nil {
			return err
		}
		field.Index = index

		if _, dup := table.byColumn[field.Column]; dup {
			return fmt.Errorf("%w: duplicate column %q in %s", ErrInvalidTag, field.Column, t)
		}
		table.byColumn[field.Column] = len(table.Fields)
		table.Fields = append(table.Fields, field)
	}
	return nil
}

func parseField(sf reflect.StructField, tag string) (Field, error) {
	parts := strings.Split(tag, ",")
	field := Field{
		Name:   sf.Name,
		Column: strings.TrimSpace(parts[0]),
	}
	if field.Column == "" {
		field.Column = strcase.ToSnake(sf.Name)
	}

	for _, opt := range parts[1:] {
		switch strings.ToLower(strings.TrimSpace(opt)) {
		case "ignoreinsert":
			field.IgnoreInsert = true
		case "ignoreupdate":
			field.IgnoreUpdate = true
		case "checkupdate":
			field.CheckUpdate = true
		case "checkdelete":
			field.CheckDelete = true
		case "":
		default:
			return Field{}, fmt.Errorf("%w: unknown option %q on %s", ErrInvalidTag, opt, sf.Name)
		}
	}
	return field, nil
}
