package database

import (
	"database/sql"
	"fmt"
	"reflect"

	"github.com/biyonik/sql-composer/pkg/mapping"
)

// -----------------------------------------------------------------------------
// Reflection-Based SQL Scanner
// -----------------------------------------------------------------------------
// Kolon → alan eşlemesi mapping paketinden gelir; böylece INSERT/UPDATE
// üreten Mapper ile okuma tarafı aynı `db` tag kurallarını kullanır ve
// metadata tip başına bir kez hesaplanır. Struct'ta karşılığı olmayan
// kolonlar sql.RawBytes'a okunup atılır.
// -----------------------------------------------------------------------------

// ScanStruct, *sql.Rows'un bulunduğu satırı dest struct'ına tarar.
// rows.Next() çağıranın sorumluluğundadır.
func ScanStruct(rows *sql.Rows, dest any) error {
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Pointer || destValue.IsNil() || destValue.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("scanner: dest bir struct pointer olmalıdır, %T alındı", dest)
	}

	cols, err := rows.Columns()
	if err != nil {
		return err
	}

	targets, err := scanTargets(destValue.Elem(), cols)
	if err != nil {
		return err
	}
	return rows.Scan(targets...)
}

// ScanSlice, tüm sonuç kümesini dest'e (*[]T veya *[]*T) ekler.
func ScanSlice(rows *sql.Rows, dest any) error {
	sliceValue := reflect.ValueOf(dest)
	if sliceValue.Kind() != reflect.Pointer || sliceValue.IsNil() || sliceValue.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("scanner: dest bir slice pointer olmalıdır, %T alındı", dest)
	}

	sliceElem := sliceValue.Elem()
	elemType := sliceElem.Type().Elem()
	isPtr := elemType.Kind() == reflect.Pointer
	structType := elemType
	if isPtr {
		structType = elemType.Elem()
	}
	if structType.Kind() != reflect.Struct {
		return fmt.Errorf("scanner: slice elemanı struct olmalıdır, %s alındı", elemType)
	}

	cols, err := rows.Columns()
	if err != nil {
		return err
	}

	for rows.Next() {
		item := reflect.New(structType)
		targets, err := scanTargets(item.Elem(), cols)
		if err != nil {
			return err
		}
		if err := rows.Scan(targets...); err != nil {
			return err
		}

		if isPtr {
			sliceElem.Set(reflect.Append(sliceElem, item))
		} else {
			sliceElem.Set(reflect.Append(sliceElem, item.Elem()))
		}
	}

	return rows.Err()
}

func scanTargets(dest reflect.Value, cols []string) ([]any, error) {
	table, err := mapping.OfType(dest.Type())
	if err != nil {
		return nil, err
	}

	targets := make([]any, len(cols))
	for i, col := range cols {
		f, ok := table.Field(col)
		if !ok {
			targets[i] = new(sql.RawBytes)
			continue
		}
		field := dest.FieldByIndex(f.Index)
		if !field.CanSet() {
			return nil, fmt.Errorf("scanner: '%s' alanı ayarlanamıyor", f.Name)
		}
		targets[i] = field.Addr().Interface()
	}
	return targets, nil
}
