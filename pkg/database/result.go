package database

import (
	"database/sql"
)

// rowsToMaps, sonuç kümesini kolon adı → değer map'lerine çevirir.
// Sürücülerin []byte olarak döndürdüğü metin kolonları string'e çevrilir.
func rowsToMaps(rows *sql.Rows) ([]map[string]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	res := make([]map[string]any, 0)
	for rows.Next() {
		values := make([]any, len(cols))
		pointers := make([]any, len(cols))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		m := make(map[string]any, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				m[col] = string(b)
				continue
			}
			m[col] = values[i]
		}
		res = append(res, m)
	}

	return res, rows.Err()
}
