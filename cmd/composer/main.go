// Package main, composer kütüphanesinin komut satırı arayüzüdür.
//
// Komutlar:
//   - select: SELECT ifadesi üretir
//   - insert: INSERT ifadesi üretir
//   - update: UPDATE ifadesi üretir
//   - delete: DELETE ifadesi üretir
//   - config show: geçerli konfigürasyonu YAML olarak yazar
//
// Varsayılan olarak ifade yalnızca yazdırılır. --exec verildiğinde
// database ayarlarıyla bağlanılıp ifade çalıştırılır.
//
// Kullanım:
//
//	composer select users --columns id,email --where "status = active" --order-by id
//	composer update users --set "email=a@b.c" --where "id = 7" --dialect mysql
package main

func main() {
	Execute()
}
