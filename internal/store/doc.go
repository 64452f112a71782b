// Package store — табличное хранилище аккаунтов.
//
// Две реализации одного интерфейса:
//
//   - PgStore — таблица accounts в Postgres (pgx), выбирается при
//     наличии DB_URL;
//   - CSVStore — локальный CSV-файл, формат совместим с import/export
//     команды keeper-cli.
//
// Контракт одинаковый: Load читает весь список в начале цикла,
// Save атомарно перезаписывает его в конце (транзакция в Postgres,
// временный файл + rename для CSV).
package store
