// Package cli — команды keeper-cli.
//
// В отличие от runner-демона, CLI работает с хранилищем аккаунтов
// напрямую (Postgres при заданном DB_URL, иначе CSV-файл):
//
//	accounts list            — список аккаунтов
//	accounts import FILE     — импорт аккаунтов из CSV
//	accounts export FILE     — экспорт аккаунтов в CSV
//	cycle                    — один проход по всем аккаунтам
//
// Вывод — таблица (tabwriter) или JSON при --json.
package cli
