// Package runner — цикл обслуживания аккаунтов.
//
// Один цикл: загрузка аккаунтов из хранилища → батчевый прогон
// workflows → атомарная перезапись хранилища (с обновлёнными
// поинтами) → событие cycle.completed → итоговый Tally в лог.
//
// Run повторяет циклы бесконечно: по фиксированному интервалу
// (default 2 часа) либо по cron-выражению. Фатальные ошибки
// (пустой список аккаунтов, сбой перезаписи хранилища) прерывают
// Run — процесс завершается с ненулевым кодом в main.
package runner
