// Package orchestrator — батчевый прогон workflows всех аккаунтов.
//
// # Модель
//
// Список аккаунтов режется на последовательные группы фиксированного
// размера (последняя может быть меньше). Аккаунты внутри группы
// выполняются параллельно; следующая группа стартует только после
// полного join предыдущей — независимо от исходов отдельных аккаунтов.
//
// # Изоляция
//
// Сбой одного аккаунта (включая панику) никогда не отменяет и не
// блокирует соседей по группе. Паника перехватывается на границе
// горутины аккаунта и конвертируется в Failed-результат.
//
// # Агрегация
//
// Результаты стекаются в канал и сворачиваются редьюсером после join
// группы — глобальных мутируемых счётчиков нет. Инвариант:
// Succeeded + Failed == количеству аккаунтов после завершения RunAll.
package orchestrator
