// Package telemetry — structured logging и метрики Keeper.
//
// Логирование построено на log/slog. SetupLogger() читает LOG_LEVEL
// и LOG_FORMAT из окружения и устанавливает глобальный логгер.
// With*-хелперы добавляют стандартные атрибуты (cycle_id, address, step).
//
// Метрики — Prometheus-счётчики, регистрируются через promauto при
// импорте пакета и отдаются бинарником runner на /metrics.
package telemetry
