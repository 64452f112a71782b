package runner

import "errors"

// Ошибки runner'а.
var (
	// ErrNoAccounts — хранилище не вернуло ни одного аккаунта.
	// Фатально для цикла: обслуживать нечего.
	ErrNoAccounts = errors.New("no accounts loaded")

	// ErrBadCron — некорректное cron-выражение расписания.
	ErrBadCron = errors.New("invalid cron expression")
)
