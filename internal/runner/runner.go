package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/shaiso/Keeper/internal/domain"
	"github.com/shaiso/Keeper/internal/mq"
	"github.com/shaiso/Keeper/internal/store"
	"github.com/shaiso/Keeper/internal/telemetry"
)

// defaultInterval — пауза между циклами по умолчанию.
const defaultInterval = 2 * time.Hour

// cronParser — парсер cron-выражений расписания циклов.
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Batcher прогоняет все аккаунты и возвращает агрегированный Tally.
// Реализуется пакетом orchestrator.
type Batcher interface {
	RunAll(ctx context.Context, cycleID uuid.UUID, accounts []domain.Account) domain.Tally
}

// Runner управляет циклами обслуживания аккаунтов.
type Runner struct {
	store     store.Store
	batcher   Batcher
	publisher *mq.Publisher
	interval  time.Duration
	schedule  cron.Schedule
	logger    *slog.Logger
}

// Config — конфигурация Runner.
type Config struct {
	// Store — хранилище аккаунтов (обязательно).
	Store store.Store

	// Batcher — оркестратор workflows (обязательно).
	Batcher Batcher

	// Publisher — опциональный publisher событий.
	Publisher *mq.Publisher

	// Interval — пауза между циклами (default: 2h).
	// Игнорируется, если задан CronExpr.
	Interval time.Duration

	// CronExpr — опциональное cron-выражение расписания циклов.
	CronExpr string

	// Logger.
	Logger *slog.Logger
}

// New создаёт Runner. Ошибка — только при некорректном CronExpr.
func New(cfg Config) (*Runner, error) {
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var schedule cron.Schedule
	if cfg.CronExpr != "" {
		var err error
		schedule, err = cronParser.Parse(cfg.CronExpr)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrBadCron, cfg.CronExpr, err)
		}
	}

	return &Runner{
		store:     cfg.Store,
		batcher:   cfg.Batcher,
		publisher: cfg.Publisher,
		interval:  interval,
		schedule:  schedule,
		logger:    logger,
	}, nil
}

// Run выполняет циклы до отмены контекста.
// Возвращает первую фатальную ошибку цикла либо ctx.Err().
func (r *Runner) Run(ctx context.Context) error {
	for {
		if _, err := r.Cycle(ctx); err != nil {
			return err
		}

		delay := r.nextDelay(time.Now())
		r.logger.Info("sleeping until next cycle", "delay", delay)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Cycle выполняет один полный проход по всем аккаунтам.
//
// Ошибки Cycle фатальны: пустой список аккаунтов и сбой записи
// хранилища означают, что продолжать циклы бессмысленно.
func (r *Runner) Cycle(ctx context.Context) (domain.Tally, error) {
	cycleID := uuid.New()
	log := telemetry.WithCycleID(r.logger, cycleID.String())
	started := time.Now()

	// 1. Загружаем аккаунты.
	accounts, err := r.store.Load(ctx)
	if err != nil {
		return domain.Tally{}, fmt.Errorf("load accounts: %w", err)
	}
	if len(accounts) == 0 {
		return domain.Tally{}, ErrNoAccounts
	}

	log.Info("cycle started", "accounts", len(accounts))

	// 2. Прогоняем workflows. Batcher мутирует поинты в accounts.
	tally := r.batcher.RunAll(ctx, cycleID, accounts)

	// 3. Атомарно перезаписываем хранилище.
	if err := r.store.Save(ctx, accounts); err != nil {
		return tally, fmt.Errorf("save accounts: %w", err)
	}

	duration := time.Since(started)

	// 4. Событие и метрики.
	r.publishCompleted(ctx, cycleID, len(accounts), tally, duration)
	telemetry.CyclesTotal.Inc()
	telemetry.CycleDuration.Observe(duration.Seconds())

	log.Info("cycle completed",
		"total", len(accounts),
		"succeeded", tally.Succeeded,
		"failed", tally.Failed,
		"duration", duration,
	)

	return tally, nil
}

// publishCompleted публикует событие cycle.completed (nil-safe).
func (r *Runner) publishCompleted(ctx context.Context, cycleID uuid.UUID, total int, tally domain.Tally, duration time.Duration) {
	if r.publisher == nil {
		return
	}

	payload := mq.CycleCompletedPayload{
		CycleID:    cycleID,
		Total:      total,
		Succeeded:  tally.Succeeded,
		Failed:     tally.Failed,
		DurationMs: duration.Milliseconds(),
	}

	if err := r.publisher.PublishCycleCompleted(ctx, payload); err != nil {
		// Не фатально: цикл завершён и сохранён.
		r.logger.Warn("failed to publish cycle.completed", "error", err)
	}
}

// nextDelay возвращает паузу до следующего цикла:
// по cron-расписанию, если задано, иначе фиксированный интервал.
func (r *Runner) nextDelay(from time.Time) time.Duration {
	if r.schedule != nil {
		return r.schedule.Next(from).Sub(from)
	}
	return r.interval
}
