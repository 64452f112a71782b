package orchestrator

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/shaiso/Keeper/internal/domain"
	"github.com/shaiso/Keeper/internal/mq"
	"github.com/shaiso/Keeper/internal/telemetry"
	"github.com/shaiso/Keeper/internal/workflow"
)

// Default configuration values.
const defaultBatchSize = 10

// SessionFactory создаёт Session для аккаунта.
// Ошибка фабрики (например, некорректный ключ) засчитывается
// аккаунту как Failed, не прерывая группу.
type SessionFactory func(acc *domain.Account) (workflow.Session, error)

// Orchestrator прогоняет workflows аккаунтов группами.
type Orchestrator struct {
	newSession SessionFactory
	publisher  *mq.Publisher
	batchSize  int
	logger     *slog.Logger
}

// Config — конфигурация Orchestrator.
type Config struct {
	// NewSession — фабрика сессий (обязательно).
	NewSession SessionFactory

	// Publisher — опциональный publisher событий (nil — без событий).
	Publisher *mq.Publisher

	// BatchSize — размер группы (default: 10).
	BatchSize int

	// Logger.
	Logger *slog.Logger
}

// New создаёт Orchestrator.
func New(cfg Config) *Orchestrator {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Orchestrator{
		newSession: cfg.NewSession,
		publisher:  cfg.Publisher,
		batchSize:  batchSize,
		logger:     logger,
	}
}

// RunAll прогоняет все аккаунты группами по batchSize.
//
// Группы последовательны, аккаунты внутри группы параллельны.
// Возвращает агрегированный Tally; после возврата каждый аккаунт
// учтён ровно один раз.
func (o *Orchestrator) RunAll(ctx context.Context, cycleID uuid.UUID, accounts []domain.Account) domain.Tally {
	log := telemetry.WithCycleID(o.logger, cycleID.String())

	var tally domain.Tally
	groups := 0

	for start := 0; start < len(accounts); start += o.batchSize {
		end := min(start+o.batchSize, len(accounts))
		group := accounts[start:end]
		groups++

		log.Info("starting group",
			"group", groups,
			"size", len(group),
		)

		// Fan-out: по горутине на аккаунт, результаты — в канал.
		results := make(chan workflow.Result, len(group))
		var wg sync.WaitGroup

		for i := range group {
			acc := &group[i]
			wg.Add(1)
			go func() {
				defer wg.Done()
				results <- o.runAccount(ctx, acc, log)
			}()
		}

		// Полный join группы: ждём всех, независимо от исходов.
		wg.Wait()
		close(results)

		// Редьюсер: сворачиваем результаты группы в Tally.
		for res := range results {
			tally.Add(res.Outcome)
			telemetry.AccountsSettled.WithLabelValues(string(res.Outcome)).Inc()
			o.publishSettled(ctx, cycleID, res)
		}

		log.Info("group completed",
			"group", groups,
			"succeeded", tally.Succeeded,
			"failed", tally.Failed,
		)
	}

	return tally
}

// runAccount выполняет workflow одного аккаунта с изоляцией сбоев.
func (o *Orchestrator) runAccount(ctx context.Context, acc *domain.Account, logger *slog.Logger) (res workflow.Result) {
	// Паника здесь (фабрика сессии и т.п.) не должна уронить группу.
	defer func() {
		if r := recover(); r != nil {
			logger.Error("account run panic",
				"address", acc.Short(),
				"panic", r,
			)
			res = workflow.Result{
				Address:    acc.Address,
				Outcome:    domain.OutcomeFailed,
				FinalState: workflow.StateFailed,
			}
		}
	}()

	sess, err := o.newSession(acc)
	if err != nil {
		logger.Error("failed to create session",
			"address", acc.Short(),
			"error", err,
		)
		return workflow.Result{
			Address:    acc.Address,
			Outcome:    domain.OutcomeFailed,
			FinalState: workflow.StateFailed,
		}
	}

	return workflow.Run(ctx, sess, acc, logger)
}

// publishSettled публикует событие о завершившемся аккаунте.
func (o *Orchestrator) publishSettled(ctx context.Context, cycleID uuid.UUID, res workflow.Result) {
	if o.publisher == nil {
		return
	}

	payload := mq.AccountSettledPayload{
		CycleID:    cycleID,
		Address:    res.Address,
		Outcome:    string(res.Outcome),
		FinalState: string(res.FinalState),
		Points:     res.Points,
	}

	if err := o.publisher.PublishAccountSettled(ctx, payload); err != nil {
		// Не фатально: результат уже учтён в Tally.
		o.logger.Warn("failed to publish account.settled",
			"address", res.Address,
			"error", err,
		)
	}
}
