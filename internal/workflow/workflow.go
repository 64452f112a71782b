package workflow

import (
	"context"
	"log/slog"

	"github.com/shaiso/Keeper/internal/domain"
	"github.com/shaiso/Keeper/internal/telemetry"
)

// Session — операции одного аккаунта, нужные workflow.
// Реализуется пакетом session; в тестах подменяется фейком.
type Session interface {
	IsRegistered(ctx context.Context) domain.RegistrationStatus
	VerifyReferralCode(ctx context.Context) domain.StepStatus
	Register(ctx context.Context) domain.StepStatus
	ClaimDaily(ctx context.Context) domain.StepStatus
	NodeStatus(ctx context.Context) (running bool, st domain.StepStatus)
	StartNode(ctx context.Context) domain.StepStatus
	StopNode(ctx context.Context) domain.StepStatus
	FetchPoints(ctx context.Context) (points int64, st domain.StepStatus)
}

// Result — терминальный результат workflow одного аккаунта.
type Result struct {
	// Address — адрес аккаунта.
	Address string

	// Outcome — итоговая классификация (Succeeded/Failed).
	Outcome domain.Outcome

	// Points — последний известный баланс; nil, если запрос
	// баланса не завершился.
	Points *int64

	// FinalState — состояние, в котором workflow остановился.
	FinalState State
}

// Run прогоняет аккаунт через все шаги workflow.
//
// Мутирует только acc.Points (при успешном запросе баланса).
// Никогда не паникует: любая необработанная ошибка шага даёт
// терминальный Failed.
func Run(ctx context.Context, sess Session, acc *domain.Account, logger *slog.Logger) (res Result) {
	if logger == nil {
		logger = slog.Default()
	}
	log := telemetry.WithAccount(logger, acc.Short())

	res = Result{Address: acc.Address, FinalState: StateStart}

	defer func() {
		if r := recover(); r != nil {
			log.Error("workflow panic",
				"state", res.FinalState,
				"panic", r,
			)
			res.Outcome = domain.OutcomeFailed
			res.FinalState = StateFailed
		}
	}()

	// 1. Проверка регистрации.
	res.FinalState = StateCheckingRegistration
	switch sess.IsRegistered(ctx) {
	case domain.Registered:
		// Уже зарегистрирован — сразу к check-in, без invite/регистрации.

	case domain.NotRegistered:
		// 2. Валидация кода и регистрация. Единственные шаги,
		// отказ которых прерывает workflow.
		res.FinalState = StateVerifyingInvite
		if !sess.VerifyReferralCode(ctx).OK() {
			log.Warn("referral code invalid, aborting")
			res.Outcome = domain.OutcomeFailed
			res.FinalState = StateAborted
			return res
		}

		res.FinalState = StateRegistering
		if !sess.Register(ctx).OK() {
			log.Warn("registration failed, aborting")
			res.Outcome = domain.OutcomeFailed
			res.FinalState = StateAborted
			return res
		}

	case domain.RegistrationUnknown:
		// Статус неизвестен — оптимистично продолжаем к check-in.
		log.Error("registration check inconclusive, continuing")
	}

	// 3. Ежедневный claim: результат не ветвит поток.
	res.FinalState = StateCheckedIn
	if !sess.ClaimDaily(ctx).OK() {
		log.Warn("daily claim not accepted")
	}

	// 4. Если node запущен — останавливаем (claim накопленного).
	res.FinalState = StateCheckingNode
	running, st := sess.NodeStatus(ctx)
	if st.OK() && running {
		if !sess.StopNode(ctx).OK() {
			log.Warn("node stop not accepted")
		}
	}

	// 5. Запуск node — всегда, независимо от предыдущего шага.
	res.FinalState = StateReconnecting
	if !sess.StartNode(ctx).OK() {
		log.Warn("node start not accepted")
	}

	// 6. Баланс поинтов. Сбой запроса оставляет Points == nil.
	res.FinalState = StateQueryingPoints
	if points, st := sess.FetchPoints(ctx); st.OK() {
		acc.Points = points
		res.Points = &points
		log.Info("points updated", "points", points)
	} else {
		log.Warn("points query did not complete")
	}

	res.Outcome = domain.OutcomeSucceeded
	res.FinalState = StateDone
	return res
}
