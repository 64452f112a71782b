package workflow

// State — состояние workflow одного аккаунта.
//
// Жизненный цикл:
//
//	START → CHECKING_REGISTRATION → {VERIFYING_INVITE → REGISTERING | —}
//	      → CHECKED_IN → CHECKING_NODE → RECONNECTING → QUERYING_POINTS
//	      → DONE
//	(из VERIFYING_INVITE/REGISTERING) → ABORTED
//	(из любого состояния при панике)  → FAILED
type State string

const (
	// StateStart — workflow создан, шаги ещё не выполнялись.
	StateStart State = "START"

	// StateCheckingRegistration — проверка регистрации кошелька.
	StateCheckingRegistration State = "CHECKING_REGISTRATION"

	// StateVerifyingInvite — валидация реферального кода перед регистрацией.
	StateVerifyingInvite State = "VERIFYING_INVITE"

	// StateRegistering — регистрация кошелька.
	StateRegistering State = "REGISTERING"

	// StateCheckedIn — ежедневный claim поинтов.
	StateCheckedIn State = "CHECKED_IN"

	// StateCheckingNode — проверка статуса node (и stop при необходимости).
	StateCheckingNode State = "CHECKING_NODE"

	// StateReconnecting — запуск node.
	StateReconnecting State = "RECONNECTING"

	// StateQueryingPoints — запрос баланса поинтов.
	StateQueryingPoints State = "QUERYING_POINTS"

	// StateDone — workflow дошёл до конца.
	StateDone State = "DONE"

	// StateAborted — прерван бизнес-отказом (invite/регистрация).
	StateAborted State = "ABORTED"

	// StateFailed — прерван необработанной ошибкой.
	StateFailed State = "FAILED"
)

// IsTerminal возвращает true для финальных состояний.
func (s State) IsTerminal() bool {
	switch s {
	case StateDone, StateAborted, StateFailed:
		return true
	default:
		return false
	}
}
