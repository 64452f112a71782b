package domain

// StepStatus — результат одного шага workflow.
//
// Трёхзначный по построению: workflow различает бизнес-отказ
// (remote явно отверг операцию) и транспортный сбой (запрос
// не удалось довести до ответа после всех retry).
type StepStatus string

const (
	// StepOK — шаг выполнен успешно.
	StepOK StepStatus = "OK"

	// StepRejected — remote явно отверг операцию (бизнес-отказ).
	// Не подлежит retry.
	StepRejected StepStatus = "REJECTED"

	// StepUnavailable — операция не была доведена до ответа
	// (сеть, таймаут, исчерпаны попытки).
	StepUnavailable StepStatus = "UNAVAILABLE"
)

// OK возвращает true, если шаг завершился успехом.
func (s StepStatus) OK() bool {
	return s == StepOK
}

// RegistrationStatus — результат проверки регистрации аккаунта.
//
// Отдельный от StepStatus тип: "не зарегистрирован" — не отказ
// и не сбой, а штатная ветка workflow.
type RegistrationStatus string

const (
	// Registered — аккаунт найден на gateway.
	Registered RegistrationStatus = "REGISTERED"

	// NotRegistered — gateway явно ответил "не найден".
	NotRegistered RegistrationStatus = "NOT_REGISTERED"

	// RegistrationUnknown — ответ не удалось получить или распознать.
	RegistrationUnknown RegistrationStatus = "UNKNOWN"
)

// Outcome — терминальный исход workflow одного аккаунта.
type Outcome string

const (
	// OutcomeSucceeded — workflow дошёл до конца.
	// Не гарантирует успех каждого под-шага: несущественные сбои
	// поглощаются, см. пакет workflow.
	OutcomeSucceeded Outcome = "SUCCEEDED"

	// OutcomeFailed — workflow прерван (реферальный код / регистрация
	// отклонены) либо упал с необработанной ошибкой.
	OutcomeFailed Outcome = "FAILED"
)

// Tally — счётчики одного цикла.
//
// Инвариант: Succeeded + Failed == количеству аккаунтов после того,
// как все workflows цикла завершились.
type Tally struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Total возвращает общее количество завершённых workflows.
func (t Tally) Total() int {
	return t.Succeeded + t.Failed
}

// Add учитывает один завершившийся workflow.
func (t *Tally) Add(outcome Outcome) {
	if outcome == OutcomeSucceeded {
		t.Succeeded++
	} else {
		t.Failed++
	}
}
