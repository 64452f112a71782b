package gateway

import "errors"

// Ошибки клиента.
var (
	// ErrAttemptsExhausted — бюджет попыток исчерпан, ответа нет.
	ErrAttemptsExhausted = errors.New("request attempts exhausted")

	// ErrBadRequest — запрос не удалось собрать (ошибка вызывающей стороны).
	ErrBadRequest = errors.New("malformed request")
)
