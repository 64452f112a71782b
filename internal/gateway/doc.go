// Package gateway — устойчивый HTTP-клиент для запросов к gateway-сервису.
//
// # Классификация сбоев
//
// Клиент различает два класса сбоев с разным backoff:
//
//   - Server fault (status >= 500): повтор с экспоненциальной задержкой
//     BaseBackoff × 1.5^k, где k — номер server-fault попытки (с нуля).
//   - Transient (сетевая ошибка, таймаут): повтор с фиксированной
//     задержкой RetryWait.
//
// Ответы со статусом < 500 (включая 4xx) — транспортный успех:
// возвращаются вызывающей стороне для бизнес-интерпретации.
//
// После исчерпания бюджета попыток клиент возвращает (nil, error) —
// ответ никогда не синтезируется. Последняя неудачная попытка не
// сопровождается задержкой.
//
// Policy (бюджет попыток, таймаут, задержки) фиксируется на клиенте
// при создании и не меняется от вызова к вызову.
package gateway
