// Package workflow — машина состояний одного аккаунта.
//
// # Последовательность
//
//	Start → CheckingRegistration → {VerifyingInvite → Registering | —}
//	      → CheckedIn → CheckingNode → Reconnecting → QueryingPoints
//	      → Done | Aborted | Failed
//
// Шаги строго упорядочены, внутри одного аккаунта конкуренции нет.
//
// # Семантика сбоев
//
// Жёстко прерывают workflow (Aborted) только отказ реферального кода
// и отказ регистрации. Все остальные сбои шагов поглощаются с логом,
// и workflow идёт до конца — поэтому исход Done сам по себе не
// гарантирует успех каждого под-шага; различает их только итоговый
// Tally цикла.
//
// Отдельно: результат Unknown проверки регистрации трактуется как
// "продолжать к check-in" — оптимистичное продолжение: цена ошибки
// один отклонённый claim, а не потерянный аккаунт.
//
// Паника любого шага перехватывается на границе workflow и даёт
// терминальный Failed, не затрагивая соседние аккаунты.
package workflow
