// Package session — операции одного аккаунта против gateway-сервиса.
//
// Session связывает ключ подписи аккаунта, его прокси-транспорт и
// устойчивый HTTP-клиент. На каждую remote-операцию — один метод:
//
//   - IsRegistered — проверка регистрации кошелька
//   - VerifyReferralCode — валидация реферального кода
//   - Register — регистрация кошелька
//   - ClaimDaily — ежедневный подписанный claim поинтов
//   - NodeStatus — статус node (запущен ⇔ startTime не null)
//   - StartNode / StopNode — подписанные действия над node
//   - FetchPoints — запрос баланса поинтов
//
// Ни один метод не паникует и не возвращает error наружу: внутренние
// сбои логируются и конвертируются в трёхзначный StepStatus
// (OK / Rejected / Unavailable). Решения по ветвлению принимает
// пакет workflow.
//
// Session эфемерна: создаётся на аккаунт в начале цикла и не
// переживает цикл.
package session
