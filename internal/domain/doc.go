// Package domain содержит основные типы данных Keeper.
//
// # Обзор
//
// Keeper обслуживает множество независимых аккаунтов на одном удалённом
// gateway-сервисе. Каждый аккаунт проходит фиксированный workflow:
// проверка регистрации → регистрация (при необходимости) → ежедневный
// claim → перезапуск node → запрос баланса поинтов.
//
// # Ключевые типы
//
//   - Account — запись аккаунта: приватный ключ, прокси, реферальный код,
//     накопленные поинты. Единственная персистентная сущность системы.
//   - StepStatus — трёхзначный результат шага workflow:
//     OK / Rejected (бизнес-отказ) / Unavailable (транспортный сбой).
//   - RegistrationStatus — отдельный трёхзначный результат проверки
//     регистрации (Registered / NotRegistered / Unknown).
//   - Outcome — терминальный исход workflow одного аккаунта.
//   - Tally — агрегированные счётчики одного цикла.
//
// Тип результата каждого шага явный: workflow принимает решения по
// StepStatus, а не по "ложным" значениям.
package domain
