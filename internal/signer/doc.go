// Package signer — подпись сообщений и вывод адреса аккаунта.
//
// Ключ аккаунта — ed25519, задаётся hex-строкой (32-байтовый seed или
// 64-байтовый приватный ключ, префикс 0x допустим). Адрес выводится
// детерминированно: "0x" + hex последних 20 байт Keccak-256 от
// публичного ключа — один и тот же ключ всегда даёт один адрес.
//
// Подписываемые сообщения — детерминированные строки, собираемые
// пакетом session (адрес + timestamp + действие).
package signer
