// Package proxy выбирает исходящий транспорт по строке прокси аккаунта.
//
// Поддерживаются два семейства схем: http:// (CONNECT-туннель) и
// socks4:// / socks5:// (SOCKS-диалер через golang.org/x/net/proxy).
// Пустая строка — прямое соединение. Неизвестная схема — деградация
// до прямого соединения с WARN-логом, не ошибка: один некорректный
// прокси не должен ронять цикл.
package proxy
