package domain

import "strings"

// Account — запись одного обслуживаемого аккаунта.
//
// Загружается из внешнего табличного хранилища (Postgres или CSV)
// в начале цикла и перезаписывается целиком в конце цикла.
// Единственное поле, которое мутирует workflow — Points.
type Account struct {
	// Address — идентичность аккаунта. Детерминированно выводится
	// из PrivateKey и стабильна между запусками. Может отсутствовать
	// в исходных данных — тогда выводится при загрузке.
	Address string `json:"address"`

	// PrivateKey — hex-строка ключа подписи (с префиксом 0x или без).
	// Никогда не логируется.
	PrivateKey string `json:"-"`

	// ProxyURL — опциональный исходящий прокси (http://, socks4://, socks5://).
	// Пустая строка — прямое соединение.
	ProxyURL string `json:"proxy_url,omitempty"`

	// RefCode — опциональный реферальный код для регистрации.
	RefCode string `json:"ref_code,omitempty"`

	// Points — последний известный баланс поинтов. Default 0.
	Points int64 `json:"points"`
}

// Normalize приводит поля к каноническому виду: обрезает пробелы,
// адрес — в нижний регистр.
func (a *Account) Normalize() {
	a.Address = strings.ToLower(strings.TrimSpace(a.Address))
	a.PrivateKey = strings.TrimSpace(a.PrivateKey)
	a.ProxyURL = strings.TrimSpace(a.ProxyURL)
	a.RefCode = strings.TrimSpace(a.RefCode)
}

// HasProxy возвращает true, если для аккаунта задан прокси.
func (a *Account) HasProxy() bool {
	return a.ProxyURL != ""
}

// Short возвращает укороченный адрес для логов: 0x1234…abcd.
func (a *Account) Short() string {
	if len(a.Address) <= 12 {
		return a.Address
	}
	return a.Address[:6] + "…" + a.Address[len(a.Address)-4:]
}
