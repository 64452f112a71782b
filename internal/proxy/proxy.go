package proxy

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	xproxy "golang.org/x/net/proxy"
)

// Kind — закрытое множество вариантов транспорта.
type Kind string

const (
	// KindDirect — прямое соединение (прокси не задан или схема неизвестна).
	KindDirect Kind = "direct"

	// KindHTTPTunnel — HTTP CONNECT-туннель.
	KindHTTPTunnel Kind = "http_tunnel"

	// KindSocks — SOCKS-прокси.
	KindSocks Kind = "socks"
)

// Classify — чистая функция классификации строки прокси по схеме.
// Не валидирует адрес; пустая строка и неизвестные схемы — KindDirect.
func Classify(rawURL string) Kind {
	if rawURL == "" {
		return KindDirect
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return KindDirect
	}

	switch u.Scheme {
	case "http":
		return KindHTTPTunnel
	case "socks4", "socks5", "socks5h":
		return KindSocks
	default:
		return KindDirect
	}
}

// Transport строит http.RoundTripper для строки прокси.
//
// Возвращает nil для прямого соединения — вызывающая сторона
// подставляет default-транспорт. Никогда не возвращает ошибку:
// некорректный прокси логируется и деградирует до nil.
func Transport(rawURL string, logger *slog.Logger) http.RoundTripper {
	if logger == nil {
		logger = slog.Default()
	}

	if rawURL == "" {
		return nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		logger.Warn("invalid proxy url, using direct connection",
			"proxy", rawURL,
			"error", err,
		)
		return nil
	}

	switch Classify(rawURL) {
	case KindHTTPTunnel:
		return &http.Transport{
			Proxy:               http.ProxyURL(u),
			TLSHandshakeTimeout: 10 * time.Second,
		}

	case KindSocks:
		return socksTransport(u, logger)

	default:
		logger.Warn("unsupported proxy scheme, using direct connection",
			"proxy", rawURL,
			"scheme", u.Scheme,
		)
		return nil
	}
}

// socksTransport строит транспорт через SOCKS-диалер.
// socks4:// обслуживается тем же SOCKS5-диалером: x/net/proxy
// реализует одно семейство SOCKS, классификация схемы при этом
// остаётся Socks, а не Direct.
func socksTransport(u *url.URL, logger *slog.Logger) http.RoundTripper {
	var auth *xproxy.Auth
	if u.User != nil {
		auth = &xproxy.Auth{User: u.User.Username()}
		if pass, ok := u.User.Password(); ok {
			auth.Password = pass
		}
	}

	dialer, err := xproxy.SOCKS5("tcp", u.Host, auth, xproxy.Direct)
	if err != nil {
		logger.Warn("failed to build socks dialer, using direct connection",
			"proxy_host", u.Host,
			"error", err,
		)
		return nil
	}

	dialCtx := func(ctx context.Context, network, addr string) (net.Conn, error) {
		if cd, ok := dialer.(xproxy.ContextDialer); ok {
			return cd.DialContext(ctx, network, addr)
		}
		return dialer.Dial(network, addr)
	}

	return &http.Transport{
		DialContext:         dialCtx,
		TLSHandshakeTimeout: 10 * time.Second,
	}
}
