package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/shaiso/Keeper/internal/domain"
	"github.com/shaiso/Keeper/internal/gateway"
	"github.com/shaiso/Keeper/internal/signer"
	"github.com/shaiso/Keeper/internal/telemetry"
)

// DefaultGatewayURL — базовый URL gateway по умолчанию.
const DefaultGatewayURL = "https://gateway.nodus.dev"

// Действия над node.
const (
	actionStart = "start"
	actionStop  = "stop"
)

// Config — конфигурация Session.
type Config struct {
	// Account — обслуживаемый аккаунт.
	Account *domain.Account

	// BaseURL — базовый URL gateway (без завершающего /).
	BaseURL string

	// Transport — транспорт аккаунта (nil — прямое соединение).
	Transport http.RoundTripper

	// Policy — параметры повторов; фиксированы на всю сессию.
	Policy gateway.Policy

	// Signer — ключ подписи аккаунта.
	Signer *signer.Signer

	// Logger.
	Logger *slog.Logger
}

// Session — операции одного аккаунта. Эфемерна, живёт один цикл.
type Session struct {
	acc    *domain.Account
	base   string
	client *gateway.Client
	signer *signer.Signer
	header http.Header
	logger *slog.Logger
}

// New создаёт Session для аккаунта.
func New(cfg Config) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = telemetry.WithAccount(logger, cfg.Account.Short())

	return &Session{
		acc:    cfg.Account,
		base:   cfg.BaseURL,
		client: gateway.New(cfg.Transport, cfg.Policy, logger),
		signer: cfg.Signer,
		header: defaultHeader(cfg.BaseURL),
		logger: logger,
	}
}

// defaultHeader — фиксированный browser-like набор заголовков сессии.
func defaultHeader(base string) http.Header {
	h := http.Header{}
	h.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36")
	h.Set("Accept", "application/json, text/plain, */*")
	h.Set("Accept-Language", "en-US,en;q=0.9")
	h.Set("Content-Type", "application/json")
	h.Set("Origin", base)
	h.Set("Referer", base+"/")
	return h
}

// IsRegistered проверяет, зарегистрирован ли кошелёк.
//
// Registered — только на определённый положительный ответ с данными;
// NotRegistered — только на явный 404; всё остальное — Unknown.
func (s *Session) IsRegistered(ctx context.Context) domain.RegistrationStatus {
	resp, err := s.client.Do(ctx, &gateway.Request{
		Method: http.MethodGet,
		URL:    s.base + "/api/v1/wallets/" + s.acc.Address,
		Header: s.header,
	})
	if err != nil {
		s.logger.Error("wallet lookup failed", "error", err)
		return domain.RegistrationUnknown
	}

	switch {
	case resp.StatusCode == http.StatusOK && gjson.GetBytes(resp.Body, "data").Exists():
		return domain.Registered
	case resp.StatusCode == http.StatusNotFound:
		return domain.NotRegistered
	default:
		s.logger.Warn("unexpected wallet lookup response", "status", resp.StatusCode)
		return domain.RegistrationUnknown
	}
}

// VerifyReferralCode проверяет реферальный код аккаунта.
// Код валиден только если remote явно это подтвердил.
func (s *Session) VerifyReferralCode(ctx context.Context) domain.StepStatus {
	resp, err := s.client.Do(ctx, &gateway.Request{
		Method: http.MethodPost,
		URL:    s.base + "/api/v1/referral/verify",
		Body:   map[string]any{"refCode": s.acc.RefCode},
		Header: s.header,
	})
	if err != nil {
		s.logger.Error("referral verification failed", "error", err)
		return domain.StepUnavailable
	}

	if gjson.GetBytes(resp.Body, "data.valid").Bool() {
		return domain.StepOK
	}

	s.logger.Warn("referral code rejected",
		"status", resp.StatusCode,
		"ref_code", s.acc.RefCode,
	)
	return domain.StepRejected
}

// Register регистрирует кошелёк с реферальным кодом.
func (s *Session) Register(ctx context.Context) domain.StepStatus {
	resp, err := s.client.Do(ctx, &gateway.Request{
		Method: http.MethodPost,
		URL:    s.base + "/api/v1/wallets/register",
		Body: map[string]any{
			"walletAddress": s.acc.Address,
			"refCode":       s.acc.RefCode,
		},
		Header: s.header,
	})
	if err != nil {
		s.logger.Error("registration failed", "error", err)
		return domain.StepUnavailable
	}

	// Успех — только определённый положительный статус.
	if (resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated) &&
		gjson.GetBytes(resp.Body, "data").Exists() {
		s.logger.Info("wallet registered")
		return domain.StepOK
	}

	s.logger.Warn("registration rejected", "status", resp.StatusCode)
	return domain.StepRejected
}

// ClaimDaily выполняет ежедневный подписанный claim поинтов.
// Успех — наличие data в ответе.
func (s *Session) ClaimDaily(ctx context.Context) domain.StepStatus {
	ts := time.Now().Unix()
	msg := claimMessage(s.acc.Address, ts)

	resp, err := s.client.Do(ctx, &gateway.Request{
		Method: http.MethodPost,
		URL:    s.base + "/api/v1/points/claim",
		Body: map[string]any{
			"walletAddress": s.acc.Address,
			"sign":          s.signer.Sign(msg),
			"timestamp":     ts,
		},
		Header: s.header,
	})
	if err != nil {
		s.logger.Error("daily claim failed", "error", err)
		return domain.StepUnavailable
	}

	if gjson.GetBytes(resp.Body, "data").Exists() {
		s.logger.Info("daily claim accepted")
		return domain.StepOK
	}

	s.logger.Warn("daily claim rejected",
		"status", resp.StatusCode,
		"message", gjson.GetBytes(resp.Body, "message").String(),
	)
	return domain.StepRejected
}

// NodeStatus возвращает, запущен ли node аккаунта.
// Запущен ⇔ remote сообщил ненулевое время старта.
func (s *Session) NodeStatus(ctx context.Context) (bool, domain.StepStatus) {
	resp, err := s.client.Do(ctx, &gateway.Request{
		Method: http.MethodGet,
		URL:    s.base + "/api/v1/nodes/" + s.acc.Address,
		Header: s.header,
	})
	if err != nil {
		s.logger.Error("node status lookup failed", "error", err)
		return false, domain.StepUnavailable
	}

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("node status rejected", "status", resp.StatusCode)
		return false, domain.StepRejected
	}

	start := gjson.GetBytes(resp.Body, "data.startTime")
	running := start.Exists() && start.Type != gjson.Null
	return running, domain.StepOK
}

// StartNode запускает node аккаунта.
func (s *Session) StartNode(ctx context.Context) domain.StepStatus {
	return s.nodeAction(ctx, actionStart)
}

// StopNode останавливает node аккаунта (claim накопленного).
func (s *Session) StopNode(ctx context.Context) domain.StepStatus {
	return s.nodeAction(ctx, actionStop)
}

// nodeAction выполняет подписанное действие над node.
func (s *Session) nodeAction(ctx context.Context, action string) domain.StepStatus {
	ts := time.Now().Unix()
	msg := nodeActionMessage(action, s.acc.Address, ts)

	resp, err := s.client.Do(ctx, &gateway.Request{
		Method: http.MethodPost,
		URL:    s.base + "/api/v1/nodes/" + s.acc.Address + "/action",
		Body: map[string]any{
			"action":    action,
			"sign":      s.signer.Sign(msg),
			"timestamp": ts,
		},
		Header: s.header,
	})
	if err != nil {
		s.logger.Error("node action failed", "action", action, "error", err)
		return domain.StepUnavailable
	}

	if resp.StatusCode == http.StatusOK && gjson.GetBytes(resp.Body, "data.success").Bool() {
		s.logger.Info("node action accepted", "action", action)
		return domain.StepOK
	}

	s.logger.Warn("node action rejected",
		"action", action,
		"status", resp.StatusCode,
	)
	return domain.StepRejected
}

// FetchPoints запрашивает баланс поинтов аккаунта.
//
// Отсутствующие поля поинтов считаются нулём — это не ошибка.
// Второе значение Unavailable означает, что сам запрос не завершился
// и баланс неизвестен.
func (s *Session) FetchPoints(ctx context.Context) (int64, domain.StepStatus) {
	resp, err := s.client.Do(ctx, &gateway.Request{
		Method: http.MethodGet,
		URL:    s.base + "/api/v1/wallets/" + s.acc.Address,
		Header: s.header,
	})
	if err != nil {
		s.logger.Error("points query failed", "error", err)
		return 0, domain.StepUnavailable
	}

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("points query rejected", "status", resp.StatusCode)
		return 0, domain.StepRejected
	}

	// Отсутствующее поле — 0 (gjson возвращает нулевое значение).
	total := gjson.GetBytes(resp.Body, "data.point").Int() +
		gjson.GetBytes(resp.Body, "data.referralPoint").Int()
	return total, domain.StepOK
}

// claimMessage — детерминированная строка для подписи daily claim.
func claimMessage(address string, ts int64) string {
	return fmt.Sprintf("claim:%s:%d", address, ts)
}

// nodeActionMessage — детерминированная строка для подписи действия над node.
func nodeActionMessage(action, address string, ts int64) string {
	return fmt.Sprintf("node:%s:%s:%d", action, address, ts)
}
