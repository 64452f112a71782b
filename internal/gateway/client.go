package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/shaiso/Keeper/internal/telemetry"
)

// Значения по умолчанию.
const (
	defaultMaxAttempts = 3
	defaultTimeout     = 60 * time.Second
	defaultRetryWait   = 2 * time.Second
	defaultBaseBackoff = 2 * time.Second

	// Множитель экспоненциального backoff для server faults.
	backoffFactor = 1.5

	maxResponseBody = 10 * 1024 * 1024 // 10 MB
)

// Policy — параметры повторов и таймаута одного клиента.
// Фиксируется при создании клиента; per-call переопределений нет.
type Policy struct {
	// MaxAttempts — бюджет попыток одного логического запроса (default: 3).
	MaxAttempts int

	// Timeout — таймаут одного HTTP-запроса (default: 60s).
	Timeout time.Duration

	// RetryWait — фиксированная задержка перед повтором после
	// transient-сбоя (default: 2s).
	RetryWait time.Duration

	// BaseBackoff — стартовая задержка экспоненциального backoff
	// после server fault (default: 2s).
	BaseBackoff time.Duration
}

// withDefaults заполняет нулевые поля значениями по умолчанию.
func (p Policy) withDefaults() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = defaultMaxAttempts
	}
	if p.Timeout <= 0 {
		p.Timeout = defaultTimeout
	}
	if p.RetryWait <= 0 {
		p.RetryWait = defaultRetryWait
	}
	if p.BaseBackoff <= 0 {
		p.BaseBackoff = defaultBaseBackoff
	}
	return p
}

// Request — дескриптор одного логического запроса.
type Request struct {
	// Method — HTTP-метод.
	Method string

	// URL — полный URL запроса.
	URL string

	// Body — тело запроса; сериализуется в JSON. nil — без тела.
	Body any

	// Header — заголовки запроса (копируются как есть).
	Header http.Header
}

// Response — результат транспортно-успешного запроса.
// Любой статус < 500 — транспортный успех, включая 4xx.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Client выполняет запросы с повторами и классификацией сбоев.
type Client struct {
	http   *http.Client
	policy Policy
	logger *slog.Logger
}

// New создаёт клиент поверх заданного транспорта.
// transport == nil — default-транспорт (прямое соединение).
func New(transport http.RoundTripper, policy Policy, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		http:   &http.Client{Transport: transport},
		policy: policy.withDefaults(),
		logger: logger,
	}
}

// Do выполняет логический запрос с бюджетом попыток.
//
// Возвращает (nil, error) только при исчерпании бюджета или отмене
// контекста: вызывающая сторона трактует это как "операция не
// завершилась" и применяет собственную обработку бизнес-сбоя.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	var serverFaults int

	for attempt := 1; attempt <= c.policy.MaxAttempts; attempt++ {
		resp, err := c.once(ctx, req)

		switch {
		case err != nil:
			// Transient: сеть, таймаут, обрыв соединения.
			c.logger.Warn("request failed",
				"method", req.Method,
				"url", req.URL,
				"attempt", attempt,
				"error", err,
			)

			if attempt == c.policy.MaxAttempts {
				return nil, fmt.Errorf("%w after %d attempts: %v",
					ErrAttemptsExhausted, attempt, err)
			}

			telemetry.RequestRetries.WithLabelValues("transient").Inc()
			if err := c.wait(ctx, c.policy.RetryWait); err != nil {
				return nil, err
			}

		case resp.StatusCode >= http.StatusInternalServerError:
			// Server fault: экспоненциальный backoff, отдельный счётчик
			// server-fault попыток.
			c.logger.Warn("server fault",
				"method", req.Method,
				"url", req.URL,
				"status", resp.StatusCode,
				"attempt", attempt,
			)

			if attempt == c.policy.MaxAttempts {
				return nil, fmt.Errorf("%w after %d attempts: status %d",
					ErrAttemptsExhausted, attempt, resp.StatusCode)
			}

			telemetry.RequestRetries.WithLabelValues("server_fault").Inc()
			delay := backoff(c.policy.BaseBackoff, serverFaults)
			serverFaults++
			if err := c.wait(ctx, delay); err != nil {
				return nil, err
			}

		default:
			// Транспортный успех — в том числе 4xx.
			return resp, nil
		}
	}

	// Недостижимо: цикл всегда завершается return'ом выше.
	return nil, ErrAttemptsExhausted
}

// once выполняет одну попытку запроса.
func (c *Client) once(ctx context.Context, req *Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.policy.Timeout)
	defer cancel()

	var bodyReader io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: marshal body: %v", ErrBadRequest, err)
		}
		bodyReader = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	for key, vals := range req.Header {
		for _, v := range vals {
			httpReq.Header.Add(key, v)
		}
	}
	if bodyReader != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// wait ждёт задержку с учётом отмены контекста.
func (c *Client) wait(ctx context.Context, delay time.Duration) error {
	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// backoff вычисляет задержку k-й server-fault попытки:
// base × 1.5^k.
func backoff(base time.Duration, k int) time.Duration {
	return time.Duration(float64(base) * math.Pow(backoffFactor, float64(k)))
}
