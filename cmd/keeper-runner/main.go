// Keeper Runner — демон обслуживания аккаунтов.
//
// Runner:
//   - Загружает аккаунты из хранилища (Postgres или CSV)
//   - Прогоняет workflow каждого аккаунта группами
//   - Перезаписывает хранилище с обновлёнными поинтами
//   - Повторяет цикл по интервалу или cron-расписанию
//
// Фатальная ошибка цикла завершает процесс с кодом 1.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shaiso/Keeper/internal/gateway"
	"github.com/shaiso/Keeper/internal/mq"
	"github.com/shaiso/Keeper/internal/orchestrator"
	"github.com/shaiso/Keeper/internal/runner"
	"github.com/shaiso/Keeper/internal/session"
	"github.com/shaiso/Keeper/internal/store"
	"github.com/shaiso/Keeper/internal/telemetry"
)

func main() {
	// Инициализируем structured logging
	logger := telemetry.SetupLogger()
	logger.Info("starting keeper-runner")

	// graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Хранилище аккаунтов: Postgres при заданном DB_URL, иначе CSV
	accountStore, cleanup, err := openStore(ctx, logger)
	if err != nil {
		logger.Error("failed to open account store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	// RabbitMQ (опционально)
	var publisher *mq.Publisher
	mqURL := os.Getenv("RABBITMQ_URL")
	if mqURL == "" {
		mqURL = mq.DefaultURL()
	}

	mqConn, err := mq.NewConnection(mqURL, logger)
	if err != nil {
		logger.Warn("RabbitMQ not available, events disabled", "error", err)
	} else {
		defer mqConn.Close()
		logger.Info("RabbitMQ connected")

		if err := mq.SetupTopology(ctx, mqConn); err != nil {
			logger.Warn("failed to setup topology", "error", err)
		}

		publisher = mq.NewPublisher(mqConn, logger)
	}

	gatewayURL := os.Getenv("GATEWAY_URL")
	if gatewayURL == "" {
		gatewayURL = session.DefaultGatewayURL
	}

	// Оркестратор
	orch := orchestrator.New(orchestrator.Config{
		NewSession: orchestrator.GatewaySessionFactory(gatewayURL, gateway.Policy{}, logger),
		Publisher:  publisher,
		BatchSize:  envInt("BATCH_SIZE", 0),
		Logger:     logger,
	})

	// Runner
	r, err := runner.New(runner.Config{
		Store:     accountStore,
		Batcher:   orch,
		Publisher: publisher,
		Interval:  envDuration("CYCLE_INTERVAL", 0),
		CronExpr:  os.Getenv("CYCLE_CRON"),
		Logger:    logger,
	})
	if err != nil {
		logger.Error("failed to create runner", "error", err)
		os.Exit(1)
	}

	// HTTP mux: /healthz + /metrics
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	port := ":8081"
	if v := os.Getenv("RUNNER_PORT"); v != "" {
		port = ":" + v
	}

	go func() {
		logger.Info("listening", "addr", port)
		if err := http.ListenAndServe(port, mux); err != nil {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	// Циклы до сигнала завершения или фатальной ошибки
	if err := r.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("runner stopped", "error", err)
		os.Exit(1)
	}

	logger.Info("keeper-runner stopped")
}

// openStore выбирает хранилище аккаунтов по окружению.
func openStore(ctx context.Context, logger *slog.Logger) (store.Store, func(), error) {
	if os.Getenv("DB_URL") != "" {
		pool, err := store.NewPool(ctx)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("database connected")
		return store.NewPgStore(pool), pool.Close, nil
	}

	path := os.Getenv("ACCOUNTS_FILE")
	if path == "" {
		path = "accounts.csv"
	}
	logger.Info("using csv account store", "path", path)
	return store.NewCSVStore(path), func() {}, nil
}

// envInt читает целое из окружения; пустое или некорректное — fallback.
func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// envDuration читает duration из окружения ("2h", "30m").
func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
