package orchestrator

import (
	"log/slog"

	"github.com/shaiso/Keeper/internal/domain"
	"github.com/shaiso/Keeper/internal/gateway"
	"github.com/shaiso/Keeper/internal/proxy"
	"github.com/shaiso/Keeper/internal/session"
	"github.com/shaiso/Keeper/internal/signer"
	"github.com/shaiso/Keeper/internal/workflow"
)

// GatewaySessionFactory собирает штатную фабрику сессий:
// ключ подписи → идентичность аккаунта, прокси → транспорт,
// единая Policy запросов на всю сессию.
func GatewaySessionFactory(gatewayURL string, policy gateway.Policy, logger *slog.Logger) SessionFactory {
	return func(acc *domain.Account) (workflow.Session, error) {
		sg, err := signer.FromHex(acc.PrivateKey)
		if err != nil {
			return nil, err
		}

		// Идентичность всегда выводится из ключа: устаревший адрес
		// в хранилище перезаписывается при сохранении цикла.
		acc.Address = sg.Address()

		return session.New(session.Config{
			Account:   acc,
			BaseURL:   gatewayURL,
			Transport: proxy.Transport(acc.ProxyURL, logger),
			Policy:    policy,
			Signer:    sg,
			Logger:    logger,
		}), nil
	}
}
