package store

import (
	"context"

	"github.com/shaiso/Keeper/internal/domain"
)

// Store — табличное хранилище аккаунтов.
type Store interface {
	// Load читает полный список аккаунтов.
	Load(ctx context.Context) ([]domain.Account, error)

	// Save атомарно перезаписывает полный список аккаунтов.
	Save(ctx context.Context, accounts []domain.Account) error
}
