package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shaiso/Keeper/internal/domain"
)

// PgStore — хранилище аккаунтов в Postgres.
//
// Схема:
//
//	CREATE TABLE accounts (
//	    private_key TEXT PRIMARY KEY,
//	    address     TEXT NOT NULL DEFAULT '',
//	    proxy       TEXT NOT NULL DEFAULT '',
//	    ref_code    TEXT NOT NULL DEFAULT '',
//	    point       BIGINT NOT NULL DEFAULT 0,
//	    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore создаёт PgStore.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

// Load читает все аккаунты в порядке добавления.
func (s *PgStore) Load(ctx context.Context) ([]domain.Account, error) {
	query := `
		SELECT address, private_key, proxy, ref_code, point
		FROM accounts
		ORDER BY created_at ASC
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var acc domain.Account
		if err := rows.Scan(&acc.Address, &acc.PrivateKey, &acc.ProxyURL, &acc.RefCode, &acc.Points); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		acc.Normalize()
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

// Save перезаписывает аккаунты одной транзакцией (upsert по ключу).
func (s *PgStore) Save(ctx context.Context, accounts []domain.Account) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO accounts (private_key, address, proxy, ref_code, point)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (private_key) DO UPDATE
		SET address = EXCLUDED.address,
		    proxy = EXCLUDED.proxy,
		    ref_code = EXCLUDED.ref_code,
		    point = EXCLUDED.point
	`
	for i := range accounts {
		acc := &accounts[i]
		if _, err := tx.Exec(ctx, query,
			acc.PrivateKey,
			acc.Address,
			acc.ProxyURL,
			acc.RefCode,
			acc.Points,
		); err != nil {
			return fmt.Errorf("upsert account %s: %w", acc.Short(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
