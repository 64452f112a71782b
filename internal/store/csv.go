package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shaiso/Keeper/internal/domain"
)

// Колонки CSV-файла аккаунтов.
var csvHeader = []string{"address", "private_key", "proxy", "ref_code", "point"}

// CSVStore — хранилище аккаунтов в локальном CSV-файле.
//
// Формат: заголовок address,private_key,proxy,ref_code,point;
// address и point опциональны (адрес выводится из ключа при загрузке
// аккаунта, point по умолчанию 0).
type CSVStore struct {
	path string
}

// NewCSVStore создаёт CSVStore для файла path.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Load читает все аккаунты из файла.
// Отсутствующий файл — пустой список, не ошибка.
func (s *CSVStore) Load(ctx context.Context) ([]domain.Account, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // строки с меньшим числом колонок допустимы

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var accounts []domain.Account
	for i, rec := range records {
		// Пропускаем заголовок.
		if i == 0 && len(rec) > 0 && rec[0] == csvHeader[0] {
			continue
		}

		acc, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", s.path, i+1, err)
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

// Save атомарно перезаписывает файл: временный файл + rename.
func (s *CSVStore) Save(ctx context.Context, accounts []domain.Account) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".accounts-*.csv")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(csvHeader); err != nil {
		tmp.Close()
		return fmt.Errorf("write header: %w", err)
	}

	for i := range accounts {
		acc := &accounts[i]
		rec := []string{
			acc.Address,
			acc.PrivateKey,
			acc.ProxyURL,
			acc.RefCode,
			strconv.FormatInt(acc.Points, 10),
		}
		if err := w.Write(rec); err != nil {
			tmp.Close()
			return fmt.Errorf("write account %s: %w", acc.Short(), err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// parseRecord разбирает одну строку CSV в Account.
func parseRecord(rec []string) (domain.Account, error) {
	if len(rec) < 2 || rec[1] == "" {
		return domain.Account{}, fmt.Errorf("%w: private_key is required", ErrBadRecord)
	}

	field := func(i int) string {
		if i < len(rec) {
			return rec[i]
		}
		return ""
	}

	acc := domain.Account{
		Address:    field(0),
		PrivateKey: field(1),
		ProxyURL:   field(2),
		RefCode:    field(3),
	}

	if raw := field(4); raw != "" {
		points, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return domain.Account{}, fmt.Errorf("%w: point %q: %v", ErrBadRecord, raw, err)
		}
		acc.Points = points
	}

	acc.Normalize()
	return acc, nil
}
