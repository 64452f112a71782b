package store

import "errors"

// Ошибки хранилища.
var (
	// ErrBadRecord — строка хранилища не может быть разобрана в Account.
	ErrBadRecord = errors.New("malformed account record")
)
