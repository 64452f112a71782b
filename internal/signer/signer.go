package signer

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Ошибки пакета.
var (
	// ErrBadKey — ключ не является валидной hex-строкой нужной длины.
	ErrBadKey = errors.New("invalid signing key")
)

// Signer подписывает сообщения ключом одного аккаунта.
type Signer struct {
	priv    ed25519.PrivateKey
	address string
}

// FromHex создаёт Signer из hex-строки ключа.
// Принимает 32-байтовый seed или полный 64-байтовый ключ,
// с префиксом 0x или без.
func FromHex(key string) (*Signer, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(key), "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadKey, err)
	}

	var priv ed25519.PrivateKey
	switch len(raw) {
	case ed25519.SeedSize:
		priv = ed25519.NewKeyFromSeed(raw)
	case ed25519.PrivateKeySize:
		priv = ed25519.PrivateKey(raw)
	default:
		return nil, fmt.Errorf("%w: unexpected length %d", ErrBadKey, len(raw))
	}

	return &Signer{
		priv:    priv,
		address: deriveAddress(priv.Public().(ed25519.PublicKey)),
	}, nil
}

// Address возвращает адрес аккаунта.
func (s *Signer) Address() string {
	return s.address
}

// Sign подписывает сообщение и возвращает hex-подпись.
func (s *Signer) Sign(msg string) string {
	return hex.EncodeToString(ed25519.Sign(s.priv, []byte(msg)))
}

// deriveAddress выводит адрес из публичного ключа:
// последние 20 байт Keccak-256.
func deriveAddress(pub ed25519.PublicKey) string {
	h := sha3.NewLegacyKeccak256()
	h.Write(pub)
	sum := h.Sum(nil)
	return "0x" + hex.EncodeToString(sum[len(sum)-20:])
}
