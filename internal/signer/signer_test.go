package signer

import (
	"errors"
	"strings"
	"testing"
)

// 32-байтовый seed для тестов.
const testSeed = "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"

func TestFromHex_Address(t *testing.T) {
	s, err := FromHex(testSeed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	addr := s.Address()
	if !strings.HasPrefix(addr, "0x") {
		t.Errorf("address must have 0x prefix, got %q", addr)
	}
	if len(addr) != 2+40 {
		t.Errorf("address must be 20 bytes hex, got %q", addr)
	}
}

func TestFromHex_AddressDeterministic(t *testing.T) {
	// Один ключ — один адрес, независимо от префикса 0x.
	a, err := FromHex(testSeed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := FromHex("0x" + testSeed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.Address() != b.Address() {
		t.Errorf("address must be stable: %q != %q", a.Address(), b.Address())
	}
}

func TestSign_Deterministic(t *testing.T) {
	s, err := FromHex(testSeed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := "claim:" + s.Address() + ":1700000000"
	if s.Sign(msg) != s.Sign(msg) {
		t.Error("ed25519 signature must be deterministic")
	}
	if s.Sign(msg) == s.Sign(msg+"x") {
		t.Error("different messages must produce different signatures")
	}
}

func TestFromHex_BadKeys(t *testing.T) {
	tests := []string{
		"",
		"zznothex",
		"abcd",     // слишком короткий
		testSeed + "00", // некорректная длина
	}

	for _, key := range tests {
		if _, err := FromHex(key); !errors.Is(err, ErrBadKey) {
			t.Errorf("FromHex(%q): expected ErrBadKey, got %v", key, err)
		}
	}
}
