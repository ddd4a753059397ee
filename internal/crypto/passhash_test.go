package crypto

import (
	"bytes"
	"testing"
)

func TestRandBytes_LengthAndUniqueness(t *testing.T) {
	t.Parallel()

	const n = 64
	a, err := RandBytes(n)
	if err != nil {
		t.Fatalf("RandBytes: %v", err)
	}
	if len(a) != n {
		t.Fatalf("len=%d, want=%d", len(a), n)
	}
	b, err := RandBytes(n)
	if err != nil {
		t.Fatalf("RandBytes(2): %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatalf("two subsequent RandBytes(%d) are equal", n)
	}
}

func TestHashPassword_SaltAndPasswordMatter(t *testing.T) {
	t.Parallel()

	pw := []byte("p@ssw0rd")
	salt := []byte("NaCl-16-bytes?")

	h1 := HashPassword(pw, salt)
	if !bytes.Equal(h1, HashPassword(pw, salt)) {
		t.Fatalf("hash not deterministic for same input")
	}
	if bytes.Equal(h1, HashPassword(pw, []byte("another-salt----"))) {
		t.Fatalf("hash should differ when salt differs")
	}
	if bytes.Equal(h1, HashPassword([]byte("p@ssw0rd!"), salt)) {
		t.Fatalf("hash should differ when password differs")
	}
}

func TestNewPasswordHash_FreshSalt(t *testing.T) {
	t.Parallel()

	h1, s1, err := NewPasswordHash("same")
	if err != nil {
		t.Fatalf("NewPasswordHash: %v", err)
	}
	h2, s2, err := NewPasswordHash("same")
	if err != nil {
		t.Fatalf("NewPasswordHash(2): %v", err)
	}
	if len(s1) != SaltLen {
		t.Fatalf("salt len=%d, want=%d", len(s1), SaltLen)
	}
	if bytes.Equal(s1, s2) || bytes.Equal(h1, h2) {
		t.Fatalf("equal passwords must not produce equal salts or hashes")
	}
	if !VerifyPassword([]byte("same"), s1, h1) {
		t.Fatalf("VerifyPassword rejected its own hash")
	}
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	pw := []byte("correct horse battery staple")
	salt := []byte("salty-salt-123456")
	hash := HashPassword(pw, salt)

	if !VerifyPassword(pw, salt, hash) {
		t.Fatalf("expected true for correct password")
	}
	if VerifyPassword([]byte("wrong"), salt, hash) {
		t.Fatalf("expected false for wrong password")
	}
	if VerifyPassword(pw, []byte("wrong-salt"), hash) {
		t.Fatalf("expected false for wrong salt")
	}
	if VerifyPassword(pw, salt, nil) {
		t.Fatalf("expected false for account without hash")
	}
}
