// Package clientcrypto contains on-device primitives for key wrapping and AEAD sealing of stored values.
package clientcrypto

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// Params
const (
	DEKLen  = 32
	KeKLen  = 32
	SaltLen = 16

	argonTime    uint32 = 3
	argonMemory  uint32 = 64 * 1024
	argonThreads uint8  = 1
)

// ErrShort is returned for ciphertexts shorter than the nonce.
var ErrShort = errors.New("ciphertext too short")

func Rand(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

// DeriveKEK derives a KEK from a passphrase and kekSalt using Argon2id.
func DeriveKEK(passphrase, kekSalt []byte) []byte {
	return argon2.IDKey(passphrase, kekSalt, argonTime, argonMemory, argonThreads, KeKLen)
}

// WrapDEK encrypts DEK with KEK using XChaCha20-Poly1305 and random nonce.
func WrapDEK(kek, dek []byte) ([]byte, error) {
	return Seal(kek, nil, dek)
}

// UnwrapDEK decrypts wrapped DEK using KEK.
func UnwrapDEK(kek, wrapped []byte) ([]byte, error) {
	return Open(kek, nil, wrapped)
}

// DeriveEntryKey derives a per-entry key via HKDF-SHA256 using the storage key as info.
func DeriveEntryKey(dek []byte, storageKey string) ([]byte, error) {
	r := hkdf.New(sha256.New, dek, nil, []byte(storageKey))
	key := make([]byte, DEKLen)
	_, err := r.Read(key)
	return key, err
}

// Seal encrypts plaintext with a random nonce; output is nonce||ciphertext.
func Seal(key, aad, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce, err := Rand(chacha20poly1305.NonceSizeX)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plaintext, aad), nil
}

// Open decrypts a nonce||ciphertext blob produced by Seal with the same AAD.
func Open(key, aad, blob []byte) ([]byte, error) {
	if len(blob) < chacha20poly1305.NonceSizeX {
		return nil, ErrShort
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce := blob[:chacha20poly1305.NonceSizeX]
	ct := blob[chacha20poly1305.NonceSizeX:]
	return aead.Open(nil, nonce, ct, aad)
}
