// Package sealed wraps a key-value store so that every value is encrypted at rest.
//
// A random data key (DEK) is generated once and stored wrapped by a key derived from
// the device passphrase. Each storage key gets its own subkey, and the storage key is
// bound as associated data, so values cannot be swapped between keys unnoticed.
package sealed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/and161185/proglo/internal/crypto/clientcrypto"
	"github.com/and161185/proglo/internal/errs"
	"github.com/and161185/proglo/internal/kv"
)

var _ kv.Store = (*Store)(nil)

var (
	// ErrWrongPassphrase is returned by Open when the stored DEK cannot be unwrapped.
	ErrWrongPassphrase = errors.New("sealed: wrong passphrase")
	// ErrPlainData is returned by Open when the inner store has no seal header but already holds data.
	ErrPlainData = errors.New("sealed: store holds unsealed data")
	// ErrSealed is returned by RequirePlain when the inner store carries a seal header.
	ErrSealed = errors.New("sealed: store is sealed")
)

type header struct {
	KekSalt    []byte `json:"kek_salt"`
	WrappedDEK []byte `json:"wrapped_dek"`
}

// Store encrypts values before delegating to the inner store.
type Store struct {
	inner kv.Store
	dek   []byte
}

// Open loads (or on first use creates) the seal header in inner and unlocks it with passphrase.
func Open(ctx context.Context, inner kv.Store, passphrase string) (*Store, error) {
	if passphrase == "" {
		return nil, errors.New("sealed: empty passphrase")
	}
	raw, err := inner.Get(ctx, kv.KeySealHeader)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return initialize(ctx, inner, passphrase)
	case err != nil:
		return nil, err
	}

	var h header
	if err := json.Unmarshal(raw, &h); err != nil {
		return nil, fmt.Errorf("sealed: header: %w", errs.ErrCorrupt)
	}
	kek := clientcrypto.DeriveKEK([]byte(passphrase), h.KekSalt)
	dek, err := clientcrypto.UnwrapDEK(kek, h.WrappedDEK)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return &Store{inner: inner, dek: dek}, nil
}

// RequirePlain fails with ErrSealed when inner was sealed, so that it is not read or
// overwritten as plaintext.
func RequirePlain(ctx context.Context, inner kv.Store) error {
	_, err := inner.Get(ctx, kv.KeySealHeader)
	switch {
	case err == nil:
		return ErrSealed
	case errors.Is(err, errs.ErrNotFound):
		return nil
	default:
		return err
	}
}

// initialize refuses to seal over existing plaintext values.
func initialize(ctx context.Context, inner kv.Store, passphrase string) (*Store, error) {
	for _, key := range kv.DataKeys {
		_, err := inner.Get(ctx, key)
		switch {
		case err == nil:
			return nil, fmt.Errorf("%w: %s", ErrPlainData, key)
		case !errors.Is(err, errs.ErrNotFound):
			return nil, err
		}
	}
	dek, err := clientcrypto.Rand(clientcrypto.DEKLen)
	if err != nil {
		return nil, err
	}
	if err := writeHeader(ctx, inner, passphrase, dek); err != nil {
		return nil, err
	}
	return &Store{inner: inner, dek: dek}, nil
}

func writeHeader(ctx context.Context, inner kv.Store, passphrase string, dek []byte) error {
	salt, err := clientcrypto.Rand(clientcrypto.SaltLen)
	if err != nil {
		return err
	}
	wrapped, err := clientcrypto.WrapDEK(clientcrypto.DeriveKEK([]byte(passphrase), salt), dek)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(header{KekSalt: salt, WrappedDEK: wrapped})
	if err != nil {
		return err
	}
	return inner.Set(ctx, kv.KeySealHeader, raw)
}

// Rekey rewraps the DEK under a new passphrase. Stored values are not re-encrypted.
func (s *Store) Rekey(ctx context.Context, passphrase string) error {
	if passphrase == "" {
		return errors.New("sealed: empty passphrase")
	}
	return writeHeader(ctx, s.inner, passphrase, s.dek)
}

// Get decrypts the value stored under key. Undecryptable values yield errs.ErrCorrupt.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	blob, err := s.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	ek, err := clientcrypto.DeriveEntryKey(s.dek, key)
	if err != nil {
		return nil, err
	}
	pt, err := clientcrypto.Open(ek, []byte(key), blob)
	if err != nil {
		return nil, fmt.Errorf("sealed: %s: %w", key, errs.ErrCorrupt)
	}
	return pt, nil
}

// Set encrypts value and stores it under key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	ek, err := clientcrypto.DeriveEntryKey(s.dek, key)
	if err != nil {
		return err
	}
	blob, err := clientcrypto.Seal(ek, []byte(key), value)
	if err != nil {
		return err
	}
	return s.inner.Set(ctx, key, blob)
}

// Remove deletes key from the inner store.
func (s *Store) Remove(ctx context.Context, key string) error {
	return s.inner.Remove(ctx, key)
}
