// Package cryptostore layers AES-256-GCM encrypted JSON envelopes over a
// raw key-value store.
//
// Read-side failures (missing key, corrupt blob, wrong key, schema drift)
// are deliberately indistinguishable from "no data": the caller gets its
// zero default. Write-side encryption failures fall back to a plaintext
// envelope so the ledger stays available; the fallback is logged, counted,
// and flagged as a confidentiality tradeoff.
package cryptostore

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/sportiq/picoin/internal/infrastructure/metrics"
)

// Envelope format markers, first byte of every stored value.
const (
	formatPlaintext byte = 0x00
	formatEncrypted byte = 0x01
)

var errEnvelope = errors.New("unrecognized envelope format")

// KV is the raw byte store beneath the encryption layer. Get returns
// (nil, nil) for absent keys.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Store implements usecase.StateStore.
type Store struct {
	kv      KV
	aead    cipher.AEAD
	entropy io.Reader
	retrier *Retrier
	logger  zerolog.Logger
}

// New creates a Store. The key material is passed through SHA-256, so any
// configured passphrase yields a valid AES-256 key.
func New(kv KV, key []byte, logger zerolog.Logger) (*Store, error) {
	return NewWithEntropy(kv, key, rand.Reader, logger)
}

// NewWithEntropy is New with an injectable nonce source, used by tests to
// force encryption failures.
func NewWithEntropy(kv KV, key []byte, entropy io.Reader, logger zerolog.Logger) (*Store, error) {
	sum := sha256.Sum256(key)
	block, err := aes.NewCipher(sum[:])
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init gcm: %w", err)
	}

	return &Store{
		kv:      kv,
		aead:    aead,
		entropy: entropy,
		retrier: NewRetrier(),
		logger:  logger,
	}, nil
}

// LoadJSON decrypts and unmarshals the value at key into v. Absent keys and
// undecryptable blobs both leave v untouched and return nil.
func (s *Store) LoadJSON(ctx context.Context, key string, v any) error {
	data, err := s.kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	if len(data) == 0 {
		return nil
	}

	plain, err := s.open(data)
	if err != nil {
		s.logger.Debug().Str("key", key).Err(err).Msg("discarding undecryptable state")
		return nil
	}
	if err := json.Unmarshal(plain, v); err != nil {
		s.logger.Debug().Str("key", key).Err(err).Msg("discarding unparseable state")
		return nil
	}
	return nil
}

// StoreJSON marshals and encrypts v under key. When encryption fails the
// value is written as plaintext instead of failing the operation.
func (s *Store) StoreJSON(ctx context.Context, key string, v any) error {
	plain, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	envelope, err := s.seal(plain)
	if err != nil {
		s.logger.Warn().Str("key", key).Err(err).
			Msg("encryption failed, writing plaintext fallback")
		metrics.PlaintextFallbacks.Inc()
		envelope = append([]byte{formatPlaintext}, plain...)
	}

	return s.put(ctx, key, envelope)
}

// LoadRaw reads an unencrypted value, nil when absent.
func (s *Store) LoadRaw(ctx context.Context, key string) ([]byte, error) {
	data, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return data, nil
}

// StoreRaw writes an unencrypted value.
func (s *Store) StoreRaw(ctx context.Context, key string, value []byte) error {
	return s.put(ctx, key, value)
}

func (s *Store) put(ctx context.Context, key string, value []byte) error {
	err := s.retrier.Retry(ctx, func() error {
		return s.kv.Put(ctx, key, value)
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (s *Store) seal(plain []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(s.entropy, nonce); err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}

	out := make([]byte, 0, 1+len(nonce)+len(plain)+s.aead.Overhead())
	out = append(out, formatEncrypted)
	out = append(out, nonce...)
	return s.aead.Seal(out, nonce, plain, nil), nil
}

func (s *Store) open(envelope []byte) ([]byte, error) {
	switch envelope[0] {
	case formatPlaintext:
		return envelope[1:], nil
	case formatEncrypted:
		rest := envelope[1:]
		if len(rest) < s.aead.NonceSize() {
			return nil, errEnvelope
		}
		nonce, ciphertext := rest[:s.aead.NonceSize()], rest[s.aead.NonceSize():]
		return s.aead.Open(nil, nonce, ciphertext, nil)
	default:
		return nil, errEnvelope
	}
}
