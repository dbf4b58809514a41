// Package crypto handles the chain's key and signature string forms:
// recoverable secp256k1 signatures and base58 key encodings with
// ripemd160 checksums.
package crypto

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // the chain's checksum algorithm
)

const (
	legacyKeyPrefix = "EOS"
	keyPrefix       = "PUB_K1_"

	CompressedKeySize = 33
	checksumSize      = 4
)

// Digest hashes a signing payload.
func Digest(message []byte) []byte {
	sum := sha256.Sum256(message)
	return sum[:]
}

func checksum(data []byte, suffix string) []byte {
	h := ripemd160.New()
	h.Write(data)
	if suffix != "" {
		h.Write([]byte(suffix))
	}
	return h.Sum(nil)[:checksumSize]
}

// LegacyKey formats a compressed public key in the legacy EOS... form.
func LegacyKey(compressed []byte) string {
	buf := make([]byte, 0, len(compressed)+checksumSize)
	buf = append(buf, compressed...)
	buf = append(buf, checksum(compressed, "")...)
	return legacyKeyPrefix + base58.Encode(buf)
}

// ParsePublicKey accepts a key in either the legacy EOS... or the
// PUB_K1_... form and returns the compressed key bytes.
func ParsePublicKey(key string) ([]byte, error) {
	var body, suffix string
	switch {
	case strings.HasPrefix(key, keyPrefix):
		body, suffix = key[len(keyPrefix):], "K1"
	case strings.HasPrefix(key, legacyKeyPrefix):
		body, suffix = key[len(legacyKeyPrefix):], ""
	default:
		return nil, fmt.Errorf("public key %q: unknown prefix", key)
	}

	raw, err := base58.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("decode public key: %w", err)
	}
	if len(raw) != CompressedKeySize+checksumSize {
		return nil, fmt.Errorf("public key is %d bytes, want %d", len(raw), CompressedKeySize+checksumSize)
	}
	data, sum := raw[:CompressedKeySize], raw[CompressedKeySize:]
	if !bytes.Equal(sum, checksum(data, suffix)) {
		return nil, fmt.Errorf("public key %q: checksum mismatch", key)
	}
	return data, nil
}

// EqualKeys reports whether two key strings name the same key, even
// when written in different forms.
func EqualKeys(a, b string) bool {
	if a == b {
		return true
	}
	ka, err := ParsePublicKey(a)
	if err != nil {
		return false
	}
	kb, err := ParsePublicKey(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ka, kb)
}
