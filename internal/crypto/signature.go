package crypto

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/mr-tron/base58"
)

const (
	signaturePrefix = "SIG_K1_"

	// CompactSignatureSize is the recovery header byte plus r and s.
	CompactSignatureSize = 65
)

// ParseSignature decodes a SIG_K1_... string into its compact form,
// recovery header first.
func ParseSignature(sig string) ([]byte, error) {
	if !strings.HasPrefix(sig, signaturePrefix) {
		return nil, fmt.Errorf("signature %q: missing %s prefix", sig, signaturePrefix)
	}
	raw, err := base58.Decode(sig[len(signaturePrefix):])
	if err != nil {
		return nil, fmt.Errorf("decode signature: %w", err)
	}
	if len(raw) != CompactSignatureSize+checksumSize {
		return nil, fmt.Errorf("signature is %d bytes, want %d", len(raw), CompactSignatureSize+checksumSize)
	}
	body, sum := raw[:CompactSignatureSize], raw[CompactSignatureSize:]
	if !bytes.Equal(sum, checksum(body, "K1")) {
		return nil, fmt.Errorf("signature %q: checksum mismatch", sig)
	}
	return body, nil
}

// FormatSignature is the inverse of ParseSignature.
func FormatSignature(compact []byte) string {
	buf := make([]byte, 0, len(compact)+checksumSize)
	buf = append(buf, compact...)
	buf = append(buf, checksum(compact, "K1")...)
	return signaturePrefix + base58.Encode(buf)
}

// Sign produces a SIG_K1_... signature of digest. Recovering the key
// from the result yields key's public key.
func Sign(key *secp256k1.PrivateKey, digest []byte) string {
	return FormatSignature(ecdsa.SignCompact(key, digest, true))
}

// RecoverKey recovers the public key that produced signature over
// digest, returned in the legacy string form. Recovery is a pure
// function of the signature scheme; no network is involved.
func RecoverKey(signature string, digest []byte) (string, error) {
	compact, err := ParseSignature(signature)
	if err != nil {
		return "", err
	}
	pub, _, err := ecdsa.RecoverCompact(compact, digest)
	if err != nil {
		return "", fmt.Errorf("recover public key: %w", err)
	}
	return LegacyKey(pub.SerializeCompressed()), nil
}
