package testutils

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"

	"github.com/hsharif269/eosplayer/internal/crypto"
)

const nameAlphabet = "12345abcdefghijklmnopqrstuvwxyz"

// RandomAccountName returns a 12-character chain account name.
func RandomAccountName(t *testing.T) string {
	buf := make([]byte, 12)
	_, err := rand.Read(buf)
	require.NoError(t, err)
	for i := range buf {
		buf[i] = nameAlphabet[int(buf[i])%len(nameAlphabet)]
	}
	return string(buf)
}

// RandomKeyPair returns a fresh private key and its public key in the
// legacy string form.
func RandomKeyPair(t *testing.T) (*secp256k1.PrivateKey, string) {
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	return priv, crypto.LegacyKey(priv.PubKey().SerializeCompressed())
}

// RowsForKeys builds one {"id": k} row per key.
func RowsForKeys(keys ...uint64) []json.RawMessage {
	rows := make([]json.RawMessage, len(keys))
	for i, k := range keys {
		rows[i] = json.RawMessage(fmt.Sprintf(`{"id":%d}`, k))
	}
	return rows
}
