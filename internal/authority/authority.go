// Package authority decides whether a signature satisfies an account
// permission, either directly through the recovered key or through a
// caller-registered validator for a delegated actor@permission.
package authority

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hsharif269/eosplayer/internal/crypto"
	"github.com/hsharif269/eosplayer/pkg/rpc"
)

// Validator decides whether a delegated actor@permission accepts the
// recovered key.
type Validator func(ctx context.Context, recoveredKey string) (bool, error)

// AccountReader is the slice of the RPC surface the authorizer needs.
type AccountReader interface {
	GetAccount(ctx context.Context, name string) (rpc.Account, error)
}

type Authorizer struct {
	accounts AccountReader
	log      zerolog.Logger
}

func New(accounts AccountReader, lg zerolog.Logger) *Authorizer {
	return &Authorizer{accounts: accounts, log: lg}
}

// Authorize recovers the public key behind (signature, message) and
// checks it against the named permission of account. If the key is a
// direct member of the authority it wins immediately; otherwise each
// delegated actor@permission with a registered plugin is consulted and
// the first validator to accept wins. A no-match is (_, false, nil);
// absent authorization is a normal outcome, not a failure.
func (a *Authorizer) Authorize(ctx context.Context, signature string, message []byte, account, permission string, plugins map[string]Validator) (string, bool, error) {
	recovered, err := crypto.RecoverKey(signature, crypto.Digest(message))
	if err != nil {
		return "", false, err
	}

	acct, err := a.accounts.GetAccount(ctx, account)
	if err != nil {
		return "", false, fmt.Errorf("load account %s: %w", account, err)
	}

	var auth *rpc.Authority
	for i := range acct.Permissions {
		if acct.Permissions[i].PermName == permission {
			auth = &acct.Permissions[i].RequiredAuth
			break
		}
	}
	if auth == nil {
		a.log.Debug().Str("account", account).Str("permission", permission).
			Msg("account has no such permission")
		return "", false, nil
	}

	for _, kw := range auth.Keys {
		if crypto.EqualKeys(kw.Key, recovered) {
			return recovered, true, nil
		}
	}

	for _, aw := range auth.Accounts {
		name := aw.Permission.Actor + "@" + aw.Permission.Permission
		validate, ok := plugins[name]
		if !ok {
			continue
		}
		accepted, err := validate(ctx, recovered)
		if err != nil {
			return "", false, fmt.Errorf("validator %s: %w", name, err)
		}
		if accepted {
			a.log.Debug().Str("validator", name).
				Msg("delegated authority accepted recovered key")
			return recovered, true, nil
		}
	}

	return "", false, nil
}
