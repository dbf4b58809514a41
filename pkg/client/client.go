// Package client is the caller-facing surface of the chain helper:
// pass-through reads, submitted-transaction diagnostics, and the
// complete-enumeration scans over tables and action logs.
package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hsharif269/eosplayer/internal/authority"
	"github.com/hsharif269/eosplayer/internal/config"
	"github.com/hsharif269/eosplayer/internal/ringlog"
	"github.com/hsharif269/eosplayer/pkg/db"
	pebblestore "github.com/hsharif269/eosplayer/pkg/db/pebble"
	"github.com/hsharif269/eosplayer/pkg/log"
	"github.com/hsharif269/eosplayer/pkg/rpc"
)

// Table identifies one contract table: the code account that owns it,
// the scope it lives under, and the table name.
type Table struct {
	Code  string
	Scope string
	Table string
}

// Client wraps the remote API with complete-enumeration scans, an
// optional on-disk ABI cache, and a diagnostic history of submitted
// transactions. Safe for concurrent use.
type Client struct {
	cfg    config.Config
	rpc    *rpc.Client
	abis   db.KVStore
	pushes *ringlog.Log
	auth   *authority.Authorizer
	log    zerolog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.rpc = rpc.NewClient(c.cfg.Endpoint, h, log.RPC)
	}
}

// WithABICache supplies a cache store directly instead of opening one
// from the configured path.
func WithABICache(store db.KVStore) Option {
	return func(c *Client) { c.abis = store }
}

// New builds a Client from cfg. When cfg.ABICachePath is set a pebble
// store is opened there for the ABI cache.
func New(cfg config.Config, opts ...Option) (*Client, error) {
	c := &Client{
		cfg:    cfg,
		pushes: ringlog.New(cfg.PushHistoryCapacity),
		log:    log.RPC,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rpc == nil {
		c.rpc = rpc.NewClient(cfg.Endpoint, &http.Client{Timeout: cfg.RequestTimeout()}, log.RPC)
	}
	if c.abis == nil && cfg.ABICachePath != "" {
		store, err := pebblestore.NewStore(cfg.ABICachePath)
		if err != nil {
			return nil, err
		}
		c.abis = store
	}
	c.auth = authority.New(c.rpc, log.Auth)
	return c, nil
}

// Close releases the ABI cache store, if any.
func (c *Client) Close() error {
	if c.abis != nil {
		return c.abis.Close()
	}
	return nil
}

// Info returns head block and chain identity information.
func (c *Client) Info(ctx context.Context) (rpc.Info, error) {
	return c.rpc.GetInfo(ctx)
}

// Block fetches a block by number or id.
func (c *Client) Block(ctx context.Context, numOrID string) (rpc.Block, error) {
	return c.rpc.GetBlock(ctx, numOrID)
}

// AccountOf fetches an account, including its permission authorities.
func (c *Client) AccountOf(ctx context.Context, name string) (rpc.Account, error) {
	return c.rpc.GetAccount(ctx, name)
}

// Balance returns the token balances of account under the given token
// contract.
func (c *Client) Balance(ctx context.Context, code, account, symbol string) ([]string, error) {
	return c.rpc.GetCurrencyBalance(ctx, code, account, symbol)
}

const abiKeyPrefix = "abi:"

// ABI returns the contract ABI of account, serving it from the cache
// when one is configured. ABIs only change when a contract is
// redeployed, so a stale hit can be evicted with InvalidateABI.
func (c *Client) ABI(ctx context.Context, account string) (rpc.ABIResult, error) {
	key := []byte(abiKeyPrefix + account)
	if c.abis != nil {
		if raw, err := c.abis.Get(key); err == nil {
			var cached rpc.ABIResult
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		}
	}

	res, err := c.rpc.GetABI(ctx, account)
	if err != nil {
		return rpc.ABIResult{}, err
	}
	if c.abis != nil {
		if raw, err := json.Marshal(res); err == nil {
			if err := c.abis.Put(key, raw); err != nil {
				c.log.Warn().Err(err).Str("account", account).Msg("abi cache write failed")
			}
		}
	}
	return res, nil
}

// InvalidateABI drops the cached ABI of account.
func (c *Client) InvalidateABI(account string) error {
	if c.abis == nil {
		return nil
	}
	return c.abis.Delete([]byte(abiKeyPrefix + account))
}

// CachedABIs lists the accounts whose ABIs are currently cached.
func (c *Client) CachedABIs() ([]string, error) {
	if c.abis == nil {
		return nil, nil
	}
	it, err := c.abis.NewIterator([]byte(abiKeyPrefix), []byte(abiKeyPrefix+"\xff"))
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var names []string
	for it.Next() {
		names = append(names, strings.TrimPrefix(string(it.Key()), abiKeyPrefix))
	}
	return names, nil
}

// PushTransaction submits a pre-signed packed transaction and records
// it in the diagnostic push history.
func (c *Client) PushTransaction(ctx context.Context, packed json.RawMessage) (rpc.PushResult, error) {
	res, err := c.rpc.PushTransaction(ctx, packed)
	if err != nil {
		return rpc.PushResult{}, err
	}
	c.pushes.Push(ringlog.Entry{
		Time:          time.Now(),
		TransactionID: res.TransactionID,
		Summary:       summarize(packed),
	})
	return res, nil
}

// RecentPushes returns the recorded submissions, oldest first.
func (c *Client) RecentPushes() []ringlog.Entry {
	return c.pushes.Recent()
}

// Authorize reports whether the key recovered from (signature, message)
// satisfies the named permission of account, directly or through one of
// the supplied delegated-authority validators.
func (c *Client) Authorize(ctx context.Context, signature string, message []byte, account, permission string, plugins map[string]authority.Validator) (string, bool, error) {
	return c.auth.Authorize(ctx, signature, message, account, permission, plugins)
}

func summarize(packed json.RawMessage) string {
	const max = 256
	s := string(packed)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
