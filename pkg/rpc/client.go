package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const DefaultRequestTimeout = 10 * time.Second

// Client talks to a nodeos-style HTTP API: every endpoint is a POST of
// a JSON body to a fixed path. The client is safe for concurrent use.
type Client struct {
	endpoint string
	http     *http.Client
	log      zerolog.Logger
}

// NewClient creates a client for the given base URL. If httpClient is
// nil a default one with DefaultRequestTimeout is used.
func NewClient(endpoint string, httpClient *http.Client, lg zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultRequestTimeout}
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		http:     httpClient,
		log:      lg,
	}
}

func (c *Client) call(ctx context.Context, path string, params, result any) error {
	var body io.Reader
	if params != nil {
		b, err := json.Marshal(params)
		if err != nil {
			return fmt.Errorf("marshal request %s: %w", path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, body)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read response %s: %w", path, err)
	}

	if res.StatusCode != http.StatusOK {
		apiErr := &APIError{}
		if jsonErr := json.Unmarshal(raw, apiErr); jsonErr == nil && apiErr.Code != 0 {
			c.log.Debug().Str("path", path).Int("code", apiErr.Code).
				Str("name", apiErr.Detail.Name).Msg("api error")
			return apiErr
		}
		return fmt.Errorf("%s: http status %d", path, res.StatusCode)
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("decode response %s: %w", path, err)
	}
	return nil
}

// GetInfo returns head block and chain identity information.
func (c *Client) GetInfo(ctx context.Context) (Info, error) {
	var out Info
	if err := c.call(ctx, "/v1/chain/get_info", nil, &out); err != nil {
		return Info{}, err
	}
	return out, nil
}

// GetBlock fetches a block by number or id.
func (c *Client) GetBlock(ctx context.Context, numOrID string) (Block, error) {
	var out Block
	params := map[string]string{"block_num_or_id": numOrID}
	if err := c.call(ctx, "/v1/chain/get_block", params, &out); err != nil {
		return Block{}, err
	}
	return out, nil
}

// GetABI fetches the ABI of a contract account. The ABI is returned as
// raw JSON.
func (c *Client) GetABI(ctx context.Context, account string) (ABIResult, error) {
	var out ABIResult
	params := map[string]string{"account_name": account}
	if err := c.call(ctx, "/v1/chain/get_abi", params, &out); err != nil {
		return ABIResult{}, err
	}
	return out, nil
}

// GetAccount fetches an account, including its permission authorities.
func (c *Client) GetAccount(ctx context.Context, name string) (Account, error) {
	var out Account
	params := map[string]string{"account_name": name}
	if err := c.call(ctx, "/v1/chain/get_account", params, &out); err != nil {
		return Account{}, err
	}
	return out, nil
}

// GetCurrencyBalance returns the token balances of account under the
// given token contract, one formatted asset string per symbol.
func (c *Client) GetCurrencyBalance(ctx context.Context, code, account, symbol string) ([]string, error) {
	var out []string
	params := map[string]string{"code": code, "account": account}
	if symbol != "" {
		params["symbol"] = symbol
	}
	if err := c.call(ctx, "/v1/chain/get_currency_balance", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTableRows fetches a bounded slice of an ordered contract table.
// A More=true response means rows beyond the returned slice exist
// inside the requested bounds.
func (c *Client) GetTableRows(ctx context.Context, req TableRowsRequest) (TableRows, error) {
	var out TableRows
	if err := c.call(ctx, "/v1/chain/get_table_rows", req, &out); err != nil {
		return TableRows{}, err
	}
	return out, nil
}

// GetActions fetches a window of an account's action log starting at
// sequence number pos. The window covers sequences [pos, pos+offset];
// the backend returns the maximal contiguous slice it has available.
func (c *Client) GetActions(ctx context.Context, account string, pos, offset int64) (Actions, error) {
	var out Actions
	params := map[string]any{
		"account_name": account,
		"pos":          pos,
		"offset":       offset,
	}
	if err := c.call(ctx, "/v1/history/get_actions", params, &out); err != nil {
		return Actions{}, err
	}
	return out, nil
}

// PushTransaction submits a pre-signed packed transaction. Construction
// and signing happen outside this module.
func (c *Client) PushTransaction(ctx context.Context, packed json.RawMessage) (PushResult, error) {
	var out PushResult
	if err := c.call(ctx, "/v1/chain/push_transaction", packed, &out); err != nil {
		return PushResult{}, err
	}
	return out, nil
}

// Endpoint returns the base URL this client targets.
func (c *Client) Endpoint() string {
	return c.endpoint
}
