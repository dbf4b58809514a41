package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// fakeChain records the last request per path and serves canned
// responses.
type fakeChain struct {
	t         *testing.T
	responses map[string]any
	status    map[string]int

	mu       sync.Mutex
	lastBody map[string]json.RawMessage
}

func (f *fakeChain) sentBody(path string) json.RawMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastBody[path]
}

func newFakeChain(t *testing.T) *fakeChain {
	return &fakeChain{
		t:         t,
		responses: make(map[string]any),
		status:    make(map[string]int),
		lastBody:  make(map[string]json.RawMessage),
	}
}

func (f *fakeChain) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	require.Equal(f.t, http.MethodPost, r.Method)

	var body json.RawMessage
	_ = json.NewDecoder(r.Body).Decode(&body)
	f.mu.Lock()
	f.lastBody[r.URL.Path] = body
	f.mu.Unlock()

	if code, ok := f.status[r.URL.Path]; ok {
		w.WriteHeader(code)
	}
	res, ok := f.responses[r.URL.Path]
	if !ok {
		res = map[string]any{}
	}
	_ = json.NewEncoder(w).Encode(res)
}

func newTestClient(t *testing.T, chain *fakeChain) (*Client, *httptest.Server) {
	srv := httptest.NewServer(chain)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, srv.Client(), zerolog.Nop()), srv
}

func Test_GetInfo(t *testing.T) {
	chain := newFakeChain(t)
	chain.responses["/v1/chain/get_info"] = Info{
		ChainID:      "aca376f2",
		HeadBlockNum: 1234,
	}
	c, _ := newTestClient(t, chain)

	info, err := c.GetInfo(context.Background())
	require.NoError(t, err)
	require.Equal(t, "aca376f2", info.ChainID)
	require.EqualValues(t, 1234, info.HeadBlockNum)
}

func Test_GetTableRows_RequestBody(t *testing.T) {
	chain := newFakeChain(t)
	chain.responses["/v1/chain/get_table_rows"] = TableRows{
		Rows: []json.RawMessage{json.RawMessage(`{"id":1}`)},
		More: true,
	}
	c, _ := newTestClient(t, chain)

	rows, err := c.GetTableRows(context.Background(), TableRowsRequest{
		Code:       "eosio.token",
		Scope:      "alice",
		Table:      "accounts",
		LowerBound: "10",
		UpperBound: "20",
		Limit:      -1,
		JSON:       true,
	})
	require.NoError(t, err)
	require.True(t, rows.More)
	require.Len(t, rows.Rows, 1)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(chain.sentBody("/v1/chain/get_table_rows"), &sent))
	require.Equal(t, "eosio.token", sent["code"])
	require.Equal(t, "alice", sent["scope"])
	require.Equal(t, "accounts", sent["table"])
	require.Equal(t, "10", sent["lower_bound"])
	require.Equal(t, "20", sent["upper_bound"])
	require.EqualValues(t, -1, sent["limit"])
	require.Equal(t, true, sent["json"])
}

func Test_GetActions_RequestBody(t *testing.T) {
	chain := newFakeChain(t)
	chain.responses["/v1/history/get_actions"] = Actions{
		Actions: []Action{{AccountActionSeq: 5}, {AccountActionSeq: 6}},
	}
	c, _ := newTestClient(t, chain)

	actions, err := c.GetActions(context.Background(), "alice", 5, 1)
	require.NoError(t, err)
	require.Len(t, actions.Actions, 2)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(chain.sentBody("/v1/history/get_actions"), &sent))
	require.Equal(t, "alice", sent["account_name"])
	require.EqualValues(t, 5, sent["pos"])
	require.EqualValues(t, 1, sent["offset"])
}

func Test_GetAccount(t *testing.T) {
	chain := newFakeChain(t)
	chain.responses["/v1/chain/get_account"] = Account{
		AccountName: "alice",
		Permissions: []Permission{{PermName: "active"}},
	}
	c, _ := newTestClient(t, chain)

	acct, err := c.GetAccount(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, "alice", acct.AccountName)
	require.Len(t, acct.Permissions, 1)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(chain.sentBody("/v1/chain/get_account"), &sent))
	require.Equal(t, "alice", sent["account_name"])
}

func Test_GetCurrencyBalance(t *testing.T) {
	chain := newFakeChain(t)
	chain.responses["/v1/chain/get_currency_balance"] = []string{"3.0000 EOS"}
	c, _ := newTestClient(t, chain)

	balances, err := c.GetCurrencyBalance(context.Background(), "eosio.token", "alice", "EOS")
	require.NoError(t, err)
	require.Equal(t, []string{"3.0000 EOS"}, balances)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(chain.sentBody("/v1/chain/get_currency_balance"), &sent))
	require.Equal(t, "EOS", sent["symbol"])
}

func Test_PushTransaction(t *testing.T) {
	chain := newFakeChain(t)
	chain.responses["/v1/chain/push_transaction"] = PushResult{TransactionID: "deadbeef"}
	c, _ := newTestClient(t, chain)

	packed := json.RawMessage(`{"signatures":["SIG_K1_x"],"packed_trx":"00"}`)
	res, err := c.PushTransaction(context.Background(), packed)
	require.NoError(t, err)
	require.Equal(t, "deadbeef", res.TransactionID)
	require.JSONEq(t, string(packed), string(chain.sentBody("/v1/chain/push_transaction")))
}

func Test_APIErrorDecoding(t *testing.T) {
	chain := newFakeChain(t)
	chain.status["/v1/chain/get_info"] = http.StatusInternalServerError
	chain.responses["/v1/chain/get_info"] = map[string]any{
		"code":    500,
		"message": "Internal Service Error",
		"error": map[string]any{
			"code": 3050003,
			"name": "eosio_assert_message_exception",
			"what": "eosio_assert_message assertion failure",
		},
	}
	c, _ := newTestClient(t, chain)

	_, err := c.GetInfo(context.Background())
	require.True(t, IsAPIError(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 500, apiErr.Code)
	require.Equal(t, "eosio_assert_message_exception", apiErr.Detail.Name)
	require.Contains(t, apiErr.Error(), "eosio_assert_message_exception")
}

func Test_NonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, srv.Client(), zerolog.Nop())
	_, err := c.GetInfo(context.Background())
	require.Error(t, err)
	require.False(t, IsAPIError(err))
}

func Test_IsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte("{}"))
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	c := NewClient(srv.URL, srv.Client(), zerolog.Nop())
	_, err := c.GetInfo(ctx)
	require.Error(t, err)
	require.True(t, IsTimeout(err))

	require.False(t, IsTimeout(context.Canceled))
	require.False(t, IsTimeout(nil))
}

func Test_EndpointTrimsTrailingSlash(t *testing.T) {
	c := NewClient("http://localhost:8888/", nil, zerolog.Nop())
	require.Equal(t, "http://localhost:8888", c.Endpoint())
}
