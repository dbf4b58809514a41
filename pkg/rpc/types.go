package rpc

import "encoding/json"

// Info is the response of /v1/chain/get_info.
type Info struct {
	ServerVersion            string `json:"server_version"`
	ChainID                  string `json:"chain_id"`
	HeadBlockNum             uint32 `json:"head_block_num"`
	LastIrreversibleBlockNum uint32 `json:"last_irreversible_block_num"`
	HeadBlockID              string `json:"head_block_id"`
	HeadBlockTime            string `json:"head_block_time"`
	HeadBlockProducer        string `json:"head_block_producer"`
}

// Block is the response of /v1/chain/get_block. Transactions are kept
// raw; nothing in this module inspects them.
type Block struct {
	ID               string          `json:"id"`
	BlockNum         uint32          `json:"block_num"`
	Timestamp        string          `json:"timestamp"`
	Producer         string          `json:"producer"`
	Previous         string          `json:"previous"`
	TransactionMRoot string          `json:"transaction_mroot"`
	ActionMRoot      string          `json:"action_mroot"`
	RefBlockPrefix   uint32          `json:"ref_block_prefix"`
	Transactions     json.RawMessage `json:"transactions"`
}

// ABIResult is the response of /v1/chain/get_abi. The ABI body stays
// raw JSON so callers decide how deep to decode it.
type ABIResult struct {
	AccountName string          `json:"account_name"`
	ABI         json.RawMessage `json:"abi"`
}

// PermissionLevel identifies an actor@permission pair.
type PermissionLevel struct {
	Actor      string `json:"actor"`
	Permission string `json:"permission"`
}

type KeyWeight struct {
	Key    string `json:"key"`
	Weight uint16 `json:"weight"`
}

type PermissionLevelWeight struct {
	Permission PermissionLevel `json:"permission"`
	Weight     uint16          `json:"weight"`
}

// Authority is an account permission's key set plus delegated accounts.
type Authority struct {
	Threshold uint32                  `json:"threshold"`
	Keys      []KeyWeight             `json:"keys"`
	Accounts  []PermissionLevelWeight `json:"accounts"`
}

type Permission struct {
	PermName     string    `json:"perm_name"`
	Parent       string    `json:"parent"`
	RequiredAuth Authority `json:"required_auth"`
}

// Account is the response of /v1/chain/get_account, trimmed to the
// fields this module reads.
type Account struct {
	AccountName       string       `json:"account_name"`
	Created           string       `json:"created"`
	CoreLiquidBalance string       `json:"core_liquid_balance"`
	RAMQuota          int64        `json:"ram_quota"`
	Permissions       []Permission `json:"permissions"`
}

// TableRowsRequest is the request body of /v1/chain/get_table_rows.
// Bounds are strings on the wire; empty means unbounded on that side.
type TableRowsRequest struct {
	Code          string `json:"code"`
	Scope         string `json:"scope"`
	Table         string `json:"table"`
	LowerBound    string `json:"lower_bound,omitempty"`
	UpperBound    string `json:"upper_bound,omitempty"`
	Limit         int32  `json:"limit,omitempty"`
	IndexPosition int32  `json:"index_position,omitempty"`
	KeyType       string `json:"key_type,omitempty"`
	JSON          bool   `json:"json"`
}

// TableRows is a bounded slice of an ordered table. More reports
// truncation: rows beyond the returned ones exist inside the bounds.
type TableRows struct {
	Rows []json.RawMessage `json:"rows"`
	More bool              `json:"more"`
}

// Action is one entry of an account's action log. AccountActionSeq is
// the monotonic per-account sequence number the scanners key on.
type Action struct {
	GlobalActionSeq  int64           `json:"global_action_seq"`
	AccountActionSeq int64           `json:"account_action_seq"`
	BlockNum         uint32          `json:"block_num"`
	BlockTime        string          `json:"block_time"`
	ActionTrace      json.RawMessage `json:"action_trace"`
}

// Actions is the response of /v1/history/get_actions.
type Actions struct {
	Actions               []Action `json:"actions"`
	LastIrreversibleBlock uint32   `json:"last_irreversible_block"`
}

// PushResult is the response of /v1/chain/push_transaction.
type PushResult struct {
	TransactionID string          `json:"transaction_id"`
	Processed     json.RawMessage `json:"processed"`
}
