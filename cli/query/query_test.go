package query_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nspcc-dev/near-go/cli/query"
	"github.com/nspcc-dev/near-go/internal/testcli"
	"github.com/nspcc-dev/near-go/pkg/util"
	"github.com/stretchr/testify/require"
)

const (
	hashA  = "EdqM52SpXCn5c1uozuvuH5o9Tcr41kYeCWz4Ymu6ngbt"
	hashB  = "5Ba2vn7EcuaYvrhJBtUPZu8BYGFwNKjJwG8xFYskpme4"
	hashC  = "48UTVdfmJax7bRvUZK4PwPYFmRz4PPU4PzJez1e26baD"
	pubKey = "ed25519:DcA2MzgpJbrUATQLLceocVckhhAqrkingax4oJ9kZ847"

	statusResult = `{"chain_id":"testnet","protocol_version":63,"latest_protocol_version":64,` +
		`"validators":[{"account_id":"node0","is_slashed":false}],` +
		`"sync_info":{"latest_block_hash":"` + hashA + `","latest_block_height":100,` +
		`"latest_block_time":"2023-01-01T00:00:00.000Z","syncing":false},` +
		`"version":{"version":"1.35.0","build":"crates-0.17.0"},"genesis_hash":"` + hashC + `"}`
	networkResult = `{"active_peers":[{"id":"ed25519:peer","addr":"1.2.3.4:24567","account_id":null}],` +
		`"num_active_peers":1,"peer_max_count":40,"sent_bytes_per_sec":100,"received_bytes_per_sec":200,"known_producers":[]}`
	blockResult = `{"author":"node0","header":{"height":42,"epoch_id":"` + hashA + `","prev_hash":"` + hashB +
		`","hash":"` + hashC + `","timestamp":1700000000000000000,"gas_price":"100000000"},` +
		`"chunks":[{"chunk_hash":"` + hashC + `","shard_id":0,"gas_used":10,"gas_limit":1000000000000000}]}`
	accountResult = `{"amount":"1500000000000000000000000","locked":"0","code_hash":"11111111111111111111111111111111",` +
		`"storage_usage":182,"storage_paid_at":0,"block_height":17,"block_hash":"` + hashA + `"}`
)

func TestFormatNEAR(t *testing.T) {
	testCases := map[util.U128]string{
		"0":                          "0",
		"":                           "0",
		"1":                          "0.000000000000000000000001",
		"1000000000000000000000000":  "1",
		"1500000000000000000000000":  "1.5",
		"12345678900000000000000000": "12.3456789",
	}
	for amount, expected := range testCases {
		actual, err := query.FormatNEAR(amount)
		require.NoError(t, err, amount)
		require.Equal(t, expected, actual, amount)
	}
	_, err := query.FormatNEAR("-1")
	require.Error(t, err)
}

func TestQueryStatus(t *testing.T) {
	e := testcli.NewExecutor(t)
	e.Node.SetResult("status", statusResult)
	e.Node.SetResult("network_info", networkResult)
	e.Node.SetResult("health", "null")

	e.Run(t, "near-go", "query", "status", "-r", e.Endpoint())
	e.CheckNextLine(t, `^ChainID:\s+testnet$`)
	e.CheckNextLine(t, `^Version:\s+1\.35\.0 \(crates-0\.17\.0\)$`)
	e.CheckNextLine(t, `^Protocol:\s+63 \(latest 64\)$`)
	e.CheckNextLine(t, `^LatestBlock:\s+100 `+hashA+`$`)
	e.CheckNextLine(t, `^LatestBlockTime:\s+2023-01-01T00:00:00.000Z$`)
	e.CheckNextLine(t, `^Syncing:\s+false$`)
	e.CheckNextLine(t, `^Validators:\s+1$`)
	e.CheckNextLine(t, `^Peers:\s+1/40$`)
	e.CheckNextLine(t, `^Healthy:\s+true$`)
	e.CheckEOF(t)

	for _, m := range []string{"status", "network_info", "health"} {
		c := e.Node.LastCall(t, m)
		require.Equal(t, "/", c.Path)
		require.JSONEq(t, `[]`, string(c.Params))
	}

	t.Run("unhealthy", func(t *testing.T) {
		e.Node.SetError("health", -32000, "Server error", `"NoNewBlocks"`)
		e.Run(t, "near-go", "query", "status", "-r", e.Endpoint())
		for i := 0; i < 8; i++ {
			e.GetNextLine(t)
		}
		e.CheckNextLine(t, `^Healthy:\s+false \(.*Server error.*\)$`)
	})

	t.Run("json", func(t *testing.T) {
		e.Node.SetResult("health", "null")
		e.Run(t, "near-go", "query", "status", "--json", "-r", e.Endpoint())
		require.Contains(t, e.Out.String(), `"chain_id": "testnet"`)
		require.Contains(t, e.Out.String(), `"healthy": true`)
	})

	t.Run("failure", func(t *testing.T) {
		e.Node.SetError("status", -32000, "Server error", "")
		e.RunWithError(t, "near-go", "query", "status", "-r", e.Endpoint())
	})
}

func TestQueryHeaders(t *testing.T) {
	e := testcli.NewExecutor(t)
	e.Node.SetResult("gas_price", `{"gas_price":"100000000"}`)

	e.Run(t, "near-go", "query", "gas-price", "-r", e.Endpoint(),
		"-H", "X-Api-Key: secret", "-H", "User-Agent: tester")
	e.CheckNextLine(t, `^100000000$`)
	e.CheckEOF(t)

	c := e.Node.LastCall(t, "gas_price")
	require.JSONEq(t, `[null]`, string(c.Params))
	require.Equal(t, "secret", c.Header.Get("X-Api-Key"))
	require.Equal(t, "tester", c.Header.Get("User-Agent"))
	require.Equal(t, "application/json", c.Header.Get("Content-Type"))

	e.Run(t, "near-go", "query", "gas-price", "-r", e.Endpoint(), "17")
	require.JSONEq(t, `[17]`, string(e.Node.LastCall(t, "gas_price").Params))

	e.RunWithError(t, "near-go", "query", "gas-price", "-r", e.Endpoint(), "-H", "broken")
}

func TestQueryBlock(t *testing.T) {
	e := testcli.NewExecutor(t)
	e.Node.SetResult("block", blockResult)

	e.Run(t, "near-go", "query", "block", "-r", e.Endpoint())
	e.CheckNextLine(t, `^Height:\s+42$`)
	e.CheckNextLine(t, `^Hash:\s+`+hashC+`$`)
	e.CheckNextLine(t, `^PrevHash:\s+`+hashB+`$`)
	e.CheckNextLine(t, `^Author:\s+node0$`)
	e.CheckNextLine(t, `^EpochID:\s+`+hashA+`$`)
	e.CheckNextLine(t, `^Timestamp:\s+1700000000000000000$`)
	e.CheckNextLine(t, `^GasPrice:\s+100000000$`)
	e.CheckNextLine(t, `^Chunks:\s+1$`)
	e.CheckEOF(t)
	require.JSONEq(t, `{"finality":"final"}`, string(e.Node.LastCall(t, "block").Params))

	e.Run(t, "near-go", "query", "block", "-r", e.Endpoint(), "--block", "42")
	require.JSONEq(t, `{"block_id":42}`, string(e.Node.LastCall(t, "block").Params))

	e.Run(t, "near-go", "query", "block", "-r", e.Endpoint(), "--block", "genesis", "--json")
	require.JSONEq(t, `{"sync_checkpoint":"genesis"}`, string(e.Node.LastCall(t, "block").Params))
	require.Contains(t, e.Out.String(), `"height": 42`)

	e.RunWithError(t, "near-go", "query", "block", "-r", e.Endpoint(), "--block", "latest")
}

func TestQueryChunk(t *testing.T) {
	e := testcli.NewExecutor(t)
	e.Node.SetResult("chunk", `{"author":"node0","header":{"chunk_hash":"`+hashC+`","shard_id":1},"transactions":[],"receipts":[]}`)

	e.Run(t, "near-go", "query", "chunk", "-r", e.Endpoint(), hashC)
	require.JSONEq(t, `{"chunk_id":"`+hashC+`"}`, string(e.Node.LastCall(t, "chunk").Params))
	require.Contains(t, e.Out.String(), `"author": "node0"`)

	e.Run(t, "near-go", "query", "chunk", "-r", e.Endpoint(), "--block", hashA, "--shard", "1")
	require.JSONEq(t, `{"block_id":"`+hashA+`","shard_id":1}`, string(e.Node.LastCall(t, "chunk").Params))

	e.RunWithError(t, "near-go", "query", "chunk", "-r", e.Endpoint())
	e.RunWithError(t, "near-go", "query", "chunk", "-r", e.Endpoint(), "--block", "final")
	e.RunWithError(t, "near-go", "query", "chunk", "-r", e.Endpoint(), "--block", "1", hashC)
}

func TestQueryValidators(t *testing.T) {
	e := testcli.NewExecutor(t)
	e.Node.SetResult("validators", `{"current_validators":[],"epoch_start_height":1}`)
	e.Node.SetResult("EXPERIMENTAL_validators_ordered", `[{"account_id":"node0","public_key":"`+pubKey+`","stake":"1"}]`)

	e.Run(t, "near-go", "query", "validators", "-r", e.Endpoint())
	require.JSONEq(t, `[null]`, string(e.Node.LastCall(t, "validators").Params))

	e.Run(t, "near-go", "query", "validators", "-r", e.Endpoint(), "--epoch", hashA)
	require.JSONEq(t, `{"epoch_id":"`+hashA+`"}`, string(e.Node.LastCall(t, "validators").Params))

	e.Run(t, "near-go", "query", "validators", "-r", e.Endpoint(), "--block", "10")
	require.JSONEq(t, `{"block_id":10}`, string(e.Node.LastCall(t, "validators").Params))

	e.Run(t, "near-go", "query", "validators", "-r", e.Endpoint(), "--ordered")
	require.JSONEq(t, `[null]`, string(e.Node.LastCall(t, "EXPERIMENTAL_validators_ordered").Params))
	require.Contains(t, e.Out.String(), `"account_id": "node0"`)

	e.RunWithError(t, "near-go", "query", "validators", "-r", e.Endpoint(), "--epoch", hashA, "--block", "10")
	e.RunWithError(t, "near-go", "query", "validators", "-r", e.Endpoint(), "--block", "final")
	e.RunWithError(t, "near-go", "query", "validators", "-r", e.Endpoint(), "--epoch", "zzz")
}

func TestQueryAccount(t *testing.T) {
	e := testcli.NewExecutor(t)
	e.Node.SetResult("query", accountResult)

	e.Run(t, "near-go", "query", "account", "-r", e.Endpoint(), "alice.near")
	e.CheckNextLine(t, `^Account:\s+alice\.near$`)
	e.CheckNextLine(t, `^Amount:\s+1\.5 NEAR$`)
	e.CheckNextLine(t, `^Locked:\s+0 NEAR$`)
	e.CheckNextLine(t, `^CodeHash:\s+11111111111111111111111111111111$`)
	e.CheckNextLine(t, `^StorageUsage:\s+182$`)
	e.CheckNextLine(t, `^Block:\s+17 `+hashA+`$`)
	e.CheckEOF(t)
	require.JSONEq(t, `{"request_type":"view_account","account_id":"alice.near","finality":"optimistic"}`,
		string(e.Node.LastCall(t, "query").Params))

	e.Run(t, "near-go", "query", "account", "-r", e.Endpoint(), "--block", hashB, "alice.near")
	require.JSONEq(t, `{"request_type":"view_account","account_id":"alice.near","block_id":"`+hashB+`"}`,
		string(e.Node.LastCall(t, "query").Params))

	e.RunWithError(t, "near-go", "query", "account", "-r", e.Endpoint())
	e.RunWithError(t, "near-go", "query", "account", "-r", e.Endpoint(), "Alice")

	t.Run("unknown account", func(t *testing.T) {
		e.Node.SetError("query", -32000, "Server error", `"account nobody.near does not exist while viewing"`)
		err := e.RunWithError(t, "near-go", "query", "account", "-r", e.Endpoint(), "nobody.near")
		require.Contains(t, err.Error(), "does not exist")
	})
}

func TestQueryKeys(t *testing.T) {
	e := testcli.NewExecutor(t)
	e.Node.SetResult("query", `{"keys":[`+
		`{"public_key":"`+pubKey+`","access_key":{"nonce":1,"permission":"FullAccess"}},`+
		`{"public_key":"ed25519:other","access_key":{"nonce":85,"permission":{"FunctionCall":`+
		`{"allowance":"250000000000000000000000","receiver_id":"app.near","method_names":["a","b"]}}}}`+
		`],"block_height":1,"block_hash":"`+hashA+`"}`)

	e.Run(t, "near-go", "query", "keys", "-r", e.Endpoint(), "alice.near")
	e.CheckNextLine(t, `^`+pubKey+`:\s+FullAccess, nonce 1$`)
	e.CheckNextLine(t, `^ed25519:other:\s+FunctionCall app\.near \[a,b\], allowance 0\.25 NEAR, nonce 85$`)
	e.CheckEOF(t)
	require.JSONEq(t, `{"request_type":"view_access_key_list","account_id":"alice.near","finality":"optimistic"}`,
		string(e.Node.LastCall(t, "query").Params))

	e.Node.SetResult("query", `{"nonce":5,"permission":"FullAccess","block_height":1,"block_hash":"`+hashA+`"}`)
	e.Run(t, "near-go", "query", "keys", "-r", e.Endpoint(), "alice.near", pubKey)
	require.JSONEq(t, `{"request_type":"view_access_key","account_id":"alice.near","public_key":"`+pubKey+`","finality":"optimistic"}`,
		string(e.Node.LastCall(t, "query").Params))
	require.Contains(t, e.Out.String(), `"nonce": 5`)
}

func TestQueryCode(t *testing.T) {
	e := testcli.NewExecutor(t)
	e.Node.SetResult("query", `{"code_base64":"AGFzbQ==","hash":"`+hashB+`","block_height":1,"block_hash":"`+hashA+`"}`)

	out := filepath.Join(t.TempDir(), "contract.wasm")
	e.Run(t, "near-go", "query", "code", "-r", e.Endpoint(), "--out", out, "app.near")
	e.CheckNextLine(t, `^Hash:\s+`+hashB+`$`)
	e.CheckNextLine(t, `^Size:\s+4$`)
	e.CheckNextLine(t, `^Block:\s+1 `+hashA+`$`)
	e.CheckEOF(t)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, []byte("\x00asm"), data)
	require.JSONEq(t, `{"request_type":"view_code","account_id":"app.near","finality":"optimistic"}`,
		string(e.Node.LastCall(t, "query").Params))
}

func TestQueryState(t *testing.T) {
	e := testcli.NewExecutor(t)
	e.Node.SetResult("query", `{"values":[{"key":"U1RBVEU=","value":"AQ==","proof":[]}],"proof":[],"block_height":1,"block_hash":"`+hashA+`"}`)

	e.Run(t, "near-go", "query", "state", "-r", e.Endpoint(), "--prefix", "U1RB", "--proof", "app.near")
	require.JSONEq(t, `{"request_type":"view_state","account_id":"app.near","prefix_base64":"U1RB","include_proof":true,"finality":"optimistic"}`,
		string(e.Node.LastCall(t, "query").Params))
	require.Contains(t, e.Out.String(), `"key": "U1RBVEU="`)

	e.RunWithError(t, "near-go", "query", "state", "-r", e.Endpoint(), "--prefix", "%%%", "app.near")
}

func TestQueryCall(t *testing.T) {
	e := testcli.NewExecutor(t)
	e.Node.SetResult("query", `{"result":[52,50],"logs":["called"],"block_height":1,"block_hash":"`+hashA+`"}`)

	e.Run(t, "near-go", "query", "call", "-r", e.Endpoint(), "app.near", "get_answer", `{"q":1}`)
	e.CheckNextLine(t, `^Log: called$`)
	e.CheckNextLine(t, `^42$`)
	e.CheckEOF(t)
	require.JSONEq(t, `{"request_type":"call_function","account_id":"app.near","method_name":"get_answer","args_base64":"eyJxIjoxfQ==","finality":"optimistic"}`,
		string(e.Node.LastCall(t, "query").Params))

	e.Run(t, "near-go", "query", "call", "-r", e.Endpoint(), "app.near", "get_answer")
	require.JSONEq(t, `{"request_type":"call_function","account_id":"app.near","method_name":"get_answer","args_base64":"e30=","finality":"optimistic"}`,
		string(e.Node.LastCall(t, "query").Params))

	e.RunWithError(t, "near-go", "query", "call", "-r", e.Endpoint(), "app.near")

	e.Node.SetResult("query", `{"result":[],"logs":[],"error":"wasm execution failed with error: MethodNotFound","block_height":1,"block_hash":"`+hashA+`"}`)
	err := e.RunWithError(t, "near-go", "query", "call", "-r", e.Endpoint(), "app.near", "nope")
	require.Contains(t, err.Error(), "MethodNotFound")
}

func TestQueryChanges(t *testing.T) {
	e := testcli.NewExecutor(t)
	e.Node.SetResult("EXPERIMENTAL_changes_in_block", `{"block_hash":"`+hashA+`","changes":[{"type":"account_touched","account_id":"alice.near"}]}`)
	e.Node.SetResult("changes", `{"block_hash":"`+hashA+`","changes":[]}`)

	e.Run(t, "near-go", "query", "changes", "-r", e.Endpoint())
	require.JSONEq(t, `{"finality":"final"}`, string(e.Node.LastCall(t, "EXPERIMENTAL_changes_in_block").Params))
	require.Contains(t, e.Out.String(), `"account_touched"`)

	e.Run(t, "near-go", "query", "changes", "-r", e.Endpoint(), "account", "alice.near", "bob.near")
	require.JSONEq(t, `{"changes_type":"account_changes","account_ids":["alice.near","bob.near"],"finality":"optimistic"}`,
		string(e.Node.LastCall(t, "changes").Params))

	e.Run(t, "near-go", "query", "changes", "-r", e.Endpoint(), "--block", "5", "keys", "alice.near")
	require.JSONEq(t, `{"changes_type":"all_access_key_changes","account_ids":["alice.near"],"block_id":5}`,
		string(e.Node.LastCall(t, "changes").Params))

	e.Run(t, "near-go", "query", "changes", "-r", e.Endpoint(), "--prefix", "U1RB", "data", "app.near")
	require.JSONEq(t, `{"changes_type":"data_changes","account_ids":["app.near"],"key_prefix_base64":"U1RB","finality":"optimistic"}`,
		string(e.Node.LastCall(t, "changes").Params))

	e.RunWithError(t, "near-go", "query", "changes", "-r", e.Endpoint(), "account")
	e.RunWithError(t, "near-go", "query", "changes", "-r", e.Endpoint(), "stuff", "alice.near")
}

func TestQueryTx(t *testing.T) {
	e := testcli.NewExecutor(t)
	e.Node.SetResult("tx", `{"final_execution_status":"FINAL","status":{"SuccessValue":"dHJ1ZQ=="},`+
		`"transaction":{"signer_id":"alice.near","public_key":"`+pubKey+`","nonce":1,"receiver_id":"bob.near","actions":[],"signature":"ed25519:sig","hash":"`+hashA+`"},`+
		`"transaction_outcome":{"id":"`+hashA+`","block_hash":"`+hashB+`","outcome":{"logs":[],"receipt_ids":[],"gas_burnt":223182562500,"tokens_burnt":"0","executor_id":"alice.near","status":{"SuccessReceiptId":"`+hashC+`"}},"proof":[]},`+
		`"receipts_outcome":[]}`)
	e.Node.SetResult("EXPERIMENTAL_tx_status", `{"final_execution_status":"NONE","status":null}`)

	e.Run(t, "near-go", "query", "tx", "-r", e.Endpoint(), "--wait", "final", hashA, "alice.near")
	e.CheckNextLine(t, `^Hash:\s+`+hashA+`$`)
	e.CheckNextLine(t, `^Stage:\s+FINAL$`)
	e.CheckNextLine(t, `^Status:\s+SuccessValue$`)
	e.CheckNextLine(t, `^Value:\s+dHJ1ZQ==$`)
	e.CheckNextLine(t, `^Signer:\s+alice\.near$`)
	e.CheckNextLine(t, `^Receiver:\s+bob\.near$`)
	e.CheckNextLine(t, `^BlockHash:\s+`+hashB+`$`)
	e.CheckNextLine(t, `^GasBurnt:\s+223182562500$`)
	e.CheckNextLine(t, `^Receipts:\s+0$`)
	e.CheckEOF(t)
	require.JSONEq(t, `{"tx_hash":"`+hashA+`","sender_account_id":"alice.near","wait_until":"FINAL"}`,
		string(e.Node.LastCall(t, "tx").Params))

	e.Run(t, "near-go", "query", "tx", "-r", e.Endpoint(), "--receipts", hashA, "alice.near")
	e.CheckNextLine(t, `^Hash:\s+`+hashA+`$`)
	e.CheckNextLine(t, `^Stage:\s+NONE$`)
	e.CheckNextLine(t, `^Status:\s+pending$`)
	require.JSONEq(t, `{"tx_hash":"`+hashA+`","sender_account_id":"alice.near"}`,
		string(e.Node.LastCall(t, "EXPERIMENTAL_tx_status").Params))

	e.RunWithError(t, "near-go", "query", "tx", "-r", e.Endpoint(), hashA)
	e.RunWithError(t, "near-go", "query", "tx", "-r", e.Endpoint(), "--wait", "someday", hashA, "alice.near")
}

func TestQueryMisc(t *testing.T) {
	e := testcli.NewExecutor(t)
	e.Node.SetResult("EXPERIMENTAL_receipt", `{"predecessor_id":"alice.near","receiver_id":"bob.near","receipt_id":"`+hashC+`","receipt":{"Action":{"actions":["CreateAccount"]}}}`)
	e.Node.SetResult("EXPERIMENTAL_genesis_config", `{"chain_id":"testnet","protocol_version":29,"epoch_length":43200}`)
	e.Node.SetResult("EXPERIMENTAL_protocol_config", `{"chain_id":"testnet","protocol_version":63}`)
	e.Node.SetResult("next_light_client_block", `{}`)

	e.Run(t, "near-go", "query", "receipt", "-r", e.Endpoint(), hashC)
	require.JSONEq(t, `{"receipt_id":"`+hashC+`"}`, string(e.Node.LastCall(t, "EXPERIMENTAL_receipt").Params))
	require.Contains(t, e.Out.String(), `"predecessor_id": "alice.near"`)

	e.Run(t, "near-go", "query", "genesis", "-r", e.Endpoint())
	require.Contains(t, e.Out.String(), `"epoch_length": 43200`)

	e.Run(t, "near-go", "query", "protocol-config", "-r", e.Endpoint())
	require.JSONEq(t, `{"finality":"final"}`, string(e.Node.LastCall(t, "EXPERIMENTAL_protocol_config").Params))

	e.Run(t, "near-go", "query", "next-light-client-block", "-r", e.Endpoint(), hashA)
	require.JSONEq(t, `["`+hashA+`"]`, string(e.Node.LastCall(t, "next_light_client_block").Params))
	e.CheckNextLine(t, `^No newer block$`)

	e.RunWithError(t, "near-go", "query", "receipt", "-r", e.Endpoint())
	e.RunWithError(t, "near-go", "query", "light-client-proof", "-r", e.Endpoint(), "block", hashA, "alice.near", hashB)
}

func TestQueryLightClientProof(t *testing.T) {
	e := testcli.NewExecutor(t)
	e.Node.SetResult("EXPERIMENTAL_light_client_proof", `{"outcome_proof":{"id":"`+hashA+`","block_hash":"`+hashB+`",`+
		`"outcome":{"executor_id":"alice.near","status":{"SuccessValue":""}},"proof":[]},"outcome_root_proof":[],`+
		`"block_header_lite":{"prev_block_hash":"`+hashC+`","inner_rest_hash":"`+hashB+`","inner_lite":{"height":10,"epoch_id":"`+hashA+`","timestamp":1}},"block_proof":[]}`)

	e.Run(t, "near-go", "query", "light-client-proof", "-r", e.Endpoint(), "transaction", hashA, "alice.near", hashC)
	require.JSONEq(t, `{"type":"transaction","transaction_hash":"`+hashA+`","sender_id":"alice.near","light_client_head":"`+hashC+`"}`,
		string(e.Node.LastCall(t, "EXPERIMENTAL_light_client_proof").Params))

	e.Run(t, "near-go", "query", "light-client-proof", "-r", e.Endpoint(), "receipt", hashB, "bob.near", hashC)
	require.JSONEq(t, `{"type":"receipt","receipt_id":"`+hashB+`","receiver_id":"bob.near","light_client_head":"`+hashC+`"}`,
		string(e.Node.LastCall(t, "EXPERIMENTAL_light_client_proof").Params))
}

func TestQueryRaw(t *testing.T) {
	e := testcli.NewExecutor(t)
	e.Node.SetResult("block", `{"z":1,"a":{"y":12345678901234567890,"b":[true,"x"]}}`)

	e.Run(t, "near-go", "query", "raw", "-r", e.Endpoint(), "block", `{"finality":"final"}`)
	require.JSONEq(t, `{"finality":"final"}`, string(e.Node.LastCall(t, "block").Params))
	e.CheckNextLine(t, `^\{$`)
	e.CheckNextLine(t, `^  "z": 1,$`)
	e.CheckNextLine(t, `^  "a": {$`)
	e.CheckNextLine(t, `^    "y": 12345678901234567890,$`)

	e.Run(t, "near-go", "query", "raw", "-r", e.Endpoint(), "--path", "a.b.1", "block")
	require.JSONEq(t, `[]`, string(e.Node.LastCall(t, "block").Params))
	e.CheckNextLine(t, `^"x"$`)
	e.CheckEOF(t)

	for _, p := range []string{"a.c", "a.b.2", "z.q", "a.b.x"} {
		e.RunWithError(t, "near-go", "query", "raw", "-r", e.Endpoint(), "--path", p, "block")
	}
	e.RunWithError(t, "near-go", "query", "raw", "-r", e.Endpoint(), "block", "{broken")
	e.RunWithError(t, "near-go", "query", "raw", "-r", e.Endpoint())
	e.RunWithError(t, "near-go", "query", "raw", "-r", e.Endpoint(), "unknown_method")
}
