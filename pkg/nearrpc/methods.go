package nearrpc

// Names of the JSON-RPC methods supported by NEAR nodes.
const (
	StatusMethod               = "status"
	HealthMethod               = "health"
	NetworkInfoMethod          = "network_info"
	GasPriceMethod             = "gas_price"
	BlockMethod                = "block"
	ChunkMethod                = "chunk"
	ValidatorsMethod           = "validators"
	ValidatorsOrderedMethod    = "EXPERIMENTAL_validators_ordered"
	QueryMethod                = "query"
	ChangesMethod              = "changes"
	ExperimentalChangesMethod  = "EXPERIMENTAL_changes"
	ChangesInBlockMethod       = "EXPERIMENTAL_changes_in_block"
	SendTxMethod               = "send_tx"
	BroadcastTxAsyncMethod     = "broadcast_tx_async"
	BroadcastTxCommitMethod    = "broadcast_tx_commit"
	TxMethod                   = "tx"
	ExperimentalTxStatusMethod = "EXPERIMENTAL_tx_status"
	ReceiptMethod              = "EXPERIMENTAL_receipt"
	GenesisConfigMethod        = "EXPERIMENTAL_genesis_config"
	ProtocolConfigMethod       = "EXPERIMENTAL_protocol_config"
	LightClientProofMethod     = "EXPERIMENTAL_light_client_proof"
	NextLightClientBlockMethod = "next_light_client_block"
)

// Query request types (the "request_type" field of query parameters).
const (
	ViewAccountRequest       = "view_account"
	ViewCodeRequest          = "view_code"
	ViewStateRequest         = "view_state"
	ViewAccessKeyRequest     = "view_access_key"
	ViewAccessKeyListRequest = "view_access_key_list"
	CallFunctionRequest      = "call_function"
)
