package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldUserID      = "user_id"
	FieldUsername    = "username"
	FieldAccountID   = "account_id"
	FieldAccountName = "account_name"
	FieldTxID        = "tx_id"
	FieldTxType      = "tx_type"
	FieldMonth       = "month"
	FieldAmount      = "amount"
	FieldOpening     = "opening"
	FieldAdmin       = "admin"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentAuth    = "auth"
	ComponentAccount = "account"
	ComponentLedger  = "ledger"
	ComponentBalance = "balance"
	ComponentSummary = "summary"
	ComponentStorage = "storage"
	ComponentCache   = "cache"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpLogin    = "login"
	OpRegister = "register"
	OpExport   = "export"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
