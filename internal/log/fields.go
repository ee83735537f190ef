package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldTripID      = "trip_id"
	FieldExpenseID   = "expense_id"
	FieldParticipant = "participant_id"
	FieldLabel       = "expense_label"
	FieldAmount      = "amount"
	FieldCurrency    = "currency"
	FieldSplitType   = "split_type"
	FieldBalanceSum  = "balance_sum"
)

// Components defines standard component names
const (
	ComponentApp    = "app"
	ComponentHTTP   = "http"
	ComponentWorker = "worker"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpDelete   = "delete"
	OpSnapshot = "snapshot"
	OpExport   = "export"
)
