package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldExpenseID   = "expense_id"
	FieldAmount      = "amount"
	FieldCurrency    = "currency"
	FieldCategory    = "category"
	FieldDate        = "date"
	FieldFilterDate  = "filter_date"
	FieldSlotKey     = "slot_key"
	FieldSlotBackend = "slot_backend"
	FieldModel       = "model"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentStore   = "store"
	ComponentSlot    = "slot"
	ComponentAdvisor = "advisor"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpDelete   = "delete"
	OpList     = "list"
	OpLoad     = "load"
	OpPersist  = "persist"
	OpAnalyze  = "analyze"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
