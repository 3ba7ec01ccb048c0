package logging

// Standardized field names for structured logging.
// These constants keep log output consistent across the pipeline so that
// entries can be filtered by chain, organization, or report reference.
const (
	FieldFile         = "file_path"
	FieldChain        = "chain"
	FieldQuery        = "query"
	FieldOrganization = "organization"
	FieldStrategy     = "strategy"
	FieldScore        = "score"
	FieldThreshold    = "threshold"
	FieldCount        = "count"
	FieldReason       = "reason"
	FieldReport       = "report"
	FieldStartDate    = "start_date"
	FieldEndDate      = "end_date"
	FieldDuration     = "duration_ms"
	FieldError        = "error"
)
