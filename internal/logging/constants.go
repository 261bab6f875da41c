package logging

// Field names shared by every log entry of the import pipeline.
const (
	FieldFile          = "file_path"
	FieldParser        = "parser"
	FieldTransactionID = "transaction_id"
	FieldCategory      = "category"
	FieldReason        = "reason"
	FieldOperation     = "operation"
	FieldError         = "error"
	FieldCount         = "count"
	FieldSkipped       = "skipped"
	FieldPending       = "pending"
	FieldDelimiter     = "delimiter"
	FieldInstitution   = "institution"
	FieldAccountType   = "account_type"
	FieldLine          = "line"
	FieldRuleID        = "rule_id"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldStatus        = "status"
	FieldDescription   = "description"
	FieldAutoConfirmed = "auto_confirmed"
)
