package models

import (
	"strings"
	"time"

	"fjacquet/fintrack/internal/parsererror"
)

// CategoryRule assigns Category to transactions whose description matches Term.
// Institution and Type are optional filters, an empty value matches anything.
type CategoryRule struct {
	ID          string          `json:"id,omitempty" csv:"id"`
	Term        string          `json:"term" csv:"term"`
	MatchType   MatchType       `json:"match_type" csv:"match_type"`
	Category    string          `json:"category" csv:"category"`
	AutoConfirm bool            `json:"auto_confirm" csv:"auto_confirm"`
	Institution string          `json:"institution,omitempty" csv:"institution"`
	Type        TransactionType `json:"type,omitempty" csv:"type"`
	CreatedAt   time.Time       `json:"created_at,omitempty" csv:"-"`
}

// Validate checks that the rule can be matched.
func (r CategoryRule) Validate() error {
	if strings.TrimSpace(r.Term) == "" {
		return &parsererror.ValidationError{Entity: "rule", Reason: "term is required"}
	}
	if strings.TrimSpace(r.Category) == "" {
		return &parsererror.ValidationError{Entity: "rule", Reason: "category is required"}
	}
	if !r.MatchType.Valid() {
		return &parsererror.ValidationError{Entity: "rule", Reason: "match type must be 'exact' or 'contains', got '" + string(r.MatchType) + "'"}
	}
	if r.Type != "" && !r.Type.Valid() {
		return &parsererror.ValidationError{Entity: "rule", Reason: "unknown type '" + string(r.Type) + "'"}
	}
	return nil
}
