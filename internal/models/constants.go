package models

import (
	"fmt"
	"strings"

	"fjacquet/fintrack/internal/textutils"
)

// TransactionType is the direction of a transaction.
type TransactionType string

// Transaction types
const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// ParseTransactionType accepts the English names and the Portuguese labels
// used on statements ("entrada", "saída").
func ParseTransactionType(s string) (TransactionType, error) {
	switch textutils.Normalize(strings.TrimSpace(s)) {
	case "income", "entrada", "credit":
		return TransactionTypeIncome, nil
	case "expense", "saida", "debit":
		return TransactionTypeExpense, nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// Valid reports whether t is one of the known types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Label returns the label shown to users.
func (t TransactionType) Label() string {
	switch t {
	case TransactionTypeIncome:
		return "Entrada"
	case TransactionTypeExpense:
		return "Saída"
	}
	return string(t)
}

// Source records where a transaction came from.
type Source string

// Transaction sources
const (
	SourceManual Source = "manual"
	SourceCSV    Source = "csv"
	SourceOFX    Source = "ofx"
)

// Institution is the label of a supported bank.
type Institution string

// Known institutions
const (
	InstitutionNubank      Institution = "Nubank"
	InstitutionMercadoPago Institution = "Mercado Pago"
	InstitutionInter       Institution = "Inter"
	InstitutionOther       Institution = "Outros"
)

// Institutions lists the known institutions in display order.
var Institutions = []Institution{
	InstitutionNubank,
	InstitutionMercadoPago,
	InstitutionInter,
	InstitutionOther,
}

// ParseInstitution maps a user supplied name to a known institution. Matching
// ignores case, accents and spaces. Unknown names map to InstitutionOther.
func ParseInstitution(s string) Institution {
	key := strings.ReplaceAll(textutils.Normalize(s), " ", "")
	switch key {
	case "nubank", "nu":
		return InstitutionNubank
	case "mercadopago", "mp":
		return InstitutionMercadoPago
	case "inter", "bancointer":
		return InstitutionInter
	}
	return InstitutionOther
}

// AccountType selects the sign convention of a statement.
type AccountType string

// Account types
const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeCreditCard AccountType = "credit_card"
)

// ParseAccountType accepts the usual spellings of checking and credit card accounts.
func ParseAccountType(s string) (AccountType, error) {
	key := strings.NewReplacer("-", "", "_", "", " ", "").Replace(textutils.Normalize(s))
	switch key {
	case "checking", "debit", "conta", "contacorrente":
		return AccountTypeChecking, nil
	case "creditcard", "credit", "card", "cartao", "cartaodecredito":
		return AccountTypeCreditCard, nil
	}
	return "", fmt.Errorf("unknown account type %q", s)
}

// InstitutionLabel returns the label stored on transactions imported from a
// statement of the given institution and account type.
func InstitutionLabel(institution Institution, accountType AccountType) string {
	if accountType == AccountTypeCreditCard {
		return string(institution) + " Cred"
	}
	return string(institution)
}

// MatchType is the comparison mode of a rule term.
type MatchType string

// Match types
const (
	MatchTypeExact    MatchType = "exact"
	MatchTypeContains MatchType = "contains"
)

// Valid reports whether m is one of the known match types.
func (m MatchType) Valid() bool {
	return m == MatchTypeExact || m == MatchTypeContains
}

// ISODateLayout is the layout of Transaction.Date.
const ISODateLayout = "2006-01-02"

// NotesOriginalAmountPrefix prefixes the raw amount kept in Transaction.Notes.
const NotesOriginalAmountPrefix = "Original Amount: "

// File permissions
const (
	PermissionExportFile = 0644
	PermissionDirectory  = 0750
)
