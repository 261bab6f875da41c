// Package csvparser parses delimited bank statements (CSV exports of Nubank,
// Mercado Pago, Inter and similar) into candidate transactions.
package csvparser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"fjacquet/fintrack/internal/currencyutils"
	"fjacquet/fintrack/internal/dateutils"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/parser"
	"fjacquet/fintrack/internal/parsererror"
	"fjacquet/fintrack/internal/textutils"
)

// Name identifies this parser in logs and errors.
const Name = "csv"

// DelimiterAuto selects the delimiter from the header row.
const DelimiterAuto = "auto"

// DefaultHeaderScanLines is how many leading lines are searched for a header.
const DefaultHeaderScanLines = 20

const (
	nubankIncomingTransfer = "transferência recebida"
	nubankOutgoingTransfer = "transferência enviada"
)

var lineBreak = regexp.MustCompile(`\r\n|\n`)

// delimiterCandidates is the auto-detection order; on a tie the earlier wins.
var delimiterCandidates = []rune{',', ';', '\t', '|'}

// Config tunes header and delimiter detection.
type Config struct {
	// Delimiter is "auto" or a single character. "tab" and `\t` mean a tab.
	Delimiter string
	// HeaderScanLines bounds the header search. Zero means the default.
	HeaderScanLines int
}

// Parser implements parser.Parser for delimited text.
type Parser struct {
	parser.BaseParser
	cfg Config
	now dateutils.Clock
}

// New creates a delimited-text parser.
func New(cfg Config, logger logging.Logger) *Parser {
	if cfg.HeaderScanLines <= 0 {
		cfg.HeaderScanLines = DefaultHeaderScanLines
	}
	if cfg.Delimiter == "" {
		cfg.Delimiter = DelimiterAuto
	}
	return &Parser{
		BaseParser: parser.NewBaseParser(Name, logger),
		cfg:        cfg,
		now:        dateutils.SystemClock,
	}
}

// WithClock replaces the clock used for rows whose date cannot be parsed.
func (p *Parser) WithClock(now dateutils.Clock) *Parser {
	if now != nil {
		p.now = now
	}
	return p
}

// Parse returns the transactions of every usable row, in file order.
func (p *Parser) Parse(r io.Reader, opts parser.Options) ([]models.Transaction, error) {
	results, err := p.ParseRows(r, opts)
	if err != nil {
		return nil, err
	}
	return parser.Transactions(results), nil
}

// ParseRows returns one RowResult per data row after the header.
func (p *Parser) ParseRows(r io.Reader, opts parser.Options) ([]parser.RowResult, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV content: %w", err)
	}

	text := strings.TrimPrefix(string(content), "\ufeff")
	lines := lineBreak.Split(text, -1)
	headerAt := detectHeader(lines, p.cfg.HeaderScanLines)
	if headerAt < 0 {
		headerAt = 0
	}

	delimiter := p.delimiter(lines[headerAt])
	p.GetLogger().Debug("Header detected",
		logging.F(logging.FieldLine, headerAt+1),
		logging.F(logging.FieldDelimiter, string(delimiter)))

	reader := csv.NewReader(strings.NewReader(strings.Join(lines[headerAt:], "\n")))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, &parsererror.StructuralParseError{Parser: Name, Err: err}
	}
	columns := newColumnIndex(header)

	var results []parser.RowResult
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		var csvErr *csv.ParseError
		if errors.As(err, &csvErr) {
			results = append(results, parser.Skip(headerAt+csvErr.StartLine, parser.SkipMalformedRecord, csvErr.Error()))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		line, _ := reader.FieldPos(0)
		raw := strings.Join(record, string(delimiter))
		results = append(results, p.parseRecord(headerAt+line, columns, record, raw, opts))
	}

	p.LogResults(results, opts)
	return results, nil
}

// parseRecord maps one record to a transaction or a skip reason.
func (p *Parser) parseRecord(line int, columns columnIndex, record []string, raw string, opts parser.Options) parser.RowResult {
	dateRaw := columns.lookup(record, dateColumns)
	if dateRaw == "" {
		return parser.Skip(line, parser.SkipMissingDate, raw)
	}
	amountRaw := columns.lookup(record, amountColumns)
	if amountRaw == "" {
		return parser.Skip(line, parser.SkipMissingAmount, raw)
	}

	description := composeDescription(columns, record, opts.Institution)
	if description == "" {
		return parser.Skip(line, parser.SkipMissingDescription, raw)
	}

	signed, err := currencyutils.ParseAmount(amountRaw)
	if err != nil {
		return parser.Skip(line, parser.SkipInvalidAmount, raw)
	}
	if signed.IsZero() {
		return parser.Skip(line, parser.SkipZeroAmount, raw)
	}

	tx, err := models.NewTransactionBuilder().
		WithDate(dateutils.NormalizeDate(dateRaw, p.now)).
		WithDescription(description).
		WithAmount(signed).
		WithType(deriveType(signed.IsNegative(), description, opts)).
		WithSource(models.SourceCSV).
		WithStatementInstitution(opts.Institution, opts.AccountType).
		WithOriginalAmount(amountRaw).
		Build()
	if err != nil {
		return parser.Skip(line, parser.SkipMalformedRecord, raw)
	}

	return parser.Ok(line, tx)
}

// composeDescription resolves the description, the Inter history prefix and
// the reference fallback. It returns "" when the row has none of them.
func composeDescription(columns columnIndex, record []string, institution models.Institution) string {
	description := columns.lookup(record, descriptionColumns)

	if institution == models.InstitutionInter {
		if history := columns.lookup(record, historyColumns); history != "" {
			if description != "" {
				description = history + " - " + description
			} else {
				description = history
			}
		}
	}

	if description == "" {
		if ref := columns.lookup(record, referenceColumns); ref != "" {
			description = "Ref: " + ref
		}
	}

	return textutils.CollapseSpaces(description)
}

// deriveType applies the account sign convention, then the Nubank transfer
// override.
func deriveType(negative bool, description string, opts parser.Options) models.TransactionType {
	txType := models.TransactionTypeIncome
	switch opts.AccountType {
	case models.AccountTypeCreditCard:
		// Card statements list purchases as positive values; negatives are refunds.
		txType = models.TransactionTypeExpense
		if negative {
			txType = models.TransactionTypeIncome
		}
	default:
		if negative {
			txType = models.TransactionTypeExpense
		}
	}

	if opts.Institution == models.InstitutionNubank {
		lower := strings.ToLower(description)
		switch {
		case strings.Contains(lower, nubankIncomingTransfer):
			txType = models.TransactionTypeIncome
		case strings.Contains(lower, nubankOutgoingTransfer):
			txType = models.TransactionTypeExpense
		}
	}

	return txType
}

// detectHeader returns the index of the first of the leading maxLines lines
// containing a header token, or -1.
func detectHeader(lines []string, maxLines int) int {
	limit := len(lines)
	if maxLines < limit {
		limit = maxLines
	}
	for i := 0; i < limit; i++ {
		lower := strings.ToLower(lines[i])
		for _, token := range headerTokens {
			if strings.Contains(lower, token) {
				return i
			}
		}
	}
	return -1
}

func (p *Parser) delimiter(headerLine string) rune {
	switch strings.ToLower(p.cfg.Delimiter) {
	case DelimiterAuto:
		return detectDelimiter(headerLine)
	case "tab", `\t`:
		return '\t'
	}
	return []rune(p.cfg.Delimiter)[0]
}

// detectDelimiter counts the candidates outside quoted sections of line.
func detectDelimiter(line string) rune {
	counts := make(map[rune]int, len(delimiterCandidates))
	quoted := false
	for _, r := range line {
		if r == '"' {
			quoted = !quoted
			continue
		}
		if !quoted {
			counts[r]++
		}
	}

	best := delimiterCandidates[0]
	for _, c := range delimiterCandidates[1:] {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return best
}
