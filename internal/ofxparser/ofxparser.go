// Package ofxparser parses OFX and XML bank statements into candidate
// transactions. Tag names are accepted in upper or lower case at every level.
package ofxparser

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"fjacquet/fintrack/internal/currencyutils"
	"fjacquet/fintrack/internal/dateutils"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/parser"
	"fjacquet/fintrack/internal/parsererror"

	"golang.org/x/net/html/charset"
	"gopkg.in/xmlpath.v2"
)

// Name identifies this parser in logs and errors.
const Name = "ofx"

// Element paths from the document root down to the transaction records.
var (
	bankPath = []string{"OFX", "BANKMSGSRSV1", "STMTTRNRS", "STMTRS", "BANKTRANLIST", "STMTTRN"}
	cardPath = []string{"OFX", "CREDITCARDMSGSRSV1", "CCSTMTTRNRS", "CCSTMTRS", "BANKTRANLIST", "STMTTRN"}
)

// Fields of a transaction record.
const (
	fieldAmount = "TRNAMT"
	fieldPosted = "DTPOSTED"
	fieldMemo   = "MEMO"
	fieldName   = "NAME"
)

// Config tunes failure handling.
type Config struct {
	// Strict returns a StructuralParseError for unreadable documents instead
	// of an empty result.
	Strict bool
}

// Parser implements parser.Parser for OFX/XML statements.
type Parser struct {
	parser.BaseParser
	cfg   Config
	now   dateutils.Clock
	paths map[string][]*xmlpath.Path
}

// New creates a markup parser.
func New(cfg Config, logger logging.Logger) *Parser {
	p := &Parser{
		BaseParser: parser.NewBaseParser(Name, logger),
		cfg:        cfg,
		now:        dateutils.SystemClock,
		paths:      make(map[string][]*xmlpath.Path),
	}
	for _, names := range [][]string{bankPath, cardPath, {fieldAmount, fieldPosted, fieldMemo, fieldName}} {
		for _, name := range names {
			p.paths[name] = []*xmlpath.Path{
				xmlpath.MustCompile(name),
				xmlpath.MustCompile(strings.ToLower(name)),
			}
		}
	}
	return p
}

// WithClock replaces the clock used for records with a malformed date.
func (p *Parser) WithClock(now dateutils.Clock) *Parser {
	if now != nil {
		p.now = now
	}
	return p
}

// Parse returns the transactions of every usable record, in document order.
func (p *Parser) Parse(r io.Reader, opts parser.Options) ([]models.Transaction, error) {
	results, err := p.ParseRows(r, opts)
	if err != nil {
		return nil, err
	}
	return parser.Transactions(results), nil
}

// ParseRows returns one RowResult per transaction record. Bank statement
// records come before credit card statement records.
func (p *Parser) ParseRows(r io.Reader, opts parser.Options) ([]parser.RowResult, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read markup content: %w", err)
	}

	root, err := parseXML(content)
	if err != nil {
		return p.fallback(content, err, opts)
	}

	var results []parser.RowResult
	for _, path := range [][]string{bankPath, cardPath} {
		for _, record := range p.walk(root, path) {
			results = append(results, p.parseRecord(len(results)+1, record, opts))
		}
	}

	p.LogResults(results, opts)
	return results, nil
}

// fallback handles documents that are not well-formed XML. OFX 1.x files are
// SGML with unclosed leaf tags and are decoded with ofxgo instead.
func (p *Parser) fallback(content []byte, xmlErr error, opts parser.Options) ([]parser.RowResult, error) {
	cause := xmlErr
	if looksLikeOFX(content) {
		results, err := p.parseSGML(content, opts)
		if err == nil {
			p.LogResults(results, opts)
			return results, nil
		}
		cause = fmt.Errorf("%v; ofx decoder: %w", xmlErr, err)
	}

	if p.cfg.Strict {
		return nil, &parsererror.StructuralParseError{Parser: Name, Err: cause}
	}

	p.GetLogger().WithError(cause).Error("Failed to parse markup statement, returning no transactions")
	return nil, nil
}

// walk descends one element level at a time, accepting the upper and lower
// case spelling of each name. A missing level yields no records.
func (p *Parser) walk(root *xmlpath.Node, levels []string) []*xmlpath.Node {
	nodes := []*xmlpath.Node{root}
	for _, level := range levels {
		var next []*xmlpath.Node
		for _, node := range nodes {
			for _, path := range p.paths[level] {
				iter := path.Iter(node)
				for iter.Next() {
					next = append(next, iter.Node())
				}
			}
		}
		if len(next) == 0 {
			return nil
		}
		nodes = next
	}
	return nodes
}

// field returns the trimmed text of the first child element named name.
func (p *Parser) field(record *xmlpath.Node, name string) string {
	for _, path := range p.paths[name] {
		if v, ok := path.String(record); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

func (p *Parser) parseRecord(index int, record *xmlpath.Node, opts parser.Options) parser.RowResult {
	rec := rawRecord{
		amount:  p.field(record, fieldAmount),
		posted:  p.field(record, fieldPosted),
		memo:    p.field(record, fieldMemo),
		name:    p.field(record, fieldName),
		rawText: strings.TrimSpace(record.String()),
	}
	return p.buildRecord(index, rec, opts)
}

// rawRecord holds the text fields of one record, whatever decoder read it.
type rawRecord struct {
	amount  string
	posted  string
	memo    string
	name    string
	rawText string
}

func (p *Parser) buildRecord(index int, rec rawRecord, opts parser.Options) parser.RowResult {
	if rec.amount == "" {
		return parser.Skip(index, parser.SkipMissingAmount, rec.rawText)
	}
	signed, err := currencyutils.ParseAmount(rec.amount)
	if err != nil {
		return parser.Skip(index, parser.SkipInvalidAmount, rec.rawText)
	}
	if signed.IsZero() {
		return parser.Skip(index, parser.SkipZeroAmount, rec.rawText)
	}

	description := rec.memo
	if description == "" {
		description = rec.name
	}
	if description == "" {
		return parser.Skip(index, parser.SkipMissingDescription, rec.rawText)
	}

	txType := models.TransactionTypeExpense
	if signed.IsPositive() {
		txType = models.TransactionTypeIncome
	}

	tx, err := models.NewTransactionBuilder().
		WithDate(dateutils.ParseOFXDate(rec.posted, p.now)).
		WithDescription(description).
		WithAmount(signed).
		WithType(txType).
		WithSource(models.SourceOFX).
		WithStatementInstitution(opts.Institution, opts.AccountType).
		WithOriginalAmount(rec.amount).
		Build()
	if err != nil {
		return parser.Skip(index, parser.SkipMalformedRecord, rec.rawText)
	}
	return parser.Ok(index, tx)
}

// parseXML builds the node tree. Declared encodings other than UTF-8, such as
// the ISO-8859-1 used by several Brazilian banks, are decoded on the fly.
func parseXML(content []byte) (*xmlpath.Node, error) {
	d := xml.NewDecoder(bytes.NewReader(content))
	d.CharsetReader = charset.NewReaderLabel
	return xmlpath.ParseDecoder(d)
}

func looksLikeOFX(content []byte) bool {
	head := content
	if len(head) > 4096 {
		head = head[:4096]
	}
	upper := bytes.ToUpper(head)
	return bytes.Contains(upper, []byte("OFXHEADER")) || bytes.Contains(upper, []byte("<OFX>"))
}
