package ofxparser

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"fjacquet/fintrack/internal/dateutils"
	"fjacquet/fintrack/internal/parser"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"
	"golang.org/x/net/html/charset"
)

// sgmlCharsets maps OFX 1.x CHARSET header values to encoding labels.
var sgmlCharsets = map[string]string{
	"1252":       "windows-1252",
	"ISO-8859-1": "iso-8859-1",
	"8859-1":     "iso-8859-1",
	"NONE":       "windows-1252",
}

// parseSGML decodes an OFX 1.x document with ofxgo and maps its bank and
// credit card transactions through the same record rules as the XML walk.
func (p *Parser) parseSGML(content []byte, opts parser.Options) ([]parser.RowResult, error) {
	content, err := toUTF8(content)
	if err != nil {
		return nil, err
	}

	resp, err := ofxgo.ParseResponse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX response (%d bytes): %w", len(content), err)
	}

	var lists []*ofxgo.TransactionList
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			lists = append(lists, stmt.BankTranList)
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			lists = append(lists, stmt.BankTranList)
		}
	}

	var results []parser.RowResult
	for _, list := range lists {
		for _, txn := range list.Transactions {
			results = append(results, p.buildRecord(len(results)+1, sgmlRecord(txn), opts))
		}
	}
	return results, nil
}

func sgmlRecord(txn ofxgo.Transaction) rawRecord {
	rec := rawRecord{
		memo:    txn.Memo.String(),
		name:    txn.Name.String(),
		rawText: txn.FiTID.String(),
	}

	// NewFromFloat keeps the shortest decimal form of the double.
	if f, _ := txn.TrnAmt.Float64(); f != 0 {
		rec.amount = decimal.NewFromFloat(f).String()
	} else {
		rec.amount = "0"
	}

	if !txn.DtPosted.Time.IsZero() {
		rec.posted = txn.DtPosted.Time.Format(dateutils.DateLayoutOFX)
	}
	return rec
}

// toUTF8 transcodes an OFX 1.x document to UTF-8 according to its CHARSET
// header. ofxgo reads the body as UTF-8 whatever the header says. Content that
// is already valid UTF-8 is returned as is.
func toUTF8(content []byte) ([]byte, error) {
	if utf8.Valid(content) {
		return content, nil
	}

	label := sgmlCharsetLabel(content)
	enc, _ := charset.Lookup(label)
	if enc == nil {
		return content, nil
	}
	decoded, err := enc.NewDecoder().Bytes(content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s statement: %w", label, err)
	}
	return decoded, nil
}

// sgmlCharsetLabel reads the ENCODING and CHARSET header lines that precede
// the <OFX> element. A UTF-8 encoding wins over the charset.
func sgmlCharsetLabel(content []byte) string {
	var encoding, charsetName string
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "<") {
			break
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.ToUpper(strings.TrimSpace(value))
		switch strings.ToUpper(strings.TrimSpace(key)) {
		case "ENCODING":
			encoding = value
		case "CHARSET":
			charsetName = value
		}
	}

	if encoding == "UTF-8" || encoding == "UNICODE" {
		return "utf-8"
	}
	if label, ok := sgmlCharsets[charsetName]; ok {
		return label
	}
	if charsetName != "" {
		return strings.ToLower(charsetName)
	}
	return "windows-1252"
}
