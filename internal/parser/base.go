package parser

import (
	"fjacquet/fintrack/internal/logging"
)

// BaseParser holds what every parser implementation shares. Parsers embed it:
//
//	type Parser struct {
//		parser.BaseParser
//		// parser-specific fields
//	}
type BaseParser struct {
	name   string
	logger logging.Logger
}

// NewBaseParser creates a BaseParser. A nil logger is replaced by a default
// logrus logger at info level.
func NewBaseParser(name string, logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return BaseParser{name: name, logger: logger.WithField(logging.FieldParser, name)}
}

// Name returns the parser identifier.
func (b *BaseParser) Name() string {
	return b.name
}

// SetLogger replaces the logger.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger.WithField(logging.FieldParser, b.name)
	}
}

// GetLogger returns the current logger.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}

// LogResults logs one debug entry per skipped row and an info summary.
func (b *BaseParser) LogResults(results []RowResult, opts Options) {
	skipped := 0
	for _, r := range results {
		if !r.Skipped {
			continue
		}
		skipped++
		b.logger.Debug("Row skipped",
			logging.F(logging.FieldLine, r.Line),
			logging.F(logging.FieldReason, string(r.Reason)))
	}

	b.logger.Info("Statement parsed",
		logging.F(logging.FieldCount, len(results)-skipped),
		logging.F(logging.FieldSkipped, skipped),
		logging.F(logging.FieldInstitution, string(opts.Institution)),
		logging.F(logging.FieldAccountType, string(opts.AccountType)))
}
