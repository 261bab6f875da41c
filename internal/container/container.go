// Package container provides dependency injection for the fintrack application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"

	"fjacquet/fintrack/internal/config"
	"fjacquet/fintrack/internal/csvparser"
	"fjacquet/fintrack/internal/importer"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/ofxparser"
	"fjacquet/fintrack/internal/parser"
	"fjacquet/fintrack/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation: all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger   logging.Logger
	config   *config.Config
	store    *store.Store
	parsers  *parser.Registry
	importer *importer.Importer
}

// NewContainer creates and wires all application dependencies. The database
// named by cfg.Data.Database is opened and must be released with Close.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, config.ConfigureLoggingFromConfig(cfg))
}

// NewContainerWithLogger is NewContainer with an explicit logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = config.ConfigureLoggingFromConfig(cfg)
	}

	db, err := store.Open(context.Background(), cfg.Data.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	registry := parser.NewRegistry()
	registry.Register(csvparser.New(csvparser.Config{
		Delimiter:       cfg.CSV.Delimiter,
		HeaderScanLines: cfg.CSV.HeaderScanLines,
	}, logger), ".csv")
	registry.Register(ofxparser.New(ofxparser.Config{
		Strict: cfg.Parsers.Markup.Strict,
	}, logger), ".ofx", ".xml")

	imp := importer.New(registry, db.Transactions(), db.Rules(), db.Categories(), logger)

	logger.Debug("Container initialized successfully",
		logging.F("extensions", registry.Extensions()),
		logging.F(logging.FieldFile, cfg.Data.Database))

	return &Container{
		logger:   logger,
		config:   cfg,
		store:    db,
		parsers:  registry,
		importer: imp,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the database.
func (c *Container) GetStore() *store.Store {
	return c.store
}

// GetParsers returns the parser registry.
func (c *Container) GetParsers() *parser.Registry {
	return c.parsers
}

// GetImporter returns the import orchestrator.
func (c *Container) GetImporter() *importer.Importer {
	return c.importer
}

// Close releases the database.
func (c *Container) Close() error {
	if err := c.store.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	c.logger.Debug("Container closed")
	return nil
}
