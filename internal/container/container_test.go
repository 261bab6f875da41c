package container

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/fintrack/internal/config"
	"fjacquet/fintrack/internal/importer"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/parsererror"
	"fjacquet/fintrack/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Data.Database = filepath.Join(t.TempDir(), "fintrack.db")
	return cfg
}

func TestNewContainer_NilConfig(t *testing.T) {
	_, err := NewContainer(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration cannot be nil")

	_, err = NewContainerWithLogger(nil, logging.NewMockLogger())
	assert.Error(t, err)
}

func TestNewContainer(t *testing.T) {
	cfg := testConfig(t)
	c, err := NewContainer(cfg)
	require.NoError(t, err)
	defer c.Close()

	assert.Same(t, cfg, c.GetConfig())
	assert.NotNil(t, c.GetLogger())
	assert.NotNil(t, c.GetStore())
	assert.NotNil(t, c.GetImporter())
	assert.Equal(t, []string{".csv", ".ofx", ".xml"}, c.GetParsers().Extensions())
	assert.FileExists(t, cfg.Data.Database)
}

func TestNewContainer_BadDatabasePath(t *testing.T) {
	cfg := testConfig(t)
	cfg.Data.Database = filepath.Join(t.TempDir(), "is-a-dir")
	require.NoError(t, os.Mkdir(cfg.Data.Database, 0750))

	_, err := NewContainerWithLogger(cfg, logging.NewMockLogger())
	assert.Error(t, err)
}

func TestContainer_ImportEndToEnd(t *testing.T) {
	ctx := context.Background()
	c, err := NewContainerWithLogger(testConfig(t), logging.NewMockLogger())
	require.NoError(t, err)
	defer c.Close()

	_, err = c.GetStore().Rules().Create(ctx, models.CategoryRule{
		Term: "uber", MatchType: models.MatchTypeContains, Category: "Transporte", AutoConfirm: true, Institution: "Nubank",
	})
	require.NoError(t, err)

	result, err := c.GetImporter().Import(ctx, importer.ImportRequest{
		FileName:    "fatura.csv",
		Content:     strings.NewReader("date,title,amount\n2024-03-15,Uber *Trip,23.50\n2024-03-16,Livraria,40.00\n"),
		Institution: models.InstitutionNubank,
		AccountType: models.AccountTypeCreditCard,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.AutoConfirmed)

	pending, err := c.GetStore().Transactions().List(ctx, store.ListFilter{PendingOnly: true})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Livraria", pending[0].Description)
	assert.Equal(t, "Nubank Cred", pending[0].Institution)

	_, err = c.GetImporter().ConfirmTransaction(ctx, pending[0].ID, "Educação", true)
	require.NoError(t, err)

	rules, err := c.GetStore().Rules().GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, rules, 2)
	assert.Equal(t, "Livraria", rules[1].Term)
}

func TestContainer_StrictMarkup(t *testing.T) {
	cfg := testConfig(t)
	cfg.Parsers.Markup.Strict = true
	c, err := NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	defer c.Close()

	_, err = c.GetImporter().Import(context.Background(), importer.ImportRequest{
		FileName: "extrato.ofx",
		Content:  strings.NewReader("<OFX><broken"),
	})
	assert.True(t, errors.Is(err, parsererror.ErrStructuralParse))
}

func TestContainer_Close(t *testing.T) {
	c, err := NewContainerWithLogger(testConfig(t), logging.NewMockLogger())
	require.NoError(t, err)
	assert.NoError(t, c.Close())
}
