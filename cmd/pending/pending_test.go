package pending

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/config"
	"fjacquet/fintrack/internal/container"
	"fjacquet/fintrack/internal/importer"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/store"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupContainer(t *testing.T) *container.Container {
	t.Helper()
	color.NoColor = true

	cfg := config.Default()
	cfg.Data.Database = filepath.Join(t.TempDir(), "fintrack.db")
	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)

	original := root.AppContainer
	root.AppContainer = c
	t.Cleanup(func() {
		_ = c.Close()
		root.AppContainer = original
		category, createRule, showAll = "", false, false
	})
	return c
}

func seed(t *testing.T, c *container.Container) importer.ImportResult {
	t.Helper()
	_, err := c.GetStore().Rules().Create(context.Background(), models.CategoryRule{
		Term: "uber", MatchType: models.MatchTypeContains, Category: "Transporte", AutoConfirm: true,
	})
	require.NoError(t, err)

	result, err := c.GetImporter().Import(context.Background(), importer.ImportRequest{
		FileName:    "extrato.csv",
		Content:     strings.NewReader("date,title,amount\n2024-03-15,Uber *Trip,-23.50\n2024-03-16,Padaria Real,-8.00\n"),
		Institution: models.InstitutionInter,
		AccountType: models.AccountTypeChecking,
	})
	require.NoError(t, err)
	return result
}

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	var out bytes.Buffer
	cmd.SetOut(&out)
	return cmd, &out
}

func TestCmd_Structure(t *testing.T) {
	assert.Equal(t, "pending", Cmd.Use)
	var names []string
	for _, sub := range Cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"list", "confirm"}, names)
	assert.NotNil(t, listCmd.Flags().Lookup("all"))
	assert.NotNil(t, ConfirmCmd.Flags().Lookup("create-rule"))
	assert.Error(t, ConfirmCmd.Args(ConfirmCmd, nil))
}

func TestRunList(t *testing.T) {
	c := setupContainer(t)
	seed(t, c)

	cmd, out := newTestCmd()
	require.NoError(t, runList(cmd, nil))

	assert.Contains(t, out.String(), "Padaria Real")
	assert.NotContains(t, out.String(), "Uber")
	assert.Contains(t, out.String(), "1 of 2 transactions pending review")

	showAll = true
	cmd, out = newTestCmd()
	require.NoError(t, runList(cmd, nil))
	assert.Contains(t, out.String(), "Uber")
}

func TestRunList_Empty(t *testing.T) {
	setupContainer(t)

	cmd, out := newTestCmd()
	require.NoError(t, runList(cmd, nil))
	assert.Contains(t, out.String(), "Nothing to review (0 transactions)")
}

func TestRunConfirm_CreatesRule(t *testing.T) {
	c := setupContainer(t)
	result := seed(t, c)
	var pendingID string
	for _, tx := range result.Transactions {
		if tx.IsPending {
			pendingID = tx.ID
		}
	}
	require.NotEmpty(t, pendingID)

	category = "Mercado"
	createRule = true
	cmd, out := newTestCmd()
	require.NoError(t, runConfirm(cmd, []string{pendingID}))
	assert.Contains(t, out.String(), "Confirmed as Mercado")
	assert.Contains(t, out.String(), `Rule created for "Padaria Real"`)

	rules, err := c.GetStore().Rules().GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "Padaria Real", rules[1].Term)

	summary, err := c.GetStore().Transactions().Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Pending)
}

func TestRunConfirm_UnknownID(t *testing.T) {
	setupContainer(t)
	category = "Lazer"

	cmd, _ := newTestCmd()
	err := runConfirm(cmd, []string{"missing"})
	assert.True(t, errors.Is(err, store.ErrNotFound))
}
