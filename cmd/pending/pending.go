// Package pending implements the review commands for uncategorized transactions
package pending

import (
	"fjacquet/fintrack/cmd/common"
	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/store"

	"github.com/spf13/cobra"
)

var (
	category   string
	createRule bool
	showAll    bool
)

// Cmd lists the transactions waiting for review
var Cmd = &cobra.Command{
	Use:   "pending",
	Short: "List transactions waiting for review",
	RunE:  runList,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions waiting for review",
	RunE:  runList,
}

// ConfirmCmd confirms one pending transaction
var ConfirmCmd = &cobra.Command{
	Use:   "confirm <transaction-id>",
	Short: "Confirm the category of a pending transaction",
	Long: `Confirm the category of a pending transaction. With --create-rule an
exact-match, auto-confirming rule is appended for its description, so the
same description is categorized automatically on the next import.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfirm,
}

func init() {
	Cmd.Flags().BoolVar(&showAll, "all", false, "List every transaction, not only pending ones")
	listCmd.Flags().BoolVar(&showAll, "all", false, "List every transaction, not only pending ones")
	ConfirmCmd.Flags().StringVarP(&category, "category", "c", "", "Category to assign")
	ConfirmCmd.Flags().BoolVar(&createRule, "create-rule", false, "Learn a rule from this confirmation")
	_ = ConfirmCmd.MarkFlagRequired("category")
	Cmd.AddCommand(listCmd, ConfirmCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	appContainer, err := root.RequireContainer()
	if err != nil {
		return err
	}
	repo := appContainer.GetStore().Transactions()

	txs, err := repo.List(cmd.Context(), store.ListFilter{PendingOnly: !showAll})
	if err != nil {
		return err
	}
	summary, err := repo.Summary(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	common.PrintTransactions(out, txs)
	if summary.Pending == 0 {
		common.Success(out, "Nothing to review (%d transactions)", summary.Total)
	} else {
		common.Warning(out, "%d of %d transactions pending review", summary.Pending, summary.Total)
	}
	return nil
}

func runConfirm(cmd *cobra.Command, args []string) error {
	appContainer, err := root.RequireContainer()
	if err != nil {
		return err
	}

	tx, err := appContainer.GetImporter().ConfirmTransaction(cmd.Context(), args[0], category, createRule)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	common.Success(out, "Confirmed as %s", tx.Category)
	common.PrintTransactions(out, []models.Transaction{tx})
	if createRule {
		common.Success(out, "Rule created for %q", tx.Description)
	}
	return nil
}
