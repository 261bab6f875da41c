// Package transactions implements the commands that edit and remove stored transactions
package transactions

import (
	"errors"
	"fmt"
	"strings"

	"fjacquet/fintrack/cmd/common"
	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/store"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	date        string
	description string
	amount      string
	txType      string
	category    string
	institution string
	notes       string
	pending     bool
	yes         bool
)

// Cmd groups the transaction commands
var Cmd = &cobra.Command{
	Use:     "transactions",
	Aliases: []string{"tx"},
	Short:   "List, edit and delete stored transactions",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every stored transaction, newest first",
	RunE:  runList,
}

var editCmd = &cobra.Command{
	Use:   "edit <transaction-id>",
	Short: "Change fields of a stored transaction",
	Long: `Change fields of a stored transaction. Only the flags given are applied.

Example:
  fintrack transactions edit 3f2a... --category Mercado --pending=false
  fintrack transactions edit 3f2a... --amount 41.90 --type expense`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <transaction-id>",
	Short: "Delete one transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every transaction, keeping rules and categories",
	RunE:  runClear,
}

func init() {
	registerEditFlags(editCmd)
	clearCmd.Flags().BoolVar(&yes, "yes", false, "Confirm deleting every transaction")
	Cmd.AddCommand(listCmd, editCmd, deleteCmd, clearCmd)
}

func registerEditFlags(c *cobra.Command) {
	c.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD)")
	c.Flags().StringVar(&description, "description", "", "Description")
	c.Flags().StringVar(&amount, "amount", "", "Amount, always stored positive")
	c.Flags().StringVar(&txType, "type", "", "income or expense")
	c.Flags().StringVarP(&category, "category", "c", "", "Category")
	c.Flags().StringVar(&institution, "institution", "", "Institution label")
	c.Flags().StringVar(&notes, "notes", "", "Notes")
	c.Flags().BoolVar(&pending, "pending", false, "Pending review flag")
}

// patchFromFlags builds a patch from the flags set on the command line.
func patchFromFlags(c *cobra.Command) (models.TransactionPatch, error) {
	var patch models.TransactionPatch
	flags := c.Flags()

	text := func(name, value string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v := strings.TrimSpace(value)
		return &v
	}
	patch.Date = text("date", date)
	patch.Description = text("description", description)
	patch.Category = text("category", category)
	patch.Institution = text("institution", institution)
	patch.Notes = text("notes", notes)

	if flags.Changed("amount") {
		value, err := decimal.NewFromString(strings.TrimSpace(amount))
		if err != nil {
			return patch, fmt.Errorf("invalid amount %q", amount)
		}
		value = value.Abs()
		patch.Amount = &value
	}
	if flags.Changed("type") {
		parsed, err := models.ParseTransactionType(txType)
		if err != nil {
			return patch, err
		}
		patch.Type = &parsed
	}
	if flags.Changed("pending") {
		value := pending
		patch.IsPending = &value
	}
	return patch, nil
}

func runList(cmd *cobra.Command, args []string) error {
	appContainer, err := root.RequireContainer()
	if err != nil {
		return err
	}

	txs, err := appContainer.GetStore().Transactions().List(cmd.Context(), store.ListFilter{})
	if err != nil {
		return err
	}
	common.PrintTransactions(cmd.OutOrStdout(), txs)
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	appContainer, err := root.RequireContainer()
	if err != nil {
		return err
	}

	patch, err := patchFromFlags(cmd)
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		return errors.New("nothing to update: pass at least one field flag")
	}

	tx, err := appContainer.GetStore().Transactions().Update(cmd.Context(), args[0], patch)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	common.Success(out, "Transaction updated")
	common.PrintTransactions(out, []models.Transaction{tx})
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	appContainer, err := root.RequireContainer()
	if err != nil {
		return err
	}

	if err := appContainer.GetStore().Transactions().Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	common.Success(cmd.OutOrStdout(), "Transaction %s deleted", args[0])
	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	if !yes {
		return errors.New("refusing to delete every transaction without --yes")
	}
	appContainer, err := root.RequireContainer()
	if err != nil {
		return err
	}

	n, err := appContainer.GetStore().Transactions().DeleteAll(cmd.Context())
	if err != nil {
		return err
	}
	common.Warning(cmd.OutOrStdout(), "%d transactions deleted", n)
	return nil
}
