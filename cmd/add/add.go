// Package add implements the manual transaction entry command
package add

import (
	"strings"
	"time"

	"fjacquet/fintrack/cmd/common"
	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/models"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	date        string
	description string
	amount      string
	txType      string
	institution string
	category    string
	notes       string

	// now is replaced in tests
	now = time.Now
)

// Cmd represents the add command
var Cmd = &cobra.Command{
	Use:   "add",
	Short: "Add a transaction by hand",
	Long: `Add a single transaction. The rules run on it like on imported
transactions; without an auto-confirming rule it waits in the pending queue.

Example:
  fintrack add --description "Feira" --amount 35.90 --type expense --category Mercado`,
	RunE: runAdd,
}

func init() {
	Cmd.Flags().StringVar(&date, "date", "", "Date as YYYY-MM-DD (default today)")
	Cmd.Flags().StringVarP(&description, "description", "d", "", "Description")
	Cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount, sign ignored")
	Cmd.Flags().StringVarP(&txType, "type", "t", string(models.TransactionTypeExpense), "income or expense")
	Cmd.Flags().StringVar(&institution, "institution", "", "Institution label")
	Cmd.Flags().StringVarP(&category, "category", "c", "", "Category")
	Cmd.Flags().StringVar(&notes, "notes", "", "Free text notes")
	_ = Cmd.MarkFlagRequired("description")
	_ = Cmd.MarkFlagRequired("amount")
}

func runAdd(cmd *cobra.Command, args []string) error {
	appContainer, err := root.RequireContainer()
	if err != nil {
		return err
	}

	value, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return err
	}
	parsedType, err := models.ParseTransactionType(txType)
	if err != nil {
		return err
	}
	txDate := strings.TrimSpace(date)
	if txDate == "" {
		txDate = now().Format(models.ISODateLayout)
	}

	tx, err := appContainer.GetImporter().AddTransaction(cmd.Context(), models.Transaction{
		Date:        txDate,
		Description: strings.TrimSpace(description),
		Amount:      value.Abs(),
		Type:        parsedType,
		Institution: strings.TrimSpace(institution),
		Category:    strings.TrimSpace(category),
		Notes:       notes,
	})
	if err != nil {
		return err
	}

	common.Success(cmd.OutOrStdout(), "Transaction added")
	common.PrintTransactions(cmd.OutOrStdout(), []models.Transaction{tx})
	return nil
}
