// Package rules implements the category rule management commands
package rules

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/fintrack/cmd/common"
	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/models"

	"github.com/spf13/cobra"
)

var (
	matchType   string
	autoConfirm bool
	institution string
	ruleType    string
	outputFile  string
)

// Cmd groups the rule subcommands; on its own it lists the rules
var Cmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage category rules",
	Long: `Category rules are evaluated in creation order and the first match wins.
A rule matches when its term equals (exact) or is contained in (contains) the
description, ignoring case and accents, and its optional institution and type
filters agree with the transaction.`,
	RunE: runList,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the rules in evaluation order",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var addCmd = &cobra.Command{
	Use:   "add <term> <category>",
	Short: "Append a rule",
	Args:  cobra.ExactArgs(2),
	RunE:  runAdd,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <rule-id>",
	Short: "Delete a rule",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var exportCmd = &cobra.Command{
	Use:   "export [file.csv]",
	Short: "Write the rules as CSV",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Append the rules of a CSV file",
	Long: `Append the rules of a CSV file after the existing ones. The header
names the columns: term, match_type, category, auto_confirm, institution,
type. The file is imported entirely or not at all.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	addCmd.Flags().StringVarP(&matchType, "match", "m", string(models.MatchTypeContains), "exact or contains")
	addCmd.Flags().BoolVar(&autoConfirm, "auto-confirm", false, "Confirm matching transactions without review")
	addCmd.Flags().StringVar(&institution, "institution", "", "Only match transactions of this institution")
	addCmd.Flags().StringVar(&ruleType, "type", "", "Only match income or expense")
	exportCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default stdout)")

	Cmd.AddCommand(listCmd, addCmd, deleteCmd, exportCmd, importCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	appContainer, err := root.RequireContainer()
	if err != nil {
		return err
	}
	rules, err := appContainer.GetStore().Rules().GetAll(cmd.Context())
	if err != nil {
		return err
	}
	if len(rules) == 0 {
		common.Warning(cmd.OutOrStdout(), "No rules defined")
		return nil
	}
	common.PrintRules(cmd.OutOrStdout(), rules)
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	appContainer, err := root.RequireContainer()
	if err != nil {
		return err
	}

	rule := models.CategoryRule{
		Term:        args[0],
		MatchType:   models.MatchType(strings.ToLower(strings.TrimSpace(matchType))),
		Category:    args[1],
		AutoConfirm: autoConfirm,
		Institution: strings.TrimSpace(institution),
	}
	if strings.TrimSpace(ruleType) != "" {
		rule.Type, err = models.ParseTransactionType(ruleType)
		if err != nil {
			return err
		}
	}

	db := appContainer.GetStore()
	created, err := db.Rules().Create(cmd.Context(), rule)
	if err != nil {
		return err
	}
	if err := db.Categories().Create(cmd.Context(), created.Category); err != nil {
		return err
	}

	common.Success(cmd.OutOrStdout(), "Rule added")
	common.PrintRules(cmd.OutOrStdout(), []models.CategoryRule{created})
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	appContainer, err := root.RequireContainer()
	if err != nil {
		return err
	}
	if err := appContainer.GetStore().Rules().Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	common.Success(cmd.OutOrStdout(), "Rule %s deleted", args[0])
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	appContainer, err := root.RequireContainer()
	if err != nil {
		return err
	}

	target := outputFile
	if len(args) == 1 {
		target = args[0]
	}

	out := cmd.OutOrStdout()
	if target != "" {
		file, err := os.Create(target) // #nosec G304 -- CLI tool requires user-provided output paths
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if cerr := file.Close(); cerr != nil {
				root.Log.WithError(cerr).Warn("Failed to close output file")
			}
		}()
		out = file
	}

	return appContainer.GetStore().Rules().ExportRules(cmd.Context(), out)
}

func runImport(cmd *cobra.Command, args []string) error {
	appContainer, err := root.RequireContainer()
	if err != nil {
		return err
	}

	file, err := os.Open(args[0]) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			root.Log.WithError(cerr).Warn("Failed to close file")
		}
	}()

	created, err := appContainer.GetStore().Rules().ImportRules(cmd.Context(), file)
	if err != nil {
		return err
	}
	common.Success(cmd.OutOrStdout(), "Imported %d rules", len(created))
	return nil
}
