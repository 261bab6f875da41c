// Package categories implements the category vocabulary commands
package categories

import (
	"fmt"
	"strings"

	"fjacquet/fintrack/cmd/common"
	"fjacquet/fintrack/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd lists the categories
var Cmd = &cobra.Command{
	Use:   "categories",
	Short: "List or add categories",
	RunE:  runList,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the categories",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

func init() {
	Cmd.AddCommand(listCmd, addCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	appContainer, err := root.RequireContainer()
	if err != nil {
		return err
	}
	names, err := appContainer.GetStore().Categories().GetAll(cmd.Context())
	if err != nil {
		return err
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
			return err
		}
	}
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	appContainer, err := root.RequireContainer()
	if err != nil {
		return err
	}
	name := strings.TrimSpace(args[0])
	if name == "" {
		return fmt.Errorf("category name must not be empty")
	}
	if err := appContainer.GetStore().Categories().Create(cmd.Context(), name); err != nil {
		return err
	}
	common.Success(cmd.OutOrStdout(), "Category %s added", name)
	return nil
}
