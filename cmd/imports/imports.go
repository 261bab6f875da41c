// Package imports implements the import command
package imports

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/fintrack/cmd/common"
	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/batch"
	"fjacquet/fintrack/internal/container"
	"fjacquet/fintrack/internal/importer"
	"fjacquet/fintrack/internal/models"

	"github.com/spf13/cobra"
)

var (
	institution string
	accountType string
	dryRun      bool
)

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import <file|directory>...",
	Short: "Import CSV or OFX statements",
	Long: `Import one or more bank statements. A directory argument imports every
supported file it contains, in name order. Each file is imported on its own:
a failing file does not prevent the others from being stored.

Example:
  fintrack import fatura.csv --institution nubank --account-type credit_card
  fintrack import statements/ --dry-run`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	Cmd.Flags().StringVar(&institution, "institution", "", "Institution of the statements (default from import.default_institution)")
	Cmd.Flags().StringVar(&accountType, "account-type", "", "checking or credit_card (default from import.default_account_type)")
	Cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and categorize without storing")
}

func runImport(cmd *cobra.Command, args []string) error {
	appContainer, err := root.RequireContainer()
	if err != nil {
		return err
	}

	template, err := requestTemplate(appContainer)
	if err != nil {
		return err
	}

	files, err := expandArgs(args, appContainer.GetParsers().Extensions())
	if err != nil {
		return err
	}
	if len(files) == 0 {
		common.Warning(cmd.OutOrStdout(), "No supported statements found")
		return nil
	}

	failed := 0
	for _, path := range files {
		if err := importFile(cmd, appContainer, path, template); err != nil {
			common.Error(cmd.ErrOrStderr(), "%s: %v", filepath.Base(path), err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to import", failed, len(files))
	}
	return nil
}

// requestTemplate resolves the institution and account type shared by every
// file of the run.
func requestTemplate(appContainer *container.Container) (importer.ImportRequest, error) {
	cfg := appContainer.GetConfig()
	req := importer.ImportRequest{
		Institution: cfg.DefaultInstitution(),
		AccountType: cfg.DefaultAccountType(),
		DryRun:      dryRun,
	}
	if strings.TrimSpace(institution) != "" {
		req.Institution = models.ParseInstitution(institution)
	}
	if strings.TrimSpace(accountType) != "" {
		parsed, err := models.ParseAccountType(accountType)
		if err != nil {
			return importer.ImportRequest{}, err
		}
		req.AccountType = parsed
	}
	return req, nil
}

// expandArgs replaces directory arguments with the supported files they
// contain. File arguments are kept as given so unsupported formats are
// reported by the importer.
func expandArgs(args []string, extensions []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		found, err := batch.CollectFiles(arg, extensions)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

func importFile(cmd *cobra.Command, appContainer *container.Container, path string, req importer.ImportRequest) error {
	file, err := os.Open(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			root.Log.WithError(cerr).Warn("Failed to close file")
		}
	}()

	req.FileName = filepath.Base(path)
	req.Content = file

	result, err := appContainer.GetImporter().Import(cmd.Context(), req)
	if err != nil {
		return err
	}
	common.PrintImportResult(cmd.OutOrStdout(), result)
	return nil
}
