package main

import (
	"os"

	"fjacquet/fintrack/cmd/add"
	"fjacquet/fintrack/cmd/categories"
	"fjacquet/fintrack/cmd/common"
	"fjacquet/fintrack/cmd/imports"
	"fjacquet/fintrack/cmd/pending"
	"fjacquet/fintrack/cmd/report"
	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/cmd/rules"
	"fjacquet/fintrack/cmd/serve"
	"fjacquet/fintrack/cmd/transactions"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(imports.Cmd)
	root.Cmd.AddCommand(add.Cmd)
	root.Cmd.AddCommand(pending.Cmd)
	root.Cmd.AddCommand(transactions.Cmd)
	root.Cmd.AddCommand(rules.Cmd)
	root.Cmd.AddCommand(categories.Cmd)
	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

func main() {
	root.Cmd.SilenceErrors = true
	if err := root.Cmd.Execute(); err != nil {
		common.Error(os.Stderr, "%v", err)
		os.Exit(1)
	}
}
