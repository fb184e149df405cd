package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relormdb/relorm/organizer"
	"github.com/relormdb/relorm/query"
	"github.com/relormdb/relorm/relation"
	"github.com/relormdb/relorm/sqlbuilder"
)

// newDDLCommand returns the `ddl` subcommand: prints CREATE TABLE for
// the named configured root, §SPEC_FULL ambient CLI description.
func newDDLCommand(configPath *string) *cobra.Command {
	var tableNumber uint32

	cmd := &cobra.Command{
		Use:   "ddl",
		Short: "Print CREATE TABLE for a configured root table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := loadRegistry(*configPath)
			if err != nil {
				return err
			}

			org := organizer.New(reg)
			table := relation.NewPathNumber(tableNumber)

			sql, err := buildSQL(org, query.CreateTable(table))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sql)
			return nil
		},
	}

	cmd.Flags().Uint32Var(&tableNumber, "table", 1, "table number to generate CREATE TABLE for")
	return cmd
}

// buildSQL runs the CORE's organize-then-build pipeline the same way
// every sqlbuilder-facing caller does: query.Clause -> builderir.Clause
// -> SQL text.
func buildSQL(org *organizer.Organizer, c query.Clause) (string, error) {
	ir, err := org.TransformClause(c)
	if err != nil {
		return "", err
	}
	return sqlbuilder.Build(ir)
}
