package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relormdb/relorm/organizer"
	"github.com/relormdb/relorm/query"
	"github.com/relormdb/relorm/relation"
)

// newQueryCommand returns the `query` subcommand: builds a canned
// SELECT id, name FROM <table> WHERE id > <min-id> and prints the
// emitted SQL, demonstrating the organizer/builder path end to end.
func newQueryCommand(configPath *string) *cobra.Command {
	var tableNumber uint32
	var minID int32

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Build and print a canned SELECT against a configured root table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := loadRegistry(*configPath)
			if err != nil {
				return err
			}

			org := organizer.New(reg)
			table := relation.NewPathNumber(tableNumber)
			idPath := table.JoinNumber(1)
			namePath := table.JoinNumber(2)

			sel := query.Select(table, query.Col(idPath), query.Col(namePath)).
				WithWhere(query.Col(idPath).Gt(query.Val(minID)))

			sql, err := buildSQL(org, sel)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sql)
			return nil
		},
	}

	cmd.Flags().Uint32Var(&tableNumber, "table", 1, "table number to query")
	cmd.Flags().Int32Var(&minID, "min-id", 0, "lower bound for the id column")
	return cmd
}
