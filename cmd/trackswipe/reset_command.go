package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/trackswipe/sqlitestore"
)

func newResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear every review verdict",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(store *sqlitestore.Store) error {
				if err := store.ResetReviews(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "All tracks are available for review again.")
				return nil
			})
		},
	}
}
