package main

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var errNotConfirmed = errors.New("refusing to delete without --yes")

func (c *cli) transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "Browse and delete recorded transactions",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List transactions in recorded order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			txs := c.storefront.Transactions()
			return c.render(cmd.OutOrStdout(), txs, func(t table.Writer) {
				t.AppendHeader(table.Row{"ID", "Date", "Method", "Items", "Total"})
				for _, tx := range txs {
					units := 0
					for _, line := range tx.Items {
						units += line.Quantity
					}
					t.AppendRow(table.Row{tx.ID, tx.CreatedAt.Format("2006-01-02 15:04"), tx.PaymentMethod, units, tx.Total.StringFixed(2)})
				}
				t.SetColumnConfigs(rightAligned(4, 5))
			})
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one transaction with its receipt note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, err := c.storefront.Transaction(args[0])
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), tx, func(t table.Writer) {
				transactionTable(t, tx)
			})
		},
	}

	var yes bool
	del := &cobra.Command{
		Use:   "delete <id> --yes",
		Short: "Permanently delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errNotConfirmed
			}
			if err := c.storefront.DeleteTransaction(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted transaction %s\n", args[0])
			return nil
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the deletion, it cannot be undone")

	cmd.AddCommand(list, show, del)
	return cmd
}
