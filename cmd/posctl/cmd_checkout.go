package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/rl1809/storefront/internal/core/domain"
)

func (c *cli) checkoutCmd() *cobra.Command {
	var method string

	cmd := &cobra.Command{
		Use:   "checkout --method <wechat|alipay|card|cash>",
		Short: "Record the cart as a transaction and empty it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tx, err := c.storefront.Checkout(cmd.Context(), domain.PaymentMethod(method))
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), tx, func(t table.Writer) {
				transactionTable(t, tx)
			})
		},
	}

	names := make([]string, len(domain.PaymentMethods))
	for i, m := range domain.PaymentMethods {
		names[i] = string(m)
	}
	cmd.Flags().StringVar(&method, "method", "", "payment method: "+strings.Join(names, ", "))
	_ = cmd.MarkFlagRequired("method")
	return cmd
}

func transactionTable(t table.Writer, tx domain.Transaction) {
	t.SetTitle(fmt.Sprintf("Transaction %s  %s  %s", tx.ID, tx.CreatedAt.Format("2006-01-02 15:04"), tx.PaymentMethod))
	t.AppendHeader(table.Row{"Item", "Qty", "Price", "Subtotal"})
	for _, line := range tx.Items {
		t.AppendRow(table.Row{line.Name, line.Quantity, line.Price.StringFixed(2), line.Subtotal().StringFixed(2)})
	}
	t.AppendFooter(table.Row{"Total", "", "", tx.Total.StringFixed(2)})
	if tx.Note != "" {
		t.SetCaption(tx.Note)
	}
	t.SetColumnConfigs(rightAligned(2, 3, 4))
}
