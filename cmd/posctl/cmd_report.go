package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/rl1809/storefront/internal/core/domain"
)

func (c *cli) reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Summarize sales from the transaction log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := c.storefront.Summary()
			return c.render(cmd.OutOrStdout(), s, func(t table.Writer) {
				t.SetTitle("Sales summary")
				t.AppendRow(table.Row{"Revenue", s.Revenue.StringFixed(2)})
				t.AppendRow(table.Row{"Orders", s.Orders})
				t.AppendRow(table.Row{"Average order", s.AverageOrder.StringFixed(2)})
				t.AppendSeparator()
				for _, cat := range domain.Categories {
					if v, ok := s.ByCategory[cat]; ok {
						t.AppendRow(table.Row{"Category " + string(cat), v.StringFixed(2)})
					}
				}
				t.AppendSeparator()
				for _, m := range domain.PaymentMethods {
					if v, ok := s.ByPaymentMethod[m]; ok {
						t.AppendRow(table.Row{"Paid by " + string(m), v.StringFixed(2)})
					}
				}
				if len(s.Products) > 0 {
					t.AppendSeparator()
					for _, p := range s.Products {
						t.AppendRow(table.Row{fmt.Sprintf("%s x%d", p.Name, p.Units), p.Revenue.StringFixed(2)})
					}
				}
				t.SetColumnConfigs(rightAligned(2))
			})
		},
	}
}
