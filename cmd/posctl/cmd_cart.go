package main

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/rl1809/storefront/internal/core/service"
)

func (c *cli) cartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect and change the active cart",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the cart with its total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.showCart(cmd, c.storefront.Cart(), nil)
		},
	}

	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add one unit of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := c.storefront.AddToCart(cmd.Context(), args[0])
			return c.showCart(cmd, view, err)
		},
	}

	var delta int
	update := &cobra.Command{
		Use:   "update <product-id> --delta N",
		Short: "Change a line quantity; a change that would reach zero is ignored",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := c.storefront.UpdateQuantity(cmd.Context(), args[0], delta)
			return c.showCart(cmd, view, err)
		},
	}
	update.Flags().IntVar(&delta, "delta", 0, "quantity change, e.g. 1 or -1")
	_ = update.MarkFlagRequired("delta")

	remove := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a line from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := c.storefront.RemoveItem(cmd.Context(), args[0])
			return c.showCart(cmd, view, err)
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := c.storefront.ClearCart(cmd.Context())
			return c.showCart(cmd, view, err)
		},
	}

	cmd.AddCommand(show, add, update, remove, clearCmd)
	return cmd
}

// showCart prints the cart. A cart that changed but was not saved is printed
// with a warning instead of failing the command.
func (c *cli) showCart(cmd *cobra.Command, view service.CartView, err error) error {
	if err != nil {
		if !errors.Is(err, service.ErrPersistence) {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}

	return c.render(cmd.OutOrStdout(), view, func(t table.Writer) {
		t.AppendHeader(table.Row{"ID", "Name", "Qty", "Price", "Subtotal"})
		for _, line := range view.Lines {
			t.AppendRow(table.Row{line.ID, line.Name, line.Quantity, line.Price.StringFixed(2), line.Subtotal().StringFixed(2)})
		}
		t.AppendFooter(table.Row{"", "Total", view.Units, "", view.Total.StringFixed(2)})
		t.SetColumnConfigs(rightAligned(3, 4, 5))
	})
}
