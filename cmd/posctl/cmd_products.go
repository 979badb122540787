package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rl1809/storefront/internal/core/domain"
)

func (c *cli) productsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "List, add and delete catalog products",
	}
	cmd.AddCommand(c.productsListCmd(), c.productsAddCmd(), c.productsDeleteCmd())
	return cmd
}

func (c *cli) productsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the catalog in stored order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			products := c.storefront.Products()
			return c.render(cmd.OutOrStdout(), products, func(t table.Writer) {
				t.AppendHeader(table.Row{"ID", "Name", "Category", "Price"})
				for _, p := range products {
					t.AppendRow(table.Row{p.ID, p.Name, p.Category, p.Price.StringFixed(2)})
				}
				t.SetColumnConfigs(rightAligned(4))
			})
		},
	}
}

func (c *cli) productsAddCmd() *cobra.Command {
	var flags struct {
		id       string
		name     string
		price    string
		category string
		image    string
		color    string
	}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			price, err := decimal.NewFromString(flags.price)
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", flags.price, err)
			}

			p, err := c.storefront.AddProduct(cmd.Context(), domain.Product{
				ID:       flags.id,
				Name:     flags.name,
				Price:    price,
				Category: domain.Category(flags.category),
				Image:    flags.image,
				Color:    flags.color,
			})
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), p, func(t table.Writer) {
				t.AppendHeader(table.Row{"ID", "Name", "Category", "Price"})
				t.AppendRow(table.Row{p.ID, p.Name, p.Category, p.Price.StringFixed(2)})
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.id, "id", "", "product id (generated when empty)")
	f.StringVar(&flags.name, "name", "", "display name (required)")
	f.StringVar(&flags.price, "price", "", "unit price, e.g. 28.50 (required)")
	f.StringVar(&flags.category, "category", "", "one of coffee, tea, dessert, food, snack (required)")
	f.StringVar(&flags.image, "image", "", "image URL")
	f.StringVar(&flags.color, "color", "", "color tag")

	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func (c *cli) productsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product and drop it from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.storefront.DeleteProduct(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted product %s\n", args[0])
			return nil
		},
	}
}
