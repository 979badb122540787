package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rl1809/storefront/internal/core/domain"
)

type ProductSales struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Units     int             `json:"units"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type SalesSummary struct {
	Revenue         decimal.Decimal                          `json:"revenue"`
	Orders          int                                      `json:"orders"`
	AverageOrder    decimal.Decimal                          `json:"average_order"`
	ByCategory      map[domain.Category]decimal.Decimal      `json:"by_category"`
	ByPaymentMethod map[domain.PaymentMethod]decimal.Decimal `json:"by_payment_method"`
	Products        []ProductSales                           `json:"products"`
}

// Summarize aggregates a transaction log. Products are ordered by units sold,
// then by revenue, then by id.
func Summarize(transactions []domain.Transaction) SalesSummary {
	summary := SalesSummary{
		Revenue:         decimal.Zero,
		AverageOrder:    decimal.Zero,
		Orders:          len(transactions),
		ByCategory:      make(map[domain.Category]decimal.Decimal),
		ByPaymentMethod: make(map[domain.PaymentMethod]decimal.Decimal),
	}

	byProduct := make(map[string]*ProductSales)
	for _, tx := range transactions {
		summary.Revenue = summary.Revenue.Add(tx.Total)
		summary.ByPaymentMethod[tx.PaymentMethod] = summary.ByPaymentMethod[tx.PaymentMethod].Add(tx.Total)

		for _, line := range tx.Items {
			subtotal := line.Subtotal()
			summary.ByCategory[line.Category] = summary.ByCategory[line.Category].Add(subtotal)

			ps, ok := byProduct[line.ID]
			if !ok {
				ps = &ProductSales{ProductID: line.ID, Name: line.Name, Revenue: decimal.Zero}
				byProduct[line.ID] = ps
			}
			ps.Units += line.Quantity
			ps.Revenue = ps.Revenue.Add(subtotal)
		}
	}

	if summary.Orders > 0 {
		summary.AverageOrder = summary.Revenue.Div(decimal.NewFromInt(int64(summary.Orders))).Round(2)
	}

	summary.Products = make([]ProductSales, 0, len(byProduct))
	for _, ps := range byProduct {
		summary.Products = append(summary.Products, *ps)
	}
	sort.Slice(summary.Products, func(i, j int) bool {
		a, b := summary.Products[i], summary.Products[j]
		if a.Units != b.Units {
			return a.Units > b.Units
		}
		if c := a.Revenue.Cmp(b.Revenue); c != 0 {
			return c > 0
		}
		return a.ProductID < b.ProductID
	})
	return summary
}

func (s *Storefront) Summary() SalesSummary {
	return Summarize(s.Transactions())
}
