package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentWeChat PaymentMethod = "wechat"
	PaymentAlipay PaymentMethod = "alipay"
	PaymentCard   PaymentMethod = "card"
	PaymentCash   PaymentMethod = "cash"
)

var PaymentMethods = []PaymentMethod{
	PaymentWeChat,
	PaymentAlipay,
	PaymentCard,
	PaymentCash,
}

func (m PaymentMethod) Valid() bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

type Transaction struct {
	ID            string          `json:"id"`
	Items         []CartLine      `json:"items"`
	Total         decimal.Decimal `json:"total"`
	CreatedAt     time.Time       `json:"date"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Note          string          `json:"note,omitempty"`
}

// LineItem is what the receipt annotator sees of a purchase.
type LineItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

func LineItems(lines []CartLine) []LineItem {
	items := make([]LineItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, LineItem{Name: l.Name, Quantity: l.Quantity})
	}
	return items
}

func TotalOf(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
