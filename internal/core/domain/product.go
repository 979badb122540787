package domain

import (
	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryCoffee  Category = "coffee"
	CategoryTea     Category = "tea"
	CategoryDessert Category = "dessert"
	CategoryFood    Category = "food"
	CategorySnack   Category = "snack"
)

var Categories = []Category{
	CategoryCoffee,
	CategoryTea,
	CategoryDessert,
	CategoryFood,
	CategorySnack,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category Category        `json:"category"`
	Image    string          `json:"image"`
	Color    string          `json:"color"`
}
