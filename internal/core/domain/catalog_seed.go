package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

func seedProduct(id, name string, price int64, category Category, color string) Product {
	return Product{
		ID:       id,
		Name:     name,
		Price:    decimal.NewFromInt(price),
		Category: category,
		Image:    ImageFor(id),
		Color:    color,
	}
}

// DefaultCatalog is written to the store the first time the catalog is read
// and nothing has been persisted yet.
func DefaultCatalog() []Product {
	return []Product{
		seedProduct("1", "Americano", 25, CategoryCoffee, "bg-amber-100"),
		seedProduct("2", "Latte", 32, CategoryCoffee, "bg-orange-100"),
		seedProduct("3", "Cappuccino", 32, CategoryCoffee, "bg-orange-50"),
		seedProduct("4", "Caramel Macchiato", 35, CategoryCoffee, "bg-amber-50"),
		seedProduct("5", "Earl Grey", 22, CategoryTea, "bg-red-50"),
		seedProduct("6", "Cheese Foam Green Tea", 28, CategoryTea, "bg-green-50"),
		seedProduct("7", "Strawberry Cake", 38, CategoryDessert, "bg-pink-50"),
		seedProduct("8", "Tiramisu", 42, CategoryDessert, "bg-stone-100"),
		seedProduct("9", "Caesar Salad", 45, CategoryFood, "bg-lime-50"),
		seedProduct("10", "Beef Sandwich", 55, CategoryFood, "bg-yellow-50"),
		seedProduct("11", "French Fries", 18, CategorySnack, "bg-yellow-100"),
		seedProduct("12", "Chicken Nuggets", 22, CategorySnack, "bg-orange-200"),
	}
}

const DefaultColor = "bg-gray-100"

func ImageFor(id string) string {
	return fmt.Sprintf("https://picsum.photos/200/200?random=%s", id)
}
