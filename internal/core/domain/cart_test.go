package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func product(id string, price string) Product {
	return Product{
		ID:       id,
		Name:     "item-" + id,
		Price:    decimal.RequireFromString(price),
		Category: CategoryCoffee,
	}
}

func TestCart_AddSameProductCountsCalls(t *testing.T) {
	for _, calls := range []int{1, 2, 7, 50} {
		cart := NewCart(nil)
		p := product("1", "25")
		for i := 0; i < calls; i++ {
			cart.Add(p)
		}

		lines := cart.Lines()
		if len(lines) != 1 {
			t.Fatalf("calls=%d: expected 1 line, got %d", calls, len(lines))
		}
		if lines[0].Quantity != calls {
			t.Errorf("calls=%d: expected quantity %d, got %d", calls, calls, lines[0].Quantity)
		}
	}
}

func TestCart_AddPreservesInsertionOrder(t *testing.T) {
	cart := NewCart(nil)
	cart.Add(product("a", "1"))
	cart.Add(product("b", "1"))
	cart.Add(product("a", "1"))
	cart.Add(product("c", "1"))

	lines := cart.Lines()
	want := []string{"a", "b", "c"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i, id := range want {
		if lines[i].ID != id {
			t.Errorf("line %d: expected %s, got %s", i, id, lines[i].ID)
		}
	}
}

func TestCart_UpdateQuantityFloor(t *testing.T) {
	cart := NewCart(nil)
	p := product("1", "10")
	cart.Add(p)
	cart.Add(p)
	cart.Add(p)

	for _, delta := range []int{-3, -4, -100} {
		line, found, changed := cart.UpdateQuantity("1", delta)
		if !found {
			t.Fatalf("delta=%d: expected line to be found", delta)
		}
		if changed {
			t.Errorf("delta=%d: expected no change", delta)
		}
		if line.Quantity != 3 {
			t.Errorf("delta=%d: expected quantity 3, got %d", delta, line.Quantity)
		}
	}

	line, _, changed := cart.UpdateQuantity("1", -2)
	if !changed || line.Quantity != 1 {
		t.Errorf("expected quantity 1 after -2, got %d (changed=%v)", line.Quantity, changed)
	}

	line, _, _ = cart.UpdateQuantity("1", 4)
	if line.Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", line.Quantity)
	}
}

func TestCart_UpdateQuantityUnknownLine(t *testing.T) {
	cart := NewCart(nil)
	if _, found, _ := cart.UpdateQuantity("missing", 1); found {
		t.Error("expected unknown line to be reported as not found")
	}
}

func TestCart_RemoveThenAddStartsFresh(t *testing.T) {
	cart := NewCart(nil)
	p := product("1", "10")
	cart.Add(p)
	cart.Add(p)
	cart.Add(p)

	if !cart.Remove("1") {
		t.Fatal("expected remove to succeed")
	}
	if cart.Remove("1") {
		t.Error("expected second remove to be a no-op")
	}

	line := cart.Add(p)
	if line.Quantity != 1 {
		t.Errorf("expected fresh quantity 1, got %d", line.Quantity)
	}
}

func TestCart_RemoveProductKeepsOthers(t *testing.T) {
	cart := NewCart(nil)
	cart.Add(product("a", "1"))
	cart.Add(product("b", "2"))
	cart.Add(product("c", "3"))

	if n := cart.RemoveProduct("b"); n != 1 {
		t.Errorf("expected 1 removed line, got %d", n)
	}
	if n := cart.RemoveProduct("zzz"); n != 0 {
		t.Errorf("expected 0 removed lines, got %d", n)
	}

	lines := cart.Lines()
	if len(lines) != 2 || lines[0].ID != "a" || lines[1].ID != "c" {
		t.Errorf("unexpected lines after cascade: %+v", lines)
	}
}

func TestCart_TotalIsExact(t *testing.T) {
	cart := NewCart(nil)
	latte := product("1", "25.00")
	cake := product("2", "32.00")
	cart.Add(latte)
	cart.Add(latte)
	cart.Add(cake)

	if !cart.Total().Equal(decimal.RequireFromString("82.00")) {
		t.Errorf("expected total 82.00, got %s", cart.Total())
	}
	if cart.Units() != 3 {
		t.Errorf("expected 3 units, got %d", cart.Units())
	}

	tenths := NewCart(nil)
	dime := product("d", "0.10")
	for i := 0; i < 3; i++ {
		tenths.Add(dime)
	}
	if !tenths.Total().Equal(decimal.RequireFromString("0.30")) {
		t.Errorf("expected total 0.30, got %s", tenths.Total())
	}
}

func TestCart_LinesAreDecoupled(t *testing.T) {
	cart := NewCart(nil)
	cart.Add(product("1", "5"))

	snapshot := cart.Lines()
	cart.Add(product("1", "5"))
	cart.Clear()

	if len(snapshot) != 1 || snapshot[0].Quantity != 1 {
		t.Errorf("snapshot changed after cart mutation: %+v", snapshot)
	}
	if !cart.IsEmpty() {
		t.Error("expected empty cart after clear")
	}
}

func TestNewCart_NormalizesRehydratedLines(t *testing.T) {
	cart := NewCart([]CartLine{
		{Product: product("a", "1"), Quantity: 2},
		{Product: product("b", "1"), Quantity: 0},
		{Product: product("a", "1"), Quantity: 3},
	})

	lines := cart.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Quantity != 5 {
		t.Errorf("expected merged quantity 5, got %d", lines[0].Quantity)
	}
}

func TestCategoryAndPaymentMethodValidation(t *testing.T) {
	if !CategoryDessert.Valid() || Category("pizza").Valid() {
		t.Error("unexpected category validation result")
	}
	if !PaymentCash.Valid() || PaymentMethod("bitcoin").Valid() {
		t.Error("unexpected payment method validation result")
	}
}
