package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/core/service"
)

func newTestRouter(t *testing.T) (*mux.Router, *flakyKV) {
	t.Helper()
	sf, kv := newTestStorefront(t)
	r := mux.NewRouter()
	NewHTTPHandler(sf).RegisterRoutes(r)
	return r, kv
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return v
}

func TestHTTPHandler_HealthCheck(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := do(t, r, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected json content type, got %q", ct)
	}
}

func TestHTTPHandler_ListProductsSeedsCatalog(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := do(t, r, http.MethodGet, "/api/products", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	products := decode[[]domain.Product](t, rec)
	if len(products) != len(domain.DefaultCatalog()) {
		t.Errorf("expected %d seeded products, got %d", len(domain.DefaultCatalog()), len(products))
	}
}

func TestHTTPHandler_AddProduct(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := do(t, r, http.MethodPost, "/api/products", AddProductHTTPRequest{
		Name:     "Matcha Latte",
		Price:    decimal.RequireFromString("36"),
		Category: domain.CategoryTea,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	p := decode[domain.Product](t, rec)
	if p.ID == "" {
		t.Error("expected a generated id")
	}
	if p.Color != domain.DefaultColor {
		t.Errorf("expected default color, got %q", p.Color)
	}

	rec = do(t, r, http.MethodPost, "/api/products", AddProductHTTPRequest{
		ID:       p.ID,
		Name:     "Copy",
		Price:    decimal.NewFromInt(1),
		Category: domain.CategoryTea,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate id: expected 400, got %d", rec.Code)
	}
}

func TestHTTPHandler_AddProductRejectsBadBody(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHTTPHandler_CartFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	for i := 0; i < 2; i++ {
		rec := do(t, r, http.MethodPost, "/api/cart/items", AddToCartHTTPRequest{ProductID: "1"})
		if rec.Code != http.StatusOK {
			t.Fatalf("add: expected 200, got %d", rec.Code)
		}
	}
	do(t, r, http.MethodPost, "/api/cart/items", AddToCartHTTPRequest{ProductID: "2"})

	rec := do(t, r, http.MethodPatch, "/api/cart/items/1", UpdateQuantityHTTPRequest{Delta: -5})
	cart := decode[CartHTTPResponse](t, rec)
	if got := cart.Lines[0].Quantity; got != 2 {
		t.Errorf("decrement below one must be ignored, got quantity %d", got)
	}

	rec = do(t, r, http.MethodGet, "/api/cart", nil)
	cart = decode[CartHTTPResponse](t, rec)
	if !cart.Total.Equal(decimal.RequireFromString("82")) {
		t.Errorf("expected total 82, got %s", cart.Total)
	}
	if cart.Units != 3 {
		t.Errorf("expected 3 units, got %d", cart.Units)
	}

	rec = do(t, r, http.MethodDelete, "/api/cart/items/2", nil)
	cart = decode[CartHTTPResponse](t, rec)
	if len(cart.Lines) != 1 {
		t.Errorf("expected 1 line after remove, got %d", len(cart.Lines))
	}

	rec = do(t, r, http.MethodDelete, "/api/cart/items/2", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("removing an absent line: expected 404, got %d", rec.Code)
	}

	rec = do(t, r, http.MethodDelete, "/api/cart", nil)
	cart = decode[CartHTTPResponse](t, rec)
	if len(cart.Lines) != 0 {
		t.Errorf("expected empty cart, got %d lines", len(cart.Lines))
	}
}

func TestHTTPHandler_AddToCartUnknownProduct(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := do(t, r, http.MethodPost, "/api/cart/items", AddToCartHTTPRequest{ProductID: "nope"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}

	rec = do(t, r, http.MethodPost, "/api/cart/items", AddToCartHTTPRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing product_id: expected 400, got %d", rec.Code)
	}
}

func TestHTTPHandler_CartPersistenceFailureIsAWarning(t *testing.T) {
	r, kv := newTestRouter(t)
	kv.failWrites.Store(true)

	rec := do(t, r, http.MethodPost, "/api/cart/items", AddToCartHTTPRequest{ProductID: "1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	cart := decode[CartHTTPResponse](t, rec)
	if cart.Warning == "" {
		t.Error("expected a warning when the cart was not saved")
	}
	if len(cart.Lines) != 1 {
		t.Errorf("in-memory cart must keep the line, got %d lines", len(cart.Lines))
	}
}

func TestHTTPHandler_Checkout(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := do(t, r, http.MethodPost, "/api/checkout", CheckoutHTTPRequest{PaymentMethod: domain.PaymentCash})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty cart: expected 400, got %d", rec.Code)
	}

	do(t, r, http.MethodPost, "/api/cart/items", AddToCartHTTPRequest{ProductID: "1"})

	rec = do(t, r, http.MethodPost, "/api/checkout", CheckoutHTTPRequest{PaymentMethod: "bitcoin"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown method: expected 400, got %d", rec.Code)
	}

	rec = do(t, r, http.MethodPost, "/api/checkout", CheckoutHTTPRequest{PaymentMethod: domain.PaymentCard})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	tx := decode[domain.Transaction](t, rec)
	if tx.Note != service.FallbackNote {
		t.Errorf("expected fallback note, got %q", tx.Note)
	}

	rec = do(t, r, http.MethodGet, "/api/transactions/"+tx.ID, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("get transaction: expected 200, got %d", rec.Code)
	}

	rec = do(t, r, http.MethodGet, "/api/cart", nil)
	if cart := decode[CartHTTPResponse](t, rec); len(cart.Lines) != 0 {
		t.Errorf("cart should be cleared after checkout, got %d lines", len(cart.Lines))
	}

	rec = do(t, r, http.MethodGet, "/api/reports/summary", nil)
	summary := decode[service.SalesSummary](t, rec)
	if summary.Orders != 1 || !summary.Revenue.Equal(decimal.NewFromInt(25)) {
		t.Errorf("unexpected summary: orders=%d revenue=%s", summary.Orders, summary.Revenue)
	}
}

func TestHTTPHandler_CheckoutPersistenceFailure(t *testing.T) {
	r, kv := newTestRouter(t)
	do(t, r, http.MethodPost, "/api/cart/items", AddToCartHTTPRequest{ProductID: "1"})
	kv.failWrites.Store(true)

	rec := do(t, r, http.MethodPost, "/api/checkout", CheckoutHTTPRequest{PaymentMethod: domain.PaymentAlipay})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	rec = do(t, r, http.MethodGet, "/api/cart", nil)
	if cart := decode[CartHTTPResponse](t, rec); len(cart.Lines) != 1 {
		t.Errorf("cart must survive a failed checkout, got %d lines", len(cart.Lines))
	}
}

func TestHTTPHandler_DeleteTransactionAndProduct(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := do(t, r, http.MethodDelete, "/api/transactions/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}

	do(t, r, http.MethodPost, "/api/cart/items", AddToCartHTTPRequest{ProductID: "3"})
	rec = do(t, r, http.MethodDelete, "/api/products/3", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = do(t, r, http.MethodGet, "/api/cart", nil)
	if cart := decode[CartHTTPResponse](t, rec); len(cart.Lines) != 0 {
		t.Errorf("deleting a product must strip its cart line, got %d lines", len(cart.Lines))
	}

	rec = do(t, r, http.MethodDelete, "/api/products/3", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete: expected 404, got %d", rec.Code)
	}
}
