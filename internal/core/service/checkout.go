package service

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/rl1809/storefront/internal/core/domain"
)

// nextTransactionID derives the id from the creation time in milliseconds,
// bumped past the last issued id so ids stay unique and increasing.
func (s *Storefront) nextTransactionID(now time.Time) string {
	id := now.UnixMilli()
	if id <= s.lastTxID {
		id = s.lastTxID + 1
	}
	s.lastTxID = id
	return strconv.FormatInt(id, 10)
}

// Checkout turns the current cart into a transaction. The cart is cleared only
// after the transaction log was written; if that write fails the cart is left
// intact so the caller can retry.
func (s *Storefront) Checkout(ctx context.Context, method domain.PaymentMethod) (domain.Transaction, error) {
	if !method.Valid() {
		return domain.Transaction{}, validationError("unknown payment method %q", method)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.IsEmpty() {
		return domain.Transaction{}, ErrEmptyCart
	}

	// past the precondition the checkout runs to completion
	ctx = context.WithoutCancel(ctx)

	lines := s.cart.Lines()
	total := domain.TotalOf(lines)
	note := s.notes.Write(ctx, domain.LineItems(lines))

	now := s.opts.Now()
	tx := domain.Transaction{
		ID:            s.nextTransactionID(now),
		Items:         lines,
		Total:         total,
		CreatedAt:     now,
		PaymentMethod: method,
		Note:          note,
	}

	next := make([]domain.Transaction, 0, len(s.transactions)+1)
	next = append(next, s.transactions...)
	next = append(next, tx)

	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()
	if err := s.repo.SaveTransactions(storeCtx, next); err != nil {
		s.log.Error("transaction not saved, cart kept",
			slog.String("transaction_id", tx.ID),
			slog.Any("err", err),
		)
		return domain.Transaction{}, persistenceError("save transaction", err)
	}
	s.transactions = next
	s.cart.Clear()

	if err := s.repo.ClearCart(storeCtx); err != nil {
		// the transaction is durable; a stale saved cart is the lesser problem
		s.log.Warn("saved cart not cleared after checkout",
			slog.String("transaction_id", tx.ID),
			slog.Any("err", err),
		)
	}

	s.log.Info("checkout completed",
		slog.String("transaction_id", tx.ID),
		slog.String("total", tx.Total.StringFixed(2)),
		slog.String("payment_method", string(method)),
		slog.Int("lines", len(lines)),
	)
	return tx, nil
}

func (s *Storefront) Transactions() []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

func (s *Storefront) Transaction(id string) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tx := range s.transactions {
		if tx.ID == id {
			return tx, nil
		}
	}
	return domain.Transaction{}, notFoundError("transaction", id)
}

// DeleteTransaction permanently removes one record from the log.
func (s *Storefront) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := -1
	for j := range s.transactions {
		if s.transactions[j].ID == id {
			i = j
			break
		}
	}
	if i < 0 {
		return notFoundError("transaction", id)
	}

	next := make([]domain.Transaction, 0, len(s.transactions)-1)
	next = append(next, s.transactions[:i]...)
	next = append(next, s.transactions[i+1:]...)

	ctx, cancel := s.storeCtx(ctx)
	defer cancel()
	if err := s.repo.SaveTransactions(ctx, next); err != nil {
		return persistenceError("save transactions", err)
	}
	s.transactions = next

	s.log.Info("transaction deleted", slog.String("transaction_id", id))
	return nil
}
