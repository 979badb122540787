package service

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/port"
)

type Options struct {
	// StoreTimeout bounds every repository call
	StoreTimeout time.Duration
	// AnnotationTimeout bounds the receipt note request
	AnnotationTimeout time.Duration
	FallbackNote      string
	Now               func() time.Time
}

func (o Options) withDefaults() Options {
	if o.StoreTimeout <= 0 {
		o.StoreTimeout = 5 * time.Second
	}
	if o.AnnotationTimeout <= 0 {
		o.AnnotationTimeout = 8 * time.Second
	}
	if o.FallbackNote == "" {
		o.FallbackNote = FallbackNote
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Storefront owns the session cart and the in-memory views of the catalog and
// the transaction log. Every exported operation holds mu for its whole
// duration, so events are applied strictly one at a time.
type Storefront struct {
	mu    sync.Mutex
	repo  port.Repository
	notes *ReceiptWriter
	log   *slog.Logger
	opts  Options

	products     []domain.Product
	transactions []domain.Transaction
	cart         *domain.Cart
	lastTxID     int64
}

// Open loads the catalog, the transaction log and the saved cart in parallel.
func Open(ctx context.Context, repo port.Repository, annotator port.Annotator, log *slog.Logger, opts Options) (*Storefront, error) {
	if log == nil {
		log = slog.Default()
	}
	opts = opts.withDefaults()

	s := &Storefront{
		repo:  repo,
		notes: NewReceiptWriter(annotator, opts.AnnotationTimeout, opts.FallbackNote, log),
		log:   log,
		opts:  opts,
	}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Storefront) load(ctx context.Context) error {
	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	var (
		products     []domain.Product
		transactions []domain.Transaction
		lines        []domain.CartLine
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if products, err = s.repo.Products(gctx); err != nil {
			return persistenceError("load catalog", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if transactions, err = s.repo.Transactions(gctx); err != nil {
			return persistenceError("load transactions", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if lines, err = s.repo.Cart(gctx); err != nil {
			return persistenceError("load cart", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.products = products
	s.transactions = transactions
	s.cart = domain.NewCart(lines)
	for _, tx := range transactions {
		if n, err := strconv.ParseInt(tx.ID, 10, 64); err == nil && n > s.lastTxID {
			s.lastTxID = n
		}
	}

	s.log.Info("storefront loaded",
		slog.Int("products", len(products)),
		slog.Int("transactions", len(transactions)),
		slog.Int("cart_lines", s.cart.Len()),
	)
	return nil
}

func (s *Storefront) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opts.StoreTimeout)
}
