package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/port"
)

const FallbackNote = "Thanks for stopping by, see you next time!"

// ReceiptWriter asks the annotator for a note and falls back to a fixed one
// when it errors, returns nothing, or runs past the timeout.
type ReceiptWriter struct {
	annotator port.Annotator
	timeout   time.Duration
	fallback  string
	log       *slog.Logger
}

func NewReceiptWriter(annotator port.Annotator, timeout time.Duration, fallback string, log *slog.Logger) *ReceiptWriter {
	return &ReceiptWriter{
		annotator: annotator,
		timeout:   timeout,
		fallback:  fallback,
		log:       log,
	}
}

type noteResult struct {
	note string
	err  error
}

func (w *ReceiptWriter) Write(ctx context.Context, items []domain.LineItem) string {
	if w.annotator == nil {
		return w.fallback
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	// buffered so a late annotator never blocks
	done := make(chan noteResult, 1)
	go func() {
		note, err := w.annotator.Annotate(ctx, items)
		done <- noteResult{note: note, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			w.warn(fmt.Errorf("%w: %w", ErrAnnotation, res.err))
			return w.fallback
		}
		note := strings.TrimSpace(res.note)
		if note == "" {
			w.warn(fmt.Errorf("%w: empty note", ErrAnnotation))
			return w.fallback
		}
		return note
	case <-ctx.Done():
		w.warn(fmt.Errorf("%w: %w", ErrAnnotation, ctx.Err()))
		return w.fallback
	}
}

func (w *ReceiptWriter) warn(err error) {
	w.log.Warn("receipt note fallback",
		slog.Any("err", err),
		slog.Bool("timeout", errors.Is(err, context.DeadlineExceeded)),
	)
}
