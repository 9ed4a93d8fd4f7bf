/*
ledger.go - Stock ledger mutations and snapshot reads

PURPOSE:
  The Ledger owns the two process-wide collections: the per-product
  aggregates and the append-only event history. All mutation goes
  through ApplyEvent; reads return copies.

MUTATION CONTRACT (ApplyEvent):
  - INBOUND:  totalStock += quantity
  - OUTBOUND: totalStock -= quantity (no floor at zero here)
  - DAMAGED:  damagedStock += quantity (no ceiling at totalStock here)
  The ledger performs NO bounds checking on quantities. Callers run
  ValidateAction first; the presentation layer surfaces its failures
  inline and never calls ApplyEvent for an invalid request.

  Unknown product ids are rejected with ErrProductNotFound before any
  state changes.

PERSISTENCE:
  Every successful ApplyEvent saves the full state (both collections)
  to the blob store. The write is best-effort: a failure is logged to
  the diagnostic logger and the in-memory mutation stands. There is no
  transactional rollback.

CONCURRENCY:
  The dashboard is single-user, but an HTTP process cannot rely on one
  mutation being in flight at a time, so an RWMutex serializes mutations
  and keeps reads consistent.

SEE ALSO:
  - persist.go: Load/save and price reconciliation
  - views.go: Derived views over snapshots
*/
package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// =============================================================================
// LEDGER
// =============================================================================

// Ledger holds current per-product aggregates and the event history.
type Ledger struct {
	mu       sync.RWMutex
	products []Product      // catalog display order
	index    map[string]int // product id -> position in products
	events   []StockEvent   // most-recent-first
	blobs    BlobStore
	log      *logrus.Logger
}

// New creates a Ledger backed by the given blob store, loading persisted
// state once at startup. A read failure or corrupt blob falls back to the
// default state (every catalog product at zero, empty history); it is
// logged, never fatal.
func New(ctx context.Context, blobs BlobStore, logger *logrus.Logger) *Ledger {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	l := &Ledger{blobs: blobs, log: logger}
	l.products, l.events = loadState(ctx, blobs, logger)
	l.reindex()
	return l
}

func (l *Ledger) reindex() {
	l.index = make(map[string]int, len(l.products))
	for i, p := range l.products {
		l.index[p.ID] = i
	}
}

// =============================================================================
// MUTATION
// =============================================================================

// ApplyEvent applies a single stock movement: updates the product's
// running aggregates, appends a new event to the front of the history,
// and saves the full state. Returns the updated product snapshot and
// the recorded event.
//
// Quantity is caller-validated (see ValidateAction); no bounds are
// checked here.
func (l *Ledger) ApplyEvent(ctx context.Context, productID string, quantity int, kind EventKind) (Product, StockEvent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.index[productID]
	if !ok {
		return Product{}, StockEvent{}, fmt.Errorf("apply %s of %d: %w: %q", kind, quantity, ErrProductNotFound, productID)
	}

	switch kind {
	case KindInbound:
		l.products[i].TotalStock += quantity
	case KindOutbound:
		l.products[i].TotalStock -= quantity
	case KindDamaged:
		l.products[i].DamagedStock += quantity
	}

	ev := StockEvent{
		ID:          uuid.NewString(),
		ProductID:   productID,
		ProductName: l.products[i].Name,
		Quantity:    quantity,
		Kind:        kind,
		Timestamp:   time.Now().UTC(),
	}

	// Front-append: storage order is most-recent-first.
	l.events = append([]StockEvent{ev}, l.events...)

	l.save(ctx)

	return l.products[i], ev, nil
}

// ValidateAction is the pre-condition check the presentation layer runs
// before ApplyEvent: the quantity must be positive, the product must
// exist, and for OUTBOUND and DAMAGED the quantity must not exceed the
// product's current clean stock.
//
// The check is advisory with respect to ApplyEvent (the ledger itself
// enforces nothing), but under the serialized mutation model a request
// validated here cannot be invalidated before it is applied.
func (l *Ledger) ValidateAction(productID string, quantity int, kind EventKind) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	i, ok := l.index[productID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrProductNotFound, productID)
	}

	if kind == KindOutbound || kind == KindDamaged {
		if clean := l.products[i].CleanStock(); quantity > clean {
			return &InsufficientStockError{ProductID: productID, Available: clean, Requested: quantity}
		}
	}
	return nil
}

// =============================================================================
// SNAPSHOT READS
// =============================================================================

// Products returns a snapshot of all products in catalog order.
func (l *Ledger) Products() []Product {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Product, len(l.products))
	copy(out, l.products)
	return out
}

// Product returns a snapshot of a single product.
func (l *Ledger) Product(id string) (Product, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i, ok := l.index[id]
	if !ok {
		return Product{}, false
	}
	return l.products[i], true
}

// Events returns a snapshot of the event history, most-recent-first.
func (l *Ledger) Events() []StockEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]StockEvent, len(l.events))
	copy(out, l.events)
	return out
}
