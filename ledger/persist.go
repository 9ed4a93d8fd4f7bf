/*
persist.go - Blob-store load/save for the ledger state

PURPOSE:
  The persistence adapter treats storage as an opaque key-value blob
  store with two independent keys:

    inventory_products     -> JSON array of product snapshots
    inventory_stock_events -> JSON array of events, most-recent-first

LOAD CONTRACT:
  - Products key absent or unparsable: every catalog product starts at
    totalStock=0, damagedStock=0.
  - Events key absent or unparsable: empty history.
  - Persisted prices are NEVER trusted: after load, every record's price
    is overwritten with the current catalog price (ReconcilePrices).
    Ids, totalStock, and damagedStock are trusted as persisted.

SAVE CONTRACT:
  Fire-and-forget, best-effort, synchronous after each mutation. A write
  failure is logged to the diagnostic logger and swallowed; the in-memory
  state is left as-is and silently diverges from the persisted state.

IMPLEMENTATIONS:
  - store/sqlite: durable local kv table
  - store/memory: in-memory map for tests/dev
*/
package ledger

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"
	"github.com/warp/inventory-engine/catalog"
)

// Blob-store keys for the two persisted collections.
const (
	KeyProducts = "inventory_products"
	KeyEvents   = "inventory_stock_events"
)

// BlobStore is the opaque load/save interface the ledger persists through.
type BlobStore interface {
	// Get returns the blob stored under key, and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put stores the blob under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
}

// =============================================================================
// LOAD
// =============================================================================

func loadState(ctx context.Context, blobs BlobStore, log *logrus.Logger) ([]Product, []StockEvent) {
	var loaded []Product
	if raw, ok, err := blobs.Get(ctx, KeyProducts); err != nil {
		log.WithError(err).WithField("key", KeyProducts).Error("failed to read products, using defaults")
	} else if ok {
		if err := json.Unmarshal(raw, &loaded); err != nil {
			log.WithError(err).WithField("key", KeyProducts).Error("corrupt products blob, using defaults")
			loaded = nil
		}
	}

	var events []StockEvent
	if raw, ok, err := blobs.Get(ctx, KeyEvents); err != nil {
		log.WithError(err).WithField("key", KeyEvents).Error("failed to read events, starting with empty history")
	} else if ok {
		if err := json.Unmarshal(raw, &events); err != nil {
			log.WithError(err).WithField("key", KeyEvents).Error("corrupt events blob, starting with empty history")
			events = nil
		}
	}

	return ReconcilePrices(loaded), events
}

// ReconcilePrices merges loaded product records against the catalog:
// for every catalog product, the persisted totalStock and damagedStock
// are kept and the price is overwritten with the catalog's current
// price. Records whose id is not in the catalog are dropped; catalog
// products missing from the loaded set are added at zero stock. The
// result is in catalog display order.
//
// ReconcilePrices(nil) yields the default initial state.
func ReconcilePrices(loaded []Product) []Product {
	byID := make(map[string]Product, len(loaded))
	for _, p := range loaded {
		byID[p.ID] = p
	}

	cat := catalog.Products()
	out := make([]Product, 0, len(cat))
	for _, e := range cat {
		p, ok := byID[e.ID]
		if !ok {
			out = append(out, Product{ID: e.ID, Name: e.Name, Price: e.Price})
			continue
		}
		p.Price = e.Price
		if p.Name == "" {
			p.Name = e.Name
		}
		out = append(out, p)
	}
	return out
}

// =============================================================================
// SAVE
// =============================================================================

// save persists both collections. Caller must hold the write lock.
// Errors are logged, never returned: a failed write leaves the in-memory
// state authoritative for the rest of the process lifetime.
func (l *Ledger) save(ctx context.Context) {
	if raw, err := json.Marshal(l.products); err != nil {
		l.log.WithError(err).Error("failed to marshal products")
	} else if err := l.blobs.Put(ctx, KeyProducts, raw); err != nil {
		l.log.WithError(err).WithField("key", KeyProducts).Error("failed to persist products")
	}

	if raw, err := json.Marshal(l.events); err != nil {
		l.log.WithError(err).Error("failed to marshal events")
	} else if err := l.blobs.Put(ctx, KeyEvents, raw); err != nil {
		l.log.WithError(err).WithField("key", KeyEvents).Error("failed to persist events")
	}
}
