/*
Package ledger implements the stock ledger and aggregation core.

PURPOSE:
  Holds the current per-product stock aggregates and the append-only
  history of stock events, and derives every dashboard view (KPIs,
  per-product summaries, filtered history, trend series) from them.

KEY CONCEPTS IN THIS FILE (types.go):
  - Product: catalog identity plus mutable running aggregates
  - StockEvent: an immutable history entry, one per user action
  - EventKind: INBOUND, OUTBOUND, or DAMAGED

AGGREGATES ARE A FOLD CACHE:
  TotalStock and DamagedStock are updated incrementally as events are
  applied. They are a cache of the fold over the event history; nothing
  revalidates that cache against the log, and no replay-from-log rebuild
  exists. Clean stock and clean value are NOT stored - they are derived
  on every read and can never desync.

SEE ALSO:
  - ledger.go: Mutation and snapshot operations
  - views.go: KPI, history, and trend derivations
  - persist.go: Blob-store load/save
*/
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// EVENT KIND
// =============================================================================

// EventKind classifies a stock movement.
type EventKind string

const (
	KindInbound  EventKind = "INBOUND"  // stock received
	KindOutbound EventKind = "OUTBOUND" // stock shipped out
	KindDamaged  EventKind = "DAMAGED"  // stock marked unsellable
)

// Valid reports whether k is one of the three known kinds.
func (k EventKind) Valid() bool {
	switch k {
	case KindInbound, KindOutbound, KindDamaged:
		return true
	}
	return false
}

// =============================================================================
// PRODUCT - Catalog identity + running aggregates
// =============================================================================

// Product is a catalog product with its current stock aggregates.
//
// INVARIANT (not enforced at write time): 0 <= DamagedStock <= TotalStock.
// The invariant holds under caller-validated operations; ApplyEvent itself
// performs no bounds checking.
type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	TotalStock   int             `json:"totalStock"`
	DamagedStock int             `json:"damagedStock"`
}

// CleanStock is the sellable portion of the inventory.
// Derived on read, never stored.
func (p Product) CleanStock() int {
	return p.TotalStock - p.DamagedStock
}

// CleanValue is the monetary value of the sellable stock.
func (p Product) CleanValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.CleanStock())))
}

// =============================================================================
// STOCK EVENT - Immutable history entry
// =============================================================================

// StockEvent records a single stock movement. Created exactly once per
// user action, immutable thereafter, appended to the FRONT of the stored
// history (most-recent-first storage order).
//
// ProductName is a denormalized snapshot of the product name at event
// time; it is what the history view and CSV export display.
type StockEvent struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	Kind        EventKind `json:"kind"`
	Timestamp   time.Time `json:"timestamp"`
}
