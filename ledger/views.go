/*
views.go - Pure aggregation views over ledger snapshots

PURPOSE:
  Everything the dashboard displays beyond raw state is derived here:
  KPI stats, per-product summaries, the filtered/sorted history, and
  the per-product trend series. All functions are pure - they take a
  snapshot and return a derivation, recomputed on every read.

TREND REPLAY:
  The trend series re-sorts a product's events chronologically
  (independently of the most-recent-first storage order) and folds
  running total/damaged counters, emitting one cumulative point per
  event, with a synthetic zero point one day before the first event.
  A product with no history gets a single "current" point built from
  its live aggregates instead of a zero baseline; see DESIGN.md.
*/
package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/inventory-engine/catalog"
)

// =============================================================================
// KPI STATS
// =============================================================================

// Stats are the dashboard-level KPIs across all products.
type Stats struct {
	TotalItems        int             // sum of totalStock
	TotalCleanValue   decimal.Decimal // sum of cleanStock * price
	LowStockProducts  int             // products with cleanStock < threshold
	TotalDamagedItems int             // sum of damagedStock
}

// ComputeStats folds the KPI summary over a product snapshot.
func ComputeStats(products []Product) Stats {
	s := Stats{TotalCleanValue: decimal.Zero}
	for _, p := range products {
		s.TotalItems += p.TotalStock
		s.TotalCleanValue = s.TotalCleanValue.Add(p.CleanValue())
		s.TotalDamagedItems += p.DamagedStock
		if p.CleanStock() < catalog.MinimumStockThreshold {
			s.LowStockProducts++
		}
	}
	return s
}

// =============================================================================
// PER-PRODUCT SUMMARY
// =============================================================================

// ProductSummary is a product with its read-time derivations.
type ProductSummary struct {
	Product
	CleanStock int
	CleanValue decimal.Decimal
	LowStock   bool
}

// Summarize derives the summary card values for one product.
func Summarize(p Product) ProductSummary {
	clean := p.CleanStock()
	return ProductSummary{
		Product:    p,
		CleanStock: clean,
		CleanValue: p.CleanValue(),
		LowStock:   clean < catalog.MinimumStockThreshold,
	}
}

// =============================================================================
// HISTORY VIEW
// =============================================================================

// HistoryFilter narrows the event history. Zero-valued dimensions are
// ignored; set dimensions combine with AND.
type HistoryFilter struct {
	Search    string    // case-insensitive substring match on product name
	ProductID string    // exact product id
	Kind      EventKind // exact event kind
	Date      string    // exact calendar date, "2006-01-02", UTC date portion of the timestamp
}

func (f HistoryFilter) matches(ev StockEvent) bool {
	if f.ProductID != "" && ev.ProductID != f.ProductID {
		return false
	}
	if f.Kind != "" && ev.Kind != f.Kind {
		return false
	}
	if f.Date != "" && ev.Timestamp.UTC().Format("2006-01-02") != f.Date {
		return false
	}
	return strings.Contains(strings.ToLower(ev.ProductName), strings.ToLower(f.Search))
}

// FilterEvents returns the events matching f, sorted by timestamp
// descending. The sort is stable: events with identical timestamps keep
// their stored (most-recent-first) relative order. The input is not
// modified.
func FilterEvents(events []StockEvent, f HistoryFilter) []StockEvent {
	out := make([]StockEvent, 0, len(events))
	for _, ev := range events {
		if f.matches(ev) {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// =============================================================================
// TREND SERIES
// =============================================================================

// TrendPoint is one cumulative data point of a product's trend chart.
type TrendPoint struct {
	Timestamp    time.Time
	TotalStock   int
	CleanStock   int
	DamagedStock int
}

// TrendSeries replays a product's events in chronological order and
// emits the cumulative aggregates after each one, prepended with a
// synthetic zero point dated one day before the first event.
//
// If the product has no events, the series is a single point at now
// carrying the product's live aggregates.
func TrendSeries(p Product, events []StockEvent, now time.Time) []TrendPoint {
	var relevant []StockEvent
	for _, ev := range events {
		if ev.ProductID == p.ID {
			relevant = append(relevant, ev)
		}
	}

	if len(relevant) == 0 {
		return []TrendPoint{{
			Timestamp:    now,
			TotalStock:   p.TotalStock,
			CleanStock:   p.CleanStock(),
			DamagedStock: p.DamagedStock,
		}}
	}

	sort.SliceStable(relevant, func(i, j int) bool {
		return relevant[i].Timestamp.Before(relevant[j].Timestamp)
	})

	series := make([]TrendPoint, 0, len(relevant)+1)
	series = append(series, TrendPoint{Timestamp: relevant[0].Timestamp.Add(-24 * time.Hour)})

	total, damaged := 0, 0
	for _, ev := range relevant {
		switch ev.Kind {
		case KindInbound:
			total += ev.Quantity
		case KindOutbound:
			total -= ev.Quantity
		case KindDamaged:
			damaged += ev.Quantity
		}
		series = append(series, TrendPoint{
			Timestamp:    ev.Timestamp,
			TotalStock:   total,
			CleanStock:   total - damaged,
			DamagedStock: damaged,
		})
	}
	return series
}
