/*
Package catalog holds the fixed product catalog.

PURPOSE:
  The catalog is configuration, not logic: a static list of product
  identities and unit prices, plus the low-stock threshold. Products are
  never created or destroyed at runtime; the ledger initializes one
  stock record per catalog entry.

PRICE AUTHORITY:
  The catalog is the single source of truth for prices. Persisted state
  may carry stale prices from a previous build; on load the ledger
  overwrites every persisted price with the catalog price for that id
  (see ledger.ReconcilePrices).

SEE ALSO:
  - ledger/persist.go: Price reconciliation on load
  - ledger/views.go: Low-stock threshold usage
*/
package catalog

import "github.com/shopspring/decimal"

// MinimumStockThreshold is the clean-stock level below which a product
// counts as low stock.
const MinimumStockThreshold = 20

// Entry is a single catalog product: identity and unit price only.
// Stock quantities live in the ledger, not here.
type Entry struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

var entries = []Entry{
	{ID: "n1-400", Name: "Novalac N1 400g", Price: decimal.RequireFromString("15.50")},
	{ID: "n1-800", Name: "Novalac N1 800g", Price: decimal.RequireFromString("28.00")},
	{ID: "n2-400", Name: "Novalac N2 400g", Price: decimal.RequireFromString("15.50")},
	{ID: "n2-800", Name: "Novalac N2 800g", Price: decimal.RequireFromString("28.00")},
	{ID: "genio-400", Name: "Novalac Genio 400g", Price: decimal.RequireFromString("16.00")},
	{ID: "genio-800", Name: "Novalac Genio 800g", Price: decimal.RequireFromString("29.50")},
	{ID: "plus", Name: "Novalac Plus", Price: decimal.RequireFromString("18.00")},
	{ID: "ar1", Name: "Novalac AR1", Price: decimal.RequireFromString("19.50")},
	{ID: "ar2", Name: "Novalac AR2", Price: decimal.RequireFromString("19.50")},
	{ID: "it1", Name: "Novalac IT1", Price: decimal.RequireFromString("17.00")},
	{ID: "it2", Name: "Novalac IT2", Price: decimal.RequireFromString("17.00")},
	{ID: "it3", Name: "Novalac IT3", Price: decimal.RequireFromString("17.00")},
	{ID: "aminova", Name: "Novalac Aminova", Price: decimal.RequireFromString("25.00")},
}

// Products returns the catalog entries in display order.
// The returned slice is a copy; callers may not mutate the catalog.
func Products() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Lookup returns the catalog entry for id.
func Lookup(id string) (Entry, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}
