/*
dto.go - Data Transfer Objects for API requests and responses

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  StockActionRequest carries validator struct tags for the structural
  checks (selection present, quantity a positive integer, known kind).
  The clean-stock pre-condition depends on live state and is checked in
  the handler via ledger.ValidateAction.
*/
package api

import (
	"time"

	"github.com/warp/inventory-engine/ledger"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ProductDTO is a product summary card in API responses.
type ProductDTO struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	TotalStock   int     `json:"total_stock"`
	DamagedStock int     `json:"damaged_stock"`
	CleanStock   int     `json:"clean_stock"`
	CleanValue   float64 `json:"clean_value"`
	LowStock     bool    `json:"low_stock"`
}

// StatsDTO is the dashboard KPI summary.
type StatsDTO struct {
	TotalItems        int     `json:"total_items"`
	TotalCleanValue   float64 `json:"total_clean_value"`
	LowStockProducts  int     `json:"low_stock_products"`
	TotalDamagedItems int     `json:"total_damaged_items"`
}

// EventDTO is a history log entry.
type EventDTO struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Kind        string `json:"kind"`
	KindLabel   string `json:"kind_label"`
	Timestamp   string `json:"timestamp"`
}

// TrendPointDTO is one cumulative point of a product's trend series.
type TrendPointDTO struct {
	Date         string `json:"date"`
	TotalStock   int    `json:"total_stock"`
	CleanStock   int    `json:"clean_stock"`
	DamagedStock int    `json:"damaged_stock"`
}

// StockActionRequest is the mutation request from the actions form.
type StockActionRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Kind      string `json:"kind" validate:"required,oneof=INBOUND OUTBOUND DAMAGED"`
}

// StockActionResponse is returned after a successful mutation.
type StockActionResponse struct {
	Product ProductDTO `json:"product"`
	Event   EventDTO   `json:"event"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toProductDTO(p ledger.Product) ProductDTO {
	s := ledger.Summarize(p)
	price, _ := p.Price.Float64()
	value, _ := s.CleanValue.Float64()
	return ProductDTO{
		ID:           p.ID,
		Name:         p.Name,
		Price:        price,
		TotalStock:   p.TotalStock,
		DamagedStock: p.DamagedStock,
		CleanStock:   s.CleanStock,
		CleanValue:   value,
		LowStock:     s.LowStock,
	}
}

func toEventDTO(ev ledger.StockEvent) EventDTO {
	return EventDTO{
		ID:          ev.ID,
		ProductID:   ev.ProductID,
		ProductName: ev.ProductName,
		Quantity:    ev.Quantity,
		Kind:        string(ev.Kind),
		KindLabel:   ledger.KindLabel(ev.Kind),
		Timestamp:   ev.Timestamp.Format(time.RFC3339),
	}
}

func toEventDTOs(events []ledger.StockEvent) []EventDTO {
	dtos := make([]EventDTO, len(events))
	for i, ev := range events {
		dtos[i] = toEventDTO(ev)
	}
	return dtos
}

func toTrendDTOs(points []ledger.TrendPoint) []TrendPointDTO {
	dtos := make([]TrendPointDTO, len(points))
	for i, p := range points {
		dtos[i] = TrendPointDTO{
			Date:         p.Timestamp.Format("2006-01-02"),
			TotalStock:   p.TotalStock,
			CleanStock:   p.CleanStock,
			DamagedStock: p.DamagedStock,
		}
	}
	return dtos
}
