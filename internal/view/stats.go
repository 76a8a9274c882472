package view

import "github.com/yourorg/catalogadmin/internal/models"

// LowStockThreshold is the highest quantity still counted as low stock.
const LowStockThreshold = 10

type StockLevel string

const (
	StockInStock StockLevel = "in_stock"
	StockLow     StockLevel = "low"
	StockOut     StockLevel = "out"
)

func StockStatus(qty int) StockLevel {
	switch {
	case qty > LowStockThreshold:
		return StockInStock
	case qty > 0:
		return StockLow
	default:
		return StockOut
	}
}

type Stats struct {
	Total    int `json:"total"`
	InStock  int `json:"in_stock"`
	LowStock int `json:"low_stock"`
}

// ComputeStats counts over the displayed page. Total is the server's count.
func ComputeStats(products []models.Product, total int) Stats {
	s := Stats{Total: total}
	for _, p := range products {
		if p.StockQuantity > 0 {
			s.InStock++
		}
		if p.StockQuantity > 0 && p.StockQuantity <= LowStockThreshold {
			s.LowStock++
		}
	}
	return s
}
