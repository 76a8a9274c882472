package view

import (
	"strings"

	"github.com/yourorg/catalogadmin/internal/models"
)

// Visible drops showroom products that are out of stock. Search results are
// returned as-is so an operator can still find them.
func Visible(products []models.Product, searching bool) []models.Product {
	if searching {
		return products
	}
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.StockQuantity == 0 && isShowroom(p.MetaValue(models.MetaLocation)) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func isShowroom(location string) bool {
	return strings.EqualFold(strings.TrimSpace(location), models.LocationShowroom)
}
