package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yourorg/catalogadmin/internal/models"
)

// ParseIDs reads a comma-separated list of product ids. Blank entries are
// skipped.
func ParseIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid product id %q", part)
		}
		ids = append(ids, n)
	}
	return ids, nil
}

// Select keeps the products whose ids are listed, in list order. An empty
// list selects everything.
func Select(products []models.Product, ids []int64) []models.Product {
	if len(ids) == 0 {
		return products
	}
	byID := make(map[int64]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	out := make([]models.Product, 0, len(ids))
	for _, productID := range ids {
		if p, ok := byID[productID]; ok {
			out = append(out, p)
		}
	}
	return out
}
