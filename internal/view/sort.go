package view

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yourorg/catalogadmin/internal/models"
)

type SortKey string

const (
	SortSKU         SortKey = "sku"
	SortName        SortKey = "name"
	SortStock       SortKey = "stock_quantity"
	SortUnit        SortKey = "unite"
	SortStatus      SortKey = "statut"
	SortCategory    SortKey = "categorie"
	SortReservation SortKey = "reservation"
)

var sortKeys = []SortKey{SortSKU, SortName, SortStock, SortUnit, SortStatus, SortCategory, SortReservation}

type Direction string

const (
	DirectionNone Direction = ""
	DirectionAsc  Direction = "asc"
	DirectionDesc Direction = "desc"
)

type Sort struct {
	Key       SortKey
	Direction Direction
}

// ParseSort reads a sort from query values. An empty key means unsorted.
func ParseSort(key, direction string) (Sort, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	direction = strings.TrimSpace(strings.ToLower(direction))
	if key == "" {
		return Sort{}, nil
	}
	if !slices.Contains(sortKeys, SortKey(key)) {
		return Sort{}, fmt.Errorf("unknown sort key %q", key)
	}
	switch Direction(direction) {
	case DirectionAsc, DirectionNone:
		return Sort{Key: SortKey(key), Direction: DirectionAsc}, nil
	case DirectionDesc:
		return Sort{Key: SortKey(key), Direction: DirectionDesc}, nil
	default:
		return Sort{}, fmt.Errorf("unknown sort direction %q", direction)
	}
}

// NextSort is the sort after a click on a column header.
func NextSort(current Sort, key SortKey) Sort {
	if current.Key != key || current.Direction == DirectionNone {
		return Sort{Key: key, Direction: DirectionAsc}
	}
	if current.Direction == DirectionAsc {
		return Sort{Key: key, Direction: DirectionDesc}
	}
	return Sort{}
}

// SortProducts returns a sorted copy. Ties keep their server order.
func SortProducts(products []models.Product, s Sort) []models.Product {
	out := slices.Clone(products)
	if s.Key == "" || s.Direction == DirectionNone {
		return out
	}

	slices.SortStableFunc(out, func(a, b models.Product) int {
		c := compare(a, b, s.Key)
		if s.Direction == DirectionDesc {
			return -c
		}
		return c
	})
	return out
}

func compare(a, b models.Product, key SortKey) int {
	if key == SortStock {
		return a.StockQuantity - b.StockQuantity
	}
	return strings.Compare(strings.ToLower(sortValue(a, key)), strings.ToLower(sortValue(b, key)))
}

func sortValue(p models.Product, key SortKey) string {
	switch key {
	case SortSKU:
		return p.SKU
	case SortName:
		return p.Name
	case SortUnit:
		return p.MetaValue(models.MetaUnit)
	case SortStatus:
		return p.MetaValue(models.MetaLocation)
	case SortCategory:
		return p.FirstTerm(models.TaxonomyCategory)
	case SortReservation:
		return p.MetaValue(models.MetaReservation)
	}
	return ""
}
