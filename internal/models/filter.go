package models

import (
	"net/url"
	"strings"
)

// FilterCriteria holds the axes accepted by the server's filter endpoint.
// An empty value means no constraint on that axis.
type FilterCriteria struct {
	Category    string `json:"category,omitempty"`
	Supplier    string `json:"fournisseur,omitempty"`
	ProductType string `json:"type_produit,omitempty"`
	Design      string `json:"design,omitempty"`
	Color       string `json:"couleur,omitempty"`
}

// Normalize trims every axis.
func (f FilterCriteria) Normalize() FilterCriteria {
	return FilterCriteria{
		Category:    strings.TrimSpace(f.Category),
		Supplier:    strings.TrimSpace(f.Supplier),
		ProductType: strings.TrimSpace(f.ProductType),
		Design:      strings.TrimSpace(f.Design),
		Color:       strings.TrimSpace(f.Color),
	}
}

// IsZero reports whether no axis is constrained.
func (f FilterCriteria) IsZero() bool {
	return f.Normalize() == FilterCriteria{}
}

// Values returns the query parameters for the constrained axes only.
func (f FilterCriteria) Values() url.Values {
	n := f.Normalize()
	v := url.Values{}
	for _, kv := range [...]struct{ key, value string }{
		{"category", n.Category},
		{"fournisseur", n.Supplier},
		{"type_produit", n.ProductType},
		{"design", n.Design},
		{"couleur", n.Color},
	} {
		if kv.value != "" {
			v.Set(kv.key, kv.value)
		}
	}
	return v
}

// FilterOptions is the vocabulary of values the filter panel offers.
type FilterOptions struct {
	Categories   []Term `json:"categories"`
	Suppliers    []Term `json:"fournisseurs"`
	ProductTypes []Term `json:"types_produits"`
	Designs      []Term `json:"design"`
	Colors       []Term `json:"couleur"`
}
