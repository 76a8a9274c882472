package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Meta keys the server attaches to products.
const (
	MetaLocation    = "_localisation_produit"
	MetaUnit        = "_unite_produit"
	MetaPieces      = "_nombre_pieces"
	MetaRolls       = "_rouleaux_produit"
	MetaReservation = "_reservation"
	MetaPurchased   = "_stock_acheter"
	MetaReleased    = "_stock_sorti"
	MetaRemaining   = "_stock_restant"
	MetaObservation = "_observation_produit"
	MetaAssignment  = "_affectation"
)

// Taxonomy names used by the catalog views.
const (
	TaxonomyCategory    = "product_cat"
	TaxonomyProductType = "type_produit"
	TaxonomySupplier    = "fournisseur"
	TaxonomyDesign      = "design"
	TaxonomyColor       = "couleur"
)

type Product struct {
	ID               int64       `json:"id"`
	SKU              string      `json:"sku"`
	Name             string      `json:"name"`
	StockQuantity    int         `json:"stock_quantity"`
	Price            Price       `json:"price"`
	Images           []string    `json:"images"`
	Meta             []MetaEntry `json:"meta"`
	Taxonomies       Taxonomies  `json:"taxonomies"`
	ShortDescription string      `json:"short_description,omitempty"`
	Dimensions       *Dimensions `json:"dimensions,omitempty"`
	Weight           string      `json:"weight,omitempty"`
}

type MetaEntry struct {
	Key   string `json:"meta_key"`
	Value string `json:"meta_value"`
}

type Term struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Taxonomy struct {
	Terms []Term `json:"terms"`
}

type Dimensions struct {
	Length string `json:"length"`
	Width  string `json:"width"`
	Height string `json:"height"`
}

// Taxonomies maps a taxonomy name to its terms.
type Taxonomies map[string]Taxonomy

// UnmarshalJSON accepts an empty JSON array, which is how the server encodes
// a product without any taxonomy.
func (t *Taxonomies) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || trimmed[0] == '[' {
		*t = Taxonomies{}
		return nil
	}

	var m map[string]Taxonomy
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return fmt.Errorf("unmarshal taxonomies: %w", err)
	}
	*t = m
	return nil
}

// Price is a product price. The server sends numbers, numeric strings or "".
type Price struct {
	Amount decimal.Decimal
	Valid  bool
}

func NewPrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Price{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, fmt.Errorf("parse price %q: %w", s, err)
	}
	return Price{Amount: d, Valid: true}, nil
}

func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "null" {
		*p = Price{}
		return nil
	}
	parsed, err := NewPrice(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte(`""`), nil
	}
	return json.Marshal(p.Amount.String())
}

// IsPositive reports whether the product carries a usable price.
func (p Price) IsPositive() bool {
	return p.Valid && p.Amount.IsPositive()
}

// Fixed formats the price with two decimals.
func (p Price) Fixed() string {
	if !p.Valid {
		return ""
	}
	return p.Amount.StringFixed(2)
}

// MetaValue returns the value of the first meta entry with the given key.
func (p *Product) MetaValue(key string) string {
	for _, m := range p.Meta {
		if m.Key == key {
			return m.Value
		}
	}
	return ""
}

// SetMeta replaces the first entry with the given key or appends a new one.
func (p *Product) SetMeta(key, value string) {
	for i := range p.Meta {
		if p.Meta[i].Key == key {
			p.Meta[i].Value = value
			return
		}
	}
	p.Meta = append(p.Meta, MetaEntry{Key: key, Value: value})
}

// TaxonomyNames joins the term names of a taxonomy with ", ".
func (p *Product) TaxonomyNames(name string) string {
	tax, ok := p.Taxonomies[name]
	if !ok {
		return ""
	}
	names := make([]string, 0, len(tax.Terms))
	for _, term := range tax.Terms {
		if term.Name != "" {
			names = append(names, term.Name)
		}
	}
	return strings.Join(names, ", ")
}

func (p *Product) FirstTerm(name string) string {
	tax, ok := p.Taxonomies[name]
	if !ok || len(tax.Terms) == 0 {
		return ""
	}
	return tax.Terms[0].Name
}

func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Clone returns a deep copy so snapshots never alias controller state.
func (p Product) Clone() Product {
	out := p
	out.Images = append([]string(nil), p.Images...)
	out.Meta = append([]MetaEntry(nil), p.Meta...)
	if p.Taxonomies != nil {
		out.Taxonomies = make(Taxonomies, len(p.Taxonomies))
		for k, v := range p.Taxonomies {
			out.Taxonomies[k] = Taxonomy{Terms: append([]Term(nil), v.Terms...)}
		}
	}
	if p.Dimensions != nil {
		d := *p.Dimensions
		out.Dimensions = &d
	}
	return out
}

// ProductPage is one page of a product listing as reported by the server.
type ProductPage struct {
	Products      []Product
	Page          int
	TotalPages    int
	TotalProducts int
}
