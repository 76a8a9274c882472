package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductUnmarshal(t *testing.T) {
	raw := `{
		"id": 12,
		"sku": "TAP-001",
		"name": "Tapis berbère",
		"stock_quantity": 7,
		"price": "1250.5",
		"images": ["https://cdn.example.com/1.jpg"],
		"meta": [{"meta_key": "_localisation_produit", "meta_value": "Showroom"}],
		"taxonomies": {"product_cat": {"terms": [{"id": 3, "name": "Tapis", "slug": "tapis"}, {"id": 4, "name": "Laine", "slug": "laine"}]}},
		"dimensions": {"length": "200", "width": "300", "height": ""}
	}`

	var p Product
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, int64(12), p.ID)
	assert.Equal(t, "1250.50", p.Price.Fixed())
	assert.True(t, p.Price.IsPositive())
	assert.Equal(t, "Showroom", p.MetaValue(MetaLocation))
	assert.Equal(t, "Tapis, Laine", p.TaxonomyNames(TaxonomyCategory))
	assert.Equal(t, "Tapis", p.FirstTerm(TaxonomyCategory))
	assert.Equal(t, "https://cdn.example.com/1.jpg", p.PrimaryImage())
	require.NotNil(t, p.Dimensions)
	assert.Equal(t, "300", p.Dimensions.Width)
}

func TestTaxonomiesAcceptEmptyArray(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "taxonomies": []}`), &p))

	assert.NotNil(t, p.Taxonomies)
	assert.Empty(t, p.Taxonomies)
	assert.Empty(t, p.FirstTerm(TaxonomyCategory))
}

func TestPriceUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		valid    bool
		fixed    string
		positive bool
	}{
		{name: "number", raw: `99.9`, valid: true, fixed: "99.90", positive: true},
		{name: "string", raw: `"15"`, valid: true, fixed: "15.00", positive: true},
		{name: "empty string", raw: `""`},
		{name: "null", raw: `null`},
		{name: "zero", raw: `"0"`, valid: true, fixed: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Price
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &p))
			assert.Equal(t, tt.valid, p.Valid)
			assert.Equal(t, tt.fixed, p.Fixed())
			assert.Equal(t, tt.positive, p.IsPositive())
		})
	}
}

func TestPriceRejectsGarbage(t *testing.T) {
	var p Price
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &p))
}

func TestSetMetaReplacesOrAppends(t *testing.T) {
	p := Product{Meta: []MetaEntry{{Key: MetaReservation, Value: "old"}}}

	p.SetMeta(MetaReservation, "new")
	p.SetMeta(MetaUnit, "m2")

	assert.Equal(t, "new", p.MetaValue(MetaReservation))
	assert.Equal(t, "m2", p.MetaValue(MetaUnit))
	assert.Len(t, p.Meta, 2)
}

func TestCloneIsDeep(t *testing.T) {
	p := Product{
		Images:     []string{"a"},
		Meta:       []MetaEntry{{Key: "k", Value: "v"}},
		Taxonomies: Taxonomies{TaxonomyColor: {Terms: []Term{{Name: "Rouge"}}}},
		Dimensions: &Dimensions{Length: "1"},
	}

	c := p.Clone()
	c.Images[0] = "b"
	c.Meta[0].Value = "x"
	c.Taxonomies[TaxonomyColor].Terms[0].Name = "Bleu"
	c.Dimensions.Length = "2"

	assert.Equal(t, "a", p.Images[0])
	assert.Equal(t, "v", p.Meta[0].Value)
	assert.Equal(t, "Rouge", p.FirstTerm(TaxonomyColor))
	assert.Equal(t, "1", p.Dimensions.Length)
}
