package api

import (
	"github.com/yourorg/catalogadmin/internal/models"
	"github.com/yourorg/catalogadmin/internal/view"
)

// PageRequest moves the catalog to a page of the active query.
// @Description Request payload for a page change
type PageRequest struct {
	Page int `json:"page" validate:"required,min=1"`
}

// SearchRequest runs a text search from page 1. An empty term leaves search mode.
// @Description Request payload for a catalog search
type SearchRequest struct {
	Term string `json:"term" validate:"max=200"`
}

// FilterRequest applies taxonomy filters. Empty axes are unconstrained.
// @Description Request payload for filtering the catalog
type FilterRequest struct {
	Category    string `json:"category" validate:"max=200"`
	Supplier    string `json:"fournisseur" validate:"max=200"`
	ProductType string `json:"type_produit" validate:"max=200"`
	Design      string `json:"design" validate:"max=200"`
	Color       string `json:"couleur" validate:"max=200"`
	Page        int    `json:"page" validate:"omitempty,min=1"`
}

// PerPageRequest changes the page size.
// @Description Request payload for a page size change
type PerPageRequest struct {
	PerPage int `json:"per_page" validate:"required,min=1,max=100"`
}

// ViewRequest switches between the full catalog and incoming products.
// @Description Request payload for a view switch
type ViewRequest struct {
	View string `json:"view" validate:"required,oneof=all arrivals"`
}

// StockAdjustmentRequest is the product edit form.
// @Description Request payload for a location and stock movement
type StockAdjustmentRequest struct {
	Location  string `json:"localisation" validate:"required"`
	Purchased int    `json:"stock_acheter" validate:"min=0"`
	Released  int    `json:"stock_sorti" validate:"min=0"`
}

// ImageURLRequest links a remote image to a product.
// @Description Request payload for an image URL update
type ImageURLRequest struct {
	ImageURL string `json:"image_url" validate:"required,url,max=2048"`
	Gallery  bool   `json:"gallery"`
}

// ReservationRequest sets a product's reservation note.
// @Description Request payload for a reservation update
type ReservationRequest struct {
	Reservation string `json:"reservation" validate:"max=500"`
}

// ProductResponse represents a product resource in API responses.
// @Description Product resource
type ProductResponse struct {
	ID               int64              `json:"id"`
	SKU              string             `json:"sku"`
	Name             string             `json:"name"`
	StockQuantity    int                `json:"stock_quantity"`
	StockStatus      string             `json:"stock_status"`
	Price            string             `json:"price"`
	Images           []string           `json:"images"`
	Location         string             `json:"localisation"`
	Unit             string             `json:"unite"`
	Reservation      string             `json:"reservation"`
	Category         string             `json:"categorie"`
	Meta             []models.MetaEntry `json:"meta"`
	Taxonomies       models.Taxonomies  `json:"taxonomies"`
	ShortDescription string             `json:"short_description,omitempty"`
	Dimensions       *models.Dimensions `json:"dimensions,omitempty"`
	Weight           string             `json:"weight,omitempty"`
}

// FiltersResponse mirrors the active filter axes.
// @Description Active filters
type FiltersResponse struct {
	Category    string `json:"category"`
	Supplier    string `json:"fournisseur"`
	ProductType string `json:"type_produit"`
	Design      string `json:"design"`
	Color       string `json:"couleur"`
}

// SortResponse echoes the applied display sort.
// @Description Display sort
type SortResponse struct {
	Key       string `json:"key,omitempty"`
	Direction string `json:"dir,omitempty"`
}

// CatalogResponse is what the catalog screen renders.
// @Description Catalog view state
type CatalogResponse struct {
	Products      []ProductResponse `json:"products"`
	Page          int               `json:"page"`
	PerPage       int               `json:"per_page"`
	TotalPages    int               `json:"total_pages"`
	TotalProducts int               `json:"total_products"`
	Pages         []int             `json:"pages"`
	Filters       FiltersResponse   `json:"filters"`
	Search        string            `json:"search"`
	Searching     bool              `json:"searching"`
	View          string            `json:"view"`
	Loading       bool              `json:"loading"`
	Error         string            `json:"error,omitempty"`
	Stats         view.Stats        `json:"stats"`
	Sort          SortResponse      `json:"sort"`
}

// TermResponse is one selectable filter value.
// @Description Filter value
type TermResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// FilterOptionsResponse lists the values each filter axis offers.
// @Description Filter vocabulary
type FilterOptionsResponse struct {
	Categories   []TermResponse `json:"categories"`
	Suppliers    []TermResponse `json:"fournisseurs"`
	ProductTypes []TermResponse `json:"types_produits"`
	Designs      []TermResponse `json:"design"`
	Colors       []TermResponse `json:"couleur"`
}

// MetaUpdateResponse carries the catalog server's answer to a product update.
// @Description Product update result
type MetaUpdateResponse struct {
	Result         map[string]any  `json:"result"`
	PreviousStock  int             `json:"previous_stock"`
	ProjectedStock int             `json:"projected_stock"`
	Catalog        CatalogResponse `json:"catalog"`
}

// ImageResponse carries the stored image URL.
// @Description Image update result
type ImageResponse struct {
	ImageURL string `json:"image_url"`
	Gallery  bool   `json:"gallery"`
}

func (f FilterRequest) criteria() models.FilterCriteria {
	return models.FilterCriteria{
		Category:    f.Category,
		Supplier:    f.Supplier,
		ProductType: f.ProductType,
		Design:      f.Design,
		Color:       f.Color,
	}
}

func convertToProductResponse(p *models.Product) ProductResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	meta := p.Meta
	if meta == nil {
		meta = []models.MetaEntry{}
	}
	return ProductResponse{
		ID:               p.ID,
		SKU:              p.SKU,
		Name:             p.Name,
		StockQuantity:    p.StockQuantity,
		StockStatus:      string(view.StockStatus(p.StockQuantity)),
		Price:            p.Price.Fixed(),
		Images:           images,
		Location:         p.MetaValue(models.MetaLocation),
		Unit:             p.MetaValue(models.MetaUnit),
		Reservation:      p.MetaValue(models.MetaReservation),
		Category:         p.FirstTerm(models.TaxonomyCategory),
		Meta:             meta,
		Taxonomies:       p.Taxonomies,
		ShortDescription: p.ShortDescription,
		Dimensions:       p.Dimensions,
		Weight:           p.Weight,
	}
}

func convertToCatalogResponse(st models.CatalogState, s view.Sort) CatalogResponse {
	visible := view.SortProducts(view.Visible(st.Products, st.Searching), s)
	products := make([]ProductResponse, len(visible))
	for i := range visible {
		products[i] = convertToProductResponse(&visible[i])
	}

	mode := "all"
	if st.ArrivalView {
		mode = "arrivals"
	}

	return CatalogResponse{
		Products:      products,
		Page:          st.Page,
		PerPage:       st.PerPage,
		TotalPages:    st.TotalPages,
		TotalProducts: st.TotalProducts,
		Pages:         view.PageWindow(st.Page, st.TotalPages),
		Filters: FiltersResponse{
			Category:    st.ActiveFilters.Category,
			Supplier:    st.ActiveFilters.Supplier,
			ProductType: st.ActiveFilters.ProductType,
			Design:      st.ActiveFilters.Design,
			Color:       st.ActiveFilters.Color,
		},
		Search:    st.ActiveSearch,
		Searching: st.Searching,
		View:      mode,
		Loading:   st.Loading,
		Error:     st.Error,
		Stats:     view.ComputeStats(visible, st.TotalProducts),
		Sort:      SortResponse{Key: string(s.Key), Direction: string(s.Direction)},
	}
}

func convertTerms(terms []models.Term) []TermResponse {
	out := make([]TermResponse, len(terms))
	for i, t := range terms {
		out[i] = TermResponse{ID: t.ID, Name: t.Name, Slug: t.Slug}
	}
	return out
}

func convertToFilterOptionsResponse(opts models.FilterOptions) FilterOptionsResponse {
	return FilterOptionsResponse{
		Categories:   convertTerms(opts.Categories),
		Suppliers:    convertTerms(opts.Suppliers),
		ProductTypes: convertTerms(opts.ProductTypes),
		Designs:      convertTerms(opts.Designs),
		Colors:       convertTerms(opts.Colors),
	}
}
