package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nhalm/canonlog"
	"github.com/yourorg/catalogadmin/internal/apperrors"
	"github.com/yourorg/catalogadmin/internal/export"
	"github.com/yourorg/catalogadmin/internal/id"
	"github.com/yourorg/catalogadmin/internal/models"
	"github.com/yourorg/catalogadmin/internal/service"
	"github.com/yourorg/catalogadmin/internal/view"
)

// CatalogService defines only the methods the API layer needs from the catalog controller.
type CatalogService interface {
	Snapshot() models.CatalogState
	FetchFilterOptions(ctx context.Context) error
	FetchPage(ctx context.Context, page, perPage int, search string) error
	ApplyFilter(ctx context.Context, criteria models.FilterCriteria, page int) error
	GoToPage(ctx context.Context, page int) error
	NextPage(ctx context.Context) error
	PreviousPage(ctx context.Context) error
	ChangePerPage(ctx context.Context, perPage int) error
	Refresh(ctx context.Context) error
	ResetFilters(ctx context.Context) error
	ShowArrivals(ctx context.Context) error
	ShowAll(ctx context.Context) error
	AdjustStock(ctx context.Context, productID int64, adj models.StockAdjustment) (*models.StockUpdate, error)
	UpdateProductImage(ctx context.Context, productID int64, source models.ImageSource, opts models.ImageOptions) (*models.ImageResult, error)
	UpdateReservation(ctx context.Context, productID int64, value string) error
	Product(ctx context.Context, productID int64) (*models.Product, error)
	AllProducts(ctx context.Context, search string) ([]models.Product, error)
}

// CatalogExporter renders products to PDF.
type CatalogExporter interface {
	Render(ctx context.Context, w io.Writer, products []models.Product, opts export.Options) error
}

type Handler struct {
	catalog    CatalogService
	exporter   CatalogExporter
	exportOpts export.Options
}

func NewHandler(catalog CatalogService, exporter CatalogExporter, exportOpts export.Options) *Handler {
	return &Handler{
		catalog:    catalog,
		exporter:   exporter,
		exportOpts: exportOpts,
	}
}

// GetCatalog godoc
// @Summary Current catalog page
// @Tags catalog
// @Produce json
// @Param sort query string false "Sort key" Enums(sku, name, stock_quantity, unite, statut, categorie, reservation)
// @Param dir query string false "Sort direction" Enums(asc, desc)
// @Param toggle query string false "Column header clicked; cycles asc, desc, unsorted from the given sort"
// @Success 200 {object} CatalogResponse
// @Failure 400 {object} ErrorResponse
// @Router /catalog [get]
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	s, err := view.ParseSort(query.Get("sort"), query.Get("dir"))
	if err != nil {
		BadRequest(w, r, err, err.Error(), "sort")
		return
	}
	if toggle := query.Get("toggle"); toggle != "" {
		clicked, err := view.ParseSort(toggle, "")
		if err != nil {
			BadRequest(w, r, err, err.Error(), "toggle")
			return
		}
		if clicked.Key != "" {
			s = view.NextSort(s, clicked.Key)
		}
	}
	Success(w, convertToCatalogResponse(h.catalog.Snapshot(), s))
}

// GetFilterOptions godoc
// @Summary Filter vocabulary
// @Tags catalog
// @Produce json
// @Param refresh query bool false "Reload from the catalog server"
// @Success 200 {object} FilterOptionsResponse
// @Failure 502 {object} ErrorResponse
// @Router /catalog/filters [get]
func (h *Handler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	if refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh")); refresh {
		if err := h.catalog.FetchFilterOptions(r.Context()); err != nil {
			handleServiceError(w, r, err)
			return
		}
	}
	Success(w, convertToFilterOptionsResponse(h.catalog.Snapshot().FilterOptions))
}

// GoToPage godoc
// @Summary Go to a page of the active query
// @Tags catalog
// @Accept json
// @Produce json
// @Param body body PageRequest true "Page"
// @Success 200 {object} CatalogResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /catalog/page [post]
func (h *Handler) GoToPage(w http.ResponseWriter, r *http.Request) {
	var req PageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.runAction(w, r, func(ctx context.Context) error { return h.catalog.GoToPage(ctx, req.Page) })
}

// NextPage godoc
// @Summary Next page of the active query
// @Tags catalog
// @Produce json
// @Success 200 {object} CatalogResponse
// @Failure 502 {object} ErrorResponse
// @Router /catalog/next [post]
func (h *Handler) NextPage(w http.ResponseWriter, r *http.Request) {
	h.runAction(w, r, h.catalog.NextPage)
}

// PreviousPage godoc
// @Summary Previous page of the active query
// @Tags catalog
// @Produce json
// @Success 200 {object} CatalogResponse
// @Failure 502 {object} ErrorResponse
// @Router /catalog/previous [post]
func (h *Handler) PreviousPage(w http.ResponseWriter, r *http.Request) {
	h.runAction(w, r, h.catalog.PreviousPage)
}

// Search godoc
// @Summary Search the catalog
// @Tags catalog
// @Accept json
// @Produce json
// @Param body body SearchRequest true "Search term"
// @Success 200 {object} CatalogResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /catalog/search [post]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	canonlog.AddRequestFields(r.Context(), map[string]any{"search": req.Term})
	perPage := h.catalog.Snapshot().PerPage
	h.runAction(w, r, func(ctx context.Context) error { return h.catalog.FetchPage(ctx, 1, perPage, req.Term) })
}

// ApplyFilter godoc
// @Summary Filter the catalog
// @Tags catalog
// @Accept json
// @Produce json
// @Param body body FilterRequest true "Filter criteria"
// @Success 200 {object} CatalogResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /catalog/filter [post]
func (h *Handler) ApplyFilter(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	criteria := req.criteria()
	canonlog.AddRequestFields(r.Context(), map[string]any{"filters": criteria.Values().Encode()})
	h.runAction(w, r, func(ctx context.Context) error { return h.catalog.ApplyFilter(ctx, criteria, req.Page) })
}

// ResetFilters godoc
// @Summary Clear filters and search
// @Tags catalog
// @Produce json
// @Success 200 {object} CatalogResponse
// @Failure 502 {object} ErrorResponse
// @Router /catalog/reset [post]
func (h *Handler) ResetFilters(w http.ResponseWriter, r *http.Request) {
	h.runAction(w, r, h.catalog.ResetFilters)
}

// ChangePerPage godoc
// @Summary Change the page size
// @Tags catalog
// @Accept json
// @Produce json
// @Param body body PerPageRequest true "Page size"
// @Success 200 {object} CatalogResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /catalog/per-page [post]
func (h *Handler) ChangePerPage(w http.ResponseWriter, r *http.Request) {
	var req PerPageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.runAction(w, r, func(ctx context.Context) error { return h.catalog.ChangePerPage(ctx, req.PerPage) })
}

// SwitchView godoc
// @Summary Switch between all products and incoming products
// @Tags catalog
// @Accept json
// @Produce json
// @Param body body ViewRequest true "View"
// @Success 200 {object} CatalogResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /catalog/view [post]
func (h *Handler) SwitchView(w http.ResponseWriter, r *http.Request) {
	var req ViewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	action := h.catalog.ShowAll
	if req.View == "arrivals" {
		action = h.catalog.ShowArrivals
	}
	h.runAction(w, r, action)
}

// Refresh godoc
// @Summary Reload the current page
// @Tags catalog
// @Produce json
// @Success 200 {object} CatalogResponse
// @Failure 502 {object} ErrorResponse
// @Router /catalog/refresh [post]
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.runAction(w, r, h.catalog.Refresh)
}

// GetProduct godoc
// @Summary Get a product
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /products/{id} [get]
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	product, err := h.catalog.Product(r.Context(), productID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, convertToProductResponse(product))
}

// UpdateProductMeta godoc
// @Summary Move stock and set the location of a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param body body StockAdjustmentRequest true "Stock movement"
// @Success 200 {object} MetaUpdateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /products/{id}/meta [post]
func (h *Handler) UpdateProductMeta(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}
	var req StockAdjustmentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	canonlog.AddRequestFields(r.Context(), map[string]any{
		"product_id":    productID,
		"localisation":  req.Location,
		"stock_acheter": req.Purchased,
		"stock_sorti":   req.Released,
	})

	update, err := h.catalog.AdjustStock(r.Context(), productID, models.StockAdjustment{
		Location:  req.Location,
		Purchased: req.Purchased,
		Released:  req.Released,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	result := update.Result
	if result == nil {
		result = map[string]any{}
	}
	Success(w, MetaUpdateResponse{
		Result:         result,
		PreviousStock:  update.CurrentStock,
		ProjectedStock: update.ProjectedStock,
		Catalog:        convertToCatalogResponse(h.catalog.Snapshot(), view.Sort{}),
	})
}

// UpdateProductImage godoc
// @Summary Replace the primary image or add a gallery image
// @Tags products
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param image formData file false "Image file (JPEG, PNG, WEBP, GIF, 5 MB max)"
// @Param gallery formData bool false "Append to the gallery"
// @Param body body ImageURLRequest false "Image URL"
// @Success 200 {object} ImageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /products/{id}/image [post]
func (h *Handler) UpdateProductImage(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	source, opts, ok := decodeImageRequest(w, r)
	if !ok {
		return
	}

	canonlog.AddRequestFields(r.Context(), map[string]any{
		"product_id": productID,
		"gallery":    opts.Gallery,
		"upload":     source.File != nil,
	})

	result, err := h.catalog.UpdateProductImage(r.Context(), productID, source, opts)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, ImageResponse{ImageURL: result.ImageURL, Gallery: opts.Gallery})
}

// UpdateReservation godoc
// @Summary Set a product's reservation note
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param body body ReservationRequest true "Reservation"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /products/{id}/reservation [post]
func (h *Handler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}
	var req ReservationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.catalog.UpdateReservation(r.Context(), productID, req.Reservation); err != nil {
		handleServiceError(w, r, err)
		return
	}

	for _, p := range h.catalog.Snapshot().Products {
		if p.ID == productID {
			Success(w, convertToProductResponse(&p))
			return
		}
	}
	product, err := h.catalog.Product(r.Context(), productID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	Success(w, convertToProductResponse(product))
}

// ExportCatalog godoc
// @Summary Export products as a PDF catalog
// @Tags export
// @Produce application/pdf
// @Param ids query string false "Comma-separated product IDs, all products when empty"
// @Param search query string false "Restrict to a search"
// @Param show_price query bool false "Print prices" default(true)
// @Param show_dimensions query bool false "Print dimensions and weight" default(true)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /export/catalog.pdf [get]
func (h *Handler) ExportCatalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	ids, err := view.ParseIDs(q.Get("ids"))
	if err != nil {
		BadRequest(w, r, err, err.Error(), "ids")
		return
	}
	opts := h.exportOpts
	if opts.ShowPrice, err = boolParam(q.Get("show_price"), opts.ShowPrice); err != nil {
		BadRequest(w, r, err, "show_price must be a boolean", "show_price")
		return
	}
	if opts.ShowDimensions, err = boolParam(q.Get("show_dimensions"), opts.ShowDimensions); err != nil {
		BadRequest(w, r, err, "show_dimensions must be a boolean", "show_dimensions")
		return
	}

	exportID := id.NewExportID()
	products, err := h.catalog.AllProducts(r.Context(), q.Get("search"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	products = view.Select(products, ids)

	canonlog.AddRequestFields(r.Context(), map[string]any{
		"export_id":       exportID,
		"export_count":    len(products),
		"show_price":      opts.ShowPrice,
		"show_dimensions": opts.ShowDimensions,
	})

	buf := &bytes.Buffer{}
	if err := h.exporter.Render(r.Context(), buf, products, opts); err != nil {
		handleServiceError(w, r, err)
		return
	}

	PDF(w, fmt.Sprintf("catalogue-%s.pdf", time.Now().Format("2006-01-02")), buf.Bytes())
}

// runAction performs a catalog action and answers with the resulting view.
func (h *Handler) runAction(w http.ResponseWriter, r *http.Request, action func(context.Context) error) {
	if err := action(r.Context()); err != nil {
		handleServiceError(w, r, err)
		return
	}
	Success(w, convertToCatalogResponse(h.catalog.Snapshot(), view.Sort{}))
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
			BadRequest(w, r, err, "invalid request body", "")
			return false
		}
	}
	if err := ValidateStruct(dst); err != nil {
		BadRequest(w, r, err, err.Error(), "")
		return false
	}
	return true
}

func decodeImageRequest(w http.ResponseWriter, r *http.Request) (models.ImageSource, models.ImageOptions, bool) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req ImageURLRequest
		if !decodeAndValidate(w, r, &req) {
			return models.ImageSource{}, models.ImageOptions{}, false
		}
		return models.ImageSource{URL: req.ImageURL}, models.ImageOptions{Gallery: req.Gallery}, true
	}

	if err := r.ParseMultipartForm(service.MaxImageBytes); err != nil {
		BadRequest(w, r, err, "invalid multipart body", "image")
		return models.ImageSource{}, models.ImageOptions{}, false
	}
	gallery, err := boolParam(r.FormValue("gallery"), false)
	if err != nil {
		BadRequest(w, r, err, "gallery must be a boolean", "gallery")
		return models.ImageSource{}, models.ImageOptions{}, false
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		BadRequest(w, r, err, "image file is required", "image")
		return models.ImageSource{}, models.ImageOptions{}, false
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxImageBytes+1))
	if err != nil {
		BadRequest(w, r, err, "could not read image", "image")
		return models.ImageSource{}, models.ImageOptions{}, false
	}
	return models.ImageSource{File: &models.ImageFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}}, models.ImageOptions{Gallery: gallery}, true
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	productID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || productID < 1 {
		err = apperrors.NewValidationError("id", "id must be a positive integer")
		BadRequest(w, r, err, "id must be a positive integer", "id")
		return 0, false
	}
	return productID, true
}

func boolParam(raw string, fallback bool) (bool, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseBool(raw)
}
