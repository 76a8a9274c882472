package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourorg/catalogadmin/internal/apperrors"
	"github.com/yourorg/catalogadmin/internal/export"
	"github.com/yourorg/catalogadmin/internal/models"
)

type stubCatalog struct {
	state models.CatalogState
	err   error
	calls []string

	page     int
	perPage  int
	search   string
	criteria models.FilterCriteria
	adj      models.StockAdjustment
	source   models.ImageSource
	imgOpts  models.ImageOptions
	reserved string
	all      []models.Product
	product  *models.Product
}

func (s *stubCatalog) record(call string) error {
	s.calls = append(s.calls, call)
	return s.err
}

func (s *stubCatalog) Snapshot() models.CatalogState { return s.state }

func (s *stubCatalog) FetchFilterOptions(context.Context) error { return s.record("options") }

func (s *stubCatalog) FetchPage(_ context.Context, page, perPage int, search string) error {
	s.page, s.perPage, s.search = page, perPage, search
	return s.record("fetch")
}

func (s *stubCatalog) ApplyFilter(_ context.Context, criteria models.FilterCriteria, page int) error {
	s.criteria, s.page = criteria, page
	return s.record("filter")
}

func (s *stubCatalog) GoToPage(_ context.Context, page int) error {
	s.page = page
	return s.record("page")
}

func (s *stubCatalog) NextPage(context.Context) error     { return s.record("next") }
func (s *stubCatalog) PreviousPage(context.Context) error { return s.record("previous") }

func (s *stubCatalog) ChangePerPage(_ context.Context, perPage int) error {
	s.perPage = perPage
	return s.record("per_page")
}

func (s *stubCatalog) Refresh(context.Context) error      { return s.record("refresh") }
func (s *stubCatalog) ResetFilters(context.Context) error { return s.record("reset") }
func (s *stubCatalog) ShowArrivals(context.Context) error { return s.record("arrivals") }
func (s *stubCatalog) ShowAll(context.Context) error      { return s.record("all") }

func (s *stubCatalog) AdjustStock(_ context.Context, _ int64, adj models.StockAdjustment) (*models.StockUpdate, error) {
	s.adj = adj
	if err := s.record("adjust"); err != nil {
		return nil, err
	}
	return &models.StockUpdate{Result: map[string]any{"success": true}, CurrentStock: 5, ProjectedStock: adj.Projected(5)}, nil
}

func (s *stubCatalog) UpdateProductImage(_ context.Context, _ int64, source models.ImageSource, opts models.ImageOptions) (*models.ImageResult, error) {
	s.source, s.imgOpts = source, opts
	if err := s.record("image"); err != nil {
		return nil, err
	}
	return &models.ImageResult{ImageURL: "https://cdn.example.com/new.jpg"}, nil
}

func (s *stubCatalog) UpdateReservation(_ context.Context, _ int64, value string) error {
	s.reserved = value
	return s.record("reservation")
}

func (s *stubCatalog) Product(_ context.Context, productID int64) (*models.Product, error) {
	if err := s.record("product"); err != nil {
		return nil, err
	}
	if s.product == nil {
		return nil, apperrors.NewNotFoundError("product", "x")
	}
	return s.product, nil
}

func (s *stubCatalog) AllProducts(_ context.Context, search string) ([]models.Product, error) {
	s.search = search
	if err := s.record("all_products"); err != nil {
		return nil, err
	}
	return s.all, nil
}

type stubExporter struct {
	products []models.Product
	opts     export.Options
}

func (e *stubExporter) Render(_ context.Context, w io.Writer, products []models.Product, opts export.Options) error {
	e.products, e.opts = products, opts
	if len(products) == 0 {
		return apperrors.NewValidationError("products", "no products to export")
	}
	_, err := io.WriteString(w, "%PDF-1.3 stub")
	return err
}

func newTestServer(catalog *stubCatalog, exporter *stubExporter) http.Handler {
	h := NewHandler(catalog, exporter, export.DefaultOptions())
	cfg := DefaultRouteConfig()
	cfg.ReadRPS = 1000
	cfg.WriteRPS = 1000
	return h.RoutesWithConfig(cfg)
}

func sampleState() models.CatalogState {
	showroomEmpty := models.Product{ID: 1, SKU: "B", StockQuantity: 0, Meta: []models.MetaEntry{{Key: models.MetaLocation, Value: "Showroom"}}}
	return models.CatalogState{
		Products: []models.Product{
			{ID: 2, SKU: "C", StockQuantity: 4},
			showroomEmpty,
			{ID: 3, SKU: "A", StockQuantity: 30},
		},
		Page:          2,
		PerPage:       10,
		TotalPages:    12,
		TotalProducts: 115,
	}
}

func do(t *testing.T, srv http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeCatalog(t *testing.T, rec *httptest.ResponseRecorder) CatalogResponse {
	t.Helper()
	var resp CatalogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestGetCatalogHidesEmptyShowroomAndSorts(t *testing.T) {
	srv := newTestServer(&stubCatalog{state: sampleState()}, &stubExporter{})

	rec := do(t, srv, http.MethodGet, "/api/v1/catalog?sort=sku&dir=asc", "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeCatalog(t, rec)
	require.Len(t, resp.Products, 2)
	assert.Equal(t, "A", resp.Products[0].SKU)
	assert.Equal(t, "in_stock", resp.Products[0].StockStatus)
	assert.Equal(t, "C", resp.Products[1].SKU)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, resp.Pages)
	assert.Equal(t, 115, resp.Stats.Total)
	assert.Equal(t, 1, resp.Stats.LowStock)
	assert.Equal(t, "all", resp.View)
	assert.Equal(t, "sku", resp.Sort.Key)
}

func TestGetCatalogToggleCyclesSort(t *testing.T) {
	srv := newTestServer(&stubCatalog{state: sampleState()}, &stubExporter{})

	tests := []struct {
		query   string
		wantKey string
		wantDir string
	}{
		{query: "toggle=sku", wantKey: "sku", wantDir: "asc"},
		{query: "sort=sku&dir=asc&toggle=sku", wantKey: "sku", wantDir: "desc"},
		{query: "sort=sku&dir=desc&toggle=sku", wantKey: "", wantDir: ""},
		{query: "sort=sku&dir=desc&toggle=name", wantKey: "name", wantDir: "asc"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := do(t, srv, http.MethodGet, "/api/v1/catalog?"+tt.query, "")
			require.Equal(t, http.StatusOK, rec.Code)
			resp := decodeCatalog(t, rec)
			assert.Equal(t, tt.wantKey, resp.Sort.Key)
			assert.Equal(t, tt.wantDir, resp.Sort.Direction)
		})
	}

	rec := do(t, srv, http.MethodGet, "/api/v1/catalog?toggle=price", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "toggle", decodeError(t, rec).Error.Param)
}

func TestGetCatalogRejectsUnknownSort(t *testing.T) {
	srv := newTestServer(&stubCatalog{state: sampleState()}, &stubExporter{})

	rec := do(t, srv, http.MethodGet, "/api/v1/catalog?sort=price", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "sort", decodeError(t, rec).Error.Param)
}

func TestSearchStartsAtFirstPage(t *testing.T) {
	catalog := &stubCatalog{state: sampleState()}
	srv := newTestServer(catalog, &stubExporter{})

	rec := do(t, srv, http.MethodPost, "/api/v1/catalog/search", `{"term":"tile"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"fetch"}, catalog.calls)
	assert.Equal(t, 1, catalog.page)
	assert.Equal(t, 10, catalog.perPage)
	assert.Equal(t, "tile", catalog.search)
}

func TestFilterPassesCriteria(t *testing.T) {
	catalog := &stubCatalog{state: sampleState()}
	srv := newTestServer(catalog, &stubExporter{})

	rec := do(t, srv, http.MethodPost, "/api/v1/catalog/filter", `{"category":"rugs","couleur":"rouge","page":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.FilterCriteria{Category: "rugs", Color: "rouge"}, catalog.criteria)
	assert.Equal(t, 2, catalog.page)
}

func TestPageRequestValidation(t *testing.T) {
	catalog := &stubCatalog{state: sampleState()}
	srv := newTestServer(catalog, &stubExporter{})

	rec := do(t, srv, http.MethodPost, "/api/v1/catalog/page", `{"page":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Error.Message, "page is required")

	rec = do(t, srv, http.MethodPost, "/api/v1/catalog/page", `{"page":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, catalog.calls)

	rec = do(t, srv, http.MethodPost, "/api/v1/catalog/per-page", `{"per_page":500}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Error.Message, "per_page must be at most 100")
}

func TestBodylessActions(t *testing.T) {
	tests := map[string]string{
		"/api/v1/catalog/next":     "next",
		"/api/v1/catalog/previous": "previous",
		"/api/v1/catalog/reset":    "reset",
		"/api/v1/catalog/refresh":  "refresh",
	}
	for path, call := range tests {
		t.Run(call, func(t *testing.T) {
			catalog := &stubCatalog{state: sampleState()}
			rec := do(t, newTestServer(catalog, &stubExporter{}), http.MethodPost, path, "")
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, []string{call}, catalog.calls)
		})
	}
}

func TestSwitchView(t *testing.T) {
	catalog := &stubCatalog{state: sampleState()}
	srv := newTestServer(catalog, &stubExporter{})

	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/api/v1/catalog/view", `{"view":"arrivals"}`).Code)
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/api/v1/catalog/view", `{"view":"all"}`).Code)
	assert.Equal(t, []string{"arrivals", "all"}, catalog.calls)

	rec := do(t, srv, http.MethodPost, "/api/v1/catalog/view", `{"view":"archive"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpstreamErrorMapsToBadGateway(t *testing.T) {
	catalog := &stubCatalog{
		state: sampleState(),
		err:   apperrors.NewUpstreamError("list_products", http.StatusInternalServerError, "Base indisponible"),
	}
	srv := newTestServer(catalog, &stubExporter{})

	rec := do(t, srv, http.MethodPost, "/api/v1/catalog/next", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "upstream_error", resp.Error.Type)
	assert.Equal(t, "Base indisponible", resp.Error.Message)
}

func TestTimeoutMapsToGatewayTimeout(t *testing.T) {
	catalog := &stubCatalog{state: sampleState(), err: apperrors.NewTimeoutError("list_products", context.DeadlineExceeded)}
	rec := do(t, newTestServer(catalog, &stubExporter{}), http.MethodPost, "/api/v1/catalog/refresh", "")
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestGetProduct(t *testing.T) {
	catalog := &stubCatalog{product: &models.Product{ID: 9, SKU: "Z", StockQuantity: 3}}
	srv := newTestServer(catalog, &stubExporter{})

	rec := do(t, srv, http.MethodGet, "/api/v1/products/9", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "low", resp.StockStatus)
	assert.Equal(t, []string{}, resp.Images)

	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodGet, "/api/v1/products/abc", "").Code)

	catalog.product = nil
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/api/v1/products/10", "").Code)
}

func TestUpdateProductMeta(t *testing.T) {
	catalog := &stubCatalog{state: sampleState()}
	srv := newTestServer(catalog, &stubExporter{})

	rec := do(t, srv, http.MethodPost, "/api/v1/products/2/meta", `{"localisation":"Showroom","stock_sorti":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.StockAdjustment{Location: "Showroom", Released: 2}, catalog.adj)

	var resp MetaUpdateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp.Result["success"])
	assert.Equal(t, 5, resp.PreviousStock)
	assert.Equal(t, 3, resp.ProjectedStock)
	assert.Equal(t, 2, resp.Catalog.Page)

	rec = do(t, srv, http.MethodPost, "/api/v1/products/2/meta", `{"stock_sorti":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProductMetaValidationError(t *testing.T) {
	catalog := &stubCatalog{
		state: sampleState(),
		err:   apperrors.NewValidationError("stock_sorti", "released quantity cannot exceed current stock"),
	}
	rec := do(t, newTestServer(catalog, &stubExporter{}), http.MethodPost, "/api/v1/products/2/meta", `{"localisation":"Showroom","stock_sorti":9}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "stock_sorti", resp.Error.Param)
	assert.Equal(t, "released quantity cannot exceed current stock", resp.Error.Message)
}

func TestUpdateProductImageWithURL(t *testing.T) {
	catalog := &stubCatalog{state: sampleState()}
	srv := newTestServer(catalog, &stubExporter{})

	rec := do(t, srv, http.MethodPost, "/api/v1/products/2/image", `{"image_url":"https://cdn.example.com/a.jpg","gallery":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://cdn.example.com/a.jpg", catalog.source.URL)
	assert.True(t, catalog.imgOpts.Gallery)

	var resp ImageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "https://cdn.example.com/new.jpg", resp.ImageURL)

	rec = do(t, srv, http.MethodPost, "/api/v1/products/2/image", `{"image_url":"not a url"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProductImageWithUpload(t *testing.T) {
	catalog := &stubCatalog{state: sampleState()}
	srv := newTestServer(catalog, &stubExporter{})

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("\x89PNG\r\n\x1a\nrest"))
	require.NoError(t, mw.WriteField("gallery", "false"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/2/image", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, catalog.source.File)
	assert.Equal(t, "photo.png", catalog.source.File.Name)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\nrest"), catalog.source.File.Data)
	assert.False(t, catalog.imgOpts.Gallery)
}

func TestUpdateProductImageRequiresFilePart(t *testing.T) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("gallery", "true"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/2/image", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	newTestServer(&stubCatalog{}, &stubExporter{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "image", decodeError(t, rec).Error.Param)
}

func TestUpdateReservationReturnsDisplayedProduct(t *testing.T) {
	catalog := &stubCatalog{state: sampleState()}
	srv := newTestServer(catalog, &stubExporter{})

	rec := do(t, srv, http.MethodPost, "/api/v1/products/3/reservation", `{"reservation":"Client Benali"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Client Benali", catalog.reserved)
	assert.Equal(t, []string{"reservation"}, catalog.calls)

	var resp ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.ID)
}

func TestExportCatalogSelectsProductsInOrder(t *testing.T) {
	catalog := &stubCatalog{all: []models.Product{{ID: 1}, {ID: 2}, {ID: 3}}}
	exporter := &stubExporter{}
	srv := newTestServer(catalog, exporter)

	rec := do(t, srv, http.MethodGet, "/api/v1/export/catalog.pdf?ids=3,1,99&search=tapis&show_price=false", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "catalogue-")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))

	require.Len(t, exporter.products, 2)
	assert.Equal(t, int64(3), exporter.products[0].ID)
	assert.Equal(t, int64(1), exporter.products[1].ID)
	assert.False(t, exporter.opts.ShowPrice)
	assert.True(t, exporter.opts.ShowDimensions)
	assert.Equal(t, "tapis", catalog.search)
}

func TestExportCatalogErrors(t *testing.T) {
	srv := newTestServer(&stubCatalog{}, &stubExporter{})

	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodGet, "/api/v1/export/catalog.pdf?ids=a,b", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodGet, "/api/v1/export/catalog.pdf?show_price=maybe", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodGet, "/api/v1/export/catalog.pdf", "").Code)
}

func TestFilterOptionsRefresh(t *testing.T) {
	catalog := &stubCatalog{state: models.CatalogState{FilterOptions: models.FilterOptions{
		Categories: []models.Term{{ID: 1, Name: "Tapis", Slug: "tapis"}},
	}}}
	srv := newTestServer(catalog, &stubExporter{})

	rec := do(t, srv, http.MethodGet, "/api/v1/catalog/filters?refresh=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"options"}, catalog.calls)

	var resp FilterOptionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "tapis", resp.Categories[0].Slug)
	assert.Empty(t, resp.Colors)
}

func TestHealthAndMetrics(t *testing.T) {
	h := NewHandler(&stubCatalog{}, &stubExporter{}, export.DefaultOptions())
	cfg := DefaultRouteConfig()
	cfg.Metrics = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "# metrics")
	})
	srv := h.RoutesWithConfig(cfg)

	rec := do(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = do(t, srv, http.MethodGet, "/metrics", "")
	assert.Equal(t, "# metrics", rec.Body.String())
}
