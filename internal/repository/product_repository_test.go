package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourorg/catalogadmin/internal/apperrors"
	"github.com/yourorg/catalogadmin/internal/metrics"
	"github.com/yourorg/catalogadmin/internal/models"
)

func newTestRepository(t *testing.T, handler http.HandlerFunc) *ProductRepository {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewProductRepository(srv.URL+"/", WithHTTPClient(srv.Client()))
}

func TestListSendsPaginationAndSearch(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	var gotRequestID string

	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotRequestID = r.Header.Get("X-Request-ID")
		_, _ = io.WriteString(w, `{"products":[{"id":7,"sku":"T-1","name":"Tile","stock_quantity":4,"price":"12.5","images":["a.jpg"],"meta":[{"meta_key":"_localisation_produit","meta_value":"Showroom"}],"taxonomies":[]}],"page":3,"total_pages":9,"total_products":88}`)
	})

	page, err := repo.List(context.Background(), ListParams{Page: 3, PerPage: 10, Search: " tile "})
	require.NoError(t, err)

	assert.Equal(t, "/products", gotPath)
	assert.Equal(t, []string{"3"}, gotQuery["page"])
	assert.Equal(t, []string{"10"}, gotQuery["per_page"])
	assert.Equal(t, []string{"tile"}, gotQuery["search"])
	assert.True(t, strings.HasPrefix(gotRequestID, "req_"))

	require.Len(t, page.Products, 1)
	p := page.Products[0]
	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, "12.50", p.Price.Fixed())
	assert.Equal(t, "Showroom", p.MetaValue(models.MetaLocation))
	assert.Empty(t, p.Taxonomies)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 9, page.TotalPages)
	assert.Equal(t, 88, page.TotalProducts)
}

func TestListOmitsEmptySearch(t *testing.T) {
	var rawQuery string
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, `{"products":null}`)
	})

	page, err := repo.List(context.Background(), ListParams{Page: 1, PerPage: 10, Search: "   "})
	require.NoError(t, err)
	assert.NotContains(t, rawQuery, "search")
	assert.NotNil(t, page.Products)
}

func TestFilterSendsOnlyConstrainedAxes(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		_, _ = io.WriteString(w, `{"products":[],"page":2,"total_pages":4,"total_products":31}`)
	})

	page, err := repo.Filter(context.Background(), FilterParams{
		Page:     2,
		PerPage:  10,
		Criteria: models.FilterCriteria{Category: "rugs", Color: "red"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/products/filter", gotPath)
	assert.Equal(t, []string{"rugs"}, gotQuery["category"])
	assert.Equal(t, []string{"red"}, gotQuery["couleur"])
	assert.NotContains(t, gotQuery, "fournisseur")
	assert.NotContains(t, gotQuery, "type_produit")
	assert.NotContains(t, gotQuery, "design")
	assert.Equal(t, []string{"2"}, gotQuery["page"])
	assert.Equal(t, 4, page.TotalPages)
}

func TestListIncomingIsSinglePage(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/en-arrivage", r.URL.Path)
		_, _ = io.WriteString(w, `{"products":[{"id":1},{"id":2}],"count":2}`)
	})

	page, err := repo.ListIncoming(context.Background())
	require.NoError(t, err)
	assert.Len(t, page.Products, 2)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 2, page.TotalProducts)
}

func TestFilterOptionsDecodesVocabulary(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"categories":[{"id":1,"name":"Rugs","slug":"rugs"}],"fournisseurs":[{"id":2,"name":"Acme","slug":"acme"}],"types_produits":[],"design":[{"id":3,"name":"Floral","slug":"floral"}]}`)
	})

	opts, err := repo.FilterOptions(context.Background())
	require.NoError(t, err)
	require.Len(t, opts.Categories, 1)
	assert.Equal(t, "rugs", opts.Categories[0].Slug)
	assert.Equal(t, "acme", opts.Suppliers[0].Slug)
	assert.Equal(t, "floral", opts.Designs[0].Slug)
}

func TestErrorUsesServerMessage(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"code":"invalid","message":"Stock insuffisant"}`)
	})

	_, err := repo.UpdateMeta(context.Background(), 5, models.MetaUpdate{})
	require.Error(t, err)

	var upstreamErr *apperrors.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusUnprocessableEntity, upstreamErr.StatusCode)
	assert.Equal(t, "Stock insuffisant", err.Error())
}

func TestErrorFallsBackWithoutMessage(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `<html>oops</html>`)
	})

	_, err := repo.List(context.Background(), ListParams{Page: 1, PerPage: 10})
	require.Error(t, err)
	assert.Equal(t, "failed to load products", err.Error())
}

func TestTransportErrorIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()
	repo := NewProductRepository(srv.URL)

	_, err := repo.ListIncoming(context.Background())
	var upstreamErr *apperrors.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, "failed to load incoming products", upstreamErr.Message)
	assert.NotNil(t, upstreamErr.Unwrap())
}

func TestGetByIDNotFound(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/404", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateMetaPostsPartialBody(t *testing.T) {
	var body map[string]any
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/products/12/meta", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = io.WriteString(w, `{"success":true,"stock_quantity":9}`)
	})

	location := "Showroom"
	released := 3
	resp, err := repo.UpdateMeta(context.Background(), 12, models.MetaUpdate{Location: &location, Released: &released})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"localisation": "Showroom", "stock_sorti": float64(3)}, body)
	assert.Equal(t, true, resp["success"])
}

func TestUpdateImageWithURL(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/3/image", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("gallery"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "https://cdn.example.com/x.png", body["image_url"])
		_, _ = io.WriteString(w, `{"image_url":"https://shop.example.com/x.png","attachment_id":4}`)
	})

	result, err := repo.UpdateImage(context.Background(), 3, models.ImageSource{URL: "https://cdn.example.com/x.png"}, models.ImageOptions{Gallery: true})
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/x.png", result.ImageURL)
}

func TestUpdateImageWithFile(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("gallery"))
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "photo.png", header.Filename)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))
		assert.Equal(t, []byte("pngdata"), data)
		_, _ = io.WriteString(w, `{"image_url":"https://shop.example.com/photo.png"}`)
	})

	result, err := repo.UpdateImage(context.Background(), 3, models.ImageSource{
		File: &models.ImageFile{Name: "photo.png", ContentType: "image/png", Data: []byte("pngdata")},
	}, models.ImageOptions{})
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/photo.png", result.ImageURL)
}

func TestUpdateImageRejectsEmptyResponse(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	})

	_, err := repo.UpdateImage(context.Background(), 3, models.ImageSource{URL: "https://cdn.example.com/x.png"}, models.ImageOptions{})
	require.Error(t, err)
	assert.Equal(t, "image update failed", err.Error())
}

func TestUpdateReservation(t *testing.T) {
	var body map[string]string
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/8/reservation", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, repo.UpdateReservation(context.Background(), 8, "Client Benali"))
	assert.Equal(t, "Client Benali", body["reservation"])
}

func TestListAllWalksEveryPage(t *testing.T) {
	var pages []string
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		pages = append(pages, page)
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		switch page {
		case "1":
			_, _ = io.WriteString(w, `{"products":[{"id":1},{"id":2}],"page":1,"total_pages":3}`)
		case "2":
			_, _ = io.WriteString(w, `{"products":[{"id":3}],"page":2,"total_pages":3}`)
		default:
			_, _ = io.WriteString(w, `{"products":[{"id":4}],"page":3,"total_pages":3}`)
		}
	})

	all, err := repo.ListAll(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, pages)
	require.Len(t, all, 4)
	assert.Equal(t, int64(4), all[3].ID)
}

func TestListAllStopsOnEmptyPage(t *testing.T) {
	calls := 0
	repo := newTestRepository(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		_, _ = io.WriteString(w, `{"products":[],"page":1,"total_pages":50}`)
	})

	all, err := repo.ListAll(context.Background(), "tile")
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Equal(t, 1, calls)
}

func TestRequestsAreRecordedInMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewUpstreamMetrics(reg)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"products":[]}`)
	}))
	t.Cleanup(srv.Close)
	repo := NewProductRepository(srv.URL, WithMetrics(m))

	_, err := repo.List(context.Background(), ListParams{Page: 1, PerPage: 10})
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(reg, "catalog_upstream_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestClientTimeoutIsTimeoutError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	client := srv.Client()
	client.Timeout = 50 * time.Millisecond
	repo := NewProductRepository(srv.URL, WithHTTPClient(client))

	_, err := repo.FilterOptions(context.Background())
	var timeoutErr *apperrors.TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, opFilterOptions, timeoutErr.Operation)
}
