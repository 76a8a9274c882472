package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yourorg/catalogadmin/internal/apperrors"
	"github.com/yourorg/catalogadmin/internal/id"
	"github.com/yourorg/catalogadmin/internal/metrics"
	"github.com/yourorg/catalogadmin/internal/models"
)

const (
	DefaultBaseURL = "https://stockbackup.cosinus.ma/wp-json/wc-full-api/v1"

	// ExportPerPage is the page size used when walking every page.
	ExportPerPage = 100

	defaultTimeout           = 15 * time.Second
	errorBodyReadLimit int64 = 4096
)

// Operation names, used for metrics labels and fallback messages.
const (
	opListProducts      = "list_products"
	opListIncoming      = "list_incoming"
	opFilterOptions     = "filter_options"
	opFilterProducts    = "filter_products"
	opGetProduct        = "get_product"
	opUpdateMeta        = "update_meta"
	opUpdateImage       = "update_image"
	opUpdateReservation = "update_reservation"
)

var fallbackMessages = map[string]string{
	opListProducts:      "failed to load products",
	opListIncoming:      "failed to load incoming products",
	opFilterOptions:     "failed to load filters",
	opFilterProducts:    "failed to filter products",
	opGetProduct:        "failed to load product",
	opUpdateMeta:        "product update failed",
	opUpdateImage:       "image update failed",
	opUpdateReservation: "reservation update failed",
}

// ProductRepository talks to the remote catalog API. The server owns every
// product; this type only reads and forwards writes.
type ProductRepository struct {
	httpClient *http.Client
	baseURL    string
	metrics    *metrics.UpstreamMetrics
}

// Option configures optional repository behavior.
type Option func(*ProductRepository)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(r *ProductRepository) {
		if client != nil {
			r.httpClient = client
		}
	}
}

// WithMetrics records every upstream call.
func WithMetrics(m *metrics.UpstreamMetrics) Option {
	return func(r *ProductRepository) {
		r.metrics = m
	}
}

func NewProductRepository(baseURL string, opts ...Option) *ProductRepository {
	r := &ProductRepository{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}
	if r.baseURL == "" {
		r.baseURL = DefaultBaseURL
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

type ListParams struct {
	Page    int
	PerPage int
	Search  string
}

type FilterParams struct {
	Page     int
	PerPage  int
	Criteria models.FilterCriteria
}

type listResponse struct {
	Products      []models.Product `json:"products"`
	Page          int              `json:"page"`
	TotalPages    int              `json:"total_pages"`
	TotalProducts int              `json:"total_products"`
}

func (l listResponse) toPage() *models.ProductPage {
	products := l.Products
	if products == nil {
		products = []models.Product{}
	}
	return &models.ProductPage{
		Products:      products,
		Page:          l.Page,
		TotalPages:    l.TotalPages,
		TotalProducts: l.TotalProducts,
	}
}

func (r *ProductRepository) List(ctx context.Context, params ListParams) (*models.ProductPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(params.Page))
	query.Set("per_page", strconv.Itoa(params.PerPage))
	if search := strings.TrimSpace(params.Search); search != "" {
		query.Set("search", search)
	}

	var resp listResponse
	if err := r.doJSON(ctx, opListProducts, http.MethodGet, "/products", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toPage(), nil
}

func (r *ProductRepository) ListIncoming(ctx context.Context) (*models.ProductPage, error) {
	var resp struct {
		Products []models.Product `json:"products"`
		Count    int              `json:"count"`
	}
	if err := r.doJSON(ctx, opListIncoming, http.MethodGet, "/en-arrivage", nil, nil, &resp); err != nil {
		return nil, err
	}
	products := resp.Products
	if products == nil {
		products = []models.Product{}
	}
	return &models.ProductPage{
		Products:      products,
		Page:          1,
		TotalPages:    1,
		TotalProducts: resp.Count,
	}, nil
}

func (r *ProductRepository) FilterOptions(ctx context.Context) (*models.FilterOptions, error) {
	var resp models.FilterOptions
	if err := r.doJSON(ctx, opFilterOptions, http.MethodGet, "/filters", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *ProductRepository) Filter(ctx context.Context, params FilterParams) (*models.ProductPage, error) {
	query := params.Criteria.Values()
	query.Set("page", strconv.Itoa(params.Page))
	query.Set("per_page", strconv.Itoa(params.PerPage))

	var resp listResponse
	if err := r.doJSON(ctx, opFilterProducts, http.MethodGet, "/products/filter", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toPage(), nil
}

func (r *ProductRepository) GetByID(ctx context.Context, productID int64) (*models.Product, error) {
	var product models.Product
	err := r.doJSON(ctx, opGetProduct, http.MethodGet, productPath(productID, ""), nil, nil, &product)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// UpdateMeta posts a partial update and returns the server's response body.
func (r *ProductRepository) UpdateMeta(ctx context.Context, productID int64, payload models.MetaUpdate) (map[string]any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal meta update: %w", err)
	}

	var resp map[string]any
	if err := r.doJSON(ctx, opUpdateMeta, http.MethodPost, productPath(productID, "meta"), nil, jsonBody(body), &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (r *ProductRepository) UpdateImage(ctx context.Context, productID int64, source models.ImageSource, opts models.ImageOptions) (*models.ImageResult, error) {
	var query url.Values
	if opts.Gallery {
		query = url.Values{"gallery": []string{"true"}}
	}

	var b *requestBody
	if source.File != nil {
		mb, err := multipartImage(source.File)
		if err != nil {
			return nil, err
		}
		b = mb
	} else {
		data, err := json.Marshal(map[string]string{"image_url": source.URL})
		if err != nil {
			return nil, fmt.Errorf("marshal image url: %w", err)
		}
		b = jsonBody(data)
	}

	var result models.ImageResult
	if err := r.doJSON(ctx, opUpdateImage, http.MethodPost, productPath(productID, "image"), query, b, &result); err != nil {
		return nil, err
	}
	if result.ImageURL == "" {
		return nil, apperrors.NewUpstreamError(opUpdateImage, http.StatusOK, fallbackMessages[opUpdateImage])
	}
	return &result, nil
}

func (r *ProductRepository) UpdateReservation(ctx context.Context, productID int64, value string) error {
	body, err := json.Marshal(map[string]string{"reservation": value})
	if err != nil {
		return fmt.Errorf("marshal reservation: %w", err)
	}
	return r.doJSON(ctx, opUpdateReservation, http.MethodPost, productPath(productID, "reservation"), nil, jsonBody(body), nil)
}

// ListAll walks every page of the listing, optionally searched.
func (r *ProductRepository) ListAll(ctx context.Context, search string) ([]models.Product, error) {
	var all []models.Product
	for page := 1; ; page++ {
		resp, err := r.List(ctx, ListParams{Page: page, PerPage: ExportPerPage, Search: search})
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Products...)

		totalPages := resp.TotalPages
		if totalPages < 1 {
			totalPages = 1
		}
		if page >= totalPages || len(resp.Products) == 0 {
			return all, nil
		}
	}
}

type requestBody struct {
	reader      io.Reader
	contentType string
}

func jsonBody(data []byte) *requestBody {
	return &requestBody{reader: bytes.NewReader(data), contentType: "application/json"}
}

func multipartImage(file *models.ImageFile) (*requestBody, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	name := file.Name
	if name == "" {
		name = "image"
	}
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, name))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("create image part: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, fmt.Errorf("write image part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	return &requestBody{reader: buf, contentType: w.FormDataContentType()}, nil
}

func (r *ProductRepository) doJSON(ctx context.Context, op, method, path string, query url.Values, body *requestBody, out any) error {
	fallback := fallbackMessages[op]

	target := r.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = body.reader
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", id.NewRequestID())
	if body != nil {
		req.Header.Set("Content-Type", body.contentType)
	}

	start := time.Now()
	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.metrics.Observe(op, 0, time.Since(start))
		if isTimeout(err) {
			return apperrors.NewTimeoutError(op, err)
		}
		return apperrors.WrapUpstreamError(op, fallback, err)
	}
	defer func() { _ = resp.Body.Close() }()
	r.metrics.Observe(op, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := errorMessage(resp.Body)
		if message == "" {
			message = fallback
		}
		return apperrors.NewUpstreamError(op, resp.StatusCode, message)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperrors.WrapUpstreamError(op, fallback, fmt.Errorf("decode %s response: %w", op, err))
	}
	return nil
}

// errorMessage extracts the "message" field of an error payload, if any.
func errorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, errorBodyReadLimit))
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Message)
}

func productPath(productID int64, suffix string) string {
	path := "/products/" + strconv.FormatInt(productID, 10)
	if suffix != "" {
		path += "/" + suffix
	}
	return path
}
