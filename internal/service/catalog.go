package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/yourorg/catalogadmin/internal/apperrors"
	"github.com/yourorg/catalogadmin/internal/models"
	"github.com/yourorg/catalogadmin/internal/repository"
)

const DefaultPerPage = 10

// Fallback messages for failures that carry no server message.
const (
	msgLoadFailed        = "failed to load products"
	msgUpdateFailed      = "product update failed"
	msgImageFailed       = "image update failed"
	msgReservationFailed = "reservation update failed"
)

type ProductRepository interface {
	List(ctx context.Context, params repository.ListParams) (*models.ProductPage, error)
	ListIncoming(ctx context.Context) (*models.ProductPage, error)
	FilterOptions(ctx context.Context) (*models.FilterOptions, error)
	Filter(ctx context.Context, params repository.FilterParams) (*models.ProductPage, error)
	GetByID(ctx context.Context, productID int64) (*models.Product, error)
	UpdateMeta(ctx context.Context, productID int64, payload models.MetaUpdate) (map[string]any, error)
	UpdateImage(ctx context.Context, productID int64, source models.ImageSource, opts models.ImageOptions) (*models.ImageResult, error)
	UpdateReservation(ctx context.Context, productID int64, value string) error
	ListAll(ctx context.Context, search string) ([]models.Product, error)
}

// Catalog is the single source of truth for which page of which query is on
// screen. Every request that produces a product list takes a sequence number;
// only the most recently issued one may write the list, so a slow response
// never overwrites a newer query. Requests are not cancelled.
type Catalog struct {
	repo   ProductRepository
	logger *slog.Logger

	mu       sync.Mutex
	state    models.CatalogState
	seq      uint64
	inflight int
}

type CatalogOption func(*Catalog)

func WithLogger(logger *slog.Logger) CatalogOption {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithPerPage(perPage int) CatalogOption {
	return func(c *Catalog) {
		if perPage > 0 {
			c.state.PerPage = perPage
		}
	}
}

func NewCatalog(repo ProductRepository, opts ...CatalogOption) *Catalog {
	c := &Catalog{
		repo:   repo,
		logger: slog.Default(),
		state: models.CatalogState{
			Products:   []models.Product{},
			Page:       1,
			PerPage:    DefaultPerPage,
			TotalPages: 1,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Snapshot returns a copy of the current state.
func (c *Catalog) Snapshot() models.CatalogState {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := c.state
	out.Products = cloneProducts(c.state.Products)
	return out
}

// Load fetches the filter vocabulary and the first plain page.
func (c *Catalog) Load(ctx context.Context) error {
	_ = c.FetchFilterOptions(ctx)
	return c.FetchPage(ctx, 1, c.perPage(), "")
}

// FetchPage requests a plain or searched page. A non-empty trimmed search term
// turns search mode on and is remembered for later page turns.
func (c *Catalog) FetchPage(ctx context.Context, pageNum, perPage int, search string) error {
	if pageNum < 1 {
		return apperrors.NewValidationError("page", "page must be at least 1")
	}
	if perPage < 1 {
		return apperrors.NewValidationError("per_page", "per_page must be positive")
	}
	term := strings.TrimSpace(search)

	seq := c.begin(func(s *models.CatalogState) { s.ArrivalView = false })
	page, err := c.repo.List(ctx, repository.ListParams{Page: pageNum, PerPage: perPage, Search: term})
	c.end(seq, func(s *models.CatalogState) {
		if err != nil {
			failList(s, err)
			return
		}
		applyPage(s, page, pageNum)
		s.PerPage = perPage
		s.Searching = term != ""
		s.ActiveSearch = term
	})
	if err != nil {
		c.logger.ErrorContext(ctx, "fetch products failed", "page", pageNum, "search", term, "error", err)
	}
	return err
}

// FetchIncoming loads the arrival collection, which is always a single page.
func (c *Catalog) FetchIncoming(ctx context.Context) error {
	seq := c.begin(func(s *models.CatalogState) { s.ArrivalView = true })
	page, err := c.repo.ListIncoming(ctx)
	c.end(seq, func(s *models.CatalogState) {
		s.Page = 1
		s.TotalPages = 1
		if err != nil {
			failList(s, err)
			s.TotalProducts = 0
			return
		}
		s.Products = cloneProducts(page.Products)
		s.TotalProducts = page.TotalProducts
	})
	if err != nil {
		c.logger.ErrorContext(ctx, "fetch incoming products failed", "error", err)
	}
	return err
}

// FetchFilterOptions loads the filter vocabulary. A failure is logged and
// returned but never blocks product display.
func (c *Catalog) FetchFilterOptions(ctx context.Context) error {
	opts, err := c.repo.FilterOptions(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "fetch filter options failed", "error", err)
		return err
	}

	c.mu.Lock()
	c.state.FilterOptions = *opts
	c.mu.Unlock()
	return nil
}

// ApplyFilter requests a filtered page. On success the criteria become the
// active filters that later page turns replay.
func (c *Catalog) ApplyFilter(ctx context.Context, criteria models.FilterCriteria, pageNum int) error {
	if pageNum < 1 {
		pageNum = 1
	}
	criteria = criteria.Normalize()
	perPage := c.perPage()

	seq := c.begin(func(s *models.CatalogState) { s.ArrivalView = false })
	page, err := c.repo.Filter(ctx, repository.FilterParams{Page: pageNum, PerPage: perPage, Criteria: criteria})
	c.end(seq, func(s *models.CatalogState) {
		if err != nil {
			failList(s, err)
			return
		}
		applyPage(s, page, pageNum)
		s.ActiveFilters = criteria
	})
	if err != nil {
		c.logger.ErrorContext(ctx, "filter products failed", "page", pageNum, "criteria", criteria, "error", err)
	}
	return err
}

// GoToPage replays the active query at pageNum. Pages outside
// [1, TotalPages] are ignored.
func (c *Catalog) GoToPage(ctx context.Context, pageNum int) error {
	st := c.current()
	if pageNum < 1 || pageNum > st.TotalPages {
		return nil
	}
	return c.replay(ctx, st, pageNum)
}

func (c *Catalog) NextPage(ctx context.Context) error {
	return c.GoToPage(ctx, c.current().Page+1)
}

func (c *Catalog) PreviousPage(ctx context.Context) error {
	return c.GoToPage(ctx, c.current().Page-1)
}

// ChangePerPage records a new page size and replays the active query at page 1.
func (c *Catalog) ChangePerPage(ctx context.Context, perPage int) error {
	if perPage < 1 {
		return apperrors.NewValidationError("per_page", "per_page must be positive")
	}
	c.mu.Lock()
	c.state.PerPage = perPage
	st := c.state
	c.mu.Unlock()
	return c.replay(ctx, st, 1)
}

// Refresh replays the active query at the current page.
func (c *Catalog) Refresh(ctx context.Context) error {
	st := c.current()
	return c.replay(ctx, st, max(st.Page, 1))
}

// ResetFilters tears down both the filter set and the remembered search and
// fetches the first unfiltered page.
func (c *Catalog) ResetFilters(ctx context.Context) error {
	perPage := c.clearQuery()
	return c.FetchPage(ctx, 1, perPage, "")
}

// ShowArrivals switches to the arrival view. Filters and search are dropped
// and not restored by ShowAll.
func (c *Catalog) ShowArrivals(ctx context.Context) error {
	c.clearQuery()
	return c.FetchIncoming(ctx)
}

// ShowAll leaves the arrival view and fetches plain page 1.
func (c *Catalog) ShowAll(ctx context.Context) error {
	perPage := c.clearQuery()
	return c.FetchPage(ctx, 1, perPage, "")
}

// UpdateProductMeta sends a partial update. The server computes stock, so a
// success re-fetches the current page instead of patching locally. A failure
// leaves the product list untouched.
func (c *Catalog) UpdateProductMeta(ctx context.Context, productID int64, payload models.MetaUpdate) (map[string]any, error) {
	if payload.IsEmpty() {
		return nil, apperrors.NewValidationError("payload", "no valid data to send")
	}

	c.beginOp()
	resp, err := c.repo.UpdateMeta(ctx, productID, payload)
	c.endOp(func(s *models.CatalogState) {
		if err != nil {
			s.Error = userMessage(err, msgUpdateFailed)
		}
	})
	if err != nil {
		c.logger.ErrorContext(ctx, "update product meta failed", "product_id", productID, "error", err)
		return nil, err
	}

	if err := c.Refresh(ctx); err != nil {
		c.logger.WarnContext(ctx, "refresh after meta update failed", "product_id", productID, "error", err)
	}
	return resp, nil
}

// AdjustStock validates the edit form against the product's current stock and
// sends it as a meta update. The result carries the stock the form previewed.
func (c *Catalog) AdjustStock(ctx context.Context, productID int64, adj models.StockAdjustment) (*models.StockUpdate, error) {
	stock, ok := c.displayedStock(productID)
	if !ok {
		product, err := c.Product(ctx, productID)
		if err != nil {
			return nil, err
		}
		stock = product.StockQuantity
	}
	if err := adj.Validate(stock); err != nil {
		return nil, err
	}
	resp, err := c.UpdateProductMeta(ctx, productID, adj.MetaUpdate())
	if err != nil {
		return nil, err
	}
	return &models.StockUpdate{Result: resp, CurrentStock: stock, ProjectedStock: adj.Projected(stock)}, nil
}

// UpdateProductImage uploads a file or links a URL. A success patches the
// displayed product's images in place without a refetch: the primary image is
// replaced, or a gallery entry appended.
func (c *Catalog) UpdateProductImage(ctx context.Context, productID int64, source models.ImageSource, opts models.ImageOptions) (*models.ImageResult, error) {
	source, err := ValidateImageSource(source)
	if err != nil {
		return nil, err
	}

	c.beginOp()
	result, err := c.repo.UpdateImage(ctx, productID, source, opts)
	c.endOp(func(s *models.CatalogState) {
		if err != nil {
			s.Error = userMessage(err, msgImageFailed)
			return
		}
		patchImage(s.Products, productID, result.ImageURL, opts.Gallery)
	})
	if err != nil {
		c.logger.ErrorContext(ctx, "update product image failed", "product_id", productID, "gallery", opts.Gallery, "error", err)
		return nil, err
	}
	return result, nil
}

// UpdateReservation stores a reservation note and mirrors it into the
// displayed product's meta once the server accepts it.
func (c *Catalog) UpdateReservation(ctx context.Context, productID int64, value string) error {
	value = strings.TrimSpace(value)

	c.beginOp()
	err := c.repo.UpdateReservation(ctx, productID, value)
	c.endOp(func(s *models.CatalogState) {
		if err != nil {
			s.Error = userMessage(err, msgReservationFailed)
			return
		}
		for i := range s.Products {
			if s.Products[i].ID == productID {
				s.Products[i].SetMeta(models.MetaReservation, value)
			}
		}
	})
	if err != nil {
		c.logger.ErrorContext(ctx, "update reservation failed", "product_id", productID, "error", err)
	}
	return err
}

// Product fetches a single product for the detail view.
func (c *Catalog) Product(ctx context.Context, productID int64) (*models.Product, error) {
	product, err := c.repo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("product", strconv.FormatInt(productID, 10))
		}
		return nil, err
	}
	return product, nil
}

// AllProducts walks every page of the catalog, optionally searched.
func (c *Catalog) AllProducts(ctx context.Context, search string) ([]models.Product, error) {
	return c.repo.ListAll(ctx, strings.TrimSpace(search))
}

func (c *Catalog) replay(ctx context.Context, st models.CatalogState, pageNum int) error {
	switch st.Mode() {
	case models.QueryArrivals:
		return c.FetchIncoming(ctx)
	case models.QueryFilter:
		return c.ApplyFilter(ctx, st.ActiveFilters, pageNum)
	case models.QuerySearch:
		return c.FetchPage(ctx, pageNum, st.PerPage, st.ActiveSearch)
	default:
		return c.FetchPage(ctx, pageNum, st.PerPage, "")
	}
}

func (c *Catalog) current() models.CatalogState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Catalog) perPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.PerPage
}

func (c *Catalog) clearQuery() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ActiveFilters = models.FilterCriteria{}
	c.state.ActiveSearch = ""
	c.state.Searching = false
	return c.state.PerPage
}

func (c *Catalog) displayedStock(productID int64) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.state.Products {
		if p.ID == productID {
			return p.StockQuantity, true
		}
	}
	return 0, false
}

// begin starts a list-producing request and returns its sequence number.
func (c *Catalog) begin(mutate func(*models.CatalogState)) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.inflight++
	c.state.Loading = true
	c.state.Error = ""
	if mutate != nil {
		mutate(&c.state)
	}
	return c.seq
}

// end applies a list result only if no newer request was issued meanwhile.
func (c *Catalog) end(seq uint64, apply func(*models.CatalogState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight--
	c.state.Loading = c.inflight > 0
	if seq != c.seq {
		return
	}
	apply(&c.state)
}

func (c *Catalog) beginOp() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight++
	c.state.Loading = true
	c.state.Error = ""
}

func (c *Catalog) endOp(apply func(*models.CatalogState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight--
	c.state.Loading = c.inflight > 0
	apply(&c.state)
}

func applyPage(s *models.CatalogState, page *models.ProductPage, requested int) {
	s.Products = cloneProducts(page.Products)
	s.Page = page.Page
	if s.Page < 1 {
		s.Page = requested
	}
	s.TotalPages = page.TotalPages
	if s.TotalPages < 1 {
		s.TotalPages = 1
	}
	s.TotalProducts = page.TotalProducts
}

func cloneProducts(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out
}

func failList(s *models.CatalogState, err error) {
	s.Error = userMessage(err, msgLoadFailed)
	s.Products = []models.Product{}
}

func patchImage(products []models.Product, productID int64, imageURL string, gallery bool) {
	for i := range products {
		if products[i].ID != productID {
			continue
		}
		switch {
		case gallery:
			products[i].Images = append(products[i].Images, imageURL)
		case len(products[i].Images) == 0:
			products[i].Images = []string{imageURL}
		default:
			products[i].Images[0] = imageURL
		}
	}
}

// userMessage is the text shown to the operator for a failed request.
func userMessage(err error, fallback string) string {
	var upstreamErr *apperrors.UpstreamError
	if errors.As(err, &upstreamErr) && upstreamErr.Message != "" {
		return upstreamErr.Message
	}
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}
	return fallback
}
