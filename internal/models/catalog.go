package models

// CatalogState is a point-in-time copy of what the catalog controller shows.
type CatalogState struct {
	Products      []Product
	Page          int
	PerPage       int
	TotalPages    int
	TotalProducts int
	ActiveFilters FilterCriteria
	ActiveSearch  string
	Searching     bool
	ArrivalView   bool
	Loading       bool
	Error         string
	FilterOptions FilterOptions
}

// QueryMode names which query a page turn replays.
type QueryMode string

const (
	QueryPlain    QueryMode = "plain"
	QuerySearch   QueryMode = "search"
	QueryFilter   QueryMode = "filter"
	QueryArrivals QueryMode = "arrivals"
)

// Mode resolves the precedence between the arrival view, active filters,
// a remembered search term and plain paging.
func (s CatalogState) Mode() QueryMode {
	switch {
	case s.ArrivalView:
		return QueryArrivals
	case !s.ActiveFilters.IsZero():
		return QueryFilter
	case s.ActiveSearch != "":
		return QuerySearch
	default:
		return QueryPlain
	}
}
