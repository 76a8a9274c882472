package view

const pageWindowSize = 5

// PageWindow returns the page numbers shown around the current page.
func PageWindow(page, totalPages int) []int {
	if totalPages < 1 {
		return []int{}
	}
	page = min(max(page, 1), totalPages)

	var start int
	switch {
	case totalPages <= pageWindowSize:
		start = 1
	case page <= 3:
		start = 1
	case page >= totalPages-2:
		start = totalPages - pageWindowSize + 1
	default:
		start = page - 2
	}
	end := min(start+pageWindowSize-1, totalPages)

	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}
