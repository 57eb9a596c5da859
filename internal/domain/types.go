package domain

// Sort keys accepted by search. Anything else falls back to the
// default order (updated_at descending).
const (
	SortByTitle     = "title"
	SortByCreatedAt = "createdat"
)

// SearchCriteria is the full set of optional filters plus the sort and
// paging window for a document search. Zero values mean "filter skipped",
// with one exception: CategoryID pointing at 0 explicitly requests
// documents that have no category.
type SearchCriteria struct {
	Query          string  `json:"query"`
	CategoryID     *int64  `json:"categoryId"`
	TagIDs         []int64 `json:"tagIds"`
	SortBy         string  `json:"sortBy"`
	SortDescending bool    `json:"sortDescending"`
	PageNumber     int     `json:"pageNumber"`
	PageSize       int     `json:"pageSize"`
}

// Page is one window of a sorted, filtered result set.
// Totals and boundaries are derived on demand, never stored, so they
// cannot go stale when the count changes.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
}

func (p Page[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.TotalCount + p.PageSize - 1) / p.PageSize
}

func (p Page[T]) HasPrevious() bool {
	return p.PageNumber > 1
}

func (p Page[T]) HasNext() bool {
	return p.PageNumber < p.TotalPages()
}
