package gathering

// SortOrder is one (field, direction) pair of a requested sort.
type SortOrder struct {
	Field string
	Desc  bool
}

// SortSpec is an ordered list of sort orders. Only the first entry naming a
// sortable field is applied; see the postgresengine sort resolver.
type SortSpec []SortOrder

// Sortable field names recognized by the gathering search.
const (
	SortByRegistrationEnd  = "registrationEnd"
	SortByParticipantCount = "participantCount"
)

// PageRequest selects a bounded window of results.
// Page is zero-based; Size is the maximum number of rows returned.
type PageRequest struct {
	Page int
	Size int
}

// Offset returns the number of rows to skip.
func (p PageRequest) Offset() uint {
	return uint(p.Page * p.Size)
}

// Limit returns the maximum number of rows to fetch.
func (p PageRequest) Limit() uint {
	return uint(p.Size)
}

// Slice is a bounded result window plus a flag indicating more results may
// exist.
//
// HasNext is an approximation: it is true iff the window came back exactly
// full. When the total row count is an exact multiple of the page size the
// last full page reports HasNext=true and the following page is empty.
type Slice[T any] struct {
	Content          []T
	HasNext          bool
	NumberOfElements int
}

// BuildSlice creates a Slice from fetched rows and the page they were
// fetched for.
func BuildSlice[T any](content []T, page PageRequest) Slice[T] {
	return Slice[T]{
		Content:          content,
		HasNext:          len(content) == page.Size,
		NumberOfElements: len(content),
	}
}
