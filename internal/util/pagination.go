package util

const (
	defaultSearchSize = 10
	maxSearchSize     = 100
)

// SearchWindow turns a 1-based page and a page size into an offset and a
// bounded size for full text search.
func SearchWindow(page, size int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > maxSearchSize {
		size = defaultSearchSize
	}
	return (page - 1) * size, size
}
