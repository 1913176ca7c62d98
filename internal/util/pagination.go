package util

const (
	DefaultPageSize = 20
	maxPageSize     = 100
)

// Clamp normalizes a requested page/size pair to the values actually used
// for the query, so callers can report them back truthfully.
func Clamp(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > maxPageSize {
		size = DefaultPageSize
	}
	return page, size
}

func Calculate(page, size int) (offset, limit int) {
	page, size = Clamp(page, size)
	return (page - 1) * size, size
}
