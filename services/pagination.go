package services

// paginate slices items for a 1-based page of the given size
func paginate[T any](items []T, page, limit int) []T {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// TotalPages computes the page count for a total and page size
func TotalPages(total, limit int) int {
	if limit < 1 {
		limit = 10
	}
	return (total + limit - 1) / limit
}
