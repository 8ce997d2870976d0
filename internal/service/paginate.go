package service

// QuestionsPerPage is the fixed page size for question listings
const QuestionsPerPage = 10

// paginate returns the 1-based page of items. Pages before the first or past
// the last are empty.
func paginate[T any](items []T, page int) []T {
	if page < 1 {
		return []T{}
	}

	start := (page - 1) * QuestionsPerPage
	if start >= len(items) {
		return []T{}
	}

	end := min(start+QuestionsPerPage, len(items))
	return items[start:end]
}
