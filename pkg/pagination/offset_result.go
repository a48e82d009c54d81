package pagination

type OffsetResult[T any] struct {
	Items   []T  `json:"items"`
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	Size    int  `json:"size"`
	HasMore bool `json:"hasMore"`
}

// Paginate returns the requested page of an in-memory slice.
func Paginate[T any](items []T, req OffsetRequest) *OffsetResult[T] {
	req.Normalize()

	total := len(items)
	start := min(req.Offset(), total)
	end := min(start+req.Size, total)

	page := items[start:end:end]
	if page == nil {
		page = []T{}
	}

	return &OffsetResult[T]{
		Items:   page,
		Total:   total,
		Page:    req.Page,
		Size:    req.Size,
		HasMore: end < total,
	}
}
