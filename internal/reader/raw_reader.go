package reader

// Reader returns every row of a tabular source as a header -> cell map.
type Reader interface {
	Read() ([]map[string]string, error)
}
