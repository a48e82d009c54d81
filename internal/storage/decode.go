package storage

import (
	"encoding/json"
	"fmt"
)

// Decode unmarshals a single document payload into T.
func Decode[T any](doc Document) (T, error) {
	var v T
	if err := json.Unmarshal(doc.Data, &v); err != nil {
		return v, fmt.Errorf("failed to decode document %s: %w", doc.Key, err)
	}
	return v, nil
}

func DecodeAll[T any](docs []Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		v, err := Decode[T](d)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
