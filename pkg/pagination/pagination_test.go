package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := make([]int, 120)
	for i := range items {
		items[i] = i
	}

	tests := []struct {
		name      string
		req       OffsetRequest
		wantLen   int
		wantFirst int
		wantMore  bool
		wantSize  int
	}{
		{"defaults", OffsetRequest{}, 50, 0, true, 50},
		{"second page", OffsetRequest{Page: 2, Size: 50}, 50, 50, true, 50},
		{"last partial page", OffsetRequest{Page: 3, Size: 50}, 20, 100, false, 50},
		{"past the end", OffsetRequest{Page: 9, Size: 50}, 0, -1, false, 50},
		{"clamped size", OffsetRequest{Page: 1, Size: 10_000}, 120, 0, false, PageMaxSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Paginate(items, tt.req)
			assert.Len(t, res.Items, tt.wantLen)
			assert.Equal(t, 120, res.Total)
			assert.Equal(t, tt.wantMore, res.HasMore)
			assert.Equal(t, tt.wantSize, res.Size)
			if tt.wantFirst >= 0 {
				assert.Equal(t, tt.wantFirst, res.Items[0])
			} else {
				assert.NotNil(t, res.Items)
			}
		})
	}
}

func TestPaginate_Empty(t *testing.T) {
	res := Paginate[string](nil, OffsetRequest{Page: 1, Size: 10})
	assert.Equal(t, []string{}, res.Items)
	assert.False(t, res.HasMore)
}
