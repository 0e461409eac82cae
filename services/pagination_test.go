package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int64
		want        Pagination
		skip        int64
	}{
		{"defaults", 0, 0, Pagination{Page: 1, Limit: 10}, 0},
		{"negative page", -3, 5, Pagination{Page: 1, Limit: 5}, 0},
		{"third page", 3, 20, Pagination{Page: 3, Limit: 20}, 40},
		{"large limit kept", 1, 1000, Pagination{Page: 1, Limit: 1000}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit)
			assert.Equal(t, tt.want, p)
			assert.Equal(t, tt.skip, p.Skip())
		})
	}
}

func TestRegexFilterEscapes(t *testing.T) {
	f := regexFilter("  a+b (1) ")
	assert.Equal(t, `a\+b \(1\)`, f["$regex"])
	assert.Equal(t, "i", f["$options"])
}
