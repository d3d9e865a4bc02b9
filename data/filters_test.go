package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFiltersClamping(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{name: "values in range", page: 3, pageSize: 20, wantPage: 3, wantPageSize: 20},
		{name: "zero page clamps to first", page: 0, pageSize: 20, wantPage: 1, wantPageSize: 20},
		{name: "negative page clamps to first", page: -5, pageSize: 20, wantPage: 1, wantPageSize: 20},
		{name: "page size above maximum clamps to 50", page: 1, pageSize: 500, wantPage: 1, wantPageSize: 50},
		{name: "zero page size falls back to default", page: 1, pageSize: 0, wantPage: 1, wantPageSize: 10},
		{name: "negative page size falls back to default", page: 1, pageSize: -1, wantPage: 1, wantPageSize: 10},
		{name: "page size at maximum is kept", page: 1, pageSize: 50, wantPage: 1, wantPageSize: 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilters(tt.page, tt.pageSize)
			assert.Equal(t, tt.wantPage, f.Page)
			assert.Equal(t, tt.wantPageSize, f.PageSize)
		})
	}
}

func TestFiltersLimitOffset(t *testing.T) {
	f := NewFilters(3, 20)
	assert.Equal(t, 20, f.Limit())
	assert.Equal(t, 40, f.Offset())

	f = NewFilters(1, 10)
	assert.Equal(t, 0, f.Offset())
}

func TestCalculateMetadata(t *testing.T) {
	m := CalculateMetadata(45, 2, 10)
	assert.Equal(t, 2, m.PageNumber)
	assert.Equal(t, 10, m.PageSize)
	assert.Equal(t, 45, m.TotalCount)
	assert.Equal(t, 5, m.TotalPages)
	assert.True(t, m.HasPreviousPage)
	assert.True(t, m.HasNextPage)
}

func TestCalculateMetadataBoundaries(t *testing.T) {
	// First page has no previous page.
	m := CalculateMetadata(45, 1, 10)
	assert.False(t, m.HasPreviousPage)
	assert.True(t, m.HasNextPage)

	// Last page has no next page.
	m = CalculateMetadata(45, 5, 10)
	assert.True(t, m.HasPreviousPage)
	assert.False(t, m.HasNextPage)

	// A page beyond the last one still reports no next page.
	m = CalculateMetadata(45, 9, 10)
	assert.False(t, m.HasNextPage)

	// An exact multiple does not produce a trailing empty page.
	m = CalculateMetadata(40, 1, 10)
	assert.Equal(t, 4, m.TotalPages)
}

func TestCalculateMetadataEmpty(t *testing.T) {
	m := CalculateMetadata(0, 1, 10)
	assert.Equal(t, 0, m.TotalCount)
	assert.Equal(t, 0, m.TotalPages)
	assert.False(t, m.HasPreviousPage)
	assert.False(t, m.HasNextPage)
}
