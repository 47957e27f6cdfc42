package response_test

import (
	"math"
	"testing"

	"go-hris-leave/internal/shared/response"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	t.Run("first page", func(t *testing.T) {
		page, meta := response.Paginate(items, 1, 2)
		assert.Equal(t, []int{1, 2}, page)
		assert.Equal(t, int64(5), meta.Total)
		assert.Equal(t, 3, meta.TotalPages)
	})

	t.Run("last partial page", func(t *testing.T) {
		page, _ := response.Paginate(items, 3, 2)
		assert.Equal(t, []int{5}, page)
	})

	t.Run("out of range page is empty", func(t *testing.T) {
		page, meta := response.Paginate(items, 9, 2)
		assert.Empty(t, page)
		assert.Equal(t, 9, meta.Page)
	})

	t.Run("invalid input falls back to defaults", func(t *testing.T) {
		page, meta := response.Paginate(items, 0, 0)
		assert.Len(t, page, 5)
		assert.Equal(t, 1, meta.Page)
		assert.Equal(t, 10, meta.PageSize)
	})

	t.Run("huge page does not overflow the offset", func(t *testing.T) {
		assert.NotPanics(t, func() {
			page, meta := response.Paginate([]int{1, 2, 3}, math.MaxInt64/4+2, 4)
			assert.Empty(t, page)
			assert.Equal(t, 1, meta.TotalPages)
		})
	})

	t.Run("huge page size returns everything", func(t *testing.T) {
		page, meta := response.Paginate(items, 1, math.MaxInt)
		assert.Equal(t, items, page)
		assert.Equal(t, 1, meta.TotalPages)
	})
}
