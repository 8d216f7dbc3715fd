package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, PageCount(0, 10))
	assert.Equal(t, 1, PageCount(1, 10))
	assert.Equal(t, 1, PageCount(10, 10))
	assert.Equal(t, 2, PageCount(11, 10))
	assert.Equal(t, 0, PageCount(5, 0))
}

func TestClampPageStaysInRange(t *testing.T) {
	for itemCount := 0; itemCount <= 45; itemCount++ {
		for page := -3; page <= 8; page++ {
			got := ClampPage(page, itemCount, 10)
			pages := PageCount(itemCount, 10)
			if pages == 0 {
				assert.Equal(t, 0, got, "itemCount=%d page=%d", itemCount, page)
				continue
			}
			assert.GreaterOrEqual(t, got, 0, "itemCount=%d page=%d", itemCount, page)
			assert.LessOrEqual(t, got, pages-1, "itemCount=%d page=%d", itemCount, page)
		}
	}
}

func TestClampPageAfterShrink(t *testing.T) {
	// Page 2 of 21 items exists; after dropping to 20 items it must clamp
	// back to page 1.
	assert.Equal(t, 2, ClampPage(2, 21, 10))
	assert.Equal(t, 1, ClampPage(2, 20, 10))
}

func TestPageBounds(t *testing.T) {
	start, end := PageBounds(0, 25, 10)
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)

	start, end = PageBounds(2, 25, 10)
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)

	start, end = PageBounds(5, 25, 10)
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)

	start, end = PageBounds(0, 0, 10)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestCreatePaginationComponents(t *testing.T) {
	assert.Nil(t, CreatePaginationComponents(0, 0, "multi", "tok"))
	assert.Nil(t, CreatePaginationComponents(0, 1, "multi", "tok"))
	assert.Len(t, CreatePaginationComponents(0, 2, "multi", "tok"), 1)
}
