package storefront

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterSet_Query(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		assert.Empty(t, NewFilterSet().Query())
	})

	t.Run("FullSet", func(t *testing.T) {
		fs := NewFilterSet()
		fs.Search = "cola"
		fs.Categories[5] = true
		fs.Categories[2] = true
		fs.Subcategories[12] = true
		fs.Brands[9] = true
		fs.PMP = true
		fs.Promotion = true
		fs.Clearance = true

		q := fs.Query()

		assert.Equal(t, "cola", q.Get("search"))
		assert.Equal(t, "2,5", q.Get("categories"), "ids sorted ascending")
		assert.Equal(t, "12", q.Get("subcategories"))
		assert.Equal(t, "9", q.Get("brands"))
		assert.Equal(t, "true", q.Get("pmp"))
		assert.Equal(t, "true", q.Get("promotion"))
		assert.Equal(t, "true", q.Get("clearance"))
	})

	t.Run("FalseTogglesOmitted", func(t *testing.T) {
		q := NewFilterSet().Query()
		_, present := q["pmp"]
		assert.False(t, present)
	})
}

func TestFilterSet_CloneIsDeep(t *testing.T) {
	fs := NewFilterSet()
	fs.Categories[5] = true

	c := fs.Clone()
	c.Categories[7] = true

	assert.False(t, fs.Categories[7])
	assert.True(t, c.Categories[5])
}
