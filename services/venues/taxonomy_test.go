package venues

import (
	"strings"
	"testing"

	"travelland/models"

	"github.com/stretchr/testify/assert"
)

func TestCategoryFromQuery(t *testing.T) {
	tests := []struct {
		query    string
		expected models.Category
	}{
		{"restaurant", models.CategoryRestaurant},
		{"best food in town", models.CategoryRestaurant},
		{"coffee", models.CategoryCafe},
		{"pubs", models.CategoryBar},
		{"nightlife", models.CategoryNightclub},
		{"historical monuments", models.CategoryHistoric},
		{"street markets", models.CategoryMarket},
		{"parks and gardens", models.CategoryPark},
		{"art galleries", models.CategoryMuseum},
		{"Where can I eat?", models.CategoryRestaurant},
		{"zzz unknown intent", models.CategoryRestaurant},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.expected, CategoryFromQuery(tt.query))
		})
	}
}

func TestFoodQueriesMapOnlyToFoodCategories(t *testing.T) {
	for _, q := range []string{"food", "restaurant", "eat", "dinner", "lunch", "cafe", "coffee", "bar", "pub"} {
		cat := CategoryFromQuery(q)
		assert.True(t, models.FoodCategories[cat], "query %q mapped to non-food category %q", q, cat)
	}
}

// The selector tables are the only place native tags enter the system; they
// must never reach for generic tagging that would pollute a category.
func TestOverpassSelectorsAreStrict(t *testing.T) {
	for cat, selectors := range overpassSelectors {
		for _, sel := range selectors {
			assert.NotContains(t, sel, `"building"`, "category %s leaks building tags", cat)
			assert.NotContains(t, sel, `"shop"`, "category %s leaks commercial tags", cat)
			if models.FoodCategories[cat] {
				assert.Contains(t, sel, `"amenity"`, "food category %s must select on amenity", cat)
				assert.NotContains(t, sel, `"leisure"`, "food category %s leaks leisure tags", cat)
				assert.NotContains(t, sel, `"tourism"`, "food category %s leaks tourism tags", cat)
			}
		}
	}
}

func TestEveryCategoryHasOverpassSelectors(t *testing.T) {
	for cat := range models.KnownCategories {
		selectors, ok := overpassSelectors[cat]
		assert.True(t, ok, "category %s missing from overpass table", cat)
		assert.NotEmpty(t, selectors)
	}
}

func TestGeoNamesTableOmitsUnmappableCategories(t *testing.T) {
	// GeoNames has no feature codes for these; the adapter must stay silent
	// rather than approximate.
	for _, cat := range []models.Category{models.CategoryCafe, models.CategoryBar, models.CategoryNightclub} {
		_, ok := geonamesCodes[cat]
		assert.False(t, ok, "category %s should not be served by geonames", cat)
	}
}

func TestPriorityOrdering(t *testing.T) {
	assert.Less(t, PriorityOf("overpass"), PriorityOf("opentripmap"))
	assert.Less(t, PriorityOf("opentripmap"), PriorityOf("geonames"))
	assert.Less(t, PriorityOf("geonames"), PriorityOf("websearch"))
	assert.Equal(t, len(Priority), PriorityOf("unknown"))
}

func TestCleanTitle(t *testing.T) {
	assert.Equal(t, "Luigi's", cleanTitle("Luigi's - Tripadvisor"))
	assert.Equal(t, "Blue Door", cleanTitle("Blue Door | Official Site"))
	assert.Equal(t, strings.TrimSpace("Plain"), cleanTitle(" Plain "))
}
