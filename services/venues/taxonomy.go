package venues

import (
	"strings"

	"travelland/models"
)

// queryAliases maps free-text query words onto the internal taxonomy. The
// mapping is deliberately a data table; adapters never branch on query text.
var queryAliases = map[string]models.Category{
	"restaurant":  models.CategoryRestaurant,
	"restaurants": models.CategoryRestaurant,
	"food":        models.CategoryRestaurant,
	"eat":         models.CategoryRestaurant,
	"dinner":      models.CategoryRestaurant,
	"lunch":       models.CategoryRestaurant,
	"cafe":        models.CategoryCafe,
	"cafes":       models.CategoryCafe,
	"coffee":      models.CategoryCafe,
	"breakfast":   models.CategoryCafe,
	"bar":         models.CategoryBar,
	"bars":        models.CategoryBar,
	"pub":         models.CategoryBar,
	"pubs":        models.CategoryBar,
	"drinks":      models.CategoryBar,
	"nightclub":   models.CategoryNightclub,
	"nightclubs":  models.CategoryNightclub,
	"club":        models.CategoryNightclub,
	"clubs":       models.CategoryNightclub,
	"nightlife":   models.CategoryNightclub,
	"historic":    models.CategoryHistoric,
	"history":     models.CategoryHistoric,
	"historical":  models.CategoryHistoric,
	"monument":    models.CategoryHistoric,
	"monuments":   models.CategoryHistoric,
	"sights":      models.CategoryHistoric,
	"market":      models.CategoryMarket,
	"markets":     models.CategoryMarket,
	"shopping":    models.CategoryMarket,
	"park":        models.CategoryPark,
	"parks":       models.CategoryPark,
	"garden":      models.CategoryPark,
	"gardens":     models.CategoryPark,
	"nature":      models.CategoryPark,
	"museum":      models.CategoryMuseum,
	"museums":     models.CategoryMuseum,
	"gallery":     models.CategoryMuseum,
	"galleries":   models.CategoryMuseum,
	"art":         models.CategoryMuseum,
}

// CategoryFromQuery maps a category hint or free-text query to the internal
// taxonomy. The first recognised word wins; an unrecognised query defaults to
// restaurant, the dominant intent in practice.
func CategoryFromQuery(q string) models.Category {
	for _, word := range strings.Fields(strings.ToLower(q)) {
		word = strings.Trim(word, ".,!?\"'")
		if cat, ok := queryAliases[word]; ok {
			return cat
		}
	}
	return models.CategoryRestaurant
}
