package search

import (
	"math"
	"strings"
	"unicode"

	"travelland/models"
	"travelland/services/venues"
)

// genericSuffixWords are dropped during name normalization so that
// "Luigi's Restaurant" and "Luigis" collapse into the same group.
var genericSuffixWords = map[string]bool{
	"restaurant": true,
	"cafe":       true,
	"café":       true,
	"bar":        true,
	"pub":        true,
	"the":        true,
	"bistro":     true,
}

// Deduplicator collapses near-identical venues reported by multiple
// providers. Venues group by normalized name plus a coordinate bucket of
// roughly ProximityM metres.
type Deduplicator struct {
	ProximityM float64
}

func NewDeduplicator() *Deduplicator {
	return &Deduplicator{ProximityM: 50}
}

type dedupKey struct {
	name    string
	latCell int
	lonCell int
}

// Apply returns venues with duplicate groups collapsed. Within a group the
// most complete record wins; optional fields (rating, phone, website) are
// merged in from siblings without overwriting non-empty values. The result
// carries the same ordering contract as FilterScorer.Apply, so running the
// pipeline twice yields the same list.
func (d *Deduplicator) Apply(vs []models.Venue) []models.Venue {
	groups := make(map[dedupKey]models.Venue, len(vs))
	order := make([]dedupKey, 0, len(vs))

	for _, v := range vs {
		key := d.keyOf(v)
		existing, ok := groups[key]
		if !ok {
			groups[key] = v
			order = append(order, key)
			continue
		}
		groups[key] = merge(existing, v)
	}

	out := make([]models.Venue, 0, len(order))
	for _, key := range order {
		out = append(out, groups[key])
	}
	Rank(out)
	return out
}

func (d *Deduplicator) keyOf(v models.Venue) dedupKey {
	// ~111320 m per degree of latitude; longitude shrinks with cos(lat).
	latCell := int(math.Round(v.Lat * 111320 / d.ProximityM))
	lonScale := 111320 * math.Cos(v.Lat*math.Pi/180)
	if lonScale < 1 {
		lonScale = 1
	}
	lonCell := int(math.Round(v.Lon * lonScale / d.ProximityM))
	return dedupKey{name: NormalizeVenueName(v.Name), latCell: latCell, lonCell: lonCell}
}

// merge keeps the more complete of two records and fills its empty optional
// fields from the other.
func merge(a, b models.Venue) models.Venue {
	kept, other := a, b
	if completeness(b) > completeness(a) {
		kept, other = b, a
	} else if completeness(b) == completeness(a) &&
		venues.PriorityOf(b.Source) < venues.PriorityOf(a.Source) {
		kept, other = b, a
	}

	if kept.Rating == 0 {
		kept.Rating = other.Rating
	}
	if kept.Phone == "" {
		kept.Phone = other.Phone
	}
	if kept.Website == "" {
		kept.Website = other.Website
	}
	if kept.Address == "" {
		kept.Address = other.Address
	}
	return kept
}

func completeness(v models.Venue) int {
	score := 0
	if v.Address != "" {
		score++
	}
	if v.Phone != "" {
		score++
	}
	if v.Website != "" {
		score++
	}
	if v.Rating > 0 {
		score++
	}
	return score
}

// NormalizeVenueName casefolds, strips punctuation and removes generic
// suffix words.
func NormalizeVenueName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	words := strings.Fields(b.String())
	kept := words[:0]
	for _, w := range words {
		if genericSuffixWords[w] {
			continue
		}
		kept = append(kept, w)
	}
	if len(kept) == 0 {
		// Name was nothing but generic words; fall back to the raw fold.
		return strings.Join(words, " ")
	}
	return strings.Join(kept, " ")
}
