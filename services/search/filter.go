package search

import (
	"sort"
	"strings"

	"travelland/models"
	"travelland/services/venues"
)

// FilterScorer drops geographically irrelevant or incomplete candidates and
// assigns each survivor a distance-decay relevance score.
type FilterScorer struct {
	MaxDistanceKm float64
	DecayKm       float64
}

func NewFilterScorer(maxDistanceKm, decayKm float64) *FilterScorer {
	return &FilterScorer{MaxDistanceKm: maxDistanceKm, DecayKm: decayKm}
}

// Apply converts raw candidates into ranked venues. Rejected outright:
// unnamed records, coordinate-only records (no human-readable address),
// categories outside the taxonomy, and anything farther than MaxDistanceKm
// from the center. The score decays linearly from 1.0 at the center to 0.0
// at DecayKm and is clamped to [0,1]; approximate-location candidates always
// score 0 so they sort after every located venue.
func (f *FilterScorer) Apply(center models.Coordinate, raw []models.RawVenue) []models.Venue {
	out := make([]models.Venue, 0, len(raw))
	for _, r := range raw {
		if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Address) == "" {
			continue
		}
		if !models.KnownCategories[r.Category] {
			continue
		}
		if r.Lat == 0 && r.Lon == 0 {
			continue
		}

		dist := models.HaversineKm(center, models.Coordinate{Lat: r.Lat, Lon: r.Lon})
		if dist > f.MaxDistanceKm {
			continue
		}

		score := f.score(dist)
		if r.LocationApprox {
			// Pinned to the area center; a fabricated zero distance must not
			// outrank venues with real coordinates.
			score = 0
		}

		out = append(out, models.Venue{
			ID:         r.Source + ":" + r.LocalID,
			Name:       strings.TrimSpace(r.Name),
			Category:   r.Category,
			Lat:        r.Lat,
			Lon:        r.Lon,
			Address:    strings.TrimSpace(r.Address),
			Rating:     r.Rating,
			Phone:      r.Phone,
			Website:    r.Website,
			Source:     r.Source,
			DistanceKm: dist,
			Score:      score,
		})
	}

	Rank(out)
	return out
}

func (f *FilterScorer) score(distKm float64) float64 {
	if f.DecayKm <= 0 {
		return 0
	}
	s := 1.0 - distKm/f.DecayKm
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// Rank orders venues by descending score, then provider priority, then name.
// Both filtering and dedup finish with the same ordering, which keeps the
// pipeline idempotent.
func Rank(vs []models.Venue) {
	sort.SliceStable(vs, func(i, j int) bool {
		if vs[i].Score != vs[j].Score {
			return vs[i].Score > vs[j].Score
		}
		pi, pj := venues.PriorityOf(vs[i].Source), venues.PriorityOf(vs[j].Source)
		if pi != pj {
			return pi < pj
		}
		return vs[i].Name < vs[j].Name
	})
}
