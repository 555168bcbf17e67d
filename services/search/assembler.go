package search

import (
	"travelland/models"
	"travelland/services/guide"
)

// Assemble maps a finalized outcome into the external response shape and
// attaches the sibling arrays supplied by the guide collaborator. Venues is
// always non-nil: zero matches serialize as an empty array, never null.
func Assemble(req models.SearchRequest, outcome *Outcome) models.SearchResponse {
	vs := outcome.Venues
	if vs == nil {
		vs = []models.Venue{}
	}
	return models.SearchResponse{
		Venues:     vs,
		Wikivoyage: guide.GuideFor(req.City),
		Costs:      guide.CostsFor(req.City, req.Budget),
		Transport:  guide.TransportFor(req.City),
	}
}
