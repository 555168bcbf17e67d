package guide

import (
	"strings"

	"travelland/models"
)

// cityProfile is curated seed content shipped with the binary. It rides along
// the venue list so the UI can render cost and transport panels without
// another round trip.
type cityProfile struct {
	costs     []models.CostEntry
	transport []models.TransportMode
	guide     []string
}

var defaultCosts = []models.CostEntry{
	{Tier: "budget", DailyUSD: 50, Description: "Hostels, street food, public transport"},
	{Tier: "mid", DailyUSD: 140, Description: "Three-star hotels, casual restaurants, occasional taxis"},
	{Tier: "luxury", DailyUSD: 400, Description: "Four/five-star hotels, fine dining, private transfers"},
}

var profiles = map[string]cityProfile{
	"london": {
		costs: []models.CostEntry{
			{Tier: "budget", DailyUSD: 85, Description: "Hostels, markets, Oyster card"},
			{Tier: "mid", DailyUSD: 210, Description: "Mid-range hotels, pubs and casual dining"},
			{Tier: "luxury", DailyUSD: 550, Description: "West End hotels, fine dining, black cabs"},
		},
		transport: []models.TransportMode{
			{Mode: "tube", Notes: "Fastest across town; contactless cards work directly"},
			{Mode: "bus", Notes: "Slower but scenic; flat fare per ride"},
			{Mode: "walk", Notes: "Central districts are compact and walkable"},
		},
		guide: []string{
			"London splits into distinct villages: the City for history, Soho for nightlife, South Bank for culture.",
			"Most major museums are free; book popular exhibitions ahead.",
		},
	},
	"paris": {
		costs: []models.CostEntry{
			{Tier: "budget", DailyUSD: 75, Description: "Hostels, boulangeries, metro carnet"},
			{Tier: "mid", DailyUSD: 190, Description: "Boutique hotels, bistros"},
			{Tier: "luxury", DailyUSD: 520, Description: "Palace hotels, starred dining"},
		},
		transport: []models.TransportMode{
			{Mode: "metro", Notes: "Dense network; most sights within a short ride"},
			{Mode: "walk", Notes: "Arrondissements along the Seine are best on foot"},
		},
		guide: []string{
			"Paris rewards neighborhood-level exploration: each arrondissement has its own character.",
		},
	},
	"new york": {
		transport: []models.TransportMode{
			{Mode: "subway", Notes: "Runs 24/7; OMNY contactless at every turnstile"},
			{Mode: "walk", Notes: "Manhattan's grid makes orientation trivial"},
		},
		guide: []string{
			"Manhattan alone fills a week; budget time for Brooklyn's food and views.",
		},
	},
}

func normalize(city string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(city))), " ")
}

// CostsFor returns cost rows for the city, filtered to the requested budget
// tier when one is given. Unknown cities fall back to generic estimates.
func CostsFor(city, tier string) []models.CostEntry {
	costs := defaultCosts
	if p, ok := profiles[normalize(city)]; ok && len(p.costs) > 0 {
		costs = p.costs
	}

	tier = strings.ToLower(strings.TrimSpace(tier))
	if tier == "" {
		return costs
	}
	var filtered []models.CostEntry
	for _, c := range costs {
		if c.Tier == tier {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		return costs
	}
	return filtered
}

// TransportFor returns transport notes for the city, if curated.
func TransportFor(city string) []models.TransportMode {
	if p, ok := profiles[normalize(city)]; ok {
		return p.transport
	}
	return nil
}

// GuideFor returns short travel-guide paragraphs for the city, if curated.
func GuideFor(city string) []string {
	if p, ok := profiles[normalize(city)]; ok {
		return p.guide
	}
	return nil
}
