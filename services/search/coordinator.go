package search

import (
	"context"
	"strings"
	"time"

	"travelland/models"
	"travelland/services/geocode"
	"travelland/services/venues"

	"go.uber.org/zap"
)

// State is the coordinator's position in the request lifecycle.
type State int

const (
	StateIdle State = iota
	StateResolving
	StateFetching
	StatePartialReady
	StateFinalizing
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolving:
		return "resolving"
	case StateFetching:
		return "fetching"
	case StatePartialReady:
		return "partialReady"
	case StateFinalizing:
		return "finalizing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the finalized result of one coordinated search.
type Outcome struct {
	Venues             []models.Venue
	Area               models.GeoArea
	Category           models.Category
	ProvidersTotal     int
	ProvidersSucceeded int
	ProvidersFailed    int
	ProvidersAbandoned int
}

// Coordinator owns the wall-clock budget for a request: it resolves the
// area, fans out to every adapter in parallel, cuts a partial snapshot at
// the partial threshold, and finalizes with whatever has arrived by the
// deadline. Adapters still running at the deadline are abandoned; their
// results are discarded, never retried.
type Coordinator struct {
	Resolver geocode.Resolver
	Adapters []venues.Adapter
	Filter   *FilterScorer
	Dedup    *Deduplicator
	Budget   models.RequestBudget
	Logger   *zap.Logger
}

type providerResult struct {
	name   string
	venues []models.RawVenue
	err    error
}

// progress tracks state transitions with a monotonic reference point.
type progress struct {
	state   State
	started time.Time
	logger  *zap.Logger
}

func (p *progress) to(next State) {
	p.logger.Debug("search state transition",
		zap.String("from", p.state.String()),
		zap.String("to", next.String()),
		zap.Duration("elapsed", time.Since(p.started)))
	p.state = next
}

// Run executes the full pipeline. onPartial, when non-nil, receives the
// filtered+deduped snapshot taken at the partial threshold so a caller
// holding a live connection can show something before the deadline.
func (c *Coordinator) Run(ctx context.Context, req models.SearchRequest, onPartial func([]models.Venue)) (*Outcome, error) {
	if err := c.Budget.Validate(); err != nil {
		return nil, err
	}
	st := &progress{state: StateIdle, started: time.Now(), logger: c.Logger}

	st.to(StateResolving)
	area, err := c.resolveArea(ctx, req)
	if err != nil {
		st.to(StateFailed)
		return nil, err
	}

	category := venues.CategoryFromQuery(req.Query())
	adapters := c.selectAdapters(req.Provider)

	st.to(StateFetching)
	results := make(chan providerResult, len(adapters))
	for _, adapter := range adapters {
		go func(a venues.Adapter) {
			fetchCtx, cancel := context.WithTimeout(ctx, c.Budget.ProviderTimeout)
			defer cancel()
			vs, err := a.Query(fetchCtx, area, category)
			results <- providerResult{name: a.Name(), venues: vs, err: err}
		}(adapter)
	}

	partialTimer := time.NewTimer(c.Budget.PartialAfter)
	defer partialTimer.Stop()
	deadlineTimer := time.NewTimer(c.Budget.Deadline)
	defer deadlineTimer.Stop()

	outcome := &Outcome{Area: area, Category: category, ProvidersTotal: len(adapters)}
	var raw []models.RawVenue
	pending := len(adapters)

collect:
	for pending > 0 {
		select {
		case res := <-results:
			pending--
			if res.err != nil {
				outcome.ProvidersFailed++
				c.Logger.Warn("provider degraded to zero contributions",
					zap.String("provider", res.name),
					zap.Error(res.err))
				continue
			}
			outcome.ProvidersSucceeded++
			raw = append(raw, res.venues...)
		case <-partialTimer.C:
			st.to(StatePartialReady)
			if onPartial != nil {
				onPartial(c.finalizeSet(area.Center, raw))
			}
		case <-deadlineTimer.C:
			outcome.ProvidersAbandoned = pending
			c.Logger.Warn("deadline reached, abandoning outstanding providers",
				zap.Int("abandoned", pending))
			break collect
		case <-ctx.Done():
			st.to(StateFailed)
			return nil, ctx.Err()
		}
	}

	st.to(StateFinalizing)
	outcome.Venues = c.finalizeSet(area.Center, raw)
	st.to(StateDone)
	return outcome, nil
}

// finalizeSet runs scoring and dedup over a snapshot of the accumulator.
// It copies the slice so late provider appends never interleave with a
// finalization already in progress.
func (c *Coordinator) finalizeSet(center models.Coordinate, raw []models.RawVenue) []models.Venue {
	snapshot := append([]models.RawVenue(nil), raw...)
	return c.Dedup.Apply(c.Filter.Apply(center, snapshot))
}

// resolveArea prefers an explicit neighborhood bbox over city geocoding.
func (c *Coordinator) resolveArea(ctx context.Context, req models.SearchRequest) (models.GeoArea, error) {
	if req.NeighborhoodBBox != nil {
		bbox := *req.NeighborhoodBBox
		return models.GeoArea{
			Center:   bbox.Center(),
			BBox:     bbox,
			RadiusKm: bbox.DiagonalKm() / 2,
		}, nil
	}
	return c.Resolver.Resolve(ctx, req.City, req.Country)
}

func (c *Coordinator) selectAdapters(preferred string) []venues.Adapter {
	if preferred == "" {
		return c.Adapters
	}
	for _, a := range c.Adapters {
		if strings.EqualFold(a.Name(), preferred) {
			return []venues.Adapter{a}
		}
	}
	return c.Adapters
}

// ProviderNames lists the configured adapters, for cache fingerprinting.
func (c *Coordinator) ProviderNames() []string {
	names := make([]string, 0, len(c.Adapters))
	for _, a := range c.Adapters {
		names = append(names, a.Name())
	}
	return names
}
