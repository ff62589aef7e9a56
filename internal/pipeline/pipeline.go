package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/cartovote/vote-map/internal/adapter/house"
	"github.com/cartovote/vote-map/internal/domain"
	"github.com/cartovote/vote-map/internal/geometry"
	"github.com/cartovote/vote-map/internal/observability"
)

// VoteSource fetches one Senate roll call.
type VoteSource interface {
	Fetch(ctx context.Context, congress, session, roll int) (domain.RollCall, error)
}

// HouseVoteSource fetches one House roll call with district-resolved votes.
type HouseVoteSource interface {
	Fetch(ctx context.Context, congress, session, roll int) (house.RollCall, error)
}

// BoundaryLoader supplies boundary geometry for the join step.
type BoundaryLoader interface {
	States(ctx context.Context) ([]geometry.Shape, error)
	Districts(ctx context.Context) ([]geometry.Shape, error)
}

// MapRenderer draws joined rows into an encoded image.
type MapRenderer interface {
	Render(rows []geometry.JoinedRow, title string) ([]byte, error)
}

// Map is one finished choropleth.
type Map struct {
	Title string
	PNG   []byte
}

// StepError tags a failure with the pipeline step it occurred in, so callers
// can report which stage broke without parsing the message.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return e.Step + ": " + e.Err.Error()
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func stepErr(step string, err error) error {
	return &StepError{Step: step, Err: err}
}

// Pipeline orchestrates the fetch-classify-join-render flow for both chambers.
type Pipeline struct {
	senate     VoteSource
	house      HouseVoteSource
	boundaries BoundaryLoader
	senateMap  MapRenderer
	houseMap   MapRenderer
	logger     *slog.Logger
	metrics    *observability.Metrics
	ready      atomic.Bool
}

// New creates a Pipeline. The house source may be nil when only Senate maps
// are needed.
func New(senate VoteSource, houseSrc HouseVoteSource, boundaries BoundaryLoader, senateMap, houseMap MapRenderer, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		senate:     senate,
		house:      houseSrc,
		boundaries: boundaries,
		senateMap:  senateMap,
		houseMap:   houseMap,
		logger:     logger,
		metrics:    metrics,
	}
}

// CheckReadiness returns nil once the pipeline has produced at least one map.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not rendered any maps yet")
	}
	return nil
}

// SenateMap builds the choropleth for one Senate roll call.
func (p *Pipeline) SenateMap(ctx context.Context, congress, session, roll int) (Map, error) {
	start := time.Now()
	m, err := p.senateMapInner(ctx, congress, session, roll)
	p.observe("senate", start, err)
	return m, err
}

func (p *Pipeline) senateMapInner(ctx context.Context, congress, session, roll int) (Map, error) {
	rc, err := p.senate.Fetch(ctx, congress, session, roll)
	if err != nil {
		return Map{}, stepErr("fetch", err)
	}

	orientations, err := domain.ClassifyStates(rc.Records)
	if err != nil {
		return Map{}, stepErr("classify", err)
	}

	shapes, err := p.boundaries.States(ctx)
	if err != nil {
		return Map{}, stepErr("join", err)
	}
	rows, err := geometry.Join(geometry.OrientationCategories(orientations), shapes)
	if err != nil {
		return Map{}, stepErr("join", err)
	}

	png, err := p.senateMap.Render(rows, rc.Title())
	if err != nil {
		return Map{}, stepErr("render", err)
	}

	p.logger.Info("senate map rendered",
		"congress", congress,
		"session", session,
		"roll", roll,
		"states", len(rows),
		"bytes", len(png),
	)
	return Map{Title: rc.Title(), PNG: png}, nil
}

// HouseMap builds the choropleth for one House roll call. Districts with no
// recorded vote (vacant seats) are shown as Not Voting rather than failing
// the join.
func (p *Pipeline) HouseMap(ctx context.Context, congress, session, roll int) (Map, error) {
	start := time.Now()
	m, err := p.houseMapInner(ctx, congress, session, roll)
	p.observe("house", start, err)
	return m, err
}

func (p *Pipeline) houseMapInner(ctx context.Context, congress, session, roll int) (Map, error) {
	if p.house == nil {
		return Map{}, stepErr("fetch", errors.New("house vote source not configured"))
	}

	rc, err := p.house.Fetch(ctx, congress, session, roll)
	if err != nil {
		return Map{}, stepErr("fetch", err)
	}

	shapes, err := p.boundaries.Districts(ctx)
	if err != nil {
		return Map{}, stepErr("join", err)
	}

	categories := districtCategories(rc.Votes)
	vacant := padVacantDistricts(categories, shapes)
	if vacant > 0 {
		p.logger.Warn("districts without a recorded vote marked as not voting",
			"count", vacant,
			"congress", congress,
			"roll", roll,
		)
	}

	rows, err := geometry.Join(categories, shapes)
	if err != nil {
		return Map{}, stepErr("join", err)
	}

	png, err := p.houseMap.Render(rows, rc.Title())
	if err != nil {
		return Map{}, stepErr("render", err)
	}

	p.logger.Info("house map rendered",
		"congress", congress,
		"session", session,
		"roll", roll,
		"districts", len(rows),
		"bytes", len(png),
	)
	return Map{Title: rc.Title(), PNG: png}, nil
}

func (p *Pipeline) observe(chamber string, start time.Time, err error) {
	p.metrics.RenderDuration.Observe(time.Since(start).Seconds())
	p.metrics.MapsRendered.WithLabelValues(chamber, mapOutcome(err)).Inc()
	if err == nil {
		p.ready.Store(true)
	}
}

func mapOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// districtCategories keys each recorded vote's position by district GEOID.
func districtCategories(votes []house.DistrictVote) map[string]string {
	categories := make(map[string]string, len(votes))
	for _, v := range votes {
		categories[v.GEOID] = string(v.Position)
	}
	return categories
}

// padVacantDistricts fills boundary districts missing from the vote set with
// a Not Voting entry so the join stays total. Returns the number padded.
func padVacantDistricts(categories map[string]string, shapes []geometry.Shape) int {
	padded := 0
	for _, s := range shapes {
		if _, ok := categories[s.Key]; !ok {
			categories[s.Key] = string(domain.PositionNotVoting)
			padded++
		}
	}
	return padded
}
