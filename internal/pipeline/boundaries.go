package pipeline

import (
	"context"
	"errors"
	"sync"

	"github.com/cartovote/vote-map/internal/geometry"
)

// FileBoundaries loads boundary geometry from local GeoJSON files, caching
// the parsed shapes after the first load. Boundary files never change during
// a run, so the cache has no invalidation.
type FileBoundaries struct {
	statePath    string
	districtPath string

	stateOnce sync.Once
	states    []geometry.Shape
	stateErr  error

	districtOnce sync.Once
	districts    []geometry.Shape
	districtErr  error
}

// NewFileBoundaries creates a loader for the given GeoJSON paths. The
// district path may be empty when only Senate maps are needed.
func NewFileBoundaries(statePath, districtPath string) *FileBoundaries {
	return &FileBoundaries{
		statePath:    statePath,
		districtPath: districtPath,
	}
}

func (b *FileBoundaries) States(_ context.Context) ([]geometry.Shape, error) {
	b.stateOnce.Do(func() {
		b.states, b.stateErr = geometry.LoadStates(b.statePath)
	})
	return b.states, b.stateErr
}

func (b *FileBoundaries) Districts(_ context.Context) ([]geometry.Shape, error) {
	if b.districtPath == "" {
		return nil, errors.New("district boundary file not configured")
	}
	b.districtOnce.Do(func() {
		b.districts, b.districtErr = geometry.LoadDistricts(b.districtPath)
	})
	return b.districts, b.districtErr
}
