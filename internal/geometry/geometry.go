// Package geometry loads state and district boundary reference data and joins
// it with classified vote results.
//
// Boundaries come from a local GeoJSON FeatureCollection, typically converted
// from the Census Bureau cartographic boundary shapefiles (cb_*_us_state_20m,
// cb_*_us_cd_500k). State features are keyed by the STUSPS property, districts
// by GEOID. The files are read-only reference data, loaded once per run.
package geometry

import (
	"fmt"
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/cartovote/vote-map/internal/domain"
)

// Shape is one region's boundary, keyed by its join identifier
// (USPS state code for states, GEOID for congressional districts).
type Shape struct {
	Key      string
	Name     string
	Boundary orb.MultiPolygon
}

// nonStateCodes are feature keys dropped from the state layer: DC and the
// territories appear in Census boundary files but seat no senators.
var nonStateCodes = map[string]bool{
	"DC": true, "PR": true, "VI": true, "GU": true, "MP": true, "AS": true,
}

// nonVotingStateFPs are state FIPS prefixes dropped from the district layer,
// matching the territories above plus DC.
var nonVotingStateFPs = map[string]bool{
	"11": true, "60": true, "66": true, "69": true, "72": true, "78": true,
}

// LoadStates reads the 50-state boundary GeoJSON file. Features are keyed by
// the STUSPS property (STATE_ABBR as a fallback); DC and territories are
// dropped. Missing or duplicate keys wrap domain.ErrParse.
func LoadStates(path string) ([]Shape, error) {
	fc, err := readFeatureCollection(path)
	if err != nil {
		return nil, err
	}

	shapes := make([]Shape, 0, len(fc.Features))
	seen := make(map[string]bool)
	for _, f := range fc.Features {
		key := strings.ToUpper(strings.TrimSpace(f.Properties.MustString("STUSPS", f.Properties.MustString("STATE_ABBR", ""))))
		if key == "" {
			return nil, fmt.Errorf("%w: state feature without STUSPS in %s", domain.ErrParse, path)
		}
		if nonStateCodes[key] {
			continue
		}
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate state %s in %s", domain.ErrParse, key, path)
		}
		seen[key] = true

		boundary, err := toMultiPolygon(f.Geometry)
		if err != nil {
			return nil, fmt.Errorf("%w: state %s: %v", domain.ErrParse, key, err)
		}
		shapes = append(shapes, Shape{
			Key:      key,
			Name:     f.Properties.MustString("NAME", domain.StateName(key)),
			Boundary: boundary,
		})
	}
	if len(shapes) == 0 {
		return nil, fmt.Errorf("%w: no state features in %s", domain.ErrParse, path)
	}
	return shapes, nil
}

// LoadDistricts reads the congressional district boundary GeoJSON file,
// keyed by GEOID (STATEFP + district number). DC and territory districts
// are dropped.
func LoadDistricts(path string) ([]Shape, error) {
	fc, err := readFeatureCollection(path)
	if err != nil {
		return nil, err
	}

	shapes := make([]Shape, 0, len(fc.Features))
	seen := make(map[string]bool)
	for _, f := range fc.Features {
		key := strings.TrimSpace(f.Properties.MustString("GEOID", ""))
		if key == "" {
			return nil, fmt.Errorf("%w: district feature without GEOID in %s", domain.ErrParse, path)
		}
		if len(key) >= 2 && nonVotingStateFPs[key[:2]] {
			continue
		}
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate district %s in %s", domain.ErrParse, key, path)
		}
		seen[key] = true

		boundary, err := toMultiPolygon(f.Geometry)
		if err != nil {
			return nil, fmt.Errorf("%w: district %s: %v", domain.ErrParse, key, err)
		}
		shapes = append(shapes, Shape{
			Key:      key,
			Name:     f.Properties.MustString("NAMELSAD", key),
			Boundary: boundary,
		})
	}
	if len(shapes) == 0 {
		return nil, fmt.Errorf("%w: no district features in %s", domain.ErrParse, path)
	}
	return shapes, nil
}

func readFeatureCollection(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read boundary file: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrParse, path, err)
	}
	return fc, nil
}

func toMultiPolygon(g orb.Geometry) (orb.MultiPolygon, error) {
	switch geom := g.(type) {
	case orb.Polygon:
		return orb.MultiPolygon{geom}, nil
	case orb.MultiPolygon:
		return geom, nil
	default:
		return nil, fmt.Errorf("unsupported geometry type %T", g)
	}
}
