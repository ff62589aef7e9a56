package geometry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartovote/vote-map/internal/domain"
)

func squarePolygon(x, y float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{x, y}, {x + 1, y}, {x + 1, y + 1}, {x, y + 1}, {x, y},
	}}
}

func writeStateFile(t *testing.T, features map[string]orb.Geometry) string {
	t.Helper()
	fc := geojson.NewFeatureCollection()
	for key, geom := range features {
		f := geojson.NewFeature(geom)
		f.Properties["STUSPS"] = key
		f.Properties["NAME"] = domain.StateName(key)
		fc.Append(f)
	}
	data, err := fc.MarshalJSON()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "states.geojson")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadStates(t *testing.T) {
	path := writeStateFile(t, map[string]orb.Geometry{
		"CA": squarePolygon(0, 0),
		"TX": orb.MultiPolygon{squarePolygon(2, 0), squarePolygon(4, 0)},
		"DC": squarePolygon(6, 0), // dropped: not a state
		"PR": squarePolygon(8, 0), // dropped: territory
	})

	shapes, err := LoadStates(path)
	require.NoError(t, err)
	require.Len(t, shapes, 2)

	byKey := map[string]Shape{}
	for _, s := range shapes {
		byKey[s.Key] = s
	}
	assert.Equal(t, "California", byKey["CA"].Name)
	assert.Len(t, byKey["CA"].Boundary, 1)
	assert.Len(t, byKey["TX"].Boundary, 2)
	assert.NotContains(t, byKey, "DC")
	assert.NotContains(t, byKey, "PR")
}

func TestLoadStates_DuplicateState(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	for range 2 {
		f := geojson.NewFeature(squarePolygon(0, 0))
		f.Properties["STUSPS"] = "CA"
		fc.Append(f)
	}
	data, err := fc.MarshalJSON()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "dup.geojson")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err = LoadStates(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrParse))
	assert.Contains(t, err.Error(), "CA")
}

func TestLoadStates_MissingFile(t *testing.T) {
	_, err := LoadStates(filepath.Join(t.TempDir(), "nope.geojson"))
	require.Error(t, err)
}

func TestLoadStates_NotGeoJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.geojson")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := LoadStates(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrParse))
}

func TestLoadDistricts(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	for i, geoid := range []string{"0601", "4801", "1198", "7200"} {
		f := geojson.NewFeature(squarePolygon(float64(2*i), 0))
		f.Properties["GEOID"] = geoid
		f.Properties["NAMELSAD"] = "Congressional District " + geoid
		fc.Append(f)
	}
	data, err := fc.MarshalJSON()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "districts.geojson")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	shapes, err := LoadDistricts(path)
	require.NoError(t, err)
	// DC (11) and PR (72) prefixes are dropped.
	require.Len(t, shapes, 2)
	keys := []string{shapes[0].Key, shapes[1].Key}
	assert.ElementsMatch(t, []string{"0601", "4801"}, keys)
}

func TestJoin_Total(t *testing.T) {
	shapes := []Shape{
		{Key: "CA", Boundary: orb.MultiPolygon{squarePolygon(0, 0)}},
		{Key: "TX", Boundary: orb.MultiPolygon{squarePolygon(2, 0)}},
	}
	categories := map[string]string{"CA": "both_yea", "TX": "both_nay"}

	rows, err := Join(categories, shapes)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// Sorted by key.
	assert.Equal(t, "CA", rows[0].Key)
	assert.Equal(t, "both_yea", rows[0].Category)
	assert.Equal(t, "TX", rows[1].Key)
}

func TestJoin_UnmatchedBothSides(t *testing.T) {
	shapes := []Shape{
		{Key: "CA", Boundary: orb.MultiPolygon{squarePolygon(0, 0)}},
		{Key: "NV", Boundary: orb.MultiPolygon{squarePolygon(2, 0)}},
	}
	categories := map[string]string{"CA": "both_yea", "TX": "both_nay"}

	_, err := Join(categories, shapes)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrJoin))
	assert.Contains(t, err.Error(), "TX")
	assert.Contains(t, err.Error(), "NV")
}

func TestOrientationCategories(t *testing.T) {
	cats := OrientationCategories([]domain.StateOrientation{
		{State: "CA", Orientation: domain.OrientationBothYea},
		{State: "TX", Orientation: domain.OrientationSplitYeaNay},
	})
	assert.Equal(t, map[string]string{"CA": "both_yea", "TX": "split_yea_nay"}, cats)
}
