package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testShapePath = "testdata/states.geojson"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SHAPE_FILE_PATH", testShapePath)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, testShapePath, cfg.ShapeFilePath)
	assert.Empty(t, cfg.DistrictShapeFilePath)
	assert.Equal(t, "https://www.senate.gov/legislative/LIS/roll_call_votes", cfg.SenateBaseURL)
	assert.Equal(t, "https://clerk.house.gov/evs", cfg.HouseBaseURL)
	assert.Equal(t, "https://clerk.house.gov/xml/lists/MemberData.xml", cfg.HouseMembersURL)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 64, cfg.VoteCacheSize)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Empty(t, cfg.PaletteFile)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("SHAPE_FILE_PATH", "/data/cb_2023_us_state_20m.geojson")
	t.Setenv("DISTRICT_SHAPE_FILE_PATH", "/data/cb_2023_us_cd118_20m.geojson")
	t.Setenv("SENATE_BASE_URL", "http://localhost:8081/lis")
	t.Setenv("HOUSE_BASE_URL", "http://localhost:8081/evs")
	t.Setenv("HOUSE_MEMBERS_URL", "http://localhost:8081/members.xml")
	t.Setenv("FETCH_TIMEOUT", "30s")
	t.Setenv("VOTE_CACHE_SIZE", "8")
	t.Setenv("OUTPUT_DIR", "/tmp/maps")
	t.Setenv("PALETTE_FILE", "palette.yaml")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/cb_2023_us_state_20m.geojson", cfg.ShapeFilePath)
	assert.Equal(t, "/data/cb_2023_us_cd118_20m.geojson", cfg.DistrictShapeFilePath)
	assert.Equal(t, "http://localhost:8081/lis", cfg.SenateBaseURL)
	assert.Equal(t, "http://localhost:8081/evs", cfg.HouseBaseURL)
	assert.Equal(t, "http://localhost:8081/members.xml", cfg.HouseMembersURL)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 8, cfg.VoteCacheSize)
	assert.Equal(t, "/tmp/maps", cfg.OutputDir)
	assert.Equal(t, "palette.yaml", cfg.PaletteFile)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_MissingShapePath(t *testing.T) {
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHAPE_FILE_PATH")
}

func TestLoad_InvalidFetchTimeout(t *testing.T) {
	t.Setenv("SHAPE_FILE_PATH", testShapePath)
	t.Setenv("FETCH_TIMEOUT", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FETCH_TIMEOUT")
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	t.Setenv("SHAPE_FILE_PATH", testShapePath)
	t.Setenv("SHUTDOWN_TIMEOUT", "-1s")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidCacheSize(t *testing.T) {
	t.Setenv("SHAPE_FILE_PATH", testShapePath)
	t.Setenv("VOTE_CACHE_SIZE", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VOTE_CACHE_SIZE")
}
