package render

import "math"

// Albers equal-area conic projection with the parameters of EPSG:5070
// (Conus Albers): standard parallels 29.5°N and 45.5°N, latitude of origin
// 23°N, central meridian 96°W. The spherical form is used; for a static
// thematic map the difference from the ellipsoidal form is invisible.
const (
	earthRadius  = 6378137.0
	stdParallel1 = 29.5 * math.Pi / 180
	stdParallel2 = 45.5 * math.Pi / 180
	originLat    = 23.0 * math.Pi / 180
	originLon    = -96.0 * math.Pi / 180
)

var (
	albersN  = (math.Sin(stdParallel1) + math.Sin(stdParallel2)) / 2
	albersC  = math.Cos(stdParallel1)*math.Cos(stdParallel1) + 2*albersN*math.Sin(stdParallel1)
	albersR0 = earthRadius / albersN * math.Sqrt(albersC-2*albersN*math.Sin(originLat))
)

// projectAlbers maps a WGS-84 lon/lat pair to planar meters.
// Y grows northward; the renderer flips it for screen coordinates.
func projectAlbers(lon, lat float64) (x, y float64) {
	lambda := lon * math.Pi / 180
	phi := lat * math.Pi / 180

	rho := earthRadius / albersN * math.Sqrt(albersC-2*albersN*math.Sin(phi))
	theta := albersN * (lambda - originLon)

	x = rho * math.Sin(theta)
	y = albersR0 - rho*math.Cos(theta)
	return x, y
}
