package geo

import "math"

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// Point is a geographic coordinate in decimal degrees.
type Point struct {
	// Lat is the latitude in degrees north, in [-90, 90].
	Lat float64

	// Lon is the longitude in degrees east, in [-180, 180].
	Lon float64
}

// Haversine returns the great-circle distance between a and b in kilometers.
//
// Complexity: O(1) time, O(1) space.
func Haversine(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lon1 := a.Lon * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	lon2 := b.Lon * math.Pi / 180

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// Matrix returns the n by n table of pairwise haversine distances for pts.
// The diagonal is exactly zero and dist[i][j] == dist[j][i] for all i, j.
// Each unordered pair is computed once and mirrored, so the symmetry holds
// by construction as well as by the formula.
//
// Complexity: O(n^2) time, O(n^2) space.
func Matrix(pts []Point) [][]float64 {
	n := len(pts)
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}
	var i, j int
	var d float64
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			d = Haversine(pts[i], pts[j])
			dist[i][j] = d
			dist[j][i] = d
		}
	}

	return dist
}
