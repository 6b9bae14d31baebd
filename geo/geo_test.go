// Package geo_test validates the distance oracle.
// Focus:
//  1. Exact symmetry: Haversine(a, b) == Haversine(b, a), no tolerance.
//  2. Zero self-distance for every point.
//  3. Agreement with closed-form great-circle values on the equator,
//     a meridian and the antipodal case.
//  4. Matrix mirrors Haversine with a zero diagonal.
package geo_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fblanch/swisscal/geo"
)

// samplePoints covers hemispheres, the date line and the poles.
var samplePoints = []geo.Point{
	{Lat: 0, Lon: 0},
	{Lat: 41.380898, Lon: 2.122820},
	{Lat: 48.218775, Lon: 11.624753},
	{Lat: -33.946111, Lon: 18.478889},
	{Lat: 51.481667, Lon: -0.191111},
	{Lat: 90, Lon: 0},
	{Lat: -90, Lon: 45},
	{Lat: 35.9, Lon: 179.95},
	{Lat: 35.9, Lon: -179.95},
}

func TestHaversine_SymmetryExact(t *testing.T) {
	for i, a := range samplePoints {
		for j, b := range samplePoints {
			ab := geo.Haversine(a, b)
			ba := geo.Haversine(b, a)
			if ab != ba {
				t.Fatalf("asymmetric distance for pair (%d,%d): %v != %v", i, j, ab, ba)
			}
		}
	}
}

func TestHaversine_ZeroSelf(t *testing.T) {
	for i, p := range samplePoints {
		if d := geo.Haversine(p, p); d != 0 {
			t.Fatalf("self-distance of point %d is %v, want 0", i, d)
		}
	}
}

func TestHaversine_ClosedFormValues(t *testing.T) {
	// One degree of arc on a great circle.
	oneDegree := geo.EarthRadiusKm * math.Pi / 180

	// Ten degrees along the equator.
	d := geo.Haversine(geo.Point{Lat: 0, Lon: 0}, geo.Point{Lat: 0, Lon: 10})
	require.InDelta(t, 10*oneDegree, d, 1e-6)

	// Ten degrees along a meridian.
	d = geo.Haversine(geo.Point{Lat: 0, Lon: 30}, geo.Point{Lat: 10, Lon: 30})
	require.InDelta(t, 10*oneDegree, d, 1e-6)

	// Pole to equator: a quarter of the circumference.
	d = geo.Haversine(geo.Point{Lat: 90, Lon: 0}, geo.Point{Lat: 0, Lon: 0})
	require.InDelta(t, geo.EarthRadiusKm*math.Pi/2, d, 1e-6)

	// Antipodal points: half the circumference.
	d = geo.Haversine(geo.Point{Lat: 0, Lon: 0}, geo.Point{Lat: 0, Lon: 180})
	require.InDelta(t, geo.EarthRadiusKm*math.Pi, d, 1e-6)
}

func TestHaversine_Nonnegative(t *testing.T) {
	for _, a := range samplePoints {
		for _, b := range samplePoints {
			require.GreaterOrEqual(t, geo.Haversine(a, b), 0.0)
		}
	}
}

func TestMatrix(t *testing.T) {
	m := geo.Matrix(samplePoints)
	require.Len(t, m, len(samplePoints))
	for i := range samplePoints {
		require.Len(t, m[i], len(samplePoints))
		require.Zero(t, m[i][i])
		for j := range samplePoints {
			require.Equal(t, m[j][i], m[i][j], "matrix must be symmetric")
			require.Equal(t, geo.Haversine(samplePoints[i], samplePoints[j]), m[i][j])
		}
	}
}

func TestMatrix_Empty(t *testing.T) {
	require.Empty(t, geo.Matrix(nil))
}
