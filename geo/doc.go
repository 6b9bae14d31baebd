// Package geo computes great-circle distances between stadium locations.
//
// It provides:
//
//   - Point: a latitude/longitude pair in decimal degrees (WGS 84).
//   - Haversine: great-circle distance between two Points in kilometers.
//   - Matrix: a precomputed pairwise distance table for a fixed point set.
//
// Contracts:
//   - Haversine is deterministic and side-effect free.
//   - Haversine(a, b) == Haversine(b, a) exactly: the formula only combines
//     the inputs through squared sines and a commutative product, so no
//     asymmetric rounding can occur.
//   - Haversine(a, a) == 0 for every point.
//
// Inputs never change within an optimization run, so results may be cached
// or recomputed freely with no ordering constraints.
package geo
