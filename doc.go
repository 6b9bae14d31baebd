// Package swisscal plans the home/away fixture list of a Swiss-system
// league phase so that total travel distance is minimal.
//
// The module is a pipeline of small, independently testable packages:
//
//	league/    — team registry: CSV/HTML loading, validation, lookup
//	geo/       — great-circle (haversine) distances between grounds
//	milp/      — a tiny binary-program model plus an exact pure-Go solver
//	glpksolve/ — optional GLPK backend behind the same Solver interface
//	schedule/  — model builder, solution extractor, end-to-end Optimize
//	cmd/swisscal — the command-line front end
//
// The decision model has one binary variable per ordered pair of clubs from
// different countries ("A hosts B"), constrained so that every club plays
// the configured number of home and away matches, meets each seeding pot
// the configured number of times in each direction, never meets the same
// opponent twice, and never exceeds the per-country fixture cap. The
// objective is the sum of ground-to-ground distances over chosen fixtures.
//
// Infeasibility is a first-class outcome: contradictory rules produce
// schedule.ErrInfeasible with the active constraint families attached,
// never a partial schedule.
package swisscal
