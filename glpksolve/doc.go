// Package glpksolve adapts the GNU Linear Programming Kit to the milp.Solver
// boundary via the lukpank/go-glpk cgo binding.
//
// The adapter translates a milp.Model into a GLPK problem (binary columns,
// bounded rows, minimization objective), runs the simplex relaxation followed
// by the branch-and-cut integer optimizer, and maps GLPK's MIP status back to
// milp.Status. GLPK proves infeasibility itself; that outcome is surfaced as
// StatusInfeasible, not as an error.
//
// The binding does not expose GLPK's time limit parameter, so the context
// deadline cannot interrupt a running solve; prefer milp.BranchBound when a
// hard budget matters more than raw throughput.
//
// Building this package requires libglpk and cgo.
package glpksolve
