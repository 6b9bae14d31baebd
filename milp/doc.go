// Package milp models and solves small binary mixed-integer linear programs.
//
// The package separates three concerns:
//
//   - Model: named binary decision variables, linear constraints (LE / GE / EQ)
//     and a single linear minimization objective. Models are built fresh per
//     run and carry no solver state.
//   - Solver: a narrow backend interface, Solve(ctx, *Model) (*Solution, error).
//     Any MILP engine that can accept the (variables, constraints, objective)
//     triple and return an assignment plus status can sit behind it.
//   - Solution: the 0/1 assignment, a Status, and the objective value.
//
// Status semantics follow the usual MILP contract:
//
//   - StatusOptimal: the assignment is proven optimal.
//   - StatusFeasible: a valid assignment was found but optimality was not
//     proven before the time budget ran out. Usable by callers.
//   - StatusInfeasible: the solver proved that no assignment satisfies all
//     constraints. A legitimate domain outcome, not an error.
//
// Operational failures (deadline with no incumbent, backend faults) are
// reported as Go errors, distinct from infeasibility.
//
// BranchBound is the built-in exact backend: depth-first search with
// constraint propagation, an admissible objective lower bound, and sparse
// deadline checks. It is deterministic for identical inputs.
package milp
