// Package schedule turns a team registry into a travel-minimal fixture list.
//
// The pipeline is a chain of pure stages:
//
//	league.Registry -> geo.Matrix -> Build -> milp.Solver -> Extract
//
// Build encodes the competition rules as a binary MILP over one decision
// variable per ordered cross-country team pair ("A hosts B"). Same-country
// pairs are structurally excluded: no variable is ever created for them, so
// the solver has no degree of freedom to pin down. The constraint families
// are:
//
//   - at-most-one-meeting per unordered pair,
//   - exact home and away match counts per team,
//   - exact home and away counts per team against every pot,
//   - a cap on total fixtures per team against any single foreign country.
//
// The objective charges each chosen fixture the great-circle distance
// between the two grounds (the traveling side's trip).
//
// Build never proves feasibility: contradictory rules or registries yield a
// well-formed model whose infeasibility the solver detects. Extract
// re-validates every structural invariant against the extracted fixture list
// and cross-checks the objective value; a discrepancy there is a fatal
// internal-logic error (ErrInconsistent), never silently repaired.
//
// Error taxonomy: data errors surface from package league before any model
// exists; ErrBadRules / ErrPotOutOfRange / ErrNoEligibleOpponents classify
// model-construction defects; ErrInfeasible is a legitimate domain outcome
// reported with the active constraint families; solver faults pass through
// from the backend; ErrInconsistent aborts with full context.
package schedule
