package schedule

import (
	"context"
	"fmt"

	"github.com/fblanch/swisscal/geo"
	"github.com/fblanch/swisscal/league"
	"github.com/fblanch/swisscal/milp"
)

// Optimize runs the whole pipeline on one registry: distance table, model
// assembly, solve, extraction. A nil solver selects the built-in exact
// backend. The context carries the only time budget; a run that fails or
// proves infeasible is never retried internally.
//
// Errors: construction sentinels from Build, ErrInfeasible with the active
// constraint families, solver faults wrapped as-is, and the Extract
// sentinels.
func Optimize(ctx context.Context, reg *league.Registry, rules Rules, solver milp.Solver) (*Schedule, error) {
	if solver == nil {
		solver = milp.NewBranchBound()
	}
	if reg == nil {
		return nil, ErrNilRegistry
	}

	p, err := Build(reg, geo.Matrix(reg.Grounds()), rules)
	if err != nil {
		return nil, err
	}

	sol, err := solver.Solve(ctx, p.Model())
	if err != nil {
		return nil, fmt.Errorf("schedule: solve: %w", err)
	}

	return Extract(p, sol)
}
