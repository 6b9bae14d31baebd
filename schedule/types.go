package schedule

import (
	"errors"

	"github.com/fblanch/swisscal/milp"
)

// Sentinel errors. Branch with errors.Is; call sites attach context via %w.
var (
	// ErrNilRegistry indicates a nil registry was passed to Build.
	ErrNilRegistry = errors.New("schedule: registry is nil")

	// ErrBadRules indicates a Rules field outside its valid range.
	ErrBadRules = errors.New("schedule: invalid rules")

	// ErrBadDistances indicates the distance matrix does not match the
	// registry size.
	ErrBadDistances = errors.New("schedule: distance matrix shape mismatch")

	// ErrPotOutOfRange indicates a team whose pot exceeds Rules.Pots.
	// Classified as a model-construction defect, not infeasibility.
	ErrPotOutOfRange = errors.New("schedule: team pot outside configured range")

	// ErrNoEligibleOpponents indicates a team with no cross-country opponent
	// at all, so no decision variable involves it. Model-construction defect.
	ErrNoEligibleOpponents = errors.New("schedule: team has no eligible opponents")

	// ErrInfeasible indicates the solver proved that no fixture assignment
	// satisfies all constraint families. A legitimate domain outcome; the
	// wrapped context lists the active families so callers can adjust data
	// or relax rules.
	ErrInfeasible = errors.New("schedule: constraints unsatisfiable")

	// ErrNoSolution indicates the solver returned no usable assignment and
	// no infeasibility proof.
	ErrNoSolution = errors.New("schedule: solver returned no solution")

	// ErrBadFixtures indicates a fixture list source without the required
	// home/away columns or rows.
	ErrBadFixtures = errors.New("schedule: invalid fixture list")

	// ErrUnknownTeam indicates a fixture list entry that resolves to no
	// registry team.
	ErrUnknownTeam = errors.New("schedule: fixture references unknown team")

	// ErrInconsistent indicates the post-solve re-validation of the
	// extracted fixture list failed. Always a fatal internal-logic bug.
	ErrInconsistent = errors.New("schedule: extracted schedule violates rules")
)

// Fixture is one scheduled match: Home hosts Away.
type Fixture struct {
	// Home and Away are team identifiers from the registry.
	Home string `yaml:"home"`
	Away string `yaml:"away"`

	// DistanceKm is the great-circle trip of the traveling side.
	DistanceKm float64 `yaml:"distance_km"`
}

// Schedule is the validated outcome of one optimization run.
type Schedule struct {
	// Fixtures lists every chosen match in deterministic pair order.
	Fixtures []Fixture `yaml:"fixtures"`

	// DistanceKm is the total travel of the schedule, equal to the solver's
	// objective value (cross-checked at extraction).
	DistanceKm float64 `yaml:"total_distance_km"`

	// Status is milp.StatusOptimal, or milp.StatusFeasible when the time
	// budget expired with a valid but possibly suboptimal incumbent.
	Status milp.Status `yaml:"-"`
}
