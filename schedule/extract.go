package schedule

import (
	"fmt"
	"math"

	"github.com/fblanch/swisscal/milp"
)

// extractEps tolerates float drift when cross-checking the objective value
// against the independently recomputed fixture distances.
const extractEps = 1e-6

// Extract reads the solved assignment, reconstructs the fixture list and
// re-validates every structural invariant against it as a defense-in-depth
// check. A discrepancy means the model builder and the extracted schedule
// disagree, which is a defect, never something to repair here.
//
// Errors:
//   - ErrInfeasible when the solution carries an infeasibility proof.
//   - ErrNoSolution when no usable assignment is present.
//   - ErrInconsistent when the extracted list violates any rule or the
//     recomputed total distance disagrees with the solver's objective.
func Extract(p *Problem, sol *milp.Solution) (*Schedule, error) {
	if sol == nil {
		return nil, ErrNoSolution
	}
	if sol.Status == milp.StatusInfeasible {
		return nil, fmt.Errorf("%w: %s", ErrInfeasible, p.families())
	}
	if !sol.HasSolution() {
		return nil, fmt.Errorf("%w: status %s", ErrNoSolution, sol.Status)
	}

	teams := p.reg.Teams()
	n := len(teams)
	r := p.rules

	sched := &Schedule{Status: sol.Status}
	homeCount := make([]int, n)
	awayCount := make([]int, n)
	potHome := make([][]int, n)
	potAway := make([][]int, n)
	for i := range potHome {
		potHome[i] = make([]int, r.Pots+1)
		potAway[i] = make([]int, r.Pots+1)
	}
	countryCount := make([]map[string]int, n)
	for i := range countryCount {
		countryCount[i] = make(map[string]int)
	}
	met := make(map[pairKey]bool, len(p.pairs)/2)

	for _, k := range p.pairs {
		if sol.Value(p.vars[k]) < 0.5 {
			continue
		}
		home, away := teams[k.home], teams[k.away]
		if home.Country == away.Country {
			return nil, fmt.Errorf("%w: same-country fixture %s vs %s", ErrInconsistent, home.ID, away.ID)
		}
		unordered := k
		if unordered.home > unordered.away {
			unordered = pairKey{home: k.away, away: k.home}
		}
		if met[unordered] {
			return nil, fmt.Errorf("%w: %s and %s meet twice", ErrInconsistent, home.ID, away.ID)
		}
		met[unordered] = true

		homeCount[k.home]++
		awayCount[k.away]++
		potHome[k.home][away.Pot]++
		potAway[k.away][home.Pot]++
		countryCount[k.home][away.Country]++
		countryCount[k.away][home.Country]++

		d := p.dist[k.home][k.away]
		sched.Fixtures = append(sched.Fixtures, Fixture{Home: home.ID, Away: away.ID, DistanceKm: d})
		sched.DistanceKm += d
	}

	for i, t := range teams {
		if homeCount[i] != r.HomeMatches {
			return nil, fmt.Errorf("%w: %s has %d home fixtures, want %d",
				ErrInconsistent, t.ID, homeCount[i], r.HomeMatches)
		}
		if awayCount[i] != r.AwayMatches {
			return nil, fmt.Errorf("%w: %s has %d away fixtures, want %d",
				ErrInconsistent, t.ID, awayCount[i], r.AwayMatches)
		}
		for pot := 1; pot <= r.Pots; pot++ {
			if potHome[i][pot] != r.HomePerPot {
				return nil, fmt.Errorf("%w: %s hosts pot %d %d times, want %d",
					ErrInconsistent, t.ID, pot, potHome[i][pot], r.HomePerPot)
			}
			if potAway[i][pot] != r.AwayPerPot {
				return nil, fmt.Errorf("%w: %s visits pot %d %d times, want %d",
					ErrInconsistent, t.ID, pot, potAway[i][pot], r.AwayPerPot)
			}
		}
		for country, count := range countryCount[i] {
			if country == t.Country {
				return nil, fmt.Errorf("%w: %s meets its own country", ErrInconsistent, t.ID)
			}
			if count > r.ForeignCountryCap {
				return nil, fmt.Errorf("%w: %s meets country %s %d times, cap %d",
					ErrInconsistent, t.ID, country, count, r.ForeignCountryCap)
			}
		}
	}

	// Round-trip check: the objective the solver reports must equal the sum
	// of the extracted fixture distances.
	if diff := math.Abs(sched.DistanceKm - sol.Objective); diff > extractEps*(1+math.Abs(sol.Objective)) {
		return nil, fmt.Errorf("%w: objective %.6f vs recomputed %.6f",
			ErrInconsistent, sol.Objective, sched.DistanceKm)
	}

	return sched, nil
}
