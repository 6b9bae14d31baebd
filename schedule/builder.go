package schedule

import (
	"fmt"
	"sort"

	"github.com/fblanch/swisscal/league"
	"github.com/fblanch/swisscal/milp"
)

// pairKey identifies one ordered (home, away) pair by registry position.
type pairKey struct {
	home, away int
}

// Problem couples the assembled MILP with the mapping back from decision
// variables to team pairs. It is the handoff between Build and Extract.
type Problem struct {
	model *milp.Model
	reg   *league.Registry
	rules Rules
	dist  [][]float64

	// vars maps each eligible ordered pair to its "home hosts away"
	// variable; pairs preserves creation order for deterministic extraction.
	vars  map[pairKey]milp.Var
	pairs []pairKey
}

// Model returns the assembled MILP, ready for any milp.Solver.
func (p *Problem) Model() *milp.Model { return p.model }

// Rules returns the configuration the model encodes.
func (p *Problem) Rules() Rules { return p.rules }

// families describes the active constraint families for infeasibility
// reports.
func (p *Problem) families() string {
	r := p.rules
	return fmt.Sprintf(
		"at-most-one-meeting; home-count=%d; away-count=%d; per-pot home=%d away=%d over %d pots; foreign-country-cap=%d",
		r.HomeMatches, r.AwayMatches, r.HomePerPot, r.AwayPerPot, r.Pots, r.ForeignCountryCap)
}

// eligible reports whether an ordered pair of registry positions may meet:
// distinct teams from distinct countries. Same-country pairs get no
// variable at all.
func eligible(a, b league.Team) bool {
	return a.ID != b.ID && a.Country != b.Country
}

// Build assembles the decision variables, constraint set and objective from
// the registry, the pairwise distance table and the rules.
//
// Contracts:
//   - reg is non-nil and dist is reg.Len() square (geo.Matrix output).
//   - Every team pot lies in [1, rules.Pots].
//   - Every team has at least one eligible opponent; a fully isolated team
//     is a construction defect, reported before solving.
//
// Build performs no feasibility reasoning beyond those shape checks: empty
// pot rows and contradictory totals are emitted as-is and left for the
// solver to judge.
//
// Complexity: O(n^2) variables and pair constraints, O(n * pots) pot rows,
// O(n * countries) cap rows.
func Build(reg *league.Registry, dist [][]float64, rules Rules) (*Problem, error) {
	if reg == nil {
		return nil, ErrNilRegistry
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	n := reg.Len()
	if len(dist) != n {
		return nil, fmt.Errorf("%w: %d rows for %d teams", ErrBadDistances, len(dist), n)
	}
	for i, row := range dist {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns", ErrBadDistances, i, len(row))
		}
	}

	teams := reg.Teams()
	for _, t := range teams {
		if t.Pot > rules.Pots {
			return nil, fmt.Errorf("%w: %s has pot %d of %d", ErrPotOutOfRange, t.ID, t.Pot, rules.Pots)
		}
	}

	p := &Problem{
		model: milp.NewModel("fixture-travel-minimization"),
		reg:   reg,
		rules: rules,
		dist:  dist,
		vars:  make(map[pairKey]milp.Var, n*n),
	}

	// Variables: one binary per eligible ordered pair, costed with the
	// away side's trip. Creation order is row-major over the registry.
	var i, j int
	for i = 0; i < n; i++ {
		hasOpponent := false
		for j = 0; j < n; j++ {
			if !eligible(teams[i], teams[j]) {
				continue
			}
			hasOpponent = true
			k := pairKey{home: i, away: j}
			v := p.model.NewBinary(fmt.Sprintf("host_%s_%s", teams[i].ID, teams[j].ID))
			p.model.SetObjCoef(v, dist[i][j])
			p.vars[k] = v
			p.pairs = append(p.pairs, k)
		}
		if !hasOpponent {
			return nil, fmt.Errorf("%w: %s", ErrNoEligibleOpponents, teams[i].ID)
		}
	}

	// At most one meeting per unordered eligible pair.
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if !eligible(teams[i], teams[j]) {
				continue
			}
			expr := milp.NewLinExpr().Add(p.vars[pairKey{i, j}]).Add(p.vars[pairKey{j, i}])
			p.model.AddConstraint(
				fmt.Sprintf("meet_%s_%s", teams[i].ID, teams[j].ID), expr, milp.LE, 1)
		}
	}

	// Exact home and away totals per team.
	for i = 0; i < n; i++ {
		home := milp.NewLinExpr()
		away := milp.NewLinExpr()
		for j = 0; j < n; j++ {
			if !eligible(teams[i], teams[j]) {
				continue
			}
			home.Add(p.vars[pairKey{i, j}])
			away.Add(p.vars[pairKey{j, i}])
		}
		p.model.AddConstraint(fmt.Sprintf("home_%s", teams[i].ID), home, milp.EQ, float64(rules.HomeMatches))
		p.model.AddConstraint(fmt.Sprintf("away_%s", teams[i].ID), away, milp.EQ, float64(rules.AwayMatches))
	}

	// Exact per-pot counts in both directions. Rows are emitted even when a
	// pot offers no eligible opponent; the solver reports the consequence.
	var pot int
	for i = 0; i < n; i++ {
		for pot = 1; pot <= rules.Pots; pot++ {
			home := milp.NewLinExpr()
			away := milp.NewLinExpr()
			for j = 0; j < n; j++ {
				if teams[j].Pot != pot || !eligible(teams[i], teams[j]) {
					continue
				}
				home.Add(p.vars[pairKey{i, j}])
				away.Add(p.vars[pairKey{j, i}])
			}
			p.model.AddConstraint(
				fmt.Sprintf("pot%d_home_%s", pot, teams[i].ID), home, milp.EQ, float64(rules.HomePerPot))
			p.model.AddConstraint(
				fmt.Sprintf("pot%d_away_%s", pot, teams[i].ID), away, milp.EQ, float64(rules.AwayPerPot))
		}
	}

	// Foreign-country cap: home and away fixtures combined, per country.
	countries := make([]string, 0)
	seen := make(map[string]bool)
	for _, t := range teams {
		if !seen[t.Country] {
			seen[t.Country] = true
			countries = append(countries, t.Country)
		}
	}
	sort.Strings(countries)
	for i = 0; i < n; i++ {
		for _, country := range countries {
			if country == teams[i].Country {
				continue
			}
			expr := milp.NewLinExpr()
			for j = 0; j < n; j++ {
				if teams[j].Country != country {
					continue
				}
				expr.Add(p.vars[pairKey{i, j}])
				expr.Add(p.vars[pairKey{j, i}])
			}
			p.model.AddConstraint(
				fmt.Sprintf("country_%s_%s", country, teams[i].ID),
				expr, milp.LE, float64(rules.ForeignCountryCap))
		}
	}

	return p, nil
}
