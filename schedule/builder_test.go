// Package schedule_test - model construction coverage.
// Focus:
//  1. Structural exclusion: same-country pairs never receive a variable.
//  2. Construction sentinels: nil registry, shape mismatch, pot range,
//     isolated teams.
//  3. Deterministic model dimensions for a known registry.
package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fblanch/swisscal/geo"
	"github.com/fblanch/swisscal/league"
	"github.com/fblanch/swisscal/schedule"
)

// mkRegistry builds a registry of len(countries) teams named "A", "B", ...
// at simple grid positions.
func mkRegistry(t *testing.T, countries []string, pots []int) *league.Registry {
	t.Helper()
	require.Equal(t, len(countries), len(pots))
	teams := make([]league.Team, len(countries))
	for i := range teams {
		teams[i] = league.Team{
			ID:      string(rune('A' + i)),
			Country: countries[i],
			Pot:     pots[i],
			Ground:  geo.Point{Lat: float64(5 * (i / 2)), Lon: float64(10 * (i % 2))},
		}
	}
	reg, err := league.NewRegistry(teams)
	require.NoError(t, err)

	return reg
}

// onePotRules is the smallest rule set with one match in each direction.
func onePotRules() schedule.Rules {
	return schedule.Rules{
		HomeMatches: 1, AwayMatches: 1,
		Pots: 1, HomePerPot: 1, AwayPerPot: 1,
		ForeignCountryCap: 2,
	}
}

func TestBuild_NilRegistry(t *testing.T) {
	_, err := schedule.Build(nil, nil, onePotRules())
	require.ErrorIs(t, err, schedule.ErrNilRegistry)
}

func TestBuild_BadRules(t *testing.T) {
	reg := mkRegistry(t, []string{"ESP", "GER"}, []int{1, 1})
	bad := onePotRules()
	bad.Pots = 0
	_, err := schedule.Build(reg, geo.Matrix(reg.Grounds()), bad)
	require.ErrorIs(t, err, schedule.ErrBadRules)
}

func TestBuild_DistanceShapeMismatch(t *testing.T) {
	reg := mkRegistry(t, []string{"ESP", "GER"}, []int{1, 1})
	_, err := schedule.Build(reg, [][]float64{{0}}, onePotRules())
	require.ErrorIs(t, err, schedule.ErrBadDistances)

	ragged := [][]float64{{0, 1}, {1}}
	_, err = schedule.Build(reg, ragged, onePotRules())
	require.ErrorIs(t, err, schedule.ErrBadDistances)
}

func TestBuild_PotOutOfRange(t *testing.T) {
	reg := mkRegistry(t, []string{"ESP", "GER"}, []int{1, 2})
	_, err := schedule.Build(reg, geo.Matrix(reg.Grounds()), onePotRules())
	require.ErrorIs(t, err, schedule.ErrPotOutOfRange)
}

func TestBuild_NoEligibleOpponents(t *testing.T) {
	reg := mkRegistry(t, []string{"ESP", "ESP", "ESP"}, []int{1, 1, 1})
	_, err := schedule.Build(reg, geo.Matrix(reg.Grounds()), onePotRules())
	require.ErrorIs(t, err, schedule.ErrNoEligibleOpponents)
}

func TestBuild_SameCountryPairsHaveNoVariable(t *testing.T) {
	// Four teams; B and C share a country, so the ordered pairs B/C and
	// C/B are structurally excluded: 4*3 - 2 = 10 variables.
	reg := mkRegistry(t, []string{"ESP", "FRA", "FRA", "GER"}, []int{1, 1, 1, 1})
	p, err := schedule.Build(reg, geo.Matrix(reg.Grounds()), onePotRules())
	require.NoError(t, err)
	require.Equal(t, 10, p.Model().NumVars())
}

func TestBuild_ModelDimensions(t *testing.T) {
	// Four teams, four countries, one pot:
	//   12 host variables,
	//    6 at-most-one-meeting rows,
	//    8 home/away total rows,
	//    8 per-pot rows (1 pot, both directions),
	//   12 foreign-country cap rows (3 foreign countries per team).
	reg := mkRegistry(t, []string{"ESP", "FRA", "GER", "ITA"}, []int{1, 1, 1, 1})
	p, err := schedule.Build(reg, geo.Matrix(reg.Grounds()), onePotRules())
	require.NoError(t, err)
	require.Equal(t, 12, p.Model().NumVars())
	require.Equal(t, 6+8+8+12, p.Model().NumConstraints())
	require.Equal(t, onePotRules(), p.Rules())
}
