// Package schedule_test - fixture list scoring coverage.
// Focus:
//  1. Per-fixture away trips and the grand total match the distance oracle.
//  2. Per-team totals come out heaviest traveler first.
//  3. Header variants and case-insensitive team resolution.
//  4. Sentinels on malformed lists and unknown teams.
package schedule_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fblanch/swisscal/geo"
	"github.com/fblanch/swisscal/schedule"
)

const validFixturesCSV = `Round,Home Team,Away Team
1,A,B
1,C,D
2,B,A
2,D,C
3,A,C
`

func TestLoadFixturesCSV(t *testing.T) {
	pairs, err := schedule.LoadFixturesCSV(strings.NewReader(validFixturesCSV))
	require.NoError(t, err)
	require.Len(t, pairs, 5)
	require.Equal(t, schedule.FixturePair{Home: "A", Away: "B"}, pairs[0])
	require.Equal(t, schedule.FixturePair{Home: "A", Away: "C"}, pairs[4])
}

func TestLoadFixturesCSV_HeaderAliases(t *testing.T) {
	pairs, err := schedule.LoadFixturesCSV(strings.NewReader("local,visitant\nA,B\n"))
	require.NoError(t, err)
	require.Equal(t, []schedule.FixturePair{{Home: "A", Away: "B"}}, pairs)
}

func TestLoadFixturesCSV_Errors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"empty source", ""},
		{"missing away column", "home\nA\n"},
		{"no rows", "home,away\n"},
		{"empty cell", "home,away\nA,\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := schedule.LoadFixturesCSV(strings.NewReader(tc.src))
			require.ErrorIs(t, err, schedule.ErrBadFixtures)
		})
	}
}

func TestScore_TotalsMatchOracle(t *testing.T) {
	reg := mkRegistry(t, []string{"ESP", "FRA", "GER", "ITA"}, []int{1, 1, 1, 1})
	pairs := []schedule.FixturePair{
		{Home: "A", Away: "B"},
		{Home: "C", Away: "B"},
		{Home: "B", Away: "A"},
	}

	rep, err := schedule.Score(reg, pairs)
	require.NoError(t, err)
	require.Len(t, rep.Fixtures, 3)

	g := reg.Grounds()
	dAB := geo.Haversine(g[0], g[1])
	dBC := geo.Haversine(g[1], g[2])
	require.InDelta(t, dAB, rep.Fixtures[0].DistanceKm, 1e-9)
	require.InDelta(t, dBC, rep.Fixtures[1].DistanceKm, 1e-9)
	require.InDelta(t, dAB, rep.Fixtures[2].DistanceKm, 1e-9)
	require.InDelta(t, 2*dAB+dBC, rep.DistanceKm, 1e-9)

	// B traveled twice, A once; heaviest traveler leads.
	require.Equal(t, []schedule.TeamTravel{
		{Team: "B", Matches: 2, DistanceKm: rep.Fixtures[0].DistanceKm + rep.Fixtures[1].DistanceKm},
		{Team: "A", Matches: 1, DistanceKm: rep.Fixtures[2].DistanceKm},
	}, rep.PerTeam)
}

func TestScore_CaseInsensitiveLookup(t *testing.T) {
	reg := mkRegistry(t, []string{"ESP", "FRA"}, []int{1, 1})
	rep, err := schedule.Score(reg, []schedule.FixturePair{{Home: " a ", Away: "b"}})
	require.NoError(t, err)
	require.Equal(t, "A", rep.Fixtures[0].Home)
	require.Equal(t, "B", rep.Fixtures[0].Away)
}

func TestScore_Errors(t *testing.T) {
	reg := mkRegistry(t, []string{"ESP", "FRA"}, []int{1, 1})

	_, err := schedule.Score(nil, nil)
	require.ErrorIs(t, err, schedule.ErrNilRegistry)

	_, err = schedule.Score(reg, []schedule.FixturePair{{Home: "A", Away: "Z"}})
	require.ErrorIs(t, err, schedule.ErrUnknownTeam)
	require.Contains(t, err.Error(), `"Z"`)
}
