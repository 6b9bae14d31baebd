package schedule

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fblanch/swisscal/geo"
	"github.com/fblanch/swisscal/league"
)

// FixturePair is one match of an externally supplied fixture list, for
// example the official calendar published ahead of the draw. Only the
// pairing is read; dates and venues are irrelevant to travel scoring.
type FixturePair struct {
	Home string
	Away string
}

// fixtureHeaderAliases maps normalized fixture list header labels to the
// two canonical columns.
var fixtureHeaderAliases = map[string]string{
	"home":      "home",
	"home team": "home",
	"local":     "home",
	"away":      "away",
	"away team": "away",
	"visitant":  "away",
}

// LoadFixturesCSV reads a fixture list from CSV. The first record is the
// header; the required columns are home and away (label variants accepted),
// column order is free and extra columns are ignored.
//
// Errors: ErrBadFixtures on a missing header, missing column, empty cell or
// empty list, wrapped with row context.
func LoadFixturesCSV(r io.Reader) ([]FixturePair, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: missing header row", ErrBadFixtures)
	}
	if err != nil {
		return nil, fmt.Errorf("schedule: read fixture header: %w", err)
	}

	cols := make(map[string]int, 2)
	for i, label := range header {
		if key, ok := fixtureHeaderAliases[normalizeTeamName(label)]; ok {
			if _, seen := cols[key]; !seen {
				cols[key] = i
			}
		}
	}
	for _, key := range []string{"home", "away"} {
		if _, ok := cols[key]; !ok {
			return nil, fmt.Errorf("%w: %s column missing", ErrBadFixtures, key)
		}
	}

	var pairs []FixturePair
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("schedule: read fixture row %d: %w", len(pairs)+1, err)
		}
		cell := func(key string) string {
			idx := cols[key]
			if idx >= len(rec) {
				return ""
			}

			return strings.TrimSpace(rec[idx])
		}
		p := FixturePair{Home: cell("home"), Away: cell("away")}
		if p.Home == "" || p.Away == "" {
			return nil, fmt.Errorf("%w: row %d: empty team cell", ErrBadFixtures, len(pairs)+1)
		}
		pairs = append(pairs, p)
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: no fixture rows", ErrBadFixtures)
	}

	return pairs, nil
}

// TeamTravel totals the away trips of one team.
type TeamTravel struct {
	// Team is the registry identifier.
	Team string `yaml:"team"`

	// Matches is the number of away fixtures counted.
	Matches int `yaml:"away_matches"`

	// DistanceKm is the team's total great-circle travel.
	DistanceKm float64 `yaml:"distance_km"`
}

// TravelReport is the travel cost of an externally supplied fixture list,
// the benchmark an optimized schedule is compared against.
type TravelReport struct {
	// Fixtures lists every pair with its away trip, in input order.
	Fixtures []Fixture `yaml:"fixtures"`

	// PerTeam totals travel per away team, heaviest traveler first
	// (ties broken by identifier).
	PerTeam []TeamTravel `yaml:"per_team"`

	// DistanceKm is the grand total over all fixtures.
	DistanceKm float64 `yaml:"total_distance_km"`
}

// Score resolves each pair through the registry and charges the away side
// the great-circle trip to the host's ground. Team lookup is
// case-insensitive on trimmed identifiers. Score judges nothing about the
// list itself: rematches, unbalanced counts and same-country pairs are
// scored as given, since the point is to price a calendar that already
// exists.
//
// Errors: ErrNilRegistry, ErrUnknownTeam with the offending name and row.
func Score(reg *league.Registry, pairs []FixturePair) (*TravelReport, error) {
	if reg == nil {
		return nil, ErrNilRegistry
	}

	index := make(map[string]league.Team, reg.Len())
	for _, t := range reg.Teams() {
		index[normalizeTeamName(t.ID)] = t
	}

	rep := &TravelReport{}
	totals := make(map[string]*TeamTravel, reg.Len())
	for i, pair := range pairs {
		home, ok := index[normalizeTeamName(pair.Home)]
		if !ok {
			return nil, fmt.Errorf("%w: %q (fixture %d)", ErrUnknownTeam, pair.Home, i+1)
		}
		away, ok := index[normalizeTeamName(pair.Away)]
		if !ok {
			return nil, fmt.Errorf("%w: %q (fixture %d)", ErrUnknownTeam, pair.Away, i+1)
		}

		d := geo.Haversine(away.Ground, home.Ground)
		rep.Fixtures = append(rep.Fixtures, Fixture{Home: home.ID, Away: away.ID, DistanceKm: d})
		rep.DistanceKm += d

		tt := totals[away.ID]
		if tt == nil {
			tt = &TeamTravel{Team: away.ID}
			totals[away.ID] = tt
		}
		tt.Matches++
		tt.DistanceKm += d
	}

	rep.PerTeam = make([]TeamTravel, 0, len(totals))
	for _, tt := range totals {
		rep.PerTeam = append(rep.PerTeam, *tt)
	}
	sort.Slice(rep.PerTeam, func(a, b int) bool {
		if rep.PerTeam[a].DistanceKm != rep.PerTeam[b].DistanceKm {
			return rep.PerTeam[a].DistanceKm > rep.PerTeam[b].DistanceKm
		}

		return rep.PerTeam[a].Team < rep.PerTeam[b].Team
	})

	return rep, nil
}

// normalizeTeamName lowercases and trims an identifier for lookup.
func normalizeTeamName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
