package league

import (
	"errors"

	"github.com/fblanch/swisscal/geo"
)

// Sentinel errors for the data-loading boundary. All of them classify as
// data errors: they fail the run before any model is built.
var (
	// ErrNoHeader indicates the source had no header row to map columns from.
	ErrNoHeader = errors.New("league: missing header row")

	// ErrMissingColumn indicates a required column (team, country, pot,
	// latitude, longitude) is absent from the header.
	ErrMissingColumn = errors.New("league: required column missing")

	// ErrMissingField indicates a required cell is empty in some row.
	ErrMissingField = errors.New("league: required field missing")

	// ErrDuplicateTeam indicates two rows share the same team identifier.
	ErrDuplicateTeam = errors.New("league: duplicate team identifier")

	// ErrBadPot indicates a pot cell that is not a positive integer.
	ErrBadPot = errors.New("league: pot must be a positive integer")

	// ErrBadCoordinate indicates an unparseable or out-of-range stadium
	// coordinate (latitude outside [-90, 90] or longitude outside [-180, 180]).
	ErrBadCoordinate = errors.New("league: invalid stadium coordinate")

	// ErrNoTeams indicates the source contained a header but no team rows.
	ErrNoTeams = errors.New("league: no team rows")
)

// Team is one participating club. Immutable once loaded; the Registry owns
// all records for the duration of a run.
type Team struct {
	// ID uniquely identifies the team within the registry.
	ID string

	// Country is the team's national association code (e.g. "ESP").
	// Teams sharing a country never meet.
	Country string

	// Pot is the seeding tier, 1-based.
	Pot int

	// Stadium is the home ground name. Optional, informational only.
	Stadium string

	// Ground is the stadium location used for travel distances.
	Ground geo.Point
}

// Registry is the ordered, read-only team collection of one run.
type Registry struct {
	teams []Team
	index map[string]int
}

// NewRegistry validates the records (unique non-empty IDs, non-empty
// countries, positive pots, in-range coordinates) and returns the registry.
// The input slice is copied; callers keep no handle into the registry.
func NewRegistry(teams []Team) (*Registry, error) {
	r := &Registry{
		teams: make([]Team, len(teams)),
		index: make(map[string]int, len(teams)),
	}
	copy(r.teams, teams)
	for i, t := range r.teams {
		if t.ID == "" {
			return nil, errorfRow(ErrMissingField, i, "team identifier")
		}
		if t.Country == "" {
			return nil, errorfRow(ErrMissingField, i, "country")
		}
		if t.Pot < 1 {
			return nil, errorfRow(ErrBadPot, i, t.ID)
		}
		if t.Ground.Lat < -90 || t.Ground.Lat > 90 || t.Ground.Lon < -180 || t.Ground.Lon > 180 {
			return nil, errorfRow(ErrBadCoordinate, i, t.ID)
		}
		if _, dup := r.index[t.ID]; dup {
			return nil, errorfRow(ErrDuplicateTeam, i, t.ID)
		}
		r.index[t.ID] = i
	}
	if len(r.teams) == 0 {
		return nil, ErrNoTeams
	}

	return r, nil
}

// Len returns the number of teams.
func (r *Registry) Len() int { return len(r.teams) }

// Team returns the record at position i in load order.
func (r *Registry) Team(i int) Team { return r.teams[i] }

// Teams returns a copy of all records in load order.
func (r *Registry) Teams() []Team {
	out := make([]Team, len(r.teams))
	copy(out, r.teams)

	return out
}

// ByID returns the record with the given identifier.
func (r *Registry) ByID(id string) (Team, bool) {
	i, ok := r.index[id]
	if !ok {
		return Team{}, false
	}

	return r.teams[i], true
}

// Grounds returns the stadium locations in load order, ready for geo.Matrix.
func (r *Registry) Grounds() []geo.Point {
	out := make([]geo.Point, len(r.teams))
	for i, t := range r.teams {
		out[i] = t.Ground
	}

	return out
}
