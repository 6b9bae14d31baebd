package schedule

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Rules is the explicit competition configuration consumed by Build.
// Passing it in (rather than hard-coding the league-phase numbers) keeps
// rule changes and property tests a matter of data.
type Rules struct {
	// HomeMatches and AwayMatches are the exact per-team match counts.
	HomeMatches int `toml:"home_matches"`
	AwayMatches int `toml:"away_matches"`

	// Pots is the number of seeding pots; team pots must lie in [1, Pots].
	Pots int `toml:"pots"`

	// HomePerPot and AwayPerPot are the exact per-team counts against each
	// pot, the team's own pot included (its own record excluded).
	HomePerPot int `toml:"home_per_pot"`
	AwayPerPot int `toml:"away_per_pot"`

	// ForeignCountryCap caps a team's total fixtures (home plus away)
	// against opponents from any single foreign country.
	ForeignCountryCap int `toml:"foreign_country_cap"`
}

// DefaultRules returns the UEFA league-phase configuration: 8 matches per
// team split 4 home / 4 away, 4 pots met exactly once in each direction,
// and at most 2 fixtures against any one foreign country.
func DefaultRules() Rules {
	return Rules{
		HomeMatches:       4,
		AwayMatches:       4,
		Pots:              4,
		HomePerPot:        1,
		AwayPerPot:        1,
		ForeignCountryCap: 2,
	}
}

// Validate checks field ranges. Cross-field consistency (for example
// HomeMatches vs Pots*HomePerPot) is deliberately not proven here: an
// inconsistent combination builds a well-formed model that the solver
// reports as infeasible.
func (r Rules) Validate() error {
	switch {
	case r.Pots < 1:
		return fmt.Errorf("%w: pots = %d", ErrBadRules, r.Pots)
	case r.HomeMatches < 0 || r.AwayMatches < 0:
		return fmt.Errorf("%w: negative match count", ErrBadRules)
	case r.HomePerPot < 0 || r.AwayPerPot < 0:
		return fmt.Errorf("%w: negative per-pot count", ErrBadRules)
	case r.ForeignCountryCap < 0:
		return fmt.Errorf("%w: negative foreign-country cap", ErrBadRules)
	}

	return nil
}

// LoadRulesFile reads a TOML rules file over the defaults, so a file needs
// to name only the fields it changes.
func LoadRulesFile(path string) (Rules, error) {
	r := DefaultRules()
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("schedule: read rules file: %w", err)
	}
	if err := toml.Unmarshal(data, &r); err != nil {
		return Rules{}, fmt.Errorf("%w: %v", ErrBadRules, err)
	}
	if err := r.Validate(); err != nil {
		return Rules{}, err
	}

	return r, nil
}
