package league

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fblanch/swisscal/geo"
)

// Required column keys after header normalization.
const (
	colTeam    = "team"
	colCountry = "country"
	colPot     = "pot"
	colLat     = "lat"
	colLon     = "lon"
	colStadium = "stadium"
)

// headerAliases maps normalized header labels to canonical column keys.
// Latitude/longitude headers in real exports often carry unit suffixes in
// parentheses; normalizeHeader strips those before lookup.
var headerAliases = map[string]string{
	"team":      colTeam,
	"club":      colTeam,
	"id":        colTeam,
	"country":   colCountry,
	"nation":    colCountry,
	"pot":       colPot,
	"lat":       colLat,
	"latitude":  colLat,
	"lon":       colLon,
	"lng":       colLon,
	"long":      colLon,
	"longitude": colLon,
	"stadium":   colStadium,
	"ground":    colStadium,
	"venue":     colStadium,
}

// LoadCSV reads a team table from CSV. The first record is the header; the
// required columns are team, country, pot, latitude and longitude (stadium
// is optional). Column order is free. Coordinates are decimal degrees.
//
// Errors: ErrNoHeader, ErrMissingColumn, plus the per-row sentinels of
// registryFromRows, all wrapped with row context.
func LoadCSV(r io.Reader) (*Registry, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("league: read header: %w", err)
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("league: read row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, rec)
	}

	return registryFromRows(header, rows)
}

// normalizeHeader lowercases a header label and strips any parenthetical
// unit suffix, e.g. "Latitude (°N)" becomes "latitude".
func normalizeHeader(label string) string {
	if i := strings.IndexByte(label, '('); i >= 0 {
		label = label[:i]
	}

	return strings.ToLower(strings.TrimSpace(label))
}

// registryFromRows maps header labels to columns and converts each row to a
// Team record. Shared by the CSV and HTML loaders.
func registryFromRows(header []string, rows [][]string) (*Registry, error) {
	cols := make(map[string]int, len(header))
	for i, label := range header {
		if key, ok := headerAliases[normalizeHeader(label)]; ok {
			if _, seen := cols[key]; !seen {
				cols[key] = i
			}
		}
	}
	for _, key := range []string{colTeam, colCountry, colPot, colLat, colLon} {
		if _, ok := cols[key]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, key)
		}
	}

	teams := make([]Team, 0, len(rows))
	for i, row := range rows {
		t, err := teamFromRow(cols, row, i)
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}

	return NewRegistry(teams)
}

// teamFromRow converts one data row. Row numbers in errors are 1-based and
// count data rows only (the header is row 0).
func teamFromRow(cols map[string]int, row []string, i int) (Team, error) {
	cell := func(key string) string {
		idx, ok := cols[key]
		if !ok || idx >= len(row) {
			return ""
		}

		return strings.TrimSpace(row[idx])
	}

	var t Team
	t.ID = cell(colTeam)
	t.Country = cell(colCountry)
	t.Stadium = cell(colStadium)

	for _, req := range []struct{ key, val string }{
		{colTeam, t.ID},
		{colCountry, t.Country},
		{colPot, cell(colPot)},
		{colLat, cell(colLat)},
		{colLon, cell(colLon)},
	} {
		if req.val == "" {
			return Team{}, errorfRow(ErrMissingField, i, req.key)
		}
	}

	pot, err := strconv.Atoi(cell(colPot))
	if err != nil || pot < 1 {
		return Team{}, errorfRow(ErrBadPot, i, cell(colPot))
	}
	t.Pot = pot

	lat, err := strconv.ParseFloat(cell(colLat), 64)
	if err != nil {
		return Team{}, errorfRow(ErrBadCoordinate, i, cell(colLat))
	}
	lon, err := strconv.ParseFloat(cell(colLon), 64)
	if err != nil {
		return Team{}, errorfRow(ErrBadCoordinate, i, cell(colLon))
	}
	t.Ground = geo.Point{Lat: lat, Lon: lon}

	return t, nil
}

// errorfRow attaches 1-based row context to a sentinel.
func errorfRow(sentinel error, i int, detail string) error {
	return fmt.Errorf("%w: row %d: %s", sentinel, i+1, detail)
}

// IsDataError reports whether err belongs to this package's load-failure
// family. Convenient for callers mapping failures to exit codes.
func IsDataError(err error) bool {
	for _, s := range []error{
		ErrNoHeader, ErrMissingColumn, ErrMissingField,
		ErrDuplicateTeam, ErrBadPot, ErrBadCoordinate, ErrNoTeams,
	} {
		if errors.Is(err, s) {
			return true
		}
	}

	return false
}
