// Package league holds the static attributes of the participating teams.
//
// A Registry is an ordered, read-only collection of Team records with unique
// identifiers. It is loaded once per optimization run from a tabular data
// source (CSV or an HTML table, optionally fetched over HTTP by the caller)
// and never mutated afterwards; every later stage of the pipeline only reads
// from it.
//
// Load failures are data errors: missing required columns or fields,
// duplicate identifiers, unparseable pots or coordinates. They carry row
// context via wrapping and are detectable with errors.Is against the
// package sentinels. A load failure always precedes any model construction
// or solve attempt.
package league
