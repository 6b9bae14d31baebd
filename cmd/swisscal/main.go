// Command swisscal computes a travel-minimal league-phase fixture schedule
// from a team table (CSV or HTML, local file or URL) and writes the result
// as YAML or as a per-team rivals table. With --score it instead prices an
// existing fixture list, so an official calendar can be compared against
// the optimized one.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/fblanch/swisscal/glpksolve"
	"github.com/fblanch/swisscal/league"
	"github.com/fblanch/swisscal/milp"
	"github.com/fblanch/swisscal/schedule"
)

const (
	inputFlag     = "input"
	outputFlag    = "output"
	formatFlag    = "format"
	htmlFlag      = "html"
	rulesFlag     = "rules"
	solverFlag    = "solver"
	scoreFlag     = "score"
	timeLimitFlag = "time-limit"
	stdoutCLIName = "-"
)

// Exit codes: 2 data error, 3 infeasible, 4 solver failure, 5 output failure.
const (
	exitData       = 2
	exitInfeasible = 3
	exitSolver     = 4
	exitOutput     = 5
)

var build string
var semanticVersion = "v0.1.0-dev" + build

// openInput returns a reader for a URL or a local file path.
func openInput(location string) (io.ReadCloser, error) {
	if u, err := url.ParseRequestURI(location); err == nil && u.Scheme != "" {
		fmt.Fprintln(os.Stderr, "URL detected")
		resp, err := http.Get(u.String())
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", location, err)
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()

			return nil, fmt.Errorf("invalid HTTP status code received: %v", resp.Status)
		}

		return resp.Body, nil
	}
	if f, err := os.Open(location); err == nil {
		fmt.Fprintln(os.Stderr, "File detected")

		return f, nil
	}

	return nil, fmt.Errorf("provided input was neither a valid URL nor a path to an existing file: %v", location)
}

// scheduleDoc is the YAML output document.
type scheduleDoc struct {
	Status          string             `yaml:"status"`
	TotalDistanceKm float64            `yaml:"total_distance_km"`
	Fixtures        []schedule.Fixture `yaml:"fixtures"`
}

func writeYAML(w io.Writer, sched *schedule.Schedule) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	doc := scheduleDoc{
		Status:          sched.Status.String(),
		TotalDistanceKm: sched.DistanceKm,
		Fixtures:        sched.Fixtures,
	}
	if err := enc.Encode(&doc); err != nil {
		return err
	}

	return enc.Close()
}

// writeTable renders the per-team rivals report: for every team, who it
// visits and who it hosts, visitant rivals first.
func writeTable(w io.Writer, reg *league.Registry, sched *schedule.Schedule) error {
	hosts := make(map[string][]string)
	visits := make(map[string][]string)
	for _, f := range sched.Fixtures {
		hosts[f.Home] = append(hosts[f.Home], f.Away)
		visits[f.Away] = append(visits[f.Away], f.Home)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Team\tVisits\tHosts")
	for _, t := range reg.Teams() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", t.ID,
			strings.Join(visits[t.ID], ", "), strings.Join(hosts[t.ID], ", "))
	}
	fmt.Fprintf(tw, "\nTotal travel:\t%.1f km\t(%s)\n", sched.DistanceKm, sched.Status)

	return tw.Flush()
}

// writeScoreYAML emits the travel report of an existing fixture list.
func writeScoreYAML(w io.Writer, rep *schedule.TravelReport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return err
	}

	return enc.Close()
}

// writeScoreTable renders the per-team away travel totals, heaviest
// traveler first, with the grand total last.
func writeScoreTable(w io.Writer, rep *schedule.TravelReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Team\tAway matches\tTravel km")
	for _, tt := range rep.PerTeam {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\n", tt.Team, tt.Matches, tt.DistanceKm)
	}
	fmt.Fprintf(tw, "\nTotal travel:\t%.2f km\n", rep.DistanceKm)

	return tw.Flush()
}

func cliHandle(cCtx *cli.Context) error {
	rules := schedule.DefaultRules()
	if path := cCtx.String(rulesFlag); path != "" {
		var err error
		rules, err = schedule.LoadRulesFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Rules file rejected: %v\n", err)
			os.Exit(exitData)
		}
	}

	in, err := openInput(cCtx.String(inputFlag))
	if err != nil {
		return err
	}
	defer in.Close()

	var reg *league.Registry
	if cCtx.Bool(htmlFlag) {
		reg, err = league.LoadHTML(in)
	} else {
		reg, err = league.LoadCSV(in)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Team table rejected: %v\n", err)
		os.Exit(exitData)
	}
	fmt.Fprintf(os.Stderr, "%d teams loaded\n", reg.Len())

	if loc := cCtx.String(scoreFlag); loc != "" {
		return scoreHandle(cCtx, reg, loc)
	}

	var solver milp.Solver
	switch name := cCtx.String(solverFlag); name {
	case "bnb", "":
		solver = milp.NewBranchBound()
	case "glpk":
		solver = glpksolve.New()
	default:
		return fmt.Errorf("unknown solver %q (want bnb or glpk)", name)
	}

	ctx := context.Background()
	if limit := cCtx.Duration(timeLimitFlag); limit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, limit)
		defer cancel()
	}

	fmt.Fprintln(os.Stderr, "Solving...")
	started := time.Now()
	sched, err := schedule.Optimize(ctx, reg, rules, solver)
	switch {
	case err == nil:
	case errors.Is(err, schedule.ErrInfeasible):
		fmt.Fprintf(os.Stderr, "No feasible schedule: %v\n", err)
		os.Exit(exitInfeasible)
	default:
		fmt.Fprintf(os.Stderr, "Solve failed: %v\n", err)
		os.Exit(exitSolver)
	}
	fmt.Fprintf(os.Stderr, "Minimal total travel: %.2f km (%s, %s)\n",
		sched.DistanceKm, sched.Status, time.Since(started).Round(time.Millisecond))

	var out io.WriteCloser = os.Stdout
	if loc := cCtx.String(outputFlag); loc != stdoutCLIName {
		f, err := os.OpenFile(loc, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot open output: %v\n", err)
			os.Exit(exitOutput)
		}
		defer f.Close()
		out = f
	}

	switch format := cCtx.String(formatFlag); format {
	case "yaml", "":
		err = writeYAML(out, sched)
	case "table":
		err = writeTable(out, reg, sched)
	default:
		return fmt.Errorf("unknown format %q (want yaml or table)", format)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Writing output failed: %v\n", err)
		os.Exit(exitOutput)
	}

	return nil
}

// scoreHandle prices an existing fixture list against the loaded registry
// instead of optimizing, so an official calendar can be compared with the
// optimizer's total.
func scoreHandle(cCtx *cli.Context, reg *league.Registry, loc string) error {
	in, err := openInput(loc)
	if err != nil {
		return err
	}
	defer in.Close()

	pairs, err := schedule.LoadFixturesCSV(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fixture list rejected: %v\n", err)
		os.Exit(exitData)
	}

	rep, err := schedule.Score(reg, pairs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fixture list rejected: %v\n", err)
		os.Exit(exitData)
	}
	fmt.Fprintf(os.Stderr, "%d fixtures scored, total travel %.2f km\n",
		len(rep.Fixtures), rep.DistanceKm)

	var out io.WriteCloser = os.Stdout
	if dest := cCtx.String(outputFlag); dest != stdoutCLIName {
		f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot open output: %v\n", err)
			os.Exit(exitOutput)
		}
		defer f.Close()
		out = f
	}

	switch format := cCtx.String(formatFlag); format {
	case "yaml", "":
		err = writeScoreYAML(out, rep)
	case "table":
		err = writeScoreTable(out, rep)
	default:
		return fmt.Errorf("unknown format %q (want yaml or table)", format)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Writing output failed: %v\n", err)
		os.Exit(exitOutput)
	}

	return nil
}

func main() {
	app := &cli.App{
		Name:    "swisscal",
		Usage:   "Optimize a league-phase fixture schedule for minimal total travel",
		Version: semanticVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     inputFlag,
				Aliases:  []string{"i"},
				Usage:    "URL or path of the team table (CSV by default)",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  htmlFlag,
				Usage: "Input is an HTML page with a team table rather than CSV",
			},
			&cli.StringFlag{
				Name:    outputFlag,
				Aliases: []string{"o"},
				Usage:   "Where to write the schedule. A file path or \"-\" (stdout).",
				Value:   stdoutCLIName,
			},
			&cli.StringFlag{
				Name:    formatFlag,
				Aliases: []string{"f"},
				Usage:   "Output format: yaml or table",
				Value:   "yaml",
			},
			&cli.StringFlag{
				Name:    rulesFlag,
				Aliases: []string{"r"},
				Usage:   "TOML file overriding the default competition rules",
			},
			&cli.StringFlag{
				Name:    scoreFlag,
				Aliases: []string{"s"},
				Usage:   "URL or path of an existing fixture list (CSV with home/away columns); score its travel instead of optimizing",
			},
			&cli.StringFlag{
				Name:  solverFlag,
				Usage: "MILP backend: bnb (built-in exact) or glpk",
				Value: "bnb",
			},
			&cli.DurationFlag{
				Name:    timeLimitFlag,
				Aliases: []string{"t"},
				Usage:   "Solve time budget (0 = unlimited)",
				Value:   5 * time.Minute,
			},
		},
		Action: cliHandle,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
