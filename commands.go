package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "0.0.0"

var (
	engineSpecs  []string
	openingsSpec string
	gamesFlag    uint64
	roundsFlag   uint64
	repeatFlag   bool
	concurrency  uint64
	eventFlag    string
	siteFlag     string
	pgnSpec      string
)

var rootCmd = &cobra.Command{
	Use:   "shogitest",
	Short: "shogitest - run matches between USI shogi engines",
	Long: `shogitest plays round-robin match series between USI shogi engines,
tracking clocks, adjudicating results, and optionally writing games to PGN.

Examples:
	shogitest --engine "cmd=./a tc=10+0.1" --engine "cmd=./b tc=10+0.1" --games 100
	shogitest --engine "cmd=./a tc=10m,3s name=A" --engine "cmd=./b tc=10m,3s" \
		--openings "file=book.sfen" --concurrency 4 --pgnout "file=out.pgn nodes=true"`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTournament,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringArrayVar(&engineSpecs, "engine", nil,
		`engine spec: "cmd=<path> [name=<s>] [dir=<d>] [tc=<spec>] [option.<K>=<V>]..."`)
	flags.StringVar(&openingsSpec, "openings", "", `opening book: "file=<path>"`)
	flags.Uint64Var(&gamesFlag, "games", 0, "games per pairing and round (0: unbounded)")
	flags.Uint64Var(&roundsFlag, "rounds", 2, "rounds per pairing; above 2 must be even")
	flags.BoolVar(&repeatFlag, "repeat", false, "play each opening twice with colors swapped (same as --rounds 2)")
	flags.Uint64Var(&concurrency, "concurrency", 1, "number of games to play in parallel")
	flags.StringVar(&eventFlag, "event", "?", "event name for PGN headers")
	flags.StringVar(&siteFlag, "site", "?", "site name for PGN headers")
	flags.StringVar(&pgnSpec, "pgnout", "",
		`PGN output: "file=<path> [nodes=bool] [seldepth=bool] [nps=bool] [hashfull=bool] [timeleft=bool] [latency=bool]"`)
	rootCmd.SetVersionTemplate("shogitest version {{.Version}}\n")
}

func buildOptions() (*Options, error) {
	opts := &Options{
		Games:       gamesFlag,
		Rounds:      roundsFlag,
		Concurrency: concurrency,
		Meta:        MetaOptions{Event: eventFlag, Site: siteFlag},
	}
	if repeatFlag {
		opts.Rounds = 2
	}

	for _, spec := range engineSpecs {
		cfg, err := parseEngineSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("--engine: %w", err)
		}
		opts.Engines = append(opts.Engines, cfg)
	}

	if openingsSpec != "" {
		file, err := parseOpeningsSpec(openingsSpec)
		if err != nil {
			return nil, fmt.Errorf("--openings: %w", err)
		}
		opts.OpeningsFile = file
	}

	if pgnSpec != "" {
		pgn, err := parsePGNSpec(pgnSpec)
		if err != nil {
			return nil, fmt.Errorf("--pgnout: %w", err)
		}
		opts.PGN = pgn
	}

	if err := opts.validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// engineNames resolves display names, starting each unnamed engine once to
// ask for its id name.
func engineNames(configs []EngineConfig) ([]string, error) {
	names := make([]string, len(configs))
	for i, cfg := range configs {
		if cfg.Name != "" {
			names[i] = cfg.Name
			continue
		}
		e, err := StartEngine(cfg)
		if err != nil {
			return nil, fmt.Errorf("engine %q: %w", cfg.Cmd, err)
		}
		names[i] = e.Name()
		e.Close()
	}
	return names, nil
}

func runTournament(cmd *cobra.Command, args []string) error {
	opts, err := buildOptions()
	if err != nil {
		return err
	}

	book, err := LoadOpeningBook(opts.OpeningsFile)
	if err != nil {
		return err
	}

	names, err := engineNames(opts.Engines)
	if err != nil {
		return err
	}

	var tournament Tournament = NewRoundRobin(opts, book)
	if opts.PGN != nil {
		pgn, err := NewPGNWriter(*opts.PGN, opts.Meta, names)
		if err != nil {
			return err
		}
		tournament = NewPGNOut(tournament, pgn)
	}
	tournament = NewReporter(tournament, names)

	return NewRunner(opts.Engines, opts.Concurrency).Run(tournament)
}
