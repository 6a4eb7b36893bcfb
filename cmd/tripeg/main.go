package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pegsolve/tripeg/config"
	"github.com/pegsolve/tripeg/game"
	"github.com/pegsolve/tripeg/shell"
	"github.com/pegsolve/tripeg/store"
)

var GitVersion string

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	var logger zerolog.Logger
	if cfg.GetBool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")

	if cfg.GetString("cpu-profile") != "" {
		f, err := os.Create(cfg.GetString("cpu-profile"))
		if err != nil {
			panic("could not create CPU profile: " + err.Error())
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			panic("could not start CPU profile: " + err.Error())
		}
		defer pprof.StopCPUProfile()
	}

	// A SIGINT during a long solve cancels the search; the solver returns
	// its best-effort result before we exit.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("got quit signal...")
		cancel()
	}()

	var archive *store.Store
	if path := cfg.GetString("store-path"); path != "" {
		var err error
		archive, err = store.Open(path)
		if err != nil {
			log.Fatal().Err(err).Msg("could not open solve archive")
		}
	}

	if cfg.GetBool("solve") {
		oneShotSolve(ctx, cfg, archive)
		return
	}

	sc := shell.NewShellController(cfg, archive)
	sc.Loop(ctx, sig)
	sc.Cleanup()
	log.Info().Msg("goodbye")
}

func oneShotSolve(ctx context.Context, cfg *config.Config, archive *store.Store) {
	g, err := game.NewGame(cfg.GetInt("rows"), cfg.GetInt("empty-hole"))
	if err != nil {
		log.Fatal().Err(err).Msg("bad board parameters")
	}
	report, err := g.AutoSolve(ctx, cfg.GetInt("threads"))
	if err != nil {
		log.Warn().Err(err).Msg("solve did not run to completion")
	}
	if archive != nil && report != nil {
		_, err := archive.RecordSolve(context.Background(), store.Record{
			NumRows:   report.NumRows,
			EmptyHole: report.EmptyHole,
			PegsLeft:  report.Result.PegsRemaining,
			NumMoves:  len(report.Result.Moves),
			Elapsed:   report.Elapsed,
			Threads:   report.Threads,
			Nodes:     report.Nodes,
			Moves:     store.MovesText(report.Result.Moves),
		})
		if err != nil {
			log.Warn().Err(err).Msg("archive-insert-failed")
		}
		archive.Close()
	}
}
