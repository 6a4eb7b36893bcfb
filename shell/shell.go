// Package shell is the interactive front end: a readline loop that lets
// the user set up boards, play moves by hand, run the solver, and browse
// the solve archive.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/pegsolve/tripeg/config"
	"github.com/pegsolve/tripeg/game"
	"github.com/pegsolve/tripeg/stats"
	"github.com/pegsolve/tripeg/store"
)

// ShellController drives the readline loop and owns the current game.
type ShellController struct {
	l       *readline.Instance
	cfg     *config.Config
	game    *game.Game
	archive *store.Store
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "new [rows] [empty] - start a new board; defaults come from config\n")
	io.WriteString(w, "show - display the current board\n")
	io.WriteString(w, "moves - list the legal jumps, numbered\n")
	io.WriteString(w, "play <n> - play the nth legal jump\n")
	io.WriteString(w, "solve [threads] - search for the best line and replay it\n")
	io.WriteString(w, "analyze - enumerate every ending of the current board and plot the distribution\n")
	io.WriteString(w, "playout <n> - sample n random games and plot the distribution\n")
	io.WriteString(w, "history [n] - list recent archived solves (default 10)\n")
	io.WriteString(w, "set <key> <value> - change a config value (rows, empty-hole, threads, ...)\n")
	io.WriteString(w, "help - this message\n")
	io.WriteString(w, "exit - leave the shell\n")
}

// NewShellController creates the controller. archive may be nil, in which
// case solve runs are not recorded and history is unavailable.
func NewShellController(cfg *config.Config, archive *store.Store) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mtripeg>\033[0m ",
		HistoryFile:     "/tmp/tripeg_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	return &ShellController{l: l, cfg: cfg, archive: archive}
}

// Loop reads and executes commands until exit or EOF. Sending on sig tells
// the main goroutine to shut down.
func (sc *ShellController) Loop(ctx context.Context, sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "exit" || line == "quit" {
			sig <- syscall.SIGINT
			break
		}
		if err := sc.executeLine(ctx, line); err != nil {
			showMessage("error: "+err.Error(), sc.l.Stderr())
		}
	}
	log.Debug().Msg("exiting readline loop")
}

// Execute runs a single command line, for non-interactive invocations.
func (sc *ShellController) Execute(ctx context.Context, sig chan os.Signal, line string) {
	if err := sc.executeLine(ctx, strings.TrimSpace(line)); err != nil {
		showMessage("error: "+err.Error(), sc.l.Stderr())
	}
}

func (sc *ShellController) executeLine(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	switch fields[0] {
	case "new":
		return sc.handleNew(fields[1:])
	case "show":
		return sc.handleShow()
	case "moves":
		return sc.handleMoves()
	case "play":
		return sc.handlePlay(fields[1:])
	case "solve":
		return sc.handleSolve(ctx, fields[1:])
	case "analyze":
		return sc.handleAnalyze(ctx)
	case "playout":
		return sc.handlePlayout(ctx, fields[1:])
	case "history":
		return sc.handleHistory(ctx, fields[1:])
	case "set":
		return sc.handleSet(fields[1:])
	case "help":
		usage(sc.l.Stderr())
		return nil
	default:
		log.Debug().Msgf("you said: %v", strconv.Quote(line))
		return nil
	}
}

func (sc *ShellController) handleNew(args []string) error {
	rows := sc.cfg.GetInt("rows")
	empty := sc.cfg.GetInt("empty-hole")
	var err error
	if len(args) > 0 {
		if rows, err = strconv.Atoi(args[0]); err != nil {
			return fmt.Errorf("bad row count %q", args[0])
		}
	}
	if len(args) > 1 {
		if empty, err = strconv.Atoi(args[1]); err != nil {
			return fmt.Errorf("bad empty hole %q", args[1])
		}
	}
	g, err := game.NewGame(rows, empty)
	if err != nil {
		return err
	}
	g.SetOutput(sc.l.Stdout())
	sc.game = g
	log.Info().Int("rows", rows).Int("empty-hole", empty).Msg("new-game")
	return sc.handleShow()
}

func (sc *ShellController) requireGame() error {
	if sc.game == nil {
		return fmt.Errorf("no board yet; use 'new' first")
	}
	return nil
}

func (sc *ShellController) handleShow() error {
	if err := sc.requireGame(); err != nil {
		return err
	}
	b := sc.game.Board()
	showMessage(b.ToDisplayText(), sc.l.Stdout())
	showMessage(fmt.Sprintf("Pegs remaining: %d", b.PegsRemaining()), sc.l.Stdout())
	return nil
}

func (sc *ShellController) handleMoves() error {
	if err := sc.requireGame(); err != nil {
		return err
	}
	moves := sc.game.Board().ValidMoves()
	if len(moves) == 0 {
		showMessage("no legal jumps remain", sc.l.Stdout())
		return nil
	}
	showMessage("Valid moves (start -> jumped -> destination):", sc.l.Stdout())
	for i, m := range moves {
		showMessage(fmt.Sprintf("%d: %s", i+1, m.ShortDescription()), sc.l.Stdout())
	}
	return nil
}

func (sc *ShellController) handlePlay(args []string) error {
	if err := sc.requireGame(); err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("play needs a move number; see 'moves'")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("bad move number %q", args[0])
	}
	if err := sc.game.PlayMoveNumber(n); err != nil {
		return err
	}
	if err := sc.handleShow(); err != nil {
		return err
	}
	b := sc.game.Board()
	if b.IsTerminal() {
		pegs := b.PegsRemaining()
		showMessage(fmt.Sprintf("Game over! Pegs remaining: %d", pegs), sc.l.Stdout())
		showMessage(game.Verdict(pegs), sc.l.Stdout())
	}
	return nil
}

func (sc *ShellController) handleSolve(ctx context.Context, args []string) error {
	if err := sc.requireGame(); err != nil {
		return err
	}
	threads := sc.cfg.GetInt("threads")
	if len(args) > 0 {
		var err error
		if threads, err = strconv.Atoi(args[0]); err != nil {
			return fmt.Errorf("bad thread count %q", args[0])
		}
	}
	report, err := sc.game.AutoSolve(ctx, threads)
	if err != nil {
		return err
	}
	if sc.archive == nil {
		return nil
	}
	id, err := sc.archive.RecordSolve(ctx, store.Record{
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
		return nil
	}
	log.Debug().Int64("id", id).Msg("solve-archived")
	return nil
}

func (sc *ShellController) handleAnalyze(ctx context.Context) error {
	if err := sc.requireGame(); err != nil {
		return err
	}
	b := sc.game.Board()
	if b.NumRows() > 5 {
		return fmt.Errorf("analyze enumerates the whole tree; %d rows is too big, use playout", b.NumRows())
	}
	d, err := stats.Exhaustive(ctx, b)
	if err != nil {
		return err
	}
	showMessage(d.Summary(), sc.l.Stdout())
	return d.PrintHistogram(sc.l.Stdout())
}

func (sc *ShellController) handlePlayout(ctx context.Context, args []string) error {
	if err := sc.requireGame(); err != nil {
		return err
	}
	n := 1000
	if len(args) > 0 {
		var err error
		if n, err = strconv.Atoi(args[0]); err != nil {
			return fmt.Errorf("bad playout count %q", args[0])
		}
	}
	d, err := stats.Playouts(ctx, sc.game.Board(), n)
	if err != nil {
		return err
	}
	showMessage(d.Summary(), sc.l.Stdout())
	return d.PrintHistogram(sc.l.Stdout())
}

func (sc *ShellController) handleHistory(ctx context.Context, args []string) error {
	if sc.archive == nil {
		return fmt.Errorf("no solve archive configured; set store-path")
	}
	limit := 10
	if len(args) > 0 {
		var err error
		if limit, err = strconv.Atoi(args[0]); err != nil {
			return fmt.Errorf("bad history limit %q", args[0])
		}
	}
	recs, err := sc.archive.RecentSolves(ctx, limit)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		showMessage("no archived solves yet", sc.l.Stdout())
		return nil
	}
	showMessage(fmt.Sprintf("%-5s%-22s%-6s%-7s%-10s%-8s%-10s", "id", "when", "rows", "empty", "pegs left", "moves", "elapsed"),
		sc.l.Stdout())
	for _, r := range recs {
		showMessage(fmt.Sprintf("%-5d%-22s%-6d%-7d%-10d%-8d%-10s",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.NumRows,
			r.EmptyHole, r.PegsLeft, r.NumMoves, r.Elapsed), sc.l.Stdout())
	}
	return nil
}

func (sc *ShellController) handleSet(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("set needs a key and a value")
	}
	sc.cfg.Set(args[0], args[1])
	log.Info().Str("key", args[0]).Str("value", args[1]).Msg("setting-changed")
	return nil
}

// Cleanup closes the archive, if any.
func (sc *ShellController) Cleanup() {
	if sc.archive != nil {
		if err := sc.archive.Close(); err != nil {
			log.Warn().Err(err).Msg("archive-close-failed")
		}
	}
}
