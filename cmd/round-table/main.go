// FILENAME: cmd/round-table/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xkilldash9x/round-table/internal/config"
	"github.com/xkilldash9x/round-table/internal/report"
	"github.com/xkilldash9x/round-table/internal/schedule"
	"github.com/xkilldash9x/round-table/internal/table"
	"github.com/xkilldash9x/round-table/internal/ui"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ProgramRunner runs the dashboard. Tests swap it out to avoid a terminal.
type ProgramRunner interface {
	Run(p *tea.Program) (tea.Model, error)
}

type teaRunner struct{}

func (teaRunner) Run(p *tea.Program) (tea.Model, error) { return p.Run() }

func main() {
	// -- Signal Handling --
	// sets up the root context that listens for OS interrupts
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := Run(ctx, os.Args[1:], os.Stdin, os.Stdout, teaRunner{}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func Run(ctx context.Context, args []string, input io.Reader, output io.Writer, runner ProgramRunner) error {
	flags := flag.NewFlagSet("round-table", flag.ContinueOnError)
	flags.SetOutput(output)
	cfgPath := flags.String("config", "", "TOML table definition")
	count := flags.Int("n", config.DefaultPhilosophers, "Philosophers when no config file is given")
	rounds := flags.Int("rounds", config.DefaultRounds, "Rounds to run (0 = until interrupted)")
	eat := flags.Duration("eat", -1, "Override every seat's eat time")
	debug := flags.Bool("debug", false, "Enable debug logging")
	logFile := flags.String("log", config.DefaultLogFile, "Log file")
	tui := flags.Bool("tui", false, "Show the live dashboard")
	outDir := flags.String("out", config.DefaultOutDir, "Write JSON/CSV meal summaries to this directory")
	plan := flags.Bool("plan", false, "Print the seating plan for one cycle and exit")

	if err := flags.Parse(args); err != nil {
		return err
	}

	// -- Logging Setup --
	// file output only so the meal lines and the TUI stay readable
	logConfig := zap.NewProductionConfig()
	logConfig.OutputPaths = []string{*logFile}
	logConfig.ErrorOutputPaths = []string{*logFile}
	logConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if *debug {
		logConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		logConfig.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := logConfig.Build()
	if err != nil {
		return err
	}
	defer logger.Sync()

	// -- Table Config --
	var cfg config.Table
	if *cfgPath != "" {
		cfg, err = config.Load(*cfgPath)
	} else {
		cfg, err = config.Default(*count)
	}
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if *eat >= 0 {
		cfg = cfg.WithEatTime(*eat)
	}

	printer := report.NewPrinter(output)
	if *plan {
		printer.Plan(cfg, schedule.Plan(cfg.Philosophers))
		return nil
	}

	if *tui {
		err = runDashboard(ctx, cfg, *rounds, input, output, runner, logger, *outDir)
	} else {
		err = runTable(ctx, cfg, *rounds, printer, logger, *outDir)
	}
	if errors.Is(err, context.Canceled) {
		logger.Info("stopped by request")
		return nil
	}
	return err
}

func runTable(ctx context.Context, cfg config.Table, rounds int, printer *report.Printer, logger *zap.Logger, outDir string) error {
	tbl, err := table.New(cfg, logger, table.WithObserver(printer))
	if err != nil {
		return err
	}
	runErr := tbl.Run(ctx, rounds)
	if err := writeSummary(outDir, tbl, logger); err != nil {
		return err
	}
	return runErr
}

func runDashboard(ctx context.Context, cfg config.Table, rounds int, input io.Reader, output io.Writer, runner ProgramRunner, logger *zap.Logger, outDir string) error {
	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	// -- Table --
	bridge := ui.NewBridge()
	defer bridge.Close()
	tbl, err := table.New(cfg, logger, table.WithObserver(bridge))
	if err != nil {
		return err
	}

	// -- UI --
	p := tea.NewProgram(
		ui.NewModel(logger, cfg, rounds),
		tea.WithAltScreen(),
		tea.WithContext(runCtx),
		tea.WithInput(input),
		tea.WithOutput(output),
	)

	tableErr := make(chan error, 1)
	go func() { tableErr <- tbl.Run(runCtx, rounds) }()

	// -- Ingestion Bridge --
	// forwards table events to the program and reports the final outcome
	result := make(chan error, 1)
	go func() {
		for {
			select {
			case msg := <-bridge.Events():
				p.Send(msg)
			case err := <-tableErr:
				drain(bridge, p)
				p.Send(ui.DoneMsg{Err: err})
				result <- err
				return
			}
		}
	}()

	_, uiErr := runner.Run(p)

	// Quitting the dashboard ends the run.
	stop()
	bridge.Close()
	runErr := <-result

	if err := writeSummary(outDir, tbl, logger); err != nil {
		return err
	}
	if uiErr != nil && !errors.Is(uiErr, tea.ErrProgramKilled) {
		return uiErr
	}
	return runErr
}

func drain(bridge *ui.Bridge, p *tea.Program) {
	for {
		select {
		case msg := <-bridge.Events():
			p.Send(msg)
		default:
			return
		}
	}
}

func writeSummary(outDir string, tbl *table.Table, logger *zap.Logger) error {
	if outDir == "" {
		return nil
	}
	base, err := report.NewWriter(outDir).WriteArtifacts(tbl.Snapshot(), tbl.Completed(), "round-table")
	if err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	logger.Info("summary written", zap.String("path", base))
	return nil
}
