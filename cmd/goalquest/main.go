package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/riskibarqy/goalquest/internal/app"
	"github.com/riskibarqy/goalquest/internal/config"
	"github.com/riskibarqy/goalquest/internal/platform/logging"
)

type globalCmd struct {
	EnvFile  string        `help:"Dotenv file loaded before reading configuration." default:".env" type:"path"`
	LogLevel string        `help:"Log level for diagnostics on stderr." default:"warn" enum:"debug,info,warn,error"`
	Timeout  time.Duration `help:"Deadline for the whole command." default:"30s"`
}

var CLI struct {
	globalCmd

	Matches    matchesCmd    `cmd:"" help:"List live and recent matches."`
	Match      matchCmd      `cmd:"" help:"Show one match with its timeline."`
	Fixtures   fixturesCmd   `cmd:"" help:"List fixtures for the next seven days."`
	Leagues    leaguesCmd    `cmd:"" help:"List supported leagues."`
	Standings  standingsCmd  `cmd:"" help:"Show a league table."`
	Highlights highlightsCmd `cmd:"" help:"List highlight videos."`
	News       newsCmd       `cmd:"" help:"List football news."`
	Predict    predictCmd    `cmd:"" help:"Request an AI prediction for a match."`
}

// runtime is bound into every command's Run method.
type runtime struct {
	ctx       context.Context
	out       io.Writer
	container *app.Container
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("goalquest"),
		kong.Description("Football scores, highlights, standings and predictions from the terminal."),
		kong.UsageOnError(),
	)

	rt, cleanup, err := newRuntime(CLI.globalCmd, os.Stdout)
	kctx.FatalIfErrorf(err)
	defer cleanup()

	kctx.FatalIfErrorf(kctx.Run(rt))
}

func newRuntime(g globalCmd, out io.Writer) (*runtime, func(), error) {
	_ = godotenv.Load(g.EnvFile)

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger := logging.New(logging.ParseLevel(g.LogLevel), os.Stderr, logging.FormatConsole)
	logging.SetDefault(logger)

	container, err := app.NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, g.Timeout)

	return &runtime{ctx: ctx, out: out, container: container}, func() {
		cancel()
		stop()
		_ = logger.Sync()
	}, nil
}
