package main

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/samdwyer/tileroads/internal/game"
	"github.com/samdwyer/tileroads/internal/logger"
	"github.com/samdwyer/tileroads/internal/ui"
)

type viewCmd struct {
	sessionFlags
	logPath string
}

func (c *viewCmd) Name() string     { return "view" }
func (c *viewCmd) Synopsis() string { return "play the map in the terminal" }
func (c *viewCmd) Usage() string {
	return "tileroads view [-seed <seed> -log <path>]\n"
}
func (c *viewCmd) SetFlags(f *flag.FlagSet) {
	c.sessionFlags.SetFlags(f)
	f.StringVar(&c.logPath, "log", "", "Write logs to this file (default: discard)")
}

func (c *viewCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.envErr != nil {
		fail(c.envErr)
		return subcommands.ExitFailure
	}

	// Log lines would corrupt the terminal screen
	var out io.Writer = io.Discard
	if c.logPath != "" {
		f, err := os.OpenFile(c.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fail(err)
			return subcommands.ExitFailure
		}
		defer f.Close()
		out = f
	}
	logger.InitWithOutput(out)
	defer logger.InitWithOutput(os.Stderr)

	screen, err := ui.NewScreen()
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}

	play, err := game.NewPlay(c.cfg, screen)
	if err != nil {
		screen.Close()
		fail(err)
		return subcommands.ExitFailure
	}

	err = play.Run(ctx)
	play.Close()
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
