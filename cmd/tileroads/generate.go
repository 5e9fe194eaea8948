package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/samdwyer/tileroads/internal/ui"
)

type generateCmd struct {
	sessionFlags
}

func (c *generateCmd) Name() string     { return "generate" }
func (c *generateCmd) Synopsis() string { return "generate a road map and print it" }
func (c *generateCmd) Usage() string {
	return "tileroads generate [-w <width> -h <height> -seed <seed>]\n"
}

func (c *generateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	c.cfg.Agents = 0
	session, report, err := c.session(ctx)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}

	for _, line := range ui.Lines(session.Grid(), nil) {
		fmt.Println(line)
	}
	fmt.Printf("seed %d: %d roads, %d other, %d contradictions in %d steps\n",
		report.Seed, report.Roads, report.NonRoads, report.Contradictions, report.Steps)

	if report.Incomplete {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
