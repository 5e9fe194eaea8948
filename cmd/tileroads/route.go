package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/samdwyer/tileroads/internal/ui"
	"github.com/samdwyer/tileroads/internal/world"
)

type routeCmd struct {
	sessionFlags
}

func (c *routeCmd) Name() string     { return "route" }
func (c *routeCmd) Synopsis() string { return "generate a map and print car and objective routes" }
func (c *routeCmd) Usage() string {
	return "tileroads route [-agents <n> -min-path <n> -seed <seed>]\n"
}

func (c *routeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	session, report, err := c.session(ctx)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}

	marks := make(map[world.Point]rune)
	if goal, ok := session.Objective(); ok {
		marks[goal.Start] = '&'
		for i, p := range goal.Path[1:] {
			marks[p] = rune('0' + (i+1)%10)
		}
	}
	for _, line := range ui.Lines(session.Grid(), marks) {
		fmt.Println(line)
	}

	for _, r := range session.AgentRoutes() {
		if r.Err != nil {
			fmt.Printf("car %d: %v\n", r.Index, r.Err)
			continue
		}
		fmt.Printf("car %d: %d cells %v\n", r.Index, r.Route.Path.Len(), r.Route.Path)
	}
	if goal, ok := session.Objective(); ok {
		fmt.Printf("objective: %d cells %v\n", goal.Path.Len(), goal.Path)
	} else {
		fmt.Printf("objective: none of length %d\n", c.cfg.MinPathLength)
	}
	fmt.Printf("seed %d: %d/%d cars routed\n", report.Seed, report.AgentsPlaced, c.cfg.Agents)
	return subcommands.ExitSuccess
}
