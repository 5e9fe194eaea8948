package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"

	"github.com/google/subcommands"

	"github.com/samdwyer/tileroads/internal/store"
)

type exportCmd struct {
	sessionFlags
	outputPath string
}

func (c *exportCmd) Name() string     { return "export" }
func (c *exportCmd) Synopsis() string { return "generate a map and export it with its routes to SQLite" }
func (c *exportCmd) Usage() string {
	return "tileroads export -o <path> [-w <width> -h <height> -seed <seed>]\n"
}
func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	c.sessionFlags.SetFlags(f)
	f.StringVar(&c.outputPath, "o", "", "Output database path")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.outputPath == "" {
		fail(errors.New("missing -o"))
		return subcommands.ExitUsageError
	}
	session, report, err := c.session(ctx)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}

	var routes []store.Route
	for _, r := range session.AgentRoutes() {
		if r.Err != nil {
			continue
		}
		routes = append(routes, store.Route{
			ID:   fmt.Sprintf("car-%d", r.Index),
			Kind: store.KindAgent,
			Path: r.Route.Path,
		})
	}
	if goal, ok := session.Objective(); ok {
		routes = append(routes, store.Route{ID: "objective", Kind: store.KindObjective, Path: goal.Path})
	}

	meta := map[string]string{
		"session": report.SessionID,
		"seed":    strconv.FormatInt(report.Seed, 10),
		"width":   strconv.Itoa(report.Width),
		"height":  strconv.Itoa(report.Height),
		"tile":    strconv.FormatFloat(c.cfg.TileSize, 'g', -1, 64),
	}
	if err := store.Export(ctx, c.outputPath, session.Grid(), routes, store.WithMetadata(meta)); err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
