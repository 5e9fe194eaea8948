package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/tileroads/internal/logger"
)

type benchCmd struct {
	sessionFlags
	runs    int
	verbose bool
}

func (c *benchCmd) Name() string     { return "bench" }
func (c *benchCmd) Synopsis() string { return "run many sessions and summarize generation and routing" }
func (c *benchCmd) Usage() string {
	return "tileroads bench [-n <runs> -seed <first seed>]\n"
}
func (c *benchCmd) SetFlags(f *flag.FlagSet) {
	c.sessionFlags.SetFlags(f)
	f.IntVar(&c.runs, "n", 100, "Number of sessions")
	f.BoolVar(&c.verbose, "v", false, "Keep per-session logging")
}

type benchStats struct {
	runs          int
	incomplete    int
	contradicted  int
	noRoads       int
	agentsPlaced  int
	agentsFailed  int
	objectives    int
	objectiveLen  int
	totalDuration time.Duration
}

func (s *benchStats) print() {
	if s.runs == 0 {
		return
	}
	fmt.Printf("runs:            %d\n", s.runs)
	fmt.Printf("incomplete:      %d\n", s.incomplete)
	fmt.Printf("contradictions:  %d runs\n", s.contradicted)
	fmt.Printf("no roads:        %d runs\n", s.noRoads)
	fmt.Printf("cars routed:     %d/%d\n", s.agentsPlaced, s.agentsPlaced+s.agentsFailed)
	fmt.Printf("objectives:      %d/%d", s.objectives, s.runs)
	if s.objectives > 0 {
		fmt.Printf(" (avg %.1f cells)", float64(s.objectiveLen)/float64(s.objectives))
	}
	fmt.Println()
	fmt.Printf("avg session:     %s\n", s.totalDuration/time.Duration(s.runs))
}

func (c *benchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.runs < 1 {
		fail(fmt.Errorf("-n must be positive, got %d", c.runs))
		return subcommands.ExitUsageError
	}
	if !c.verbose {
		logger.Log.SetLevel(logrus.WarnLevel)
	}

	var stats benchStats
	bar := progressbar.NewOptions(c.runs,
		progressbar.OptionSetDescription("sessions"),
		progressbar.OptionShowIts(),
		progressbar.OptionShowCount(),
	)

	first := c.cfg.Seed
	for i := 0; i < c.runs && ctx.Err() == nil; i++ {
		if first != 0 {
			c.cfg.Seed = first + int64(i)
		}
		_, report, err := c.session(ctx)
		if err != nil {
			bar.Finish()
			fmt.Println()
			fail(err)
			return subcommands.ExitFailure
		}

		stats.runs++
		stats.totalDuration += report.Duration
		stats.agentsPlaced += report.AgentsPlaced
		stats.agentsFailed += report.AgentsFailed
		if report.Incomplete {
			stats.incomplete++
		}
		if report.Contradictions > 0 {
			stats.contradicted++
		}
		if report.Roads == 0 {
			stats.noRoads++
		}
		if report.ObjectiveFound {
			stats.objectives++
			stats.objectiveLen += report.ObjectiveLength
		}
		bar.Add(1)
	}

	bar.Finish()
	fmt.Println()
	stats.print()
	return subcommands.ExitSuccess
}
