package main

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/potemkeen/self-driving-car/pkg/analytics"
	"github.com/potemkeen/self-driving-car/pkg/race"
	"github.com/potemkeen/self-driving-car/pkg/routing"
	"github.com/potemkeen/self-driving-car/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			printResult(e)
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			printResult(w)
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printResult(res validation.Result) {
	fmt.Printf("  [%s] %s\n", res.Level, res.Message)
	if res.Path != "" {
		fmt.Printf("    -> %s = %v\n", res.Path, res.ActualValue)
	}
	if res.Expected != "" {
		fmt.Printf("    expected: %s\n", res.Expected)
	}
	for _, s := range res.Suggestions {
		fmt.Printf("    * %s\n", s)
	}
}

func printCorridor(c *routing.Corridor) {
	target := c.Target()
	fmt.Println("Corridor")
	fmt.Println("========")
	fmt.Printf("  Skeleton segments:  %d\n", len(c.Skeleton))
	fmt.Printf("  Border segments:    %d\n", len(c.Borders))
	fmt.Printf("  Length:             %.1f\n", c.Length())
	fmt.Printf("  Target:             (%.1f, %.1f)\n", target.X, target.Y)
}

func printStandings(r *race.Race) {
	fmt.Println()
	fmt.Printf("Standings after tick %d\n", r.Tick())
	fmt.Printf("%-4s %-12s %10s %8s %8s\n", "Pos", "Car", "Progress", "Damaged", "Finish")
	for i, e := range r.Standings() {
		finish := "-"
		if e.Finished {
			finish = fmt.Sprintf("%d", e.FinishTick)
		}
		fmt.Printf("%-4d %-12s %9.1f%% %8t %8s\n", i+1, e.Name, e.Progress*100, e.Damaged, finish)
	}
}

func printStats(s *analytics.Stats) {
	n := s.Network
	fmt.Println("Road Network")
	fmt.Println("============")
	fmt.Printf("  Points:          %d\n", n.Points)
	fmt.Printf("  Segments:        %d (%d one-way)\n", n.Segments, n.OneWaySegments)
	fmt.Printf("  Road length:     %s\n", formatLength(n.RoadLength))
	fmt.Printf("  Border length:   %s\n", formatLength(n.BorderLength))
	fmt.Printf("  Intersections:   %d\n", n.Intersections)
	fmt.Printf("  Dead ends:       %d\n", n.DeadEnds)
	fmt.Printf("  Components:      %d\n", n.Components)
	if s.Bounds != nil {
		fmt.Printf("  Bounds:          (%.0f, %.0f) - (%.0f, %.0f)\n",
			s.Bounds.Min[0], s.Bounds.Min[1], s.Bounds.Max[0], s.Bounds.Max[1])
	}

	fmt.Println()
	fmt.Println("Scenery")
	fmt.Println("-------")
	b := s.Buildings
	fmt.Printf("  Buildings:       %d (%d generated, %d placed)\n", b.Total, b.Generated, b.Placed)
	fmt.Printf("  Footprint area:  %.0f\n", b.FootprintArea)
	fmt.Printf("  Trees:           %d\n", s.Trees)

	if len(s.Markings) > 0 {
		fmt.Println()
		fmt.Printf("%-12s %6s\n", "Marking", "Count")
		for _, kind := range sortedKeys(s.Markings) {
			fmt.Printf("%-12s %6d\n", kind, s.Markings[kind])
		}
	}
	for _, g := range s.Lights {
		fmt.Printf("  Lights at (%.0f, %.0f): %d\n", g.Intersection[0], g.Intersection[1], g.Lights)
	}
}

func formatLength(v float64) string {
	if v >= 1_000_000 {
		return fmt.Sprintf("%.2fM", v/1_000_000)
	}
	if v >= 1_000 {
		return fmt.Sprintf("%.1fK", v/1_000)
	}
	return fmt.Sprintf("%.0f", v)
}

func sortedKeys(m map[string]int) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
