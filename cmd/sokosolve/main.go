// Command sokosolve reads a single XSB level from a file or stdin, runs
// the push solver against it, and prints the resulting action sequence
// or the search error.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"github.com/sokoban-engine/core/level"
	"github.com/sokoban-engine/core/solver"
)

func main() {
	_ = godotenv.Load()

	strategyName := flag.String("strategy", envOr("SOKOSOLVE_STRATEGY", "fast"), "search strategy: fast, mixed, or optimal-pushes")
	algorithm := flag.String("algorithm", envOr("SOKOSOLVE_ALGORITHM", "astar"), "search algorithm: astar or idastar")
	iterations := flag.Int("max-iterations", envIntOr("SOKOSOLVE_MAX_ITERATIONS", 0), "terminate after this many node expansions (0 disables)")
	duration := flag.Duration("max-duration", envDurationOr("SOKOSOLVE_MAX_DURATION", 0), "terminate after this much wall-clock time (0 disables; ignored when -max-iterations is set)")
	path := flag.String("level", "", "path to an XSB level file; reads stdin if omitted")
	flag.Parse()

	strategy, err := parseStrategy(*strategyName)
	if err != nil {
		log.Fatal(err)
	}

	text, err := readLevel(*path)
	if err != nil {
		log.Fatal(err)
	}
	lvl, err := level.FromStr(text)
	if err != nil {
		log.Fatal(err)
	}

	s := solver.New(lvl.Map(), strategy)
	if *iterations > 0 {
		s = s.WithTerminator(solver.Iterations(*iterations))
	} else if *duration > 0 {
		s = s.WithTerminator(solver.Duration(*duration))
	}

	player, ok := lvl.Map().PlayerPosition()
	if !ok {
		log.Fatal("level has no player")
	}
	boxes := lvl.Map().BoxPositions()

	start := time.Now()
	var result solver.Result
	switch *algorithm {
	case "idastar":
		result, err = s.IDAStarSearch(player, boxes)
	default:
		result, err = s.AStarSearch(player, boxes)
	}
	elapsed := time.Since(start)
	if err != nil {
		log.Fatal(err)
	}

	if err := lvl.DoActions(result.Directions); err != nil {
		log.Fatal(err)
	}
	rate := float64(result.Expanded) / elapsed.Seconds()
	slog.Info("search complete", "algorithm", *algorithm, "strategy", strategy, "pushes", len(result.Directions), "expanded", result.Expanded)
	fmt.Printf("solved in %d pushes, expanded %s nodes in %s (%s nodes/sec)\n",
		len(result.Directions), humanize.Comma(int64(result.Expanded)), elapsed, humanize.Comma(int64(rate)))
	for _, d := range result.Directions {
		fmt.Printf("%s\n", d)
	}
}

func parseStrategy(name string) (solver.Strategy, error) {
	switch name {
	case "fast":
		return solver.Fast, nil
	case "mixed":
		return solver.Mixed, nil
	case "optimal-pushes":
		return solver.OptimalPushes, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q", name)
	}
}

func readLevel(path string) (string, error) {
	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var n int
	if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
		return fallback
	}
	return n
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
