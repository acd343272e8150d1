package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

const (
	benchPackages = "./benchmarks/..."
	resultsDir    = "benchmarks/results"
	baselineFile  = "baseline.txt"
	currentFile   = "current.txt"
)

type BenchCommand struct{}

func (c *BenchCommand) Name() string {
	return "bench"
}

func (c *BenchCommand) Description() string {
	return "Run garden benchmarks (run, save, baseline, compare)"
}

func (c *BenchCommand) Run(args []string) error {
	if len(args) == 0 {
		return c.runAll()
	}

	switch args[0] {
	case "run":
		return c.runAll()
	case "save":
		return c.runAndSave(fmt.Sprintf("%s.txt", time.Now().Format("20060102-150405")), os.Stdout)
	case "baseline":
		return c.runAndSave(baselineFile, os.Stdout)
	case "compare":
		return c.compare()
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}

func (c *BenchCommand) runAll() error {
	PrintHeader("Running garden benchmarks...")
	return runCommandVerbose("go", "test", "-run=^$", "-bench=.", "-benchmem", "-benchtime=2s", benchPackages)
}

func (c *BenchCommand) runAndSave(filename string, echo io.Writer) error {
	PrintHeader("Running benchmarks and saving results...")
	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	path := filepath.Join(resultsDir, filename)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	mw := io.MultiWriter(echo, f)
	cmd := exec.Command("go", "test", "-run=^$", "-bench=.", "-benchmem", "-count=5", benchPackages)
	cmd.Stdout = mw
	cmd.Stderr = mw

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("benchmark execution failed: %w", err)
	}

	PrintSuccess("Results saved to %s", path)
	return nil
}

func (c *BenchCommand) compare() error {
	baseline := filepath.Join(resultsDir, baselineFile)
	if _, err := os.Stat(baseline); os.IsNotExist(err) {
		return fmt.Errorf("no baseline found. Run 'devtool bench baseline' first")
	}

	if err := c.runAndSave(currentFile, io.Discard); err != nil {
		PrintWarning("Some benchmarks failed: %v", err)
	}

	PrintHeader("Comparing to baseline...")
	// benchstat is pinned in tools.go
	return runCommandVerbose("go", "run", "golang.org/x/perf/cmd/benchstat", baseline, filepath.Join(resultsDir, currentFile))
}
