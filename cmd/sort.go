package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tagmv/pkg/scanner"
	"tagmv/pkg/sorter"
)

func runSort(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	target := "."
	if len(args) == 1 {
		target = args[0]
	}

	rootDir, err := validateAndResolvePath(target)
	if err != nil {
		return err
	}

	configureLogging()

	mode := "DRY RUN (use --execute to move files)"
	if executeMoves {
		mode = "EXECUTING"
	}

	fmt.Printf("tagmv v%s -- %s\n\n", version, color.New(color.Bold).Sprint(mode))
	fmt.Printf("Scanning: %s\n", color.New(color.Faint).Sprint(rootDir))

	files, err := scanner.New(scanner.Options{Recursive: recursive}).Scan(rootDir)
	if err != nil {
		return fmt.Errorf("failed to scan directory: %w", err)
	}

	fmt.Printf("Found %s audio files\n\n", color.New(color.Bold).Sprint(len(files)))

	if len(files) == 0 {
		return nil
	}

	s, err := sorter.New(rootDir, sorter.Options{
		DryRun:     !executeMoves,
		OnProgress: progressLogger(),
	})
	if err != nil {
		return fmt.Errorf("failed to create sorter: %w", err)
	}

	moves := s.Plan(files)

	printPreview(moves)
	printPlanSummary(moves)

	if !executeMoves {
		return nil
	}

	fmt.Println()
	result := s.Execute(moves)

	for _, op := range result.Operations {
		if op.Error != nil {
			log.Errorf("%s -> %s: %v", op.Source, op.Dest, op.Error)
		}
	}

	printExecuteSummary(result)

	return nil
}

// validateAndResolvePath canonicalizes targetDir and verifies it is an
// existing directory.
func validateAndResolvePath(targetDir string) (string, error) {
	absPath, err := filepath.Abs(targetDir)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path: %w", err)
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", fmt.Errorf("cannot access directory: %w", err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", targetDir)
	}

	return resolved, nil
}

func configureLogging() {
	log.SetOutput(os.Stderr)
	log.SetLevel(log.InfoLevel)
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

func progressLogger() sorter.ProgressCallback {
	if !verbose {
		return nil
	}

	return func(stage string, processed, total int) {
		log.Debugf("%s %d/%d", stage, processed, total)
	}
}
