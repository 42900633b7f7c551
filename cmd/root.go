package main

import (
	"github.com/spf13/cobra"
)

const version = "0.3.0"

var (
	executeMoves bool
	recursive    bool
	verbose      bool
)

func buildRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tagmv [path]",
		Short: "Organize music files by audio tags",
		Long: `tagmv relocates audio files into "Artist - Album" folders derived
from their embedded tags, renaming them by track number and title.
Files whose tags cannot be read go to an _Unsorted folder with their
names unchanged. Destination collisions receive a " (n)" suffix;
nothing is ever overwritten.

By default tagmv previews the planned moves without touching anything.

Examples:
  # Preview what would happen in the current directory
  tagmv

  # Preview a downloads folder, including subdirectories
  tagmv -r ~/Downloads

  # Actually move the files
  tagmv --execute ~/Downloads

Safety:
  Planned destinations are unique across the run and checked against
  files already on disk. A destination that appears between planning
  and execution is reported, never overwritten. Cross-filesystem moves
  are copied, size-verified, and only then is the source removed.`,
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runSort,
	}

	cmd.Flags().BoolVar(&executeMoves, "execute", false, "Actually move files (default is dry-run preview)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Scan subdirectories")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	return cmd
}
