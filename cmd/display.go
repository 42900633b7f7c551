package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/fatih/color"

	"tagmv/pkg/planner"
	"tagmv/pkg/sorter"
)

// groupByFolder groups moves by destination folder and returns the
// folder names in sorted order for stable display.
func groupByFolder(moves []planner.PlannedMove) ([]string, map[string][]*planner.PlannedMove) {
	byFolder := make(map[string][]*planner.PlannedMove)
	for i := range moves {
		m := &moves[i]
		byFolder[m.FolderName] = append(byFolder[m.FolderName], m)
	}

	folders := make([]string, 0, len(byFolder))
	for folder := range byFolder {
		folders = append(folders, folder)
	}
	sort.Strings(folders)

	return folders, byFolder
}

func printPreview(moves []planner.PlannedMove) {
	folders, byFolder := groupByFolder(moves)

	folderColor := color.New(color.FgYellow, color.Bold)
	unsortedColor := color.New(color.FgRed, color.Bold)
	fileColor := color.New(color.FgGreen)
	faint := color.New(color.Faint)

	for _, folder := range folders {
		if folder == planner.UnsortedFolder {
			unsortedColor.Printf("  %s\n", folder)
		} else {
			folderColor.Printf("  %s/\n", folder)
		}

		for _, m := range byFolder[folder] {
			if m.InPlace() {
				fmt.Printf("    %s  %s\n",
					faint.Sprint(m.FileName),
					faint.Sprint("(already in place)"))
				continue
			}

			fmt.Printf("    %s  %s %s\n",
				fileColor.Sprint(m.FileName),
				faint.Sprint("<-"),
				faint.Sprint(filepath.Base(m.Source)))
		}

		fmt.Println()
	}
}

func printPlanSummary(moves []planner.PlannedMove) {
	var moveCount, unsortedCount, skippedCount int
	folderSet := make(map[string]struct{})

	for i := range moves {
		m := &moves[i]
		if m.FolderName != planner.UnsortedFolder {
			folderSet[m.FolderName] = struct{}{}
		}

		switch {
		case m.InPlace():
			skippedCount++
		case m.FolderName == planner.UnsortedFolder:
			unsortedCount++
		default:
			moveCount++
		}
	}

	suffix := ""
	if skippedCount > 0 {
		suffix = fmt.Sprintf(", %d already in place", skippedCount)
	}

	fmt.Printf("Summary: %d files -> %d folders, %d unsorted%s\n",
		len(moves), len(folderSet), unsortedCount, suffix)
}

func printExecuteSummary(result sorter.Result) {
	suffix := ""
	if result.ErrorCount > 0 {
		suffix = fmt.Sprintf(", %d errors", result.ErrorCount)
	}

	fmt.Printf("Moved %d files successfully%s\n",
		result.MovedCount+result.UnsortedCount, suffix)
}
