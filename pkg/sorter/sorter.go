// Package sorter orchestrates a sort run: it plans destinations for a
// batch of audio files, resolves destination conflicts across the
// whole batch, and then executes the moves in batch order. Resolution
// fully completes before any move executes, so execution-time races are
// only against external processes and are caught by the mover's
// pre-move existence check.
package sorter

import (
	"fmt"

	"tagmv/pkg/mover"
	"tagmv/pkg/planner"
	"tagmv/pkg/safepath"
	"tagmv/pkg/tags"
)

// TagReader extracts metadata from an audio file, returning nil when
// no usable metadata is available.
type TagReader func(path string) *tags.TrackMetadata

// ProgressCallback receives per-stage progress updates.
type ProgressCallback func(stage string, processed, total int)

// MoveOperation records the outcome of one planned move.
type MoveOperation struct {
	Source     string
	Dest       string
	FolderName string
	FileName   string
	Unsorted   bool // destination is the _Unsorted folder
	Skipped    bool // already in place
	Error      error
}

// Result contains the results of executing a batch.
type Result struct {
	Operations    []MoveOperation
	TotalFiles    int
	MovedCount    int
	UnsortedCount int
	SkippedCount  int
	ErrorCount    int
}

// Options configures a Sorter.
type Options struct {
	// DryRun plans and reports without mutating the filesystem.
	DryRun bool
	// ReadTags overrides the tag reader; defaults to tags.ReadTags.
	ReadTags TagReader
	// OnProgress receives stage progress; may be nil.
	OnProgress ProgressCallback
}

// Sorter plans and executes sort runs against one sort root.
type Sorter struct {
	dryRun     bool
	readTags   TagReader
	onProgress ProgressCallback
	validator  *safepath.Validator
}

// New creates a Sorter for baseDir, which must be an existing
// directory.
func New(baseDir string, opts Options) (*Sorter, error) {
	v, err := safepath.New(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	readTags := opts.ReadTags
	if readTags == nil {
		readTags = tags.ReadTags
	}

	return &Sorter{
		dryRun:     opts.DryRun,
		readTags:   readTags,
		onProgress: opts.OnProgress,
		validator:  v,
	}, nil
}

// Root returns the sort root directory.
func (s *Sorter) Root() string {
	return s.validator.Root()
}

// DryRun returns whether the sorter is in dry-run mode.
func (s *Sorter) DryRun() bool {
	return s.dryRun
}

// Plan maps each file to a planned move and resolves destination
// conflicts across the whole batch. Files whose metadata cannot be
// read are routed to the _Unsorted folder. The returned moves preserve
// the input order; callers must execute them in that order.
func (s *Sorter) Plan(files []string) []planner.PlannedMove {
	moves := make([]planner.PlannedMove, 0, len(files))

	for i, file := range files {
		if meta := s.readTags(file); meta != nil {
			moves = append(moves, planner.ComputeDestination(s.Root(), file, meta))
		} else {
			moves = append(moves, planner.ComputeUnsortedDestination(s.Root(), file))
		}
		s.emit("plan", i+1, len(files))
	}

	planner.ResolveConflicts(moves)

	return moves
}

// Execute performs the resolved moves in batch order, continuing past
// individual failures. In dry-run mode no filesystem mutation happens
// and every non-skipped entry is counted as it would be on success.
func (s *Sorter) Execute(moves []planner.PlannedMove) Result {
	result := Result{
		TotalFiles: len(moves),
		Operations: make([]MoveOperation, 0, len(moves)),
	}

	for i := range moves {
		op := s.executeOne(&moves[i])
		result.Operations = append(result.Operations, op)

		switch {
		case op.Error != nil:
			result.ErrorCount++
		case op.Skipped:
			result.SkippedCount++
		case op.Unsorted:
			result.UnsortedCount++
		default:
			result.MovedCount++
		}

		s.emit("move", i+1, len(moves))
	}

	return result
}

func (s *Sorter) executeOne(m *planner.PlannedMove) MoveOperation {
	op := MoveOperation{
		Source:     m.Source,
		Dest:       m.Dest,
		FolderName: m.FolderName,
		FileName:   m.FileName,
		Unsorted:   m.FolderName == planner.UnsortedFolder,
	}

	if m.InPlace() {
		op.Skipped = true
		return op
	}

	if err := s.validator.ValidatePath(m.Dest); err != nil {
		op.Error = fmt.Errorf("destination escapes sort root: %w", err)
		return op
	}

	if s.dryRun {
		return op
	}

	if err := mover.ExecuteMove(m); err != nil {
		op.Error = err
	}

	return op
}

func (s *Sorter) emit(stage string, processed, total int) {
	if s.onProgress == nil || total <= 0 {
		return
	}

	if processed < 0 {
		processed = 0
	}
	if processed > total {
		processed = total
	}

	s.onProgress(stage, processed, total)
}
