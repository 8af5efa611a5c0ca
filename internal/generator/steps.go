package generator

import (
	"context"
	"fmt"
	"os"

	"github.com/bladeengine/bladegen/internal/engine"
	"github.com/bladeengine/bladegen/internal/platform"
	"github.com/bladeengine/bladegen/internal/relocate"
)

// State is a point in the generation pipeline.
type State int

const (
	StateStart State = iota
	StateDirectoriesCreated
	StateFilesEmitted
	StateDependencyCloned
	StateAssetsRelocated
	StateTempCleaned
	StateDone
)

var stateNames = [...]string{
	StateStart:              "start",
	StateDirectoriesCreated: "directories-created",
	StateFilesEmitted:       "files-emitted",
	StateDependencyCloned:   "dependency-cloned",
	StateAssetsRelocated:    "assets-relocated",
	StateTempCleaned:        "temp-cleaned",
	StateDone:               "done",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Step is one filesystem operation of a generation plan.
type Step interface {
	// Describe returns a one-line human description.
	Describe() string
	// Stage is the pipeline state reached once every step of this stage is done.
	Stage() State
	// Do performs the step.
	Do(ctx context.Context) error
	// Undo reverts a completed step.
	Undo() error
	// failureKind is the Kind reported when Do fails without a more specific cause.
	failureKind() Kind
}

// CreateDir creates a single directory. Its parent must exist and the
// directory itself must not.
type CreateDir struct {
	Path string
}

func (s *CreateDir) Describe() string  { return "create directory " + s.Path }
func (s *CreateDir) Stage() State      { return StateDirectoriesCreated }
func (s *CreateDir) failureKind() Kind { return KindIOFailure }

func (s *CreateDir) Do(context.Context) error {
	if err := os.Mkdir(s.Path, platform.DirPerm); err != nil {
		return fmt.Errorf("creating directory %s: %w", s.Path, err)
	}
	return nil
}

// Undo removes the directory only if it is empty, so content this run did
// not create is never deleted.
func (s *CreateDir) Undo() error {
	return os.Remove(s.Path)
}

// WriteFile creates a new file and writes its content. Creation is
// exclusive: an existing file is an error, never overwritten.
type WriteFile struct {
	Path    string
	Content []byte
}

func (s *WriteFile) Describe() string  { return "write file " + s.Path }
func (s *WriteFile) Stage() State      { return StateFilesEmitted }
func (s *WriteFile) failureKind() Kind { return KindIOFailure }

func (s *WriteFile) Do(context.Context) error {
	f, err := os.OpenFile(s.Path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, platform.FilePerm)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", s.Path, err)
	}
	if _, err := f.Write(s.Content); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", s.Path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", s.Path, err)
	}
	return nil
}

func (s *WriteFile) Undo() error {
	return os.Remove(s.Path)
}

// CloneEngine fetches the engine repository into the temporary clone path.
type CloneEngine struct {
	Fetcher engine.Fetcher
	Request engine.Request
}

func (s *CloneEngine) Describe() string {
	if s.Request.Ref != "" {
		return fmt.Sprintf("clone %s@%s into %s", s.Request.RepoURL, s.Request.Ref, s.Request.Dest)
	}
	return fmt.Sprintf("clone %s into %s", s.Request.RepoURL, s.Request.Dest)
}
func (s *CloneEngine) Stage() State      { return StateDependencyCloned }
func (s *CloneEngine) failureKind() Kind { return KindNetworkFailure }

func (s *CloneEngine) Do(ctx context.Context) error {
	return s.Fetcher.Fetch(ctx, s.Request)
}

func (s *CloneEngine) Undo() error {
	return relocate.RemoveTree(s.Request.Dest)
}

// MoveAsset relocates a path from the clone into the project.
type MoveAsset struct {
	From string
	To   string
}

func (s *MoveAsset) Describe() string  { return fmt.Sprintf("move %s to %s", s.From, s.To) }
func (s *MoveAsset) Stage() State      { return StateAssetsRelocated }
func (s *MoveAsset) failureKind() Kind { return KindIOFailure }

func (s *MoveAsset) Do(context.Context) error {
	return relocate.Move(s.From, s.To)
}

func (s *MoveAsset) Undo() error {
	return relocate.Move(s.To, s.From)
}

// RemoveTemp deletes the temporary clone. It cannot be undone.
type RemoveTemp struct {
	Path string
}

func (s *RemoveTemp) Describe() string  { return "remove temporary clone " + s.Path }
func (s *RemoveTemp) Stage() State      { return StateTempCleaned }
func (s *RemoveTemp) failureKind() Kind { return KindIOFailure }

func (s *RemoveTemp) Do(context.Context) error {
	return relocate.RemoveTree(s.Path)
}

func (s *RemoveTemp) Undo() error { return nil }

// optional marks steps whose failure is reported as a warning instead of
// halting the run.
func (s *RemoveTemp) optional() bool { return true }

type optionalStep interface {
	optional() bool
}
