package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

const SkipCIMarker = "[skip ci]"

const workflowsDir = ".github/workflows"

var ErrConflictingCI = errors.New("--ci and --no-ci are mutually exclusive")

// VcsClient is the version control capability the workflow depends on.
// Repository is the production implementation.
type VcsClient interface {
	HasChanges() (bool, error)
	StageAll() error
	Commit(ctx context.Context, message string) (string, error)
	Push(ctx context.Context, remote string) error
	DiffPreview(ctx context.Context) (string, error)
}

// Options carries one invocation's inputs. Fields left at their zero value
// are filled interactively.
type Options struct {
	Message   string
	Push      bool
	Remote    string
	RemoteSet bool // remote given on the command line, skip the prompt
	CI        bool
	NoCI      bool
	AssumeYes bool
	ShowDiff  bool
}

// Workflow runs the commit sequence: fill missing inputs, update the
// development logs, stage, commit, and optionally push.
type Workflow struct {
	vcs      VcsClient
	journal  *Journal
	prompter *Prompter
	logger   *log.Logger
	out      io.Writer
	root     string
}

func NewWorkflow(vcs VcsClient, journal *Journal, prompter *Prompter, logger *log.Logger, out io.Writer, root string) *Workflow {
	return &Workflow{
		vcs:      vcs,
		journal:  journal,
		prompter: prompter,
		logger:   logger,
		out:      out,
		root:     root,
	}
}

func (w *Workflow) Run(ctx context.Context, opts Options) error {
	if opts.CI && opts.NoCI {
		return ErrConflictingCI
	}

	message := opts.Message
	if message == "" {
		var err error
		message, err = w.prompter.CommitMessage()
		if err != nil {
			return fmt.Errorf("get commit message: %w", err)
		}
	}

	hasWorkflows := w.hasWorkflows()
	if hasWorkflows {
		w.logger.Info("CI workflow configuration detected")
	}

	push := opts.Push
	if !push {
		var err error
		push, err = w.prompter.Confirm("Push to remote repository?", false)
		if err != nil {
			return fmt.Errorf("confirm push: %w", err)
		}
	}

	remote := opts.Remote
	if remote == "" {
		remote = DefaultRemote
	}
	if push && !opts.RemoteSet {
		var err error
		remote, err = w.prompter.String("Remote name", remote)
		if err != nil {
			return fmt.Errorf("get remote name: %w", err)
		}
	}

	ciEnabled, err := w.resolveCI(opts, push, hasWorkflows)
	if err != nil {
		return err
	}

	finalMessage := message
	if !ciEnabled && (hasWorkflows || opts.NoCI) {
		finalMessage = message + " " + SkipCIMarker
	}

	fmt.Fprint(w.out, Overview{
		Message:      finalMessage,
		Push:         push,
		Remote:       remote,
		CIEnabled:    ciEnabled,
		HasWorkflows: hasWorkflows,
	}.Render())

	if opts.ShowDiff {
		preview, err := w.vcs.DiffPreview(ctx)
		if err != nil {
			w.logger.Warn("could not render change preview", "err", err)
		} else if preview != "" {
			fmt.Fprintln(w.out)
			fmt.Fprint(w.out, preview)
		}
	}

	if !opts.AssumeYes {
		ok, err := w.prompter.Confirm("Proceed with these settings?", true)
		if err != nil {
			return fmt.Errorf("confirm settings: %w", err)
		}
		if !ok {
			w.logger.Info("operation cancelled")
			return nil
		}
	}

	// Logging is best effort, a failed journal never blocks the commit.
	if err := w.journal.Record(finalMessage); err != nil {
		w.logger.Warn("could not update development logs", "err", err)
	}

	changed, err := w.vcs.HasChanges()
	if err != nil {
		return err
	}
	if !changed {
		w.logger.Info("nothing to commit")
		return nil
	}

	if err := w.vcs.StageAll(); err != nil {
		return err
	}

	hash, err := w.vcs.Commit(ctx, finalMessage)
	if err != nil {
		return err
	}
	w.logger.Info("committed", "hash", hash)

	if !push {
		return nil
	}

	w.logger.Info("pushing", "remote", remote)
	if err := w.vcs.Push(ctx, remote); err != nil {
		// The commit is already in place, only the push failed.
		return err
	}
	w.logger.Info("pushed", "remote", remote)

	return nil
}

// resolveCI decides whether the commit should trigger CI. Explicit flags win,
// otherwise the presence of workflow configuration drives an interactive
// question when pushing.
func (w *Workflow) resolveCI(opts Options, push, hasWorkflows bool) (bool, error) {
	switch {
	case opts.NoCI:
		return false, nil
	case opts.CI:
		return true, nil
	case hasWorkflows && push:
		ok, err := w.prompter.Confirm("Run CI build?", false)
		if err != nil {
			return false, fmt.Errorf("confirm CI build: %w", err)
		}
		return ok, nil
	case !hasWorkflows:
		// No workflows, a skip marker would be noise.
		return true, nil
	default:
		return false, nil
	}
}

func (w *Workflow) hasWorkflows() bool {
	info, err := os.Stat(filepath.Join(w.root, workflowsDir))
	return err == nil && info.IsDir()
}
