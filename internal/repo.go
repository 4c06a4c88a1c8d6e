package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	DefaultAuthor = "ogit"
	DefaultEmail  = "ogit@local"
)

var ErrNoRepository = errors.New("not a git repository")

// Repository wraps a git repository rooted at the working directory and
// exposes the few operations the commit workflow needs.
type Repository struct {
	repo     *git.Repository
	worktree *git.Worktree
	rootPath string

	// signature overrides, empty means resolve from git config
	authorName  string
	authorEmail string
}

func OpenRepository(dir string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("%w: %s", ErrNoRepository, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("get worktree: %w", err)
	}

	return &Repository{
		repo:     repo,
		worktree: worktree,
		rootPath: worktree.Filesystem.Root(),
	}, nil
}

// SetAuthor overrides the commit signature resolved from git config.
func (r *Repository) SetAuthor(name, email string) {
	r.authorName = name
	r.authorEmail = email
}

func (r *Repository) Root() string { return r.rootPath }

func (r *Repository) HasChanges() (bool, error) {
	status, err := r.worktree.Status()
	if err != nil {
		return false, fmt.Errorf("get status: %w", err)
	}
	return !status.IsClean(), nil
}

// StageAll stages every working tree change, including deletions and
// untracked files.
func (r *Repository) StageAll() error {
	if err := r.worktree.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("stage changes: %w", err)
	}
	return nil
}

// Commit creates a commit from the staged changes and returns its short hash.
func (r *Repository) Commit(ctx context.Context, message string) (string, error) {
	hash, err := r.worktree.Commit(message, &git.CommitOptions{
		Author: r.signature(),
	})
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return hash.String()[:7], nil
}

// Push pushes the current branch to the named remote. An already up-to-date
// remote is treated as success; any other failure is returned as-is, the
// commit stays in place.
func (r *Repository) Push(ctx context.Context, remote string) error {
	err := r.repo.PushContext(ctx, &git.PushOptions{RemoteName: remote})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("push to %s: %w", remote, err)
	}
	return nil
}

func (r *Repository) signature() *object.Signature {
	name, email := r.authorName, r.authorEmail
	if name == "" || email == "" {
		if cfg, err := r.repo.ConfigScoped(gitconfig.GlobalScope); err == nil {
			if name == "" {
				name = cfg.User.Name
			}
			if email == "" {
				email = cfg.User.Email
			}
		}
	}
	if name == "" {
		name = DefaultAuthor
	}
	if email == "" {
		email = DefaultEmail
	}
	return &object.Signature{Name: name, Email: email, When: time.Now()}
}

// DiffPreview renders the pending worktree changes against HEAD, one block
// per file. On an unborn branch every file is shown as an addition.
func (r *Repository) DiffPreview(ctx context.Context) (string, error) {
	status, err := r.worktree.Status()
	if err != nil {
		return "", fmt.Errorf("get status: %w", err)
	}
	if status.IsClean() {
		return "", nil
	}

	headFiles := map[string]string{}
	if head, err := r.repo.Head(); err == nil {
		commit, err := r.repo.CommitObject(head.Hash())
		if err != nil {
			return "", fmt.Errorf("get HEAD commit: %w", err)
		}
		tree, err := commit.Tree()
		if err != nil {
			return "", fmt.Errorf("get HEAD tree: %w", err)
		}
		for path := range status {
			if f, err := tree.File(path); err == nil {
				if content, err := f.Contents(); err == nil {
					headFiles[path] = content
				}
			}
		}
	}

	paths := make([]string, 0, len(status))
	for path := range status {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	dmp := diffmatchpatch.New()
	var buf strings.Builder

	for _, path := range paths {
		old := headFiles[path]
		var current string
		if data, err := os.ReadFile(filepath.Join(r.rootPath, path)); err == nil {
			current = string(data)
		}
		if old == current {
			continue
		}

		diffs := dmp.DiffMain(old, current, false)
		diffs = dmp.DiffCleanupSemantic(diffs)

		rendered := dmp.DiffPrettyText(diffs)
		fmt.Fprintf(&buf, "--- %s\n", path)
		buf.WriteString(rendered)
		if !strings.HasSuffix(rendered, "\n") {
			buf.WriteString("\n")
		}
	}

	return buf.String(), nil
}
