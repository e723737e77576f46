// Package gitguard reports whether site pages carry uncommitted changes, so a
// run can avoid overwriting hand edits that are not yet in version control.
package gitguard

import (
	stdErrors "errors"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"

	"git.home.luguber.info/inful/fragsync/internal/foundation/errors"
)

// ErrNotRepository is returned when the site root is not inside a git work tree.
var ErrNotRepository = stdErrors.New("site root is not inside a git repository")

// Guard answers cleanliness queries from a single worktree status snapshot.
type Guard struct {
	siteRoot string
	treeRoot string
	status   git.Status
}

// Open inspects the repository containing siteRoot.
func Open(siteRoot string) (*Guard, error) {
	absRoot, err := filepath.Abs(siteRoot)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve site root").
			WithContext("path", siteRoot).
			Build()
	}

	repo, err := git.PlainOpenWithOptions(absRoot, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if stdErrors.Is(err, git.ErrRepositoryNotExists) {
			return nil, errors.WrapError(ErrNotRepository, errors.CategoryGit, "cannot check for uncommitted changes").
				Fatal().
				WithContext("path", absRoot).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryGit, "failed to open git repository").
			Fatal().
			WithContext("path", absRoot).
			Build()
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryGit, "failed to get git worktree").Fatal().Build()
	}
	status, err := wt.Status()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryGit, "failed to read git status").Fatal().Build()
	}

	treeRoot, err := filepath.EvalSymlinks(wt.Filesystem.Root())
	if err != nil {
		treeRoot = wt.Filesystem.Root()
	}
	if resolved, err := filepath.EvalSymlinks(absRoot); err == nil {
		absRoot = resolved
	}

	return &Guard{siteRoot: absRoot, treeRoot: treeRoot, status: status}, nil
}

// IsClean reports whether rel (relative to the site root) matches the last
// commit. Untracked, modified and staged files are not clean.
func (g *Guard) IsClean(rel string) (bool, error) {
	abs := filepath.Join(g.siteRoot, filepath.FromSlash(rel))
	repoRel, err := filepath.Rel(g.treeRoot, abs)
	if err != nil || strings.HasPrefix(repoRel, "..") {
		return false, errors.NewError(errors.CategoryGit, "path is outside the git worktree").
			WithContext("path", rel).
			Build()
	}

	fs, ok := g.status[filepath.ToSlash(repoRel)]
	if !ok {
		return true, nil
	}
	return fs.Staging == git.Unmodified && fs.Worktree == git.Unmodified, nil
}
