package manifest

import (
	"github.com/go-git/go-git/v5"
)

// DetectRevision returns the HEAD commit of the git repository containing
// dir, searching parent directories. It returns "" outside a repository or
// before the first commit.
func DetectRevision(dir string) string {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	ref, err := repo.Head()
	if err != nil {
		return ""
	}
	return ref.Hash().String()
}
