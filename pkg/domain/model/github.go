package model

import (
	"strings"

	"github.com/AppAudix/scan-action/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// GitHubMetadata identifies the commit a scan belongs to. It is filled from
// GitHub Actions environment variables or detected from the local git
// repository.
type GitHubMetadata struct {
	Owner    string
	RepoName string
	CommitID string
	Ref      string
}

func (x *GitHubMetadata) Validate() error {
	if x.Owner == "" || x.RepoName == "" {
		return goerr.Wrap(types.ErrInvalidConfig, "GitHub repository is not identified",
			goerr.V("owner", x.Owner), goerr.V("repo", x.RepoName))
	}
	if x.CommitID == "" {
		return goerr.Wrap(types.ErrInvalidConfig, "commit ID is empty")
	}
	return nil
}

// SetRepository splits an owner/name pair as provided by GITHUB_REPOSITORY.
func (x *GitHubMetadata) SetRepository(ownerRepo string) error {
	parts := strings.SplitN(ownerRepo, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return goerr.Wrap(types.ErrInvalidConfig, "repository must be owner/name", goerr.V("value", ownerRepo))
	}
	x.Owner = parts[0]
	x.RepoName = parts[1]
	return nil
}
