package cli_test

import (
	"context"
	"testing"

	"github.com/AppAudix/scan-action/pkg/cli"
	"github.com/AppAudix/scan-action/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func TestAutoDetectGitMetadata(t *testing.T) {
	ctx := context.Background()

	t.Run("auto-detect from current git repository", func(t *testing.T) {
		meta := model.GitHubMetadata{}
		err := cli.AutoDetectGitMetadata(ctx, &meta)

		if err != nil {
			t.Skipf("Not in a git repository: %v", err)
		}

		gt.V(t, meta.Owner).NotEqual("")
		gt.V(t, meta.RepoName).NotEqual("")
		gt.V(t, meta.CommitID).NotEqual("")
	})

	t.Run("preserve existing metadata", func(t *testing.T) {
		meta := model.GitHubMetadata{
			Owner:    "custom-owner",
			RepoName: "custom-repo",
			CommitID: "custom-commit",
			Ref:      "refs/heads/custom",
		}
		gt.NoError(t, cli.AutoDetectGitMetadata(ctx, &meta))

		gt.V(t, meta.Owner).Equal("custom-owner")
		gt.V(t, meta.RepoName).Equal("custom-repo")
		gt.V(t, meta.CommitID).Equal("custom-commit")
		gt.V(t, meta.Ref).Equal("refs/heads/custom")
	})
}
