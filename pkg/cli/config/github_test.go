package config_test

import (
	"context"
	"testing"

	"github.com/AppAudix/scan-action/pkg/cli/config"
	"github.com/AppAudix/scan-action/pkg/domain/model"
	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"
)

func testMetadata() model.GitHubMetadata {
	return model.GitHubMetadata{
		Owner:    "app-audix",
		RepoName: "demo-app",
		CommitID: "4f2d9c1a3b5e7f8091a2b3c4d5e6f708192a3b4c",
		Ref:      "refs/heads/main",
	}
}

func parseGitHubFlags(t *testing.T, args ...string) *config.GitHub {
	t.Helper()

	cfg := &config.GitHub{}
	cmd := &cli.Command{
		Name:  "test",
		Flags: cfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			return nil
		},
	}

	gt.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
	return cfg
}

func TestGitHubMetadata(t *testing.T) {
	cfg := parseGitHubFlags(t,
		"--github-repo", "app-audix/demo-app",
		"--github-commit", "4f2d9c1a3b5e7f8091a2b3c4d5e6f708192a3b4c",
		"--github-ref", "refs/heads/main",
	)

	meta := gt.R1(cfg.Metadata()).NoError(t)
	gt.V(t, meta).Equal(testMetadata())
}

func TestGitHubMetadataInvalidRepo(t *testing.T) {
	cfg := parseGitHubFlags(t, "--github-repo", "not-a-repo")

	_, err := cfg.Metadata()
	gt.Error(t, err)
}

func TestGitHubHasToken(t *testing.T) {
	gt.False(t, parseGitHubFlags(t).HasToken())
	gt.True(t, parseGitHubFlags(t, "--github-token", "ghp_dummy").HasToken())
}
