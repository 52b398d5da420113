package config

import (
	"log/slog"

	"github.com/AppAudix/scan-action/pkg/domain/model"
	"github.com/AppAudix/scan-action/pkg/domain/types"
	"github.com/AppAudix/scan-action/pkg/infra/ghcs"
	"github.com/urfave/cli/v3"
)

// GitHub carries the host-platform context of the run. On GitHub Actions all
// values come from the runner environment; on a developer machine the empty
// fields are filled from the local git repository.
type GitHub struct {
	token     types.GitHubToken `masq:"secret"`
	repo      string
	commitSHA string
	ref       string
	apiURL    string
}

func (x *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token with security-events:write for SARIF upload",
			Category:    "GitHub",
			Destination: (*string)(&x.token),
			Sources:     cli.EnvVars("INPUT_GITHUB-TOKEN", "GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-repo",
			Usage:       "Repository in owner/name form",
			Category:    "GitHub",
			Destination: &x.repo,
			Sources:     cli.EnvVars("GITHUB_REPOSITORY"),
		},
		&cli.StringFlag{
			Name:        "github-commit",
			Usage:       "Commit SHA the scan belongs to",
			Category:    "GitHub",
			Destination: &x.commitSHA,
			Sources:     cli.EnvVars("GITHUB_SHA"),
		},
		&cli.StringFlag{
			Name:        "github-ref",
			Usage:       "Fully qualified git ref (e.g. refs/heads/main)",
			Category:    "GitHub",
			Destination: &x.ref,
			Sources:     cli.EnvVars("GITHUB_REF"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub API base URL (GHES)",
			Category:    "GitHub",
			Destination: &x.apiURL,
			Sources:     cli.EnvVars("GITHUB_API_URL"),
		},
	}
}

func (x *GitHub) HasToken() bool {
	return x.token != ""
}

// NewClient builds the code scanning client. Returns an error if no token is
// available.
func (x *GitHub) NewClient() (*ghcs.Client, error) {
	var options []ghcs.Option
	if x.apiURL != "" {
		options = append(options, ghcs.WithBaseURL(x.apiURL))
	}
	return ghcs.New(x.token, options...)
}

// Metadata assembles the commit identity from the configured values. Fields
// left empty here may be filled later by git auto-detection.
func (x *GitHub) Metadata() (model.GitHubMetadata, error) {
	meta := model.GitHubMetadata{
		CommitID: x.commitSHA,
		Ref:      x.ref,
	}
	if x.repo != "" {
		if err := meta.SetRepository(x.repo); err != nil {
			return meta, err
		}
	}
	return meta, nil
}

func (x *GitHub) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("Token.len", len(x.token)),
		slog.String("Repo", x.repo),
		slog.String("CommitSHA", x.commitSHA),
		slog.String("Ref", x.ref),
		slog.String("APIURL", x.apiURL),
	)
}
