package cli

import (
	"context"

	"github.com/AppAudix/scan-action/pkg/cli/config"
	"github.com/AppAudix/scan-action/pkg/domain/model"
	"github.com/AppAudix/scan-action/pkg/infra"
	"github.com/AppAudix/scan-action/pkg/infra/actions"
	"github.com/AppAudix/scan-action/pkg/usecase"
	"github.com/AppAudix/scan-action/pkg/utils/logging"
	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"
)

func runCommand() *cli.Command {
	var (
		appAudix config.AppAudix
		gitHub   config.GitHub
		sentry   config.Sentry
	)

	return &cli.Command{
		Name:    "run",
		Aliases: []string{"r"},
		Usage:   "Upload a mobile binary to AppAudix, wait for the scan and report results",
		Flags:   slice.Flatten(appAudix.Flags(), gitHub.Flags(), sentry.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := sentry.Configure(ctx); err != nil {
				return err
			}

			reqID, ctx := logging.CtxRequestID(ctx)
			ctx = logging.With(ctx, logging.Default().With("request_id", reqID))

			meta, err := gitHub.Metadata()
			if err != nil {
				return err
			}

			// Local runs outside GitHub Actions fall back to the git
			// repository; a failure only disables SARIF forwarding later.
			if err := AutoDetectGitMetadata(ctx, &meta); err != nil {
				logging.From(ctx).Warn("git metadata auto-detection failed", "error", err)
			}

			return runScan(ctx, &appAudix, &gitHub, meta)
		},
	}
}

func runScan(ctx context.Context, appAudix *config.AppAudix, gitHub *config.GitHub, meta model.GitHubMetadata) error {
	logging.From(ctx).Info("Starting AppAudix scan",
		"appaudix", appAudix,
		"github", gitHub,
	)

	scanClient, err := appAudix.NewClient()
	if err != nil {
		return err
	}

	clientOpts := []infra.Option{
		infra.WithScanService(scanClient),
		infra.WithActionOutput(actions.New()),
	}
	if gitHub.HasToken() {
		csClient, err := gitHub.NewClient()
		if err != nil {
			return err
		}
		clientOpts = append(clientOpts, infra.WithCodeScanning(csClient))
	}

	uc := usecase.New(infra.New(clientOpts...))

	return uc.Run(ctx, appAudix.RunInput(meta))
}
