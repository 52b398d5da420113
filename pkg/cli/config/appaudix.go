package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/AppAudix/scan-action/pkg/domain/model"
	"github.com/AppAudix/scan-action/pkg/domain/types"
	"github.com/AppAudix/scan-action/pkg/infra/appaudix"
	"github.com/urfave/cli/v3"
)

const DefaultAPIURL = "https://api.appaudix.io"

// AppAudix bundles the scan inputs. GitHub Actions passes action inputs as
// INPUT_* environment variables, so every flag can also be sourced there.
type AppAudix struct {
	apiKey            types.APIKey `masq:"secret"`
	apiURL            string
	file              string
	frameworks        string
	failOn            string
	uploadSARIF       bool
	waitForCompletion bool
	timeoutMinutes    int64
	pollInterval      time.Duration
}

func (x *AppAudix) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "api-key",
			Usage:       "AppAudix API key",
			Category:    "AppAudix",
			Destination: (*string)(&x.apiKey),
			Sources:     cli.EnvVars("INPUT_API-KEY", "APPAUDIX_API_KEY"),
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "api-url",
			Usage:       "AppAudix API base URL",
			Category:    "AppAudix",
			Destination: &x.apiURL,
			Sources:     cli.EnvVars("INPUT_API-URL", "APPAUDIX_API_URL"),
			Value:       DefaultAPIURL,
		},
		&cli.StringFlag{
			Name:        "file",
			Usage:       "Path to the mobile application binary (APK/AAB/IPA)",
			Category:    "AppAudix",
			Destination: &x.file,
			Sources:     cli.EnvVars("INPUT_FILE", "APPAUDIX_FILE"),
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "frameworks",
			Usage:       "Comma-separated compliance frameworks to evaluate",
			Category:    "AppAudix",
			Destination: &x.frameworks,
			Sources:     cli.EnvVars("INPUT_FRAMEWORKS", "APPAUDIX_FRAMEWORKS"),
			Value:       "pci_dss",
		},
		&cli.StringFlag{
			Name:        "fail-on",
			Usage:       "Lowest issue severity that fails the run [critical|high|medium|low|none]",
			Category:    "AppAudix",
			Destination: &x.failOn,
			Sources:     cli.EnvVars("INPUT_FAIL-ON", "APPAUDIX_FAIL_ON"),
			Value:       string(types.SeverityCritical),
		},
		&cli.BoolFlag{
			Name:        "upload-sarif",
			Usage:       "Forward the SARIF report to GitHub code scanning",
			Category:    "AppAudix",
			Destination: &x.uploadSARIF,
			Sources:     cli.EnvVars("INPUT_UPLOAD-SARIF", "APPAUDIX_UPLOAD_SARIF"),
			Value:       true,
		},
		&cli.BoolFlag{
			Name:        "wait-for-completion",
			Usage:       "Wait until the scan reaches a terminal status",
			Category:    "AppAudix",
			Destination: &x.waitForCompletion,
			Sources:     cli.EnvVars("INPUT_WAIT-FOR-COMPLETION", "APPAUDIX_WAIT_FOR_COMPLETION"),
			Value:       true,
		},
		&cli.Int64Flag{
			Name:        "timeout-minutes",
			Usage:       "Wall-clock budget for scan completion",
			Category:    "AppAudix",
			Destination: &x.timeoutMinutes,
			Sources:     cli.EnvVars("INPUT_TIMEOUT-MINUTES", "APPAUDIX_TIMEOUT_MINUTES"),
			Value:       30,
		},
		&cli.DurationFlag{
			Name:        "poll-interval",
			Usage:       "Delay between scan status queries",
			Category:    "AppAudix",
			Destination: &x.pollInterval,
			Sources:     cli.EnvVars("APPAUDIX_POLL_INTERVAL"),
			Value:       15 * time.Second,
		},
	}
}

// Frameworks splits the comma-separated list; empty entries are dropped,
// duplicates are kept as given.
func (x *AppAudix) Frameworks() []types.Framework {
	var frameworks []types.Framework
	for _, fw := range strings.Split(x.frameworks, ",") {
		fw = strings.TrimSpace(fw)
		if fw != "" {
			frameworks = append(frameworks, types.Framework(fw))
		}
	}
	return frameworks
}

func (x *AppAudix) FailOn() (types.Severity, bool) {
	return types.ParseSeverity(x.failOn)
}

func (x *AppAudix) File() string {
	return x.file
}

func (x *AppAudix) UploadSARIF() bool {
	return x.uploadSARIF
}

func (x *AppAudix) WaitForCompletion() bool {
	return x.waitForCompletion
}

func (x *AppAudix) Timeout() time.Duration {
	return time.Duration(x.timeoutMinutes) * time.Minute
}

func (x *AppAudix) PollInterval() time.Duration {
	return x.pollInterval
}

func (x *AppAudix) NewClient() (*appaudix.Client, error) {
	return appaudix.New(x.apiURL, x.apiKey)
}

// RunInput builds the workflow input. Binary and threshold validation happens
// in RunInput.Validate, not here.
func (x *AppAudix) RunInput(meta model.GitHubMetadata) *model.RunInput {
	failOn, _ := types.ParseSeverity(x.failOn)

	return &model.RunInput{
		Request: model.ScanRequest{
			BinaryPath: x.file,
			Frameworks: x.Frameworks(),
		},
		GitHub:            meta,
		FailOn:            failOn,
		UploadSARIF:       x.uploadSARIF,
		WaitForCompletion: x.waitForCompletion,
		Timeout:           x.Timeout(),
		PollInterval:      x.pollInterval,
	}
}

func (x *AppAudix) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("APIKey.len", len(x.apiKey)),
		slog.String("APIURL", x.apiURL),
		slog.String("File", x.file),
		slog.String("Frameworks", x.frameworks),
		slog.String("FailOn", x.failOn),
		slog.Bool("UploadSARIF", x.uploadSARIF),
		slog.Bool("WaitForCompletion", x.waitForCompletion),
		slog.Int64("TimeoutMinutes", x.timeoutMinutes),
		slog.Duration("PollInterval", x.pollInterval),
	)
}
