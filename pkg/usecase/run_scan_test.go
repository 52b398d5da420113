package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/AppAudix/scan-action/pkg/domain/interfaces"
	"github.com/AppAudix/scan-action/pkg/domain/model"
	"github.com/AppAudix/scan-action/pkg/domain/types"
	"github.com/AppAudix/scan-action/pkg/infra"
	"github.com/AppAudix/scan-action/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func testRunInput(t *testing.T) *model.RunInput {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.apk")
	gt.NoError(t, os.WriteFile(path, []byte("dummy-apk"), 0644))

	return &model.RunInput{
		Request: model.ScanRequest{
			BinaryPath: path,
			Frameworks: []types.Framework{"pci_dss"},
		},
		GitHub: model.GitHubMetadata{
			Owner:    "app-audix",
			RepoName: "demo-app",
			CommitID: "0123456789abcdef0123456789abcdef01234567",
			Ref:      "refs/heads/main",
		},
		FailOn:            types.SeverityCritical,
		UploadSARIF:       true,
		WaitForCompletion: true,
		Timeout:           time.Minute,
		PollInterval:      time.Millisecond,
	}
}

func completedSnapshot(results *model.ScanResults) *model.StatusSnapshot {
	return &model.StatusSnapshot{
		Status:   types.ScanStatusCompleted,
		Progress: 100,
		Results:  results,
	}
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("full workflow publishes outputs and forwards SARIF", func(t *testing.T) {
		var submitted *model.ScanRequest
		var uploaded *interfaces.UploadSARIFInput

		scanMock := &scanServiceMock{
			mockSubmit: func(ctx context.Context, req *model.ScanRequest) (types.ScanID, error) {
				submitted = req
				return "scan-123", nil
			},
			mockGetStatus: func(ctx context.Context, scanID types.ScanID) (*model.StatusSnapshot, error) {
				gt.V(t, scanID).Equal(types.ScanID("scan-123"))
				return completedSnapshot(&model.ScanResults{
					ComplianceScore: 91,
					RiskLevel:       "LOW",
					High:            3,
					Medium:          9,
					Low:             2,
				}), nil
			},
			mockFetchReport: func(ctx context.Context, scanID types.ScanID, format string) ([]byte, error) {
				gt.V(t, format).Equal("sarif")
				return []byte(`{"version":"2.1.0","runs":[]}`), nil
			},
		}
		csMock := &codeScanningMock{
			mockUpload: func(ctx context.Context, input *interfaces.UploadSARIFInput) error {
				uploaded = input
				return nil
			},
		}
		out := newActionOutputMock()

		uc := usecase.New(infra.New(
			infra.WithScanService(scanMock),
			infra.WithCodeScanning(csMock),
			infra.WithActionOutput(out),
		))

		input := testRunInput(t)
		gt.NoError(t, uc.Run(ctx, input))

		gt.V(t, submitted.Frameworks).Equal([]types.Framework{"pci_dss"})

		gt.V(t, out.outputs["scan-id"]).Equal("scan-123")
		gt.V(t, out.outputs["status"]).Equal("completed")
		gt.V(t, out.outputs["compliance-score"]).Equal("91")
		gt.V(t, out.outputs["risk-level"]).Equal("LOW")
		gt.V(t, out.outputs["critical-count"]).Equal("0")
		gt.V(t, out.outputs["high-count"]).Equal("3")
		gt.V(t, out.outputs["medium-count"]).Equal("9")
		gt.V(t, out.outputs["low-count"]).Equal("2")
		gt.V(t, out.outputs["report-url"]).Equal("https://api.example.com/v2/scans/scan-123/report")
		gt.V(t, out.outputs["sarif-file"]).NotEqual("")

		gt.V(t, uploaded.ToolName).Equal(usecase.ToolName)
		gt.V(t, uploaded.Meta.Owner).Equal("app-audix")
		gt.V(t, len(out.summaries)).Equal(1)
		gt.S(t, out.summaries[0]).Contains("scan-123")
		gt.V(t, len(out.notices)).Equal(1)

		// fail-on critical with zero criticals passes
		gt.V(t, len(out.warnings)).Equal(0)

		// cleanup temp SARIF file
		gt.NoError(t, os.Remove(out.outputs["sarif-file"]))
	})

	t.Run("threshold exceeded fails the run after outputs", func(t *testing.T) {
		scanMock := &scanServiceMock{
			mockSubmit: func(ctx context.Context, req *model.ScanRequest) (types.ScanID, error) {
				return "scan-123", nil
			},
			mockGetStatus: func(ctx context.Context, scanID types.ScanID) (*model.StatusSnapshot, error) {
				return completedSnapshot(&model.ScanResults{
					RiskLevel: "HIGH",
					High:      2,
					Medium:    5,
					Low:       1,
				}), nil
			},
		}
		out := newActionOutputMock()

		uc := usecase.New(infra.New(
			infra.WithScanService(scanMock),
			infra.WithActionOutput(out),
		))

		input := testRunInput(t)
		input.FailOn = types.SeverityHigh
		input.UploadSARIF = false

		err := uc.Run(ctx, input)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrThresholdExceeded))

		// Outputs are published before the verdict
		gt.V(t, out.outputs["high-count"]).Equal("2")
	})

	t.Run("scan ended in error is a hard failure", func(t *testing.T) {
		scanMock := &scanServiceMock{
			mockSubmit: func(ctx context.Context, req *model.ScanRequest) (types.ScanID, error) {
				return "scan-123", nil
			},
			mockGetStatus: func(ctx context.Context, scanID types.ScanID) (*model.StatusSnapshot, error) {
				return &model.StatusSnapshot{
					Status:  types.ScanStatusError,
					Message: "binary could not be unpacked",
				}, nil
			},
		}

		uc := usecase.New(infra.New(infra.WithScanService(scanMock)))

		err := uc.Run(ctx, testRunInput(t))
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrScanFailed))
		gt.S(t, err.Error()).Contains("scan ended without results")
	})

	t.Run("SARIF failure is a warning, not a run failure", func(t *testing.T) {
		scanMock := &scanServiceMock{
			mockSubmit: func(ctx context.Context, req *model.ScanRequest) (types.ScanID, error) {
				return "scan-123", nil
			},
			mockGetStatus: func(ctx context.Context, scanID types.ScanID) (*model.StatusSnapshot, error) {
				return completedSnapshot(&model.ScanResults{RiskLevel: "LOW"}), nil
			},
			mockFetchReport: func(ctx context.Context, scanID types.ScanID, format string) ([]byte, error) {
				return nil, errors.New("report generation pending")
			},
		}
		out := newActionOutputMock()

		uc := usecase.New(infra.New(
			infra.WithScanService(scanMock),
			infra.WithCodeScanning(&codeScanningMock{}),
			infra.WithActionOutput(out),
		))

		gt.NoError(t, uc.Run(ctx, testRunInput(t)))
		gt.V(t, len(out.warnings)).Equal(1)
		gt.S(t, out.warnings[0]).Contains("SARIF upload failed")
		gt.V(t, out.outputs["sarif-file"]).Equal("")
	})

	t.Run("missing GitHub credential downgrades SARIF upload", func(t *testing.T) {
		scanMock := &scanServiceMock{
			mockSubmit: func(ctx context.Context, req *model.ScanRequest) (types.ScanID, error) {
				return "scan-123", nil
			},
			mockGetStatus: func(ctx context.Context, scanID types.ScanID) (*model.StatusSnapshot, error) {
				return completedSnapshot(&model.ScanResults{RiskLevel: "LOW"}), nil
			},
		}
		out := newActionOutputMock()

		// No CodeScanning client configured
		uc := usecase.New(infra.New(
			infra.WithScanService(scanMock),
			infra.WithActionOutput(out),
		))

		gt.NoError(t, uc.Run(ctx, testRunInput(t)))
		gt.V(t, len(out.warnings)).Equal(1)
	})

	t.Run("wait-for-completion disabled stops after submit", func(t *testing.T) {
		statusCalls := 0
		scanMock := &scanServiceMock{
			mockSubmit: func(ctx context.Context, req *model.ScanRequest) (types.ScanID, error) {
				return "scan-123", nil
			},
			mockGetStatus: func(ctx context.Context, scanID types.ScanID) (*model.StatusSnapshot, error) {
				statusCalls++
				return nil, errors.New("must not be called")
			},
		}
		out := newActionOutputMock()

		uc := usecase.New(infra.New(
			infra.WithScanService(scanMock),
			infra.WithActionOutput(out),
		))

		input := testRunInput(t)
		input.WaitForCompletion = false

		gt.NoError(t, uc.Run(ctx, input))
		gt.V(t, statusCalls).Equal(0)
		gt.V(t, out.outputs["scan-id"]).Equal("scan-123")
		gt.V(t, out.outputs["status"]).Equal("queued")
		gt.V(t, out.outputs["report-url"]).NotEqual("")
	})

	t.Run("missing binary fails validation before submit", func(t *testing.T) {
		submitCalls := 0
		scanMock := &scanServiceMock{
			mockSubmit: func(ctx context.Context, req *model.ScanRequest) (types.ScanID, error) {
				submitCalls++
				return "scan-123", nil
			},
		}

		uc := usecase.New(infra.New(infra.WithScanService(scanMock)))

		input := testRunInput(t)
		input.Request.BinaryPath = filepath.Join(t.TempDir(), "missing.apk")

		err := uc.Run(ctx, input)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrInvalidConfig))
		gt.V(t, submitCalls).Equal(0)
	})

	t.Run("submission error propagates", func(t *testing.T) {
		scanMock := &scanServiceMock{
			mockSubmit: func(ctx context.Context, req *model.ScanRequest) (types.ScanID, error) {
				return "", errors.New("upload rejected")
			},
		}

		uc := usecase.New(infra.New(infra.WithScanService(scanMock)))

		err := uc.Run(ctx, testRunInput(t))
		gt.Error(t, err)
		gt.S(t, err.Error()).Contains("upload rejected")
	})
}
