package usecase

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/AppAudix/scan-action/pkg/domain/interfaces"
	"github.com/AppAudix/scan-action/pkg/domain/model"
	"github.com/AppAudix/scan-action/pkg/domain/types"
	"github.com/AppAudix/scan-action/pkg/utils/logging"
	"github.com/AppAudix/scan-action/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

// ToolName tags SARIF uploads in the code scanning UI.
const ToolName = "AppAudix"

// report turns a terminal snapshot into outputs and the final verdict.
// SARIF forwarding failures are downgraded to warnings; a scan that ended in
// error or cancelled is a hard run failure.
func (x *UseCase) report(ctx context.Context, input *model.RunInput, scanID types.ScanID, snapshot *model.StatusSnapshot) error {
	logger := logging.From(ctx)

	if snapshot.Status != types.ScanStatusCompleted {
		return goerr.Wrap(types.ErrScanFailed, "scan ended without results",
			goerr.V("status", snapshot.Status),
			goerr.V("message", snapshot.Message),
		)
	}

	results := snapshot.Results
	if results == nil {
		results = &model.ScanResults{RiskLevel: types.RiskLevelUnknown}
	}

	x.publishResults(scanID, results)
	logger.Info("scan completed", "scan_id", scanID, "results", results)

	if input.UploadSARIF {
		if err := x.forwardSARIF(ctx, input, scanID); err != nil {
			logger.Warn("SARIF forwarding skipped", "error", err)
			if out := x.clients.ActionOutput(); out != nil {
				out.Warningf("SARIF upload failed: %v", err)
			}
		}
	}

	if evaluateVerdict(input.FailOn, results) {
		return goerr.Wrap(types.ErrThresholdExceeded, "scan found issues at or above fail-on threshold",
			goerr.V("fail_on", input.FailOn),
			goerr.V("critical", results.Critical),
			goerr.V("high", results.High),
			goerr.V("medium", results.Medium),
			goerr.V("low", results.Low),
		)
	}

	if out := x.clients.ActionOutput(); out != nil {
		out.Noticef("AppAudix scan %s passed (score %d, risk %s)", scanID, results.ComplianceScore, results.RiskLevel)
	}

	return nil
}

func (x *UseCase) publishResults(scanID types.ScanID, results *model.ScanResults) {
	x.setOutput("status", string(types.ScanStatusCompleted))
	x.setOutput("compliance-score", strconv.Itoa(results.ComplianceScore))
	x.setOutput("risk-level", string(results.RiskLevel))
	x.setOutput("critical-count", strconv.Itoa(results.Critical))
	x.setOutput("high-count", strconv.Itoa(results.High))
	x.setOutput("medium-count", strconv.Itoa(results.Medium))
	x.setOutput("low-count", strconv.Itoa(results.Low))

	if out := x.clients.ActionOutput(); out != nil {
		out.AddStepSummary(buildSummary(scanID, results, x.clients.ScanService().ReportURL(scanID)))
	}
}

func buildSummary(scanID types.ScanID, results *model.ScanResults, reportURL string) string {
	return fmt.Sprintf(`## AppAudix scan %s

| Compliance score | Risk level | Critical | High | Medium | Low |
|---|---|---|---|---|---|
| %d | %s | %d | %d | %d | %d |

[Full report](%s)
`, scanID, results.ComplianceScore, results.RiskLevel,
		results.Critical, results.High, results.Medium, results.Low, reportURL)
}

func (x *UseCase) forwardSARIF(ctx context.Context, input *model.RunInput, scanID types.ScanID) error {
	if x.clients.CodeScanning() == nil {
		return goerr.Wrap(types.ErrSARIF, "no GitHub credential for code scanning upload")
	}

	body, err := x.clients.ScanService().FetchReport(ctx, scanID, "sarif")
	if err != nil {
		return goerr.Wrap(types.ErrSARIF, "failed to download SARIF report", goerr.V("cause", err))
	}

	tmp, err := os.CreateTemp("", "appaudix-*.sarif")
	if err != nil {
		return goerr.Wrap(types.ErrSARIF, "failed to create SARIF temp file", goerr.V("cause", err))
	}
	if _, err := tmp.Write(body); err != nil {
		safe.Close(tmp)
		return goerr.Wrap(types.ErrSARIF, "failed to write SARIF temp file", goerr.V("cause", err))
	}
	safe.Close(tmp)
	x.setOutput("sarif-file", tmp.Name())

	if err := x.clients.CodeScanning().UploadSARIF(ctx, &interfaces.UploadSARIFInput{
		Meta:     input.GitHub,
		SARIF:    body,
		ToolName: ToolName,
	}); err != nil {
		return goerr.Wrap(types.ErrSARIF, "failed to upload SARIF to code scanning", goerr.V("cause", err))
	}

	return nil
}
