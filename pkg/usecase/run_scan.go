package usecase

import (
	"context"
	"os"
	"path/filepath"

	"github.com/AppAudix/scan-action/pkg/domain/model"
	"github.com/AppAudix/scan-action/pkg/domain/types"
	"github.com/AppAudix/scan-action/pkg/utils/logging"
)

// Run executes one scan workflow: submit the binary, poll until a terminal
// status, then translate the results into outputs and a verdict. Control
// flows strictly forward; nothing is retried.
func (x *UseCase) Run(ctx context.Context, input *model.RunInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	x.preflight(ctx, input)

	scanID, err := x.clients.ScanService().Submit(ctx, &input.Request)
	if err != nil {
		return err
	}

	reportURL := x.clients.ScanService().ReportURL(scanID)
	logging.From(ctx).Info("scan submitted", "scan_id", scanID, "report_url", reportURL)
	x.setOutput("scan-id", string(scanID))
	x.setOutput("report-url", reportURL)

	if !input.WaitForCompletion {
		x.setOutput("status", string(types.ScanStatusQueued))
		logging.From(ctx).Info("not waiting for scan completion", "scan_id", scanID)
		return nil
	}

	snapshot, err := x.waitForCompletion(ctx, scanID, input.Timeout, input.PollInterval)
	if err != nil {
		return err
	}

	return x.report(ctx, input, scanID, snapshot)
}

func (x *UseCase) preflight(ctx context.Context, input *model.RunInput) {
	var size int64
	if st, err := os.Stat(input.Request.BinaryPath); err == nil {
		size = st.Size()
	}

	logging.From(ctx).Info("starting scan",
		"file", filepath.Base(input.Request.BinaryPath),
		"size", size,
		"frameworks", input.Request.Frameworks,
		"fail_on", input.FailOn,
	)
}
