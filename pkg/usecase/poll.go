package usecase

import (
	"context"
	"time"

	"github.com/AppAudix/scan-action/pkg/domain/model"
	"github.com/AppAudix/scan-action/pkg/domain/types"
	"github.com/AppAudix/scan-action/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// waitForCompletion polls the scan status with a fixed interval until a
// terminal status arrives or the wall-clock budget runs out. A progress line
// is emitted only when the reported progress changes, so a quiet scan does
// not flood the log. A single failed status query aborts the run.
func (x *UseCase) waitForCompletion(ctx context.Context, scanID types.ScanID, timeout, interval time.Duration) (*model.StatusSnapshot, error) {
	logger := logging.From(ctx)
	deadline := time.Now().Add(timeout)
	lastProgress := -1

	for time.Now().Before(deadline) {
		snapshot, err := x.clients.ScanService().GetStatus(ctx, scanID)
		if err != nil {
			return nil, goerr.Wrap(types.ErrPoll, "scan status query failed",
				goerr.V("scan_id", scanID),
				goerr.V("cause", err),
			)
		}

		if snapshot.Progress != lastProgress {
			msg := snapshot.Message
			if msg == "" {
				msg = string(snapshot.Status)
			}
			logger.Info(msg, "progress", snapshot.Progress, "status", snapshot.Status)
			lastProgress = snapshot.Progress
		}

		if snapshot.Status.Terminal() {
			return snapshot, nil
		}

		select {
		case <-ctx.Done():
			return nil, goerr.Wrap(ctx.Err(), "scan polling cancelled", goerr.V("scan_id", scanID))
		case <-time.After(interval):
		}
	}

	return nil, goerr.Wrap(types.ErrTimeout, "no terminal scan status within budget",
		goerr.V("scan_id", scanID),
		goerr.V("timeout", timeout),
	)
}
