package model

import (
	"time"

	"github.com/AppAudix/scan-action/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// RunInput carries everything one scan run needs. It is resolved once from
// configuration and stays immutable while the workflow runs.
type RunInput struct {
	Request           ScanRequest
	GitHub            GitHubMetadata
	FailOn            types.Severity
	UploadSARIF       bool
	WaitForCompletion bool
	Timeout           time.Duration
	PollInterval      time.Duration
}

func (x *RunInput) Validate() error {
	if err := x.Request.Validate(); err != nil {
		return err
	}
	if _, ok := x.FailOn.Rank(); !ok {
		return goerr.Wrap(types.ErrInvalidConfig, "unknown fail-on threshold", goerr.V("value", x.FailOn))
	}
	if x.WaitForCompletion && x.Timeout <= 0 {
		return goerr.Wrap(types.ErrInvalidConfig, "timeout must be positive", goerr.V("value", x.Timeout))
	}
	return nil
}
