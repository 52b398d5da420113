package model

import (
	"fmt"
	"os"

	"github.com/AppAudix/scan-action/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// ScanRequest is the immutable input of one scan submission, built once from
// resolved configuration.
type ScanRequest struct {
	BinaryPath string
	Frameworks []types.Framework
}

func (x *ScanRequest) Validate() error {
	if x.BinaryPath == "" {
		return goerr.Wrap(types.ErrInvalidConfig, "binary path is empty")
	}
	st, err := os.Stat(x.BinaryPath)
	if err != nil {
		return goerr.Wrap(types.ErrInvalidConfig, "binary file is not accessible", goerr.V("path", x.BinaryPath))
	}
	if st.IsDir() {
		return goerr.Wrap(types.ErrInvalidConfig, "binary path is a directory", goerr.V("path", x.BinaryPath))
	}
	if len(x.Frameworks) == 0 {
		return goerr.Wrap(types.ErrInvalidConfig, "no compliance framework specified")
	}
	return nil
}

// StatusSnapshot is one observation of a remote scan. Each snapshot
// supersedes the previous one; only the last-seen progress value is kept by
// the poller to suppress duplicate log lines.
type StatusSnapshot struct {
	Status   types.ScanStatus
	Progress int
	Message  string
	Results  *ScanResults
}

// ScanResults is the final payload of a completed scan.
type ScanResults struct {
	ComplianceScore int
	RiskLevel       types.RiskLevel
	Critical        int
	High            int
	Medium          int
	Low             int
}

// Count returns the number of issues at the given severity. none has no
// count and returns 0.
func (x *ScanResults) Count(sev types.Severity) int {
	switch sev {
	case types.SeverityCritical:
		return x.Critical
	case types.SeverityHigh:
		return x.High
	case types.SeverityMedium:
		return x.Medium
	case types.SeverityLow:
		return x.Low
	}
	return 0
}

func (x *ScanResults) String() string {
	return fmt.Sprintf("score=%d risk=%s critical=%d high=%d medium=%d low=%d",
		x.ComplianceScore, x.RiskLevel, x.Critical, x.High, x.Medium, x.Low)
}
