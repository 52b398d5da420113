package interfaces

import (
	"context"

	"github.com/AppAudix/scan-action/pkg/domain/model"
	"github.com/AppAudix/scan-action/pkg/domain/types"
)

// ScanService is the remote scanning API. The workflow only uses these three
// operations so tests can substitute the whole backend.
type ScanService interface {
	Submit(ctx context.Context, req *model.ScanRequest) (types.ScanID, error)
	GetStatus(ctx context.Context, scanID types.ScanID) (*model.StatusSnapshot, error)
	FetchReport(ctx context.Context, scanID types.ScanID, format string) ([]byte, error)
	ReportURL(scanID types.ScanID) string
}

type UploadSARIFInput struct {
	Meta     model.GitHubMetadata
	SARIF    []byte
	ToolName string
}

// CodeScanning ingests SARIF reports into the host platform.
type CodeScanning interface {
	UploadSARIF(ctx context.Context, input *UploadSARIFInput) error
}

// ActionOutput publishes step outputs and annotations to the CI platform.
type ActionOutput interface {
	SetOutput(name, value string)
	AddStepSummary(markdown string)
	Noticef(format string, args ...any)
	Warningf(format string, args ...any)
}
