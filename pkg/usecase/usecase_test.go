package usecase_test

import (
	"context"
	"fmt"

	"github.com/AppAudix/scan-action/pkg/domain/interfaces"
	"github.com/AppAudix/scan-action/pkg/domain/model"
	"github.com/AppAudix/scan-action/pkg/domain/types"
)

type scanServiceMock struct {
	mockSubmit      func(ctx context.Context, req *model.ScanRequest) (types.ScanID, error)
	mockGetStatus   func(ctx context.Context, scanID types.ScanID) (*model.StatusSnapshot, error)
	mockFetchReport func(ctx context.Context, scanID types.ScanID, format string) ([]byte, error)
}

func (x *scanServiceMock) Submit(ctx context.Context, req *model.ScanRequest) (types.ScanID, error) {
	return x.mockSubmit(ctx, req)
}

func (x *scanServiceMock) GetStatus(ctx context.Context, scanID types.ScanID) (*model.StatusSnapshot, error) {
	return x.mockGetStatus(ctx, scanID)
}

func (x *scanServiceMock) FetchReport(ctx context.Context, scanID types.ScanID, format string) ([]byte, error) {
	return x.mockFetchReport(ctx, scanID, format)
}

func (x *scanServiceMock) ReportURL(scanID types.ScanID) string {
	return fmt.Sprintf("https://api.example.com/v2/scans/%s/report", scanID)
}

type codeScanningMock struct {
	mockUpload func(ctx context.Context, input *interfaces.UploadSARIFInput) error
}

func (x *codeScanningMock) UploadSARIF(ctx context.Context, input *interfaces.UploadSARIFInput) error {
	return x.mockUpload(ctx, input)
}

type actionOutputMock struct {
	outputs   map[string]string
	summaries []string
	notices   []string
	warnings  []string
}

func newActionOutputMock() *actionOutputMock {
	return &actionOutputMock{outputs: map[string]string{}}
}

func (x *actionOutputMock) SetOutput(name, value string) {
	x.outputs[name] = value
}

func (x *actionOutputMock) AddStepSummary(markdown string) {
	x.summaries = append(x.summaries, markdown)
}

func (x *actionOutputMock) Noticef(format string, args ...any) {
	x.notices = append(x.notices, fmt.Sprintf(format, args...))
}

func (x *actionOutputMock) Warningf(format string, args ...any) {
	x.warnings = append(x.warnings, fmt.Sprintf(format, args...))
}
