package types

import (
	"log/slog"

	"github.com/google/uuid"
)

type (
	APIKey      string
	GitHubToken string
	ScanID      string
	RequestID   string
	ScanStatus  string
	RiskLevel   string
	Framework   string
)

const (
	ScanStatusQueued    ScanStatus = "queued"
	ScanStatusRunning   ScanStatus = "running"
	ScanStatusCompleted ScanStatus = "completed"
	ScanStatusError     ScanStatus = "error"
	ScanStatusCancelled ScanStatus = "cancelled"
)

// Terminal returns true if the scan will not transition to another status.
func (x ScanStatus) Terminal() bool {
	switch x {
	case ScanStatusCompleted, ScanStatusError, ScanStatusCancelled:
		return true
	}
	return false
}

const RiskLevelUnknown RiskLevel = "UNKNOWN"

func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}

func (x APIKey) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x APIKey) String() string {
	return "***********"
}

func (x GitHubToken) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubToken) String() string {
	return "***********"
}
