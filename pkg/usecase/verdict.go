package usecase

import (
	"github.com/AppAudix/scan-action/pkg/domain/model"
	"github.com/AppAudix/scan-action/pkg/domain/types"
)

var countedSeverities = []types.Severity{
	types.SeverityCritical,
	types.SeverityHigh,
	types.SeverityMedium,
	types.SeverityLow,
}

// evaluateVerdict returns true when the run must fail: some severity at or
// above the fail-on threshold has a nonzero count. A threshold of none (or
// an unknown value) never fails on content.
func evaluateVerdict(failOn types.Severity, results *model.ScanResults) bool {
	failRank, ok := failOn.Rank()
	if !ok || failOn == types.SeverityNone {
		return false
	}

	// Lower rank is more severe: a threshold covers its own severity and
	// everything above it.
	for _, sev := range countedSeverities {
		sevRank, _ := sev.Rank()
		if sevRank <= failRank && results.Count(sev) > 0 {
			return true
		}
	}

	return false
}
