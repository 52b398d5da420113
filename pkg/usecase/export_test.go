package usecase

// Export unexported functions for testing
var (
	EvaluateVerdictForTest = evaluateVerdict
	BuildSummaryForTest    = buildSummary
)

var WaitForCompletionForTest = (*UseCase).waitForCompletion
