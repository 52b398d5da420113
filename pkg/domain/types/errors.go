package types

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidOption     = goerr.New("invalid option")
	ErrInvalidConfig     = goerr.New("invalid configuration")
	ErrSubmission        = goerr.New("scan submission failed")
	ErrAPI               = goerr.New("scan API error")
	ErrPoll              = goerr.New("scan status polling failed")
	ErrTimeout           = goerr.New("scan did not complete in time")
	ErrScanFailed        = goerr.New("scan finished abnormally")
	ErrSARIF             = goerr.New("SARIF report handling failed")
	ErrThresholdExceeded = goerr.New("issues at or above fail-on threshold")
)
