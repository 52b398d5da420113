package actions_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/AppAudix/scan-action/pkg/infra/actions"
	"github.com/m-mizutani/gt"
)

func TestSetOutput(t *testing.T) {
	t.Run("write output to GITHUB_OUTPUT file", func(t *testing.T) {
		outFile := filepath.Join(t.TempDir(), "output")
		gt.NoError(t, os.WriteFile(outFile, nil, 0644))

		var buf bytes.Buffer
		client := actions.New(
			actions.WithWriter(&buf),
			actions.WithGetenv(func(k string) string {
				if k == "GITHUB_OUTPUT" {
					return outFile
				}
				return ""
			}),
		)

		client.SetOutput("scan-id", "scan-123")

		body := gt.R1(os.ReadFile(outFile)).NoError(t)
		gt.S(t, string(body)).Contains("scan-id")
		gt.S(t, string(body)).Contains("scan-123")
	})

	t.Run("no GITHUB_OUTPUT falls back to logging", func(t *testing.T) {
		var buf bytes.Buffer
		client := actions.New(
			actions.WithWriter(&buf),
			actions.WithGetenv(func(string) string { return "" }),
		)

		// Must not panic or write workflow commands
		client.SetOutput("scan-id", "scan-123")
		gt.V(t, buf.Len()).Equal(0)
	})
}

func TestAnnotations(t *testing.T) {
	var buf bytes.Buffer
	client := actions.New(
		actions.WithWriter(&buf),
		actions.WithGetenv(func(string) string { return "" }),
	)

	client.Noticef("scan %s finished", "scan-123")
	client.Warningf("SARIF upload skipped")

	gt.S(t, buf.String()).Contains("::notice")
	gt.S(t, buf.String()).Contains("::warning")
	gt.S(t, buf.String()).Contains("scan-123")
}
