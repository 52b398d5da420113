package appaudix

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/AppAudix/scan-action/pkg/domain/interfaces"
	"github.com/AppAudix/scan-action/pkg/domain/model"
	"github.com/AppAudix/scan-action/pkg/domain/types"
	"github.com/AppAudix/scan-action/pkg/utils/logging"
	"github.com/AppAudix/scan-action/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the AppAudix scanning API. All calls are attempted exactly
// once; retry policy belongs to the caller.
type Client struct {
	baseURL    string
	apiKey     types.APIKey
	httpClient HTTPClient
}

var _ interfaces.ScanService = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(httpClient HTTPClient) Option {
	return func(x *Client) {
		x.httpClient = httpClient
	}
}

func New(baseURL string, apiKey types.APIKey, options ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "baseURL is empty")
	}
	if apiKey == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "apiKey is empty")
	}

	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
	}
	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

type apiError struct {
	Message string `json:"message"`
}

// Submit uploads the binary with one multipart request: a `file` part
// streamed from disk and one `frameworks` field per framework. The upload is
// not resumable and not retried.
func (x *Client) Submit(ctx context.Context, req *model.ScanRequest) (types.ScanID, error) {
	fd, err := os.Open(filepath.Clean(req.BinaryPath))
	if err != nil {
		return "", goerr.Wrap(err, "failed to open binary file", goerr.V("path", req.BinaryPath))
	}
	defer safe.Close(fd)

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", filepath.Base(req.BinaryPath))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, fd); err != nil {
			pw.CloseWithError(err)
			return
		}
		for _, fw := range req.Frameworks {
			if err := mw.WriteField("frameworks", string(fw)); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		pw.CloseWithError(mw.Close())
	}()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, x.baseURL+"/v2/scans", pr)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create scan request")
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())
	x.setAuth(httpReq)

	resp, err := x.httpClient.Do(httpReq)
	if err != nil {
		return "", goerr.Wrap(err, "failed to upload binary", goerr.V("url", httpReq.URL.String()))
	}
	defer safe.Close(resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return "", goerr.Wrap(types.ErrSubmission, "scan upload rejected",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)),
		)
	}

	var data struct {
		ScanID string `json:"scan_id"`
	}
	if err := decodeEnvelope(resp.Body, &data); err != nil {
		return "", err
	}
	if data.ScanID == "" {
		return "", goerr.Wrap(types.ErrAPI, "scan ID is missing in API response")
	}

	logging.From(ctx).Debug("scan submitted", "scan_id", data.ScanID)

	return types.ScanID(data.ScanID), nil
}

// GetStatus queries one status snapshot of the scan.
func (x *Client) GetStatus(ctx context.Context, scanID types.ScanID) (*model.StatusSnapshot, error) {
	resp, err := x.get(ctx, fmt.Sprintf("%s/v2/scans/%s", x.baseURL, scanID))
	if err != nil {
		return nil, err
	}
	defer safe.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, goerr.New("unexpected status code from scan status API",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)),
		)
	}

	var data struct {
		Status   string `json:"status"`
		Progress int    `json:"progress"`
		Message  string `json:"message"`
		Results  *struct {
			ComplianceScore int    `json:"compliance_score"`
			RiskLevel       string `json:"risk_level"`
			CriticalIssues  int    `json:"critical_issues"`
			HighIssues      int    `json:"high_issues"`
			MediumIssues    int    `json:"medium_issues"`
			LowIssues       int    `json:"low_issues"`
		} `json:"results"`
	}
	if err := decodeEnvelope(resp.Body, &data); err != nil {
		return nil, err
	}

	snapshot := &model.StatusSnapshot{
		Status:   types.ScanStatus(data.Status),
		Progress: data.Progress,
		Message:  data.Message,
	}
	if data.Results != nil {
		riskLevel := types.RiskLevel(data.Results.RiskLevel)
		if riskLevel == "" {
			riskLevel = types.RiskLevelUnknown
		}
		snapshot.Results = &model.ScanResults{
			ComplianceScore: data.Results.ComplianceScore,
			RiskLevel:       riskLevel,
			Critical:        data.Results.CriticalIssues,
			High:            data.Results.HighIssues,
			Medium:          data.Results.MediumIssues,
			Low:             data.Results.LowIssues,
		}
	}

	return snapshot, nil
}

// FetchReport downloads the scan report in the given format (e.g. "sarif")
// and returns the raw body.
func (x *Client) FetchReport(ctx context.Context, scanID types.ScanID, format string) ([]byte, error) {
	resp, err := x.get(ctx, fmt.Sprintf("%s/v2/scans/%s/report?format=%s", x.baseURL, scanID, format))
	if err != nil {
		return nil, err
	}
	defer safe.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, goerr.New("unexpected status code from report API",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)),
		)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read report body")
	}

	return body, nil
}

// ReportURL builds the canonical report link of a scan.
func (x *Client) ReportURL(scanID types.ScanID) string {
	return fmt.Sprintf("%s/v2/scans/%s/report", x.baseURL, scanID)
}

func (x *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request", goerr.V("url", url))
	}
	x.setAuth(req)

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call scan API", goerr.V("url", url))
	}
	return resp, nil
}

func (x *Client) setAuth(req *http.Request) {
	// types.APIKey masks itself in String(); the raw value is needed here
	req.Header.Set("Authorization", "Bearer "+string(x.apiKey))
}

func decodeEnvelope(r io.Reader, out any) error {
	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return goerr.Wrap(err, "failed to decode API response")
	}
	if !env.Success {
		msg := "API returned failure without message"
		if env.Error != nil && env.Error.Message != "" {
			msg = env.Error.Message
		}
		return goerr.Wrap(types.ErrAPI, msg)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return goerr.Wrap(err, "failed to decode API response data")
		}
	}
	return nil
}
