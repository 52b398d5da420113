package ghcs

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/base64"
	"net/url"
	"strings"

	"github.com/AppAudix/scan-action/pkg/domain/interfaces"
	"github.com/AppAudix/scan-action/pkg/domain/types"
	"github.com/AppAudix/scan-action/pkg/utils/logging"
	"github.com/google/go-github/v59/github"
	"github.com/m-mizutani/goerr/v2"
)

// Client uploads SARIF reports to the GitHub code scanning API. The token
// needs the security-events:write permission.
type Client struct {
	token   types.GitHubToken
	baseURL string
}

var _ interfaces.CodeScanning = (*Client)(nil)

type Option func(*Client)

// WithBaseURL overrides the GitHub API endpoint, mainly for tests and GHES.
func WithBaseURL(baseURL string) Option {
	return func(x *Client) {
		x.baseURL = baseURL
	}
}

func New(token types.GitHubToken, options ...Option) (*Client, error) {
	if token == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "GitHub token is empty")
	}

	client := &Client{
		token: token,
	}
	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

func (x *Client) buildClient(ctx context.Context) (*github.Client, error) {
	gh := github.NewTokenClient(ctx, string(x.token))
	if x.baseURL != "" {
		base, err := url.Parse(strings.TrimSuffix(x.baseURL, "/") + "/")
		if err != nil {
			return nil, goerr.Wrap(err, "invalid GitHub API base URL", goerr.V("url", x.baseURL))
		}
		gh.BaseURL = base
	}
	return gh, nil
}

func (x *Client) UploadSARIF(ctx context.Context, input *interfaces.UploadSARIFInput) error {
	if err := input.Meta.Validate(); err != nil {
		return err
	}

	gh, err := x.buildClient(ctx)
	if err != nil {
		return err
	}

	encoded, err := encodeSARIF(input.SARIF)
	if err != nil {
		return err
	}

	analysis := &github.SarifAnalysis{
		CommitSHA: github.String(input.Meta.CommitID),
		Ref:       github.String(input.Meta.Ref),
		Sarif:     github.String(encoded),
		ToolName:  github.String(input.ToolName),
	}

	sarifID, _, err := gh.CodeScanning.UploadSarif(ctx, input.Meta.Owner, input.Meta.RepoName, analysis)
	if err != nil {
		return goerr.Wrap(err, "failed to upload SARIF to code scanning",
			goerr.V("owner", input.Meta.Owner),
			goerr.V("repo", input.Meta.RepoName),
		)
	}

	logging.From(ctx).Info("SARIF uploaded to code scanning",
		"id", sarifID.GetID(),
		"commit", input.Meta.CommitID,
		"ref", input.Meta.Ref,
	)

	return nil
}

// encodeSARIF compresses and encodes the report as the code scanning API
// requires: gzip then standard base64.
func encodeSARIF(sarif []byte) (string, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(sarif); err != nil {
		return "", goerr.Wrap(err, "failed to compress SARIF report")
	}
	if err := zw.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize SARIF compression")
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
