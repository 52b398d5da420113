package actions

import (
	"io"
	"os"

	"github.com/AppAudix/scan-action/pkg/domain/interfaces"
	"github.com/AppAudix/scan-action/pkg/utils/logging"
	"github.com/sethvargo/go-githubactions"
)

// Client publishes step outputs, annotations and the step summary through
// the GitHub Actions runner files. Outside of a runner (no GITHUB_OUTPUT)
// outputs are logged instead so local runs stay usable.
type Client struct {
	action    *githubactions.Action
	getenv    func(string) string
	ghOptions []githubactions.Option
}

var _ interfaces.ActionOutput = (*Client)(nil)

type Option func(*Client)

func WithWriter(w io.Writer) Option {
	return func(x *Client) {
		x.ghOptions = append(x.ghOptions, githubactions.WithWriter(w))
	}
}

func WithGetenv(getenv func(string) string) Option {
	return func(x *Client) {
		x.getenv = getenv
		x.ghOptions = append(x.ghOptions, githubactions.WithGetenv(getenv))
	}
}

func New(options ...Option) *Client {
	client := &Client{
		getenv: os.Getenv,
	}
	for _, opt := range options {
		opt(client)
	}
	client.action = githubactions.New(client.ghOptions...)

	return client
}

func (x *Client) SetOutput(name, value string) {
	if x.getenv("GITHUB_OUTPUT") == "" {
		logging.Default().Info("step output", "name", name, "value", value)
		return
	}
	x.action.SetOutput(name, value)
}

func (x *Client) AddStepSummary(markdown string) {
	if x.getenv("GITHUB_STEP_SUMMARY") == "" {
		return
	}
	x.action.AddStepSummary(markdown)
}

func (x *Client) Noticef(format string, args ...any) {
	x.action.Noticef(format, args...)
}

func (x *Client) Warningf(format string, args ...any) {
	x.action.Warningf(format, args...)
}
