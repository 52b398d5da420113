package infra

import (
	"github.com/AppAudix/scan-action/pkg/domain/interfaces"
)

type Clients struct {
	scanService  interfaces.ScanService
	codeScanning interfaces.CodeScanning
	actionOutput interfaces.ActionOutput
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) ScanService() interfaces.ScanService {
	return x.scanService
}
func (x *Clients) CodeScanning() interfaces.CodeScanning {
	return x.codeScanning
}
func (x *Clients) ActionOutput() interfaces.ActionOutput {
	return x.actionOutput
}

func WithScanService(client interfaces.ScanService) Option {
	return func(x *Clients) {
		x.scanService = client
	}
}

func WithCodeScanning(client interfaces.CodeScanning) Option {
	return func(x *Clients) {
		x.codeScanning = client
	}
}

func WithActionOutput(client interfaces.ActionOutput) Option {
	return func(x *Clients) {
		x.actionOutput = client
	}
}
