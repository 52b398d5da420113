package usecase

import (
	"github.com/AppAudix/scan-action/pkg/infra"
)

type UseCase struct {
	clients *infra.Clients
}

func New(clients *infra.Clients) *UseCase {
	return &UseCase{
		clients: clients,
	}
}

func (x *UseCase) setOutput(name, value string) {
	if out := x.clients.ActionOutput(); out != nil {
		out.SetOutput(name, value)
	}
}
