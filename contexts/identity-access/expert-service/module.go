package expertservice

import (
	"log/slog"

	httpadapter "themis/contexts/identity-access/expert-service/adapters/http"
	"themis/contexts/identity-access/expert-service/adapters/memory"
	"themis/contexts/identity-access/expert-service/application/commands"
	"themis/contexts/identity-access/expert-service/application/queries"
	"themis/contexts/identity-access/expert-service/domain/entities"
	"themis/contexts/identity-access/expert-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Experts ports.ExpertRepository
	Tokens  ports.TokenCodec
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Codes   ports.CodeGenerator
	Logger  *slog.Logger
}

func NewModule(deps Dependencies) Module {
	provisionUseCase := commands.ProvisionUseCase{
		Experts: deps.Experts,
		Clock:   deps.Clock,
		IDGen:   deps.IDGen,
		Codes:   deps.Codes,
		Logger:  deps.Logger,
	}
	sessionUseCase := commands.SessionUseCase{
		Experts: deps.Experts,
		Tokens:  deps.Tokens,
		Clock:   deps.Clock,
		Logger:  deps.Logger,
	}
	directoryUseCase := queries.DirectoryUseCase{
		Experts: deps.Experts,
	}
	gateUseCase := queries.GateUseCase{
		Experts: deps.Experts,
		Tokens:  deps.Tokens,
	}
	return Module{
		Handler: httpadapter.Handler{
			Provisioning: provisionUseCase,
			Sessions:     sessionUseCase,
			Directory:    directoryUseCase,
			Gate:         gateUseCase,
			Logger:       deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Expert, tokens ports.TokenCodec, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Experts: store,
		Tokens:  tokens,
		Clock:   store,
		IDGen:   store,
		Codes:   store,
		Logger:  logger,
	})
	module.Store = store
	return module
}
