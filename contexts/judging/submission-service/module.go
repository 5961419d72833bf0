package submissionservice

import (
	"log/slog"

	httpadapter "themis/contexts/judging/submission-service/adapters/http"
	"themis/contexts/judging/submission-service/adapters/memory"
	"themis/contexts/judging/submission-service/application/commands"
	"themis/contexts/judging/submission-service/application/queries"
	"themis/contexts/judging/submission-service/domain/entities"
	"themis/contexts/judging/submission-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Submissions ports.SubmissionRepository
	Ratings     ports.RatingSource
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	intakeUseCase := commands.IntakeUseCase{
		Submissions: deps.Submissions,
		Clock:       deps.Clock,
		IDGen:       deps.IDGen,
		Logger:      deps.Logger,
	}
	catalogUseCase := queries.CatalogUseCase{
		Submissions: deps.Submissions,
		Ratings:     deps.Ratings,
	}
	return Module{
		Handler: httpadapter.Handler{
			Intake:  intakeUseCase,
			Catalog: catalogUseCase,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Submission, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Submissions: store,
		Ratings:     store,
		Clock:       store,
		IDGen:       store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
