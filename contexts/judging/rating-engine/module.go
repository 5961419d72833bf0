package ratingengine

import (
	"log/slog"

	httpadapter "themis/contexts/judging/rating-engine/adapters/http"
	"themis/contexts/judging/rating-engine/adapters/memory"
	"themis/contexts/judging/rating-engine/application/commands"
	"themis/contexts/judging/rating-engine/application/queries"
	"themis/contexts/judging/rating-engine/domain/entities"
	"themis/contexts/judging/rating-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Ratings     ports.RatingRepository
	Submissions ports.SubmissionCatalog
	Experts     ports.ExpertDirectory
	Outbox      ports.OutboxWriter
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	rateUseCase := commands.RateUseCase{
		Ratings:     deps.Ratings,
		Submissions: deps.Submissions,
		Experts:     deps.Experts,
		Outbox:      deps.Outbox,
		Clock:       deps.Clock,
		IDGen:       deps.IDGen,
		Logger:      deps.Logger,
	}
	aggregateUseCase := queries.AggregateUseCase{
		Ratings:     deps.Ratings,
		Submissions: deps.Submissions,
	}
	leaderboardUseCase := queries.LeaderboardUseCase{
		Ratings:     deps.Ratings,
		Submissions: deps.Submissions,
	}
	return Module{
		Handler: httpadapter.Handler{
			Ratings:      rateUseCase,
			Aggregates:   aggregateUseCase,
			Leaderboards: leaderboardUseCase,
			Logger:       deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Rating, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Ratings:     store,
		Submissions: store,
		Experts:     store,
		Outbox:      store,
		Clock:       store,
		IDGen:       store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
