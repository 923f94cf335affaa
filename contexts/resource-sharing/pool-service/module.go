package poolservice

import (
	"log/slog"

	httpadapter "commonweal/contexts/resource-sharing/pool-service/adapters/http"
	"commonweal/contexts/resource-sharing/pool-service/adapters/memory"
	"commonweal/contexts/resource-sharing/pool-service/application/commands"
	"commonweal/contexts/resource-sharing/pool-service/application/queries"
	"commonweal/contexts/resource-sharing/pool-service/application/workers"
	"commonweal/contexts/resource-sharing/pool-service/domain/entities"
	"commonweal/contexts/resource-sharing/pool-service/ports"
)

type Module struct {
	Handler    httpadapter.Handler
	Authorizer ports.Authorizer
	Store      *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Authorizer ports.Authorizer
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Outbox     ports.OutboxWriter
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	commandUseCase := commands.UseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Outbox:     deps.Outbox,
		Logger:     deps.Logger,
	}
	queryUseCase := queries.UseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Commands: commandUseCase,
			Queries:  queryUseCase,
			Logger:   deps.Logger,
		},
		Authorizer: deps.Authorizer,
	}
}

func NewInMemoryModule(seed []entities.Pool, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repository: store,
		Authorizer: memory.AllowAllAuthorizer{},
		Clock:      store,
		IDGen:      store,
		Outbox:     store,
		Logger:     logger,
	})
	module.Store = store
	return module
}

// NewOutboxRelay builds the relay worker over the module's outbox source.
func NewOutboxRelay(
	outbox ports.OutboxRepository,
	publisher ports.EventPublisher,
	clock ports.Clock,
	batchSize int,
	logger *slog.Logger,
) workers.OutboxRelay {
	return workers.OutboxRelay{
		Outbox:    outbox,
		Publisher: publisher,
		Clock:     clock,
		BatchSize: batchSize,
		Logger:    logger,
	}
}
