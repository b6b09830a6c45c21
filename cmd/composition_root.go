package cmd

import (
	"log/slog"
	"time"

	httpadapter "donation/internal/adapters/in/http"
	"donation/internal/adapters/out/passwords"
	"donation/internal/adapters/out/postgres"
	"donation/internal/core/application/usecases/commands"
	"donation/internal/core/application/usecases/queries"
	"donation/internal/core/domain/model/kernel"
	"donation/internal/core/domain/services"
	"donation/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	engine     services.LifecycleEngine
	retrier    commands.ConflictRetrier
	clock      kernel.Clock
	hasher     passwords.BcryptHasher
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB).WithLockTimeout(config.LockTimeout),
		engine:     services.NewLifecycleEngine(config.PickupEmbargo),
		retrier:    commands.NewConflictRetrier(config.ConflictRetries, logger),
		clock:      kernel.SystemClock(),
		hasher:     passwords.NewBcryptHasher(passwords.DefaultCost),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateUserCommandHandler() commands.CreateUserCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateUserCommandHandler(f, c.hasher)
}

func (c *CompositionRoot) CreateCreateItemCommandHandler() commands.CreateItemCommandHandler {
	return commands.NewCreateItemCommandHandler(c.itemUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateRequestItemCommandHandler() commands.RequestItemCommandHandler {
	return commands.NewRequestItemCommandHandler(c.itemUoWFactory(), c.engine, c.retrier)
}

func (c *CompositionRoot) CreateAssignItemCommandHandler() commands.AssignItemCommandHandler {
	return commands.NewAssignItemCommandHandler(c.itemUoWFactory(), c.engine, c.clock, c.retrier)
}

func (c *CompositionRoot) CreatePickupItemCommandHandler() commands.PickupItemCommandHandler {
	return commands.NewPickupItemCommandHandler(c.itemUoWFactory(), c.engine, c.clock, c.retrier)
}

func (c *CompositionRoot) CreateDeliverItemCommandHandler() commands.DeliverItemCommandHandler {
	return commands.NewDeliverItemCommandHandler(c.itemUoWFactory(), c.engine, c.retrier)
}

func (c *CompositionRoot) CreateAuthenticateUserQueryHandler() queries.AuthenticateUserQueryHandler {
	return queries.NewAuthenticateUserQueryHandler(c.gormDB, c.hasher)
}

func (c *CompositionRoot) CreateListItemsQueryHandler() queries.ListItemsQueryHandler {
	return queries.NewListItemsQueryHandler(c.gormDB, c.engine.Embargo())
}

func (c *CompositionRoot) CreateGetItemQueryHandler() queries.GetItemQueryHandler {
	return queries.NewGetItemQueryHandler(c.gormDB, c.engine.Embargo())
}

func (c *CompositionRoot) CreateListNotificationsQueryHandler() queries.ListNotificationsQueryHandler {
	return queries.NewListNotificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUserQueryHandler() queries.GetUserQueryHandler {
	return queries.NewGetUserQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCountItemsByStatusQueryHandler() queries.CountItemsByStatusQueryHandler {
	return queries.NewCountItemsByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateTokenService() (*httpadapter.TokenService, error) {
	return httpadapter.NewTokenService(c.config.JWTSecret, httpadapter.DefaultTokenTTL, c.clock)
}

func (c *CompositionRoot) CreateHTTPServer(tokens *httpadapter.TokenService) *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreateUser:        c.CreateCreateUserCommandHandler(),
		CreateItem:        c.CreateCreateItemCommandHandler(),
		RequestItem:       c.CreateRequestItemCommandHandler(),
		AssignItem:        c.CreateAssignItemCommandHandler(),
		PickupItem:        c.CreatePickupItemCommandHandler(),
		DeliverItem:       c.CreateDeliverItemCommandHandler(),
		Login:             c.CreateAuthenticateUserQueryHandler(),
		ListItems:         c.CreateListItemsQueryHandler(),
		GetItem:           c.CreateGetItemQueryHandler(),
		ListNotifications: c.CreateListNotificationsQueryHandler(),
		GetUser:           c.CreateGetUserQueryHandler(),
		CountItems:        c.CreateCountItemsByStatusQueryHandler(),
	}, tokens, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateCountItemsByStatusQueryHandler(), c.config.StatsSchedule, c.logger)
}

// PickupEmbargo is the embargo the lifecycle engine enforces.
func (c *CompositionRoot) PickupEmbargo() time.Duration {
	return c.engine.Embargo()
}

func (c *CompositionRoot) itemUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
