package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"donation/internal/core/application/usecases/commands"
	"donation/internal/core/application/usecases/queries"
	"donation/internal/core/domain/model/actor"
	"donation/internal/core/domain/model/item"
	"donation/internal/core/domain/model/kernel"
	"donation/internal/core/domain/model/user"
	"donation/internal/generated/servers"
	"donation/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// UseCase is the shape shared by command and query handlers.
type UseCase[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	// Command handlers
	CreateUser  UseCase[commands.CreateUserCommand, *user.User]
	CreateItem  UseCase[commands.CreateItemCommand, *item.Item]
	RequestItem UseCase[commands.RequestItemCommand, *item.Item]
	AssignItem  UseCase[commands.AssignItemCommand, *item.Item]
	PickupItem  UseCase[commands.PickupItemCommand, *item.Item]
	DeliverItem UseCase[commands.DeliverItemCommand, *item.Item]

	// Query handlers
	Login             UseCase[queries.AuthenticateUserQuery, queries.UserView]
	ListItems         UseCase[queries.ListItemsQuery, []queries.ItemView]
	GetItem           UseCase[queries.GetItemQuery, queries.ItemView]
	ListNotifications UseCase[queries.ListNotificationsQuery, []queries.NotificationView]
	GetUser           UseCase[queries.GetUserQuery, queries.UserView]
	CountItems        UseCase[queries.CountItemsByStatusQuery, queries.ItemStats]
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	tokens   *TokenService
	logger   *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, tokens *TokenService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		handlers: handlers,
		tokens:   tokens,
		logger:   logger.With("component", "http"),
	}
}

// ListItems handles GET /api/v1/items.
func (s *Server) ListItems(ctx echo.Context) error {
	views, err := s.handlers.ListItems.Handle(ctx.Request().Context(), queries.NewListItemsQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.Item, len(views))
	for i, view := range views {
		response[i] = toItemResponse(view)
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateItem handles POST /api/v1/items. The caller becomes the donor.
func (s *Server) CreateItem(ctx echo.Context) error {
	caller, ok := ActorFrom(ctx)
	if !ok {
		return unauthorized(ctx, ErrMissingToken)
	}

	var body servers.CreateItemJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err := ctx.Validate(&body); err != nil {
		return s.fail(ctx, err)
	}

	description := ""
	if body.Description != nil {
		description = *body.Description
	}

	cmd, err := commands.NewCreateItemCommand(kernel.NewUUID(), body.Name, description, caller)
	if err != nil {
		return s.fail(ctx, err)
	}

	it, err := s.handlers.CreateItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return s.renderItem(ctx, http.StatusCreated, it.ID())
}

// GetItem handles GET /api/v1/items/{itemId}.
func (s *Server) GetItem(ctx echo.Context, itemId servers.ItemId) error {
	id, err := kernel.UUIDFromBytes(itemId[:])
	if err != nil {
		return s.fail(ctx, err)
	}

	return s.renderItem(ctx, http.StatusOK, id)
}

// RequestItem handles PUT /api/v1/items/{itemId}/request.
func (s *Server) RequestItem(ctx echo.Context, itemId servers.ItemId) error {
	return s.transition(ctx, itemId, func(c context.Context, id kernel.UUID, caller actor.Actor) (*item.Item, error) {
		cmd, err := commands.NewRequestItemCommand(id, caller)
		if err != nil {
			return nil, err
		}
		return s.handlers.RequestItem.Handle(c, cmd)
	})
}

// AssignItem handles PUT /api/v1/items/{itemId}/assign.
func (s *Server) AssignItem(ctx echo.Context, itemId servers.ItemId) error {
	var body servers.AssignItemJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err := ctx.Validate(&body); err != nil {
		return s.fail(ctx, err)
	}

	takerID, err := kernel.UUIDFromBytes(body.TakerId[:])
	if err != nil {
		return s.fail(ctx, err)
	}

	return s.transition(ctx, itemId, func(c context.Context, id kernel.UUID, caller actor.Actor) (*item.Item, error) {
		cmd, cmdErr := commands.NewAssignItemCommand(id, caller, takerID)
		if cmdErr != nil {
			return nil, cmdErr
		}
		return s.handlers.AssignItem.Handle(c, cmd)
	})
}

// PickupItem handles PUT /api/v1/items/{itemId}/pickup.
func (s *Server) PickupItem(ctx echo.Context, itemId servers.ItemId) error {
	return s.transition(ctx, itemId, func(c context.Context, id kernel.UUID, caller actor.Actor) (*item.Item, error) {
		cmd, err := commands.NewPickupItemCommand(id, caller)
		if err != nil {
			return nil, err
		}
		return s.handlers.PickupItem.Handle(c, cmd)
	})
}

// DeliverItem handles PUT /api/v1/items/{itemId}/deliver.
func (s *Server) DeliverItem(ctx echo.Context, itemId servers.ItemId) error {
	return s.transition(ctx, itemId, func(c context.Context, id kernel.UUID, caller actor.Actor) (*item.Item, error) {
		cmd, err := commands.NewDeliverItemCommand(id, caller)
		if err != nil {
			return nil, err
		}
		return s.handlers.DeliverItem.Handle(c, cmd)
	})
}

// ListNotifications handles GET /api/v1/notifications for the caller.
func (s *Server) ListNotifications(ctx echo.Context) error {
	caller, ok := ActorFrom(ctx)
	if !ok {
		return unauthorized(ctx, ErrMissingToken)
	}

	query, err := queries.NewListNotificationsQuery(caller.ID())
	if err != nil {
		return s.fail(ctx, err)
	}

	views, err := s.handlers.ListNotifications.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.Notification, len(views))
	for i, view := range views {
		response[i] = servers.Notification{
			Id:        view.ID.Bytes(),
			Message:   view.Message,
			ItemId:    view.ItemID.Bytes(),
			ItemName:  view.ItemName,
			Read:      view.Read,
			CreatedAt: view.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetItemStats handles GET /api/v1/stats/items.
func (s *Server) GetItemStats(ctx echo.Context) error {
	stats, err := s.handlers.CountItems.Handle(ctx.Request().Context(), queries.NewCountItemsByStatusQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.ItemStats{
		Posted:    stats[item.Posted],
		Picked:    stats[item.Picked],
		Delivered: stats[item.Delivered],
		Total:     stats.Total(),
	})
}

// CreateUser handles POST /api/v1/users. It registers the account and returns
// a bearer token for it.
func (s *Server) CreateUser(ctx echo.Context) error {
	var body servers.CreateUserJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err := ctx.Validate(&body); err != nil {
		return s.fail(ctx, err)
	}

	isVolunteer := body.IsVolunteer != nil && *body.IsVolunteer

	cmd, err := commands.NewCreateUserCommand(kernel.NewUUID(), body.Email, body.Password, isVolunteer)
	if err != nil {
		return s.fail(ctx, err)
	}

	u, err := s.handlers.CreateUser.Handle(ctx.Request().Context(), cmd)
	if errors.Is(err, errs.ErrConflict) {
		return ctx.JSON(http.StatusConflict, servers.Error{
			Code:    http.StatusConflict,
			Message: "email is already registered",
		})
	}
	if err != nil {
		return s.fail(ctx, err)
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.RegisteredUser{
		Token: token,
		User: servers.UserProfile{
			Id:          u.ID().Bytes(),
			Email:       u.Email(),
			IsVolunteer: u.IsVolunteer(),
			ItemsGiven:  u.ItemsGiven(),
			ItemsTaken:  u.ItemsTaken(),
		},
	})
}

// Login handles POST /api/v1/auth/login. A successful login returns a new
// token together with the caller's counters.
func (s *Server) Login(ctx echo.Context) error {
	var body servers.LoginJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err := ctx.Validate(&body); err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewAuthenticateUserQuery(body.Email, body.Password)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.handlers.Login.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidCredentials) {
			s.logger.WarnContext(ctx.Request().Context(), "Login failed", "email", query.Email())
		}
		return s.fail(ctx, err)
	}

	token, err := s.tokens.IssueFor(view.ID, view.IsVolunteer)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.RegisteredUser{
		Token: token,
		User:  userProfile(view),
	})
}

// GetCurrentUser handles GET /api/v1/users/me.
func (s *Server) GetCurrentUser(ctx echo.Context) error {
	caller, ok := ActorFrom(ctx)
	if !ok {
		return unauthorized(ctx, ErrMissingToken)
	}

	query, err := queries.NewGetUserQuery(caller.ID())
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.handlers.GetUser.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, userProfile(view))
}

func userProfile(view queries.UserView) servers.UserProfile {
	return servers.UserProfile{
		Id:          view.ID.Bytes(),
		Email:       view.Email,
		IsVolunteer: view.IsVolunteer,
		ItemsGiven:  view.ItemsGiven,
		ItemsTaken:  view.ItemsTaken,
	}
}

type transitionFunc func(ctx context.Context, itemID kernel.UUID, caller actor.Actor) (*item.Item, error)

// transition runs a lifecycle command for the caller and answers with the item
// as committed.
func (s *Server) transition(ctx echo.Context, itemId servers.ItemId, run transitionFunc) error {
	caller, ok := ActorFrom(ctx)
	if !ok {
		return unauthorized(ctx, ErrMissingToken)
	}

	id, err := kernel.UUIDFromBytes(itemId[:])
	if err != nil {
		return s.fail(ctx, err)
	}

	it, err := run(ctx.Request().Context(), id, caller)
	if err != nil {
		return s.fail(ctx, err)
	}

	return s.renderItem(ctx, http.StatusOK, it.ID())
}

func (s *Server) renderItem(ctx echo.Context, status int, id kernel.UUID) error {
	query, err := queries.NewGetItemQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.handlers.GetItem.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(status, toItemResponse(view))
}

func toItemResponse(view queries.ItemView) servers.Item {
	requestedBy := make([]servers.UserRef, len(view.RequestedBy))
	for i, ref := range view.RequestedBy {
		requestedBy[i] = toUserRef(ref)
	}

	var assignedTo *servers.UserRef
	if view.AssignedTo != nil {
		ref := toUserRef(*view.AssignedTo)
		assignedTo = &ref
	}

	return servers.Item{
		Id:                view.ID.Bytes(),
		Name:              view.Name,
		Description:       view.Description,
		Status:            servers.ItemStatus(view.Status.String()),
		CreatedAt:         view.CreatedAt,
		PickupAvailableAt: view.PickupAvailableAt,
		PostedBy:          toUserRef(view.PostedBy),
		RequestedBy:       requestedBy,
		AssignedTo:        assignedTo,
		Version:           view.Version,
	}
}

func toUserRef(ref queries.UserRef) servers.UserRef {
	return servers.UserRef{
		Id:    ref.ID.Bytes(),
		Email: ref.Email,
	}
}
