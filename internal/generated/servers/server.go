// Package servers holds the HTTP contract described by openapi.yaml: request and
// response types, the ServerInterface implemented by the HTTP adapter and its
// registration on an echo router. The layout follows oapi-codegen's echo output.
package servers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	BearerAuthScopes = "bearerAuth.Scopes"
)

// Defines values for ItemStatus.
const (
	ItemStatusDelivered ItemStatus = "delivered"
	ItemStatusPicked    ItemStatus = "picked"
	ItemStatusPosted    ItemStatus = "posted"
)

// AssignItem defines model for AssignItem.
type AssignItem struct {
	TakerId openapi_types.UUID `json:"takerId" validate:"required"`
}

// Credentials defines model for Credentials.
type Credentials struct {
	Email    string `json:"email" validate:"required,email,max=320"`
	Password string `json:"password" validate:"required,max=72"`
}

// Error defines model for Error.
type Error struct {
	Code      int     `json:"code"`
	Message   string  `json:"message"`
	Reason    *string `json:"reason,omitempty"`
	Retryable *bool   `json:"retryable,omitempty"`
}

// Item defines model for Item.
type Item struct {
	AssignedTo        *UserRef           `json:"assignedTo,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
	Description       string             `json:"description"`
	Id                openapi_types.UUID `json:"id"`
	Name              string             `json:"name"`
	PickupAvailableAt time.Time          `json:"pickupAvailableAt"`
	PostedBy          UserRef            `json:"postedBy"`
	RequestedBy       []UserRef          `json:"requestedBy"`
	Status            ItemStatus         `json:"status"`
	Version           int64              `json:"version"`
}

// ItemStats defines model for ItemStats.
type ItemStats struct {
	Delivered int64 `json:"delivered"`
	Picked    int64 `json:"picked"`
	Posted    int64 `json:"posted"`
	Total     int64 `json:"total"`
}

// ItemStatus defines model for ItemStatus.
type ItemStatus string

// NewItem defines model for NewItem.
type NewItem struct {
	Description *string `json:"description,omitempty" validate:"omitempty,max=4000"`
	Name        string  `json:"name" validate:"required,max=255"`
}

// NewUser defines model for NewUser.
type NewUser struct {
	Email       string `json:"email" validate:"required,email,max=320"`
	IsVolunteer *bool  `json:"isVolunteer,omitempty"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
}

// Notification defines model for Notification.
type Notification struct {
	CreatedAt time.Time          `json:"createdAt"`
	Id        openapi_types.UUID `json:"id"`
	ItemId    openapi_types.UUID `json:"itemId"`
	ItemName  string             `json:"itemName"`
	Message   string             `json:"message"`
	Read      bool               `json:"read"`
}

// RegisteredUser defines model for RegisteredUser.
type RegisteredUser struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// UserProfile defines model for UserProfile.
type UserProfile struct {
	Email       string             `json:"email"`
	Id          openapi_types.UUID `json:"id"`
	IsVolunteer bool               `json:"isVolunteer"`
	ItemsGiven  int                `json:"itemsGiven"`
	ItemsTaken  int                `json:"itemsTaken"`
}

// UserRef defines model for UserRef.
type UserRef struct {
	Email string             `json:"email"`
	Id    openapi_types.UUID `json:"id"`
}

// ItemId defines model for ItemId.
type ItemId = openapi_types.UUID

// LoginJSONRequestBody defines body for Login for application/json ContentType.
type LoginJSONRequestBody = Credentials

// CreateItemJSONRequestBody defines body for CreateItem for application/json ContentType.
type CreateItemJSONRequestBody = NewItem

// AssignItemJSONRequestBody defines body for AssignItem for application/json ContentType.
type AssignItemJSONRequestBody = AssignItem

// CreateUserJSONRequestBody defines body for CreateUser for application/json ContentType.
type CreateUserJSONRequestBody = NewUser

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Exchange email and password for a fresh bearer token
	// (POST /api/v1/auth/login)
	Login(ctx echo.Context) error
	// List every item, newest first
	// (GET /api/v1/items)
	ListItems(ctx echo.Context) error
	// Post a new item as the caller
	// (POST /api/v1/items)
	CreateItem(ctx echo.Context) error
	// Get one item
	// (GET /api/v1/items/{itemId})
	GetItem(ctx echo.Context, itemId ItemId) error
	// Donor picks one requester as the taker
	// (PUT /api/v1/items/{itemId}/assign)
	AssignItem(ctx echo.Context, itemId ItemId) error
	// Volunteer hands the item to its taker
	// (PUT /api/v1/items/{itemId}/deliver)
	DeliverItem(ctx echo.Context, itemId ItemId) error
	// Volunteer picks the item up once the embargo has passed
	// (PUT /api/v1/items/{itemId}/pickup)
	PickupItem(ctx echo.Context, itemId ItemId) error
	// Ask for an item; repeating the call is a no-op
	// (PUT /api/v1/items/{itemId}/request)
	RequestItem(ctx echo.Context, itemId ItemId) error
	// The caller's notifications, newest first
	// (GET /api/v1/notifications)
	ListNotifications(ctx echo.Context) error
	// Item counts per status
	// (GET /api/v1/stats/items)
	GetItemStats(ctx echo.Context) error
	// Register and receive a bearer token
	// (POST /api/v1/users)
	CreateUser(ctx echo.Context) error
	// The caller's profile and reputation counters
	// (GET /api/v1/users/me)
	GetCurrentUser(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// Login converts echo context to params.
func (w *ServerInterfaceWrapper) Login(ctx echo.Context) error {
	return w.Handler.Login(ctx)
}

// ListItems converts echo context to params.
func (w *ServerInterfaceWrapper) ListItems(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.ListItems(ctx)
}

// CreateItem converts echo context to params.
func (w *ServerInterfaceWrapper) CreateItem(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.CreateItem(ctx)
}

// GetItem converts echo context to params.
func (w *ServerInterfaceWrapper) GetItem(ctx echo.Context) error {
	itemId, err := bindItemId(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.GetItem(ctx, itemId)
}

// AssignItem converts echo context to params.
func (w *ServerInterfaceWrapper) AssignItem(ctx echo.Context) error {
	itemId, err := bindItemId(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.AssignItem(ctx, itemId)
}

// DeliverItem converts echo context to params.
func (w *ServerInterfaceWrapper) DeliverItem(ctx echo.Context) error {
	itemId, err := bindItemId(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.DeliverItem(ctx, itemId)
}

// PickupItem converts echo context to params.
func (w *ServerInterfaceWrapper) PickupItem(ctx echo.Context) error {
	itemId, err := bindItemId(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.PickupItem(ctx, itemId)
}

// RequestItem converts echo context to params.
func (w *ServerInterfaceWrapper) RequestItem(ctx echo.Context) error {
	itemId, err := bindItemId(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.RequestItem(ctx, itemId)
}

// ListNotifications converts echo context to params.
func (w *ServerInterfaceWrapper) ListNotifications(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.ListNotifications(ctx)
}

// GetItemStats converts echo context to params.
func (w *ServerInterfaceWrapper) GetItemStats(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.GetItemStats(ctx)
}

// CreateUser converts echo context to params.
func (w *ServerInterfaceWrapper) CreateUser(ctx echo.Context) error {
	return w.Handler.CreateUser(ctx)
}

// GetCurrentUser converts echo context to params.
func (w *ServerInterfaceWrapper) GetCurrentUser(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.GetCurrentUser(ctx)
}

func bindItemId(ctx echo.Context) (ItemId, error) {
	var itemId ItemId

	err := runtime.BindStyledParameterWithOptions("simple", "itemId", ctx.Param("itemId"), &itemId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return itemId, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter itemId: %s", err))
	}

	return itemId, nil
}

// EchoRouter is the subset of echo.Echo and echo.Group used for registration.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the
// paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/v1/auth/login", wrapper.Login)
	router.GET(baseURL+"/api/v1/items", wrapper.ListItems)
	router.POST(baseURL+"/api/v1/items", wrapper.CreateItem)
	router.GET(baseURL+"/api/v1/items/:itemId", wrapper.GetItem)
	router.PUT(baseURL+"/api/v1/items/:itemId/assign", wrapper.AssignItem)
	router.PUT(baseURL+"/api/v1/items/:itemId/deliver", wrapper.DeliverItem)
	router.PUT(baseURL+"/api/v1/items/:itemId/pickup", wrapper.PickupItem)
	router.PUT(baseURL+"/api/v1/items/:itemId/request", wrapper.RequestItem)
	router.GET(baseURL+"/api/v1/notifications", wrapper.ListNotifications)
	router.GET(baseURL+"/api/v1/stats/items", wrapper.GetItemStats)
	router.POST(baseURL+"/api/v1/users", wrapper.CreateUser)
	router.GET(baseURL+"/api/v1/users/me", wrapper.GetCurrentUser)
}
