package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"laundry/api"
	"laundry/internal/adapters/in/http/auth"
	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/application/views"
	"laundry/internal/generated/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handler is satisfied by every command and query handler that returns a view.
type Handler[Req, Resp any] interface {
	Handle(ctx context.Context, req Req) (Resp, error)
}

// ExecHandler is satisfied by command handlers that return only an error.
type ExecHandler[Req any] interface {
	Handle(ctx context.Context, req Req) error
}

// Handlers groups the use cases the API exposes.
type Handlers struct {
	// Command handlers
	CreateOrder             Handler[commands.CreateOrderCommand, views.Order]
	AssignOrder             Handler[commands.AssignOrderCommand, views.Order]
	AdvanceOrderStatus      Handler[commands.AdvanceOrderStatusCommand, views.Order]
	ConfirmDelivery         Handler[commands.ConfirmDeliveryCommand, views.Order]
	CreateOrderCommissions  Handler[commands.CreateOrderCommissionsCommand, []views.Commission]
	UpdatePayoutStatus      Handler[commands.UpdatePayoutStatusCommand, views.Commission]
	RegisterProvider        ExecHandler[commands.RegisterProviderCommand]
	SetProviderAvailability ExecHandler[commands.SetProviderAvailabilityCommand]

	// Query handlers
	GetOrder            Handler[queries.GetOrderQuery, views.Order]
	GetActiveOrders     Handler[queries.GetActiveOrdersQuery, []views.Order]
	GetWallet           Handler[queries.GetWalletQuery, views.Wallet]
	GetReadyCommissions Handler[queries.GetReadyCommissionsQuery, []views.Commission]
}

// Server implements servers.ServerInterface by mapping requests onto
// application use cases. Every operation carries a verified actor placed in
// the context by Authenticate, and a body already checked against the
// OpenAPI contract by ValidateRequest.
type Server struct {
	h      Handlers
	tokens *auth.TokenManager
	logger *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(h Handlers, tokens *auth.TokenManager, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{h: h, tokens: tokens, logger: logger.With("component", "http")}
}

// Register mounts the health check, the contract docs under /swagger and the
// generated API routes on e.
//
// Parameters:
//   - e: the echo instance; its HTTPErrorHandler is replaced so every failure renders an Error body
//   - doc: the loaded contract, see api.Load
//
// Returns:
//   - error: if the contract cannot be routed or published
func (s *Server) Register(e *echo.Echo, doc *openapi3.T) error {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return fmt.Errorf("route openapi contract: %w", err)
	}
	if err := api.RegisterDocs(doc); err != nil {
		return err
	}

	e.HTTPErrorHandler = s.handleError
	e.Use(middleware.Recover())
	e.Use(RequestLogger(s.logger))

	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	secured := e.Group("", Authenticate(s.tokens), ValidateRequest(router))
	servers.RegisterHandlers(secured, s)
	return nil
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}
