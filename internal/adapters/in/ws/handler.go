// Package ws is the push channel. A socket becomes addressable once it sends
// an authenticate frame with a valid token; after that it receives order events
// from the notification bus and may issue assign and status commands.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"laundry/internal/adapters/in/http/auth"
	"laundry/internal/adapters/out/notify"
	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/views"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// Frame event names.
const (
	EventAuthenticate      = "authenticate"
	EventAssignOrder       = "assign_order"
	EventUpdateOrderStatus = "update_order_status"
	EventAuthenticated     = "authenticated"
	EventError             = "error"
)

const commandTimeout = 10 * time.Second

type (
	AssignOrderHandler interface {
		Handle(ctx context.Context, cmd commands.AssignOrderCommand) (views.Order, error)
	}

	AdvanceOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.AdvanceOrderStatusCommand) (views.Order, error)
	}
)

type authenticateRequest struct {
	Token   string       `json:"token"`
	ActorID *kernel.UUID `json:"actorId"`
	Role    string       `json:"role"`
}

type assignOrderRequest struct {
	OrderID   kernel.UUID `json:"orderId"`
	RiderID   kernel.UUID `json:"riderId"`
	PartnerID kernel.UUID `json:"partnerId"`
}

type updateStatusRequest struct {
	OrderID kernel.UUID  `json:"orderId"`
	Status  string       `json:"status"`
	ActorID *kernel.UUID `json:"actorId"`
}

// Authenticated acknowledges a successful authenticate frame.
type Authenticated struct {
	ActorID kernel.UUID `json:"actorId"`
	Role    kernel.Role `json:"role"`
}

// Error is the body of an error frame.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Handler struct {
	upgrader  websocket.Upgrader
	tokens    *auth.TokenManager
	directory *notify.Directory
	assign    AssignOrderHandler
	advance   AdvanceOrderStatusHandler
	logger    *slog.Logger
}

func NewHandler(
	tokens *auth.TokenManager,
	directory *notify.Directory,
	assign AssignOrderHandler,
	advance AdvanceOrderStatusHandler,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Native clients send no Origin; identity comes from the token.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		tokens:    tokens,
		directory: directory,
		assign:    assign,
		advance:   advance,
		logger:    logger.With("component", "ws"),
	}
}

// Serve handles GET /ws. It blocks for the lifetime of the socket.
func (h *Handler) Serve(c echo.Context) error {
	socket, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "error", err)
		return nil
	}

	conn := newConn(socket)
	go conn.writePump()

	h.readLoop(c.Request().Context(), conn)

	h.directory.Unregister(conn)
	conn.close(errReaderFinished)
	if errors.Is(conn.closeCause(), errSendQueueFull) {
		h.logger.Warn("slow consumer disconnected", "conn", conn.id, "actor", conn.actor.String())
	}
	return nil
}

func (h *Handler) readLoop(ctx context.Context, conn *conn) {
	conn.ws.SetReadLimit(maxMessageSize)
	_ = conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	conn.ws.SetPongHandler(func(string) error {
		return conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Info("connection dropped", "conn", conn.id, "error", err)
			}
			return
		}
		_ = conn.ws.SetReadDeadline(time.Now().Add(pongWait))

		var frame inbound
		if err := json.Unmarshal(data, &frame); err != nil {
			h.reply(conn, EventError, Error{Code: "bad_request", Message: "frame is not valid JSON"})
			continue
		}
		h.dispatch(ctx, conn, frame)
	}
}

func (h *Handler) dispatch(ctx context.Context, conn *conn, frame inbound) {
	switch frame.Event {
	case EventAuthenticate:
		h.authenticate(conn, frame.Data)
	case EventAssignOrder:
		h.assignOrder(ctx, conn, frame.Data)
	case EventUpdateOrderStatus:
		h.updateOrderStatus(ctx, conn, frame.Data)
	default:
		h.reply(conn, EventError, Error{Code: "bad_request", Message: "unknown event " + frame.Event})
	}
}

// authenticate binds the socket to the token's actor. A re-authenticate on the
// same socket moves it to the new identity.
func (h *Handler) authenticate(conn *conn, data json.RawMessage) {
	var req authenticateRequest
	if err := json.Unmarshal(data, &req); err != nil || req.Token == "" {
		h.reply(conn, EventError, Error{Code: "bad_request", Message: "authenticate needs a token"})
		return
	}

	actor, err := h.tokens.ParseToken(req.Token)
	if err != nil {
		h.fail(conn, err)
		return
	}
	if (req.ActorID != nil && !req.ActorID.IsEqual(actor.ID())) ||
		(req.Role != "" && req.Role != actor.Role().String()) {
		h.fail(conn, errs.NewForbiddenError(actor.String(), "claim another identity"))
		return
	}

	if prev, ok := h.directory.Owner(conn); ok && !prev.ID().IsEqual(actor.ID()) {
		h.logger.Info("socket changed identity", "conn", conn.id, "from", prev.String(), "to", actor.String())
	}
	conn.actor = actor
	conn.authenticated = true
	h.directory.Register(actor, conn)
	h.logger.Debug("socket authenticated", "conn", conn.id, "actor", actor.String())

	h.reply(conn, EventAuthenticated, Authenticated{ActorID: actor.ID(), Role: actor.Role()})
}

func (h *Handler) assignOrder(ctx context.Context, conn *conn, data json.RawMessage) {
	if !h.requireAuth(conn) {
		return
	}
	var req assignOrderRequest
	if err := json.Unmarshal(data, &req); err != nil {
		h.reply(conn, EventError, Error{Code: "bad_request", Message: "malformed assign_order"})
		return
	}

	cmd, err := commands.NewAssignOrderCommand(conn.actor, req.OrderID, req.RiderID, req.PartnerID)
	if err != nil {
		h.fail(conn, err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()
	if _, err := h.assign.Handle(ctx, cmd); err != nil {
		h.fail(conn, err)
	}
}

func (h *Handler) updateOrderStatus(ctx context.Context, conn *conn, data json.RawMessage) {
	if !h.requireAuth(conn) {
		return
	}
	var req updateStatusRequest
	if err := json.Unmarshal(data, &req); err != nil {
		h.reply(conn, EventError, Error{Code: "bad_request", Message: "malformed update_order_status"})
		return
	}
	if req.ActorID != nil && !req.ActorID.IsEqual(conn.actor.ID()) {
		h.fail(conn, errs.NewForbiddenError(conn.actor.String(), "act for another actor"))
		return
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		h.fail(conn, err)
		return
	}
	cmd, err := commands.NewAdvanceOrderStatusCommand(conn.actor, req.OrderID, status)
	if err != nil {
		h.fail(conn, err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()
	if _, err := h.advance.Handle(ctx, cmd); err != nil {
		h.fail(conn, err)
	}
}

func (h *Handler) requireAuth(conn *conn) bool {
	if conn.authenticated {
		return true
	}
	h.reply(conn, EventError, Error{Code: "unauthenticated", Message: "send authenticate first"})
	return false
}

func (h *Handler) fail(conn *conn, err error) {
	code := errorCode(err)
	msg := err.Error()
	switch code {
	case "internal":
		h.logger.Error("socket command failed", "conn", conn.id, "error", err)
		msg = "internal error"
	case "unavailable":
		msg = "service temporarily unavailable"
	case "unauthenticated":
		msg = "invalid token"
	}
	h.reply(conn, EventError, Error{Code: code, Message: msg})
}

func (h *Handler) reply(conn *conn, event string, payload any) {
	if err := conn.Send(event, payload); err != nil {
		h.logger.Debug("reply dropped", "conn", conn.id, "event", event, "error", err)
	}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidToken):
		return "unauthenticated"
	case errors.Is(err, errs.ErrForbidden):
		return "forbidden"
	case errors.Is(err, errs.ErrObjectNotFound):
		return "not_found"
	case errors.Is(err, errs.ErrConflict), errors.Is(err, errs.ErrInvalidState):
		return "conflict"
	case errors.Is(err, errs.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return "invalid"
	case errors.Is(err, errs.ErrUnavailable):
		return "unavailable"
	default:
		return "internal"
	}
}
