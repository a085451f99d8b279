package http

import (
	"errors"
	"fmt"
	"net/http"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// newOrderCommand converts the body into a command. Amounts are pesewas and
// ClientId is only honoured for admins creating on behalf of a client.
func newOrderCommand(actor kernel.Actor, body servers.NewOrder) (commands.CreateOrderCommand, error) {
	location, err := kernel.NewLocation(body.Client.Address, body.Client.Lat, body.Client.Lng)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	items := make([]order.Item, 0, len(body.Items))
	var itemErrs []error
	for i, it := range body.Items {
		item, err := newItem(it)
		if err != nil {
			itemErrs = append(itemErrs, fmt.Errorf("items[%d]: %w", i, err))
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(itemErrs...); err != nil {
		return commands.CreateOrderCommand{}, err
	}

	pricing, err := newPricing(body.Pricing)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	clientID := actor.ID()
	if body.ClientId != nil {
		if clientID, err = toID(*body.ClientId); err != nil {
			return commands.CreateOrderCommand{}, err
		}
	}

	return commands.NewCreateOrderCommand(
		actor,
		kernel.NewUUID(),
		clientID,
		order.Contact{Phone: body.Client.Phone, Location: location},
		items,
		pricing,
	)
}

func newItem(it servers.Item) (order.Item, error) {
	var platformCommission int64
	if it.PlatformCommission != nil {
		platformCommission = *it.PlatformCommission
	}
	unit, unitErr := kernel.NewMoney(it.UnitPrice)
	commission, commissionErr := kernel.NewMoney(platformCommission)
	if err := errors.Join(unitErr, commissionErr); err != nil {
		return order.Item{}, err
	}
	return order.NewItem(it.Name, it.Quantity, unit, commission)
}

func newPricing(p servers.Pricing) (order.Pricing, error) {
	amounts := []int64{p.ItemsSubtotal, p.ServiceFee, p.DeliveryFee, p.SystemFee, p.TotalAmount}
	money := make([]kernel.Money, len(amounts))
	var moneyErrs []error
	for i, amount := range amounts {
		m, err := kernel.NewMoney(amount)
		moneyErrs = append(moneyErrs, err)
		money[i] = m
	}
	if err := errors.Join(moneyErrs...); err != nil {
		return order.Pricing{}, err
	}
	return order.NewPricing(money[0], money[1], money[2], money[3], money[4])
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, newBadRequest("Invalid request body"))
	}

	cmd, err := newOrderCommand(actor, body)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, view)
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(ctx echo.Context, id servers.ID) error {
	actor, orderID, err := target(ctx, id)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(actor, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetActiveOrdersQuery(actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.h.GetActiveOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orders)
}

// AssignOrder handles POST /api/v1/orders/{id}/assign.
func (s *Server) AssignOrder(ctx echo.Context, id servers.ID) error {
	actor, orderID, err := target(ctx, id)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.AssignOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, newBadRequest("Invalid request body"))
	}
	riderID, riderErr := toID(body.RiderId)
	partnerID, partnerErr := toID(body.PartnerId)
	if err := errors.Join(riderErr, partnerErr); err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAssignOrderCommand(actor, orderID, riderID, partnerID)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.h.AssignOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// AdvanceOrderStatus handles POST /api/v1/orders/{id}/status.
func (s *Server) AdvanceOrderStatus(ctx echo.Context, id servers.ID) error {
	actor, orderID, err := target(ctx, id)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.AdvanceOrderStatusJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, newBadRequest("Invalid request body"))
	}

	status, err := order.ParseStatus(string(body.Status))
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAdvanceOrderStatusCommand(actor, orderID, status)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.h.AdvanceOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// ConfirmDelivery handles POST /api/v1/orders/{id}/confirm. Repeated calls
// return the confirmed order unchanged.
func (s *Server) ConfirmDelivery(ctx echo.Context, id servers.ID) error {
	actor, orderID, err := target(ctx, id)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewConfirmDeliveryCommand(actor, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.h.ConfirmDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// CreateOrderCommissions handles POST /api/v1/orders/{id}/commissions.
func (s *Server) CreateOrderCommissions(ctx echo.Context, id servers.ID) error {
	actor, orderID, err := target(ctx, id)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommissionsCommand(actor, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	set, err := s.h.CreateOrderCommissions.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, set)
}

// target resolves the caller and the bound {id} path parameter.
func target(ctx echo.Context, id servers.ID) (kernel.Actor, kernel.UUID, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return kernel.Actor{}, kernel.UUID{}, err
	}
	kid, err := toID(id)
	if err != nil {
		return kernel.Actor{}, kernel.UUID{}, err
	}
	return actor, kid, nil
}

// toID converts an identifier the binder already parsed. The nil UUID is the
// only value left to reject.
func toID(id openapi_types.UUID) (kernel.UUID, error) {
	kid, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, newBadRequest("Invalid id")
	}
	return kid, nil
}
