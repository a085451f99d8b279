package http

import (
	"net/http"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/provider"
	"laundry/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// RegisterProvider handles POST /api/v1/providers (admin). The id is the
// provider's identity subject so tokens and dispatch refer to the same actor.
func (s *Server) RegisterProvider(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.RegisterProviderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, newBadRequest("Invalid request body"))
	}

	providerID, err := toID(body.Id)
	if err != nil {
		return s.fail(ctx, err)
	}
	kind, err := provider.ParseKind(string(body.Kind))
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRegisterProviderCommand(actor, providerID, kind, body.Name)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.h.RegisterProvider.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusCreated)
}

// SetProviderAvailability handles POST /api/v1/providers/{id}/availability.
// ValidateRequest has already rejected bodies without "available".
func (s *Server) SetProviderAvailability(ctx echo.Context, id servers.ID) error {
	actor, providerID, err := target(ctx, id)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.SetProviderAvailabilityJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, newBadRequest("Invalid request body"))
	}

	cmd, err := commands.NewSetProviderAvailabilityCommand(actor, providerID, body.Available)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.h.SetProviderAvailability.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}
