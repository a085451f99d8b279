package http

import (
	"net/http"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/commission"
	"laundry/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// GetMyWallet handles GET /api/v1/wallets/me for riders and partners.
func (s *Server) GetMyWallet(ctx echo.Context) error {
	return s.wallet(ctx, false)
}

// GetPlatformWallet handles GET /api/v1/wallets/platform (admin).
func (s *Server) GetPlatformWallet(ctx echo.Context) error {
	return s.wallet(ctx, true)
}

func (s *Server) wallet(ctx echo.Context, platform bool) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetWalletQuery(actor, platform)
	if err != nil {
		return s.fail(ctx, err)
	}

	wallet, err := s.h.GetWallet.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, wallet)
}

// GetReadyCommissions handles GET /api/v1/commissions/ready?limit=N. An
// omitted limit falls back to the query's default page size.
func (s *Server) GetReadyCommissions(ctx echo.Context, params servers.GetReadyCommissionsParams) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var limit int
	if params.Limit != nil {
		limit = *params.Limit
	}

	query, err := queries.NewGetReadyCommissionsQuery(actor, limit)
	if err != nil {
		return s.fail(ctx, err)
	}

	set, err := s.h.GetReadyCommissions.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, set)
}

// UpdatePayoutStatus handles POST /api/v1/commissions/{id}/payout, the payout
// initiator's report of processing, paid or failed.
func (s *Server) UpdatePayoutStatus(ctx echo.Context, id servers.ID) error {
	actor, commissionID, err := target(ctx, id)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.UpdatePayoutStatusJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, newBadRequest("Invalid request body"))
	}

	status, err := commission.ParsePayoutStatus(string(body.Status))
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdatePayoutStatusCommand(actor, commissionID, status)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.h.UpdatePayoutStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}
