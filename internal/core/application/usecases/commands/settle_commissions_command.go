package commands

import (
	"errors"
	"time"

	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrSettleCommissionsCommandIsNotConstructed = errors.New(
	"SettleCommissionsCommand must be created via NewSettleCommissionsCommand constructor",
)

// SettleCommissionsCommand is one run of the settlement sweep evaluated at a
// fixed instant.
type SettleCommissionsCommand struct {
	at time.Time

	guard guard.ConstructorGuard
}

func NewSettleCommissionsCommand(at time.Time) (SettleCommissionsCommand, error) {
	if at.IsZero() {
		return SettleCommissionsCommand{}, errs.NewValueIsRequiredError("sweep time")
	}
	return SettleCommissionsCommand{at: at, guard: guard.NewConstructorGuard()}, nil
}

func (c SettleCommissionsCommand) Validate() error {
	return c.guard.Validate(ErrSettleCommissionsCommandIsNotConstructed)
}

func (c SettleCommissionsCommand) At() time.Time { return c.at }

// CommissionsReadyEvent is published after a sweep released at least one commission.
type CommissionsReadyEvent struct {
	Count     int64     `json:"count"`
	Cutoff    time.Time `json:"cutoff"`
	SettledAt time.Time `json:"settledAt"`
}
