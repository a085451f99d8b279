package commands

import (
	"errors"
	"fmt"
	"time"

	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

// DefaultAutoConfirmBatchSize bounds how many orders one sweep confirms.
const DefaultAutoConfirmBatchSize = 200

var ErrAutoConfirmDeliveriesCommandIsNotConstructed = errors.New(
	"AutoConfirmDeliveriesCommand must be created via NewAutoConfirmDeliveriesCommand constructor",
)

// AutoConfirmDeliveriesCommand is one run of the confirmation sweep evaluated at a
// fixed instant.
type AutoConfirmDeliveriesCommand struct {
	at        time.Time
	batchSize int

	guard guard.ConstructorGuard
}

func NewAutoConfirmDeliveriesCommand(at time.Time, batchSize int) (AutoConfirmDeliveriesCommand, error) {
	if at.IsZero() {
		return AutoConfirmDeliveriesCommand{}, errs.NewValueIsRequiredError("sweep time")
	}
	if batchSize <= 0 {
		return AutoConfirmDeliveriesCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"batch size", fmt.Errorf("%d is not greater than 0", batchSize))
	}
	return AutoConfirmDeliveriesCommand{at: at, batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c AutoConfirmDeliveriesCommand) Validate() error {
	return c.guard.Validate(ErrAutoConfirmDeliveriesCommandIsNotConstructed)
}

func (c AutoConfirmDeliveriesCommand) At() time.Time  { return c.at }
func (c AutoConfirmDeliveriesCommand) BatchSize() int { return c.batchSize }

// AutoConfirmResult summarises one sweep.
type AutoConfirmResult struct {
	Candidates int
	Confirmed  int
	Skipped    int
	Failed     int
}
