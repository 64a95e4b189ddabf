package commands

import (
	"errors"
	"time"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrSweepOrphanImagesCommandIsNotConstructed = errors.New(
	"SweepOrphanImagesCommand must be created via NewSweepOrphanImagesCommand constructor",
)

// SweepOrphanImagesCommand removes stored images no row references that are older than minAge.
type SweepOrphanImagesCommand struct {
	minAge time.Duration

	guard guard.ConstructorGuard
}

func NewSweepOrphanImagesCommand(minAge time.Duration) (SweepOrphanImagesCommand, error) {
	if minAge < 0 {
		return SweepOrphanImagesCommand{}, errs.NewValueIsInvalidError("min age")
	}
	return SweepOrphanImagesCommand{minAge: minAge, guard: guard.NewConstructorGuard()}, nil
}

func (c SweepOrphanImagesCommand) Validate() error {
	return c.guard.Validate(ErrSweepOrphanImagesCommandIsNotConstructed)
}

func (c SweepOrphanImagesCommand) MinAge() time.Duration {
	return c.minAge
}
