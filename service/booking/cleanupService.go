package booking

import (
	"context"
	"time"

	reservationrepo "github.com/NathnaelYimer/room-booking-system/repository/reservation"
)

// Cleaner cancels pending reservations whose slot already ended; an
// admin can no longer usefully confirm them.
type Cleaner interface {
	ReleaseStale(ctx context.Context) (int64, error)
}

type cleaner struct {
	r reservationrepo.Repo
}

func NewCleaner(r reservationrepo.Repo) Cleaner { return &cleaner{r: r} }

func (c *cleaner) ReleaseStale(ctx context.Context) (int64, error) {
	return c.r.CancelStalePending(ctx, time.Now().UTC())
}
