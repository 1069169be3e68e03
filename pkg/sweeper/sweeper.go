package sweeper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openbid/auction-house/pkg/database"
	"github.com/openbid/auction-house/pkg/model"
)

// Sweeper periodically closes auctions whose closing time has elapsed,
// assigning the winner. Auctions may therefore stay open for up to one
// Interval past their closing time; bids placed in that window are still
// valid, and a bid arriving after the close commit is rejected by the
// bid processor.
type Sweeper struct {
	Repo     database.AuctionRepository
	Interval time.Duration
	Retries  int
}

// Run sweeps every Interval until ctx is cancelled. It is owned by the
// composition root's lifecycle, not free-running.
func (s *Sweeper) Run(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = model.DefaultSweepInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Sweep(ctx, now)
		}
	}
}

// Sweep runs one scan-and-close cycle at the given time. Failures on
// individual records are logged and don't abort the cycle; the next cycle
// retries anything still expired. Returns the number of auctions closed.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) int {
	expired, err := s.Repo.ListExpired(ctx, now)
	if err != nil {
		slog.Error("can't list expired auctions", slog.Any("error", err))
		return 0
	}

	closed := 0
	for _, item := range expired {
		if err := s.close(ctx, item); err != nil {
			slog.Error("can't close auction",
				slog.String("auction_id", item.ID),
				slog.Any("error", err),
			)
			continue
		}

		closed++
	}

	if closed > 0 {
		slog.Info("closed expired auctions", slog.Int("count", closed))
	}

	return closed
}

// close transitions one auction to closed through compare-and-update.
// A conflict means a bid committed between the scan and the close attempt:
// the record is re-read and the close retried with the latest highest bidder.
// Finding the record already closed is treated as success, so racing a
// concurrent sweep is an idempotent no-op.
func (s *Sweeper) close(ctx context.Context, item model.AuctionItem) error {
	retries := s.Retries
	if retries <= 0 {
		retries = model.DefaultBidRetries
	}

	for attempt := 0; attempt < retries; attempt++ {
		if item.IsClosed {
			return nil
		}

		item.IsClosed = true
		item.Winner = item.HighestBidder
		if item.Winner == "" {
			item.Winner = model.NoWinner
		}

		err := s.Repo.Update(ctx, item)
		switch {
		case errors.Is(err, database.ErrConflict):
			fresh, err := s.Repo.Get(ctx, item.ID)
			if err != nil {
				return fmt.Errorf("can't re-read auction after conflict: %w", err)
			}

			item = fresh
			continue
		case errors.Is(err, database.ErrNotFound):
			return nil
		case err != nil:
			return fmt.Errorf("can't commit close: %w", err)
		}

		return nil
	}

	return fmt.Errorf("gave up closing auction after %d attempts", retries)
}
