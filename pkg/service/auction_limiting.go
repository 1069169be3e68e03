package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openbid/auction-house/pkg/limiter"
	"github.com/openbid/auction-house/pkg/model"
)

var ErrLimitExceeded = errors.New("user exceeded his bidding limit")

// AuctionLimiting is a wrapper over Auction service
// which makes sure that user can place no more than Limiter.Limit bids per hour.
//
// If failed to check limits, the behavior depends on FailOpen flag. If set, current request is allowed.
// Otherwise, an error will be returned.
type AuctionLimiting struct {
	Auction

	Limiter  *limiter.Limiter
	FailOpen bool
}

func (al *AuctionLimiting) PlaceBid(ctx context.Context, id, bidder string, amount float64) (model.AuctionItem, error) {
	exceeded, err := al.Limiter.LimitExceeded(ctx, bidder)
	if err != nil {
		if !al.FailOpen {
			return model.AuctionItem{}, fmt.Errorf("can't check if limit exceeded: %w", err)
		}

		slog.Error("can't check if limit exceeded", slog.Any("error", err))
	}

	if exceeded {
		return model.AuctionItem{}, ErrLimitExceeded
	}

	item, err := al.Auction.PlaceBid(ctx, id, bidder, amount)
	if err != nil {
		return model.AuctionItem{}, err
	}

	if _, err := al.Limiter.Increment(ctx, bidder); err != nil {
		slog.Error("can't increment user's limit", slog.Any("error", err))
	}

	return item, nil
}
