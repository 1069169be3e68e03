package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/openbid/auction-house/pkg/events"
	"github.com/openbid/auction-house/pkg/model"
)

// AuctionEvents publishes an event for every accepted bid. Publishing is
// best effort: failures are logged and never fail the bid itself.
type AuctionEvents struct {
	Auction

	Publisher events.Publisher
}

func (ae *AuctionEvents) PlaceBid(ctx context.Context, id, bidder string, amount float64) (model.AuctionItem, error) {
	item, err := ae.Auction.PlaceBid(ctx, id, bidder, amount)
	if err != nil {
		return model.AuctionItem{}, err
	}

	ev := events.BidEvent{
		EventID:   uuid.NewString(),
		AuctionID: item.ID,
		Bidder:    bidder,
		Amount:    amount,
		PlacedAt:  time.Now(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		if err := ae.Publisher.BidPlaced(ctx, ev); err != nil {
			slog.Error("can't publish bid event", slog.String("auction_id", item.ID), slog.Any("error", err))
		}
	}()

	return item, nil
}
