package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/openbid/auction-house/pkg/model"
)

type AuctionLogging struct {
	Auction
}

func (al *AuctionLogging) Create(ctx context.Context, item model.AuctionItem) (created model.AuctionItem, err error) {
	defer func(t0 time.Time) {
		log := slog.With(
			slog.String("item_name", item.ItemName),
			slog.String("created_by", item.CreatedBy),
			slog.String("delay", time.Since(t0).String()),
		)

		if err != nil {
			log.Error("failed to create auction", slog.Any("error", err))
		} else {
			log.Debug("auction created", slog.String("id", created.ID))
		}
	}(time.Now())

	return al.Auction.Create(ctx, item)
}

func (al *AuctionLogging) PlaceBid(ctx context.Context, id, bidder string, amount float64) (item model.AuctionItem, err error) {
	defer func(t0 time.Time) {
		log := slog.With(
			slog.String("auction_id", id),
			slog.String("bidder", bidder),
			slog.Float64("amount", amount),
			slog.String("delay", time.Since(t0).String()),
		)

		if err != nil {
			log.Error("failed to place bid", slog.Any("error", err))
		} else {
			log.Debug("bid placed")
		}
	}(time.Now())

	return al.Auction.PlaceBid(ctx, id, bidder, amount)
}
