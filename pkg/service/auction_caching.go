package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openbid/auction-house/pkg/model"
)

const auctionsKeyPrefix = "auctions:"

// AuctionCaching keeps a short-lived copy of auction records in redis.
// It may be helpful if we see that single auction is requested many times.
//
// The cache is advisory only: bids always validate against the store, and a
// record closed by the sweeper may be served as open for at most TTL.
// Errors occurring when calling redis are not returned.
type AuctionCaching struct {
	Auction

	Redis *redis.Client
	TTL   time.Duration
}

func (ac *AuctionCaching) Get(ctx context.Context, id string) (model.AuctionItem, error) {
	key := auctionCacheKey(id)

	val, err := ac.Redis.Get(ctx, key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		// do nothing
	case err != nil:
		slog.Error("can't get auction from redis", slog.Any("error", err))

	default:
		var item model.AuctionItem
		if err := json.Unmarshal([]byte(val), &item); err != nil {
			slog.Error("can't parse cached auction", slog.Any("error", err))
			break
		}

		return item, nil
	}

	// slower path - read from the store and fill the cache
	item, err := ac.Auction.Get(ctx, id)
	if err != nil {
		return model.AuctionItem{}, err
	}

	ac.set(ctx, item)
	return item, nil
}

func (ac *AuctionCaching) PlaceBid(ctx context.Context, id, bidder string, amount float64) (model.AuctionItem, error) {
	item, err := ac.Auction.PlaceBid(ctx, id, bidder, amount)
	if err != nil {
		return model.AuctionItem{}, err
	}

	// write-through so the next read sees the committed bid
	ac.set(ctx, item)
	return item, nil
}

func (ac *AuctionCaching) set(ctx context.Context, item model.AuctionItem) {
	data, err := json.Marshal(item)
	if err != nil {
		slog.Error("can't marshal auction for cache", slog.Any("error", err))
		return
	}

	if err := ac.Redis.Set(ctx, auctionCacheKey(item.ID), data, ac.TTL).Err(); err != nil {
		slog.Error("can't set auction in redis", slog.Any("error", err))
	}
}

func auctionCacheKey(id string) string {
	return auctionsKeyPrefix + id
}
