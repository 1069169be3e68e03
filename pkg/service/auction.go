package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/openbid/auction-house/pkg/database"
	"github.com/openbid/auction-house/pkg/model"
)

var (
	// ErrContention is returned when a bid keeps losing the compare-and-update
	// race and exhausts its retry budget. Callers are expected to retry.
	ErrContention = errors.New("too much contention on auction, try again")

	ErrMissingFields = errors.New("all fields are required")
)

type Auction interface {
	Create(ctx context.Context, item model.AuctionItem) (model.AuctionItem, error)
	Get(ctx context.Context, id string) (model.AuctionItem, error)
	List(ctx context.Context) ([]model.AuctionItem, error)
	PlaceBid(ctx context.Context, id, bidder string, amount float64) (model.AuctionItem, error)
}

// AuctionGeneric represents an implementation of Auction interface containing core logics
// which can be wrapped in other implementations contained in auction_*.go.
type AuctionGeneric struct {
	Repo       database.AuctionRepository
	BidRetries int
}

func (ag *AuctionGeneric) Create(ctx context.Context, item model.AuctionItem) (model.AuctionItem, error) {
	if item.ItemName == "" || item.Description == "" || item.CurrentBid <= 0 || item.ClosingTime.IsZero() {
		return model.AuctionItem{}, ErrMissingFields
	}

	if err := ag.Repo.Create(ctx, &item); err != nil {
		return model.AuctionItem{}, fmt.Errorf("can't create auction in DB: %w", err)
	}

	return item, nil
}

func (ag *AuctionGeneric) Get(ctx context.Context, id string) (model.AuctionItem, error) {
	return ag.Repo.Get(ctx, id)
}

func (ag *AuctionGeneric) List(ctx context.Context) ([]model.AuctionItem, error) {
	return ag.Repo.List(ctx)
}

// PlaceBid validates and applies a single bid. The whole read-validate-commit
// cycle runs through the store's compare-and-update token, so two bids can
// never both extend the same prior state: the loser of the race re-reads the
// fresh record and re-validates against it, up to BidRetries attempts.
func (ag *AuctionGeneric) PlaceBid(ctx context.Context, id, bidder string, amount float64) (model.AuctionItem, error) {
	retries := ag.BidRetries
	if retries <= 0 {
		retries = model.DefaultBidRetries
	}

	for attempt := 0; attempt < retries; attempt++ {
		item, err := ag.Repo.Get(ctx, id)
		if err != nil {
			return model.AuctionItem{}, err
		}

		if math.IsNaN(amount) || math.IsInf(amount, 0) {
			return model.AuctionItem{}, model.ErrInvalidAmount
		}
		if item.IsClosed {
			return model.AuctionItem{}, model.ErrAuctionClosed
		}
		if amount <= item.CurrentBid {
			return model.AuctionItem{}, model.ErrBidTooLow
		}

		item.CurrentBid = amount
		item.HighestBidder = bidder

		err = ag.Repo.Update(ctx, item)
		switch {
		case errors.Is(err, database.ErrConflict):
			continue // another bid or the sweeper got there first, re-read and re-validate
		case err != nil:
			return model.AuctionItem{}, fmt.Errorf("can't commit bid: %w", err)
		}

		item.Version++
		return item, nil
	}

	return model.AuctionItem{}, ErrContention
}
