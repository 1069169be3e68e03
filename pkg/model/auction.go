package model

import (
	"errors"
	"time"
)

var (
	ErrAuctionClosed = errors.New("auction is closed")
	ErrBidTooLow     = errors.New("bid must be higher than current bid")
	ErrInvalidAmount = errors.New("invalid bid amount")
)

// NoWinner is stored as the winner of an auction that closed without a single bid.
const NoWinner = "No Winner"

const (
	// DefaultSweepInterval bounds how long an expired auction may stay open.
	DefaultSweepInterval = time.Minute
	// DefaultBidRetries bounds compare-and-update attempts per bid.
	DefaultBidRetries = 5
)

type AuctionItem struct {
	ID            string    `json:"id"` // uuid assigned by the store on creation
	ItemName      string    `json:"itemName"`
	Description   string    `json:"description"`
	CurrentBid    float64   `json:"currentBid"`
	HighestBidder string    `json:"highestBidder"`
	ClosingTime   time.Time `json:"closingTime"`
	IsClosed      bool      `json:"isClosed"`
	Winner        string    `json:"winner,omitempty"`
	CreatedBy     string    `json:"createdBy,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`

	// Version is the compare-and-update token. Every committed mutation
	// increments it; a writer holding a stale version gets a conflict.
	Version int64 `json:"-"`
}

// Expired reports whether the auction should be closed by the sweeper at now.
func (a *AuctionItem) Expired(now time.Time) bool {
	return !a.IsClosed && !a.ClosingTime.After(now)
}
