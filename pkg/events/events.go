package events

import (
	"context"
	"time"
)

// BidEvent is published after a bid has been durably committed.
type BidEvent struct {
	EventID   string    `json:"event_id"`
	AuctionID string    `json:"auction_id"`
	Bidder    string    `json:"bidder"`
	Amount    float64   `json:"amount"`
	PlacedAt  time.Time `json:"placed_at"`
}

// Publisher delivers accepted-bid events to downstream consumers.
// Publishing is best effort and never affects the outcome of a bid.
type Publisher interface {
	BidPlaced(ctx context.Context, ev BidEvent) error
}
