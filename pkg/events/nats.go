package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

const subjectPrefix = "auctions.bids."

// NATS publishes bid events to per-auction subjects.
type NATS struct {
	Conn *nats.Conn
}

func NewNATS(addr string) (*NATS, func(), error) {
	conn, err := nats.Connect(addr)
	if err != nil {
		return nil, nil, fmt.Errorf("can't connect to NATS: %w", err)
	}

	return &NATS{Conn: conn}, conn.Close, nil
}

func (n *NATS) BidPlaced(_ context.Context, ev BidEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("can't marshal bid event: %w", err)
	}

	if err := n.Conn.Publish(subjectPrefix+ev.AuctionID, data); err != nil {
		return fmt.Errorf("can't publish bid event: %w", err)
	}

	return nil
}
