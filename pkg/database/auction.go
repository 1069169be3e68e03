package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openbid/auction-house/pkg/model"
)

type AuctionRepository interface {
	Get(ctx context.Context, id string) (model.AuctionItem, error)
	List(ctx context.Context) ([]model.AuctionItem, error)
	// ListExpired returns open auctions whose closing time has elapsed at now.
	ListExpired(ctx context.Context, now time.Time) ([]model.AuctionItem, error)
	Create(ctx context.Context, item *model.AuctionItem) error
	// Update commits the item only if the stored version still equals
	// item.Version (compare-and-update). On success the stored version is
	// incremented. Returns ErrConflict if another writer got there first.
	Update(ctx context.Context, item model.AuctionItem) error
}

type AuctionDatabase struct {
	DB *sql.DB
}

const auctionColumns = `id, item_name, description, current_bid, highest_bidder,
	closing_time, is_closed, winner, created_by, created_at, version`

func (ad *AuctionDatabase) Get(ctx context.Context, id string) (model.AuctionItem, error) {
	q := `
		select ` + auctionColumns + `
		from auction_items
		where id = $1
	`
	item, err := scanAuction(ad.DB.QueryRowContext(ctx, q, id))
	if err != nil {
		return model.AuctionItem{}, mapError(err)
	}

	return item, nil
}

func (ad *AuctionDatabase) List(ctx context.Context) ([]model.AuctionItem, error) {
	q := `
		select ` + auctionColumns + `
		from auction_items
		order by created_at desc
	`
	return ad.queryAuctions(ctx, q)
}

func (ad *AuctionDatabase) ListExpired(ctx context.Context, now time.Time) ([]model.AuctionItem, error) {
	q := `
		select ` + auctionColumns + `
		from auction_items
		where not is_closed and closing_time <= $1
	`
	return ad.queryAuctions(ctx, q, now)
}

func (ad *AuctionDatabase) Create(ctx context.Context, item *model.AuctionItem) error {
	item.ID = uuid.NewString()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	item.Version = 1

	q := `
		insert into auction_items
			(id, item_name, description, current_bid, highest_bidder,
			 closing_time, is_closed, winner, created_by, created_at, version)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := ad.DB.ExecContext(ctx, q,
		item.ID, item.ItemName, item.Description, item.CurrentBid, item.HighestBidder,
		item.ClosingTime, item.IsClosed, item.Winner, item.CreatedBy, item.CreatedAt, item.Version,
	)
	if err != nil {
		return fmt.Errorf("can't insert auction: %w", err)
	}

	return nil
}

func (ad *AuctionDatabase) Update(ctx context.Context, item model.AuctionItem) error {
	q := `
		update auction_items
		set current_bid = $1, highest_bidder = $2, is_closed = $3, winner = $4,
		    version = version + 1
		where id = $5 and version = $6
	`
	res, err := ad.DB.ExecContext(ctx, q,
		item.CurrentBid, item.HighestBidder, item.IsClosed, item.Winner,
		item.ID, item.Version,
	)
	if err != nil {
		return fmt.Errorf("can't update auction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't get affected rows: %w", err)
	}
	if affected == 1 {
		return nil
	}

	// Zero rows means either the record is gone or our version is stale.
	if _, err := ad.Get(ctx, item.ID); errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}

	return ErrConflict
}

func (ad *AuctionDatabase) queryAuctions(ctx context.Context, q string, args ...any) ([]model.AuctionItem, error) {
	rows, err := ad.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("can't query auctions: %w", err)
	}
	defer rows.Close()

	items := make([]model.AuctionItem, 0)
	for rows.Next() {
		item, err := scanAuction(rows)
		if err != nil {
			return nil, fmt.Errorf("can't scan auction: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over auctions: %w", err)
	}

	return items, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAuction(s scanner) (model.AuctionItem, error) {
	var item model.AuctionItem
	err := s.Scan(
		&item.ID, &item.ItemName, &item.Description, &item.CurrentBid, &item.HighestBidder,
		&item.ClosingTime, &item.IsClosed, &item.Winner, &item.CreatedBy, &item.CreatedAt, &item.Version,
	)
	return item, err
}
