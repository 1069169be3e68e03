package database

import (
	"database/sql"
	"fmt"
)

const schema = `
create table if not exists users (
    username      text primary key,
    password_hash text not null,
    created_at    timestamptz not null default now()
);

create table if not exists auction_items (
    id             text primary key,
    item_name      text not null,
    description    text not null,
    current_bid    double precision not null,
    highest_bidder text not null default '',
    closing_time   timestamptz not null,
    is_closed      boolean not null default false,
    winner         text not null default '',
    created_by     text not null default '',
    created_at     timestamptz not null default now(),
    version        bigint not null default 1
);

create index if not exists idx_auction_items_open
    on auction_items (closing_time) where not is_closed;
`

// Migrate creates the tables and indexes if they don't already exist.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("can't apply schema: %w", err)
	}
	return nil
}
