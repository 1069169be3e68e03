package database

import (
	"context"
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"

	"github.com/openbid/auction-house/pkg/model"
)

func TestMemoryCreateAssignsIDAndVersion(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	item := model.AuctionItem{
		ItemName:    "Vintage Clock",
		Description: "Brass mantel clock",
		CurrentBid:  50,
		ClosingTime: time.Now().Add(time.Hour),
	}
	assert.NoError(t, mem.Create(ctx, &item))

	check.NotEqual(t, "", item.ID)
	check.Equal(t, int64(1), item.Version)

	got, err := mem.Get(ctx, item.ID)
	assert.NoError(t, err)
	check.Equal(t, item.ItemName, got.ItemName)
}

func TestMemoryGetMissing(t *testing.T) {
	mem := NewMemory()

	_, err := mem.Get(context.Background(), "nope")
	check.Error(t, err)
	check.True(t, err == ErrNotFound)
}

func TestMemoryUpdateStaleVersionConflict(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	item := model.AuctionItem{ItemName: "Lamp", Description: "Desk lamp", CurrentBid: 10, ClosingTime: time.Now().Add(time.Hour)}
	assert.NoError(t, mem.Create(ctx, &item))

	// Two writers read the same version; only the first commit may win.
	first := item
	second := item

	first.CurrentBid = 20
	assert.NoError(t, mem.Update(ctx, first))

	second.CurrentBid = 15
	err := mem.Update(ctx, second)
	check.True(t, err == ErrConflict)

	got, err := mem.Get(ctx, item.ID)
	assert.NoError(t, err)
	check.Equal(t, 20.0, got.CurrentBid)
	check.Equal(t, int64(2), got.Version)
}

func TestMemoryUpdateMissing(t *testing.T) {
	mem := NewMemory()

	err := mem.Update(context.Background(), model.AuctionItem{ID: "nope", Version: 1})
	check.True(t, err == ErrNotFound)
}

func TestMemoryListExpired(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	now := time.Now()

	expired := model.AuctionItem{ItemName: "Expired", Description: "x", CurrentBid: 1, ClosingTime: now.Add(-time.Minute)}
	open := model.AuctionItem{ItemName: "Open", Description: "x", CurrentBid: 1, ClosingTime: now.Add(time.Hour)}
	closed := model.AuctionItem{ItemName: "Closed", Description: "x", CurrentBid: 1, ClosingTime: now.Add(-time.Hour), IsClosed: true, Winner: model.NoWinner}

	assert.NoError(t, mem.Create(ctx, &expired))
	assert.NoError(t, mem.Create(ctx, &open))
	assert.NoError(t, mem.Create(ctx, &closed))

	got, err := mem.ListExpired(ctx, now)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(got))
	check.Equal(t, expired.ID, got[0].ID)

	all, err := mem.List(ctx)
	assert.NoError(t, err)
	check.Equal(t, 3, len(all))
}

func TestMemoryUsers(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	user := model.User{Username: "alice", PasswordHash: "hash"}
	assert.NoError(t, mem.CreateUser(ctx, user))

	err := mem.CreateUser(ctx, user)
	check.True(t, err == model.ErrUserExists)

	got, err := mem.GetByUsername(ctx, "alice")
	assert.NoError(t, err)
	check.Equal(t, "hash", got.PasswordHash)

	_, err = mem.GetByUsername(ctx, "bob")
	check.True(t, err == ErrNotFound)
}
