package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/openbid/auction-house/pkg/config"
	"github.com/openbid/auction-house/pkg/database"
	"github.com/openbid/auction-house/pkg/model"
)

var cfg = config.New()

// words used for generating items' names
var (
	categories = []string{"Electronics", "Clothing", "Books", "Home", "Sports", "Beauty", "Toys", "Art", "Music", "Garden"}
	adjectives = []string{"Rare", "Vintage", "Antique", "Signed", "Limited", "Classic", "Restored", "Original", "Handmade", "Mint"}
	items      = []string{"Phone", "Guitar", "Watch", "Painting", "Camera", "Vinyl", "Clock", "Typewriter", "Lamp", "Poster"}
)

// Seeds demo users and open auctions. Intended for local development and
// load testing, run once against an empty database.
func main() {
	t0 := time.Now()
	defer func() { log.Printf("Demo data generated. Elapsed: %s", time.Since(t0)) }()

	db, closeDB, err := database.New(cfg.PostgresAddr, cfg.PostgresDB, cfg.PostgresUser, cfg.PostgresPassword)
	if err != nil {
		log.Fatalf("### Can't init database: %v", err)
	}
	defer closeDB()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("### Can't migrate database: %v", err)
	}

	users := &database.UserDatabase{DB: db}
	auctions := &database.AuctionDatabase{DB: db}

	usernames, err := generateUsers(users)
	if err != nil {
		log.Fatalf("### Can't generate users: %v", err)
	}

	if err := generateAuctions(auctions, usernames); err != nil {
		log.Fatalf("### Can't generate auctions: %v", err)
	}
}

func generateUsers(repo *database.UserDatabase) ([]string, error) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("can't hash demo password: %w", err)
	}

	usernames := make([]string, 0, cfg.DemoUsers)
	for i := 0; i < cfg.DemoUsers; i++ {
		username := fmt.Sprintf("demo%d", i+1)

		err := repo.CreateUser(ctx, model.User{
			Username:     username,
			PasswordHash: string(hash),
			CreatedAt:    time.Now(),
		})
		if err != nil && !errors.Is(err, model.ErrUserExists) {
			return nil, fmt.Errorf("can't create user %s: %w", username, err)
		}

		usernames = append(usernames, username)
	}

	log.Printf("Created %d demo users (password: \"password\")\n", len(usernames))
	return usernames, nil
}

func generateAuctions(repo *database.AuctionDatabase, usernames []string) error {
	ctx := context.Background()
	now := time.Now()

	for i := 0; i < cfg.DemoAuctions; i++ {
		adj := adjectives[rand.Intn(len(adjectives))]
		category := categories[rand.Intn(len(categories))]
		item := items[rand.Intn(len(items))]

		// stagger closing times so the sweeper always has something to do
		closingIn := time.Duration(rand.Int63n(int64(cfg.DemoDuration))) + time.Minute

		auction := model.AuctionItem{
			ItemName:    fmt.Sprintf("%s %s %s", adj, category, item),
			Description: fmt.Sprintf("%s %s in %s condition", adj, item, category),
			CurrentBid:  float64(rand.Intn(990) + 10),
			ClosingTime: now.Add(closingIn),
			CreatedBy:   usernames[rand.Intn(len(usernames))],
		}

		if err := repo.Create(ctx, &auction); err != nil {
			return fmt.Errorf("can't create auction: %w", err)
		}

		if (i+1)%100 == 0 {
			log.Printf("Inserted %d auctions\n", i+1)
		}
	}

	log.Printf("Created %d open auctions\n", cfg.DemoAuctions)
	return nil
}
