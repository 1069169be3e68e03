package server

import (
	"net/http"
	"time"

	"github.com/openbid/auction-house/pkg/server/handler"
	"github.com/openbid/auction-house/pkg/server/middleware"
	"github.com/openbid/auction-house/pkg/service"
)

const (
	readTimeout  = 5 * time.Second
	writeTimeout = 5 * time.Second
)

func New(addr string, auctionSvc service.Auction, userSvc service.User, jwtSecret string) (*http.Server, error) {
	mux := http.NewServeMux()

	authenticated := middleware.Authenticate(jwtSecret)

	mux.Handle("POST /signup", handler.UserSignup(userSvc))
	mux.Handle("POST /signin", handler.UserSignin(userSvc))

	mux.Handle("POST /auction", authenticated(handler.AuctionCreate(auctionSvc)))
	mux.Handle("GET /auctions", handler.AuctionList(auctionSvc))
	mux.Handle("GET /auctions/{id}", handler.AuctionGet(auctionSvc))
	mux.Handle("POST /bid/{id}", authenticated(handler.AuctionPlaceBid(auctionSvc)))

	mux.HandleFunc("/", handler.NotFound)

	chain := middleware.Chain{
		middleware.Log,
		middleware.Recovery,
	}

	return &http.Server{
		Addr:         addr,
		Handler:      chain.Then(mux),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}, nil
}
