package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/openbid/auction-house/pkg/database"
	"github.com/openbid/auction-house/pkg/model"
	"github.com/openbid/auction-house/pkg/server/middleware"
	"github.com/openbid/auction-house/pkg/service"
)

type createAuctionRequest struct {
	ItemName    string    `json:"itemName"`
	Description string    `json:"description"`
	StartingBid float64   `json:"startingBid"`
	ClosingTime time.Time `json:"closingTime"`
}

type placeBidRequest struct {
	Bid float64 `json:"bid"`
}

func AuctionCreate(svc service.Auction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAuctionRequest
		if err := decodeJSON(r, &req); err != nil {
			respondMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		item, err := svc.Create(r.Context(), model.AuctionItem{
			ItemName:    req.ItemName,
			Description: req.Description,
			CurrentBid:  req.StartingBid,
			ClosingTime: req.ClosingTime,
			CreatedBy:   middleware.Username(r.Context()),
		})
		switch {
		case errors.Is(err, service.ErrMissingFields):
			respondMessage(w, http.StatusBadRequest, "All fields are required")
			return
		case err != nil:
			respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		respondJSON(w, http.StatusCreated, map[string]any{
			"message": "Auction item created",
			"item":    item,
		})
	}
}

func AuctionList(svc service.Auction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		respondJSON(w, http.StatusOK, items)
	}
}

func AuctionGet(svc service.Auction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := svc.Get(r.Context(), r.PathValue("id"))
		switch {
		case errors.Is(err, database.ErrNotFound):
			respondMessage(w, http.StatusNotFound, "Auction not found")
			return
		case err != nil:
			respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		respondJSON(w, http.StatusOK, item)
	}
}

func AuctionPlaceBid(svc service.Auction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req placeBidRequest
		if err := decodeJSON(r, &req); err != nil {
			respondMessage(w, http.StatusBadRequest, "Invalid bid amount")
			return
		}

		item, err := svc.PlaceBid(r.Context(), r.PathValue("id"), middleware.Username(r.Context()), req.Bid)
		switch {
		case errors.Is(err, database.ErrNotFound):
			respondMessage(w, http.StatusNotFound, "Auction not found")
			return
		case errors.Is(err, model.ErrInvalidAmount):
			respondMessage(w, http.StatusBadRequest, "Invalid bid amount")
			return
		case errors.Is(err, model.ErrAuctionClosed):
			respondMessage(w, http.StatusBadRequest, "Auction is closed")
			return
		case errors.Is(err, model.ErrBidTooLow):
			respondMessage(w, http.StatusBadRequest, "Bid must be higher than current bid")
			return
		case errors.Is(err, service.ErrContention):
			respondMessage(w, http.StatusConflict, err.Error())
			return
		case errors.Is(err, service.ErrLimitExceeded):
			respondMessage(w, http.StatusTooManyRequests, err.Error())
			return
		case err != nil:
			respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"message":       "Bid placed successfully",
			"highestBidder": item.HighestBidder,
			"item":          item,
		})
	}
}
