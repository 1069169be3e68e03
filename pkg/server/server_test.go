package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"

	"github.com/openbid/auction-house/pkg/database"
	"github.com/openbid/auction-house/pkg/model"
	"github.com/openbid/auction-house/pkg/service"
)

const testJWTSecret = "test-secret"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mem := database.NewMemory()
	auctionSvc := &service.AuctionGeneric{Repo: mem}
	userSvc := &service.UserGeneric{Repo: mem, JWTSecret: testJWTSecret, TokenTTL: time.Hour}

	srv, err := New("127.0.0.1:0", auctionSvc, userSvc, testJWTSecret)
	assert.NoError(t, err)

	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)

	return ts
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	fields := map[string]json.RawMessage{}
	_ = json.NewDecoder(resp.Body).Decode(&fields)

	return resp, fields
}

func signin(t *testing.T, ts *httptest.Server, username string) string {
	t.Helper()

	creds := map[string]string{"username": username, "password": "password"}

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/signup", "", creds)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, fields := doJSON(t, http.MethodPost, ts.URL+"/signin", "", creds)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var token string
	assert.NoError(t, json.Unmarshal(fields["token"], &token))
	assert.NotEqual(t, "", token)

	return token
}

func TestSignupAndSignin(t *testing.T) {
	ts := newTestServer(t)

	creds := map[string]string{"username": "alice", "password": "password"}

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/signup", "", creds)
	check.Equal(t, http.StatusCreated, resp.StatusCode)

	// duplicate username
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/signup", "", creds)
	check.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// missing fields
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/signup", "", map[string]string{"username": "bob"})
	check.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/signin", "", creds)
	check.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/signin", "",
		map[string]string{"username": "alice", "password": "wrong"})
	check.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAuctionFlow(t *testing.T) {
	ts := newTestServer(t)
	token := signin(t, ts, "seller")

	resp, fields := doJSON(t, http.MethodPost, ts.URL+"/auction", token, map[string]any{
		"itemName":    "Vintage Guitar",
		"description": "1962 Stratocaster",
		"startingBid": 100,
		"closingTime": time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var item model.AuctionItem
	assert.NoError(t, json.Unmarshal(fields["item"], &item))
	assert.NotEqual(t, "", item.ID)
	check.Equal(t, "seller", item.CreatedBy)
	check.Equal(t, 100.0, item.CurrentBid)
	check.False(t, item.IsClosed)

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/auctions", "", nil)
	check.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/auctions/"+item.ID, "", nil)
	check.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/auctions/missing", "", nil)
	check.Equal(t, http.StatusNotFound, resp.StatusCode)

	// missing creation fields
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/auction", token, map[string]any{
		"itemName": "No description",
	})
	check.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPlaceBidEndpoint(t *testing.T) {
	ts := newTestServer(t)
	seller := signin(t, ts, "seller")
	bidder := signin(t, ts, "bidder")

	_, fields := doJSON(t, http.MethodPost, ts.URL+"/auction", seller, map[string]any{
		"itemName":    "Brass Clock",
		"description": "Mantel clock",
		"startingBid": 50,
		"closingTime": time.Now().Add(time.Hour).Format(time.RFC3339),
	})

	var item model.AuctionItem
	assert.NoError(t, json.Unmarshal(fields["item"], &item))

	resp, fields := doJSON(t, http.MethodPost, ts.URL+"/bid/"+item.ID, bidder, map[string]any{"bid": 75})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var highestBidder string
	assert.NoError(t, json.Unmarshal(fields["highestBidder"], &highestBidder))
	check.Equal(t, "bidder", highestBidder)

	// too low
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/bid/"+item.ID, bidder, map[string]any{"bid": 60})
	check.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// unknown auction
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/bid/missing", bidder, map[string]any{"bid": 60})
	check.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/bid/some-id", "", map[string]any{"bid": 10})
	check.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/auction", "garbage-token", map[string]any{})
	check.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUnknownEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, fields := doJSON(t, http.MethodGet, ts.URL+"/does-not-exist", "", nil)
	check.Equal(t, http.StatusNotFound, resp.StatusCode)

	var msg string
	assert.NoError(t, json.Unmarshal(fields["message"], &msg))
	check.Equal(t, "Endpoint not found", msg)
}
