package handler

import (
	"errors"
	"net/http"

	"github.com/openbid/auction-house/pkg/model"
	"github.com/openbid/auction-house/pkg/service"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func UserSignup(svc service.User) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := decodeJSON(r, &req); err != nil {
			respondMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		err := svc.SignUp(r.Context(), req.Username, req.Password)
		switch {
		case errors.Is(err, service.ErrMissingFields):
			respondMessage(w, http.StatusBadRequest, "Username and password required")
			return
		case errors.Is(err, model.ErrUserExists):
			respondMessage(w, http.StatusBadRequest, "Username already exists")
			return
		case err != nil:
			respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		respondMessage(w, http.StatusCreated, "User registered successfully")
	}
}

func UserSignin(svc service.User) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := decodeJSON(r, &req); err != nil {
			respondMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		token, err := svc.SignIn(r.Context(), req.Username, req.Password)
		switch {
		case errors.Is(err, model.ErrInvalidCredentials):
			respondMessage(w, http.StatusBadRequest, "Invalid credentials")
			return
		case err != nil:
			respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{
			"message": "Signin successful",
			"token":   token,
		})
	}
}
