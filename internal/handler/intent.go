package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"profast/internal/service"
)

type createIntentRequest struct {
	Amount int64 `json:"amount"` // minor units (cents)
}

type createIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

func CreatePaymentIntentHandler(gateway *service.StripeClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createIntentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid json")
			return
		}

		clientSecret, err := gateway.CreatePaymentIntent(r.Context(), req.Amount)
		if err != nil {
			if errors.Is(err, service.ErrInvalidAmount) {
				writeMessage(w, http.StatusBadRequest, "amount must be a positive integer")
				return
			}
			slog.Error("create payment intent failed", "error", err)
			writeMessage(w, http.StatusInternalServerError, "failed to create payment intent")
			return
		}

		writeJSON(w, http.StatusOK, createIntentResponse{ClientSecret: clientSecret})
	}
}
