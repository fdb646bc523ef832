package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"profast/internal/model"
	"profast/internal/mw"
	"profast/internal/service"
)

func ListPaymentsHandler(paymentSvc *service.PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := mw.CallerEmail(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "unauthorized access")
			return
		}

		email := r.URL.Query().Get("email")
		if email == "" {
			writeMessage(w, http.StatusBadRequest, "email is required")
			return
		}

		// A user may only view their own payment history.
		if caller != email {
			writeMessage(w, http.StatusForbidden, "forbidden access")
			return
		}

		payments, err := paymentSvc.ListByUser(r.Context(), email)
		if err != nil {
			slog.Error("list payments failed", "error", err)
			writeMessage(w, http.StatusInternalServerError, "failed to load payment history")
			return
		}

		if payments == nil {
			payments = []model.Payment{}
		}
		writeJSON(w, http.StatusOK, payments)
	}
}

type recordPaymentRequest struct {
	ParcelID      string `json:"parcelId"`
	Email         string `json:"email"`
	Amount        int64  `json:"amount"`
	PaymentMethod string `json:"paymentMethod"`
	TransactionID string `json:"transactionId"`
}

type recordPaymentResponse struct {
	Message    string `json:"message"`
	InsertedID string `json:"insertedId"`
}

func RecordPaymentHandler(paymentSvc *service.PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := mw.CallerEmail(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "unauthorized access")
			return
		}

		var req recordPaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid json")
			return
		}

		if req.ParcelID == "" || req.Email == "" {
			writeMessage(w, http.StatusBadRequest, "parcelId and email are required")
			return
		}

		if caller != req.Email {
			writeMessage(w, http.StatusForbidden, "forbidden access")
			return
		}

		payment := &model.Payment{
			ParcelID:      req.ParcelID,
			UserEmail:     req.Email,
			Amount:        req.Amount,
			PaymentMethod: req.PaymentMethod,
			TransactionID: req.TransactionID,
		}

		payment, err := paymentSvc.Record(r.Context(), payment)
		if err != nil {
			if errors.Is(err, service.ErrParcelNotFoundOrPaid) {
				writeMessage(w, http.StatusNotFound, "parcel not found or already paid")
				return
			}
			slog.Error("record payment failed", "parcel", req.ParcelID, "error", err)
			writeMessage(w, http.StatusInternalServerError, "failed to process payment")
			return
		}

		writeJSON(w, http.StatusCreated, recordPaymentResponse{
			Message:    "payment recorded and parcel marked as paid",
			InsertedID: payment.ID,
		})
	}
}
