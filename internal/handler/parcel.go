package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"profast/internal/model"
	"profast/internal/mw"
	"profast/internal/service"
)

func ListParcelsHandler(parcelSvc *service.ParcelService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		createdBy := r.URL.Query().Get("email")

		parcels, err := parcelSvc.List(r.Context(), createdBy)
		if err != nil {
			slog.Error("list parcels failed", "error", err)
			writeMessage(w, http.StatusInternalServerError, "failed to load parcels")
			return
		}

		if parcels == nil {
			parcels = []model.Parcel{}
		}
		writeJSON(w, http.StatusOK, parcels)
	}
}

func GetParcelHandler(parcelSvc *service.ParcelService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		parcel, err := parcelSvc.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, service.ErrParcelNotFound) {
				writeMessage(w, http.StatusNotFound, "parcel not found")
				return
			}
			slog.Error("get parcel failed", "id", id, "error", err)
			writeMessage(w, http.StatusInternalServerError, "failed to get parcel")
			return
		}

		writeJSON(w, http.StatusOK, parcel)
	}
}

type createParcelRequest struct {
	Title           string  `json:"title"`
	Type            string  `json:"type"`
	Weight          float64 `json:"weight"`
	Cost            int64   `json:"cost"`
	SenderName      string  `json:"sender_name"`
	SenderContact   string  `json:"sender_contact"`
	SenderAddress   string  `json:"sender_address"`
	ReceiverName    string  `json:"receiver_name"`
	ReceiverContact string  `json:"receiver_contact"`
	ReceiverAddress string  `json:"receiver_address"`
}

type createParcelResponse struct {
	InsertedID string `json:"insertedId"`
	TrackingID string `json:"trackingId"`
}

func CreateParcelHandler(parcelSvc *service.ParcelService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email, ok := mw.CallerEmail(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "unauthorized access")
			return
		}

		var req createParcelRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid json")
			return
		}

		parcel := &model.Parcel{
			Title:           req.Title,
			Type:            req.Type,
			Weight:          req.Weight,
			Cost:            req.Cost,
			SenderName:      req.SenderName,
			SenderContact:   req.SenderContact,
			SenderAddress:   req.SenderAddress,
			ReceiverName:    req.ReceiverName,
			ReceiverContact: req.ReceiverContact,
			ReceiverAddress: req.ReceiverAddress,
			CreatedBy:       email,
		}

		parcel, err := parcelSvc.Create(r.Context(), parcel)
		if err != nil {
			slog.Error("create parcel failed", "error", err)
			writeMessage(w, http.StatusInternalServerError, "failed to add parcel")
			return
		}

		writeJSON(w, http.StatusCreated, createParcelResponse{
			InsertedID: parcel.ID,
			TrackingID: parcel.TrackingID,
		})
	}
}

type deleteParcelResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

func DeleteParcelHandler(parcelSvc *service.ParcelService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email, ok := mw.CallerEmail(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "unauthorized access")
			return
		}

		id := chi.URLParam(r, "id")

		count, err := parcelSvc.Delete(r.Context(), id, email)
		if err != nil {
			slog.Error("delete parcel failed", "id", id, "error", err)
			writeMessage(w, http.StatusInternalServerError, "failed to delete parcel")
			return
		}

		if count == 0 {
			writeMessage(w, http.StatusNotFound, "parcel not found")
			return
		}

		writeJSON(w, http.StatusOK, deleteParcelResponse{DeletedCount: count})
	}
}
