package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"profast/internal/service"
)

type upsertUserRequest struct {
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	LastLogIn *time.Time `json:"last_log_in"`
}

type upsertUserResponse struct {
	InsertedID string `json:"insertedId"`
	Inserted   bool   `json:"inserted"`
}

type touchUserResponse struct {
	Message  string `json:"message"`
	Inserted bool   `json:"inserted"`
}

func UpsertUserHandler(userSvc *service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req upsertUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid json")
			return
		}

		if req.Email == "" {
			writeMessage(w, http.StatusBadRequest, "email is required")
			return
		}

		lastLogIn := time.Now().UTC()
		if req.LastLogIn != nil {
			lastLogIn = *req.LastLogIn
		}

		user, inserted, err := userSvc.Upsert(r.Context(), req.Email, req.Name, lastLogIn)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "failed to add a user")
			return
		}

		if !inserted {
			writeJSON(w, http.StatusOK, touchUserResponse{Message: "user already exists", Inserted: false})
			return
		}

		writeJSON(w, http.StatusCreated, upsertUserResponse{InsertedID: user.ID, Inserted: true})
	}
}
