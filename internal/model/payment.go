package model

import "time"

type Payment struct {
	ID            string    `json:"id"`
	ParcelID      string    `json:"parcelId"`
	UserEmail     string    `json:"userEmail"`
	Amount        int64     `json:"amount"`
	PaymentMethod string    `json:"paymentMethod,omitempty"`
	TransactionID string    `json:"transactionId"`
	PaidAt        time.Time `json:"paid_at"`
	PaidAtString  string    `json:"paid_at_string"`
}
