package model

import "time"

const (
	PaymentStatusUnpaid = "Unpaid"
	PaymentStatusPaid   = "Paid"
)

type Parcel struct {
	ID              string    `json:"id"`
	TrackingID      string    `json:"tracking_id"`
	Title           string    `json:"title,omitempty"`
	Type            string    `json:"type,omitempty"`
	Weight          float64   `json:"weight,omitempty"`
	Cost            int64     `json:"cost,omitempty"`
	SenderName      string    `json:"sender_name,omitempty"`
	SenderContact   string    `json:"sender_contact,omitempty"`
	SenderAddress   string    `json:"sender_address,omitempty"`
	ReceiverName    string    `json:"receiver_name,omitempty"`
	ReceiverContact string    `json:"receiver_contact,omitempty"`
	ReceiverAddress string    `json:"receiver_address,omitempty"`
	CreatedBy       string    `json:"created_by"`
	PaymentStatus   string    `json:"payment_status"`
	CreatedAt       time.Time `json:"created_at"`
}
