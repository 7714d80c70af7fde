package models

import "time"

// Customer represents a guest of the restaurant, keyed by phone number
type Customer struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	TotalSpent float64   `json:"total_spent"`
	Visits     int       `json:"visits"`
	LastVisit  time.Time `json:"last_visit"`
}

// OfferRecipient is one customer a promotional message went out to.
type OfferRecipient struct {
	CustomerID  string `json:"customer_id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	WhatsAppURL string `json:"whatsapp_url"`
}

// OfferBroadcast summarizes a message sent to the whole customer directory.
type OfferBroadcast struct {
	Message    string           `json:"message"`
	Queued     int              `json:"queued"`
	Recipients []OfferRecipient `json:"recipients"`
}
