package models

import "time"

// PurchaseRecord links a checkout allocation to the buyer's dashboard:
// which game, which credential, and when.
type PurchaseRecord struct {
	ID          string    `json:"id"`
	GameID      string    `json:"gameId"`
	Title       string    `json:"title"`
	Platform    string    `json:"platform"`
	ImageURL    string    `json:"imageUrl"`
	Price       int       `json:"price"`
	Code        LoginCode `json:"loginCode"`
	PurchasedAt time.Time `json:"purchasedAt"`
}
