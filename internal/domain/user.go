package domain

import "time"

// Account is a credential record in the "accounts" collection.
type Account struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash []byte    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
}

// Profile is the user-editable profile document, keyed by account id in
// the "users" collection. Saves overwrite the whole document.
type Profile struct {
	FirstName string `json:"firstName" bson:"first_name"`
	LastName  string `json:"lastName" bson:"last_name"`
	Address   string `json:"address" bson:"address"`
}

// Order is a placed order in the "orders" collection.
type Order struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	UserID    string     `json:"userId" bson:"user_id"`
	Items     []CartItem `json:"items" bson:"items"`
	Address   string     `json:"address" bson:"address"`
	Subtotal  float64    `json:"subtotal" bson:"subtotal"`
	Shipping  float64    `json:"shipping" bson:"shipping"`
	Total     float64    `json:"total" bson:"total"`
	CreatedAt time.Time  `json:"createdAt" bson:"created_at"`
}
