package domain

import "time"

// Dealer is the tenant: every other record is partitioned by dealer id.
type Dealer struct {
	ID        string    `json:"id" bson:"_id"`
	Slug      string    `json:"slug" bson:"slug"`
	Name      string    `json:"name" bson:"name"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty"`
	Address   string    `json:"address,omitempty" bson:"address,omitempty"`
	LeadEmail string    `json:"lead_email,omitempty" bson:"lead_email,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
