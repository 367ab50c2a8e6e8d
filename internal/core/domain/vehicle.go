package domain

import "time"

// VehicleStatus represents the listing state of a vehicle.
type VehicleStatus string

const (
	VehicleDraft     VehicleStatus = "draft"
	VehiclePublished VehicleStatus = "published"
	VehicleSold      VehicleStatus = "sold"
)

// Valid reports whether s is a known vehicle status.
func (s VehicleStatus) Valid() bool {
	switch s {
	case VehicleDraft, VehiclePublished, VehicleSold:
		return true
	}
	return false
}

// Vehicle is a unit of dealer inventory. PublicID is the identifier exposed on
// public listing pages; ID never leaves the authenticated surface.
type Vehicle struct {
	ID          string        `json:"id" bson:"_id"`
	PublicID    string        `json:"public_id" bson:"public_id"`
	DealerID    string        `json:"dealer_id" bson:"dealer_id"`
	StockNumber string        `json:"stock_number" bson:"stock_number"`
	VIN         string        `json:"vin" bson:"vin"`
	Year        int           `json:"year" bson:"year"`
	Make        string        `json:"make" bson:"make"`
	Model       string        `json:"model" bson:"model"`
	Trim        string        `json:"trim,omitempty" bson:"trim,omitempty"`
	Price       float64       `json:"price" bson:"price"`
	Mileage     int           `json:"mileage" bson:"mileage"`
	Description string        `json:"description,omitempty" bson:"description,omitempty"`
	Images      []string      `json:"images,omitempty" bson:"images,omitempty"`
	Status      VehicleStatus `json:"status" bson:"status"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updated_at"`
}
