package domain

import "time"

// ExpenseCategory classifies dealership spending.
type ExpenseCategory string

const (
	ExpenseReconditioning ExpenseCategory = "reconditioning"
	ExpenseTransport      ExpenseCategory = "transport"
	ExpenseMarketing      ExpenseCategory = "marketing"
	ExpenseOverhead       ExpenseCategory = "overhead"
	ExpenseOther          ExpenseCategory = "other"
)

// Valid reports whether c is a known category.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseReconditioning, ExpenseTransport, ExpenseMarketing, ExpenseOverhead, ExpenseOther:
		return true
	}
	return false
}

// Expense is a cost recorded against the dealership, optionally tied to a vehicle.
type Expense struct {
	ID          string          `json:"id" bson:"_id"`
	DealerID    string          `json:"dealer_id" bson:"dealer_id"`
	VehicleID   string          `json:"vehicle_id,omitempty" bson:"vehicle_id,omitempty"`
	Category    ExpenseCategory `json:"category" bson:"category"`
	Amount      float64         `json:"amount" bson:"amount"`
	Description string          `json:"description,omitempty" bson:"description,omitempty"`
	IncurredOn  time.Time       `json:"incurred_on" bson:"incurred_on"`
	CreatedBy   string          `json:"created_by" bson:"created_by"`
	CreatedAt   time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" bson:"updated_at"`
}
