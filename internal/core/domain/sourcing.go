package domain

import "time"

// SourcingStatus tracks a customer's request for a vehicle not in stock.
type SourcingStatus string

const (
	SourcingOpen       SourcingStatus = "open"
	SourcingInProgress SourcingStatus = "in_progress"
	SourcingFulfilled  SourcingStatus = "fulfilled"
	SourcingClosed     SourcingStatus = "closed"
)

func (s SourcingStatus) Valid() bool {
	switch s {
	case SourcingOpen, SourcingInProgress, SourcingFulfilled, SourcingClosed:
		return true
	}
	return false
}

var sourcingTransitions = map[SourcingStatus][]SourcingStatus{
	SourcingOpen:       {SourcingInProgress, SourcingClosed},
	SourcingInProgress: {SourcingFulfilled, SourcingClosed},
}

// CanTransitionTo reports whether a sourcing request may move from s to next.
func (s SourcingStatus) CanTransitionTo(next SourcingStatus) bool {
	for _, allowed := range sourcingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// SourcingRequest asks the dealer to find a specific vehicle.
type SourcingRequest struct {
	ID        string         `json:"id" bson:"_id"`
	DealerID  string         `json:"dealer_id" bson:"dealer_id"`
	Name      string         `json:"name" bson:"name"`
	Email     string         `json:"email" bson:"email"`
	Phone     string         `json:"phone,omitempty" bson:"phone,omitempty"`
	Make      string         `json:"make" bson:"make"`
	Model     string         `json:"model" bson:"model"`
	YearFrom  int            `json:"year_from,omitempty" bson:"year_from,omitempty"`
	YearTo    int            `json:"year_to,omitempty" bson:"year_to,omitempty"`
	MaxBudget float64        `json:"max_budget,omitempty" bson:"max_budget,omitempty"`
	Notes     string         `json:"notes,omitempty" bson:"notes,omitempty"`
	Status    SourcingStatus `json:"status" bson:"status"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" bson:"updated_at"`
}
