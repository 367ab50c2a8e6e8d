package domain

import "time"

// LeadStatus represents the sales pipeline state of a lead.
type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadQualified LeadStatus = "qualified"
	LeadWon       LeadStatus = "won"
	LeadLost      LeadStatus = "lost"
)

// Valid reports whether s is a known lead status.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadNew, LeadContacted, LeadQualified, LeadWon, LeadLost:
		return true
	}
	return false
}

// leadTransitions defines the allowed pipeline moves.
var leadTransitions = map[LeadStatus][]LeadStatus{
	LeadNew:       {LeadContacted, LeadLost},
	LeadContacted: {LeadQualified, LeadLost},
	LeadQualified: {LeadWon, LeadLost},
	LeadLost:      {LeadContacted},
}

// CanTransitionTo reports whether a lead may move from s to next.
func (s LeadStatus) CanTransitionTo(next LeadStatus) bool {
	for _, allowed := range leadTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// LeadSource tells which public form produced the lead.
type LeadSource string

const (
	SourceInquiry   LeadSource = "inquiry"
	SourceSellMyCar LeadSource = "sell_my_car"
)

// TradeIn holds the vehicle a customer offers through the sell-my-car form.
type TradeIn struct {
	Year    int    `json:"year" bson:"year"`
	Make    string `json:"make" bson:"make"`
	Model   string `json:"model" bson:"model"`
	Mileage int    `json:"mileage" bson:"mileage"`
	VIN     string `json:"vin,omitempty" bson:"vin,omitempty"`
}

// Lead is a customer contact captured by a public form.
type Lead struct {
	ID        string     `json:"id" bson:"_id"`
	DealerID  string     `json:"dealer_id" bson:"dealer_id"`
	VehicleID string     `json:"vehicle_id,omitempty" bson:"vehicle_id,omitempty"`
	Source    LeadSource `json:"source" bson:"source"`
	Name      string     `json:"name" bson:"name"`
	Email     string     `json:"email" bson:"email"`
	Phone     string     `json:"phone,omitempty" bson:"phone,omitempty"`
	Message   string     `json:"message,omitempty" bson:"message,omitempty"`
	TradeIn   *TradeIn   `json:"trade_in,omitempty" bson:"trade_in,omitempty"`
	Status    LeadStatus `json:"status" bson:"status"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}
