package ports

import (
	"context"

	"github.com/dealerhub/dealership-system/internal/core/domain"
)

// LeadInput is the public vehicle inquiry form.
type LeadInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// SellMyCarInput is the public trade-in form.
type SellMyCarInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
	TradeIn domain.TradeIn
}

// SourcingInput is the public "find me a car" form.
type SourcingInput struct {
	Name      string
	Email     string
	Phone     string
	Make      string
	Model     string
	YearFrom  int
	YearTo    int
	MaxBudget float64
	Notes     string
}

// SubmissionResult reports the outcome of a public form submission.
type SubmissionResult struct {
	ID string
	// Duplicate is true when an identical recent submission was already accepted.
	Duplicate bool
}

// PublicService serves unauthenticated pages and forms. Listings are scoped by
// publication status, forms by public vehicle id or dealer slug.
type PublicService interface {
	ListPublishedVehicles(ctx context.Context, dealerSlug string, page PageRequest) (*Page[*domain.Vehicle], error)
	GetPublishedVehicle(ctx context.Context, publicID string) (*domain.Vehicle, error)
	SubmitLead(ctx context.Context, pc PublicContext, vehiclePublicID string, in LeadInput) (*SubmissionResult, error)
	SubmitSellMyCar(ctx context.Context, pc PublicContext, dealerSlug string, in SellMyCarInput) (*SubmissionResult, error)
	SubmitSourcingRequest(ctx context.Context, pc PublicContext, dealerSlug string, in SourcingInput) (*SubmissionResult, error)
}

// SubmissionGuard suppresses duplicate public submissions.
type SubmissionGuard interface {
	// Claim returns true when key was not seen recently and is now recorded.
	Claim(ctx context.Context, key string) (bool, error)
	// Release forgets key so a failed submission can be retried.
	Release(ctx context.Context, key string) error
}

// Notification is an email to a dealer about a public submission.
type Notification struct {
	DealerID string
	To       string
	Subject  string
	Body     string
}

// Notifier queues best-effort notifications; it never fails the caller.
type Notifier interface {
	Notify(n Notification)
}
