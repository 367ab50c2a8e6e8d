package access

import "github.com/dealerhub/dealership-system/internal/core/domain"

// Scope is the tenant constraint of an authorized call. Repositories receive
// DealerID() and must match or stamp it on every row they touch.
type Scope struct {
	id domain.Identity
}

func newScope(id domain.Identity) (Scope, error) {
	if id.DealerID == "" {
		return Scope{}, domain.ErrUnauthorized
	}
	return Scope{id: id}, nil
}

// DealerID is the tenant every query and mutation is constrained to.
func (s Scope) DealerID() string { return s.id.DealerID }

// UserID is the authorized caller.
func (s Scope) UserID() string { return s.id.UserID }

// Identity returns the resolved caller.
func (s Scope) Identity() domain.Identity { return s.id }
