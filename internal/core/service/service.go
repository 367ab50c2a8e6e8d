// Package service implements the dealership use cases. Authenticated services
// enter through access.Guard before any repository call; public services pass
// through the abuse gate first.
package service

import (
	"context"

	"github.com/google/uuid"
)

// PublicGate is satisfied by *abuse.Gate.
type PublicGate interface {
	Admit(ctx context.Context, action, fingerprint, token string) error
}

func newID() string {
	return uuid.NewString()
}
