package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/dealerhub/dealership-system/internal/core/domain"
	"github.com/dealerhub/dealership-system/internal/core/ports"
)

const (
	actionSignup = "auth.signup"
	actionLogin  = "auth.login"
)

// AuthService implements dealer signup and staff login. Both are public and
// pass through the abuse gate before touching storage.
type AuthService struct {
	gate    PublicGate
	users   ports.UserRepository
	dealers ports.DealerRepository
	tokens  ports.TokenIssuer
	logger  zerolog.Logger
}

func NewAuthService(gate PublicGate, users ports.UserRepository, dealers ports.DealerRepository, tokens ports.TokenIssuer, logger zerolog.Logger) *AuthService {
	return &AuthService{gate: gate, users: users, dealers: dealers, tokens: tokens, logger: logger}
}

// Signup creates a dealer together with its first administrator and returns a
// session token for that administrator.
func (s *AuthService) Signup(ctx context.Context, pc ports.PublicContext, in ports.SignupInput) (string, *domain.User, error) {
	if err := s.gate.Admit(ctx, actionSignup, pc.Fingerprint, pc.ChallengeToken); err != nil {
		return "", nil, err
	}

	in.Email = normalizeEmail(in.Email)
	if in.DealerSlug == "" {
		in.DealerSlug = slugify(in.DealerName)
	}

	fe := fieldErrors{}
	fe.required("dealer_name", in.DealerName)
	if !slugPattern.MatchString(in.DealerSlug) || len(in.DealerSlug) > 63 {
		fe.add("dealer_slug", "must be lowercase letters, digits and dashes")
	}
	fe.required("name", in.Name)
	fe.email("email", in.Email, true)
	if len(in.Password) < minPasswordLen {
		fe.add("password", fmt.Sprintf("must be at least %d characters", minPasswordLen))
	}
	if err := fe.err(); err != nil {
		return "", nil, err
	}

	if _, err := s.dealers.FindBySlug(ctx, in.DealerSlug); err == nil {
		return "", nil, fmt.Errorf("dealer slug %q: %w", in.DealerSlug, domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", nil, err
	}
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return "", nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	dealer := &domain.Dealer{
		ID:        newID(),
		Slug:      in.DealerSlug,
		Name:      in.DealerName,
		Email:     in.Email,
		LeadEmail: in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.dealers.Create(ctx, dealer); err != nil {
		return "", nil, err
	}

	user := &domain.User{
		ID:           newID(),
		DealerID:     dealer.ID,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.discardDealer(ctx, dealer)
		return "", nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("dealer_id", dealer.ID).Str("slug", dealer.Slug).Msg("dealer signed up")
	return token, user, nil
}

// discardDealer removes a dealer whose first administrator was not stored, so
// its slug is not left claimed by a tenant nobody can sign in to.
func (s *AuthService) discardDealer(ctx context.Context, dealer *domain.Dealer) {
	if err := s.dealers.Delete(context.WithoutCancel(ctx), dealer.ID); err != nil {
		s.logger.Error().Err(err).Str("dealer_id", dealer.ID).Str("slug", dealer.Slug).Msg("failed to remove dealer after signup error")
	}
}

// Login checks credentials and returns a session token. Unknown emails, wrong
// passwords and deactivated accounts all report ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, pc ports.PublicContext, email, password string) (string, *domain.User, error) {
	if err := s.gate.Admit(ctx, actionLogin, pc.Fingerprint, pc.ChallengeToken); err != nil {
		return "", nil, err
	}

	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		s.logger.Warn().Str("user_id", user.ID).Msg("login attempt on deactivated account")
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
