package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dealerhub/dealership-system/internal/core/domain"
	"github.com/dealerhub/dealership-system/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type signupRequest struct {
	DealerName     string `json:"dealer_name"`
	DealerSlug     string `json:"dealer_slug,omitempty"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	ChallengeToken string `json:"challenge_token,omitempty"`
}

type loginRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	ChallengeToken string `json:"challenge_token,omitempty"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// Signup creates a dealership and its first administrator.
//
// @Summary      Sign up a dealership
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Dealership and administrator"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Failure      429   {object}  map[string]string
// @Router       /v1/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := decode(c, &req); err != nil {
		return err
	}

	token, user, err := h.authService.Signup(c.Request().Context(), publicContext(c, req.ChallengeToken), ports.SignupInput{
		DealerName: req.DealerName,
		DealerSlug: req.DealerSlug,
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{Token: token, User: user})
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := decode(c, &req); err != nil {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), publicContext(c, req.ChallengeToken), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}
