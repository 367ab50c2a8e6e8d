package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dealerhub/dealership-system/internal/core/domain"
	"github.com/dealerhub/dealership-system/internal/core/ports"
)

// UserHandler manages the staff accounts of the caller's dealership.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type createUserRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

type updateRoleRequest struct {
	Role domain.Role `json:"role"`
}

type setActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// List godoc
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Create godoc
//
// @Summary      Create a user in the caller's dealership
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "New user"
// @Success      201   {object}  domain.User
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	user, err := h.service.Create(c.Request().Context(), ports.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// UpdateRole godoc
//
// @Summary      Change a user's role
// @Tags         users
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string             true  "User ID"
// @Param        body  body  updateRoleRequest  true  "Role"
// @Success      204
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /v1/users/{id}/role [patch]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	var req updateRoleRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	if err := h.service.UpdateRole(c.Request().Context(), c.Param("id"), req.Role); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SetActive godoc
//
// @Summary      Activate or deactivate a user
// @Tags         users
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string            true  "User ID"
// @Param        body  body  setActiveRequest  true  "Active flag"
// @Success      204
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /v1/users/{id}/active [patch]
func (h *UserHandler) SetActive(c echo.Context) error {
	var req setActiveRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.service.SetActive(c.Request().Context(), c.Param("id"), *req.Active); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
