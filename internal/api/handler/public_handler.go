package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dealerhub/dealership-system/internal/core/domain"
	"github.com/dealerhub/dealership-system/internal/core/ports"
)

// PublicHandler serves the dealer websites: published inventory and the
// contact forms. None of its routes require a session.
type PublicHandler struct {
	service ports.PublicService
}

func NewPublicHandler(service ports.PublicService) *PublicHandler {
	return &PublicHandler{service: service}
}

// publicVehicle is the listing view. Internal ids and dealer ids are omitted.
type publicVehicle struct {
	ID          string    `json:"id"`
	Year        int       `json:"year"`
	Make        string    `json:"make"`
	Model       string    `json:"model"`
	Trim        string    `json:"trim,omitempty"`
	Price       float64   `json:"price"`
	Mileage     int       `json:"mileage"`
	VIN         string    `json:"vin"`
	Description string    `json:"description,omitempty"`
	Images      []string  `json:"images,omitempty"`
	ListedAt    time.Time `json:"listed_at"`
}

func toPublicVehicle(v *domain.Vehicle) publicVehicle {
	return publicVehicle{
		ID:          v.PublicID,
		Year:        v.Year,
		Make:        v.Make,
		Model:       v.Model,
		Trim:        v.Trim,
		Price:       v.Price,
		Mileage:     v.Mileage,
		VIN:         v.VIN,
		Description: v.Description,
		Images:      v.Images,
		ListedAt:    v.CreatedAt.UTC(),
	}
}

type leadRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Message        string `json:"message"`
	ChallengeToken string `json:"challenge_token"`
}

type tradeInRequest struct {
	Year    int    `json:"year"`
	Make    string `json:"make"`
	Model   string `json:"model"`
	Mileage int    `json:"mileage"`
	VIN     string `json:"vin"`
}

type sellMyCarRequest struct {
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	Message        string         `json:"message"`
	Vehicle        tradeInRequest `json:"vehicle"`
	ChallengeToken string         `json:"challenge_token"`
}

type sourcingRequest struct {
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Make           string  `json:"make"`
	Model          string  `json:"model"`
	YearFrom       int     `json:"year_from"`
	YearTo         int     `json:"year_to"`
	MaxBudget      float64 `json:"max_budget"`
	Notes          string  `json:"notes"`
	ChallengeToken string  `json:"challenge_token"`
}

type submissionResponse struct {
	Status string `json:"status"`
}

// submitted hides whether the submission was new or a suppressed duplicate.
func submitted(c echo.Context, _ *ports.SubmissionResult) error {
	return c.JSON(http.StatusAccepted, submissionResponse{Status: "received"})
}

// ListVehicles godoc
//
// @Summary      List a dealer's published vehicles
// @Tags         public
// @Produce      json
// @Param        slug   path      string  true   "Dealer slug"
// @Param        page   query     int     false  "Page (1-based)"
// @Param        limit  query     int     false  "Page size (max 100)"
// @Success      200    {object}  map[string]any
// @Failure      404    {object}  map[string]string
// @Router       /v1/public/dealers/{slug}/vehicles [get]
func (h *PublicHandler) ListVehicles(c echo.Context) error {
	var q pageQuery
	if err := bind(c, &q); err != nil {
		return err
	}
	page, err := h.service.ListPublishedVehicles(c.Request().Context(), c.Param("slug"), q.request())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPage(page, toPublicVehicle))
}

// GetVehicle godoc
//
// @Summary      Get a published vehicle
// @Tags         public
// @Produce      json
// @Param        id   path      string  true  "Public vehicle ID"
// @Success      200  {object}  publicVehicle
// @Failure      404  {object}  map[string]string
// @Router       /v1/public/vehicles/{id} [get]
func (h *PublicHandler) GetVehicle(c echo.Context) error {
	v, err := h.service.GetPublishedVehicle(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPublicVehicle(v))
}

// SubmitLead godoc
//
// @Summary      Enquire about a published vehicle
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        id                 path      string       true   "Public vehicle ID"
// @Param        X-Challenge-Token  header    string       false  "Bot challenge token"
// @Param        body               body      leadRequest  true   "Contact details"
// @Success      202                {object}  submissionResponse
// @Failure      400                {object}  map[string]string
// @Failure      404                {object}  map[string]string
// @Failure      422                {object}  map[string]any
// @Failure      429                {object}  map[string]string
// @Router       /v1/public/vehicles/{id}/leads [post]
func (h *PublicHandler) SubmitLead(c echo.Context) error {
	var req leadRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	res, err := h.service.SubmitLead(c.Request().Context(), publicContext(c, req.ChallengeToken), c.Param("id"), ports.LeadInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return submitted(c, res)
}

// SubmitSellMyCar godoc
//
// @Summary      Offer a vehicle to a dealer
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        slug  path      string            true  "Dealer slug"
// @Param        body  body      sellMyCarRequest  true  "Seller and vehicle"
// @Success      202   {object}  submissionResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Failure      429   {object}  map[string]string
// @Router       /v1/public/dealers/{slug}/sell-my-car [post]
func (h *PublicHandler) SubmitSellMyCar(c echo.Context) error {
	var req sellMyCarRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	res, err := h.service.SubmitSellMyCar(c.Request().Context(), publicContext(c, req.ChallengeToken), c.Param("slug"), ports.SellMyCarInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
		TradeIn: domain.TradeIn{
			Year:    req.Vehicle.Year,
			Make:    req.Vehicle.Make,
			Model:   req.Vehicle.Model,
			Mileage: req.Vehicle.Mileage,
			VIN:     req.Vehicle.VIN,
		},
	})
	if err != nil {
		return err
	}
	return submitted(c, res)
}

// SubmitSourcing godoc
//
// @Summary      Ask a dealer to find a vehicle
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        slug  path      string           true  "Dealer slug"
// @Param        body  body      sourcingRequest  true  "Wanted vehicle"
// @Success      202   {object}  submissionResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Failure      429   {object}  map[string]string
// @Router       /v1/public/dealers/{slug}/sourcing-requests [post]
func (h *PublicHandler) SubmitSourcing(c echo.Context) error {
	var req sourcingRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	res, err := h.service.SubmitSourcingRequest(c.Request().Context(), publicContext(c, req.ChallengeToken), c.Param("slug"), ports.SourcingInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Make:      req.Make,
		Model:     req.Model,
		YearFrom:  req.YearFrom,
		YearTo:    req.YearTo,
		MaxBudget: req.MaxBudget,
		Notes:     req.Notes,
	})
	if err != nil {
		return err
	}
	return submitted(c, res)
}
