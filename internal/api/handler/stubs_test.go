package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dealerhub/dealership-system/internal/core/domain"
	"github.com/dealerhub/dealership-system/internal/core/ports"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// jsonContext builds a request context with path params already resolved.
func jsonContext(e *echo.Echo, method, target, body string, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(params) > 0 {
		names := make([]string, 0, len(params)/2)
		values := make([]string, 0, len(params)/2)
		for i := 0; i+1 < len(params); i += 2 {
			names = append(names, params[i])
			values = append(values, params[i+1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	return c, rec
}

type stubAuthService struct {
	signupFn func(ctx context.Context, pc ports.PublicContext, in ports.SignupInput) (string, *domain.User, error)
	loginFn  func(ctx context.Context, pc ports.PublicContext, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Signup(ctx context.Context, pc ports.PublicContext, in ports.SignupInput) (string, *domain.User, error) {
	return s.signupFn(ctx, pc, in)
}

func (s *stubAuthService) Login(ctx context.Context, pc ports.PublicContext, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, pc, email, password)
}

type stubVehicleService struct {
	lastID     string
	lastInput  ports.VehicleInput
	lastFilter ports.VehicleFilter
	lastStatus domain.VehicleStatus
	err        error
}

func (s *stubVehicleService) List(_ context.Context, f ports.VehicleFilter) (*ports.Page[*domain.Vehicle], error) {
	s.lastFilter = f
	if s.err != nil {
		return nil, s.err
	}
	return &ports.Page[*domain.Vehicle]{
		Items: []*domain.Vehicle{{ID: "veh-1", DealerID: "dealer-1", Make: "Honda"}},
		Total: 1, Page: 1, Limit: 20, TotalPages: 1,
	}, nil
}

func (s *stubVehicleService) Get(_ context.Context, id string) (*domain.Vehicle, error) {
	s.lastID = id
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Vehicle{ID: id, DealerID: "dealer-1"}, nil
}

func (s *stubVehicleService) Create(_ context.Context, in ports.VehicleInput) (*domain.Vehicle, error) {
	s.lastInput = in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Vehicle{ID: "veh-new", DealerID: "dealer-1", StockNumber: in.StockNumber, Status: domain.VehicleDraft}, nil
}

func (s *stubVehicleService) Update(_ context.Context, id string, in ports.VehicleInput) (*domain.Vehicle, error) {
	s.lastID, s.lastInput = id, in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Vehicle{ID: id, DealerID: "dealer-1", StockNumber: in.StockNumber}, nil
}

func (s *stubVehicleService) SetStatus(_ context.Context, id string, status domain.VehicleStatus) error {
	s.lastID, s.lastStatus = id, status
	return s.err
}

func (s *stubVehicleService) Delete(_ context.Context, id string) error {
	s.lastID = id
	return s.err
}

type stubPublicService struct {
	lastPC     ports.PublicContext
	lastTarget string
	lastLead   ports.LeadInput
	lastSell   ports.SellMyCarInput
	lastSource ports.SourcingInput
	vehicle    *domain.Vehicle
	result     *ports.SubmissionResult
	err        error
}

func (s *stubPublicService) ListPublishedVehicles(_ context.Context, slug string, page ports.PageRequest) (*ports.Page[*domain.Vehicle], error) {
	s.lastTarget = slug
	if s.err != nil {
		return nil, s.err
	}
	return &ports.Page[*domain.Vehicle]{Items: []*domain.Vehicle{s.vehicle}, Total: 1, Page: 1, Limit: 20, TotalPages: 1}, nil
}

func (s *stubPublicService) GetPublishedVehicle(_ context.Context, publicID string) (*domain.Vehicle, error) {
	s.lastTarget = publicID
	if s.err != nil {
		return nil, s.err
	}
	return s.vehicle, nil
}

func (s *stubPublicService) SubmitLead(_ context.Context, pc ports.PublicContext, id string, in ports.LeadInput) (*ports.SubmissionResult, error) {
	s.lastPC, s.lastTarget, s.lastLead = pc, id, in
	return s.result, s.err
}

func (s *stubPublicService) SubmitSellMyCar(_ context.Context, pc ports.PublicContext, slug string, in ports.SellMyCarInput) (*ports.SubmissionResult, error) {
	s.lastPC, s.lastTarget, s.lastSell = pc, slug, in
	return s.result, s.err
}

func (s *stubPublicService) SubmitSourcingRequest(_ context.Context, pc ports.PublicContext, slug string, in ports.SourcingInput) (*ports.SubmissionResult, error) {
	s.lastPC, s.lastTarget, s.lastSource = pc, slug, in
	return s.result, s.err
}

type stubExpenseService struct {
	lastFilter ports.ExpenseFilter
	lastInput  ports.ExpenseInput
}

func (s *stubExpenseService) List(_ context.Context, f ports.ExpenseFilter) (*ports.Page[*domain.Expense], error) {
	s.lastFilter = f
	return &ports.Page[*domain.Expense]{Page: 1, Limit: 20}, nil
}

func (s *stubExpenseService) Create(_ context.Context, in ports.ExpenseInput) (*domain.Expense, error) {
	s.lastInput = in
	return &domain.Expense{ID: "exp-new", Amount: in.Amount, IncurredOn: in.IncurredOn}, nil
}

func (s *stubExpenseService) Update(_ context.Context, id string, in ports.ExpenseInput) (*domain.Expense, error) {
	s.lastInput = in
	return &domain.Expense{ID: id, Amount: in.Amount}, nil
}

func (s *stubExpenseService) Delete(context.Context, string) error { return nil }

type stubUserService struct {
	activeCalls int
	lastActive  bool
}

func (s *stubUserService) List(context.Context) ([]*domain.User, error) { return nil, nil }

func (s *stubUserService) Create(_ context.Context, in ports.CreateUserInput) (*domain.User, error) {
	return &domain.User{ID: "user-new", Email: in.Email, Role: in.Role}, nil
}

func (s *stubUserService) UpdateRole(context.Context, string, domain.Role) error { return nil }

func (s *stubUserService) SetActive(_ context.Context, _ string, active bool) error {
	s.activeCalls++
	s.lastActive = active
	return nil
}
