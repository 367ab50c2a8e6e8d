package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dealerhub/dealership-system/internal/core/access"
	"github.com/dealerhub/dealership-system/internal/core/domain"
	"github.com/dealerhub/dealership-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Sessions
// ---------------------------------------------------------------------------

type sessionKey struct{}

// as returns a context carrying a session for userID.
func as(userID string) context.Context {
	return context.WithValue(context.Background(), sessionKey{}, userID)
}

type ctxSessions struct{}

func (ctxSessions) CurrentUser(ctx context.Context) (*ports.SessionUser, error) {
	id, _ := ctx.Value(sessionKey{}).(string)
	if id == "" {
		return nil, nil
	}
	return &ports.SessionUser{ID: id, Email: id + "@example.com"}, nil
}

// ---------------------------------------------------------------------------
// In-memory store. Every repository method counts a call; mutating methods
// also count a write. Tenant filters mirror the real Mongo queries.
// ---------------------------------------------------------------------------

type memDB struct {
	mu       sync.Mutex
	calls    int
	writes   int
	dealers  map[string]*domain.Dealer
	users    map[string]*domain.User
	vehicles map[string]*domain.Vehicle
	leads    map[string]*domain.Lead
	sourcing map[string]*domain.SourcingRequest
	expenses map[string]*domain.Expense
	failWith error // if set, every repository call returns it
}

func newMemDB() *memDB {
	return &memDB{
		dealers:  make(map[string]*domain.Dealer),
		users:    make(map[string]*domain.User),
		vehicles: make(map[string]*domain.Vehicle),
		leads:    make(map[string]*domain.Lead),
		sourcing: make(map[string]*domain.SourcingRequest),
		expenses: make(map[string]*domain.Expense),
	}
}

func (db *memDB) read() error {
	db.calls++
	return db.failWith
}

func (db *memDB) write() error {
	db.calls++
	if db.failWith != nil {
		return db.failWith
	}
	db.writes++
	return nil
}

func (db *memDB) resetCounters() {
	db.mu.Lock()
	db.calls, db.writes = 0, 0
	db.mu.Unlock()
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func paginate[T any](items []T, p ports.PageRequest) []T {
	p = p.Normalize()
	skip := int(p.Skip())
	if skip >= len(items) {
		return []T{}
	}
	end := skip + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}

// --- users / profiles ---

type memUsers struct{ db *memDB }

func (r memUsers) Create(_ context.Context, u *domain.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.users {
		if existing.Email == u.Email {
			r.db.calls++
			return domain.ErrUserExists
		}
	}
	if err := r.db.write(); err != nil {
		return err
	}
	r.db.users[u.ID] = clone(u)
	return nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.read(); err != nil {
		return nil, err
	}
	for _, u := range r.db.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r memUsers) FindByID(_ context.Context, dealerID, id string) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.read(); err != nil {
		return nil, err
	}
	u, ok := r.db.users[id]
	if !ok || u.DealerID != dealerID {
		return nil, domain.ErrUserNotFound
	}
	return clone(u), nil
}

func (r memUsers) List(_ context.Context, dealerID string) ([]*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.read(); err != nil {
		return nil, err
	}
	var out []*domain.User
	for _, u := range r.db.users {
		if u.DealerID == dealerID {
			out = append(out, clone(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memUsers) UpdateRole(_ context.Context, dealerID, id string, role domain.Role) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok || u.DealerID != dealerID {
		r.db.calls++
		return domain.ErrUserNotFound
	}
	if err := r.db.write(); err != nil {
		return err
	}
	u.Role = role
	return nil
}

func (r memUsers) SetActive(_ context.Context, dealerID, id string, active bool) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok || u.DealerID != dealerID {
		r.db.calls++
		return domain.ErrUserNotFound
	}
	if err := r.db.write(); err != nil {
		return err
	}
	u.IsActive = active
	return nil
}

// memProfiles is the ProfileStore; its lookups are not counted as repository calls.
type memProfiles struct{ db *memDB }

func (p memProfiles) LookupProfile(_ context.Context, userID string) (*domain.Profile, error) {
	p.db.mu.Lock()
	defer p.db.mu.Unlock()
	u, ok := p.db.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &domain.Profile{ID: u.ID, DealerID: u.DealerID, Role: u.Role, IsActive: u.IsActive}, nil
}

// --- dealers ---

type memDealers struct{ db *memDB }

func (r memDealers) Create(_ context.Context, d *domain.Dealer) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.write(); err != nil {
		return err
	}
	r.db.dealers[d.ID] = clone(d)
	return nil
}

func (r memDealers) FindByID(_ context.Context, id string) (*domain.Dealer, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.read(); err != nil {
		return nil, err
	}
	d, ok := r.db.dealers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(d), nil
}

func (r memDealers) FindBySlug(_ context.Context, slug string) (*domain.Dealer, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.read(); err != nil {
		return nil, err
	}
	for _, d := range r.db.dealers {
		if d.Slug == slug {
			return clone(d), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memDealers) UpdateSettings(_ context.Context, id string, s ports.DealerSettings) (*domain.Dealer, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	d, ok := r.db.dealers[id]
	if !ok {
		r.db.calls++
		return nil, domain.ErrNotFound
	}
	if err := r.db.write(); err != nil {
		return nil, err
	}
	d.Name, d.Phone, d.Email, d.Address, d.LeadEmail = s.Name, s.Phone, s.Email, s.Address, s.LeadEmail
	return clone(d), nil
}

func (r memDealers) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.dealers[id]; !ok {
		r.db.calls++
		return domain.ErrNotFound
	}
	if err := r.db.write(); err != nil {
		return err
	}
	delete(r.db.dealers, id)
	return nil
}

// --- vehicles ---

type memVehicles struct{ db *memDB }

func (r memVehicles) Create(_ context.Context, v *domain.Vehicle) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.vehicles {
		if existing.DealerID == v.DealerID && existing.StockNumber == v.StockNumber {
			r.db.calls++
			return domain.ErrConflict
		}
	}
	if err := r.db.write(); err != nil {
		return err
	}
	r.db.vehicles[v.ID] = clone(v)
	return nil
}

func (r memVehicles) owned(dealerID, id string) (*domain.Vehicle, bool) {
	v, ok := r.db.vehicles[id]
	if !ok || v.DealerID != dealerID {
		return nil, false
	}
	return v, true
}

func (r memVehicles) FindByID(_ context.Context, dealerID, id string) (*domain.Vehicle, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.read(); err != nil {
		return nil, err
	}
	v, ok := r.owned(dealerID, id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(v), nil
}

func (r memVehicles) List(_ context.Context, f ports.VehicleFilter) ([]*domain.Vehicle, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.read(); err != nil {
		return nil, 0, err
	}
	if f.DealerID == "" {
		return nil, 0, domain.ErrUnauthorized
	}
	var matched []*domain.Vehicle
	for _, v := range r.db.vehicles {
		if v.DealerID != f.DealerID {
			continue
		}
		if f.Status != "" && string(v.Status) != f.Status {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			hay := strings.ToLower(v.Make + " " + v.Model + " " + v.VIN + " " + v.StockNumber)
			if !strings.Contains(hay, q) {
				continue
			}
		}
		matched = append(matched, clone(v))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return paginate(matched, f.PageRequest), int64(len(matched)), nil
}

func (r memVehicles) Update(_ context.Context, dealerID, id string, in ports.VehicleInput) (*domain.Vehicle, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	v, ok := r.owned(dealerID, id)
	if !ok {
		r.db.calls++
		return nil, domain.ErrNotFound
	}
	if err := r.db.write(); err != nil {
		return nil, err
	}
	v.StockNumber, v.VIN, v.Year, v.Make, v.Model, v.Trim = in.StockNumber, in.VIN, in.Year, in.Make, in.Model, in.Trim
	v.Price, v.Mileage, v.Description, v.Images, v.Status = in.Price, in.Mileage, in.Description, in.Images, in.Status
	v.UpdatedAt = time.Now().UTC()
	return clone(v), nil
}

func (r memVehicles) SetStatus(_ context.Context, dealerID, id string, status domain.VehicleStatus) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	v, ok := r.owned(dealerID, id)
	if !ok {
		r.db.calls++
		return domain.ErrNotFound
	}
	if err := r.db.write(); err != nil {
		return err
	}
	v.Status = status
	return nil
}

func (r memVehicles) Delete(_ context.Context, dealerID, id string) (*domain.Vehicle, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	v, ok := r.owned(dealerID, id)
	if !ok {
		r.db.calls++
		return nil, domain.ErrNotFound
	}
	if err := r.db.write(); err != nil {
		return nil, err
	}
	delete(r.db.vehicles, id)
	return clone(v), nil
}

func (r memVehicles) FindPublished(_ context.Context, publicID string) (*domain.Vehicle, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.read(); err != nil {
		return nil, err
	}
	for _, v := range r.db.vehicles {
		if v.PublicID == publicID && v.Status == domain.VehiclePublished {
			return clone(v), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memVehicles) ListPublished(_ context.Context, dealerID string, page ports.PageRequest) ([]*domain.Vehicle, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.read(); err != nil {
		return nil, 0, err
	}
	var matched []*domain.Vehicle
	for _, v := range r.db.vehicles {
		if v.DealerID == dealerID && v.Status == domain.VehiclePublished {
			matched = append(matched, clone(v))
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return paginate(matched, page), int64(len(matched)), nil
}

// --- leads ---

type memLeads struct{ db *memDB }

func (r memLeads) Create(_ context.Context, l *domain.Lead) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.write(); err != nil {
		return err
	}
	r.db.leads[l.ID] = clone(l)
	return nil
}

func (r memLeads) FindByID(_ context.Context, dealerID, id string) (*domain.Lead, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.read(); err != nil {
		return nil, err
	}
	l, ok := r.db.leads[id]
	if !ok || l.DealerID != dealerID {
		return nil, domain.ErrNotFound
	}
	return clone(l), nil
}

func (r memLeads) List(_ context.Context, f ports.LeadFilter) ([]*domain.Lead, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.read(); err != nil {
		return nil, 0, err
	}
	var matched []*domain.Lead
	for _, l := range r.db.leads {
		if l.DealerID != f.DealerID {
			continue
		}
		if f.Status != "" && string(l.Status) != f.Status {
			continue
		}
		if f.Source != "" && string(l.Source) != f.Source {
			continue
		}
		matched = append(matched, clone(l))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return paginate(matched, f.PageRequest), int64(len(matched)), nil
}

func (r memLeads) UpdateStatus(_ context.Context, dealerID, id string, status domain.LeadStatus) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	l, ok := r.db.leads[id]
	if !ok || l.DealerID != dealerID {
		r.db.calls++
		return domain.ErrNotFound
	}
	if err := r.db.write(); err != nil {
		return err
	}
	l.Status = status
	return nil
}

func (r memLeads) Delete(_ context.Context, dealerID, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	l, ok := r.db.leads[id]
	if !ok || l.DealerID != dealerID {
		r.db.calls++
		return domain.ErrNotFound
	}
	if err := r.db.write(); err != nil {
		return err
	}
	delete(r.db.leads, id)
	return nil
}

// --- sourcing ---

type memSourcing struct{ db *memDB }

func (r memSourcing) Create(_ context.Context, s *domain.SourcingRequest) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.write(); err != nil {
		return err
	}
	r.db.sourcing[s.ID] = clone(s)
	return nil
}

func (r memSourcing) FindByID(_ context.Context, dealerID, id string) (*domain.SourcingRequest, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.read(); err != nil {
		return nil, err
	}
	s, ok := r.db.sourcing[id]
	if !ok || s.DealerID != dealerID {
		return nil, domain.ErrNotFound
	}
	return clone(s), nil
}

func (r memSourcing) List(_ context.Context, f ports.SourcingFilter) ([]*domain.SourcingRequest, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.read(); err != nil {
		return nil, 0, err
	}
	var matched []*domain.SourcingRequest
	for _, s := range r.db.sourcing {
		if s.DealerID == f.DealerID && (f.Status == "" || string(s.Status) == f.Status) {
			matched = append(matched, clone(s))
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return paginate(matched, f.PageRequest), int64(len(matched)), nil
}

func (r memSourcing) UpdateStatus(_ context.Context, dealerID, id string, status domain.SourcingStatus) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.sourcing[id]
	if !ok || s.DealerID != dealerID {
		r.db.calls++
		return domain.ErrNotFound
	}
	if err := r.db.write(); err != nil {
		return err
	}
	s.Status = status
	return nil
}

// --- expenses ---

type memExpenses struct{ db *memDB }

func (r memExpenses) Create(_ context.Context, e *domain.Expense) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.write(); err != nil {
		return err
	}
	r.db.expenses[e.ID] = clone(e)
	return nil
}

func (r memExpenses) FindByID(_ context.Context, dealerID, id string) (*domain.Expense, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.read(); err != nil {
		return nil, err
	}
	e, ok := r.db.expenses[id]
	if !ok || e.DealerID != dealerID {
		return nil, domain.ErrNotFound
	}
	return clone(e), nil
}

func (r memExpenses) List(_ context.Context, f ports.ExpenseFilter) ([]*domain.Expense, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.read(); err != nil {
		return nil, 0, err
	}
	var matched []*domain.Expense
	for _, e := range r.db.expenses {
		if e.DealerID != f.DealerID {
			continue
		}
		if f.VehicleID != "" && e.VehicleID != f.VehicleID {
			continue
		}
		if f.Category != "" && string(e.Category) != f.Category {
			continue
		}
		if !f.From.IsZero() && e.IncurredOn.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && e.IncurredOn.After(f.To) {
			continue
		}
		matched = append(matched, clone(e))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return paginate(matched, f.PageRequest), int64(len(matched)), nil
}

func (r memExpenses) Update(_ context.Context, dealerID, id string, in ports.ExpenseInput) (*domain.Expense, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	e, ok := r.db.expenses[id]
	if !ok || e.DealerID != dealerID {
		r.db.calls++
		return nil, domain.ErrNotFound
	}
	if err := r.db.write(); err != nil {
		return nil, err
	}
	e.VehicleID, e.Category, e.Amount, e.Description, e.IncurredOn = in.VehicleID, in.Category, in.Amount, in.Description, in.IncurredOn
	return clone(e), nil
}

func (r memExpenses) Delete(_ context.Context, dealerID, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	e, ok := r.db.expenses[id]
	if !ok || e.DealerID != dealerID {
		r.db.calls++
		return domain.ErrNotFound
	}
	if err := r.db.write(); err != nil {
		return err
	}
	delete(r.db.expenses, id)
	return nil
}

// --- reports ---

type memReports struct{ db *memDB }

func (r memReports) Summary(_ context.Context, dealerID string) (*ports.ReportSummary, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.read(); err != nil {
		return nil, err
	}
	sum := &ports.ReportSummary{
		VehiclesByStatus: map[string]int64{},
		LeadsByStatus:    map[string]int64{},
	}
	for _, v := range r.db.vehicles {
		if v.DealerID == dealerID {
			sum.VehiclesByStatus[string(v.Status)]++
		}
	}
	for _, l := range r.db.leads {
		if l.DealerID == dealerID {
			sum.LeadsByStatus[string(l.Status)]++
		}
	}
	for _, e := range r.db.expenses {
		if e.DealerID == dealerID {
			sum.ExpenseTotal += e.Amount
			sum.ExpenseCount++
		}
	}
	return sum, nil
}

// ---------------------------------------------------------------------------
// Collaborators
// ---------------------------------------------------------------------------

// stubImages owns bare keys under "<dealer_id>/". Delete records whatever it
// is given so callers' filtering is observable.
type stubImages struct {
	mu      sync.Mutex
	deleted []string
	err     error
}

func (s *stubImages) Owns(dealerID, image string) bool {
	return dealerID != "" && !strings.Contains(image, "://") && strings.HasPrefix(image, dealerID+"/")
}

func (s *stubImages) Delete(_ context.Context, _ string, images []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, images...)
	return nil
}

type stubGate struct {
	err     error
	actions []string
}

func (g *stubGate) Admit(_ context.Context, action, fingerprint, _ string) error {
	g.actions = append(g.actions, action+":"+fingerprint)
	return g.err
}

type stubDedup struct {
	seen     map[string]bool
	released []string
	err      error
}

func (d *stubDedup) Claim(_ context.Context, key string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	if d.seen[key] {
		return false, nil
	}
	d.seen[key] = true
	return true, nil
}

func (d *stubDedup) Release(_ context.Context, key string) error {
	delete(d.seen, key)
	d.released = append(d.released, key)
	return nil
}

type stubNotifier struct {
	sent []ports.Notification
}

func (n *stubNotifier) Notify(msg ports.Notification) {
	n.sent = append(n.sent, msg)
}

type stubTokens struct{}

func (stubTokens) Issue(u *domain.User) (string, error) {
	return "token-" + u.ID, nil
}

// ---------------------------------------------------------------------------
// Fixture: two dealers with staff, inventory, leads and expenses.
// ---------------------------------------------------------------------------

const (
	dealerNorth = "dealer-north"
	dealerSouth = "dealer-south"
)

type fixture struct {
	db       *memDB
	images   *stubImages
	gate     *stubGate
	dedup    *stubDedup
	notifier *stubNotifier

	auth     *AuthService
	users    *UserService
	dealers  *DealerService
	vehicles *VehicleService
	leads    *LeadService
	sourcing *SourcingService
	expenses *ExpenseService
	reports  *ReportService
	public   *PublicService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newMemDB()
	now := time.Now().UTC()

	db.dealers[dealerNorth] = &domain.Dealer{ID: dealerNorth, Slug: "north-motors", Name: "North Motors", Email: "office@north.example", LeadEmail: "leads@north.example"}
	db.dealers[dealerSouth] = &domain.Dealer{ID: dealerSouth, Slug: "south-auto", Name: "South Auto", Email: "office@south.example"}

	for _, u := range []domain.User{
		{ID: "admin-n", DealerID: dealerNorth, Email: "admin@north.example", Role: domain.RoleAdmin, IsActive: true},
		{ID: "sales-n", DealerID: dealerNorth, Email: "sales@north.example", Role: domain.RoleSales, IsActive: true},
		{ID: "service-n", DealerID: dealerNorth, Email: "service@north.example", Role: domain.RoleService, IsActive: true},
		{ID: "viewer-n", DealerID: dealerNorth, Email: "viewer@north.example", Role: domain.RoleViewer, IsActive: true},
		{ID: "disabled-n", DealerID: dealerNorth, Email: "gone@north.example", Role: domain.RoleAdmin, IsActive: false},
		{ID: "admin-s", DealerID: dealerSouth, Email: "admin@south.example", Role: domain.RoleAdmin, IsActive: true},
		{ID: "sales-s", DealerID: dealerSouth, Email: "sales@south.example", Role: domain.RoleSales, IsActive: true},
	} {
		u.CreatedAt, u.UpdatedAt = now, now
		db.users[u.ID] = &u
	}

	db.vehicles["veh-n1"] = &domain.Vehicle{ID: "veh-n1", PublicID: "pub-n1", DealerID: dealerNorth, StockNumber: "N-001", VIN: "1HGCM82633A004352", Year: 2020, Make: "Honda", Model: "Accord", Price: 18500, Status: domain.VehiclePublished, Images: []string{"dealer-north/veh-n1/front.jpg", "dealer-north/veh-n1/rear.jpg"}}
	db.vehicles["veh-n2"] = &domain.Vehicle{ID: "veh-n2", PublicID: "pub-n2", DealerID: dealerNorth, StockNumber: "N-002", Year: 2018, Make: "Ford", Model: "Focus", Price: 9900, Status: domain.VehicleDraft}
	db.vehicles["veh-s1"] = &domain.Vehicle{ID: "veh-s1", PublicID: "pub-s1", DealerID: dealerSouth, StockNumber: "S-001", Year: 2021, Make: "Toyota", Model: "Camry", Price: 22000, Status: domain.VehiclePublished, Images: []string{"dealer-south/veh-s1/front.jpg"}}

	db.leads["lead-n1"] = &domain.Lead{ID: "lead-n1", DealerID: dealerNorth, VehicleID: "veh-n1", Source: domain.SourceInquiry, Name: "Ann", Email: "ann@example.com", Status: domain.LeadNew}
	db.leads["lead-s1"] = &domain.Lead{ID: "lead-s1", DealerID: dealerSouth, VehicleID: "veh-s1", Source: domain.SourceInquiry, Name: "Bob", Email: "bob@example.com", Status: domain.LeadNew}

	db.sourcing["src-n1"] = &domain.SourcingRequest{ID: "src-n1", DealerID: dealerNorth, Name: "Cy", Email: "cy@example.com", Make: "Mazda", Status: domain.SourcingOpen}
	db.sourcing["src-s1"] = &domain.SourcingRequest{ID: "src-s1", DealerID: dealerSouth, Name: "Di", Email: "di@example.com", Make: "Kia", Status: domain.SourcingOpen}

	db.expenses["exp-n1"] = &domain.Expense{ID: "exp-n1", DealerID: dealerNorth, VehicleID: "veh-n1", Category: domain.ExpenseReconditioning, Amount: 350, IncurredOn: now}
	db.expenses["exp-s1"] = &domain.Expense{ID: "exp-s1", DealerID: dealerSouth, Category: domain.ExpenseMarketing, Amount: 120, IncurredOn: now}

	log := zerolog.Nop()
	guard := access.NewGuard(access.NewResolver(ctxSessions{}, memProfiles{db}), access.DefaultPolicy(), log)

	f := &fixture{
		db:       db,
		images:   &stubImages{},
		gate:     &stubGate{},
		dedup:    &stubDedup{seen: map[string]bool{}},
		notifier: &stubNotifier{},
	}
	f.auth = NewAuthService(f.gate, memUsers{db}, memDealers{db}, stubTokens{}, log)
	f.users = NewUserService(guard, memUsers{db}, log)
	f.dealers = NewDealerService(guard, memDealers{db}, log)
	f.vehicles = NewVehicleService(guard, memVehicles{db}, f.images, log)
	f.leads = NewLeadService(guard, memLeads{db}, log)
	f.sourcing = NewSourcingService(guard, memSourcing{db}, log)
	f.expenses = NewExpenseService(guard, memExpenses{db}, memVehicles{db}, log)
	f.reports = NewReportService(guard, memReports{db})
	f.public = NewPublicService(PublicDeps{
		Gate:     f.gate,
		Dealers:  memDealers{db},
		Vehicles: memVehicles{db},
		Leads:    memLeads{db},
		Sourcing: memSourcing{db},
		Dedup:    f.dedup,
		Notifier: f.notifier,
	}, log)
	return f
}

// Compile-time checks that the services satisfy their ports.
var (
	_ ports.AuthService     = (*AuthService)(nil)
	_ ports.UserService     = (*UserService)(nil)
	_ ports.DealerService   = (*DealerService)(nil)
	_ ports.VehicleService  = (*VehicleService)(nil)
	_ ports.LeadService     = (*LeadService)(nil)
	_ ports.SourcingService = (*SourcingService)(nil)
	_ ports.ExpenseService  = (*ExpenseService)(nil)
	_ ports.ReportService   = (*ReportService)(nil)
	_ ports.PublicService   = (*PublicService)(nil)
)
