package access

import "github.com/dealerhub/dealership-system/internal/core/domain"

// Operation names. Each one appears in DefaultPolicy with its exact role set.
const (
	OpUsersList       = "users.list"
	OpUsersCreate     = "users.create"
	OpUsersUpdateRole = "users.update_role"
	OpUsersSetActive  = "users.set_active"

	OpDealerGetSettings    = "dealer.get_settings"
	OpDealerUpdateSettings = "dealer.update_settings"

	OpVehiclesList      = "vehicles.list"
	OpVehiclesGet       = "vehicles.get"
	OpVehiclesCreate    = "vehicles.create"
	OpVehiclesUpdate    = "vehicles.update"
	OpVehiclesSetStatus = "vehicles.set_status"
	OpVehiclesDelete    = "vehicles.delete"

	OpLeadsList         = "leads.list"
	OpLeadsGet          = "leads.get"
	OpLeadsUpdateStatus = "leads.update_status"
	OpLeadsDelete       = "leads.delete"

	OpSourcingList         = "sourcing.list"
	OpSourcingUpdateStatus = "sourcing.update_status"

	OpExpensesList   = "expenses.list"
	OpExpensesCreate = "expenses.create"
	OpExpensesUpdate = "expenses.update"
	OpExpensesDelete = "expenses.delete"

	OpReportsSummary = "reports.summary"
)

// Policy maps an operation name to the roles allowed to invoke it.
type Policy map[string][]domain.Role

var (
	everyone   = []domain.Role{domain.RoleAdmin, domain.RoleSales, domain.RoleService, domain.RoleViewer}
	adminOnly  = []domain.Role{domain.RoleAdmin}
	salesDesk  = []domain.Role{domain.RoleAdmin, domain.RoleSales}
	serviceBay = []domain.Role{domain.RoleAdmin, domain.RoleService}
)

// DefaultPolicy is the role table of the dealership API.
func DefaultPolicy() Policy {
	return Policy{
		OpUsersList:       adminOnly,
		OpUsersCreate:     adminOnly,
		OpUsersUpdateRole: adminOnly,
		OpUsersSetActive:  adminOnly,

		OpDealerGetSettings:    everyone,
		OpDealerUpdateSettings: adminOnly,

		OpVehiclesList:      everyone,
		OpVehiclesGet:       everyone,
		OpVehiclesCreate:    salesDesk,
		OpVehiclesUpdate:    salesDesk,
		OpVehiclesSetStatus: salesDesk,
		OpVehiclesDelete:    adminOnly,

		OpLeadsList:         salesDesk,
		OpLeadsGet:          salesDesk,
		OpLeadsUpdateStatus: salesDesk,
		OpLeadsDelete:       adminOnly,

		OpSourcingList:         salesDesk,
		OpSourcingUpdateStatus: salesDesk,

		OpExpensesList:   serviceBay,
		OpExpensesCreate: serviceBay,
		OpExpensesUpdate: serviceBay,
		OpExpensesDelete: adminOnly,

		OpReportsSummary: {domain.RoleAdmin, domain.RoleSales, domain.RoleViewer},
	}
}
