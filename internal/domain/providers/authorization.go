package providers

// Role identifies which department a caller acts through
type Role string

const (
	RoleParamedic     Role = "PARAMEDIC"
	RoleHospitalAdmin Role = "HOSPITAL_ADMIN"
	RoleTollOperator  Role = "TOLL_OPERATOR"
)

// Action identifies a guarded operation
type Action string

const (
	ActionDispatch  Action = "dispatch"
	ActionViewTrips Action = "view_trips"
	ActionViewTolls Action = "view_tolls"
)

// AuthorizeFunc is the authorization predicate supplied by the caller.
// The dispatch core does not own role logic; it only consults the
// predicate at its entry points.
type AuthorizeFunc func(role Role, action Action) bool

// DefaultAuthorize mirrors the department gating used by the operator
// consoles: paramedics dispatch, hospital staff watch incoming trips,
// toll operators watch clearances. Hospital trip views also admit
// paramedics so a crew can follow its own transport.
func DefaultAuthorize(role Role, action Action) bool {
	switch action {
	case ActionDispatch:
		return role == RoleParamedic
	case ActionViewTrips:
		return role == RoleHospitalAdmin || role == RoleParamedic
	case ActionViewTolls:
		return role == RoleTollOperator
	}
	return false
}
