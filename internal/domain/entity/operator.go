package entity

// Roles de operador. Solo controlan la visibilidad de rutas en la consola.
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleManager    = "MANAGER"
	RoleCommon     = "COMMON"
)

// Operator representa al operador autenticado o administrado.
type Operator struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Role         string        `json:"role"`
	Active       bool          `json:"active"`
	Institutions []Institution `json:"institutions,omitempty"`
}

// HasRole indica si el operador tiene alguno de los roles indicados.
func (o *Operator) HasRole(roles ...string) bool {
	if o == nil {
		return false
	}
	for _, r := range roles {
		if o.Role == r {
			return true
		}
	}
	return false
}

// CanAccessInstitution indica si la institución está entre las del operador.
// SUPER_ADMIN accede a todas.
func (o *Operator) CanAccessInstitution(id string) bool {
	if o == nil {
		return false
	}
	if o.Role == RoleSuperAdmin {
		return true
	}
	for _, inst := range o.Institutions {
		if inst.ID == id {
			return true
		}
	}
	return false
}
