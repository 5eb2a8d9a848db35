// Package staff provides the fixed pool of synthetic laboratory staff whose
// identifiers appear in audit, collection, and validation fields.
package staff

import (
	"github.com/google/uuid"

	"github.com/lims/lims/internal/platform/random"
)

// Role classifies what a staff member is allowed to sign off on.
type Role string

const (
	RoleReceptionist Role = "receptionist"
	RolePhlebotomist Role = "phlebotomist"
	RoleTechnician   Role = "technician"
	RolePathologist  Role = "pathologist"
)

// Member is one synthetic staff member. IDs are name-derived SHA-1 UUIDs so
// the same pool is produced on every run.
type Member struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// Registry holds the staff pool grouped by role.
type Registry struct {
	byRole map[Role][]Member
}

var pool = []struct {
	name string
	role Role
}{
	{"Angela Pruitt", RoleReceptionist},
	{"Marcus Webb", RoleReceptionist},
	{"Dana Kowalski", RolePhlebotomist},
	{"Luis Herrera", RolePhlebotomist},
	{"Priya Raman", RolePhlebotomist},
	{"Tom Okafor", RoleTechnician},
	{"Sofia Lindqvist", RoleTechnician},
	{"Jae-won Park", RoleTechnician},
	{"Dr. Helen Moss", RolePathologist},
	{"Dr. Victor Aldana", RolePathologist},
	{"Dr. Ruth Steinberg", RolePathologist},
}

// NewRegistry builds the fixed staff pool.
func NewRegistry() *Registry {
	r := &Registry{byRole: make(map[Role][]Member)}
	for _, p := range pool {
		id := uuid.NewSHA1(uuid.NameSpaceOID, []byte("staff:"+p.name)).String()
		r.byRole[p.role] = append(r.byRole[p.role], Member{ID: id, Name: p.name, Role: p.role})
	}
	return r
}

// Pick returns a uniformly chosen member with the given role.
func (r *Registry) Pick(src random.Source, role Role) Member {
	return random.PickOne(src, r.byRole[role])
}

// Members returns every member with the given role.
func (r *Registry) Members(role Role) []Member {
	return r.byRole[role]
}
