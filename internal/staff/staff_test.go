package staff

import (
	"testing"

	"github.com/lims/lims/internal/platform/random"
)

func TestNewRegistry_StableIDs(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()
	for _, role := range []Role{RoleReceptionist, RolePhlebotomist, RoleTechnician, RolePathologist} {
		ma, mb := a.Members(role), b.Members(role)
		if len(ma) == 0 {
			t.Fatalf("no members for role %s", role)
		}
		for i := range ma {
			if ma[i].ID != mb[i].ID {
				t.Errorf("member %s ID differs across registries", ma[i].Name)
			}
		}
	}
}

func TestPick_ReturnsRequestedRole(t *testing.T) {
	r := NewRegistry()
	src := random.New(1)
	for i := 0; i < 50; i++ {
		m := r.Pick(src, RolePathologist)
		if m.Role != RolePathologist {
			t.Fatalf("got role %s, want pathologist", m.Role)
		}
		if m.ID == "" || m.Name == "" {
			t.Fatal("empty member fields")
		}
	}
}
