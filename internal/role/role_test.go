package role_test

import (
	"testing"

	"go-agency/internal/role"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		roleStr string
		want    role.Class
	}{
		{"frontline guard", "Security Guard", role.Staff},
		{"empty role", "", role.Staff},
		{"agency admin", "Agency Admin", role.Admin},
		{"upper case hr", "HR", role.HR},
		{"hr manager", "hr manager", role.HR},
		{"supervisor", "Site Supervisor", role.Supervisor},
		{"overlap hr supervisor", "HR Supervisor", role.HR | role.Supervisor},
		{"overlap admin hr", "HR Admin", role.Admin | role.HR},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, role.Classify(tt.roleStr))
		})
	}
}

func TestClass_Predicates(t *testing.T) {
	c := role.Classify("HR Supervisor")

	assert.True(t, c.IsHR())
	assert.True(t, c.IsSupervisor())
	assert.False(t, c.IsAdmin())
	assert.False(t, c.IsFrontline())
	assert.True(t, c.IsAdminOrHR())
	assert.Equal(t, role.HR, c.Primary())
	assert.Equal(t, []string{"hr", "supervisor"}, c.Names())
	assert.Equal(t, "hr|supervisor", c.String())
}

func TestClass_Primary(t *testing.T) {
	assert.Equal(t, role.Admin, role.Classify("Admin HR Supervisor").Primary())
	assert.Equal(t, role.Supervisor, role.Classify("Night Supervisor").Primary())
	assert.Equal(t, role.Staff, role.Classify("Patrol Officer").Primary())
	assert.Equal(t, []string{"staff"}, role.Staff.Names())
}
