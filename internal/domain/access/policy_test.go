package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAuthorized(t *testing.T) {
	cases := []struct {
		role      string
		dashboard int
		want      bool
	}{
		{RoleSales, 2, false},
		{RoleSales, 1, true},
		{RoleManagement, 6, true},
		{"Unknown", 1, false},
		{RoleWarehouse, 3, true},
		{RoleWarehouse, 1, false},
		{RoleProcurement, 5, true},
		{RoleFinance, 4, true},
		{RoleLogistics, 5, false},
		{RoleManagement, 0, false},
		{RoleManagement, 7, false},
		{"", 1, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, IsAuthorized(tc.role, tc.dashboard),
			"role=%q dashboard=%d", tc.role, tc.dashboard)
	}
}

func TestManagementSeesEverything(t *testing.T) {
	for d := 1; d <= DashboardCount(); d++ {
		assert.True(t, IsAuthorized(RoleManagement, d), "dashboard %d", d)
	}
}

func TestAllowedDashboardsReturnsCopy(t *testing.T) {
	first := AllowedDashboards(RoleSales)
	assert.Equal(t, []int{1, 6}, first)

	first[0] = 99
	assert.Equal(t, []int{1, 6}, AllowedDashboards(RoleSales), "la tabla no debe mutar")

	assert.Nil(t, AllowedDashboards("Unknown"))
}

func TestDashboardName(t *testing.T) {
	assert.Equal(t, "Stock Overview (Value & Quantity)", DashboardName(1))
	assert.Equal(t, "Location Stock Breakdown", DashboardName(6))
	assert.Equal(t, "", DashboardName(0))
	assert.Equal(t, "", DashboardName(7))
}
