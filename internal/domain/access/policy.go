// Package access define la política RBAC fija: qué dashboards (1–6) puede
// ver cada rol. La tabla es de solo lectura después de inicializar; no hay
// grants dinámicos.
package access

// Índices de dashboard (1–6):
//	1: Stock Overview (Value & Quantity)
//	2: Low Stock & Reorder Report
//	3: Transaction History Log
//	4: Inventory Turns & Aged Stock
//	5: Vendor Performance Tracking
//	6: Location Stock Breakdown
const (
	DashboardStockOverview = 1
	DashboardLowStock      = 2
	DashboardHistory       = 3
	DashboardTurns         = 4
	DashboardVendors       = 5
	DashboardLocations     = 6
)

// Roles válidos.
const (
	RoleManagement  = "Management"
	RoleSales       = "Sales"
	RoleWarehouse   = "Warehouse"
	RoleProcurement = "Procurement"
	RoleFinance     = "Finance"
	RoleLogistics   = "Logistics"
)

var dashboardNames = [...]string{
	"Stock Overview (Value & Quantity)",
	"Low Stock & Reorder Report",
	"Transaction History Log",
	"Inventory Turns & Aged Stock",
	"Vendor Performance Tracking",
	"Location Stock Breakdown",
}

// accessMap mapea rol → dashboards permitidos. Management tiene acceso total.
var accessMap = map[string][]int{
	RoleManagement:  {1, 2, 3, 4, 5, 6},
	RoleSales:       {1, 6},
	RoleWarehouse:   {2, 3, 6},
	RoleProcurement: {2, 5},
	RoleFinance:     {1, 4, 5},
	RoleLogistics:   {3, 6},
}

// IsAuthorized indica si un rol puede ver un dashboard. Roles desconocidos
// quedan denegados en todo.
func IsAuthorized(role string, dashboard int) bool {
	allowed, ok := accessMap[role]
	if !ok {
		return false
	}
	for _, d := range allowed {
		if d == dashboard {
			return true
		}
	}
	return false
}

// AllowedDashboards devuelve una copia de los índices permitidos para el rol.
func AllowedDashboards(role string) []int {
	allowed, ok := accessMap[role]
	if !ok {
		return nil
	}
	out := make([]int, len(allowed))
	copy(out, allowed)
	return out
}

// DashboardName devuelve el nombre del dashboard n (1–6) o "" si no existe.
func DashboardName(n int) string {
	if n < 1 || n > len(dashboardNames) {
		return ""
	}
	return dashboardNames[n-1]
}

// DashboardCount cantidad de dashboards definidos.
func DashboardCount() int { return len(dashboardNames) }
