//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// DashboardStats summarizes the shop for the dashboard page.
type DashboardStats struct {
	Products     int
	Orders       int
	Users        int
	Blogs        int
	TotalRevenue float64
}

// Revenue sums order totals.
func Revenue(orders []Order) float64 {
	var sum float64
	for _, o := range orders {
		sum += o.Total.Float()
	}
	return sum
}
