package state

import (
	"fmt"
	"time"

	"rms_backend/internal/models"
)

const unsplash = "https://images.unsplash.com/photo-%s?q=80&w=800"

// Seed returns the mock data the service starts with. Relative dates such
// as today's expenses are taken from now.
func Seed(now time.Time) State {
	tables := make([]models.Table, 12)
	for i := range tables {
		tables[i] = models.Table{
			ID:       int64(i + 1),
			Name:     fmt.Sprintf("T-%d", i+1),
			Capacity: (i%4 + 1) * 2,
			Status:   models.TableStatusAvailable,
		}
	}

	return State{
		View:   models.DashboardView{},
		Tables: tables,
		Menu: []models.MenuItem{
			{ID: "bev001", Name: "Classic Mojito", Category: "Beverages", Price: 349, Stock: 50, ImageURL: fmt.Sprintf(unsplash, "1551538850-eff712b341fe")},
			{ID: "bev002", Name: "Espresso", Category: "Beverages", Price: 149, Stock: 100, ImageURL: fmt.Sprintf(unsplash, "1599398054032-fe797479a1f3")},
			{ID: "app001", Name: "Bruschetta", Category: "Appetizers", Price: 299, Stock: 30, ImageURL: fmt.Sprintf(unsplash, "1505253716362-af78f5d115de")},
			{ID: "app002", Name: "Garlic Bread", Category: "Appetizers", Price: 229, Stock: 40, ImageURL: fmt.Sprintf(unsplash, "1627308595182-d721f451b315")},
			{ID: "main001", Name: "Margherita Pizza", Category: "Main Course", Price: 499, Stock: 25, ImageURL: fmt.Sprintf(unsplash, "1598021680133-eb3a1283ad24")},
			{ID: "pasta001", Name: "Spaghetti Carbonara", Category: "Pasta", Price: 549, Stock: 20, ImageURL: fmt.Sprintf(unsplash, "1608796319547-5b68dc454a25")},
			{ID: "grill001", Name: "Grilled Salmon", Category: "Grill", Price: 899, Stock: 15, ImageURL: fmt.Sprintf(unsplash, "1519708227418-c8fd9a32b7a2")},
			{ID: "des001", Name: "Tiramisu", Category: "Desserts", Price: 329, Stock: 18, ImageURL: fmt.Sprintf(unsplash, "1571877227200-a0d98ea607e9")},
			{ID: "des002", Name: "Chocolate Lava Cake", Category: "Desserts", Price: 349, Stock: 0, ImageURL: fmt.Sprintf(unsplash, "1586985289933-60a92a525145")},
		},
		Categories: []string{"Appetizers", "Soups", "Salads", "Main Course", "Pasta", "Grill", "Seafood", "Sides", "Desserts", "Beverages"},
		Taxes: []models.Tax{
			{ID: "tax-1", Name: "GST", Rate: 18, Enabled: true},
			{ID: "tax-2", Name: "Service Charge", Rate: 5, Enabled: false},
		},
		Orders:          []models.Order{},
		CompletedOrders: []models.Order{},
		CreditRecords:   []models.Order{},
		Customers: []models.Customer{
			{ID: "cust-1", Name: "John Doe", Phone: "1234567890", TotalSpent: 12550, Visits: 5, LastVisit: time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)},
			{ID: "cust-2", Name: "Jane Smith", Phone: "0987654321", TotalSpent: 5800, Visits: 2, LastVisit: time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)},
		},
		Staff: []models.Staff{
			{ID: "staff-1", Name: "Alice Johnson", Role: models.StaffRoleAdmin, Phone: "555-0101", Email: "alice@rmspro.io", Salary: 75000, IsActive: true},
			{ID: "staff-2", Name: "Bob Williams", Role: models.StaffRoleCashier, Phone: "555-0102", Email: "bob@rmspro.io", Salary: 40000, IsActive: true},
			{ID: "staff-3", Name: "Charlie Brown", Role: models.StaffRoleWaiter, Phone: "555-0103", Email: "charlie@rmspro.io", Salary: 35000, IsActive: false},
			{ID: "staff-4", Name: "Diana Prince", Role: models.StaffRoleKitchenStaff, Phone: "555-0104", Email: "diana@rmspro.io", Salary: 45000, IsActive: true},
		},
		Expenses: []models.Expense{
			{ID: "exp-1", Description: "Electricity Bill", Amount: 5000, Category: models.ExpenseCategoryUtilities, Date: now},
			{ID: "exp-2", Description: "Vegetable Purchase", Amount: 8500, Category: models.ExpenseCategorySupplies, Date: now.AddDate(0, 0, -1)},
		},
		TotalSales: 45250.50,
	}
}
