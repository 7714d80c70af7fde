package models

// StaffRole defines the job of a staff member
type StaffRole string

const (
	StaffRoleAdmin            StaffRole = "Admin"
	StaffRoleCashier          StaffRole = "Cashier"
	StaffRoleWaiter           StaffRole = "Waiter"
	StaffRoleKitchenStaff     StaffRole = "Kitchen Staff"
	StaffRoleInventoryManager StaffRole = "Inventory Manager"
)

// IsValidStaffRole checks if the provided role string is a valid StaffRole.
func IsValidStaffRole(role string) bool {
	switch StaffRole(role) {
	case StaffRoleAdmin,
		StaffRoleCashier,
		StaffRoleWaiter,
		StaffRoleKitchenStaff,
		StaffRoleInventoryManager:
		return true
	default:
		return false
	}
}

// Staff represents an employee. Staff records are deactivated, never deleted.
type Staff struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Role     StaffRole `json:"role"`
	Phone    string    `json:"phone"`
	Email    string    `json:"email"`
	Salary   float64   `json:"salary"`
	IsActive bool      `json:"is_active"`
}
