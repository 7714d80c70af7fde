package models

// TableStatus defines the occupancy state of a dining table
type TableStatus string

const (
	TableStatusAvailable TableStatus = "Available"
	TableStatusOccupied  TableStatus = "Occupied"
	TableStatusReserved  TableStatus = "Reserved"
)

// IsValidTableStatus checks if the provided status string is a valid TableStatus.
func IsValidTableStatus(status string) bool {
	switch TableStatus(status) {
	case TableStatusAvailable,
		TableStatusOccupied,
		TableStatusReserved:
		return true
	default:
		return false
	}
}

// Table represents a physical dining table on the floor
type Table struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name" binding:"required"`
	Capacity int         `json:"capacity" binding:"required,gt=0"`
	Status   TableStatus `json:"status"`
}
