package state

import (
	"errors"
	"fmt"
)

// Every rejected command wraps exactly one of these two families.
var (
	ErrValidation   = errors.New("validation failed")
	ErrPrecondition = errors.New("precondition failed")
)

var (
	ErrInvalidInput      = fmt.Errorf("%w: invalid input", ErrValidation)
	ErrInsufficientStock = fmt.Errorf("%w: insufficient stock", ErrValidation)
	ErrDuplicateCategory = fmt.Errorf("%w: category already exists", ErrValidation)
	ErrDuplicateTax      = fmt.Errorf("%w: tax already exists", ErrValidation)
	ErrDuplicateTable    = fmt.Errorf("%w: table already exists", ErrValidation)
	ErrDuplicatePhone    = fmt.Errorf("%w: a customer with this phone number already exists", ErrValidation)
	ErrDuplicateStaff    = fmt.Errorf("%w: a staff member with this phone number already exists", ErrValidation)
	ErrCategoryInUse     = fmt.Errorf("%w: category is used by menu items", ErrValidation)
	ErrUnknownCategory   = fmt.Errorf("%w: category does not exist", ErrValidation)
	ErrTableNotAvailable = fmt.Errorf("%w: table is not available", ErrValidation)
	ErrTableHasOrder     = fmt.Errorf("%w: table has an open order", ErrValidation)
	ErrNoActiveSalaries  = fmt.Errorf("%w: no active staff salaries to pay", ErrValidation)
	ErrUnknownCommand    = fmt.Errorf("%w: unknown command", ErrValidation)
)

var (
	ErrNoActiveOrder    = fmt.Errorf("%w: no active order", ErrPrecondition)
	ErrOrderNotFound    = fmt.Errorf("%w: order not found", ErrPrecondition)
	ErrTableNotFound    = fmt.Errorf("%w: table not found", ErrPrecondition)
	ErrMenuItemNotFound = fmt.Errorf("%w: menu item not found", ErrPrecondition)
	ErrItemNotInOrder   = fmt.Errorf("%w: item is not part of the order", ErrPrecondition)
	ErrStaffNotFound    = fmt.Errorf("%w: staff member not found", ErrPrecondition)
	ErrTaxNotFound      = fmt.Errorf("%w: tax not found", ErrPrecondition)
	ErrCategoryNotFound = fmt.Errorf("%w: category not found", ErrPrecondition)
)

// IsNotFound reports whether err names an entity that does not exist.
func IsNotFound(err error) bool {
	for _, target := range []error{
		ErrOrderNotFound, ErrTableNotFound, ErrMenuItemNotFound, ErrItemNotInOrder,
		ErrStaffNotFound, ErrTaxNotFound, ErrCategoryNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsConflict reports whether err rejects a command because of current data
// rather than malformed input.
func IsConflict(err error) bool {
	for _, target := range []error{
		ErrInsufficientStock, ErrDuplicateCategory, ErrDuplicateTax, ErrDuplicateTable,
		ErrDuplicatePhone, ErrDuplicateStaff, ErrCategoryInUse, ErrTableNotAvailable, ErrTableHasOrder,
		ErrNoActiveOrder,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
