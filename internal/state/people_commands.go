package state

import (
	"fmt"
	"strings"

	"rms_backend/internal/billing"
	"rms_backend/internal/models"
	"rms_backend/pkg/utils"

	"github.com/samber/lo"
)

func (c AddCustomer) apply(s *State, r Reducer) error {
	name, phone := strings.TrimSpace(c.Name), strings.TrimSpace(c.Phone)
	if name == "" || phone == "" {
		return invalid("customer name and phone are required")
	}
	if lo.ContainsBy(s.Customers, func(x models.Customer) bool { return x.Phone == phone }) {
		return fmt.Errorf("%w: %s", ErrDuplicatePhone, phone)
	}
	customer := models.Customer{
		ID:        r.NewID("cust"),
		Name:      name,
		Phone:     phone,
		LastVisit: r.Now(),
	}
	s.Customers = append([]models.Customer{customer}, s.Customers...)
	return nil
}

func (c AddStaff) apply(s *State, r Reducer) error {
	if utils.IsEmpty(c.Name) || utils.IsEmpty(c.Phone) || utils.IsEmpty(c.Email) {
		return invalid("staff name, phone and email are required")
	}
	if !utils.IsValidEmail(c.Email) {
		return invalid("invalid email %q", c.Email)
	}
	if !models.IsValidStaffRole(string(c.Role)) {
		return invalid("unknown staff role %q", c.Role)
	}
	if c.Salary <= 0 {
		return invalid("salary must be greater than zero")
	}
	phone := strings.TrimSpace(c.Phone)
	if lo.ContainsBy(s.Staff, func(m models.Staff) bool { return m.Phone == phone }) {
		return fmt.Errorf("%w: %s", ErrDuplicateStaff, phone)
	}
	id := r.freshID("staff", func(id string) bool {
		return lo.ContainsBy(s.Staff, func(m models.Staff) bool { return m.ID == id })
	})
	member := models.Staff{
		ID:       id,
		Name:     strings.TrimSpace(c.Name),
		Role:     c.Role,
		Phone:    phone,
		Email:    strings.TrimSpace(c.Email),
		Salary:   c.Salary,
		IsActive: true,
	}
	s.Staff = append([]models.Staff{member}, s.Staff...)
	return nil
}

func (c ToggleStaffStatus) apply(s *State, _ Reducer) error {
	_, idx, ok := lo.FindIndexOf(s.Staff, func(m models.Staff) bool { return m.ID == c.StaffID })
	if !ok {
		return fmt.Errorf("%w: %s", ErrStaffNotFound, c.StaffID)
	}
	s.Staff[idx].IsActive = !s.Staff[idx].IsActive
	return nil
}

func (c AddExpense) apply(s *State, r Reducer) error {
	if utils.IsEmpty(c.Description) {
		return invalid("expense description is required")
	}
	if c.Amount <= 0 {
		return invalid("expense amount must be greater than zero")
	}
	if !models.IsValidExpenseCategory(string(c.Category)) {
		return invalid("unknown expense category %q", c.Category)
	}
	date := c.Date
	if date.IsZero() {
		date = r.Now()
	}
	prependExpense(s, models.Expense{
		ID:          r.NewID("exp"),
		Description: strings.TrimSpace(c.Description),
		Amount:      c.Amount,
		Category:    c.Category,
		Date:        date,
	})
	return nil
}

func (PaySalaries) apply(s *State, r Reducer) error {
	active := lo.Filter(s.Staff, func(m models.Staff, _ int) bool { return m.IsActive })
	total := billing.Sum(lo.Map(active, func(m models.Staff, _ int) float64 { return m.Salary })...)
	if total <= 0 {
		return ErrNoActiveSalaries
	}
	now := r.Now()
	prependExpense(s, models.Expense{
		ID:          r.NewID("exp"),
		Description: fmt.Sprintf("Staff Salaries for %s %d", now.Month(), now.Year()),
		Amount:      total,
		Category:    models.ExpenseCategorySalaries,
		Date:        now,
	})
	return nil
}

func prependExpense(s *State, e models.Expense) {
	s.Expenses = append([]models.Expense{e}, s.Expenses...)
}
