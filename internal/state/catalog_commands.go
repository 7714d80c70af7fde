package state

import (
	"fmt"
	"strings"

	"rms_backend/internal/models"
	"rms_backend/pkg/utils"

	"github.com/samber/lo"
)

func (c AddMenuItem) apply(s *State, r Reducer) error {
	if utils.IsEmpty(c.Name) {
		return invalid("item name is required")
	}
	if c.Price < 0 {
		return invalid("price cannot be negative")
	}
	if c.Stock < 0 {
		return invalid("stock cannot be negative")
	}
	category, ok := lo.Find(s.Categories, func(x string) bool { return strings.EqualFold(x, strings.TrimSpace(c.Category)) })
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, c.Category)
	}

	id := r.freshID("item", func(id string) bool {
		return lo.ContainsBy(s.Menu, func(m models.MenuItem) bool { return m.ID == id })
	})
	s.Menu = append(s.Menu, models.MenuItem{
		ID:       id,
		Name:     strings.TrimSpace(c.Name),
		Category: category,
		Price:    c.Price,
		Stock:    c.Stock,
		ImageURL: strings.TrimSpace(c.ImageURL),
	})
	return nil
}

func (c AddCategory) apply(s *State, _ Reducer) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return invalid("category name is required")
	}
	if containsFold(s.Categories, name) {
		return fmt.Errorf("%w: %q", ErrDuplicateCategory, name)
	}
	s.Categories = append(s.Categories, name)
	return nil
}

func (c DeleteCategory) apply(s *State, _ Reducer) error {
	name := strings.TrimSpace(c.Name)
	_, idx, ok := lo.FindIndexOf(s.Categories, func(x string) bool { return strings.EqualFold(x, name) })
	if !ok {
		return fmt.Errorf("%w: %q", ErrCategoryNotFound, name)
	}
	used := lo.CountBy(s.Menu, func(m models.MenuItem) bool { return strings.EqualFold(m.Category, name) })
	if used > 0 {
		return fmt.Errorf("%w: %q has %d items", ErrCategoryInUse, s.Categories[idx], used)
	}
	s.Categories = append(s.Categories[:idx], s.Categories[idx+1:]...)
	return nil
}

func (c AddTax) apply(s *State, r Reducer) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return invalid("tax name is required")
	}
	if c.Rate < 0 {
		return invalid("tax rate cannot be negative")
	}
	if lo.ContainsBy(s.Taxes, func(t models.Tax) bool { return strings.EqualFold(t.Name, name) }) {
		return fmt.Errorf("%w: %q", ErrDuplicateTax, name)
	}
	id := r.freshID("tax", func(id string) bool {
		return lo.ContainsBy(s.Taxes, func(t models.Tax) bool { return t.ID == id })
	})
	s.Taxes = append(s.Taxes, models.Tax{
		ID:      id,
		Name:    name,
		Rate:    c.Rate,
		Enabled: true,
	})
	return nil
}

func (c DeleteTax) apply(s *State, _ Reducer) error {
	_, idx, ok := lo.FindIndexOf(s.Taxes, func(t models.Tax) bool { return t.ID == c.TaxID })
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaxNotFound, c.TaxID)
	}
	s.Taxes = append(s.Taxes[:idx], s.Taxes[idx+1:]...)
	return nil
}

func (c ToggleTaxStatus) apply(s *State, _ Reducer) error {
	_, idx, ok := lo.FindIndexOf(s.Taxes, func(t models.Tax) bool { return t.ID == c.TaxID })
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaxNotFound, c.TaxID)
	}
	s.Taxes[idx].Enabled = !s.Taxes[idx].Enabled
	return nil
}

func (c AddTable) apply(s *State, _ Reducer) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return invalid("table name is required")
	}
	if c.Capacity <= 0 {
		return invalid("capacity must be greater than zero")
	}
	if lo.ContainsBy(s.Tables, func(t models.Table) bool { return strings.EqualFold(t.Name, name) }) {
		return fmt.Errorf("%w: %q", ErrDuplicateTable, name)
	}

	var id int64 = 1
	if len(s.Tables) > 0 {
		id = lo.MaxBy(s.Tables, func(a, b models.Table) bool { return a.ID > b.ID }).ID + 1
	}
	s.Tables = append(s.Tables, models.Table{
		ID:       id,
		Name:     name,
		Capacity: c.Capacity,
		Status:   models.TableStatusAvailable,
	})
	return nil
}

func (c DeleteTable) apply(s *State, _ Reducer) error {
	table, idx, ok := lo.FindIndexOf(s.Tables, func(t models.Table) bool { return t.ID == c.TableID })
	if !ok {
		return fmt.Errorf("%w: %d", ErrTableNotFound, c.TableID)
	}
	if table.Status != models.TableStatusAvailable {
		return fmt.Errorf("%w: %s is %s", ErrTableNotAvailable, table.Name, table.Status)
	}
	s.Tables = append(s.Tables[:idx], s.Tables[idx+1:]...)
	return nil
}
