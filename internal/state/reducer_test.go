package state

import (
	"fmt"
	"testing"
	"time"

	"rms_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

func testReducer() Reducer {
	n := 0
	return Reducer{
		Now: func() time.Time { return testNow },
		NewID: func(prefix string) string {
			n++
			return fmt.Sprintf("%s-t%d", prefix, n)
		},
	}
}

// apply runs cmd and fails the test on error.
func apply(t *testing.T, r Reducer, s State, cmd Command) State {
	t.Helper()
	next, err := r.Apply(s, cmd)
	require.NoError(t, err, cmd.Kind())
	return next
}

// seated returns the seed state with table 1 opened and its order active.
func seated(t *testing.T, r Reducer) State {
	t.Helper()
	return apply(t, r, Seed(testNow), OpenTable{TableID: 1})
}

func stockOf(s State, id string) int {
	return s.FindMenuItem(id).MustGet().Stock
}

func quantityInOrders(s State, id string) int {
	n := 0
	for _, o := range s.Orders {
		for _, l := range o.Items {
			if l.ID == id {
				n += l.Quantity
			}
		}
	}
	return n
}

func TestOpenTable(t *testing.T) {
	r := testReducer()
	s := seated(t, r)

	require.Len(t, s.Orders, 1)
	order := s.Orders[0]
	assert.Equal(t, int64(1), order.TableID)
	assert.Empty(t, order.Items)
	assert.Equal(t, testNow, order.CreatedAt)
	assert.Equal(t, models.TableStatusOccupied, s.FindTable(1).MustGet().Status)
	assert.Equal(t, order.ID, s.ActiveOrderID)
	assert.Equal(t, models.OrderView{OrderID: order.ID}, s.View)

	s = apply(t, r, s, SetPage{View: models.TablesView{}})
	assert.Empty(t, s.ActiveOrderID)

	s = apply(t, r, s, OpenTable{TableID: 1})
	assert.Len(t, s.Orders, 1, "reopening an occupied table resumes its order")
	assert.Equal(t, order.ID, s.ActiveOrderID)
}

func TestOpenTableRejected(t *testing.T) {
	r := testReducer()
	s := apply(t, r, Seed(testNow), UpdateTableStatus{TableID: 2, Status: models.TableStatusReserved})

	next, err := r.Apply(s, OpenTable{TableID: 2})
	assert.ErrorIs(t, err, ErrTableNotAvailable)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, s, next)

	_, err = r.Apply(s, OpenTable{TableID: 99})
	assert.ErrorIs(t, err, ErrTableNotFound)
	assert.ErrorIs(t, err, ErrPrecondition)
}

func TestStockConservation(t *testing.T) {
	r := testReducer()
	s := seated(t, r)
	const id = "bev001"
	initial := stockOf(s, id)

	steps := []Command{
		AddItemToOrder{ItemID: id},
		AddItemToOrder{ItemID: id},
		AddItemToOrder{ItemID: id},
		UpdateItemQuantity{ItemID: id, Quantity: 7},
		UpdateItemQuantity{ItemID: id, Quantity: 2},
		RemoveItemFromOrder{ItemID: id},
		AddItemToOrder{ItemID: id},
		UpdateItemQuantity{ItemID: id, Quantity: -4},
	}
	for _, cmd := range steps {
		s = apply(t, r, s, cmd)
		assert.Equal(t, initial, stockOf(s, id)+quantityInOrders(s, id), "after %s %+v", cmd.Kind(), cmd)
		assert.GreaterOrEqual(t, stockOf(s, id), 0)
	}
}

func TestAddItemToOrder(t *testing.T) {
	r := testReducer()
	s := seated(t, r)

	s = apply(t, r, s, AddItemToOrder{ItemID: "main001"})
	s = apply(t, r, s, AddItemToOrder{ItemID: "main001"})

	order := s.ActiveOrder().MustGet()
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 998.0, order.Subtotal)
	assert.Equal(t, 179.64, order.Tax)
	assert.Equal(t, 1177.64, order.Total)
	assert.Equal(t, 23, stockOf(s, "main001"))
}

func TestAddItemOutOfStock(t *testing.T) {
	r := testReducer()
	s := seated(t, r)

	next, err := r.Apply(s, AddItemToOrder{ItemID: "des002"})
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, s, next)

	_, err = r.Apply(s, AddItemToOrder{ItemID: "nope"})
	assert.ErrorIs(t, err, ErrMenuItemNotFound)
}

func TestItemCommandsRequireActiveOrder(t *testing.T) {
	r := testReducer()
	s := Seed(testNow)

	for _, cmd := range []Command{
		AddItemToOrder{ItemID: "bev001"},
		UpdateItemQuantity{ItemID: "bev001", Quantity: 2},
		RemoveItemFromOrder{ItemID: "bev001"},
		UpdateCustomerDetails{Name: "John Doe", Phone: "1234567890"},
	} {
		next, err := r.Apply(s, cmd)
		assert.ErrorIs(t, err, ErrNoActiveOrder, cmd.Kind())
		assert.ErrorIs(t, err, ErrPrecondition, cmd.Kind())
		assert.Equal(t, s, next)
	}
}

func TestUpdateItemQuantity(t *testing.T) {
	r := testReducer()
	s := seated(t, r)
	s = apply(t, r, s, AddItemToOrder{ItemID: "grill001"})
	require.Equal(t, 14, stockOf(s, "grill001"))

	_, err := r.Apply(s, UpdateItemQuantity{ItemID: "grill001", Quantity: 16})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	s = apply(t, r, s, UpdateItemQuantity{ItemID: "grill001", Quantity: 15})
	assert.Equal(t, 0, stockOf(s, "grill001"))
	assert.Equal(t, 13485.0, s.ActiveOrder().MustGet().Subtotal)

	_, err = r.Apply(s, UpdateItemQuantity{ItemID: "bev001", Quantity: 1})
	assert.ErrorIs(t, err, ErrItemNotInOrder)
}

func TestQuantityZeroRemovesLine(t *testing.T) {
	r := testReducer()
	s := seated(t, r)
	s = apply(t, r, s, AddItemToOrder{ItemID: "app001"})
	s = apply(t, r, s, AddItemToOrder{ItemID: "app001"})
	s = apply(t, r, s, AddItemToOrder{ItemID: "bev002"})
	require.Equal(t, 28, stockOf(s, "app001"))

	s = apply(t, r, s, UpdateItemQuantity{ItemID: "app001", Quantity: 0})

	order := s.ActiveOrder().MustGet()
	require.Len(t, order.Items, 1)
	assert.Equal(t, "bev002", order.Items[0].ID)
	assert.Equal(t, 30, stockOf(s, "app001"))
	assert.Equal(t, 149.0, order.Subtotal)
}

func TestRemoveItemRestoresStock(t *testing.T) {
	r := testReducer()
	s := seated(t, r)
	s = apply(t, r, s, AddItemToOrder{ItemID: "des001"})
	s = apply(t, r, s, UpdateItemQuantity{ItemID: "des001", Quantity: 4})
	require.Equal(t, 14, stockOf(s, "des001"))

	s = apply(t, r, s, RemoveItemFromOrder{ItemID: "des001"})
	assert.Equal(t, 18, stockOf(s, "des001"))
	order := s.ActiveOrder().MustGet()
	assert.Empty(t, order.Items)
	assert.Zero(t, order.Total)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	r := testReducer()
	s := seated(t, r)
	s = apply(t, r, s, AddItemToOrder{ItemID: "bev001"})
	before := s.Clone()

	next := apply(t, r, s, AddItemToOrder{ItemID: "bev001"})

	assert.Equal(t, before, s)
	assert.Equal(t, 1, s.Orders[0].Items[0].Quantity)
	assert.Equal(t, 2, next.Orders[0].Items[0].Quantity)
}

func TestFinalizeBill(t *testing.T) {
	r := testReducer()
	s := seated(t, r)
	s = apply(t, r, s, AddItemToOrder{ItemID: "pasta001"})
	s = apply(t, r, s, UpdateCustomerDetails{Name: "Johnny Doe", Phone: "1234567890"})
	orderID := s.ActiveOrderID
	total := s.ActiveOrder().MustGet().Total
	require.Equal(t, 647.82, total)

	s = apply(t, r, s, FinalizeBill{OrderID: orderID})

	assert.Empty(t, s.Orders)
	require.Len(t, s.CompletedOrders, 1)
	assert.Equal(t, orderID, s.CompletedOrders[0].ID)
	assert.Equal(t, models.TableStatusAvailable, s.FindTable(1).MustGet().Status)
	assert.Equal(t, 45898.32, s.TotalSales)
	assert.Empty(t, s.ActiveOrderID)
	assert.Equal(t, models.PageTables, s.Page())

	john := s.Customers[0]
	assert.Equal(t, "Johnny Doe", john.Name)
	assert.Equal(t, 6, john.Visits)
	assert.Equal(t, 13197.82, john.TotalSpent)
	assert.Equal(t, testNow, john.LastVisit)

	next, err := r.Apply(s, FinalizeBill{OrderID: orderID})
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Len(t, next.CompletedOrders, 1)
}

func TestMoveToCredit(t *testing.T) {
	r := testReducer()
	s := seated(t, r)
	s = apply(t, r, s, AddItemToOrder{ItemID: "bev001"})
	s = apply(t, r, s, UpdateCustomerDetails{Name: "Sam Lee", Phone: "5550000"})
	orderID := s.ActiveOrderID

	s = apply(t, r, s, MoveToCredit{OrderID: orderID})

	assert.Empty(t, s.Orders)
	assert.Empty(t, s.CompletedOrders)
	require.Len(t, s.CreditRecords, 1)
	assert.Equal(t, 45250.50, s.TotalSales)
	assert.Equal(t, models.TableStatusAvailable, s.FindTable(1).MustGet().Status)

	require.Len(t, s.Customers, 3)
	sam := s.Customers[2]
	assert.Equal(t, "5550000", sam.Phone)
	assert.Equal(t, 1, sam.Visits)
	assert.Zero(t, sam.TotalSpent)
}

func TestSettleWithoutCustomerDetails(t *testing.T) {
	r := testReducer()
	s := seated(t, r)
	s = apply(t, r, s, UpdateCustomerDetails{Name: "", Phone: "1234567890"})

	s = apply(t, r, s, FinalizeBill{OrderID: s.ActiveOrderID})

	assert.Len(t, s.Customers, 2)
	assert.Equal(t, 5, s.Customers[0].Visits)
}

func TestAddCustomer(t *testing.T) {
	r := testReducer()
	s := apply(t, r, Seed(testNow), AddCustomer{Name: "Priya", Phone: "9000000001"})
	require.Len(t, s.Customers, 3)
	assert.Equal(t, "Priya", s.Customers[0].Name)
	assert.Zero(t, s.Customers[0].Visits)

	next, err := r.Apply(s, AddCustomer{Name: "Other", Phone: "1234567890"})
	assert.ErrorIs(t, err, ErrDuplicatePhone)
	assert.Len(t, next.Customers, 3)

	_, err = r.Apply(s, AddCustomer{Name: "  ", Phone: "1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTables(t *testing.T) {
	r := testReducer()
	s := seated(t, r)

	next, err := r.Apply(s, DeleteTable{TableID: 1})
	assert.ErrorIs(t, err, ErrTableNotAvailable)
	assert.Len(t, next.Tables, 12)

	s = apply(t, r, s, DeleteTable{TableID: 2})
	assert.Len(t, s.Tables, 11)
	assert.True(t, s.FindTable(2).IsAbsent())

	s = apply(t, r, s, AddTable{Name: "Patio", Capacity: 6})
	patio := s.Tables[len(s.Tables)-1]
	assert.Equal(t, int64(13), patio.ID)
	assert.Equal(t, models.TableStatusAvailable, patio.Status)

	_, err = r.Apply(s, AddTable{Name: "patio", Capacity: 2})
	assert.ErrorIs(t, err, ErrDuplicateTable)
	_, err = r.Apply(s, AddTable{Name: "Bar", Capacity: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateTableStatus(t *testing.T) {
	r := testReducer()
	s := seated(t, r)

	_, err := r.Apply(s, UpdateTableStatus{TableID: 1, Status: models.TableStatusAvailable})
	assert.ErrorIs(t, err, ErrTableHasOrder)

	_, err = r.Apply(s, UpdateTableStatus{TableID: 3, Status: "Dirty"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	s = apply(t, r, s, UpdateTableStatus{TableID: 3, Status: models.TableStatusReserved})
	assert.Equal(t, models.TableStatusReserved, s.FindTable(3).MustGet().Status)
}

func TestCategories(t *testing.T) {
	r := testReducer()
	s := Seed(testNow)

	_, err := r.Apply(s, AddCategory{Name: "soups"})
	assert.ErrorIs(t, err, ErrDuplicateCategory)
	_, err = r.Apply(s, AddCategory{Name: " "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	s = apply(t, r, s, AddCategory{Name: "Breakfast"})
	assert.Contains(t, s.Categories, "Breakfast")

	_, err = r.Apply(s, DeleteCategory{Name: "Beverages"})
	assert.ErrorIs(t, err, ErrCategoryInUse)

	s = apply(t, r, s, DeleteCategory{Name: "Soups"})
	assert.NotContains(t, s.Categories, "Soups")

	_, err = r.Apply(s, DeleteCategory{Name: "Soups"})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestAddMenuItem(t *testing.T) {
	r := testReducer()
	s := Seed(testNow)

	_, err := r.Apply(s, AddMenuItem{Name: "Pho", Category: "Noodles", Price: 399, Stock: 10})
	assert.ErrorIs(t, err, ErrUnknownCategory)
	_, err = r.Apply(s, AddMenuItem{Name: "Pho", Category: "Soups", Price: -1, Stock: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)

	s = apply(t, r, s, AddMenuItem{Name: "Tomato Soup", Category: "soups", Price: 199, Stock: 12})
	item := s.Menu[len(s.Menu)-1]
	assert.Equal(t, "item-t1", item.ID)
	assert.Equal(t, "Soups", item.Category)

	s = apply(t, r, s, AddMenuItem{Name: "Tap Water", Category: "Beverages", Price: 0, Stock: 100})
	water := s.Menu[len(s.Menu)-1]
	assert.Equal(t, 0.0, water.Price)
}

func TestGeneratedIDsSkipExistingOnes(t *testing.T) {
	r := testReducer()
	r.NewID = func(prefix string) string { return prefix + "-1" }
	s := Seed(testNow)

	s = apply(t, r, s, AddTax{Name: "Cess", Rate: 1})
	require.Len(t, s.Taxes, 3)
	assert.Equal(t, "tax-1", s.Taxes[0].ID)
	assert.NotEqual(t, "tax-1", s.Taxes[2].ID)

	s = apply(t, r, s, ToggleTaxStatus{TaxID: "tax-1"})
	assert.False(t, s.Taxes[0].Enabled)
	assert.True(t, s.Taxes[2].Enabled)
}

func TestTaxes(t *testing.T) {
	r := testReducer()
	s := Seed(testNow)

	_, err := r.Apply(s, AddTax{Name: "gst", Rate: 12})
	assert.ErrorIs(t, err, ErrDuplicateTax)
	_, err = r.Apply(s, AddTax{Name: "Cess", Rate: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	s = apply(t, r, s, AddTax{Name: "Cess", Rate: 1})
	cess := s.Taxes[2]
	assert.True(t, cess.Enabled)

	s = apply(t, r, s, ToggleTaxStatus{TaxID: cess.ID})
	assert.False(t, s.Taxes[2].Enabled)

	s = apply(t, r, s, DeleteTax{TaxID: cess.ID})
	assert.Len(t, s.Taxes, 2)

	_, err = r.Apply(s, ToggleTaxStatus{TaxID: cess.ID})
	assert.ErrorIs(t, err, ErrTaxNotFound)
}

func TestTaxChangeKeepsOpenOrderTotals(t *testing.T) {
	r := testReducer()
	s := seated(t, r)
	s = apply(t, r, s, AddItemToOrder{ItemID: "bev002"})
	before := s.ActiveOrder().MustGet()

	s = apply(t, r, s, ToggleTaxStatus{TaxID: "tax-2"})
	assert.Equal(t, before.Total, s.ActiveOrder().MustGet().Total)

	s = apply(t, r, s, AddItemToOrder{ItemID: "bev002"})
	assert.Equal(t, 366.54, s.ActiveOrder().MustGet().Total)
}

func TestStaff(t *testing.T) {
	r := testReducer()
	s := Seed(testNow)

	_, err := r.Apply(s, AddStaff{Name: "Eve", Role: models.StaffRoleWaiter, Phone: "555", Email: "not-an-email", Salary: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = r.Apply(s, AddStaff{Name: "Eve", Role: "Chef", Phone: "555", Email: "eve@rmspro.io", Salary: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = r.Apply(s, AddStaff{Name: "Alice Again", Role: models.StaffRoleWaiter, Phone: " 555-0101 ", Email: "alice2@rmspro.io", Salary: 1})
	assert.ErrorIs(t, err, ErrDuplicateStaff)
	assert.True(t, IsConflict(err))

	s = apply(t, r, s, AddStaff{Name: "Eve", Role: models.StaffRoleInventoryManager, Phone: "555-0105", Email: "eve@rmspro.io", Salary: 30000})
	require.Len(t, s.Staff, 5)
	assert.Equal(t, "Eve", s.Staff[0].Name)
	assert.True(t, s.Staff[0].IsActive)

	s = apply(t, r, s, ToggleStaffStatus{StaffID: "staff-3"})
	assert.True(t, s.Staff[3].IsActive)

	_, err = r.Apply(s, ToggleStaffStatus{StaffID: "staff-9"})
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestExpenses(t *testing.T) {
	r := testReducer()
	s := Seed(testNow)

	_, err := r.Apply(s, AddExpense{Description: "Flyers", Amount: 0, Category: models.ExpenseCategoryMarketing})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = r.Apply(s, AddExpense{Description: "Flyers", Amount: 10, Category: "Fun"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	s = apply(t, r, s, AddExpense{Description: "Flyers", Amount: 1200, Category: models.ExpenseCategoryMarketing})
	require.Len(t, s.Expenses, 3)
	assert.Equal(t, "Flyers", s.Expenses[0].Description)
	assert.Equal(t, testNow, s.Expenses[0].Date)

	s = apply(t, r, s, PaySalaries{})
	salaries := s.Expenses[0]
	assert.Equal(t, "Staff Salaries for October 2026", salaries.Description)
	assert.Equal(t, 160000.0, salaries.Amount)
	assert.Equal(t, models.ExpenseCategorySalaries, salaries.Category)
}

func TestPaySalariesWithoutActiveStaff(t *testing.T) {
	r := testReducer()
	s := Seed(testNow)
	for _, id := range []string{"staff-1", "staff-2", "staff-4"} {
		s = apply(t, r, s, ToggleStaffStatus{StaffID: id})
	}
	_, err := r.Apply(s, PaySalaries{})
	assert.ErrorIs(t, err, ErrNoActiveSalaries)
}

func TestSetPage(t *testing.T) {
	r := testReducer()
	s := seated(t, r)
	orderID := s.ActiveOrderID

	s = apply(t, r, s, SetPage{View: models.ReportsView{Report: models.ReportCredit, TimeFrame: models.TimeFrameWeek}})
	assert.Empty(t, s.ActiveOrderID)
	assert.Equal(t, models.PageReports, s.Page())

	s = apply(t, r, s, SetPage{View: models.OrderView{OrderID: orderID}})
	assert.Equal(t, orderID, s.ActiveOrderID)

	_, err := r.Apply(s, SetPage{View: models.OrderView{OrderID: "order-x"}})
	assert.ErrorIs(t, err, ErrOrderNotFound)
	_, err = r.Apply(s, SetPage{View: models.QRMenuView{TableID: 42}})
	assert.ErrorIs(t, err, ErrTableNotFound)
	_, err = r.Apply(s, SetPage{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = r.Apply(s, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestErrorClassification(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("%w: 3", ErrTableNotFound)))
	assert.False(t, IsNotFound(ErrNoActiveOrder))
	assert.True(t, IsConflict(ErrNoActiveOrder))
	assert.True(t, IsConflict(fmt.Errorf("%w: x", ErrDuplicatePhone)))
	assert.False(t, IsConflict(ErrInvalidInput))
}
