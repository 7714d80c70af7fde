package state

import (
	"time"

	"rms_backend/internal/models"
)

// Wire names accepted by the command endpoint.
const (
	CmdSetPage               = "SET_PAGE"
	CmdOpenTable             = "OPEN_TABLE"
	CmdUpdateTableStatus     = "UPDATE_TABLE_STATUS"
	CmdAddItemToOrder        = "ADD_ITEM_TO_ORDER"
	CmdUpdateItemQuantity    = "UPDATE_ITEM_QUANTITY"
	CmdRemoveItemFromOrder   = "REMOVE_ITEM_FROM_ORDER"
	CmdUpdateCustomerDetails = "UPDATE_CUSTOMER_DETAILS"
	CmdFinalizeBill          = "FINALIZE_BILL"
	CmdMoveToCredit          = "MOVE_TO_CREDIT"
	CmdAddMenuItem           = "ADD_MENU_ITEM"
	CmdAddExpense            = "ADD_EXPENSE"
	CmdPaySalaries           = "PAY_SALARIES"
	CmdAddCustomer           = "ADD_CUSTOMER"
	CmdAddStaff              = "ADD_STAFF"
	CmdToggleStaffStatus     = "TOGGLE_STAFF_STATUS"
	CmdAddCategory           = "ADD_CATEGORY"
	CmdDeleteCategory        = "DELETE_CATEGORY"
	CmdAddTax                = "ADD_TAX"
	CmdDeleteTax             = "DELETE_TAX"
	CmdToggleTaxStatus       = "TOGGLE_TAX_STATUS"
	CmdAddTable              = "ADD_TABLE"
	CmdDeleteTable           = "DELETE_TABLE"
)

// Command is one of the closed set of state transitions below.
type Command interface {
	Kind() string
	apply(s *State, r Reducer) error
}

// SetPage switches the current page. OrderView makes its order active; any
// other page clears the active order.
type SetPage struct {
	View models.PageView `json:"-"`
}

// OpenTable seats a table: an Available table gets a fresh empty order, an
// Occupied one resumes its open order.
type OpenTable struct {
	TableID int64 `json:"table_id"`
}

type UpdateTableStatus struct {
	TableID int64              `json:"table_id"`
	Status  models.TableStatus `json:"status"`
}

type AddItemToOrder struct {
	ItemID string `json:"item_id"`
}

// UpdateItemQuantity sets the quantity of a line on the active order.
// Quantity <= 0 removes the line.
type UpdateItemQuantity struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

type RemoveItemFromOrder struct {
	ItemID string `json:"item_id"`
}

type UpdateCustomerDetails struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type FinalizeBill struct {
	OrderID string `json:"order_id"`
}

type MoveToCredit struct {
	OrderID string `json:"order_id"`
}

type AddMenuItem struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	ImageURL string  `json:"image_url"`
}

// AddExpense records an expense. A zero Date means now.
type AddExpense struct {
	Description string                 `json:"description"`
	Amount      float64                `json:"amount"`
	Category    models.ExpenseCategory `json:"category"`
	Date        time.Time              `json:"date"`
}

// PaySalaries books one Salaries expense covering every active staff member.
type PaySalaries struct{}

type AddCustomer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type AddStaff struct {
	Name   string           `json:"name"`
	Role   models.StaffRole `json:"role"`
	Phone  string           `json:"phone"`
	Email  string           `json:"email"`
	Salary float64          `json:"salary"`
}

type ToggleStaffStatus struct {
	StaffID string `json:"staff_id"`
}

type AddCategory struct {
	Name string `json:"name"`
}

type DeleteCategory struct {
	Name string `json:"name"`
}

type AddTax struct {
	Name string  `json:"name"`
	Rate float64 `json:"rate"`
}

type DeleteTax struct {
	TaxID string `json:"tax_id"`
}

type ToggleTaxStatus struct {
	TaxID string `json:"tax_id"`
}

type AddTable struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type DeleteTable struct {
	TableID int64 `json:"table_id"`
}

func (SetPage) Kind() string               { return CmdSetPage }
func (OpenTable) Kind() string             { return CmdOpenTable }
func (UpdateTableStatus) Kind() string     { return CmdUpdateTableStatus }
func (AddItemToOrder) Kind() string        { return CmdAddItemToOrder }
func (UpdateItemQuantity) Kind() string    { return CmdUpdateItemQuantity }
func (RemoveItemFromOrder) Kind() string   { return CmdRemoveItemFromOrder }
func (UpdateCustomerDetails) Kind() string { return CmdUpdateCustomerDetails }
func (FinalizeBill) Kind() string          { return CmdFinalizeBill }
func (MoveToCredit) Kind() string          { return CmdMoveToCredit }
func (AddMenuItem) Kind() string           { return CmdAddMenuItem }
func (AddExpense) Kind() string            { return CmdAddExpense }
func (PaySalaries) Kind() string           { return CmdPaySalaries }
func (AddCustomer) Kind() string           { return CmdAddCustomer }
func (AddStaff) Kind() string              { return CmdAddStaff }
func (ToggleStaffStatus) Kind() string     { return CmdToggleStaffStatus }
func (AddCategory) Kind() string           { return CmdAddCategory }
func (DeleteCategory) Kind() string        { return CmdDeleteCategory }
func (AddTax) Kind() string                { return CmdAddTax }
func (DeleteTax) Kind() string             { return CmdDeleteTax }
func (ToggleTaxStatus) Kind() string       { return CmdToggleTaxStatus }
func (AddTable) Kind() string              { return CmdAddTable }
func (DeleteTable) Kind() string           { return CmdDeleteTable }
