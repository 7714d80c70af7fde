// Package state holds the restaurant's in-memory state and the commands that
// transition it. Transitions are pure: a Reducer takes a State and a Command
// and returns the next State or an error, never touching its input.
package state

import (
	"encoding/json"
	"strings"

	"rms_backend/internal/models"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// State is one immutable snapshot of everything the front of house tracks.
type State struct {
	View            models.PageView   `json:"-"`
	ActiveOrderID   string            `json:"active_order_id,omitempty"`
	Tables          []models.Table    `json:"tables"`
	Menu            []models.MenuItem `json:"menu"`
	Categories      []string          `json:"categories"`
	Taxes           []models.Tax      `json:"taxes"`
	Orders          []models.Order    `json:"orders"`
	CompletedOrders []models.Order    `json:"completed_orders"`
	CreditRecords   []models.Order    `json:"credit_records"`
	Customers       []models.Customer `json:"customers"`
	Staff           []models.Staff    `json:"staff"`
	Expenses        []models.Expense  `json:"expenses"`
	TotalSales      float64           `json:"total_sales"`
}

// MarshalJSON adds the flattened page descriptor to the snapshot.
func (s State) MarshalJSON() ([]byte, error) {
	type snapshot State
	return json.Marshal(struct {
		Page models.PageDescriptor `json:"page"`
		snapshot
	}{
		Page:     models.DescribeView(s.View),
		snapshot: snapshot(s),
	})
}

// Page returns the page currently shown.
func (s State) Page() models.Page {
	if s.View == nil {
		return models.PageDashboard
	}
	return s.View.Page()
}

// Clone returns a deep copy so a transition can never alias the previous snapshot.
func (s State) Clone() State {
	next := s
	next.Tables = cloneSlice(s.Tables)
	next.Menu = cloneSlice(s.Menu)
	next.Categories = cloneSlice(s.Categories)
	next.Taxes = cloneSlice(s.Taxes)
	next.Orders = cloneOrders(s.Orders)
	next.CompletedOrders = cloneOrders(s.CompletedOrders)
	next.CreditRecords = cloneOrders(s.CreditRecords)
	next.Customers = cloneSlice(s.Customers)
	next.Staff = cloneSlice(s.Staff)
	next.Expenses = cloneSlice(s.Expenses)
	return next
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func cloneOrders(in []models.Order) []models.Order {
	out := cloneSlice(in)
	for i := range out {
		out[i].Items = cloneSlice(out[i].Items)
		out[i].TaxLines = cloneSlice(out[i].TaxLines)
	}
	return out
}

// ActiveOrder returns the open order the order page is working on.
func (s State) ActiveOrder() mo.Option[models.Order] {
	if s.ActiveOrderID == "" {
		return mo.None[models.Order]()
	}
	return s.FindOrder(s.ActiveOrderID)
}

// FindOrder looks up an open order by id.
func (s State) FindOrder(id string) mo.Option[models.Order] {
	return mo.TupleToOption(lo.Find(s.Orders, func(o models.Order) bool { return o.ID == id }))
}

// OpenOrderForTable returns the open order seated at a table, if any.
func (s State) OpenOrderForTable(tableID int64) mo.Option[models.Order] {
	return mo.TupleToOption(lo.Find(s.Orders, func(o models.Order) bool { return o.TableID == tableID }))
}

// LocateOrder searches the open orders and both ledgers.
func (s State) LocateOrder(id string) (models.Order, models.Ledger, bool) {
	match := func(o models.Order) bool { return o.ID == id }
	if o, ok := lo.Find(s.Orders, match); ok {
		return o, models.LedgerOpen, true
	}
	if o, ok := lo.Find(s.CompletedOrders, match); ok {
		return o, models.LedgerCompleted, true
	}
	if o, ok := lo.Find(s.CreditRecords, match); ok {
		return o, models.LedgerCredit, true
	}
	return models.Order{}, "", false
}

// OrdersIn returns the orders held by one ledger.
func (s State) OrdersIn(ledger models.Ledger) ([]models.Order, bool) {
	switch ledger {
	case models.LedgerOpen:
		return s.Orders, true
	case models.LedgerCompleted:
		return s.CompletedOrders, true
	case models.LedgerCredit:
		return s.CreditRecords, true
	default:
		return nil, false
	}
}

func (s State) FindTable(id int64) mo.Option[models.Table] {
	return mo.TupleToOption(lo.Find(s.Tables, func(t models.Table) bool { return t.ID == id }))
}

func (s State) FindMenuItem(id string) mo.Option[models.MenuItem] {
	return mo.TupleToOption(lo.Find(s.Menu, func(m models.MenuItem) bool { return m.ID == id }))
}

// MenuByCategory returns menu items of one category, matched case-insensitively.
// An empty category returns the whole menu.
func (s State) MenuByCategory(category string) []models.MenuItem {
	if strings.TrimSpace(category) == "" {
		return s.Menu
	}
	return lo.Filter(s.Menu, func(m models.MenuItem, _ int) bool {
		return strings.EqualFold(m.Category, category)
	})
}

// PublicMenu builds the read-only guest menu for a table: in-stock items
// grouped by category in category order.
func (s State) PublicMenu(tableID int64) mo.Option[models.PublicMenu] {
	table, ok := s.FindTable(tableID).Get()
	if !ok {
		return mo.None[models.PublicMenu]()
	}
	inStock := lo.Filter(s.Menu, func(m models.MenuItem, _ int) bool { return m.Stock > 0 })
	grouped := lo.GroupBy(inStock, func(m models.MenuItem) string { return m.Category })

	sections := make([]models.PublicMenuSection, 0, len(grouped))
	for _, c := range s.Categories {
		if items, ok := grouped[c]; ok {
			sections = append(sections, models.PublicMenuSection{Category: c, Items: items})
		}
	}
	return mo.Some(models.PublicMenu{Table: table, Sections: sections})
}

func containsFold(values []string, v string) bool {
	return lo.ContainsBy(values, func(x string) bool { return strings.EqualFold(x, v) })
}
