package state

import (
	"fmt"

	"rms_backend/internal/billing"
	"rms_backend/internal/models"

	"github.com/samber/lo"
)

func (c SetPage) apply(s *State, _ Reducer) error {
	switch v := c.View.(type) {
	case nil:
		return invalid("page is required")
	case models.OrderView:
		if v.OrderID == "" {
			return fmt.Errorf("%w: order page requires an order id", ErrOrderNotFound)
		}
		if s.FindOrder(v.OrderID).IsAbsent() {
			return fmt.Errorf("%w: %s", ErrOrderNotFound, v.OrderID)
		}
		s.ActiveOrderID = v.OrderID
	case models.QRMenuView:
		if s.FindTable(v.TableID).IsAbsent() {
			return fmt.Errorf("%w: %d", ErrTableNotFound, v.TableID)
		}
		s.ActiveOrderID = ""
	default:
		s.ActiveOrderID = ""
	}
	s.View = c.View
	return nil
}

func (c OpenTable) apply(s *State, r Reducer) error {
	_, ti, ok := lo.FindIndexOf(s.Tables, func(t models.Table) bool { return t.ID == c.TableID })
	if !ok {
		return fmt.Errorf("%w: %d", ErrTableNotFound, c.TableID)
	}

	table := &s.Tables[ti]
	if table.Status == models.TableStatusReserved {
		return fmt.Errorf("%w: %s is reserved", ErrTableNotAvailable, table.Name)
	}

	order, ok := s.OpenOrderForTable(table.ID).Get()
	if !ok {
		order = models.Order{
			ID:        r.NewID("order"),
			TableID:   table.ID,
			Items:     []models.OrderItem{},
			CreatedAt: r.Now(),
		}
		billing.Apply(&order, s.Taxes)
		s.Orders = append(s.Orders, order)
	}
	table.Status = models.TableStatusOccupied

	s.ActiveOrderID = order.ID
	s.View = models.OrderView{OrderID: order.ID}
	return nil
}

func (c UpdateTableStatus) apply(s *State, _ Reducer) error {
	if !models.IsValidTableStatus(string(c.Status)) {
		return invalid("unknown table status %q", c.Status)
	}
	_, ti, ok := lo.FindIndexOf(s.Tables, func(t models.Table) bool { return t.ID == c.TableID })
	if !ok {
		return fmt.Errorf("%w: %d", ErrTableNotFound, c.TableID)
	}
	if c.Status != models.TableStatusOccupied && s.OpenOrderForTable(c.TableID).IsPresent() {
		return fmt.Errorf("%w: settle the bill of %s first", ErrTableHasOrder, s.Tables[ti].Name)
	}
	s.Tables[ti].Status = c.Status
	return nil
}

func (c AddItemToOrder) apply(s *State, _ Reducer) error {
	oi, err := activeOrderIndex(s)
	if err != nil {
		return err
	}
	_, mi, ok := lo.FindIndexOf(s.Menu, func(m models.MenuItem) bool { return m.ID == c.ItemID })
	if !ok {
		return fmt.Errorf("%w: %s", ErrMenuItemNotFound, c.ItemID)
	}
	item := s.Menu[mi]
	if item.Stock <= 0 {
		return fmt.Errorf("%w: %s is out of stock", ErrInsufficientStock, item.Name)
	}

	order := &s.Orders[oi]
	if _, li, found := lo.FindIndexOf(order.Items, func(l models.OrderItem) bool { return l.ID == item.ID }); found {
		order.Items[li].Quantity++
	} else {
		order.Items = append(order.Items, models.OrderItem{MenuItem: item, Quantity: 1})
	}
	s.Menu[mi].Stock--
	billing.Apply(order, s.Taxes)
	return nil
}

func (c UpdateItemQuantity) apply(s *State, _ Reducer) error {
	oi, err := activeOrderIndex(s)
	if err != nil {
		return err
	}
	order := &s.Orders[oi]
	line, li, ok := lo.FindIndexOf(order.Items, func(l models.OrderItem) bool { return l.ID == c.ItemID })
	if !ok {
		return fmt.Errorf("%w: %s", ErrItemNotInOrder, c.ItemID)
	}
	_, mi, ok := lo.FindIndexOf(s.Menu, func(m models.MenuItem) bool { return m.ID == c.ItemID })
	if !ok {
		return fmt.Errorf("%w: %s", ErrMenuItemNotFound, c.ItemID)
	}

	quantity := max(c.Quantity, 0)
	diff := quantity - line.Quantity
	if s.Menu[mi].Stock < diff {
		return fmt.Errorf("%w: only %d more %s available", ErrInsufficientStock, s.Menu[mi].Stock, line.Name)
	}

	if quantity == 0 {
		order.Items = append(order.Items[:li], order.Items[li+1:]...)
	} else {
		order.Items[li].Quantity = quantity
	}
	s.Menu[mi].Stock -= diff
	billing.Apply(order, s.Taxes)
	return nil
}

func (c RemoveItemFromOrder) apply(s *State, _ Reducer) error {
	oi, err := activeOrderIndex(s)
	if err != nil {
		return err
	}
	order := &s.Orders[oi]
	line, li, ok := lo.FindIndexOf(order.Items, func(l models.OrderItem) bool { return l.ID == c.ItemID })
	if !ok {
		return fmt.Errorf("%w: %s", ErrItemNotInOrder, c.ItemID)
	}

	order.Items = append(order.Items[:li], order.Items[li+1:]...)
	if _, mi, found := lo.FindIndexOf(s.Menu, func(m models.MenuItem) bool { return m.ID == c.ItemID }); found {
		s.Menu[mi].Stock += line.Quantity
	}
	billing.Apply(order, s.Taxes)
	return nil
}

func (c UpdateCustomerDetails) apply(s *State, _ Reducer) error {
	oi, err := activeOrderIndex(s)
	if err != nil {
		return err
	}
	s.Orders[oi].CustomerName = c.Name
	s.Orders[oi].CustomerPhone = c.Phone
	return nil
}

func (c FinalizeBill) apply(s *State, r Reducer) error {
	order, err := settle(s, r, c.OrderID, true)
	if err != nil {
		return err
	}
	s.CompletedOrders = append(s.CompletedOrders, order)
	s.TotalSales = billing.Sum(s.TotalSales, order.Total)
	return nil
}

func (c MoveToCredit) apply(s *State, r Reducer) error {
	order, err := settle(s, r, c.OrderID, false)
	if err != nil {
		return err
	}
	s.CreditRecords = append(s.CreditRecords, order)
	return nil
}

// settle takes an open order off the floor: it frees the table, records the
// visit on the customer and returns to the tables page. The caller files the
// order into its ledger.
func settle(s *State, r Reducer, orderID string, paid bool) (models.Order, error) {
	order, oi, ok := lo.FindIndexOf(s.Orders, func(o models.Order) bool { return o.ID == orderID })
	if !ok {
		return models.Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	s.Orders = append(s.Orders[:oi], s.Orders[oi+1:]...)

	if _, ti, found := lo.FindIndexOf(s.Tables, func(t models.Table) bool { return t.ID == order.TableID }); found {
		s.Tables[ti].Status = models.TableStatusAvailable
	}
	if order.HasCustomer() {
		recordVisit(s, r, order, paid)
	}

	s.ActiveOrderID = ""
	s.View = models.TablesView{}
	return order, nil
}

// recordVisit upserts the order's customer by exact phone match. Only paid
// bills count towards total spent.
func recordVisit(s *State, r Reducer, order models.Order, paid bool) {
	spent := 0.0
	if paid {
		spent = order.Total
	}
	now := r.Now()

	_, ci, found := lo.FindIndexOf(s.Customers, func(c models.Customer) bool { return c.Phone == order.CustomerPhone })
	if !found {
		s.Customers = append(s.Customers, models.Customer{
			ID:         r.NewID("cust"),
			Name:       order.CustomerName,
			Phone:      order.CustomerPhone,
			TotalSpent: spent,
			Visits:     1,
			LastVisit:  now,
		})
		return
	}

	c := &s.Customers[ci]
	c.Name = order.CustomerName
	c.Visits++
	c.LastVisit = now
	c.TotalSpent = billing.Sum(c.TotalSpent, spent)
}

func activeOrderIndex(s *State) (int, error) {
	if s.ActiveOrderID == "" {
		return -1, ErrNoActiveOrder
	}
	_, oi, ok := lo.FindIndexOf(s.Orders, func(o models.Order) bool { return o.ID == s.ActiveOrderID })
	if !ok {
		return -1, fmt.Errorf("%w: active order %s is no longer open", ErrNoActiveOrder, s.ActiveOrderID)
	}
	return oi, nil
}
