package models

import (
	"errors"
	"fmt"
)

// Page names a screen of the front-of-house view
type Page string

const (
	PageDashboard  Page = "Dashboard"
	PageTables     Page = "Tables"
	PageOrder      Page = "Order"
	PageMenu       Page = "Menu"
	PageCustomers  Page = "Customers"
	PageStaff      Page = "Staff"
	PageReports    Page = "Reports"
	PageAISpecials Page = "AI_Specials"
	PageSettings   Page = "Settings"
	PageQRMenu     Page = "QRMenu"
)

var ErrInvalidPage = errors.New("invalid page")

// PageView is the tagged variant describing the current page and the
// fields that page needs. Only the variants below implement it.
type PageView interface {
	Page() Page
}

type DashboardView struct{}
type TablesView struct{}
type MenuView struct{}
type CustomersView struct{}
type StaffView struct{}
type SpecialsView struct{}
type SettingsView struct{}

// OrderView shows one open order; it makes that order the active one.
type OrderView struct {
	OrderID string
}

// ReportsView remembers which report and time frame are selected.
type ReportsView struct {
	Report    ReportType
	TimeFrame TimeFrame
}

// QRMenuView is the read-only public menu entered through a table deep link.
type QRMenuView struct {
	TableID int64
}

func (DashboardView) Page() Page { return PageDashboard }
func (TablesView) Page() Page    { return PageTables }
func (MenuView) Page() Page      { return PageMenu }
func (CustomersView) Page() Page { return PageCustomers }
func (StaffView) Page() Page     { return PageStaff }
func (SpecialsView) Page() Page  { return PageAISpecials }
func (SettingsView) Page() Page  { return PageSettings }
func (OrderView) Page() Page     { return PageOrder }
func (ReportsView) Page() Page   { return PageReports }
func (QRMenuView) Page() Page    { return PageQRMenu }

// PageDescriptor is the flat wire form of a PageView.
type PageDescriptor struct {
	Page      Page       `json:"page"`
	OrderID   string     `json:"order_id,omitempty"`
	TableID   int64      `json:"table_id,omitempty"`
	Report    ReportType `json:"report,omitempty"`
	TimeFrame TimeFrame  `json:"time_frame,omitempty"`
}

// DescribeView flattens a PageView for JSON output.
func DescribeView(v PageView) PageDescriptor {
	if v == nil {
		return PageDescriptor{Page: PageDashboard}
	}
	d := PageDescriptor{Page: v.Page()}
	switch view := v.(type) {
	case OrderView:
		d.OrderID = view.OrderID
	case QRMenuView:
		d.TableID = view.TableID
	case ReportsView:
		d.Report = view.Report
		d.TimeFrame = view.TimeFrame
	}
	return d
}

// View builds the PageView variant the descriptor names, checking that
// pages which need an id carry one.
func (d PageDescriptor) View() (PageView, error) {
	switch d.Page {
	case PageDashboard, "":
		return DashboardView{}, nil
	case PageTables:
		return TablesView{}, nil
	case PageMenu:
		return MenuView{}, nil
	case PageCustomers:
		return CustomersView{}, nil
	case PageStaff:
		return StaffView{}, nil
	case PageAISpecials:
		return SpecialsView{}, nil
	case PageSettings:
		return SettingsView{}, nil
	case PageOrder:
		if d.OrderID == "" {
			return nil, fmt.Errorf("%w: %s page requires an order id", ErrInvalidPage, d.Page)
		}
		return OrderView{OrderID: d.OrderID}, nil
	case PageQRMenu:
		if d.TableID <= 0 {
			return nil, fmt.Errorf("%w: %s page requires a table id", ErrInvalidPage, d.Page)
		}
		return QRMenuView{TableID: d.TableID}, nil
	case PageReports:
		report := d.Report
		if report == "" {
			report = ReportSales
		}
		tf := d.TimeFrame
		if tf == "" {
			tf = TimeFrameMonth
		}
		if !IsValidReportType(string(report)) || !IsValidTimeFrame(string(tf)) {
			return nil, fmt.Errorf("%w: unknown report %q or time frame %q", ErrInvalidPage, report, tf)
		}
		return ReportsView{Report: report, TimeFrame: tf}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidPage, d.Page)
	}
}
