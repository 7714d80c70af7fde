package router

import (
	"rms_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupStateRoutes sets up the snapshot, command and live update routes.
func SetupStateRoutes(apiGroup *gin.RouterGroup, stateHandler *handlers.StateHandler) {
	apiGroup.GET("/state", stateHandler.GetState)
	apiGroup.POST("/commands", stateHandler.ExecuteCommand)
	apiGroup.PUT("/page", stateHandler.SetPage)
	apiGroup.GET("/ws", stateHandler.Live)
}

// SetupTableRoutes sets up the table routes.
func SetupTableRoutes(apiGroup *gin.RouterGroup, tableHandler *handlers.TableHandler, settingsHandler *handlers.SettingsHandler) {
	tableRoutes := apiGroup.Group("/tables")
	{
		tableRoutes.GET("", tableHandler.GetTables)
		tableRoutes.POST("", settingsHandler.CreateTable)
		tableRoutes.DELETE("/:id", settingsHandler.DeleteTable)
		tableRoutes.POST("/:id/open", tableHandler.OpenTable)
		tableRoutes.PATCH("/:id/status", tableHandler.UpdateTableStatus)
		tableRoutes.GET("/:id/qr", tableHandler.GetTableQRCode)
	}
}

// SetupOrderRoutes sets up the order routes.
func SetupOrderRoutes(apiGroup *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orderRoutes := apiGroup.Group("/orders")
	{
		orderRoutes.GET("", orderHandler.GetOrders)
		orderRoutes.GET("/active", orderHandler.GetActiveOrder)
		orderRoutes.POST("/active/items", orderHandler.AddItem)
		orderRoutes.PUT("/active/items/:itemId", orderHandler.UpdateItemQuantity)
		orderRoutes.DELETE("/active/items/:itemId", orderHandler.RemoveItem)
		orderRoutes.PUT("/active/customer", orderHandler.UpdateCustomer)

		orderRoutes.GET("/:id", orderHandler.GetOrderByID)
		orderRoutes.POST("/:id/finalize", orderHandler.FinalizeBill)
		orderRoutes.POST("/:id/credit", orderHandler.MoveToCredit)
		orderRoutes.GET("/:id/bill", orderHandler.GetBill)
		orderRoutes.GET("/:id/split", orderHandler.SplitBill)
		orderRoutes.GET("/:id/payment-qr", orderHandler.GetPaymentQR)
		orderRoutes.GET("/:id/invoice.pdf", orderHandler.DownloadInvoice)
	}
}

// SetupMenuRoutes sets up the menu and category routes.
func SetupMenuRoutes(apiGroup *gin.RouterGroup, menuHandler *handlers.MenuHandler, settingsHandler *handlers.SettingsHandler) {
	menuRoutes := apiGroup.Group("/menu")
	{
		menuRoutes.GET("", menuHandler.GetMenu)
		menuRoutes.POST("", menuHandler.CreateMenuItem)
	}
	categoryRoutes := apiGroup.Group("/categories")
	{
		categoryRoutes.GET("", menuHandler.GetCategories)
		categoryRoutes.POST("", settingsHandler.CreateCategory)
		categoryRoutes.DELETE("/:name", settingsHandler.DeleteCategory)
	}
}

// SetupSettingsRoutes sets up the tax routes.
func SetupSettingsRoutes(apiGroup *gin.RouterGroup, settingsHandler *handlers.SettingsHandler) {
	taxRoutes := apiGroup.Group("/taxes")
	{
		taxRoutes.GET("", settingsHandler.GetTaxes)
		taxRoutes.POST("", settingsHandler.CreateTax)
		taxRoutes.DELETE("/:id", settingsHandler.DeleteTax)
		taxRoutes.PATCH("/:id/toggle", settingsHandler.ToggleTax)
	}
}

// SetupCustomerRoutes sets up the customer routes.
func SetupCustomerRoutes(apiGroup *gin.RouterGroup, customerHandler *handlers.CustomerHandler) {
	customerRoutes := apiGroup.Group("/customers")
	{
		customerRoutes.GET("", customerHandler.GetCustomers)
		customerRoutes.POST("", customerHandler.CreateCustomer)
		customerRoutes.POST("/offers", customerHandler.SendOffer)
	}
}

// SetupStaffRoutes sets up the staff routes.
func SetupStaffRoutes(apiGroup *gin.RouterGroup, staffHandler *handlers.StaffHandler) {
	staffRoutes := apiGroup.Group("/staff")
	{
		staffRoutes.GET("", staffHandler.GetStaffMembers)
		staffRoutes.POST("", staffHandler.CreateStaffMember)
		staffRoutes.PATCH("/:id/toggle", staffHandler.ToggleStaffStatus)
		staffRoutes.POST("/pay-salaries", staffHandler.PaySalaries)
	}
}

// SetupExpenseRoutes sets up the expense routes.
func SetupExpenseRoutes(apiGroup *gin.RouterGroup, expenseHandler *handlers.ExpenseHandler) {
	expenseRoutes := apiGroup.Group("/expenses")
	{
		expenseRoutes.GET("", expenseHandler.GetExpenses)
		expenseRoutes.POST("", expenseHandler.CreateExpense)
	}
}

// SetupReportRoutes sets up the report routes.
func SetupReportRoutes(apiGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	apiGroup.GET("/reports/:type", reportHandler.GetReport)
}

// SetupDashboardRoutes sets up the dashboard routes.
func SetupDashboardRoutes(apiGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	apiGroup.GET("/dashboard/summary", reportHandler.GetDashboardSummary)
}

// SetupSpecialsRoutes sets up the chef specials route.
func SetupSpecialsRoutes(apiGroup *gin.RouterGroup, specialsHandler *handlers.SpecialsHandler) {
	apiGroup.POST("/specials", specialsHandler.GenerateSpecials)
}
