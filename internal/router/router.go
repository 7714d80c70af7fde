package router

import (
	"net/http"
	"time"

	"rms_backend/internal/handlers"
	"rms_backend/internal/services"
	"rms_backend/internal/ws"
	"rms_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Dependencies are the services the HTTP layer is built on.
type Dependencies struct {
	Dispatcher services.DispatcherService
	Hub        *ws.Hub
	Bills      services.BillService
	Reports    services.ReportService
	Exports    services.ExportService
	Specials   services.SpecialsService
}

// NewEngine creates the gin engine with logging, recovery and CORS.
func NewEngine(allowedOrigins []string) *gin.Engine {
	engine := gin.New()
	engine.Use(utils.GinLogger())
	engine.Use(gin.Recovery())

	corsCfg := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) == 0 {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	engine.Use(cors.New(corsCfg))
	return engine
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, deps Dependencies) {
	stateHandler := handlers.NewStateHandler(deps.Dispatcher, deps.Hub)
	tableHandler := handlers.NewTableHandler(deps.Dispatcher, deps.Bills)
	orderHandler := handlers.NewOrderHandler(deps.Dispatcher, deps.Bills)
	menuHandler := handlers.NewMenuHandler(deps.Dispatcher)
	settingsHandler := handlers.NewSettingsHandler(deps.Dispatcher)
	customerHandler := handlers.NewCustomerHandler(deps.Dispatcher)
	staffHandler := handlers.NewStaffHandler(deps.Dispatcher)
	expenseHandler := handlers.NewExpenseHandler(deps.Dispatcher)
	reportHandler := handlers.NewReportHandler(deps.Reports, deps.Exports)
	specialsHandler := handlers.NewSpecialsHandler(deps.Specials)

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := engine.Group("/api/v1")

	SetupStateRoutes(apiV1, stateHandler)
	SetupTableRoutes(apiV1, tableHandler, settingsHandler)
	SetupOrderRoutes(apiV1, orderHandler)
	SetupMenuRoutes(apiV1, menuHandler, settingsHandler)
	SetupSettingsRoutes(apiV1, settingsHandler)
	SetupCustomerRoutes(apiV1, customerHandler)
	SetupStaffRoutes(apiV1, staffHandler)
	SetupExpenseRoutes(apiV1, expenseHandler)
	SetupReportRoutes(apiV1, reportHandler)
	SetupDashboardRoutes(apiV1, reportHandler)
	SetupSpecialsRoutes(apiV1, specialsHandler)

	// the QR menu is opened by guests
	public := apiV1.Group("/public")
	public.GET("/menu", menuHandler.GetPublicMenu)
}
