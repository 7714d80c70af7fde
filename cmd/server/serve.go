package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"rms_backend/internal/config"
	"rms_backend/internal/database"
	"rms_backend/internal/events"
	"rms_backend/internal/repositories"
	"rms_backend/internal/router"
	"rms_backend/internal/services"
	"rms_backend/internal/state"
	"rms_backend/internal/ws"
	"rms_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and websocket server.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context(), cfg)
	},
}

func serve(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	bus, closeSinks, err := buildEventBus(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSinks()

	hub := ws.NewHub()
	now := func() time.Time { return time.Now().In(cfg.Location) }
	reducer := state.NewReducer()
	reducer.Now = now

	dispatcher := services.NewDispatcherService(state.Seed(now()),
		services.WithReducer(reducer),
		services.WithEventBus(bus),
		services.WithBroadcaster(hub),
	)
	billService := services.NewBillService(dispatcher, services.BillConfig{
		RestaurantName: cfg.RestaurantName,
		UPIID:          cfg.UPIID,
		PublicBaseURL:  cfg.PublicBaseURL,
	})
	gemini, err := newGeminiClient(ctx, cfg)
	if err != nil {
		return err
	}
	specialsService := services.NewSpecialsService(dispatcher, gemini)

	engine := router.NewEngine(cfg.CORSAllowedOrigins)
	router.Setup(engine, router.Dependencies{
		Dispatcher: dispatcher,
		Hub:        hub,
		Bills:      billService,
		Reports:    services.NewReportService(dispatcher, now),
		Exports:    services.NewExportService(cfg.Location),
		Specials:   specialsService,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		utils.LogInfo("Server starting", map[string]interface{}{
			"port":              cfg.Port,
			"specials_enabled":  cfg.SpecialsEnabled(),
			"event_subscribers": bus.Len(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		utils.LogInfo("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		dispatcher.Drain()
		return err
	})

	if err := g.Wait(); err != nil {
		utils.LogError(err, "Server stopped with error")
		return err
	}
	utils.LogInfo("Server stopped")
	return nil
}

// buildEventBus subscribes the configured sinks: the AMQP publisher when
// AMQP_URL is set and the Postgres ledger archive when DB_ENABLED is set.
func buildEventBus(ctx context.Context, cfg *config.Config) (*events.Bus, func(), error) {
	bus := events.NewBus()
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.AMQPURL != "" {
		publisher, err := events.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return nil, nil, err
		}
		bus.Subscribe(publisher)
		closers = append(closers, func() {
			if err := publisher.Close(); err != nil {
				utils.LogWarn("Closing AMQP publisher failed", map[string]interface{}{"error": err.Error()})
			}
		})
	}

	if cfg.DBEnabled {
		db, err := openLedgerDB(ctx, cfg)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		bus.Subscribe(services.NewLedgerArchiver(repositories.NewLedgerRepository(db)))
		closers = append(closers, func() { _ = db.Close() })
	}
	return bus, closeAll, nil
}

func openLedgerDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := database.InitDB(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := database.ApplySchema(ctx, db, cfg.DBSchemaPath); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func newGeminiClient(ctx context.Context, cfg *config.Config) (*services.GeminiClient, error) {
	return services.NewGeminiClient(ctx, services.GeminiConfig{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
		Timeout: cfg.GeminiTimeout,
	})
}
