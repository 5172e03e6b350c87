package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "scheduling/api/swagger" // swagger docs
	"scheduling/internal/config"
	"scheduling/internal/database"
	"scheduling/internal/handler"
	"scheduling/internal/logger"
	"scheduling/internal/middleware"
	"scheduling/internal/service"
	"scheduling/internal/token"
	"scheduling/internal/websocket"
)

// @title           Scheduling API
// @version         1.0
// @description     Multi-tenant scheduling backend: addresses, businesses, travel fees, service catalog, bookings and leads.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app is the state every subcommand starts from.
type app struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
}

func bootstrap() (*app, error) {
	cfg, envFile, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	if !envFile {
		log.Info("No configs/.env file found, using process environment")
	}

	db, err := database.NewConnection(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	log.Info("Connected to PostgreSQL successfully.", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))
	return &app{cfg: cfg, log: log, db: db}, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "scheduling",
		Short:        "Scheduling API server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newCreateAdminCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the schema and start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = a.log.Sync() }()
			return database.Migrate(a.db, a.log)
		},
	}
}

func newCreateAdminCmd() *cobra.Command {
	var email, firstName, lastName, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Seed an account holding the Admin role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("ADMIN_PASSWORD")
			}
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = a.log.Sync() }()
			if err := database.Migrate(a.db, a.log); err != nil {
				return err
			}

			tokens := token.NewService(a.cfg.JWTSecret, a.cfg.JWTTTL)
			svc := service.New(a.db, tokens, nil)
			user, err := svc.Users.CreateAdmin(cmd.Context(), email, firstName, lastName, password)
			if err != nil {
				return err
			}
			a.log.Info("admin created", zap.String("id", user.ID.String()), zap.String("email", user.Email))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&firstName, "first-name", "Admin", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "User", "last name")
	cmd.Flags().StringVar(&password, "password", "", "password (defaults to $ADMIN_PASSWORD)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func runServe(parent context.Context) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = a.log.Sync() }()
	if err := database.Migrate(a.db, a.log); err != nil {
		return err
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.cfg.GinMode != "" {
		gin.SetMode(a.cfg.GinMode)
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub(a.log.Named("ws"), a.cfg.CORSOrigins)
	go wsHub.Run(ctx)

	tokens := token.NewService(a.cfg.JWTSecret, a.cfg.JWTTTL)
	services := service.New(a.db, tokens, wsHub)

	metrics := middleware.NewMetrics()
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(metrics.PrometheusCollectors()...)

	router := handler.NewRouter(handler.RouterDeps{
		Services:     services,
		Verifier:     tokens,
		Hub:          wsHub,
		Metrics:      metrics,
		Gatherer:     registry,
		Log:          a.log,
		CORSOrigins:  a.cfg.CORSOrigins,
		PublicIntake: a.cfg.PublicIntake,
		Cookie:       handler.CookiePolicy{TTL: a.cfg.JWTTTL, Release: a.cfg.Release()},
	})

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		a.log.Info("Server listening", zap.String("addr", srv.Addr), zap.Bool("public_intake", a.cfg.PublicIntake))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
