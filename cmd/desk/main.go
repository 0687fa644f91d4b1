package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aswin-roy/ladybird-desk/internal/api"
	"github.com/aswin-roy/ladybird-desk/internal/catalog"
	"github.com/aswin-roy/ladybird-desk/internal/diagnostics"
	"github.com/aswin-roy/ladybird-desk/internal/orders"
	"github.com/aswin-roy/ladybird-desk/internal/sales"
	"github.com/aswin-roy/ladybird-desk/internal/search"
	"github.com/aswin-roy/ladybird-desk/pkg/auth/session"
	"github.com/aswin-roy/ladybird-desk/pkg/config"
	"github.com/aswin-roy/ladybird-desk/pkg/logger"
	"github.com/aswin-roy/ladybird-desk/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "desk"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "desk",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Output:      os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithField(ctx, "env", cfg.App.Env)

	sessionManager := session.NewManager()
	client, err := api.NewClient(cfg.Backend, sessionManager, logg)
	if err != nil {
		logg.Error(ctx, "failed to build backend client", err)
		os.Exit(1)
	}

	if err := client.Login(ctx, cfg.Auth.Email, cfg.Auth.Password); err != nil {
		logg.Error(ctx, "login failed", err)
		os.Exit(1)
	}
	defer client.Logout()

	registry := prometheus.NewRegistry()
	workflowMetrics := metrics.NewWorkflowMetrics(registry)

	if cfg.Diagnostics.Enabled {
		diag := diagnostics.NewServer(cfg.Diagnostics.Addr, cfg.App.Env, registry, logg)
		diag.Start(ctx)
		defer func() {
			if err := diag.Shutdown(context.Background()); err != nil {
				logg.Error(ctx, "error stopping diagnostics server", err)
			}
		}()
	}

	store, err := catalog.NewStore(client, logg, catalog.Options{
		RetryAttempts: cfg.Catalog.RetryAttempts,
		RetryBackoff:  cfg.Catalog.RetryBackoff,
	})
	if err != nil {
		logg.Error(ctx, "failed to build catalog store", err)
		os.Exit(1)
	}
	if err := store.Load(ctx); err != nil {
		logg.Error(ctx, "failed to load catalog", err)
		os.Exit(1)
	}

	controller, err := search.NewController(search.Params{
		Lookup:      client.SearchCustomers,
		Delay:       cfg.Search.Debounce,
		Logger:      logg,
		Metrics:     workflowMetrics,
		BaseContext: ctx,
	})
	if err != nil {
		logg.Error(ctx, "failed to build search controller", err)
		os.Exit(1)
	}

	saleSubmitter, err := sales.NewSubmitter(client, logg, workflowMetrics)
	if err != nil {
		logg.Error(ctx, "failed to build sale submitter", err)
		os.Exit(1)
	}
	orderSubmitter, err := orders.NewSubmitter(client, logg, workflowMetrics)
	if err != nil {
		logg.Error(ctx, "failed to build order submitter", err)
		os.Exit(1)
	}

	desk, err := NewDesk(DeskParams{
		In:             os.Stdin,
		Out:            os.Stdout,
		Logger:         logg,
		Search:         controller,
		Catalog:        store,
		Orders:         client,
		SaleDraft:      sales.NewDraft(),
		SaleSubmitter:  saleSubmitter,
		OrderDraft:     orders.NewDraft(),
		OrderSubmitter: orderSubmitter,
	})
	if err != nil {
		logg.Error(ctx, "failed to build desk", err)
		os.Exit(1)
	}

	logg.Info(ctx, "starting desk session")
	if err := desk.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "desk session ended unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "desk session closed")
}
