package main

import (
	"net/http"
	"os"

	"imobhub/internal/api"
	"imobhub/internal/config"
	"imobhub/internal/model"
	repo_ps "imobhub/internal/repository/postgres"
	"imobhub/internal/service/agent"
	"imobhub/internal/service/billing"
	"imobhub/internal/service/crmsync"
	"imobhub/internal/service/feed"
	"imobhub/internal/service/notify"
	"imobhub/internal/service/sheet"
	pkg_config "imobhub/pkg/config"
	"imobhub/pkg/db/postgres"
	"imobhub/pkg/masker"
	"imobhub/pkg/zaplogger"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "imobhub",
		Short: "Multi-tenant real-estate SaaS backend",
	}
	rootCmd.AddCommand(serveCmd(), migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			run()
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zaplogger.New()
			if err != nil {
				return err
			}

			cfg := config.Config{}
			if err := pkg_config.LoadConfigs(&cfg); err != nil {
				logger.Fatal("error loading configs", zap.Error(err))
			}

			dbGorm, err := postgres.NewGormConnection(cfg.DBConfig)
			if err != nil {
				logger.Fatal("error creating gorm connection", zap.Error(err))
			}
			if err := autoMigrate(dbGorm); err != nil {
				logger.Fatal("error migrating schema", zap.Error(err))
			}
			logger.Info("schema migrated")
			return nil
		},
	}
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Tenant{},
		&model.Property{},
		&model.Lead{},
		&model.Appointment{},
		&model.Partner{},
	)
}

func run() {
	logger, err := zaplogger.New()
	if err != nil {
		panic(err)
	}

	cfg := config.Config{}
	if err := pkg_config.LoadConfigs(&cfg); err != nil {
		logger.Fatal("error loading configs", zap.Error(err))
	}

	if err := masker.LogConfigs(logger, &cfg); err != nil {
		logger.Fatal("error logging configs", zap.Error(err))
	}

	dbGorm, err := postgres.NewGormConnection(cfg.DBConfig)
	if err != nil {
		logger.Fatal("error creating gorm connection", zap.Error(err))
	}
	if err := autoMigrate(dbGorm); err != nil {
		logger.Fatal("error migrating schema", zap.Error(err))
	}

	propertyRepo := repo_ps.NewPropertyRepository(dbGorm)
	leadRepo := repo_ps.NewLeadRepository(dbGorm)
	tenantRepo := repo_ps.NewTenantRepository(dbGorm)
	appointmentRepo := repo_ps.NewAppointmentRepository(dbGorm)
	partnerRepo := repo_ps.NewPartnerRepository(dbGorm)

	importer := feed.NewImporter(propertyRepo, logger)

	billingClient, err := billing.NewClient(cfg.BillingConfig.SecretKey, cfg.BillingConfig.APIBase)
	if err != nil {
		logger.Fatal("error creating billing client", zap.Error(err))
	}
	checkout := billing.NewCheckoutService(billingClient, cfg.BillingConfig, logger)
	reconciler := billing.NewReconciler(tenantRepo, cfg.BillingConfig.WebhookSecret, logger)

	agentService := agent.NewService(cfg.AgentConfig.WebhookURL, logger)

	notifier, err := notify.NewTelegramNotifier(cfg.TelegramConfig.BotToken, logger)
	if err != nil {
		logger.Fatal("error creating telegram notifier", zap.Error(err))
	}

	var forceExport chan struct{}
	if cfg.GoogleSheetConfig.SheetID != "" {
		sheetService, err := sheet.NewSheetService(
			cfg.GoogleSheetConfig.CredentialsBase64,
			cfg.GoogleSheetConfig.SheetID,
			cfg.GoogleSheetConfig.LeadListID,
			cfg.GoogleSheetConfig.PauseMs,
			sheet.CreateColumnMapFromOrder(cfg.GoogleSheetConfig.ColumnOrder),
		)
		if err != nil {
			logger.Fatal("error creating sheet service", zap.Error(err))
		}

		forceExport = make(chan struct{}, 1)
		_ = crmsync.NewExporter(sheetService, leadRepo, logger, forceExport)
	}

	server := api.NewServer(api.Deps{
		Importer:     importer,
		Checkout:     checkout,
		Reconciler:   reconciler,
		Agents:       agentService,
		Properties:   propertyRepo,
		Leads:        leadRepo,
		Tenants:      tenantRepo,
		Appointments: appointmentRepo,
		Partners:     partnerRepo,
		Notifier:     notifier,
		ForceExport:  forceExport,
	}, logger)

	logger.Info("starting http server", zap.String("addr", cfg.ServerConfig.Addr))
	if err := http.ListenAndServe(cfg.ServerConfig.Addr, server); err != nil {
		logger.Fatal("error starting http server", zap.Error(err))
	}
}
