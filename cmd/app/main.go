package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mesharis-cell/platform-client-main-sub003/cmd"
	httpadapter "github.com/mesharis-cell/platform-client-main-sub003/internal/adapters/in/http"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/adapters/out/postgres/historyrepo"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/adapters/out/postgres/notificationrepo"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/adapters/out/postgres/orderrepo"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/adapters/out/postgres/scanrepo"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/adapters/out/postgres/tierrepo"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/jobs"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := openDatabase(configs)
	migrateSchema(gormDB)

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	app.Dispatcher().Start()
	defer app.Dispatcher().Stop()

	jobManager := jobs.NewJobManager(
		app.CreateRunScheduledTransitionsCommandHandler(),
		app.Dispatcher(),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:             goDotEnvVariable("HTTP_PORT"),
		DBHost:               goDotEnvVariable("DB_HOST"),
		DBPort:               goDotEnvVariable("DB_PORT"),
		DBUser:               goDotEnvVariable("DB_USER"),
		DBPassword:           goDotEnvVariable("DB_PASSWORD"),
		DBName:               goDotEnvVariable("DB_NAME"),
		DBSslMode:            goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:            goDotEnvVariable("KAFKA_HOST"),
		KafkaOrderEventTopic: goDotEnvVariable("KAFKA_ORDER_EVENT_TOPIC"),
		SchedulerSecret:      goDotEnvVariable("SCHEDULER_SECRET"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func migrateSchema(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&scanrepo.EventDTO{},
		&historyrepo.HistoryDTO{},
		&tierrepo.TierDTO{},
		&notificationrepo.RecordDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateTransitionOrderCommandHandler(),
		app.CreateAdjustPricingCommandHandler(),
		app.CreateApprovePricingCommandHandler(),
		app.CreateRecordScanCommandHandler(),
		app.CreateRunScheduledTransitionsCommandHandler(),
		app.CreateGetOrderHistoryQueryHandler(),
		app.CreateEvaluateScanGateQueryHandler(),
		app.CreateFindMatchingTierQueryHandler(),
		app.CreateEstimateQuoteQueryHandler(),
		configs.SchedulerSecret,
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
