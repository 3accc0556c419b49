package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/in/queue"
	"fulfillment/internal/adapters/out/postgres/inventoryrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/shipmentrepo"
	"fulfillment/internal/jobs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/rabbitmq/amqp091-go"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := gorm.Open(postgres.Open(configs.PostgresDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB)

	jobManager := jobs.NewJobManager(app.ShipmentRepository(), configs.StaleShipmentThreshold, logger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	if configs.AmqpURL != "" {
		stopConsumer, consumerErr := startQueueConsumer(configs, &app, logger)
		if consumerErr != nil {
			log.Fatalf("Error starting queue consumer: %v", consumerErr)
		}
		defer stopConsumer()
	}

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:               goDotEnvVariable("HTTP_PORT"),
		DBHost:                 goDotEnvVariable("DB_HOST"),
		DBPort:                 goDotEnvVariable("DB_PORT"),
		DBUser:                 goDotEnvVariable("DB_USER"),
		DBPassword:             goDotEnvVariable("DB_PASSWORD"),
		DBName:                 goDotEnvVariable("DB_NAME"),
		DBSslMode:              goDotEnvVariable("DB_SSLMODE"),
		AmqpURL:                goDotEnvVariable("AMQP_URL"),
		LockAcquireTimeout:     durationVariable("LOCK_ACQUIRE_TIMEOUT"),
		StaleShipmentThreshold: durationVariable("STALE_SHIPMENT_THRESHOLD"),
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

// durationVariable reads an optional duration such as "5s" or "24h".
// Missing or malformed values fall back to the component defaults.
func durationVariable(key string) time.Duration {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return 0
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Warnf("Ignoring invalid %s value %q", key, raw)
		return 0
	}
	return d
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&orderrepo.OrderEventDTO{},
		&shipmentrepo.ShipmentDTO{},
		&inventoryrepo.StockItemDTO{},
	)
}

func startQueueConsumer(configs cmd.Config, app *cmd.CompositionRoot, logger *slog.Logger) (func(), error) {
	conn, err := amqp091.Dial(configs.AmqpURL)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	consumer, err := queue.NewCarrierStatusConsumer(
		channel,
		app.CreateIngestCarrierStatusCommandHandler(),
		logger,
	)
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err = consumer.Start(context.Background()); err != nil {
		conn.Close()
		return nil, err
	}

	return func() {
		consumer.Stop()
		conn.Close()
	}, nil
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateTransitionOrderCommandHandler(),
		app.CreateIngestCarrierStatusCommandHandler(),
		app.CreateGetValidNextStatesQueryHandler(),
		app.CreateGetOrderTimelineQueryHandler(),
		app.CreateGetOpenOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
