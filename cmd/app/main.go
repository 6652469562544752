package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"dispatch/cmd"
	"dispatch/internal/adapters/out/postgres/metricsrepo"
	"dispatch/internal/adapters/out/postgres/technicianrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	configs := getConfigs()

	gormDB := mustConnectDB(configs)
	redisClient := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})

	app := cmd.NewCompositionRoot(configs, gormDB, redisClient, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:            goDotEnvVariable("HTTP_PORT"),
		DBHost:              goDotEnvVariable("DB_HOST"),
		DBPort:              goDotEnvVariable("DB_PORT"),
		DBUser:              goDotEnvVariable("DB_USER"),
		DBPassword:          goDotEnvVariable("DB_PASSWORD"),
		DBName:              goDotEnvVariable("DB_NAME"),
		DBSslMode:           goDotEnvVariable("DB_SSLMODE"),
		RedisAddr:           goDotEnvVariable("REDIS_ADDR"),
		GeocodeBaseURL:      envOrDefault("HERE_GEOCODE_URL", "https://geocode.search.hereapi.com/v1/geocode"),
		RoutingBaseURL:      envOrDefault("HERE_ROUTING_URL", "https://router.hereapi.com/v8/routes"),
		CredentialParameter: envOrDefault("HERE_API_KEY_PARAM", "/dispatch/here-api-key"),
		AWSRegion:           envOrDefault("AWS_REGION", "us-east-1"),
		MetricQueueCapacity: intEnv("METRIC_QUEUE_CAPACITY"),
		BaseAddresses:       baseAddresses(),
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

func envOrDefault(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func intEnv(key string) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}
	return value
}

// baseAddresses reads the company directory from COMPANY_BASE_ADDRESSES,
// a JSON object mapping company name to base address. Falls back to the
// built-in directory when unset.
func baseAddresses() map[string]string {
	raw := os.Getenv("COMPANY_BASE_ADDRESSES")
	if raw == "" {
		return cmd.DefaultBaseAddresses()
	}

	var directory map[string]string
	if err := json.Unmarshal([]byte(raw), &directory); err != nil {
		log.Fatalf("Invalid COMPANY_BASE_ADDRESSES: %v", err)
	}
	return directory
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&technicianrepo.TechnicianDTO{},
		&technicianrepo.JobDTO{},
		&metricsrepo.MetricDTO{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	app.CreateServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
