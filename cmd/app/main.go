package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"tracksaidas/cmd"
	httpin "tracksaidas/internal/adapters/in/http"
	"tracksaidas/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB, err := gorm.Open(gorm_postgres.Open(postgresDSN(configs)), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})

	app := cmd.NewCompositionRoot(configs, gormDB, redisClient)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	jobManager := jobs.NewJobManager(
		app.CreateReconcileSessionsCommandHandler(),
		app.CreateGenerateClosuresCommandHandler(),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),
		RedisAddr:  goDotEnvVariable("REDIS_ADDR"),
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

func postgresDSN(configs cmd.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(httpin.Handlers{
		CreateDelivery:  app.CreateCreateDeliveryCommandHandler(),
		AttachAddress:   app.CreateAttachAddressCommandHandler(),
		AssignCourier:   app.CreateAssignCourierCommandHandler(),
		RemoveCourier:   app.CreateRemoveCourierCommandHandler(),
		MarkDelivered:   app.CreateMarkDeliveredCommandHandler(),
		MarkAbsent:      app.CreateMarkAbsentCommandHandler(),
		CancelDelivery:  app.CreateCancelDeliveryCommandHandler(),
		StartSession:    app.CreateStartSessionCommandHandler(),
		AdvanceSession:  app.CreateAdvanceSessionCommandHandler(),
		FinishSession:   app.CreateFinishSessionCommandHandler(),
		ReorderStops:    app.CreateReorderStopsCommandHandler(),
		OptimizeRoute:   app.CreateOptimizeRouteCommandHandler(),
		GenerateClosure: app.CreateGenerateClosureCommandHandler(),

		DeliveryHistory:   app.CreateGetDeliveryHistoryQueryHandler(),
		PendingDeliveries: app.CreateGetPendingDeliveriesQueryHandler(),
		CourierDay:        app.CreateGetCourierDayQueryHandler(),
		RouteStats:        app.CreateGetRouteStatsQueryHandler(),
	})
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
