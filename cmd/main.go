package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sentinl/internal/handlers"
	"sentinl/internal/logger"
	"sentinl/internal/presenter"
	"sentinl/internal/repository"
	"sentinl/internal/server"
	"sentinl/internal/service"

	_ "sentinl/docs"

	"github.com/spf13/viper"
)

const (
	defaultMonitorTick    = 1 * time.Second
	defaultReadingLogPath = "machine_logs.csv"
)

// @title           Sentinl Monitoring API
// @version         1.0
// @description     Predictive-maintenance monitor for a simulated industrial machine.
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// open DB
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(db, readingLogPath())
	services := service.NewService(service.Deps{
		Repos:      repos,
		Presenter:  presenter.NewConsole(os.Stdout),
		Log:        log,
		Seed:       monitorSeed(),
		SigningKey: viper.GetString("auth.signing_key"),
	})
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start the monitoring cycle
	tick := monitorTick()
	log.Infow("booting sentinl monitoring system", "tick", tick.String())
	go services.Monitor.Run(ctx, tick)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "sentinl.db")
		dbPath = "sentinl.db"
	}
	return repository.InitDB(dbPath)
}

// readingLogPath returns the durable CSV store location.
func readingLogPath() string {
	if p := viper.GetString("monitor.reading_log"); p != "" {
		return p
	}
	return defaultReadingLogPath
}

// monitorTick returns the real-time delay between cycle ticks.
func monitorTick() time.Duration {
	if d := viper.GetDuration("monitor.tick"); d > 0 {
		return d
	}
	return defaultMonitorTick
}

// monitorSeed returns the RNG seed; 0 in config means seed from the clock.
func monitorSeed() int64 {
	if s := viper.GetInt64("monitor.seed"); s != 0 {
		return s
	}
	return time.Now().UnixNano()
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
