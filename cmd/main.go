// @title        Pumpversuch API
// @version      1.0
// @description  Long-term pump test protocol: parameters, measurement table, derived series, charts and exports.
// @BasePath     /
package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "pumpversuch/docs"
	"pumpversuch/internal/handlers"
	"pumpversuch/internal/logger"
	"pumpversuch/internal/repository"
	"pumpversuch/internal/repository/db"
	"pumpversuch/internal/server"
	"pumpversuch/internal/service"

	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

func main() {
	v := viper.New()
	cfgErr := loadConfig(v, "configs")

	// init logger
	log := logger.Get(v.GetString("log.level"))
	defer func() { _ = log.Sync() }()

	if cfgErr != nil {
		log.Fatalw("error reading config", "err", cfgErr)
	}
	if lvl := v.GetString("log.level"); !logger.KnownLevel(lvl) {
		log.Warnw("unknown log.level; using info", "level", lvl)
	}

	opts, err := serviceOptions(v)
	if err != nil {
		log.Fatalw("invalid defaults in config", "err", err)
	}
	opts.Log = log

	// open DB
	conn, err := openDB(v, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, opts)
	apiHandler := handlers.NewHandler(services, log)

	srv := server.New(server.Config{
		Port:         v.GetString("port"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
	})
	runHTTPServer(srv, apiHandler, log)

	waitForShutdown(srv, log)
}

// openDB initializes SQLite; the default keeps sessions in memory.
func openDB(v *viper.Viper, log *logger.Logger) (*sql.DB, error) {
	path := v.GetString("db.path")
	if path == db.InMemory {
		log.Infow("sessions are kept in memory; set db.path to persist them")
	}
	return db.InitDB(path)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http server listening", "addr", srv.Addr())
		if err := srv.Run(handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
