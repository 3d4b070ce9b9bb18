package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/share-mixer/cliparse"
	"github.com/danielhkuo/share-mixer/db"
	"github.com/danielhkuo/share-mixer/middleware"
	"github.com/danielhkuo/share-mixer/mixer"
	"github.com/danielhkuo/share-mixer/router"
	"github.com/danielhkuo/share-mixer/stats"
	"github.com/danielhkuo/share-mixer/store"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect and migrate
	dbConn, err := db.New(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database setup failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	st := store.NewSQLStore(dbConn)
	defer st.Close()
	slog.Info("Database ready", "type", cfg.DatabaseType)

	if cfg.YTAPIKey == "" {
		slog.Warn("YT_API_KEY not set, /api/youtube-subs will return errors")
	}

	svc := mixer.New(st)
	statsClient := stats.NewClient(cfg.YTAPIBase, cfg.YTAPIKey, nil)

	// Create router
	mux := router.NewRouter(svc, cfg, statsClient)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
