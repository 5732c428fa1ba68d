package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/config"
	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/database"
	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/handler"
	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/logging"
	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/server"
	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/suggest"
)

func main() {
	configPath := flag.String("config", "calendard.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format)

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	var provider handler.SuggestionProvider
	suggestClient := suggest.NewClient(cfg.Suggest)
	if suggestClient.Configured() {
		provider = suggestClient
	} else {
		logger.Warn("no OpenAI API key configured, suggestions disabled")
	}

	srv := server.New(db, provider, logger)

	httpServer := &http.Server{
		Addr:         cfg.Listen,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("calendard listening on %s\n", cfg.Listen)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
