// Package main implements a mock RocketSource API server for local
// development. It serves canned responses from JSON fixtures so the client
// and the rsc CLI can be exercised without a real account.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/donaldgifford/rocketsource-go/pkg/logger"
)

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureDir := flag.String("fixtures", "tools/mock-server/testdata", "directory containing JSON fixtures")
	apiKey := flag.String("api-key", "", "accepted bearer token (any non-empty token when unset)")
	logLevel := flag.String("log-level", "debug", "log level (debug, info, warn, error)")
	flag.Parse()

	log := logger.New(*logLevel, "text")

	fx, err := loadFixtures(*fixtureDir)
	if err != nil {
		log.Error("failed to load fixtures", "dir", *fixtureDir, "error", err)
		os.Exit(1)
	}
	log.Info("loaded fixtures", "scans", len(fx.Scans), "results", len(fx.Results.Data))

	e := newServer(log, fx, *apiKey)
	addr := fmt.Sprintf(":%d", *port)
	log.Info("starting mock RocketSource server", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error("shutting down server", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
