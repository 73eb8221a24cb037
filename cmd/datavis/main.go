package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Recker011/data-visualiser/internal/config"
	"github.com/Recker011/data-visualiser/internal/server"
)

var (
	port      = flag.Int("port", 0, "server port (overrides config.toml)")
	devMode   = flag.Bool("dev", false, "development mode")
	sourceURL = flag.String("source", "", "source export URL (overrides config.toml)")
)

func main() {
	flag.Parse()

	// .env is optional; it feeds the DATAVIS_* overrides read by config.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("failed to load config, using defaults: %v", err)
		cfg = config.DefaultConfig()
	}

	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *sourceURL != "" {
		cfg.Source.URL = *sourceURL
	}

	srv := server.NewServer(cfg)
	defer srv.Close()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("data-visualiser listening on %s", addr)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("received %s, shutting down", sig)
	}
}
