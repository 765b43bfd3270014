package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/mvaldes-dev/portfolio-gallery/internal/container"
	"github.com/mvaldes-dev/portfolio-gallery/internal/logging"
	"github.com/mvaldes-dev/portfolio-gallery/internal/middleware"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	c, err := container.New()
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer c.Cleanup()

	r := chi.NewMux()

	r.Use(middleware.NewCORSHandler(&c.Config.CORS))
	r.Use(middleware.RequestContext)
	r.Use(middleware.LoggingMiddleware)

	c.Server.Routes(r)

	addr := fmt.Sprintf("0.0.0.0:%s", c.Config.Server.Port)
	s := &http.Server{
		Handler: r,
		Addr:    addr,
	}

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logging.Info("Shutting down server...")
		c.Cleanup()
		os.Exit(0)
	}()

	logging.Info("Server starting", "addr", addr)
	log.Fatal(s.ListenAndServe())
}
