package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"brinquedos/internal/app"
	"brinquedos/internal/config"
)

func main() {
	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	if err := run(quit); err != nil {
		var cfgErr *config.ConfigError
		if errors.As(err, &cfgErr) {
			log.Printf("Invalid configuration: %v", cfgErr)
		} else {
			log.Printf("Server error: %v", err)
		}
		os.Exit(1)
	}
}

// run loads the configuration, serves until a signal arrives on quit and then
// shuts everything down. Configuration errors are returned before any
// connection or socket is opened.
func run(quit <-chan os.Signal) error {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// --- Initialize Application ---
	application, err := app.NewApp(cfg)
	if err != nil {
		return err
	}

	// --- Start HTTP Server ---
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- application.Listen()
	}()

	// Wait for interrupt signal or a listener failure
	select {
	case sig := <-quit:
		log.Printf("Received %s, shutting down server...", sig)
	case err := <-serverErr:
		_ = application.Shutdown()
		return err
	}

	if err := application.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
	return nil
}
