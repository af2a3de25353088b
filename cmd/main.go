package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chatline/auth"
	httpx "chatline/infrastructure/http"
	"chatline/internal"
	"chatline/media"
	"chatline/repositories"
	"chatline/services"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or
// service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper. Its only responsibility
	// is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "chatline terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components and manages the server lifecycle. This
// pattern is preferred over calling os.Exit or panic directly because it
// ensures all 'defer' statements (like database cleanup) execute before
// the program exits.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	if config.EnableInspector {
		internal.StartDebugServer(db, config.DebugPort, "/inspect", internal.DefaultMapper, nil)
		log.Info("Badger inspector available", "url",
			fmt.Sprintf("http://localhost:%d/inspect", config.DebugPort))
	}

	// 3. Repositories & collaborators, constructor-injected all the way
	// down; no package-level handles.
	userRepository := repositories.NewUserRepository(db)
	messageRepository := repositories.NewMessageRepository(db, log)
	mediaStore := media.NewHTTPMediaStore(config.MediaUploadURL, config.MediaTimeout, log)
	tokenManager := auth.NewTokenManager(config.JWTSecret, config.AuthTokenDuration)

	// 4. Services
	authService := services.NewAuthService(userRepository, mediaStore, tokenManager)
	messageService := services.NewMessageService(
		messageRepository, userRepository, mediaStore, log, config.MaxContentLength)
	directoryService := services.NewDirectoryService(userRepository)

	// 5. HTTP server
	router := httpx.NewRouter(
		httpx.NewAuthHandler(authService, tokenManager, log),
		httpx.NewMessageHandler(messageService, directoryService, log),
		tokenManager,
	)
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 6. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", server.Addr, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 7. Wait for stop or error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return exitRuntime, err
	}

	// 8. Final cleanup: give in-flight requests a bounded window to
	// complete; fire-and-forget writes may still land during it.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return exitRuntime, fmt.Errorf("shutdown error: %w", err)
	}

	log.Info("Program stopped cleanly")
	return exitOK, nil
}
