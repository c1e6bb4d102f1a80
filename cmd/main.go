package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/Vasu1712/zenith-backend/internal/auth"
	"github.com/Vasu1712/zenith-backend/internal/config"
	"github.com/Vasu1712/zenith-backend/internal/registration"
	"github.com/Vasu1712/zenith-backend/internal/render"
	"github.com/Vasu1712/zenith-backend/internal/scene"
	"github.com/Vasu1712/zenith-backend/internal/server"
	"github.com/Vasu1712/zenith-backend/internal/storage/memory"
	"github.com/Vasu1712/zenith-backend/internal/storage/valkey"
	"github.com/Vasu1712/zenith-backend/internal/ws"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run serves until SIGINT/SIGTERM or a listener failure. Errors are
// returned rather than fatal so deferred cleanup always runs.
func run() error {
	envFile := pflag.String("env-file", ".env", "dotenv file to load before reading the environment")
	addr := pflag.String("addr", "", "listen address (overrides ADDR)")
	pflag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		var missing *config.MissingError
		if errors.As(err, &missing) {
			return fmt.Errorf("[Config] %w", missing)
		}
		return fmt.Errorf("[Config] %w", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := scene.NewRegistry()
	if err := registry.Validate(); err != nil {
		return fmt.Errorf("[Scene] invalid scene table: %w", err)
	}

	var store registration.Store
	if cfg.ValkeyAddr != "" {
		openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		vs, err := valkey.NewRegistrationStore(openCtx, cfg.ValkeyAddr)
		cancel()
		if err != nil {
			return fmt.Errorf("[Storage] %w", err)
		}
		defer vs.Close()
		store = vs
	} else {
		log.Println("[Storage] VALKEY_ADDR not set, registrations are kept in memory")
		store = memory.NewRegistrationStore()
	}

	gate, err := auth.NewGate(auth.Settings{
		AuthURL:       cfg.AuthURL,
		Secret:        cfg.AuthSecret,
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		TTL:           cfg.SessionTTL,
	})
	if err != nil {
		return fmt.Errorf("[Auth] %w", err)
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	hub := ws.NewHub()
	go hub.Run(hubCtx)

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: server.NewRouter(server.Deps{
			Registry:      registry,
			Hub:           hub,
			Service:       registration.NewService(store),
			Gate:          gate,
			RenderOptions: render.Options{FrameInterval: cfg.FrameInterval()},
			CORSOrigin:    cfg.CORSOrigin,
			SecureCookie:  strings.HasPrefix(cfg.AuthURL, "https://"),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("Server started at %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("[HTTP] %w", err)
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		stopHub()
		<-hub.Stopped()
		return err
	}

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// Hijacked websocket connections are not tracked by Shutdown; the hub
	// closes them.
	stopHub()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[HTTP] shutdown: %v", err)
	}
	<-hub.Stopped()
	return nil
}
