// Command devgateway serves an in-memory stand-in for the storefront backend
// so the client can be exercised locally.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/shared"
	"github.com/dmitrijs2005/storefront/internal/testkit/fakegateway"
)

func main() {
	addr := flag.String("a", "127.0.0.1:3000", "listen address")
	secret := flag.String("k", "", "token signing key (random when empty)")
	adminEmail := flag.String("admin-email", "admin@example.com", "seeded admin email")
	adminPassword := flag.String("admin-password", "admin", "seeded admin password")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logging.New(slog.LevelInfo, os.Stderr)

	if *secret == "" {
		key, err := shared.MakeRandHexString(32)
		if err != nil {
			log.Error(ctx, "generate signing key", "error", err)
			os.Exit(1)
		}
		*secret = key
	}

	gw := fakegateway.New([]byte(*secret))
	if _, err := gw.AddUser("Admin", *adminEmail, *adminPassword, fakegateway.RoleAdmin); err != nil {
		log.Error(ctx, "seed admin", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{Addr: *addr, Handler: gw, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info(ctx, "dev gateway listening", "addr", *addr, "admin", *adminEmail)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error(ctx, "server stopped", "error", err)
		os.Exit(1)
	}
}
