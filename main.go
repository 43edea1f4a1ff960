package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	intconfig "github.com/Harshith-45/Assignment-Twilight-Bus/internal/config"
	intdb "github.com/Harshith-45/Assignment-Twilight-Bus/internal/db"
	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain/models"
	router "github.com/Harshith-45/Assignment-Twilight-Bus/internal/http"
	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/http/handlers"
	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/infra"
	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/repositories"
	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/services"
	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/utils"
)

func main() {
	env := intconfig.LoadEnv()
	slog.SetDefault(utils.NewLogger(os.Stdout, env.LogLevel))
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	ctx := context.Background()

	store, db, err := openStore(ctx, env)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}

	var locker services.Locker = &services.LocalLocker{}
	if env.RedisAddr != "" {
		rdb := infra.NewRedis(env.RedisAddr)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Error("failed to reach redis", "addr", env.RedisAddr, "error", err)
			os.Exit(1)
		}
		locker = infra.NewRedisLocker(rdb)
		slog.Info("settlement lock backed by redis", "addr", env.RedisAddr)
	}

	hd := &handlers.Handler{
		Store:     store,
		Locker:    locker,
		JWTSecret: []byte(env.JWTSecret),
		TokenTTL:  env.TokenTTL,
		Now:       time.Now,
	}
	if err := hd.Auth().EnsureAdmin(ctx, env.AdminEmail, env.AdminPassword); err != nil {
		slog.Error("failed to seed admin", "error", err)
		os.Exit(1)
	}

	r := router.NewRouter(env, hd)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
		return
	}
	slog.Info("server stopped")
}

// openStore picks MySQL when DB_DSN is set, otherwise the in-memory store.
func openStore(ctx context.Context, env intconfig.Env) (services.Store, *sql.DB, error) {
	if env.DBDSN == "" {
		slog.Info("using in-memory store")
		return repositories.NewMemoryStore(models.DefaultRoutes()), nil, nil
	}

	db, err := intconfig.ConnectDB(ctx, env.DBDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := intdb.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	store := repositories.NewMySQLStore(db)
	if err := store.SeedRoutes(ctx, models.DefaultRoutes()); err != nil {
		db.Close()
		return nil, nil, err
	}
	slog.Info("using mysql store")
	return store, db, nil
}
