package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/sheet-auth/config"
	userapp "github.com/oksasatya/sheet-auth/internal/application"
	"github.com/oksasatya/sheet-auth/internal/infrastructure/xlsx"
	handlers "github.com/oksasatya/sheet-auth/internal/interface/http"
	"github.com/oksasatya/sheet-auth/internal/router"
	"github.com/oksasatya/sheet-auth/pkg/helpers"
	"github.com/oksasatya/sheet-auth/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	if cfg.InsecureSecret() {
		logger.Warn("JWT_SECRET is not set; using the insecure development default")
	}

	// Spreadsheet storage
	store := xlsx.NewUserStore(cfg.UsersFile)
	if err := store.EnsureStorageExists(); err != nil {
		logger.Fatalf("failed to prepare users workbook %s: %v", cfg.UsersFile, err)
	}

	// JWT
	jwtManager := helpers.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	svc := userapp.NewService(store, jwtManager, logger, cfg.BcryptCost)
	handler := handlers.NewUserHandler(svc, logger)

	r := router.Setup(cfg, logger, router.Deps{Handler: handler, JWT: jwtManager})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		helpers.LogInfo(logger, "server starting", logrus.Fields{"port": cfg.Port, "users_file": cfg.UsersFile})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
