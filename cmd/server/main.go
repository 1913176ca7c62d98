package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/onenotebe/onenotebe/internal/bootstrap"
	"github.com/onenotebe/onenotebe/internal/config"
	"github.com/onenotebe/onenotebe/internal/es"
	"github.com/onenotebe/onenotebe/internal/events"
	"github.com/onenotebe/onenotebe/internal/httpserver"
	"github.com/onenotebe/onenotebe/internal/logging"
	authmw "github.com/onenotebe/onenotebe/internal/middleware/auth"
	"github.com/onenotebe/onenotebe/internal/ratelimit"
	"github.com/onenotebe/onenotebe/internal/repo"
	"github.com/onenotebe/onenotebe/internal/service"
	"github.com/onenotebe/onenotebe/internal/tokens"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmpty(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)
	ctx := logging.IntoContext(context.Background(), logger)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	r := &repo.GormRepo{DB: db}

	if err := bootstrap.EnsureAdmin(ctx, r, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail); err != nil {
		log.Fatalf("admin bootstrap failed: %v", err)
	}

	var producer *events.Producer
	if cfg.KafkaAddress != "" {
		producer = events.NewProducer([]string{cfg.KafkaAddress}, cfg.EventsTopic)
		defer producer.Close()
	}

	tokenSvc := tokens.New([]byte(cfg.JWTSecret), cfg.TokenLifetime())
	limiter := ratelimit.New(cfg.RateLimitRegisterRequests, cfg.RegisterWindow())

	postSvc := &service.PostService{Repo: r, Index: cfg.SearchIndex, Events: producer}
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(es.Config{URL: cfg.ESURL, User: cfg.ESUser, Password: cfg.ESPassword})
		if err != nil {
			log.Fatalf("elasticsearch init failed: %v", err)
		}
		postSvc.ES = esClient
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), logger)))
			return next(c)
		}
	})

	deps := httpserver.Deps{
		Auth:       &httpserver.AuthHTTP{Svc: &service.AuthService{Repo: r, Tokens: tokenSvc, Limiter: limiter, Events: producer}},
		Posts:      &httpserver.PostHTTP{Svc: postSvc},
		Categories: &httpserver.CategoryHTTP{Svc: &service.CategoryService{Repo: r}},
		MW:         &authmw.Middleware{Tokens: tokenSvc, Repo: r},
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("server_started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	logger.Info("server_stopped")
}
