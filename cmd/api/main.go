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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"sesi-membership/internal/adapter/cache"
	httpadp "sesi-membership/internal/adapter/http"
	"sesi-membership/internal/adapter/mailer"
	appmw "sesi-membership/internal/adapter/middleware"
	"sesi-membership/internal/adapter/repository/mysql"
	"sesi-membership/internal/adapter/storage"
	"sesi-membership/internal/config"
	"sesi-membership/internal/infrastructure/db"
	redisinfra "sesi-membership/internal/infrastructure/cache"
	"sesi-membership/internal/logger"
	"sesi-membership/internal/seed"
	"sesi-membership/internal/usecase/auth"
	"sesi-membership/internal/usecase/intake"
	"sesi-membership/internal/usecase/member"
	"sesi-membership/internal/usecase/reference"
	"sesi-membership/internal/usecase/review"
)

func main() {
	seedOnly := flag.Bool("seed", false, "load states, districts and the default admin, then exit")
	adminEmail := flag.String("admin-email", "admin@sesi.co.in", "default administrator email used by -seed")
	adminPassword := flag.String("admin-password", envOr("SEED_ADMIN_PASSWORD", "Admin@SESI2025"), "default administrator password used by -seed")
	flag.Parse()

	cfg := config.Load()
	closer, err := logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		slog.Error("logger init failed", "err", err)
		os.Exit(1)
	}
	defer closer.Close()

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "err", err)
		os.Exit(1)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), db.Pool{MaxOpen: cfg.MySQLMaxOpenConns, MaxIdle: cfg.MySQLMaxIdleConns})
	if err != nil {
		slog.Error("mysql connect failed", "err", err)
		os.Exit(1)
	}
	if err := mysql.AutoMigrate(gdb); err != nil {
		slog.Error("migrate failed", "err", err)
		os.Exit(1)
	}

	rdb, err := redisinfra.OpenRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		slog.Error("redis connect failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	store, err := storage.NewLocal(cfg.UploadDir)
	if err != nil {
		slog.Error("upload dir", "err", err)
		os.Exit(1)
	}

	// repositories
	apps := mysql.NewApplicationRepository(gdb)
	history := mysql.NewHistoryRepository(gdb)
	members := mysql.NewMemberRepository(gdb)
	regions := mysql.NewRegionRepository(gdb)
	users := mysql.NewUserRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	refUC := reference.NewUsecase(regions, cache.NewRegionCache(rdb, time.Duration(cfg.RefCacheTTLSecs)*time.Second))
	authUC := auth.NewUsecase(users, cfg.JWTSecret, cfg.JWTExpiry)

	if *seedOnly {
		res, err := seed.New(regions, authUC, refUC).Run(context.Background(), seed.Admin{
			Email:    *adminEmail,
			Password: *adminPassword,
			FullName: "SESI Admin",
		})
		if err != nil {
			slog.Error("seed failed", "err", err)
			os.Exit(1)
		}
		if res.AdminCreated {
			slog.Warn("default admin created; change its password after first login", "email", *adminEmail)
		}
		return
	}

	var intakeNotifier intake.Notifier
	var reviewNotifier review.Notifier
	if cfg.MailEnabled() {
		m := mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.AdminEmail, cfg.PublicBaseURL)
		intakeNotifier, reviewNotifier = m, m
	} else {
		m := mailer.NewLog(slog.Default())
		intakeNotifier, reviewNotifier = m, m
	}

	intakeUC := intake.NewUsecase(apps, tx, refUC, store, intakeNotifier)
	reviewUC := review.NewUsecase(apps, history, members, tx, store, reviewNotifier)
	memberUC := member.NewUsecase(members, apps)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				slog.ErrorContext(c.Request().Context(), "request", append(attrs, "err", v.Error)...)
				return nil
			}
			slog.InfoContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, appmw.HeaderIdempotencyKey},
	}))

	health := httpadp.NewHandler(
		httpadp.Check{Name: "mysql", Ping: func(ctx context.Context) error { return db.Ping(ctx, gdb) }},
		httpadp.Check{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
	)
	httpadp.Register(e, httpadp.Routes{
		Health:       health,
		Auth:         httpadp.NewAuthHandler(authUC),
		Reference:    httpadp.NewReferenceHandler(refUC),
		Membership:   httpadp.NewMembershipHandler(intakeUC),
		Applications: httpadp.NewApplicationHandler(reviewUC),
		Members:      httpadp.NewMemberHandler(memberUC),
		RequireAdmin: appmw.BearerAuth(authUC, auth.ErrInactive),
		Idempotency:  appmw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second),
		UploadDir:    store.Root(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.AppPort
		slog.Info("listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "err", err)
	}
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
