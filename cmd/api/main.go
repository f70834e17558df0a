package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	httpadp "contract-manager-backend/internal/adapter/http"
	appmw "contract-manager-backend/internal/adapter/middleware"
	"contract-manager-backend/internal/adapter/repository/mysql"
	"contract-manager-backend/internal/config"
	"contract-manager-backend/internal/infrastructure/cache"
	"contract-manager-backend/internal/infrastructure/db"
	"contract-manager-backend/internal/notifier"
	ucApproval "contract-manager-backend/internal/usecase/approval"
	ucContract "contract-manager-backend/internal/usecase/contract"
)

func main() {
	_ = godotenv.Load()
	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "contract-manager").Logger()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("mysql connect failed")
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}

	contractRepo := mysql.NewContractRepository(gdb)
	approvalRepo := mysql.NewApprovalRepository(gdb)
	userRepo := mysql.NewUserRepository(gdb)
	notifRepo := mysql.NewNotificationRepository(gdb)
	auditRepo := mysql.NewAuditRepository(gdb)
	guow := mysql.NewGormUoW(gdb)

	approvalUC := ucApproval.NewUsecase(contractRepo, approvalRepo, guow, auditRepo, log)
	contractUC := ucContract.NewUsecase(contractRepo, guow, auditRepo, log)

	// Outbox drain loop; stops with the server.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	dispatcher := notifier.NewDispatcher(
		notifRepo,
		notifier.NewRedisPublisher(rdb, cfg.NotifyChannel),
		time.Duration(cfg.OutboxIntervalSecs)*time.Second,
		cfg.OutboxBatch,
		log,
	)
	go dispatcher.Run(ctx)

	h := httpadp.NewHandler()
	approvalH := httpadp.NewApprovalHandler(approvalUC)
	contractH := httpadp.NewContractHandler(contractUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)

	auth := appmw.Authenticate(userRepo)
	idemp := appmw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, log)

	api := e.Group("/api", auth)
	api.GET("/approvals", approvalH.List, appmw.RequireManager())
	api.GET("/approvals/pending", approvalH.ListPending)
	api.POST("/approvals", approvalH.Create, idemp)
	api.PUT("/approvals/:approval_id", approvalH.Resolve, idemp)
	api.GET("/approvals/contract/:contract_id", approvalH.History)
	api.POST("/contracts", contractH.Create, idemp)
	api.GET("/contracts/:contract_id", contractH.Get)
	api.DELETE("/contracts/:contract_id", contractH.Delete, idemp)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	addr := ":" + cfg.AppPort
	log.Info().Str("addr", addr).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Info().Err(err).Msg("server stopped")
	}
}
