package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "nexus-backend/internal/adapter/http"
	"nexus-backend/internal/adapter/middleware"
	"nexus-backend/internal/adapter/repository/mysql"
	"nexus-backend/internal/config"
	userDomain "nexus-backend/internal/domain/user"
	"nexus-backend/internal/infrastructure/cache"
	"nexus-backend/internal/infrastructure/db"
	"nexus-backend/internal/session"
	inventoryUC "nexus-backend/internal/usecase/inventory"
	invoiceUC "nexus-backend/internal/usecase/invoice"
	ledgerUC "nexus-backend/internal/usecase/ledger"
	"nexus-backend/pkg/logger"

	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(logger.Options{
		ServiceName: "nexus-api",
		Level:       logger.ParseLevel(cfg.LogLevel),
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("mysql connect failed")
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}
	seedDefaultUsers(gdb)

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}

	sessions := session.NewStore(rdb, time.Duration(cfg.SessionTTLSecs)*time.Second)

	// repos + usecases
	users := mysql.NewUserRepository(gdb)
	lots := mysql.NewInventoryRepository(gdb)
	invoices := mysql.NewInvoiceRepository(gdb)
	tx := mysql.NewGormUoW(gdb)
	appender := ledgerUC.NewAppender()

	inventoryUsecase := inventoryUC.NewUsecase(lots, tx, appender, cfg.LedgerEagerWrite, log)
	invoiceUsecase := invoiceUC.NewUsecase(invoices, tx, appender, cfg.LedgerEagerWrite, log)
	ledgerUsecase := ledgerUC.NewUsecase(tx, log)

	h := httpadp.NewHandler()
	authH := httpadp.NewAuthHandler(users, sessions)
	inventoryH := httpadp.NewInventoryHandler(inventoryUsecase)
	invoiceH := httpadp.NewInvoiceHandler(invoiceUsecase)
	ledgerH := httpadp.NewLedgerHandler(ledgerUsecase)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	auth := middleware.RequireAuth(sessions)
	idemp := middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	// routes
	e.GET("/health", h.Health)
	e.POST("/auth/login", authH.Login)
	e.POST("/auth/logout", authH.Logout, auth)
	e.GET("/auth/me", authH.Me, auth)

	inv := e.Group("/inventory", auth)
	inv.GET("", inventoryH.ListLots)
	inv.GET("/:lot_id", inventoryH.GetLot)
	inv.POST("", inventoryH.CreateLot, middleware.RequireRoles(userDomain.RoleWarehouse, userDomain.RoleAdmin), idemp)

	bill := e.Group("/invoices", auth)
	bill.GET("", invoiceH.ListInvoices)
	bill.GET("/:invoice_id", invoiceH.GetInvoice)
	bill.POST("", invoiceH.OpenInvoice, middleware.RequireRoles(userDomain.RoleOffice, userDomain.RoleAdmin), idemp)
	bill.POST("/:invoice_id/approve", invoiceH.ApproveInvoice, middleware.RequireRoles(userDomain.RoleAdmin), idemp)
	bill.POST("/:invoice_id/reject", invoiceH.RejectInvoice, middleware.RequireRoles(userDomain.RoleAdmin), idemp)

	led := e.Group("/ledger", auth, middleware.RequireRoles(userDomain.RoleAdmin))
	led.GET("", ledgerH.ListBlocks)
	led.GET("/verify", ledgerH.VerifyChain)
	led.POST("/backfill", ledgerH.BackfillPayloads, idemp)

	addr := ":" + cfg.AppPort
	log.Info().Str("addr", addr).Bool("eager_ledger", cfg.LedgerEagerWrite).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// seedDefaultUsers creates one account per role on a fresh database so the
// API is usable before an operator loads real accounts. Passwords come from
// SEED_*_PASS and must be rotated outside local development.
func seedDefaultUsers(gdb *gorm.DB) {
	var n int64
	if err := gdb.WithContext(context.Background()).Model(&userDomain.User{}).Count(&n).Error; err != nil || n > 0 {
		return
	}
	defaults := []userDomain.User{
		{Username: "warehouse", Password: envOr("SEED_WAREHOUSE_PASS", "warehouse"), Role: userDomain.RoleWarehouse},
		{Username: "office", Password: envOr("SEED_OFFICE_PASS", "office"), Role: userDomain.RoleOffice},
		{Username: "admin", Password: envOr("SEED_ADMIN_PASS", "admin"), Role: userDomain.RoleAdmin},
	}
	_ = gdb.Create(&defaults).Error
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
