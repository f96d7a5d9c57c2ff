// File: cmd/service/main.go
// @title        Book Vault API
// @version      1.0
// @description  書籍管理服務的後端 API 文件
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"book-vault/internal/database"
	"book-vault/internal/router"
	"book-vault/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "book-vault/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	newPgxPool        = database.NewPgxPool
	runMigrationsFn   = database.RunMigrations
	ensureSuperuserFn = service.EnsureSuperuser
	startServer       = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc          = os.Exit
)

func run() error {
	// .env 為選配，找不到檔案不視為錯誤
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return fmt.Errorf("環境變數 JWT_SECRET 未設定")
	}

	tokenTTL := 24 * time.Hour
	if v := os.Getenv("ACCESS_TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			return fmt.Errorf("無效的 ACCESS_TOKEN_TTL: %q", v)
		}
		tokenTTL = ttl
	}

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	db, err := newPgxPool(context.Background(), dbURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	if err := runMigrationsFn(dbURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}

	// 啟動時確保管理員帳號存在
	if adminPassword := os.Getenv("ADMIN_PASSWORD"); adminPassword != "" {
		adminUsername := os.Getenv("ADMIN_USERNAME")
		if adminUsername == "" {
			adminUsername = "admin"
		}
		adminEmail := os.Getenv("ADMIN_EMAIL")
		if err := ensureSuperuserFn(context.Background(), db, adminUsername, adminEmail, adminPassword); err != nil {
			return fmt.Errorf("建立管理員失敗: %v", err)
		}
	}

	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	router.Setup(e, db, []byte(secret), tokenTTL)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return startServer(e, addr)
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
