// File: internal/router/router.go
package router

import (
	"time"

	"github.com/labstack/echo/v4"

	"book-vault/internal/database"
	"book-vault/internal/handler"
	"book-vault/internal/handler/auth"
	"book-vault/internal/handler/books"
	"book-vault/internal/middleware"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, secret []byte, tokenTTL time.Duration) {
	api := e.Group("/api")

	// 健康檢查（需登入）
	api.GET("/ping", handler.PingHandler(db), middleware.RequireAuth(db, secret))

	// 註冊與登入
	api.POST("/auth/register", auth.RegisterHandler(db))
	api.POST("/auth/login", auth.LoginHandler(db, secret, tokenTTL))

	// 書籍列表為公開讀取
	api.GET("/books", books.ListBooksHandler(db))

	// 管理員專屬書籍寫入操作
	apiBooks := api.Group("/books", middleware.RequireAdmin(db, secret))
	apiBooks.POST("", books.CreateBookHandler(db))
	apiBooks.PUT("/:id", books.UpdateBookHandler(db))
	apiBooks.DELETE("/:id", books.DeleteBookHandler(db))
}
